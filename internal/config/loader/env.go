package loader

import (
	"os"
	"strconv"
	"strings"
)

// EnvPrefix starts every fretmark environment variable.
const EnvPrefix = "FRETMARK_"

// Aliases are short variable names for common settings.
var Aliases = map[string]string{
	"TUNING":    "board.tuning",
	"MIN_FRET":  "board.min_fret",
	"MAX_FRET":  "board.max_fret",
	"MODE":      "editor.mode",
	"LOG_LEVEL": "logging.level",
	"LOG_FILE":  "logging.file",
}

// Env is the environment layer. A variable PREFIX_SECTION_SETTING sets
// section.setting unless its name, without the prefix, is an alias.
type Env struct {
	Prefix  string
	Aliases map[string]string

	// Environ lists KEY=value pairs; nil means os.Environ.
	Environ func() []string
}

// NewEnv returns the environment layer with the default aliases.
func NewEnv() *Env {
	return &Env{Prefix: EnvPrefix, Aliases: Aliases}
}

func (e *Env) Load() (map[string]any, error) {
	environ := e.Environ
	if environ == nil {
		environ = os.Environ
	}

	out := make(map[string]any)
	for _, kv := range environ() {
		key, raw, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		name, ok := strings.CutPrefix(key, e.Prefix)
		if !ok || name == "" {
			continue
		}
		path := e.Aliases[name]
		if path == "" {
			path = settingPath(name)
		}
		if path != "" {
			Set(out, path, scalar(raw))
		}
	}
	return out, nil
}

// settingPath turns BOARD_SHOW_FRET_NUMBERS into board.show_fret_numbers.
func settingPath(name string) string {
	section, setting, ok := strings.Cut(strings.ToLower(name), "_")
	if !ok || section == "" || setting == "" {
		return ""
	}
	return section + "." + setting
}

// scalar types a raw value. "0" and "1" stay integers.
func scalar(s string) any {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	switch strings.ToLower(s) {
	case "true", "yes", "on":
		return true
	case "false", "no", "off":
		return false
	}
	if strings.Contains(s, ".") {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	return s
}
