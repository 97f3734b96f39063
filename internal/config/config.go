package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dshills/fretmark/internal/config/loader"
	"github.com/dshills/fretmark/internal/engine/document"
	"github.com/dshills/fretmark/internal/engine/geometry"
	"github.com/dshills/fretmark/internal/engine/history"
	"github.com/dshills/fretmark/internal/engine/tool"
	"github.com/dshills/fretmark/internal/input/keymap"
	"github.com/dshills/fretmark/internal/music"
)

// Config is the decoded fretmark configuration.
type Config struct {
	Board   Board   `toml:"board" yaml:"board"`
	Editor  Editor  `toml:"editor" yaml:"editor"`
	Export  Export  `toml:"export" yaml:"export"`
	Logging Logging `toml:"logging" yaml:"logging"`

	// Keys maps key specifications to action names, overriding the
	// default bindings.
	Keys map[string]string `toml:"keys" yaml:"keys,omitempty"`
}

// Board holds the fretboard settings.
type Board struct {
	Tuning          Tuning `toml:"tuning" yaml:"tuning"`
	MinFret         int    `toml:"min_fret" yaml:"min_fret"`
	MaxFret         int    `toml:"max_fret" yaml:"max_fret"`
	ShowFretNumbers bool   `toml:"show_fret_numbers" yaml:"show_fret_numbers"`
	ShowStringNames bool   `toml:"show_string_names" yaml:"show_string_names"`
}

// Editor holds editing settings.
type Editor struct {
	MaxUndoEntries int    `toml:"max_undo_entries" yaml:"max_undo_entries"`
	Mode           string `toml:"mode" yaml:"mode"`
}

// Export holds static export settings.
type Export struct {
	Dir   string  `toml:"dir" yaml:"dir"`
	Scale float64 `toml:"scale" yaml:"scale"`
}

// Logging holds log settings.
type Logging struct {
	Level string `toml:"level" yaml:"level"`
	File  string `toml:"file" yaml:"file"`
}

// Tuning is a list of open-string pitch names, string 1 first.
type Tuning []string

// UnmarshalYAML accepts either a sequence or a single comma or space
// separated scalar.
func (t *Tuning) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*t = strings.FieldsFunc(node.Value, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t'
		})
		return nil
	}
	var list []string
	if err := node.Decode(&list); err != nil {
		return err
	}
	*t = list
	return nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Board: Board{
			Tuning:          append(Tuning(nil), music.StandardTuning...),
			MinFret:         0,
			MaxFret:         9,
			ShowFretNumbers: true,
		},
		Editor: Editor{
			MaxUndoEntries: history.DefaultMaxEntries,
			Mode:           tool.ModeSelect.String(),
		},
		Export: Export{
			Dir:   ".",
			Scale: 2,
		},
		Logging: Logging{
			Level: "info",
		},
	}
}

// DefaultPath returns the user configuration file path.
func DefaultPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "fretmark", "config.toml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "fretmark", "config.toml")
}

// Load reads the configuration file at path, applies environment
// overrides and validates the result. An empty path or a missing file
// yields the defaults plus environment.
func Load(path string) (*Config, error) {
	return LoadFS(loader.DefaultFS(), path)
}

// LoadFS is Load reading files through fsys.
func LoadFS(fsys loader.FileSystem, path string) (*Config, error) {
	defaults, err := Default().toMap()
	if err != nil {
		return nil, err
	}

	sources := []loader.Source{}
	if path != "" {
		file, err := loader.ForPath(fsys, path)
		if err != nil {
			return nil, err
		}
		sources = append(sources, file)
	}
	sources = append(sources, loader.NewEnv())

	layers := []map[string]any{defaults}
	for _, src := range sources {
		layer, err := src.Load()
		if err != nil {
			return nil, err
		}
		layers = append(layers, layer)
	}
	merged := loader.Merge(layers...)

	cfg, err := FromMap(merged)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromMap decodes a merged configuration map. It does not validate.
func FromMap(m map[string]any) (*Config, error) {
	data, err := yaml.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encoding merged config: %w", err)
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, invalid("config", "(merged layers)", "cannot decode settings", err)
	}
	return cfg, nil
}

func (c *Config) toMap() (map[string]any, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	return m, nil
}

// Validate checks every setting and returns the first failure.
func (c *Config) Validate() error {
	if len(c.Board.Tuning) == 0 {
		return invalid("board.tuning", c.Board.Tuning, "at least one string is required", nil)
	}
	if _, err := music.ParseTuning(c.Board.Tuning); err != nil {
		return invalid("board.tuning", c.Board.Tuning, "invalid pitch", err)
	}
	if c.Board.MinFret < 0 {
		return invalid("board.min_fret", c.Board.MinFret, "must not be negative", nil)
	}
	if c.Board.MaxFret > geometry.TotalFretCount {
		return invalid("board.max_fret", c.Board.MaxFret, fmt.Sprintf("must be at most %d", geometry.TotalFretCount), nil)
	}
	if c.Board.MinFret >= c.Board.MaxFret {
		return invalid("board.min_fret", c.Board.MinFret, "must be below board.max_fret", nil)
	}
	if c.Editor.MaxUndoEntries <= 0 {
		return invalid("editor.max_undo_entries", c.Editor.MaxUndoEntries, "must be positive", nil)
	}
	if _, err := tool.ParseMode(c.Editor.Mode); err != nil {
		return invalid("editor.mode", c.Editor.Mode, "unknown mode", err)
	}
	if c.Export.Scale <= 0 {
		return invalid("export.scale", c.Export.Scale, "must be positive", nil)
	}
	if err := keymap.FromMap("user", c.Keys).Validate(); err != nil {
		return invalid("keys", c.Keys, "invalid binding", err)
	}
	return nil
}

// BoardConfig converts the board section for the document model.
func (c *Config) BoardConfig() (document.BoardConfig, error) {
	tuning, err := music.ParseTuning(c.Board.Tuning)
	if err != nil {
		return document.BoardConfig{}, invalid("board.tuning", c.Board.Tuning, "invalid pitch", err)
	}
	return document.BoardConfig{
		Tuning:          tuning,
		MinFret:         c.Board.MinFret,
		MaxFret:         c.Board.MaxFret,
		ShowFretNumbers: c.Board.ShowFretNumbers,
		ShowStringNames: c.Board.ShowStringNames,
	}, nil
}

// Keymap returns the default key bindings with the [keys] overrides
// applied.
func (c *Config) Keymap() (*keymap.ParsedKeymap, error) {
	km := keymap.Default().Merge(keymap.FromMap("user", c.Keys))
	parsed, err := km.Parse()
	if err != nil {
		return nil, invalid("keys", c.Keys, "invalid binding", err)
	}
	return parsed, nil
}

// Mode returns the initial tool mode.
func (c *Config) Mode() (tool.Mode, error) {
	return tool.ParseMode(c.Editor.Mode)
}
