// Package loader reads fretmark configuration sources into plain maps.
//
// A configuration is assembled from layers: the built-in defaults, one
// TOML or YAML file, and FRETMARK_ environment variables. Each layer is a
// map[string]any keyed by section and setting; Merge folds them together
// with later layers winning.
package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for files whose extension has no format.
var ErrUnsupportedFormat = errors.New("unsupported config format")

// Source produces one configuration layer. A source that does not exist
// yields a nil map and no error.
type Source interface {
	Load() (map[string]any, error)
}

// FileSystem reads whole files.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
}

type osFS struct{}

func (osFS) ReadFile(path string) ([]byte, error) { return os.ReadFile(path) }

// DefaultFS reads from the operating system.
func DefaultFS() FileSystem { return osFS{} }

// Format is a file syntax.
type Format struct {
	Name string
	Exts []string

	unmarshal func([]byte, any) error
	position  func(error) (line, col int)
}

var (
	TOML = Format{
		Name:      "toml",
		Exts:      []string{".toml"},
		unmarshal: toml.Unmarshal,
		position: func(err error) (int, int) {
			var derr *toml.DecodeError
			if errors.As(err, &derr) {
				return derr.Position()
			}
			return 0, 0
		},
	}

	YAML = Format{
		Name:      "yaml",
		Exts:      []string{".yaml", ".yml"},
		unmarshal: yaml.Unmarshal,
		position: func(err error) (int, int) {
			var line int
			if _, serr := fmt.Sscanf(err.Error(), "yaml: line %d:", &line); serr == nil {
				return line, 0
			}
			return 0, 0
		},
	}

	formats = []Format{TOML, YAML}
)

// FormatFor picks the format from the extension of path.
func FormatFor(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	for _, f := range formats {
		for _, e := range f.Exts {
			if e == ext {
				return f, nil
			}
		}
	}
	return Format{}, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
}

// Decode parses data in format f. source names the data in errors.
// Empty input decodes to an empty map.
func (f Format) Decode(source string, r io.Reader) (map[string]any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", source, err)
	}
	out := make(map[string]any)
	if len(bytes.TrimSpace(data)) == 0 {
		return out, nil
	}
	if err := f.unmarshal(data, &out); err != nil {
		perr := &ParseError{Path: source, Message: err.Error(), Err: err}
		perr.Line, perr.Column = f.position(err)
		return nil, perr
	}
	if out == nil {
		out = make(map[string]any)
	}
	return out, nil
}

// File is a configuration file on a FileSystem.
type File struct {
	FS     FileSystem
	Path   string
	Format Format
}

// ForPath returns the file source for path. A nil fsys reads from the
// operating system.
func ForPath(fsys FileSystem, path string) (*File, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	if fsys == nil {
		fsys = DefaultFS()
	}
	return &File{FS: fsys, Path: path, Format: format}, nil
}

// Load reads and decodes the file. A missing file is not an error.
func (f *File) Load() (map[string]any, error) {
	data, err := f.FS.ReadFile(f.Path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("reading config file %s: %w", f.Path, err)
	}
	return f.Format.Decode(f.Path, bytes.NewReader(data))
}

// ParseError locates a syntax error in a configuration source. Line and
// Column are zero when the decoder does not report them.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	where := e.Path
	switch {
	case e.Line > 0 && e.Column > 0:
		where = fmt.Sprintf("%s at line %d, column %d", e.Path, e.Line, e.Column)
	case e.Line > 0:
		where = fmt.Sprintf("%s at line %d", e.Path, e.Line)
	}
	return "parse error in " + where + ": " + e.Message
}

func (e *ParseError) Unwrap() error { return e.Err }
