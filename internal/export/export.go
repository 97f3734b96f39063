// Package export renders a fretboard diagram to static SVG or PNG files
// and to the system clipboard. The drawing uses layout coordinates and is
// independent of the live viewport.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/dshills/fretmark/internal/engine"
)

// Format is an output format.
type Format string

const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
)

// ErrUnsupportedFormat is returned for unknown formats.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// ParseFormat parses "svg" or "png", with or without a leading dot.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimPrefix(s, "."))); f {
	case FormatSVG, FormatPNG:
		return f, nil
	default:
		return "", fmt.Errorf("%w %q (want svg or png)", ErrUnsupportedFormat, s)
	}
}

// FormatFromPath infers the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// Options controls file export.
type Options struct {
	Path   string  // Output path; format inferred from extension when Format empty
	Format Format  // Optional explicit format
	Scale  float64 // PNG pixels per layout unit; 0 means 1
}

// Render writes the frame in the given format.
func Render(w io.Writer, f engine.Frame, format Format, scale float64) error {
	s := BuildScene(f)
	switch format {
	case FormatSVG:
		return WriteSVG(w, s)
	case FormatPNG:
		return WritePNG(w, s, scale)
	default:
		return fmt.Errorf("%w %q", ErrUnsupportedFormat, format)
	}
}

// Save renders the frame to opts.Path, creating parent directories.
func Save(f engine.Frame, opts Options) error {
	if opts.Path == "" {
		return fmt.Errorf("output path is required")
	}
	format := opts.Format
	if format == "" {
		var err error
		if format, err = FormatFromPath(opts.Path); err != nil {
			return err
		}
	}

	var buf bytes.Buffer
	if err := Render(&buf, f, format, opts.Scale); err != nil {
		return fmt.Errorf("render %s: %w", format, err)
	}

	if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
		return fmt.Errorf("create parent dir: %w", err)
	}
	if err := os.WriteFile(opts.Path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", opts.Path, err)
	}
	return nil
}

// clipboardWrite is replaced in tests.
var clipboardWrite = clipboard.WriteAll

// CopySVG places the SVG rendering of the frame on the system clipboard.
func CopySVG(f engine.Frame) error {
	var buf bytes.Buffer
	if err := WriteSVG(&buf, BuildScene(f)); err != nil {
		return err
	}
	if err := clipboardWrite(buf.String()); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	return nil
}
