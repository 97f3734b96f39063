package export

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// Swatch is a named marker color.
type Swatch struct {
	Name string
	Hex  string
}

// Palette is the marker color palette, bound to keys 1 through 6.
var Palette = []Swatch{
	{Name: "Black", Hex: "#000"},
	{Name: "Dark", Hex: "#21201c"},
	{Name: "Medium", Hex: "#8d8d86"},
	{Name: "Blue", Hex: "#0090ff"},
	{Name: "Red", Hex: "#e54d2e"},
	{Name: "Mustard", Hex: "#30a46c"},
}

// Board colors.
var (
	colorBackdrop = color.RGBA{0xff, 0xff, 0xff, 0xff}
	colorFret     = color.RGBA{0xbc, 0xbb, 0xb5, 0xff}
	colorInlay    = color.RGBA{0xe9, 0xe8, 0xe6, 0xff}
	colorString   = color.RGBA{0x82, 0x82, 0x7c, 0xff}
	colorText     = color.RGBA{0x63, 0x63, 0x5e, 0xff}
	colorWhite    = color.RGBA{0xff, 0xff, 0xff, 0xff}
)

// ParseColor parses a CSS hex color (#rgb, #rrggbb, #rrggbbaa) or a CSS
// color name.
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if c, ok := colornames.Map[s]; ok {
		return c, nil
	}
	if !strings.HasPrefix(s, "#") {
		return color.RGBA{}, fmt.Errorf("unknown color %q", s)
	}

	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// markerColor resolves a style color, falling back to black.
func markerColor(s string) color.RGBA {
	c, err := ParseColor(s)
	if err != nil {
		return color.RGBA{A: 0xff}
	}
	return c
}

func css(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
