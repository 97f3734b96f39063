// Package core holds the cell, style and color types shared by the
// renderer and its backends.
package core

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a 24-bit terminal color, or the terminal's own default.
type Color struct {
	R, G, B uint8
	Default bool
}

var (
	ColorDefault = Color{Default: true}
	ColorBlack   = Color{}
	ColorWhite   = Color{R: 0xff, G: 0xff, B: 0xff}
)

func ColorFromRGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// ColorFromRGBA drops the alpha channel.
func ColorFromRGBA(c color.RGBA) Color {
	return Color{R: c.R, G: c.G, B: c.B}
}

// ColorFromHex parses "#rgb" or "#rrggbb".
func ColorFromHex(hex string) (Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}
	return fromColorful(c), nil
}

func fromColorful(c colorful.Color) Color {
	r, g, b := c.Clamped().RGB255()
	return Color{R: r, G: g, B: b}
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func (c Color) IsDefault() bool { return c.Default }

func (c Color) String() string {
	if c.Default {
		return "default"
	}
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// Blend mixes c towards other in Lab space; amount 0 keeps c and 1 yields
// other. Default colors are left alone.
func (c Color) Blend(other Color, amount float64) Color {
	if c.Default || other.Default {
		return c
	}
	return fromColorful(c.colorful().BlendLab(other.colorful(), amount))
}

// Lighten blends towards white.
func (c Color) Lighten(amount float64) Color {
	return c.Blend(ColorWhite, amount)
}
