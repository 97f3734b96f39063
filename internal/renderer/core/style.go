package core

// Attribute is a set of text attributes.
type Attribute uint16

const (
	AttrNone Attribute = 0
	AttrBold Attribute = 1 << iota
	AttrDim
	AttrUnderline
	AttrReverse
)

func (a Attribute) Has(attr Attribute) bool { return a&attr != 0 }

func (a Attribute) With(attr Attribute) Attribute { return a | attr }

// Style is the look of one cell. Styles are values; the modifiers return
// copies.
type Style struct {
	Foreground Color
	Background Color
	Attributes Attribute
}

// DefaultStyle uses the terminal colors.
func DefaultStyle() Style {
	return Style{Foreground: ColorDefault, Background: ColorDefault}
}

// NewStyle returns the default style with a foreground color.
func NewStyle(fg Color) Style {
	return DefaultStyle().WithForeground(fg)
}

func (s Style) WithForeground(fg Color) Style { s.Foreground = fg; return s }
func (s Style) WithBackground(bg Color) Style { s.Background = bg; return s }

func (s Style) with(a Attribute) Style { s.Attributes = s.Attributes.With(a); return s }

func (s Style) Bold() Style      { return s.with(AttrBold) }
func (s Style) Dim() Style       { return s.with(AttrDim) }
func (s Style) Underline() Style { return s.with(AttrUnderline) }
func (s Style) Reverse() Style   { return s.with(AttrReverse) }
