package canvasitem

import (
	"image/color"
)

// EffectiveStyle is the fully defaulted style used to draw one item.
type EffectiveStyle struct {
	Fill        color.NRGBA
	Border      *color.NRGBA // nil disables stroking
	BorderWidth float64
	TextColor   color.NRGBA
	Font        Font
}

// Default values, applied field by field by ResolveStyle.
var (
	DefaultFill        = color.NRGBA{A: 0xff}
	DefaultTextColor   = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	DefaultBorderWidth = 2.
	DefaultFont        = "24px " + DefaultFontFamily
	DefaultFontStyle   = "normal"
)

// ResolveStyle applies the defaults to the optional style `s`,
// which may be nil.
// Invalid colors are replaced by the defaults; an invalid
// border color disables the border.
func ResolveStyle(s *Style) EffectiveStyle {
	if s == nil {
		s = new(Style)
	}
	out := EffectiveStyle{
		Fill:        colorOr(s.Fill, DefaultFill),
		BorderWidth: s.BorderWidth,
		TextColor:   colorOr(s.TextColor, DefaultTextColor),
	}
	if out.BorderWidth <= 0 {
		out.BorderWidth = DefaultBorderWidth
	}
	if s.BorderColor != "" {
		if c, err := ParseColor(s.BorderColor); err == nil {
			out.Border = &c
		}
	}
	fontStyle, font := s.FontStyle, s.Font
	if fontStyle == "" {
		fontStyle = DefaultFontStyle
	}
	if font == "" {
		font = DefaultFont
	}
	out.Font = ParseFont(fontStyle + " " + font)
	return out
}

func colorOr(s string, def color.NRGBA) color.NRGBA {
	if c, err := ParseColor(s); err == nil {
		return c
	}
	return def
}
