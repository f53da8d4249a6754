package canvasitem

import (
	"strconv"
	"strings"
)

// FontSlant is the CSS font-style.
type FontSlant uint8

const (
	SlantNormal FontSlant = iota
	SlantItalic
	SlantOblique
)

func (s FontSlant) String() string {
	switch s {
	case SlantNormal:
		return "normal"
	case SlantItalic:
		return "italic"
	case SlantOblique:
		return "oblique"
	default:
		return "<unknown FontSlant>"
	}
}

const (
	WeightNormal = 400
	WeightBold   = 700
)

// DefaultFontFamily is used when the font declaration has no family.
// Drivers fall back on their own face when they don't know a family.
const DefaultFontFamily = "Inter"

// DefaultFontSize is the size, in logical units, used when none is given.
const DefaultFontSize = 24

// Font is a resolved font declaration.
type Font struct {
	Family string
	Size   float64 // in logical units (CSS px)
	Weight int     // 100 to 900
	Slant  FontSlant
}

// IsBold returns true for weights above the semi-bold threshold.
func (f Font) IsBold() bool { return f.Weight >= 600 }

// IsItalic returns true for italic and oblique fonts.
func (f Font) IsItalic() bool { return f.Slant != SlantNormal }

// String returns the CSS shorthand of the font.
func (f Font) String() string {
	return f.Slant.String() + " " + strconv.Itoa(f.Weight) + " " +
		strconv.FormatFloat(f.Size, 'g', -1, 64) + "px " + f.Family
}

// ParseFont parses a subset of the CSS font shorthand :
// [style] [variant] [weight] size[/line-height] [family[, family...]].
// Missing parts take their defaults: "normal 400 24px Inter".
// When no size is found, the remaining words are taken as the family.
func ParseFont(decl string) Font {
	out := Font{Family: DefaultFontFamily, Size: DefaultFontSize, Weight: WeightNormal}
	fields := strings.Fields(decl)
	var family []string
	for i, field := range fields {
		lower := strings.ToLower(field)
		if size, ok := parseFontSize(lower); ok {
			out.Size = size
			family = fields[i+1:]
			break
		}
		switch lower {
		case "normal", "small-caps":
		case "italic":
			out.Slant = SlantItalic
		case "oblique":
			out.Slant = SlantOblique
		case "bold", "bolder":
			out.Weight = WeightBold
		case "lighter":
			out.Weight = 300
		default:
			if w, err := strconv.Atoi(lower); err == nil && w >= 100 && w <= 900 {
				out.Weight = w
				continue
			}
			// not a keyword: no size was given
			family = fields[i:]
		}
		if family != nil {
			break
		}
	}
	if name := firstFamily(strings.Join(family, " ")); name != "" {
		out.Family = name
	}
	return out
}

// parseFontSize accepts px, pt and em units,
// with an optional line-height suffix which is ignored.
func parseFontSize(s string) (float64, bool) {
	if i := strings.IndexByte(s, '/'); i != -1 {
		s = s[:i]
	}
	factor := 1.
	switch {
	case strings.HasSuffix(s, "px"):
		s = strings.TrimSuffix(s, "px")
	case strings.HasSuffix(s, "pt"):
		s = strings.TrimSuffix(s, "pt")
		factor = 4. / 3
	case strings.HasSuffix(s, "em"):
		s = strings.TrimSuffix(s, "em")
		factor = 16
	default:
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f <= 0 {
		return 0, false
	}
	return f * factor, true
}

// firstFamily returns the first entry of a comma separated
// family list, without quotes.
func firstFamily(list string) string {
	name := list
	if i := strings.IndexByte(list, ','); i != -1 {
		name = list[:i]
	}
	return strings.Trim(strings.TrimSpace(name), `"'`)
}
