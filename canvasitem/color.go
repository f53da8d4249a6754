package canvasitem

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

var errEmptyColor = errors.New("empty color")

// ParseColor parses a CSS color: named colors, "transparent",
// #rgb, #rgba, #rrggbb, #rrggbbaa, rgb(), rgba(), hsl() and hsla().
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case s == "":
		return color.NRGBA{}, errEmptyColor
	case s == "transparent":
		return color.NRGBA{}, nil
	case strings.HasPrefix(s, "#"):
		return parseHexColor(s)
	case strings.HasPrefix(s, "rgb"):
		return parseFunctionalColor(s, "rgb", parseRGBArgs)
	case strings.HasPrefix(s, "hsl"):
		return parseFunctionalColor(s, "hsl", parseHSLArgs)
	}
	if c, ok := colornames.Map[s]; ok {
		return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}, nil
	}
	return color.NRGBA{}, fmt.Errorf("invalid color %q", s)
}

func parseHexColor(s string) (color.NRGBA, error) {
	// expand the short forms
	if len(s) == 4 || len(s) == 5 {
		var b strings.Builder
		b.WriteByte('#')
		for _, r := range s[1:] {
			b.WriteRune(r)
			b.WriteRune(r)
		}
		s = b.String()
	}
	alpha := uint8(0xff)
	switch len(s) {
	case 7:
	case 9:
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
		}
		alpha = uint8(a)
		s = s[:7]
	default:
		return color.NRGBA{}, fmt.Errorf("invalid color %q", s)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha}, nil
}

// parseFunctionalColor handles prefix(a, b, c) and prefixa(a, b, c, alpha),
// with either comma or space separators.
func parseFunctionalColor(s, prefix string, parseArgs func(args []string) (color.NRGBA, error)) (color.NRGBA, error) {
	body := strings.TrimPrefix(s, prefix)
	body = strings.TrimPrefix(body, "a")
	if !strings.HasPrefix(body, "(") || !strings.HasSuffix(body, ")") {
		return color.NRGBA{}, fmt.Errorf("invalid color %q", s)
	}
	body = strings.NewReplacer(",", " ", "/", " ").Replace(body[1 : len(body)-1])
	args := strings.Fields(body)
	if len(args) != 3 && len(args) != 4 {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: expected 3 or 4 components", s)
	}
	c, err := parseArgs(args[:3])
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	if len(args) == 4 {
		a, err := parseUnitValue(args[3], 1)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
		}
		c.A = uint8(clamp01(a)*255 + 0.5)
	}
	return c, nil
}

func parseRGBArgs(args []string) (color.NRGBA, error) {
	var comps [3]uint8
	for i, arg := range args {
		v, err := parseUnitValue(arg, 255)
		if err != nil {
			return color.NRGBA{}, err
		}
		comps[i] = uint8(clamp01(v/255)*255 + 0.5)
	}
	return color.NRGBA{R: comps[0], G: comps[1], B: comps[2], A: 0xff}, nil
}

func parseHSLArgs(args []string) (color.NRGBA, error) {
	h, err := strconv.ParseFloat(strings.TrimSuffix(args[0], "deg"), 64)
	if err != nil {
		return color.NRGBA{}, err
	}
	sat, err := parseUnitValue(args[1], 1)
	if err != nil {
		return color.NRGBA{}, err
	}
	light, err := parseUnitValue(args[2], 1)
	if err != nil {
		return color.NRGBA{}, err
	}
	r, g, b := colorful.Hsl(h, clamp01(sat), clamp01(light)).Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}, nil
}

// parseUnitValue parses a number, where a percentage
// is relative to `full`.
func parseUnitValue(v string, full float64) (float64, error) {
	if strings.HasSuffix(v, "%") {
		f, err := strconv.ParseFloat(strings.TrimSuffix(v, "%"), 64)
		return f / 100 * full, err
	}
	return strconv.ParseFloat(v, 64)
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
