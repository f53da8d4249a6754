// Implements a backend writing drawable items
// as an SVG document, one element per draw operation.
package canvassvg

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"image/color"
	"io"
	"strconv"

	"github.com/benoitkugler/okcanvas/canvasdraw"
	"github.com/benoitkugler/okcanvas/canvasitem"
	"github.com/benoitkugler/okcanvas/canvaspath"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// assert interface conformance
var (
	_ canvasdraw.Driver  = (*Renderer)(nil)
	_ canvasdraw.Filler  = (*filler)(nil)
	_ canvasdraw.Stroker = (*stroker)(nil)
)

// Options tunes the output document.
type Options struct {
	// Scale multiplies the width and height attributes,
	// the view box staying the logical surface. Zero means 1.
	Scale float64

	// Background is painted below the items. Nil means transparent.
	Background color.Color
}

// Renderer accumulates the elements of the last render pass.
type Renderer struct {
	opts     Options
	elements bytes.Buffer
}

func NewRenderer(opts Options) *Renderer {
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	return &Renderer{opts: opts}
}

// RenderItemsToSVG writes the items as an SVG document to `w`.
func RenderItemsToSVG(items []canvasitem.DrawableItem, w io.Writer, opts Options) error {
	rd := NewRenderer(opts)
	canvasdraw.Render(rd, items)
	_, err := rd.WriteTo(w)
	return err
}

func (rd *Renderer) Size() (width, height float64) {
	return canvasdraw.Width, canvasdraw.Height
}

func (rd *Renderer) Erase() { rd.elements.Reset() }

// WriteTo writes the complete document.
func (rd *Renderer) WriteTo(w io.Writer) (int64, error) {
	var doc bytes.Buffer
	fmt.Fprintf(&doc, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %d %d">`+"\n",
		formatFloat(canvasdraw.Width*rd.opts.Scale), formatFloat(canvasdraw.Height*rd.opts.Scale),
		canvasdraw.Width, canvasdraw.Height)
	if rd.opts.Background != nil {
		fmt.Fprintf(&doc, `<rect width="100%%" height="100%%" %s/>`+"\n", paintAttrs("fill", rd.opts.Background))
	}
	doc.Write(rd.elements.Bytes())
	doc.WriteString("</svg>\n")
	n, err := w.Write(doc.Bytes())
	if err != nil {
		return int64(n), fmt.Errorf("writing svg: %w", err)
	}
	return int64(n), nil
}

func (rd *Renderer) SetupDrawers(willFill, willStroke bool) (f canvasdraw.Filler, s canvasdraw.Stroker) {
	if willFill {
		f = &filler{painter: painter{rd: rd}}
	}
	if willStroke {
		s = &stroker{painter: painter{rd: rd}, options: canvasdraw.DefaultStrokeOptions}
	}
	return f, s
}

func (rd *Renderer) FillText(text string, x, y float64, font canvasitem.Font, c color.Color) {
	fmt.Fprintf(&rd.elements, `<text x="%s" y="%s" font-family="%s" font-size="%s" font-weight="%d" font-style="%s" %s text-anchor="middle" dominant-baseline="middle">`,
		formatFloat(x), formatFloat(y), escape(font.Family), formatFloat(font.Size), font.Weight, font.Slant, paintAttrs("fill", c))
	xml.EscapeText(&rd.elements, []byte(text))
	rd.elements.WriteString("</text>\n")
}

func formatFloat(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

func escape(s string) string {
	var b bytes.Buffer
	xml.EscapeText(&b, []byte(s))
	return b.String()
}

// paintAttrs returns the color and opacity attributes
// for `attr`, either fill or stroke.
func paintAttrs(attr string, c color.Color) string {
	nc := color.NRGBAModel.Convert(c).(color.NRGBA)
	hex := colorful.Color{R: float64(nc.R) / 255, G: float64(nc.G) / 255, B: float64(nc.B) / 255}.Hex()
	if nc.A == 0xff {
		return fmt.Sprintf(`%s="%s"`, attr, hex)
	}
	return fmt.Sprintf(`%s="%s" %s-opacity="%s"`, attr, hex, attr, strconv.FormatFloat(float64(nc.A)/255, 'f', 3, 64))
}

// painter records the path until it is drawn
type painter struct {
	canvaspath.Path
	rd    *Renderer
	color color.Color
}

func (p *painter) Clear() { p.Path.Clear() }

func (p *painter) SetColor(c color.Color) { p.color = c }

type filler struct {
	painter
	useNonZeroWinding bool
}

func (f *filler) SetWinding(useNonZeroWinding bool) { f.useNonZeroWinding = useNonZeroWinding }

func (f *filler) Draw() {
	if f.color == nil || len(f.Path) == 0 {
		return
	}
	rule := "evenodd"
	if f.useNonZeroWinding {
		rule = "nonzero"
	}
	fmt.Fprintf(&f.rd.elements, `<path d="%s" %s fill-rule="%s"/>`+"\n", f.Path.ToSVGPath(), paintAttrs("fill", f.color), rule)
}

type stroker struct {
	painter
	options canvasdraw.StrokeOptions
}

func (s *stroker) SetStrokeOptions(options canvasdraw.StrokeOptions) { s.options = options }

func (s *stroker) Draw() {
	if s.color == nil || len(s.Path) == 0 {
		return
	}
	fmt.Fprintf(&s.rd.elements, `<path d="%s" fill="none" %s stroke-width="%s" stroke-linejoin="%s" stroke-linecap="%s" stroke-miterlimit="%s"/>`+"\n",
		s.Path.ToSVGPath(), paintAttrs("stroke", s.color),
		formatFloat(float64(s.options.LineWidth)/64), s.options.LineJoin, s.options.LineCap,
		formatFloat(float64(s.options.MiterLimit)/64))
}
