// Implements a PDF backend to render drawable items,
// by wrapping github.com/jung-kurt/gofpdf.
//
// One logical unit is one PDF point; each render pass
// which follows a non empty one starts a new page.
package canvaspdf

import (
	"fmt"
	"image/color"
	"io"

	"github.com/benoitkugler/okcanvas/canvasdraw"
	"github.com/benoitkugler/okcanvas/canvasitem"
	"github.com/benoitkugler/okcanvas/canvaspath"
	"github.com/jung-kurt/gofpdf"
	"go.uber.org/zap"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// assert interface conformance
var (
	_ canvasdraw.Driver  = (*Renderer)(nil)
	_ canvasdraw.Filler  = (*filler)(nil)
	_ canvasdraw.Stroker = (*stroker)(nil)
)

type Renderer struct {
	pdf   *gofpdf.Fpdf
	fonts *canvasdraw.FontLibrary

	registered map[string]bool // fonts tried, true if added to the document
	dirty      bool            // something is drawn on the current page

	logger *zap.Logger
}

// NewRenderer returns a renderer writing to a new document,
// with one page of the surface size.
// If `fonts` is nil, only the Go fonts are available.
func NewRenderer(fonts *canvasdraw.FontLibrary, logger *zap.Logger) *Renderer {
	if fonts == nil {
		fonts = canvasdraw.NewFontLibrary()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: canvasdraw.Width, Ht: canvasdraw.Height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	return &Renderer{pdf: pdf, fonts: fonts, registered: make(map[string]bool), logger: logger}
}

// RenderItemsToPDF draws the items on a one page document,
// written to `w`.
func RenderItemsToPDF(items []canvasitem.DrawableItem, w io.Writer, fonts *canvasdraw.FontLibrary) error {
	rd := NewRenderer(fonts, nil)
	canvasdraw.Render(rd, items)
	return rd.Output(w)
}

// Output closes the document and writes it to `w`.
// The renderer must not be used afterwards.
func (rd *Renderer) Output(w io.Writer) error {
	if err := rd.pdf.Output(w); err != nil {
		return fmt.Errorf("writing pdf: %w", err)
	}
	return nil
}

// PageCount returns the number of pages of the document.
func (rd *Renderer) PageCount() int { return rd.pdf.PageCount() }

func (rd *Renderer) Size() (width, height float64) {
	return canvasdraw.Width, canvasdraw.Height
}

// Erase starts a new page, unless the current one is blank.
func (rd *Renderer) Erase() {
	if !rd.dirty {
		return
	}
	rd.pdf.AddPage()
	rd.dirty = false
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
	family := rd.useFont(font)
	rd.pdf.SetFont(family, "", font.Size)
	r, g, b, alpha := rgba(c)
	rd.pdf.SetTextColor(r, g, b)
	rd.pdf.SetAlpha(alpha, "Normal")

	width := rd.pdf.GetStringWidth(text)
	// font descriptors are expressed in thousandths of the size,
	// with a negative descent
	desc := rd.pdf.GetFontDesc(family, "")
	baseline := y + float64(desc.Ascent+desc.Descent)/2000*font.Size
	if desc.Ascent == 0 {
		baseline = y + 0.35*font.Size
	}
	rd.pdf.Text(x-width/2, baseline, text)
	rd.dirty = true
}

// builtinFont is registered when the default family
// of the library itself is not usable
const builtinFont = "okcanvas-builtin"

// useFont adds the font to the document if needed,
// and returns its family name
func (rd *Renderer) useFont(font canvasitem.Font) string {
	if key, data := rd.fonts.Resolve(font); rd.addFont(key, data) {
		return key
	}
	if key, data := rd.fonts.Resolve(canvasitem.Font{Weight: canvasitem.WeightNormal}); rd.addFont(key, data) {
		return key
	}
	rd.addFont(builtinFont, goregular.TTF)
	return builtinFont
}

// addFont returns false if `data` is not a valid font,
// logging it once per key
func (rd *Renderer) addFont(key string, data []byte) bool {
	if valid, tried := rd.registered[key]; tried {
		return valid
	}
	// gofpdf does not report invalid font files
	_, err := opentype.Parse(data)
	if err == nil {
		rd.pdf.AddUTF8FontFromBytes(key, "", data)
		err = rd.pdf.Error()
	}
	if err != nil {
		rd.logger.Warn("invalid font, using the default one", zap.String("font", key), zap.Error(err))
		rd.pdf.ClearError()
	}
	rd.registered[key] = err == nil
	return err == nil
}

func rgba(c color.Color) (r, g, b int, alpha float64) {
	nc := color.NRGBAModel.Convert(c).(color.NRGBA)
	return int(nc.R), int(nc.G), int(nc.B), float64(nc.A) / 255
}

// painter records the path, and writes it
// once its color is known, since color operators
// are not allowed inside a PDF path object
type painter struct {
	canvaspath.Path
	rd    *Renderer
	color color.Color
}

func (p *painter) Clear() { p.Path.Clear() }

func (p *painter) SetColor(c color.Color) { p.color = c }

// writePath emits the PDF path construction operators.
func (p *painter) writePath() {
	p.Path.AddTo(pather{pdf: p.rd.pdf})
	p.rd.dirty = true
}

// implements the filling operation
type filler struct {
	painter
	useNonZeroWinding bool
}

func (f *filler) SetWinding(useNonZeroWinding bool) {
	f.useNonZeroWinding = useNonZeroWinding
}

func (f *filler) Draw() {
	if f.color == nil || len(f.Path) == 0 {
		return
	}
	r, g, b, alpha := rgba(f.color)
	f.rd.pdf.SetFillColor(r, g, b)
	f.rd.pdf.SetAlpha(alpha, "Normal")
	f.writePath()
	styleStr := "f*"
	if f.useNonZeroWinding {
		styleStr = "f"
	}
	f.rd.pdf.DrawPath(styleStr)
}

// implements the stroking operation
type stroker struct {
	painter
	options canvasdraw.StrokeOptions
}

var (
	joinStyles = [...]string{canvasdraw.Miter: "miter", canvasdraw.Round: "round", canvasdraw.Bevel: "bevel"}
	capStyles  = [...]string{canvasdraw.ButtCap: "butt", canvasdraw.SquareCap: "square", canvasdraw.RoundCap: "round"}
)

func (s *stroker) SetStrokeOptions(options canvasdraw.StrokeOptions) { s.options = options }

func (s *stroker) Draw() {
	if s.color == nil || len(s.Path) == 0 {
		return
	}
	r, g, b, alpha := rgba(s.color)
	pdf := s.rd.pdf
	pdf.SetDrawColor(r, g, b)
	pdf.SetAlpha(alpha, "Normal")
	pdf.SetLineWidth(float64(s.options.LineWidth) / 64)
	pdf.SetLineJoinStyle(joinStyles[s.options.LineJoin])
	pdf.SetLineCapStyle(capStyles[s.options.LineCap])
	s.writePath()
	pdf.DrawPath("D")
}

// pather forwards the path commands to the document
type pather struct {
	pdf *gofpdf.Fpdf
}

func fixedTof(a fixed.Point26_6) (float64, float64) {
	return float64(a.X) / 64, float64(a.Y) / 64
}

func (p pather) Start(a fixed.Point26_6) { p.pdf.MoveTo(fixedTof(a)) }

func (p pather) Line(b fixed.Point26_6) { p.pdf.LineTo(fixedTof(b)) }

func (p pather) QuadBezier(b fixed.Point26_6, c fixed.Point26_6) {
	cx, cy := fixedTof(b)
	x, y := fixedTof(c)
	p.pdf.CurveTo(cx, cy, x, y)
}

func (p pather) CubeBezier(b fixed.Point26_6, c fixed.Point26_6, d fixed.Point26_6) {
	cx0, cy0 := fixedTof(b)
	cx1, cy1 := fixedTof(c)
	x, y := fixedTof(d)
	p.pdf.CurveBezierCubicTo(cx0, cy0, cx1, cy1, x, y)
}

func (p pather) Stop(closeLoop bool) {
	if closeLoop {
		p.pdf.ClosePath()
	}
}
