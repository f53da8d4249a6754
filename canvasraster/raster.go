// Implements a raster backend to render drawable items,
// by wrapping rasterx.
package canvasraster

import (
	"image"
	"image/color"

	"github.com/benoitkugler/okcanvas/canvasdraw"
	"github.com/benoitkugler/okcanvas/canvasitem"
	"github.com/benoitkugler/okcanvas/canvaspath"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

var _ canvasdraw.Driver = (*Renderer)(nil) // assert interface conformance

// Renderer draws on an image whose size is the logical
// surface size multiplied by a scale factor.
type Renderer struct {
	img        *image.RGBA
	scale      float64
	background image.Image

	dasher *rasterx.Dasher // both share the same scanner
	filler *rasterx.Filler

	fonts *FontCache
}

// Options tunes the rasterization.
type Options struct {
	// Scale is the number of pixels per logical unit.
	// Zero means 1.
	Scale float64

	// Background is used to erase the surface.
	// Nil means transparent.
	Background color.Color

	// Fonts is used for text. Nil means the Go fonts only.
	Fonts *FontCache
}

// NewRenderer returns a renderer drawing on a new image, with the logical
// size of the surface.
func NewRenderer(opts Options) *Renderer {
	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}
	w, h := int(canvasdraw.Width*scale), int(canvasdraw.Height*scale)
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())

	rd := &Renderer{
		img:        img,
		scale:      scale,
		background: image.Transparent,
		dasher:     rasterx.NewDasher(w, h, scanner),
		filler:     rasterx.NewFiller(w, h, scanner),
		fonts:      opts.Fonts,
	}
	if opts.Background != nil {
		rd.background = image.NewUniform(opts.Background)
	}
	if rd.fonts == nil {
		rd.fonts = NewFontCache(nil)
	}
	return rd
}

// RenderItemsToImage uses a ScannerGV instance to render the
// items into an image and returns it.
func RenderItemsToImage(items []canvasitem.DrawableItem, opts Options) *image.RGBA {
	rd := NewRenderer(opts)
	canvasdraw.Render(rd, items)
	return rd.Image()
}

// Image returns the target image, which is updated
// by subsequent drawings.
func (rd *Renderer) Image() *image.RGBA { return rd.img }

func (rd *Renderer) Size() (width, height float64) {
	return canvasdraw.Width, canvasdraw.Height
}

func (rd *Renderer) Erase() {
	draw.Draw(rd.img, rd.img.Bounds(), rd.background, image.Point{}, draw.Src)
}

func (rd *Renderer) SetupDrawers(willFill, willStroke bool) (f canvasdraw.Filler, s canvasdraw.Stroker) {
	if willFill {
		f = filler{scaled: scaled{target: rd.filler, scale: rd.scale}, filler: rd.filler}
	}
	if willStroke {
		s = stroker{scaled: scaled{target: rd.dasher, scale: rd.scale}, dasher: rd.dasher}
	}
	return f, s
}

func (rd *Renderer) FillText(text string, x, y float64, ft canvasitem.Font, c color.Color) {
	face := rd.fonts.Face(ft, rd.scale)
	d := font.Drawer{Dst: rd.img, Src: image.NewUniform(c), Face: face}
	width := d.MeasureString(text)
	metrics := face.Metrics()
	// center horizontally, and vertically around the middle of the em box
	d.Dot = fixed.Point26_6{
		X: canvaspath.ToFixed(x*rd.scale) - width/2,
		Y: canvaspath.ToFixed(y*rd.scale) + (metrics.Ascent-metrics.Descent)/2,
	}
	d.DrawString(text)
}

// scaled converts logical coordinates to pixels.
type scaled struct {
	target canvaspath.Adder
	scale  float64
}

func (s scaled) pt(a fixed.Point26_6) fixed.Point26_6 {
	return fixed.Point26_6{
		X: canvaspath.ToFixed(float64(a.X) / 64 * s.scale),
		Y: canvaspath.ToFixed(float64(a.Y) / 64 * s.scale),
	}
}

func (s scaled) Start(a fixed.Point26_6) { s.target.Start(s.pt(a)) }

func (s scaled) Line(b fixed.Point26_6) { s.target.Line(s.pt(b)) }

func (s scaled) QuadBezier(b, c fixed.Point26_6) { s.target.QuadBezier(s.pt(b), s.pt(c)) }

func (s scaled) CubeBezier(b, c, d fixed.Point26_6) {
	s.target.CubeBezier(s.pt(b), s.pt(c), s.pt(d))
}

func (s scaled) Stop(closeLoop bool) { s.target.Stop(closeLoop) }

type filler struct {
	scaled
	filler *rasterx.Filler
}

func (f filler) Clear()                 { f.filler.Clear() }
func (f filler) SetColor(c color.Color) { f.filler.SetColor(c) }
func (f filler) Draw()                  { f.filler.Draw() }

func (f filler) SetWinding(useNonZeroWinding bool) { f.filler.SetWinding(useNonZeroWinding) }

type stroker struct {
	scaled
	dasher *rasterx.Dasher
}

var (
	joinToJoin = [...]rasterx.JoinMode{
		canvasdraw.Miter: rasterx.Miter,
		canvasdraw.Round: rasterx.Round,
		canvasdraw.Bevel: rasterx.Bevel,
	}

	capToFunc = [...]rasterx.CapFunc{
		canvasdraw.ButtCap:   rasterx.ButtCap,
		canvasdraw.SquareCap: rasterx.SquareCap,
		canvasdraw.RoundCap:  rasterx.RoundCap,
	}
)

func (s stroker) Clear()                 { s.dasher.Clear() }
func (s stroker) SetColor(c color.Color) { s.dasher.SetColor(c) }
func (s stroker) Draw()                  { s.dasher.Draw() }

func (s stroker) SetStrokeOptions(options canvasdraw.StrokeOptions) {
	s.dasher.SetStroke(
		canvaspath.ToFixed(float64(options.LineWidth)/64*s.scale), options.MiterLimit,
		capToFunc[options.LineCap], capToFunc[options.LineCap], rasterx.FlatGap,
		joinToJoin[options.LineJoin], nil, 0,
	)
}
