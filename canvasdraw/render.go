package canvasdraw

import (
	"image/color"

	"github.com/benoitkugler/okcanvas/canvasitem"
	"github.com/benoitkugler/okcanvas/canvaspath"
)

// Render performs a render pass : the surface is erased,
// then each item is drawn, in order, at the center of the surface.
//
// A nil `items` is a no-op, leaving the surface untouched,
// as is a nil driver.
// Items which can't be drawn (unknown type or shape kind) are skipped.
func Render(d Driver, items []canvasitem.DrawableItem) {
	if d == nil || items == nil {
		return
	}
	w, h := d.Size()
	cx, cy := w/2, h/2

	d.Erase()
	for _, item := range items {
		drawItem(d, item, cx, cy)
	}
}

func drawItem(d Driver, item canvasitem.DrawableItem, cx, cy float64) {
	switch item.Type {
	case canvasitem.Shape:
		tpl, ok := canvaspath.Lookup(item.Content)
		if !ok {
			return
		}
		style := canvasitem.ResolveStyle(item.Style)
		for _, path := range tpl.Build(cx, cy, item.Dimensions) {
			drawPath(d, path, style)
		}
		if item.Text != "" {
			d.FillText(item.Text, cx, cy, style.Font, style.TextColor)
		}
	case canvasitem.Text:
		if item.Content == "" {
			return
		}
		style := canvasitem.ResolveStyle(item.Style)
		d.FillText(item.Content, cx, cy, style.Font, style.Fill)
	}
}

// drawPath fills the path, then strokes it if the style has a border.
func drawPath(d Driver, path canvaspath.Path, style canvasitem.EffectiveStyle) {
	if len(path) == 0 {
		return
	}
	var border color.Color
	if style.Border != nil {
		border = *style.Border
	}
	paint(d, path, style.Fill, border, style.BorderWidth)
}

// paint fills `path` with `fill` and strokes it with `stroke`.
// A nil color disables the corresponding operation.
func paint(d Driver, path canvaspath.Path, fill, stroke color.Color, lineWidth float64) {
	filler, stroker := d.SetupDrawers(fill != nil, stroke != nil)
	if filler != nil {
		filler.Clear()
		filler.SetWinding(true)
		path.AddTo(filler)
		filler.SetColor(fill)
		filler.Draw()
	}

	if stroker != nil {
		stroker.Clear()
		options := DefaultStrokeOptions
		options.LineWidth = canvaspath.ToFixed(lineWidth)
		stroker.SetStrokeOptions(options)
		path.AddTo(stroker)
		stroker.SetColor(stroke)
		stroker.Draw()
	}
}
