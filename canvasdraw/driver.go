// Given a list of drawable items, implements how to
// draw them on a surface.
// This requires a driver implementing the actual draw operations,
// such as a rasterizer to output .png images or a pdf writer.
// See okcanvas/canvasraster, okcanvas/canvaspdf and okcanvas/canvassvg.
package canvasdraw

import (
	"image/color"

	"github.com/benoitkugler/okcanvas/canvasitem"
	"github.com/benoitkugler/okcanvas/canvaspath"
	"golang.org/x/image/math/fixed"
)

// Logical size of the drawing surface.
const (
	Width  = 800
	Height = 600
)

// Drawer knows how to do the actual draw operations
// but doesn't need any knowledge about items.
// Points are expressed in logical units.
type Drawer interface {
	// Clear must reset the internal state (used before starting a new path painting)
	Clear()

	canvaspath.Adder

	// SetColor set the color for the current path
	SetColor(c color.Color)

	// Draw fills or strokes the accumulated path using the current settings
	// depending on the filling mode
	Draw()
}

type Filler interface {
	Drawer

	// Decide to use or not the NonZeroWinding rule for the current path
	SetWinding(useNonZeroWinding bool)
}

type Stroker interface {
	Drawer

	// Parametrize the stroking style for the current path
	SetStrokeOptions(options StrokeOptions)
}

// Driver is the drawing surface.
type Driver interface {
	// Size returns the logical size of the surface
	Size() (width, height float64)

	// Erase discards the whole content of the surface.
	Erase()

	// SetupDrawers returns the backend painters, and
	// will be called at the begining of every path.
	// If the `willXXX` boolean is false, the returned drawer should be nil
	// to avoid useless operations.
	// When both booleans are true, one can assume that the exact same draw operations
	// will be performed on the Filler first and then on the Stroker.
	SetupDrawers(willFill, willStroke bool) (Filler, Stroker)

	// FillText draws `text`, horizontally and vertically
	// centered on (x, y).
	FillText(text string, x, y float64, font canvasitem.Font, c color.Color)
}

// JoinMode type to specify how segments join.
type JoinMode uint8

const (
	Miter JoinMode = iota
	Round
	Bevel
)

func (s JoinMode) String() string {
	switch s {
	case Miter:
		return "miter"
	case Round:
		return "round"
	case Bevel:
		return "bevel"
	default:
		return "<unknown JoinMode>"
	}
}

// CapMode defines how to draw caps on the ends of lines
type CapMode uint8

const (
	ButtCap CapMode = iota
	SquareCap
	RoundCap
)

func (c CapMode) String() string {
	switch c {
	case ButtCap:
		return "butt"
	case SquareCap:
		return "square"
	case RoundCap:
		return "round"
	default:
		return "<unknown CapMode>"
	}
}

type StrokeOptions struct {
	LineWidth  fixed.Int26_6 // width of the line
	MiterLimit fixed.Int26_6 // the miter cutoff value for miter joins
	LineJoin   JoinMode
	LineCap    CapMode
}

// DefaultStrokeOptions mirrors the defaults of an HTML canvas :
// 1 unit wide, miter joins limited at 10, butt caps.
var DefaultStrokeOptions = StrokeOptions{
	LineWidth:  fixed.I(1),
	MiterLimit: fixed.I(10),
	LineJoin:   Miter,
	LineCap:    ButtCap,
}
