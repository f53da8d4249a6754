// Implements an abstract representation of
// the paths drawn on the canvas, and the geometry
// of the supported shapes.
// Paths are then consumed by painting drivers,
// see okcanvas/canvasdraw.
package canvaspath

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/image/math/fixed"
)

// Adder is implemented by types accumulating path commands.
type Adder interface {
	// Start starts a new curve at the given point.
	Start(a fixed.Point26_6)
	// Line adds a line segment to the path
	Line(b fixed.Point26_6)
	// QuadBezier adds a quadratic bezier curve to the path
	QuadBezier(b, c fixed.Point26_6)
	// CubeBezier adds a cubic bezier curve to the path
	CubeBezier(b, c, d fixed.Point26_6)
	// Stop closes the path to the start point if closeLoop is true
	Stop(closeLoop bool)
}

// Operation groups the different path commands
type Operation interface {
	// add itself on `q`
	addTo(q Adder)
}

type MoveTo fixed.Point26_6

type LineTo fixed.Point26_6

type QuadTo [2]fixed.Point26_6

type CubicTo [3]fixed.Point26_6

type Close struct{}

// starts a new path at the given point.
func (op MoveTo) addTo(q Adder) {
	q.Stop(false) // implicit close if currently in path.
	q.Start(fixed.Point26_6(op))
}

func (op LineTo) addTo(q Adder) { q.Line(fixed.Point26_6(op)) }

func (op QuadTo) addTo(q Adder) { q.QuadBezier(op[0], op[1]) }

func (op CubicTo) addTo(q Adder) { q.CubeBezier(op[0], op[1], op[2]) }

func (op Close) addTo(q Adder) { q.Stop(true) }

// Path describes a sequence of basic operations.
// Shapes are reduced to paths.
// Path implements Adder, so that paths may be recorded.
type Path []Operation

var _ Adder = (*Path)(nil)

// AddTo replays the path on `q`, and ends it.
func (p Path) AddTo(q Adder) {
	for _, op := range p {
		op.addTo(q)
	}
	q.Stop(false)
}

// IsClosed returns true if the last operation closes the path.
func (p Path) IsClosed() bool {
	if len(p) == 0 {
		return false
	}
	_, ok := p[len(p)-1].(Close)
	return ok
}

// Vertices returns the end points of each operation,
// in order. The point closing the path is not repeated.
func (p Path) Vertices() []fixed.Point26_6 {
	var out []fixed.Point26_6
	for _, op := range p {
		switch op := op.(type) {
		case MoveTo:
			out = append(out, fixed.Point26_6(op))
		case LineTo:
			out = append(out, fixed.Point26_6(op))
		case QuadTo:
			out = append(out, op[1])
		case CubicTo:
			out = append(out, op[2])
		}
	}
	return out
}

func fixedToF(a fixed.Int26_6) float32 { return float32(a) / 64 }

// ToSVGPath returns a string representation of the path
func (p Path) ToSVGPath() string {
	chunks := make([]string, len(p))
	for i, op := range p {
		switch op := op.(type) {
		case MoveTo:
			chunks[i] = fmt.Sprintf("M%4.3f,%4.3f", fixedToF(op.X), fixedToF(op.Y))
		case LineTo:
			chunks[i] = fmt.Sprintf("L%4.3f,%4.3f", fixedToF(op.X), fixedToF(op.Y))
		case QuadTo:
			chunks[i] = fmt.Sprintf("Q%4.3f,%4.3f,%4.3f,%4.3f", fixedToF(op[0].X), fixedToF(op[0].Y),
				fixedToF(op[1].X), fixedToF(op[1].Y))
		case CubicTo:
			chunks[i] = fmt.Sprintf("C%4.3f,%4.3f,%4.3f,%4.3f,%4.3f,%4.3f", fixedToF(op[0].X), fixedToF(op[0].Y),
				fixedToF(op[1].X), fixedToF(op[1].Y), fixedToF(op[2].X), fixedToF(op[2].Y))
		case Close:
			chunks[i] = "Z"
		}
	}
	return strings.Join(chunks, " ")
}

// String returns a readable representation of a Path.
func (p Path) String() string {
	return p.ToSVGPath()
}

// Clear zeros the path slice
func (p *Path) Clear() {
	*p = (*p)[:0]
}

// Start starts a new curve at the given point.
func (p *Path) Start(a fixed.Point26_6) {
	*p = append(*p, MoveTo{a.X, a.Y})
}

// Line adds a linear segment to the current curve.
func (p *Path) Line(b fixed.Point26_6) {
	*p = append(*p, LineTo{b.X, b.Y})
}

// QuadBezier adds a quadratic segment to the current curve.
func (p *Path) QuadBezier(b, c fixed.Point26_6) {
	*p = append(*p, QuadTo{b, c})
}

// CubeBezier adds a cubic segment to the current curve.
func (p *Path) CubeBezier(b, c, d fixed.Point26_6) {
	*p = append(*p, CubicTo{b, c, d})
}

// Stop joins the ends of the path
func (p *Path) Stop(closeLoop bool) {
	if closeLoop {
		*p = append(*p, Close{})
	}
}

// maxFixed bounds the coordinates, so that the difference
// of two points still fits in an Int26_6.
const maxFixed = 1 << 28

// Pt converts logical coordinates to a fixed point,
// rounding to the nearest 1/64.
func Pt(x, y float64) fixed.Point26_6 {
	return fixed.Point26_6{X: ToFixed(x), Y: ToFixed(y)}
}

// ToFixed converts `f` to a fixed point value, rounded to the
// nearest 1/64. Values out of range are clamped: oversized
// shapes are clipped by the surface instead of wrapping around.
func ToFixed(f float64) fixed.Int26_6 {
	f = math.Round(f * 64)
	switch {
	case f > maxFixed:
		return maxFixed
	case f < -maxFixed:
		return -maxFixed
	}
	return fixed.Int26_6(f)
}

// ToFloat converts back a fixed point to logical coordinates.
func ToFloat(a fixed.Point26_6) (x, y float64) {
	return float64(a.X) / 64, float64(a.Y) / 64
}
