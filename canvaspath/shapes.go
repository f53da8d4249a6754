package canvaspath

import (
	"math"

	"github.com/benoitkugler/okcanvas/canvasitem"
	"golang.org/x/image/math/fixed"
)

// This file implements the transformation from
// high level shapes to their path equivalent

// maxDx is the maximum radians a cubic splice is allowed to span
// when approximating an ellipse.
const maxDx float64 = math.Pi / 8

// Shape is the geometry of one item. Each part
// is painted (filled, then stroked) before the next one.
type Shape []Path

// Bounds returns the union of the extents of the parts.
func (s Shape) Bounds() Bounds {
	var (
		box fixed.Rectangle26_6
		ok  bool
	)
	for _, p := range s {
		r, has := p.extent()
		if !has {
			continue
		}
		if !ok {
			box, ok = r, true
			continue
		}
		box = union(box, r)
	}
	if !ok {
		return Bounds{}
	}
	return boundsFromRect(box)
}

// Template describes how a shape kind is built,
// and the default dimensions used when the item
// does not provide them.
type Template struct {
	Kind   canvasitem.ShapeKind
	Width  float64
	Height float64 // zero when the kind only depends on its width

	build func(cx, cy, w, h float64) Shape
}

// Build returns the geometry of the shape centered at (cx, cy),
// applying the default dimensions. `dims` may be nil.
func (t Template) Build(cx, cy float64, dims *canvasitem.Dimensions) Shape {
	return t.build(cx, cy, dims.WidthOr(t.Width), dims.HeightOr(t.Height))
}

var templates = [...]Template{
	{Kind: canvasitem.Circle, Width: 300, build: circle},
	{Kind: canvasitem.Triangle, Width: 600, Height: 1200, build: triangle},
	{Kind: canvasitem.Rectangle, Width: 600, Height: 900, build: rectangle},
	{Kind: canvasitem.Square, Width: 300, build: square},
	{Kind: canvasitem.Pentagon, Width: 300, build: polygon(5)},
	{Kind: canvasitem.Hexagon, Width: 300, build: polygon(6)},
	{Kind: canvasitem.Heptagon, Width: 300, build: polygon(7)},
	{Kind: canvasitem.Oval, Width: 300, Height: 150, build: oval},
	{Kind: canvasitem.Star, Width: 300, build: star},
	{Kind: canvasitem.Cylinder, Width: 300, Height: 450, build: cylinder},
}

var templatesByKind = make(map[string]Template, len(templates))

func init() {
	for _, t := range templates {
		templatesByKind[string(t.Kind)] = t
	}
}

// Lookup returns the template for the given shape kind.
func Lookup(kind string) (Template, bool) {
	t, ok := templatesByKind[kind]
	return t, ok
}

// Templates returns all the supported shapes.
func Templates() []Template {
	return append([]Template(nil), templates[:]...)
}

func circle(cx, cy, w, _ float64) Shape {
	return Shape{Ellipse(cx, cy, w/2, w/2)}
}

// isoceles, apex at top
func triangle(cx, cy, w, h float64) Shape {
	var p Path
	p.Start(Pt(cx, cy-h/2))
	p.Line(Pt(cx-w/2, cy+h/2))
	p.Line(Pt(cx+w/2, cy+h/2))
	p.Stop(true)
	return Shape{p}
}

func rectangle(cx, cy, w, h float64) Shape {
	return Shape{Rect(cx-w/2, cy-h/2, w, h)}
}

func square(cx, cy, w, _ float64) Shape {
	return rectangle(cx, cy, w, w)
}

// polygon returns a builder for a regular polygon
// whose radius is the width
func polygon(n int) func(cx, cy, w, h float64) Shape {
	return func(cx, cy, w, _ float64) Shape {
		return Shape{RegularPolygon(cx, cy, n, w)}
	}
}

func oval(cx, cy, w, h float64) Shape {
	return Shape{Ellipse(cx, cy, w/2, h/2)}
}

// five branches, the width being the outer radius
func star(cx, cy, w, _ float64) Shape {
	return Shape{StarPolygon(cx, cy, 5, w, w/2)}
}

// cylinder is made of a body, a top cap and the
// lower half of a bottom cap, centered on the bottom edge.
func cylinder(cx, cy, w, h float64) Shape {
	x, y := cx-w/2, cy-h/2
	return Shape{
		Rect(x, y, w, h),
		Ellipse(cx, y, w/2, w/4),
		Arc(cx, y+h, w/2, w/4, 0, math.Pi),
	}
}

// Rect returns the closed path of an axis aligned rectangle,
// starting at its top-left corner.
func Rect(x, y, w, h float64) Path {
	var p Path
	p.Start(Pt(x, y))
	p.Line(Pt(x+w, y))
	p.Line(Pt(x+w, y+h))
	p.Line(Pt(x, y+h))
	p.Stop(true)
	return p
}

// RegularPolygon returns the closed path of a regular polygon with
// `n` vertices on the circle of radius `r`, the first one pointing up.
func RegularPolygon(cx, cy float64, n int, r float64) Path {
	var p Path
	angle := 2 * math.Pi / float64(n)
	for i := 0; i < n; i++ {
		pt := Pt(cx+r*math.Cos(float64(i)*angle-math.Pi/2), cy+r*math.Sin(float64(i)*angle-math.Pi/2))
		if i == 0 {
			p.Start(pt)
		} else {
			p.Line(pt)
		}
	}
	p.Stop(true)
	return p
}

// StarPolygon returns the closed path of a star with `n` branches, alternating
// between the outer radius `R` and inner radius `r`, the first branch pointing up.
func StarPolygon(cx, cy float64, n int, R, r float64) Path {
	var p Path
	angle := math.Pi / float64(n)
	for i := 0; i < 2*n; i++ {
		radius := R
		if i%2 == 1 {
			radius = r
		}
		pt := Pt(cx+radius*math.Cos(float64(i)*angle-math.Pi/2), cy+radius*math.Sin(float64(i)*angle-math.Pi/2))
		if i == 0 {
			p.Start(pt)
		} else {
			p.Line(pt)
		}
	}
	p.Stop(true)
	return p
}

// Ellipse returns the closed path of an axis aligned ellipse,
// starting at its rightmost point.
func Ellipse(cx, cy, rx, ry float64) Path {
	p := Arc(cx, cy, rx, ry, 0, 2*math.Pi)
	if len(p) != 0 {
		p.Stop(true)
	}
	return p
}

// Arc returns the open path of an elliptical arc, from angle `theta0` to `theta1`
// (in radians, clockwise on screen since y points down).
// Negative radii yield an empty path.
func Arc(cx, cy, rx, ry, theta0, theta1 float64) Path {
	if rx < 0 || ry < 0 {
		return nil
	}
	deltaEta := theta1 - theta0

	// Round up to determine number of cubic splines to approximate the curve
	segs := int(math.Ceil(math.Abs(deltaEta)/maxDx - 1e-9))
	if segs < 1 {
		segs = 1
	}
	dEta := deltaEta / float64(segs) // span of each segment
	// Approximate the ellipse using a set of cubic bezier curves by the method of
	// L. Maisonobe, "Drawing an elliptical arc using polylines, quadratic
	// or cubic Bezier curves", 2003
	// https://www.spaceroots.org/documents/elllipse/elliptical-arc.pdf
	tde := math.Tan(dEta / 2)
	alpha := math.Sin(dEta) * (math.Sqrt(4+3*tde*tde) - 1) / 3 // Math is fun!

	var p Path
	lx, ly := ellipsePointAt(rx, ry, theta0, cx, cy)
	ldx, ldy := ellipsePrime(rx, ry, theta0)
	p.Start(Pt(lx, ly))
	for i := 1; i <= segs; i++ {
		eta := theta0 + dEta*float64(i)
		px, py := ellipsePointAt(rx, ry, eta, cx, cy)
		dx, dy := ellipsePrime(rx, ry, eta)
		p.CubeBezier(Pt(lx+alpha*ldx, ly+alpha*ldy),
			Pt(px-alpha*dx, py-alpha*dy), Pt(px, py))
		lx, ly, ldx, ldy = px, py, dx, dy
	}
	return p
}

// ellipsePrime gives tangent vectors for parameterized elipse; a, b, radii, eta parameter
func ellipsePrime(a, b, eta float64) (px, py float64) {
	return -a * math.Sin(eta), b * math.Cos(eta)
}

// ellipsePointAt gives points for parameterized elipse; a, b, radii, eta parameter, center cx, cy
func ellipsePointAt(a, b, eta, cx, cy float64) (px, py float64) {
	return cx + a*math.Cos(eta), cy + b*math.Sin(eta)
}
