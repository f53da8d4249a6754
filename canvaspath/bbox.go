package canvaspath

import (
	"math"

	"golang.org/x/image/math/fixed"
)

// computes the exact bounding box of a path, by
// looking at the critical points of each bezier segment

// Bounds is an axis aligned box, in logical units.
type Bounds struct{ X, Y, W, H float64 }

// Max returns the bottom-right corner.
func (b Bounds) Max() (x, y float64) { return b.X + b.W, b.Y + b.H }

// Center returns the center of the box.
func (b Bounds) Center() (x, y float64) { return b.X + b.W/2, b.Y + b.H/2 }

func boundsFromRect(r fixed.Rectangle26_6) Bounds {
	minX, minY := ToFloat(r.Min)
	maxX, maxY := ToFloat(r.Max)
	return Bounds{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// Bounds returns the extent of the path.
// An empty path has a zero Bounds.
func (p Path) Bounds() Bounds {
	r, ok := p.extent()
	if !ok {
		return Bounds{}
	}
	return boundsFromRect(r)
}

func (p Path) extent() (box fixed.Rectangle26_6, ok bool) {
	var a fixed.Point26_6 // current point
	add := func(r fixed.Rectangle26_6) {
		if !ok {
			box, ok = r, true
			return
		}
		box = union(box, r)
	}
	for _, op := range p {
		switch op := op.(type) {
		case MoveTo:
			a = fixed.Point26_6(op)
			add(fixed.Rectangle26_6{Min: a, Max: a}) // degenerate case
		case LineTo:
			b := fixed.Point26_6(op)
			add(computeBoundingBox(line{a, b}))
			a = b
		case QuadTo:
			add(computeBoundingBox(quadBezier{a, op[0], op[1]}))
			a = op[1]
		case CubicTo:
			add(computeBoundingBox(cubicBezier{a, op[0], op[1], op[2]}))
			a = op[2]
		}
	}
	return box, ok
}

// union does not special case empty rectangles,
// as fixed.Rectangle26_6.Union does : degenerate boxes
// of horizontal and vertical lines must be kept.
func union(r, s fixed.Rectangle26_6) fixed.Rectangle26_6 {
	if s.Min.X < r.Min.X {
		r.Min.X = s.Min.X
	}
	if s.Min.Y < r.Min.Y {
		r.Min.Y = s.Min.Y
	}
	if s.Max.X > r.Max.X {
		r.Max.X = s.Max.X
	}
	if s.Max.Y > r.Max.Y {
		r.Max.Y = s.Max.Y
	}
	return r
}

type line [2]fixed.Point26_6

func (l line) criticalPoints() (tX, tY []float64) {
	return nil, nil
}

func (l line) evaluateCurve(t float64) (x, y float64) {
	p0x, p0y := ToFloat(l[0])
	p1x, p1y := ToFloat(l[1])
	return bezierLine(p0x, p1x, t), bezierLine(p0y, p1y, t)
}

func bezierLine(p0, p1, t float64) float64 {
	return (p1-p0)*t + p0
}

type quadBezier [3]fixed.Point26_6

// quadratic polinomial
// x = At^2 + Bt + C
// where
// A = p0 + p2 - 2p1
// B = 2(p1 - p0)
// C = p0
func bezierQuad(p0, p1, p2, t float64) float64 {
	return (p0+p2-2*p1)*t*t + 2*(p1-p0)*t + p0
}

// derivative as at + b where a,b :
func quadraticDerivative(p0, p1, p2 float64) (a, b float64) {
	return 2 * (p2 - p1 - (p1 - p0)), 2 * (p1 - p0)
}

// handle the case where a = 0
func linearRoots(a, b float64) []float64 {
	if a == 0 {
		return nil
	}
	return []float64{-b / a}
}

func (cu quadBezier) criticalPoints() (tX, tY []float64) {
	p0x, p0y := ToFloat(cu[0])
	p1x, p1y := ToFloat(cu[1])
	p2x, p2y := ToFloat(cu[2])

	aX, bX := quadraticDerivative(p0x, p1x, p2x)
	aY, bY := quadraticDerivative(p0y, p1y, p2y)

	return linearRoots(aX, bX), linearRoots(aY, bY)
}

func (cu quadBezier) evaluateCurve(t float64) (x, y float64) {
	p0x, p0y := ToFloat(cu[0])
	p1x, p1y := ToFloat(cu[1])
	p2x, p2y := ToFloat(cu[2])
	return bezierQuad(p0x, p1x, p2x, t), bezierQuad(p0y, p1y, p2y, t)
}

type cubicBezier [4]fixed.Point26_6

func (cu cubicBezier) criticalPoints() (tX, tY []float64) {
	p1x, p1y := ToFloat(cu[0])
	c1x, c1y := ToFloat(cu[1])
	c2x, c2y := ToFloat(cu[2])
	p2x, p2y := ToFloat(cu[3])

	aX, bX, cX := cubicDerivative(p1x, c1x, c2x, p2x)
	aY, bY, cY := cubicDerivative(p1y, c1y, c2y, p2y)

	return quadraticRoots(aX, bX, cX), quadraticRoots(aY, bY, cY)
}

func (cu cubicBezier) evaluateCurve(t float64) (x, y float64) {
	p0x, p0y := ToFloat(cu[0])
	p1x, p1y := ToFloat(cu[1])
	p2x, p2y := ToFloat(cu[2])
	p3x, p3y := ToFloat(cu[3])
	return bezierSpline(p0x, p1x, p2x, p3x, t), bezierSpline(p0y, p1y, p2y, p3y, t)
}

// cubic polinomial
// x = At^3 + Bt^2 + Ct + D
// where A,B,C,D:
// A = p3 -3 * p2 + 3 * p1 - p0
// B = 3 * p2 - 6 * p1 +3 * p0
// C = 3 * p1 - 3 * p0
// D = p0
func bezierSpline(p0, p1, p2, p3, t float64) float64 {
	return (p3-3*p2+3*p1-p0)*t*t*t +
		(3*p2-6*p1+3*p0)*t*t +
		(3*p1-3*p0)*t +
		(p0)
}

// X' = (3*p3-9*p2+9*p1-3*p0)t^2 + (6*p2-12*p1+6*p0)t + (3*p1-3*p0)
// taken as aX^2 + bX + c  a,b and c are:
func cubicDerivative(p0, p1, p2, p3 float64) (a, b, c float64) {
	return 3*p3 - 9*p2 + 9*p1 - 3*p0, 6*p2 - 12*p1 + 6*p0, 3*p1 - 3*p0
}

// b^2 - 4ac = Determinant
func determinant(a, b, c float64) float64 { return b*b - 4*a*c }

func solve(a, b, c float64, s bool) float64 {
	sign := 1.
	if !s {
		sign = -1.
	}
	return (-b + (math.Sqrt((b*b)-(4*a*c)) * sign)) / (2 * a)
}

func quadraticRoots(a, b, c float64) []float64 {
	if a == 0 {
		// bX + c : a simple line
		return linearRoots(b, c)
	}

	d := determinant(a, b, c)
	if d < 0 {
		return nil
	}
	if d == 0 {
		return []float64{solve(a, b, c, true)}
	}
	return []float64{
		solve(a, b, c, true),
		solve(a, b, c, false),
	}
}

type bezier interface {
	// compute the t zeroing the derivative
	criticalPoints() (tX, tY []float64)
	// compute the point a time t
	evaluateCurve(t float64) (x, y float64)
}

func computeBoundingBox(curve bezier) fixed.Rectangle26_6 {
	resX, resY := curve.criticalPoints()

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)

	// always include the begin and end points
	for _, t := range append(append(resX, 0, 1), resY...) {
		// filter invalid value
		if !(0 <= t && t <= 1) {
			continue
		}
		x, y := curve.evaluateCurve(t)
		minX, minY = math.Min(x, minX), math.Min(y, minY)
		maxX, maxY = math.Max(x, maxX), math.Max(y, maxY)
	}
	return fixed.Rectangle26_6{Min: Pt(minX, minY), Max: Pt(maxX, maxY)}
}
