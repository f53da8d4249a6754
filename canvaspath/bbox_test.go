package canvaspath

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/image/math/fixed"
)

func randPoint(rd *rand.Rand, offsetx, offsety int) fixed.Point26_6 {
	x, y := rd.Intn(1100), rd.Intn(1000)
	return fixed.Point26_6{X: fixed.Int26_6(x + offsetx), Y: fixed.Int26_6(y + offsety)}
}

func generateCurve(rd *rand.Rand, order int) bezier {
	a, b := randPoint(rd, 500, 500), randPoint(rd, 500, 500)
	switch order {
	case 1:
		return line{a, b}
	case 2:
		return quadBezier{a, b, randPoint(rd, 500, 500)}
	default:
		return cubicBezier{a, b, randPoint(rd, 500, 500), randPoint(rd, 500, 500)}
	}
}

// the box contains every point of the curve,
// and each of its sides is reached
func TestBoundingBox(t *testing.T) {
	rd := rand.New(rand.NewSource(1))
	const tol = 1. / 64 // rounding to fixed point
	for i := 0; i < 300; i++ {
		curve := generateCurve(rd, 1+i%3)
		box := boundsFromRect(computeBoundingBox(curve))
		maxX, maxY := box.Max()

		reachedMinX, reachedMaxX := box.X+box.W, box.X
		reachedMinY, reachedMaxY := box.Y+box.H, box.Y
		for s := 0; s <= 1000; s++ {
			x, y := curve.evaluateCurve(float64(s) / 1000)
			if x < box.X-tol || x > maxX+tol || y < box.Y-tol || y > maxY+tol {
				t.Fatalf("curve %v: point (%g, %g) outside of %v", curve, x, y, box)
			}
			reachedMinX, reachedMaxX = min(reachedMinX, x), max(reachedMaxX, x)
			reachedMinY, reachedMaxY = min(reachedMinY, y), max(reachedMaxY, y)
		}
		// sampling may miss the extremum by a little
		assert.InDelta(t, box.X, reachedMinX, 0.1)
		assert.InDelta(t, maxX, reachedMaxX, 0.1)
		assert.InDelta(t, box.Y, reachedMinY, 0.1)
		assert.InDelta(t, maxY, reachedMaxY, 0.1)
	}
}

func TestAggregateBoxes(t *testing.T) {
	rd := rand.New(rand.NewSource(2))
	for i := 0; i < 50; i++ {
		min1, diff1 := randPoint(rd, 100, 100), randPoint(rd, 100, 100)
		rect1 := fixed.Rectangle26_6{Min: min1, Max: min1.Add(diff1)}
		min2, diff2 := randPoint(rd, 100, 100), randPoint(rd, 100, 100)
		rect2 := fixed.Rectangle26_6{Min: min2, Max: min2.Add(diff2)}

		res := union(rect1, rect2)
		assert.Equal(t, rect1.Union(rect2), res) // same as x/image for non empty boxes
		assert.True(t, rect1.In(res))
		assert.True(t, rect2.In(res))
	}

	// degenerate boxes are kept
	horizontal := fixed.Rectangle26_6{Min: Pt(0, 10), Max: Pt(20, 10)}
	vertical := fixed.Rectangle26_6{Min: Pt(30, 0), Max: Pt(30, 5)}
	assert.Equal(t, fixed.Rectangle26_6{Min: Pt(0, 0), Max: Pt(30, 10)}, union(horizontal, vertical))
}

func TestBoundsLines(t *testing.T) {
	var p Path
	p.Start(Pt(10, 10))
	p.Line(Pt(50, 10))
	assert.Equal(t, Bounds{X: 10, Y: 10, W: 40}, p.Bounds())

	p.Line(Pt(50, 30))
	assert.Equal(t, Bounds{X: 10, Y: 10, W: 40, H: 20}, p.Bounds())
	x, y := p.Bounds().Center()
	assert.Equal(t, [2]float64{30, 20}, [2]float64{x, y})
}
