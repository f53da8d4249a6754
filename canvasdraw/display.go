package canvasdraw

import (
	"image/color"
	"math"
	"reflect"
	"sync"

	"github.com/benoitkugler/okcanvas/canvasitem"
	"github.com/benoitkugler/okcanvas/canvaspath"
	"go.uber.org/zap"
)

// Overlay is shown on top of the items while
// the upstream data is still being produced.
type Overlay struct {
	Message   string
	Wash      color.NRGBA // covers the whole surface
	Ring      color.NRGBA
	TextColor color.NRGBA
}

var DefaultOverlay = Overlay{
	Message:   "Processing prompt...",
	Wash:      color.NRGBA{R: 255, G: 255, B: 255, A: 128},
	Ring:      color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255},
	TextColor: color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255},
}

const (
	ringRadius = 16
	ringWidth  = 4
	ringGap    = 12 // between the ring and the message
)

var overlayFont = canvasitem.Font{
	Family: canvasitem.DefaultFontFamily,
	Size:   14,
	Weight: canvasitem.WeightNormal,
}

// Display hosts a driver and redraws it when
// the item list changes. It is safe for concurrent use.
type Display struct {
	mu      sync.Mutex
	driver  Driver
	items   []canvasitem.DrawableItem
	loading bool
	overlay Overlay
	logger  *zap.Logger
}

// NewDisplay wraps `driver`. A nil logger disables logging.
func NewDisplay(driver Driver, overlay Overlay, logger *zap.Logger) *Display {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Display{driver: driver, overlay: overlay, logger: logger}
}

// Items returns the current item list.
func (d *Display) Items() []canvasitem.DrawableItem {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.items
}

// Loading reports whether the overlay is shown.
func (d *Display) Loading() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.loading
}

// SetItems stores `items` and performs a render pass
// if they differ from the current ones.
// It returns true if a pass was done.
func (d *Display) SetItems(items []canvasitem.DrawableItem) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if reflect.DeepEqual(d.items, items) {
		return false
	}
	d.items = items
	if items == nil {
		// nothing to draw, previous pixels are kept
		return false
	}
	d.logger.Debug("render pass", zap.Int("items", len(items)))
	Render(d.driver, items)
	if d.loading {
		d.drawOverlay()
	}
	return true
}

// SetLoading shows or hides the overlay.
// Hiding it redraws the current items.
func (d *Display) SetLoading(loading bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.loading == loading || d.driver == nil {
		d.loading = loading
		return
	}
	d.loading = loading
	if loading {
		d.drawOverlay()
		return
	}
	if d.items == nil {
		d.driver.Erase()
		return
	}
	Render(d.driver, d.items)
}

func (d *Display) drawOverlay() {
	if d.driver == nil {
		return
	}
	w, h := d.driver.Size()
	cx, cy := w/2, h/2

	paint(d.driver, canvaspath.Rect(0, 0, w, h), d.overlay.Wash, nil, 0)

	// three quarters of a ring, opening at the top right
	ring := canvaspath.Arc(cx, cy, ringRadius, ringRadius, -math.Pi/2, math.Pi)
	paint(d.driver, ring, nil, d.overlay.Ring, ringWidth)

	if d.overlay.Message != "" {
		y := cy + ringRadius + ringGap + overlayFont.Size/2
		d.driver.FillText(d.overlay.Message, cx, y, overlayFont, d.overlay.TextColor)
	}
}
