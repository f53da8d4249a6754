// Provides the data model of the canvas: the drawable items
// produced upstream (typically by a generation service),
// and the resolution of their optional style fields.
// Items are consumed by the renderer in okcanvas/canvasdraw.
package canvasitem

// ItemType is the variant tag of a DrawableItem.
type ItemType string

const (
	Shape ItemType = "shape"
	Text  ItemType = "text"
)

// ShapeKind names a shape, and is the Content of shape items.
type ShapeKind string

const (
	Circle    ShapeKind = "circle"
	Triangle  ShapeKind = "triangle"
	Rectangle ShapeKind = "rectangle"
	Square    ShapeKind = "square"
	Pentagon  ShapeKind = "pentagon"
	Hexagon   ShapeKind = "hexagon"
	Heptagon  ShapeKind = "heptagon"
	Oval      ShapeKind = "oval"
	Star      ShapeKind = "star"
	Cylinder  ShapeKind = "cylinder"
)

// ShapeKinds lists the supported kinds, in a stable order.
var ShapeKinds = [...]ShapeKind{
	Circle, Triangle, Rectangle, Square, Pentagon,
	Hexagon, Heptagon, Oval, Star, Cylinder,
}

// KnownShape returns true if `kind` is one of ShapeKinds.
func KnownShape(kind string) bool {
	for _, k := range ShapeKinds {
		if string(k) == kind {
			return true
		}
	}
	return false
}

// Dimensions are optional sizes. A zero value means "not set":
// each shape then uses its own default.
type Dimensions struct {
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
}

// WidthOr returns the width, or `def` if not set.
// It is safe to call on a nil pointer.
func (d *Dimensions) WidthOr(def float64) float64 {
	if d == nil || d.Width == 0 {
		return def
	}
	return d.Width
}

// HeightOr returns the height, or `def` if not set.
// It is safe to call on a nil pointer.
func (d *Dimensions) HeightOr(def float64) float64 {
	if d == nil || d.Height == 0 {
		return def
	}
	return d.Height
}

// Style is the optional style bag of an item, as supplied.
// Colors use the CSS notation, see ParseColor.
// Use ResolveStyle to obtain the values actually used for drawing.
type Style struct {
	Fill        string  `json:"fill,omitempty"`
	BorderColor string  `json:"borderColor,omitempty"`
	BorderWidth float64 `json:"borderWidth,omitempty"`
	TextColor   string  `json:"textColor,omitempty"`
	Font        string  `json:"font,omitempty"` // size and family, like "24px Inter"
	FontStyle   string  `json:"fontStyle,omitempty"`
}

// DrawableItem is one unit of renderable input.
// For shapes, Content is a ShapeKind; for text items,
// it is the literal string to render.
type DrawableItem struct {
	Type       ItemType    `json:"type"`
	Content    string      `json:"content"`
	Text       string      `json:"text,omitempty"` // optional caption drawn inside a shape
	Dimensions *Dimensions `json:"dimensions,omitempty"`
	Style      *Style      `json:"style,omitempty"`
}

// Validate reports whether the item can be drawn.
// Invalid items are not an error for the renderer, which simply skips them.
func (it DrawableItem) Validate() error {
	switch it.Type {
	case Shape:
		if !KnownShape(it.Content) {
			return &ItemError{Index: -1, Content: it.Content, Err: ErrUnknownShape}
		}
	case Text:
	default:
		return &ItemError{Index: -1, Content: string(it.Type), Err: ErrUnknownType}
	}
	return nil
}
