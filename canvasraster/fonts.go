package canvasraster

import (
	"math"
	"sync"

	"github.com/benoitkugler/okcanvas/canvasdraw"
	"github.com/benoitkugler/okcanvas/canvasitem"
	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
)

type faceKey struct {
	font string
	size float64 // in pixels
}

// FontCache parses the fonts of a library on demand
// and keeps the faces for each pixel size.
type FontCache struct {
	lib    *canvasdraw.FontLibrary
	logger *zap.Logger

	mu     sync.Mutex
	parsed map[string]*opentype.Font
	faces  map[faceKey]font.Face
}

// NewFontCache uses `lib`, or the Go fonts only if it is nil.
func NewFontCache(lib *canvasdraw.FontLibrary) *FontCache {
	if lib == nil {
		lib = canvasdraw.NewFontLibrary()
	}
	return &FontCache{
		lib:    lib,
		logger: zap.L(),
		parsed: make(map[string]*opentype.Font),
		faces:  make(map[faceKey]font.Face),
	}
}

// Face returns the face for `ft`, at the given scale.
// Invalid font data is reported and replaced by a basic face.
func (fc *FontCache) Face(ft canvasitem.Font, scale float64) font.Face {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	name, data := fc.lib.Resolve(ft)
	key := faceKey{font: name, size: math.Round(ft.Size*scale*64) / 64}
	if face, ok := fc.faces[key]; ok {
		return face
	}

	face, err := fc.newFace(name, data, key.size)
	if err != nil {
		fc.logger.Warn("invalid font, using a basic face", zap.String("font", name), zap.Error(err))
		face = basicfont.Face7x13
	}
	fc.faces[key] = face
	return face
}

func (fc *FontCache) newFace(name string, data []byte, size float64) (font.Face, error) {
	f, ok := fc.parsed[name]
	if !ok {
		var err error
		f, err = opentype.Parse(data)
		if err != nil {
			return nil, err
		}
		fc.parsed[name] = f
	}
	// at 72 DPI, one point is one pixel
	return opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingNone})
}
