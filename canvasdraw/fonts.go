package canvasdraw

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/benoitkugler/okcanvas/canvasitem"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
)

// fontVariant indexes the four faces of a family
type fontVariant uint8

const (
	regular fontVariant = iota
	bold
	italic
	boldItalic
)

var variantSuffixes = [...]string{regular: "", bold: "-bold", italic: "-italic", boldItalic: "-bolditalic"}

func variantOf(isBold, isItalic bool) fontVariant {
	switch {
	case isBold && isItalic:
		return boldItalic
	case isBold:
		return bold
	case isItalic:
		return italic
	default:
		return regular
	}
}

const fallbackFamily = "go"

// FontLibrary stores TrueType data by family.
// Unknown families resolve to the Go fonts, so that
// text is always drawn. It is safe for concurrent use.
type FontLibrary struct {
	mu       sync.RWMutex
	families map[string]*[4][]byte
}

// NewFontLibrary returns a library holding the Go fonts.
func NewFontLibrary() *FontLibrary {
	lib := &FontLibrary{families: make(map[string]*[4][]byte)}
	lib.Add(fallbackFamily, false, false, goregular.TTF)
	lib.Add(fallbackFamily, true, false, gobold.TTF)
	lib.Add(fallbackFamily, false, true, goitalic.TTF)
	lib.Add(fallbackFamily, true, true, gobolditalic.TTF)
	return lib
}

// Add registers the TrueType `data` for the given face.
// Family names are case insensitive.
func (lib *FontLibrary) Add(family string, isBold, isItalic bool, data []byte) {
	family = strings.ToLower(family)
	lib.mu.Lock()
	defer lib.mu.Unlock()
	faces := lib.families[family]
	if faces == nil {
		faces = new([4][]byte)
		lib.families[family] = faces
	}
	faces[variantOf(isBold, isItalic)] = data
}

// AddFile reads and registers a .ttf file.
func (lib *FontLibrary) AddFile(family string, isBold, isItalic bool, file string) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("loading font %s: %w", family, err)
	}
	lib.Add(family, isBold, isItalic, data)
	return nil
}

// Resolve returns the TrueType data to use for `f`, and a
// key identifying it, suitable for caching.
// A family without the requested variant falls back on its regular face,
// and an unknown family on the Go fonts.
func (lib *FontLibrary) Resolve(f canvasitem.Font) (key string, data []byte) {
	lib.mu.RLock()
	defer lib.mu.RUnlock()

	variant := variantOf(f.IsBold(), f.IsItalic())
	family := strings.ToLower(f.Family)
	faces := lib.families[family]
	if faces == nil || (faces[variant] == nil && faces[regular] == nil) {
		family, faces = fallbackFamily, lib.families[fallbackFamily]
	}
	if faces[variant] == nil {
		variant = regular
	}
	return family + variantSuffixes[variant], faces[variant]
}
