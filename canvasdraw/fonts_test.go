package canvasdraw

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/benoitkugler/okcanvas/canvasitem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

func TestFontLibrary(t *testing.T) {
	lib := NewFontLibrary()

	key, data := lib.Resolve(canvasitem.ParseFont("24px Inter"))
	assert.Equal(t, "go", key)
	assert.Equal(t, goregular.TTF, data)

	key, data = lib.Resolve(canvasitem.ParseFont("bold 24px Inter"))
	assert.Equal(t, "go-bold", key)
	assert.Equal(t, gobold.TTF, data)

	key, _ = lib.Resolve(canvasitem.ParseFont("italic bold 24px Inter"))
	assert.Equal(t, "go-bolditalic", key)

	lib.Add("Mono", false, false, gomono.TTF)
	key, data = lib.Resolve(canvasitem.ParseFont("bold 12px mono"))
	assert.Equal(t, "mono", key) // no bold variant
	assert.Equal(t, gomono.TTF, data)
}

func TestFontLibraryFile(t *testing.T) {
	lib := NewFontLibrary()
	file := filepath.Join(t.TempDir(), "mono.ttf")
	require.NoError(t, os.WriteFile(file, gomono.TTF, 0o644))

	require.NoError(t, lib.AddFile("Code", false, true, file))
	key, _ := lib.Resolve(canvasitem.ParseFont("italic 10px Code"))
	assert.Equal(t, "code-italic", key)

	assert.Error(t, lib.AddFile("Code", false, false, filepath.Join(t.TempDir(), "missing.ttf")))
}
