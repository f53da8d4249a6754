package canvaspdf

import (
	"bytes"
	"testing"

	"github.com/benoitkugler/okcanvas/canvasdraw"
	"github.com/benoitkugler/okcanvas/canvasitem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

var items = []canvasitem.DrawableItem{
	{Type: canvasitem.Shape, Content: "cylinder", Text: "store", Style: &canvasitem.Style{Fill: "teal", BorderColor: "rgba(0, 0, 0, 0.5)"}},
	{Type: canvasitem.Shape, Content: "star", Dimensions: &canvasitem.Dimensions{Width: 80}, Style: &canvasitem.Style{Fill: "gold"}},
	{Type: canvasitem.Text, Content: "Héllo wörld", Style: &canvasitem.Style{Font: "italic bold 30px Inter"}},
}

func TestRenderItemsToPDF(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, RenderItemsToPDF(items, &out, nil))
	assert.True(t, bytes.HasPrefix(out.Bytes(), []byte("%PDF-")))
}

func TestPages(t *testing.T) {
	rd := NewRenderer(nil, nil)
	assert.Equal(t, 1, rd.PageCount())

	canvasdraw.Render(rd, nil)
	assert.False(t, rd.dirty)

	canvasdraw.Render(rd, items)
	assert.Equal(t, 1, rd.PageCount()) // the blank page is used
	assert.True(t, rd.dirty)

	canvasdraw.Render(rd, items)
	assert.Equal(t, 2, rd.PageCount())

	canvasdraw.Render(rd, []canvasitem.DrawableItem{})
	assert.Equal(t, 3, rd.PageCount())
	canvasdraw.Render(rd, []canvasitem.DrawableItem{})
	assert.Equal(t, 3, rd.PageCount())

	var out bytes.Buffer
	require.NoError(t, rd.Output(&out))
}

func TestFonts(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	lib := canvasdraw.NewFontLibrary()
	lib.Add("broken", false, false, []byte("not a font"))
	rd := NewRenderer(lib, zap.New(core))

	canvasdraw.Render(rd, []canvasitem.DrawableItem{
		{Type: canvasitem.Text, Content: "one", Style: &canvasitem.Style{Font: "12px broken"}},
		{Type: canvasitem.Text, Content: "two", Style: &canvasitem.Style{Font: "bold 12px Inter"}},
		{Type: canvasitem.Text, Content: "three", Style: &canvasitem.Style{Font: "bold 40px Inter"}},
	})
	assert.Equal(t, 1, logs.FilterMessage("invalid font, using the default one").Len())
	assert.True(t, rd.registered["go"])
	assert.True(t, rd.registered["go-bold"])

	var out bytes.Buffer
	require.NoError(t, rd.Output(&out))
}

func TestFontsDefaultReplaced(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	lib := canvasdraw.NewFontLibrary()
	lib.Add("Go", false, false, []byte("not a font"))
	rd := NewRenderer(lib, zap.New(core))

	canvasdraw.Render(rd, []canvasitem.DrawableItem{
		{Type: canvasitem.Text, Content: "Hello"},
		{Type: canvasitem.Text, Content: "again", Style: &canvasitem.Style{Font: "12px Inter"}},
	})
	assert.Equal(t, 1, logs.Len())
	assert.False(t, rd.registered["go"])
	assert.True(t, rd.registered[builtinFont])
	assert.True(t, rd.dirty)

	var out bytes.Buffer
	require.NoError(t, rd.Output(&out))
}

func TestEmptyPath(t *testing.T) {
	rd := NewRenderer(nil, nil)
	f, s := rd.SetupDrawers(true, true)
	f.Clear()
	f.SetColor(canvasitem.DefaultFill)
	f.Draw()
	s.Clear()
	s.SetColor(canvasitem.DefaultFill)
	s.Draw()
	assert.False(t, rd.dirty)
}
