package canvassvg

import (
	"bytes"
	"encoding/xml"
	"image/color"
	"strings"
	"testing"

	"github.com/benoitkugler/okcanvas/canvasdraw"
	"github.com/benoitkugler/okcanvas/canvasitem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, items []canvasitem.DrawableItem, opts Options) string {
	t.Helper()
	var out bytes.Buffer
	require.NoError(t, RenderItemsToSVG(items, &out, opts))

	// the document must be well formed
	dec := xml.NewDecoder(bytes.NewReader(out.Bytes()))
	for {
		_, err := dec.Token()
		if err != nil {
			require.Equal(t, "EOF", err.Error())
			break
		}
	}
	return out.String()
}

func TestSquare(t *testing.T) {
	doc := render(t, []canvasitem.DrawableItem{{
		Type: canvasitem.Shape, Content: "square",
		Dimensions: &canvasitem.Dimensions{Width: 120},
		Style:      &canvasitem.Style{Fill: "red", BorderColor: "rgba(0, 0, 255, 0.5)", BorderWidth: 4},
	}}, Options{})

	assert.True(t, strings.HasPrefix(doc, `<svg xmlns="http://www.w3.org/2000/svg" width="800" height="600" viewBox="0 0 800 600">`))
	assert.Contains(t, doc, `<path d="M340.000,240.000 L460.000,240.000 L460.000,360.000 L340.000,360.000 Z" fill="#ff0000" fill-rule="nonzero"/>`)
	assert.Contains(t, doc, `fill="none" stroke="#0000ff" stroke-opacity="0.502" stroke-width="4" stroke-linejoin="miter" stroke-linecap="butt" stroke-miterlimit="10"/>`)
}

func TestNoBorder(t *testing.T) {
	doc := render(t, []canvasitem.DrawableItem{{Type: canvasitem.Shape, Content: "star"}}, Options{})
	assert.Equal(t, 1, strings.Count(doc, "<path"))
	assert.NotContains(t, doc, "stroke")
}

func TestText(t *testing.T) {
	doc := render(t, []canvasitem.DrawableItem{
		{Type: canvasitem.Text, Content: "Hello"},
		{Type: canvasitem.Text, Content: "a < b & c", Style: &canvasitem.Style{Fill: "white", Font: `bold 30px "Fira Sans", serif`, FontStyle: "italic"}},
	}, Options{})

	assert.Contains(t, doc, `<text x="400" y="300" font-family="Inter" font-size="24" font-weight="400" font-style="normal" fill="#000000" text-anchor="middle" dominant-baseline="middle">Hello</text>`)
	assert.Contains(t, doc, `font-family="Fira Sans" font-size="30" font-weight="700" font-style="italic" fill="#ffffff"`)
	assert.Contains(t, doc, `>a &lt; b &amp; c</text>`)
}

func TestCylinderCaps(t *testing.T) {
	doc := render(t, []canvasitem.DrawableItem{{Type: canvasitem.Shape, Content: "cylinder", Style: &canvasitem.Style{BorderColor: "black"}}}, Options{})
	assert.Equal(t, 6, strings.Count(doc, "<path"))
	// body and top cap are closed, the bottom cap is not
	assert.Equal(t, 4, strings.Count(doc, ` Z"`))
}

func TestOptions(t *testing.T) {
	doc := render(t, []canvasitem.DrawableItem{}, Options{Scale: 1.5, Background: color.White})
	assert.Contains(t, doc, `width="1200" height="900" viewBox="0 0 800 600"`)
	assert.Contains(t, doc, `<rect width="100%" height="100%" fill="#ffffff"/>`)
}

func TestErase(t *testing.T) {
	rd := NewRenderer(Options{})
	canvasdraw.Render(rd, []canvasitem.DrawableItem{{Type: canvasitem.Shape, Content: "circle"}})
	canvasdraw.Render(rd, nil) // no-op
	var out bytes.Buffer
	_, err := rd.WriteTo(&out)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out.String(), "<path"))

	canvasdraw.Render(rd, []canvasitem.DrawableItem{{Type: canvasitem.Text, Content: "only"}})
	out.Reset()
	_, err = rd.WriteTo(&out)
	require.NoError(t, err)
	assert.NotContains(t, out.String(), "<path")
	assert.Contains(t, out.String(), ">only</text>")
}
