package canvasitem

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseColor(t *testing.T) {
	for _, test := range []struct {
		in       string
		expected color.NRGBA
	}{
		{"#000", color.NRGBA{A: 255}},
		{"#FFF", color.NRGBA{R: 255, G: 255, B: 255, A: 255}},
		{"#ff000080", color.NRGBA{R: 255, A: 0x80}},
		{"#00ff00", color.NRGBA{G: 255, A: 255}},
		{"#0f08", color.NRGBA{G: 255, A: 0x88}},
		{"red", color.NRGBA{R: 255, A: 255}},
		{" SkyBlue ", color.NRGBA{R: 135, G: 206, B: 235, A: 255}},
		{"transparent", color.NRGBA{}},
		{"rgb(10, 20, 30)", color.NRGBA{R: 10, G: 20, B: 30, A: 255}},
		{"rgba(10,20,30,0.5)", color.NRGBA{R: 10, G: 20, B: 30, A: 128}},
		{"rgb(100% 0% 0% / 50%)", color.NRGBA{R: 255, A: 128}},
		{"hsl(120, 100%, 50%)", color.NRGBA{G: 255, A: 255}},
		{"hsla(0, 0%, 100%, 1)", color.NRGBA{R: 255, G: 255, B: 255, A: 255}},
	} {
		got, err := ParseColor(test.in)
		require.NoError(t, err, test.in)
		assert.Equal(t, test.expected, got, test.in)
	}

	for _, in := range []string{"", "#12", "#gggggg", "notacolor", "rgb(1,2)", "rgb 1 2 3"} {
		_, err := ParseColor(in)
		assert.Error(t, err, in)
	}
}

func TestParseFont(t *testing.T) {
	for _, test := range []struct {
		in       string
		expected Font
	}{
		{"normal 24px Inter", Font{Family: "Inter", Size: 24, Weight: 400}},
		{"", Font{Family: DefaultFontFamily, Size: 24, Weight: 400}},
		{"italic bold 30px 'Open Sans', sans-serif", Font{Family: "Open Sans", Size: 30, Weight: 700, Slant: SlantItalic}},
		{"normal 12pt serif", Font{Family: "serif", Size: 16, Weight: 400}},
		{"oblique 300 2em/1.5 Mono", Font{Family: "Mono", Size: 32, Weight: 300, Slant: SlantOblique}},
		{"bold", Font{Family: DefaultFontFamily, Size: 24, Weight: 700}},
		{"normal Arial", Font{Family: "Arial", Size: 24, Weight: 400}},
		{"normal 18px", Font{Family: DefaultFontFamily, Size: 18, Weight: 400}},
	} {
		assert.Equal(t, test.expected, ParseFont(test.in), test.in)
	}
}

func TestResolveStyleDefaults(t *testing.T) {
	st := ResolveStyle(nil)
	assert.Equal(t, DefaultFill, st.Fill)
	assert.Nil(t, st.Border)
	assert.Equal(t, 2., st.BorderWidth)
	assert.Equal(t, DefaultTextColor, st.TextColor)
	assert.Equal(t, Font{Family: "Inter", Size: 24, Weight: 400}, st.Font)

	// border width alone does not enable the border
	st = ResolveStyle(&Style{BorderWidth: 8})
	assert.Nil(t, st.Border)
	assert.Equal(t, 8., st.BorderWidth)
}

func TestResolveStyle(t *testing.T) {
	st := ResolveStyle(&Style{
		Fill:        "blue",
		BorderColor: "#ff0000",
		TextColor:   "not a color",
		Font:        "32px Roboto",
		FontStyle:   "bold",
	})
	assert.Equal(t, color.NRGBA{B: 255, A: 255}, st.Fill)
	require.NotNil(t, st.Border)
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, *st.Border)
	assert.Equal(t, DefaultTextColor, st.TextColor)
	assert.Equal(t, Font{Family: "Roboto", Size: 32, Weight: 700}, st.Font)

	st = ResolveStyle(&Style{BorderColor: "???"})
	assert.Nil(t, st.Border)

	// as canvas lineWidth, non positive widths are ignored
	for _, w := range []float64{0, -3} {
		st = ResolveStyle(&Style{BorderColor: "red", BorderWidth: w})
		assert.Equal(t, DefaultBorderWidth, st.BorderWidth)
	}
}

func TestDimensions(t *testing.T) {
	var d *Dimensions
	assert.Equal(t, 300., d.WidthOr(300))
	assert.Equal(t, 150., d.HeightOr(150))
	d = &Dimensions{Width: 100}
	assert.Equal(t, 100., d.WidthOr(300))
	assert.Equal(t, 150., d.HeightOr(150))
}

func TestValidate(t *testing.T) {
	assert.NoError(t, DrawableItem{Type: Shape, Content: "star"}.Validate())
	assert.NoError(t, DrawableItem{Type: Text, Content: "anything"}.Validate())
	assert.ErrorIs(t, DrawableItem{Type: Shape, Content: "blob"}.Validate(), ErrUnknownShape)
	assert.ErrorIs(t, DrawableItem{Type: "image"}.Validate(), ErrUnknownType)
}

const payload = `[
	{"type": "shape", "content": "circle", "text": "Hi", "dimensions": {"width": 100},
	 "style": {"fill": "#ff0000", "borderColor": "black", "borderWidth": 4}},
	{"type": "text", "content": "Hello", "style": {"font": "32px Inter"}},
	{"type": "shape", "content": "square", "dimensions": {"width": "120"}}
]`

func TestDecodeArray(t *testing.T) {
	items, err := Decoder{}.Decode(strings.NewReader(payload))
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.Equal(t, DrawableItem{
		Type: Shape, Content: "circle", Text: "Hi",
		Dimensions: &Dimensions{Width: 100},
		Style:      &Style{Fill: "#ff0000", BorderColor: "black", BorderWidth: 4},
	}, items[0])
	assert.Equal(t, Text, items[1].Type)
	assert.Nil(t, items[1].Dimensions)
	assert.Equal(t, 120., items[2].Dimensions.Width)
}

func TestDecodeEnvelope(t *testing.T) {
	items, err := Decoder{}.Decode(strings.NewReader(`{"data": ` + payload + `, "isLoading": false}`))
	require.NoError(t, err)
	assert.Len(t, items, 3)

	items, err = Decoder{Path: "result.canvas.items"}.Decode(strings.NewReader(`{"result": {"canvas": {"items": ` + payload + `}}}`))
	require.NoError(t, err)
	assert.Len(t, items, 3)

	_, err = Decoder{Path: "missing"}.Decode(strings.NewReader(`{"data": []}`))
	assert.ErrorIs(t, err, ErrNoItems)

	_, err = Decoder{}.Decode(strings.NewReader(`{"other": []}`))
	assert.ErrorIs(t, err, ErrNoItems)

	_, err = Decoder{}.Decode(strings.NewReader(`{"data": 4}`))
	assert.ErrorIs(t, err, ErrNoItems)
}

func TestDecodeNull(t *testing.T) {
	for _, in := range []string{`null`, `{"data": null}`} {
		items, err := Decoder{}.Decode(strings.NewReader(in))
		require.NoError(t, err)
		assert.Nil(t, items)
	}

	items, err := Decoder{}.Decode(strings.NewReader(`[]`))
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestDecodeMalformed(t *testing.T) {
	_, err := Decoder{}.Decode(strings.NewReader(`[{"type": "shape",`))
	assert.Error(t, err)

	_, err = Decoder{}.Decode(strings.NewReader(`[{"type": ["shape"]}]`))
	assert.Error(t, err)

	_, err = Decoder{}.Decode(strings.NewReader(`[{"type": "shape", "content": "square", "dimensions": {"width": "wide"}}]`))
	assert.Error(t, err)
}

func TestQuotedNumbers(t *testing.T) {
	var d Dimensions
	require.NoError(t, json.UnmarshalFromString(`{"width": " 120.5", "height": null}`, &d))
	assert.Equal(t, Dimensions{Width: 120.5}, d)

	// other jsoniter users are not affected
	err := jsoniter.ConfigCompatibleWithStandardLibrary.UnmarshalFromString(`{"width": "120"}`, &d)
	assert.Error(t, err)
}

func TestDecodeErrorModes(t *testing.T) {
	const in = `[{"type": "shape", "content": "blob"}, {"type": "text", "content": "ok"}]`

	items, err := Decoder{ErrorMode: IgnoreErrorMode}.Decode(strings.NewReader(in))
	require.NoError(t, err)
	assert.Len(t, items, 2)

	_, err = Decoder{ErrorMode: StrictErrorMode}.Decode(strings.NewReader(in))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownShape)
	var itemErr *ItemError
	require.True(t, errors.As(err, &itemErr))
	assert.Equal(t, 0, itemErr.Index)
	assert.Equal(t, "blob", itemErr.Content)

	core, logs := observer.New(zapcore.WarnLevel)
	items, err = Decoder{ErrorMode: WarnErrorMode, Logger: zap.New(core)}.Decode(strings.NewReader(in))
	require.NoError(t, err)
	assert.Len(t, items, 2)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, int64(0), logs.All()[0].ContextMap()["index"])
}

func TestDecodeCharset(t *testing.T) {
	// "Café" encoded in latin1
	in := []byte("[{\"type\": \"text\", \"content\": \"Caf\xe9\"}]")
	items, err := Decoder{Charset: "latin1"}.Decode(strings.NewReader(string(in)))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Café", items[0].Content)

	_, err = Decoder{Charset: "no-such-charset"}.Decode(strings.NewReader(payload))
	assert.Error(t, err)
}

func TestReadItems(t *testing.T) {
	file := filepath.Join(t.TempDir(), "items.json")
	require.NoError(t, os.WriteFile(file, []byte(`{"data": [{"type": "circle"}, {"type": "text", "content": "ok"}]}`), 0o644))

	// warnings go to the global logger
	core, logs := observer.New(zapcore.WarnLevel)
	restore := zap.ReplaceGlobals(zap.New(core))
	defer restore()

	items, err := ReadItems(file, WarnErrorMode)
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, 1, logs.Len())

	_, err = ReadItems(file, StrictErrorMode)
	assert.ErrorIs(t, err, ErrUnknownType)

	_, err = ReadItems(filepath.Join(t.TempDir(), "missing.json"), IgnoreErrorMode)
	assert.Error(t, err)
}
