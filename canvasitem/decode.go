package canvasitem

import (
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strconv"
	"strings"
	"unsafe"

	jsoniter "github.com/json-iterator/go"
	"github.com/modern-go/reflect2"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
)

// ErrorMode determines how invalid items are handled when decoding.
type ErrorMode uint8

const (
	// IgnoreErrorMode keeps invalid items silently : the renderer skips them.
	IgnoreErrorMode ErrorMode = iota
	// WarnErrorMode logs invalid items, and keeps them.
	WarnErrorMode
	// StrictErrorMode fails on the first invalid item.
	StrictErrorMode
)

func (m ErrorMode) String() string {
	switch m {
	case IgnoreErrorMode:
		return "ignore"
	case WarnErrorMode:
		return "warn"
	case StrictErrorMode:
		return "strict"
	default:
		return "<unknown ErrorMode>"
	}
}

// json is private to the package : its extension does not
// change the decoding of other jsoniter users.
var json = newJSON()

func newJSON() jsoniter.API {
	api := jsoniter.Config{
		EscapeHTML:             true,
		SortMapKeys:            true,
		ValidateJsonRawMessage: true,
	}.Froze()
	api.RegisterExtension(&quotedNumbers{})
	return api
}

// quotedNumbers accepts strings for float fields, since
// generated payloads often quote numbers : "width": "300"
type quotedNumbers struct {
	jsoniter.DummyExtension
}

func (quotedNumbers) CreateDecoder(typ reflect2.Type) jsoniter.ValDecoder {
	if typ.Kind() == reflect.Float64 {
		return quotedFloatDecoder{}
	}
	return nil
}

type quotedFloatDecoder struct{}

func (quotedFloatDecoder) Decode(ptr unsafe.Pointer, iter *jsoniter.Iterator) {
	switch iter.WhatIsNext() {
	case jsoniter.StringValue:
		s := iter.ReadString()
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			iter.ReportError("quotedFloatDecoder", fmt.Sprintf("invalid number %q", s))
			return
		}
		*(*float64)(ptr) = f
	case jsoniter.NilValue:
		iter.ReadNil()
	default:
		*(*float64)(ptr) = iter.ReadFloat64()
	}
}

// envelopeKeys are looked up, in order, when the input
// is an object and no explicit path is given.
var envelopeKeys = [...]string{"data", "items", "canvas"}

// Decoder reads item lists from JSON payloads.
// The zero value is ready to use : it accepts
// a top-level array or one of the usual envelopes.
type Decoder struct {
	ErrorMode ErrorMode
	// Path is an optional gjson path selecting the item array,
	// such as "result.items".
	Path string
	// Charset is an optional encoding label ("latin1", "utf-16", ...)
	// for inputs which are not UTF-8.
	Charset string
	Logger  *zap.Logger
}

// Decode reads the whole stream and returns the item list.
// A JSON null, or an envelope holding null, returns a nil list
// (which the renderer treats as "nothing to render").
func (dec Decoder) Decode(stream io.Reader) ([]DrawableItem, error) {
	if dec.Charset != "" {
		r, err := charset.NewReaderLabel(dec.Charset, stream)
		if err != nil {
			return nil, fmt.Errorf("input charset: %w", err)
		}
		stream = r
	}
	data, err := io.ReadAll(stream)
	if err != nil {
		return nil, err
	}
	raw, err := dec.locate(data)
	if err != nil || raw == nil {
		return nil, err
	}

	var items []DrawableItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decoding items: %w", err)
	}

	logger := dec.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	for i, item := range items {
		err := item.Validate()
		if err == nil {
			continue
		}
		var itemErr *ItemError
		if errors.As(err, &itemErr) {
			itemErr.Index = i
		}
		switch dec.ErrorMode {
		case StrictErrorMode:
			return nil, err
		case WarnErrorMode:
			logger.Warn("item will not be drawn", zap.Int("index", i), zap.Error(err))
		}
	}
	return items, nil
}

// locate returns the raw JSON array holding the items,
// or nil for a null value.
func (dec Decoder) locate(data []byte) ([]byte, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("invalid JSON input")
	}
	var res gjson.Result
	if dec.Path != "" {
		res = gjson.GetBytes(data, dec.Path)
		if !res.Exists() {
			return nil, fmt.Errorf("path %q: %w", dec.Path, ErrNoItems)
		}
	} else {
		res = gjson.ParseBytes(data)
		if res.IsObject() {
			found := false
			for _, key := range envelopeKeys {
				if v := res.Get(key); v.Exists() {
					res, found = v, true
					break
				}
			}
			if !found {
				return nil, ErrNoItems
			}
		}
	}
	switch {
	case res.Type == gjson.Null:
		return nil, nil
	case !res.IsArray():
		return nil, fmt.Errorf("%w (got %s)", ErrNoItems, res.Type)
	}
	return []byte(res.Raw), nil
}

// ReadItemsStream reads the items from the given JSON stream.
// errMode determines if invalid items are ignored, logged
// (on the global zap logger) or returned as error.
func ReadItemsStream(stream io.Reader, errMode ErrorMode) ([]DrawableItem, error) {
	return Decoder{ErrorMode: errMode, Logger: zap.L()}.Decode(stream)
}

// ReadItems reads the items from the named JSON file.
// See ReadItemsStream.
func ReadItems(file string, errMode ErrorMode) ([]DrawableItem, error) {
	fin, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer fin.Close()
	return ReadItemsStream(fin, errMode)
}
