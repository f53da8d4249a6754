package canvasitem

import (
	"errors"
	"fmt"
)

var (
	ErrNoItems      = errors.New("no item array found in input")
	ErrUnknownType  = errors.New("unsupported item type")
	ErrUnknownShape = errors.New("unsupported shape kind")
)

// ItemError wraps a validation failure of one item.
type ItemError struct {
	Index   int    // position in the input array, -1 if unknown
	Content string // offending type or content
	Err     error
}

func (e *ItemError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("item %d: %s %q", e.Index, e.Err, e.Content)
	}
	return fmt.Sprintf("%s %q", e.Err, e.Content)
}

func (e *ItemError) Unwrap() error { return e.Err }
