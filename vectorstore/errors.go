package vectorstore

import (
	"errors"
	"fmt"

	"github.com/fieldline-ai/fieldline/nested"
)

// ErrInvalidK is returned when k is not positive.
var ErrInvalidK = errors.New("k must be positive")

// DimensionMismatchError indicates a vector count or dimensionality that
// disagrees with the store's contents.
type DimensionMismatchError struct {
	Expected int
	Actual   int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

// KeyNotFoundError indicates a Get for a key with no stored vector.
type KeyNotFoundError struct {
	Key nested.LeafKey
}

func (e *KeyNotFoundError) Error() string {
	return fmt.Sprintf("key not found: %s", e.Key)
}
