// Package index provides the positions used to address students and sessions.
package index

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrOutOfRange is returned when an index would be negative once converted
// to its zero-based form.
var ErrOutOfRange = errors.New("index: out of range")

// Index is a position in a list. It is stored zero-based and is never negative.
type Index struct {
	zeroBased int
}

// FromZeroBased creates an Index from a zero-based value.
func FromZeroBased(n int) (Index, error) {
	if n < 0 {
		return Index{}, fmt.Errorf("%w: zero-based %d", ErrOutOfRange, n)
	}
	return Index{zeroBased: n}, nil
}

// FromOneBased creates an Index from a one-based value.
func FromOneBased(n int) (Index, error) {
	if n < 1 {
		return Index{}, fmt.Errorf("%w: one-based %d", ErrOutOfRange, n)
	}
	return Index{zeroBased: n - 1}, nil
}

// MustOneBased is FromOneBased for constants and tests.
func MustOneBased(n int) Index {
	i, err := FromOneBased(n)
	if err != nil {
		panic(err)
	}
	return i
}

func (i Index) ZeroBased() int {
	return i.zeroBased
}

func (i Index) OneBased() int {
	return i.zeroBased + 1
}

func (i Index) Equal(other Index) bool {
	return i.zeroBased == other.zeroBased
}

// String returns the zero-based value.
func (i Index) String() string {
	return strconv.Itoa(i.zeroBased)
}
