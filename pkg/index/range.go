package index

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidRange is returned for ranges that cannot be parsed or whose
// lower bound is above the upper bound.
var ErrInvalidRange = errors.New("index: invalid range")

// Range is a closed interval of zero-based positions. Positions inside the
// interval that do not address anything are skipped by consumers.
type Range struct {
	lower Index
	upper Index
}

// NewRange creates the closed interval [lower, upper].
func NewRange(lower, upper Index) (Range, error) {
	if lower.ZeroBased() > upper.ZeroBased() {
		return Range{}, fmt.Errorf("%w: %d > %d", ErrInvalidRange, lower.OneBased(), upper.OneBased())
	}
	return Range{lower: lower, upper: upper}, nil
}

// ParseRange reads one-based input of the form "3" or "2-5".
func ParseRange(raw string) (Range, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Range{}, fmt.Errorf("%w: empty", ErrInvalidRange)
	}
	lo, hi := raw, raw
	if parts := strings.SplitN(raw, "-", 2); len(parts) == 2 {
		lo, hi = strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	}
	lower, err := parseOneBased(lo)
	if err != nil {
		return Range{}, err
	}
	upper, err := parseOneBased(hi)
	if err != nil {
		return Range{}, err
	}
	return NewRange(lower, upper)
}

func parseOneBased(s string) (Index, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return Index{}, fmt.Errorf("%w: %q is not a number", ErrInvalidRange, s)
	}
	i, err := FromOneBased(n)
	if err != nil {
		return Index{}, fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}
	return i, nil
}

func (r Range) Lower() Index {
	return r.lower
}

func (r Range) Upper() Index {
	return r.upper
}

// Each calls fn with every zero-based position in the range that is below
// size, in order.
func (r Range) Each(size int, fn func(zeroBased int)) {
	last := min(r.upper.ZeroBased(), size-1)
	for i := r.lower.ZeroBased(); i <= last; i++ {
		fn(i)
	}
}

// String renders the range one-based, the way it was typed.
func (r Range) String() string {
	if r.lower.Equal(r.upper) {
		return strconv.Itoa(r.lower.OneBased())
	}
	return fmt.Sprintf("%d-%d", r.lower.OneBased(), r.upper.OneBased())
}
