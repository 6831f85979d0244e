package noteservice

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/starford/notatnik/internal/apperr"
)

// ParseIndex reads a note position typed by a user. Anything that is not a
// base-10 integer fails with apperr.ErrInvalidIndex.
func ParseIndex(raw string) (int, error) {
	index, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", apperr.ErrInvalidIndex, raw)
	}
	return index, nil
}

// IndexFromNumber converts a JSON number to a note position. Fractions,
// NaN and values outside the int range fail with apperr.ErrInvalidIndex
// instead of being truncated.
func IndexFromNumber(v float64) (int, error) {
	if v != math.Trunc(v) || v < math.MinInt64 || v >= math.MaxInt64 {
		return 0, fmt.Errorf("%w: %v is not an integer", apperr.ErrInvalidIndex, v)
	}
	return int(v), nil
}
