package money

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/strongo/decimal"
)

// Common errors
var (
	ErrInvalidAmount     = errors.New("amount must be a non-negative decimal with at most 2 fraction digits")
	ErrInvalidSplitCount = errors.New("split count must be positive")
	ErrInvalidWeights    = errors.New("split weights must be positive")
	ErrSplitOverflow     = errors.New("amount and weights are too large to split exactly")
)

// Amount is an exact monetary value held as an integer count of minor units
// (cents) with a fixed scale of 2. All arithmetic happens on the integer
// representation, so amounts never accumulate binary-float rounding error.
type Amount decimal.Decimal64p2

// Zero is the zero amount.
const Zero Amount = 0

// Parse converts a user-facing decimal string (e.g. "12.50") into an Amount.
// Negative values, more than 2 fraction digits, and malformed input all fail
// with ErrInvalidAmount.
func Parse(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		return 0, ErrInvalidAmount
	}
	if i := strings.IndexByte(s, '.'); i >= 0 {
		frac := s[i+1:]
		if len(frac) == 0 || len(frac) > 2 {
			return 0, ErrInvalidAmount
		}
	}
	d, err := decimal.ParseDecimal64p2(s)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	return Amount(d), nil
}

// FromMinorUnits builds an Amount from a raw count of minor units.
func FromMinorUnits(n int64) Amount {
	return Amount(decimal.Decimal64p2(n))
}

// MinorUnits returns the raw count of minor units.
func (a Amount) MinorUnits() int64 {
	return int64(a)
}

// Add returns a + b.
func (a Amount) Add(b Amount) Amount { return a + b }

// Sub returns a - b.
func (a Amount) Sub(b Amount) Amount { return a - b }

// Neg returns -a.
func (a Amount) Neg() Amount { return -a }

// Abs returns the absolute value of a.
func (a Amount) Abs() Amount {
	if a < 0 {
		return -a
	}
	return a
}

// IsZero reports whether a is exactly zero.
func (a Amount) IsZero() bool { return a == 0 }

// Cmp compares a and b, returning -1, 0 or 1.
func (a Amount) Cmp(b Amount) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// String renders the amount as a decimal string, e.g. "33.34".
func (a Amount) String() string {
	return decimal.Decimal64p2(a).String()
}

// MarshalJSON encodes the amount as a plain JSON number, which is what the
// REST contract expects for share and balance fields.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalJSON accepts either a JSON number or a quoted decimal string.
// Negative values are rejected the same way Parse rejects them: amounts
// entering over the wire are always magnitudes, signs only appear in
// computed nets.
func (a *Amount) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" {
		return nil
	}
	if strings.HasPrefix(s, "-") {
		return fmt.Errorf("money: cannot unmarshal %q: %w", s, ErrInvalidAmount)
	}
	d, err := decimal.ParseDecimal64p2(s)
	if err != nil {
		return fmt.Errorf("money: cannot unmarshal %q: %w", s, ErrInvalidAmount)
	}
	*a = Amount(d)
	return nil
}

// EqualSplit divides a into n parts that sum exactly to a. The remainder left
// by integer division is handed out one minor unit at a time to the
// earliest-indexed parts, so the result is deterministic: 100.00 over 3
// becomes [33.34 33.33 33.33].
func (a Amount) EqualSplit(n int) ([]Amount, error) {
	if n <= 0 {
		return nil, ErrInvalidSplitCount
	}
	base := a.MinorUnits() / int64(n)
	remainder := a.MinorUnits() - base*int64(n)

	parts := make([]Amount, n)
	for i := range parts {
		units := base
		if int64(i) < remainder {
			units++
		}
		parts[i] = FromMinorUnits(units)
	}
	return parts, nil
}

// ProportionalSplit divides a by the given positive integer weights so the
// parts sum exactly to a. Each part gets the floor of its proportional share
// first; leftover minor units then go to the earliest-indexed parts.
//
// The minor-unit count times any single weight must fit in int64; splits
// whose intermediate product would overflow fail with ErrSplitOverflow.
func (a Amount) ProportionalSplit(weights []int) ([]Amount, error) {
	if len(weights) == 0 {
		return nil, ErrInvalidWeights
	}
	var totalWeight, maxWeight int64
	for _, w := range weights {
		if w <= 0 {
			return nil, ErrInvalidWeights
		}
		totalWeight += int64(w)
		if int64(w) > maxWeight {
			maxWeight = int64(w)
		}
	}
	if units := a.Abs().MinorUnits(); units > 0 && units > math.MaxInt64/maxWeight {
		return nil, ErrSplitOverflow
	}

	parts := make([]Amount, len(weights))
	var distributed int64
	for i, w := range weights {
		units := a.MinorUnits() * int64(w) / totalWeight
		parts[i] = FromMinorUnits(units)
		distributed += units
	}

	remainder := a.MinorUnits() - distributed
	for i := 0; remainder > 0; i++ {
		parts[i] += 1
		remainder--
	}
	return parts, nil
}

// Sum adds up a slice of amounts.
func Sum(amounts []Amount) Amount {
	var total Amount
	for _, a := range amounts {
		total += a
	}
	return total
}
