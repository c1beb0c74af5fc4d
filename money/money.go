// Package money holds monetary amounts in whole units of account and the
// ceiling rounding policy applied wherever an amount is derived from user
// input or from a computation.
package money

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// Unit is the smallest unit of account, in rubles. Every Money value is a
// multiple of Unit; RoundUp never produces anything finer.
const Unit = 1

// Money is an amount in whole rubles. Values are never negative.
type Money int64

// Max is the largest accepted amount, one quadrillion rubles. Parse
// rejects anything above it and Mul saturates at it, so no arithmetic on
// Money can overflow int64 into a negative value.
const Max Money = 1e15

var (
	ErrEmpty    = errors.New("money: empty input")
	ErrNotANum  = errors.New("money: not a number")
	ErrNegative = errors.New("money: negative amount")
	ErrTooLarge = errors.New("money: amount too large")
)

// Parse reads a user-entered decimal amount. Both "." and "," are accepted
// as the decimal separator. Negative and malformed input is rejected.
func Parse(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrEmpty
	}
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ErrNotANum
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrNotANum
	}
	if v < 0 {
		return 0, ErrNegative
	}
	if v > float64(Max) {
		return 0, ErrTooLarge
	}
	return v, nil
}

// RoundUp rounds toward positive infinity to the nearest multiple of Unit,
// saturating at Max so the int64 conversion cannot wrap negative.
// Idempotent: RoundUp(m.Float()) == m for any Money m.
func RoundUp(v float64) Money {
	if v <= 0 {
		return 0
	}
	if v >= float64(Max) {
		return Max
	}
	return Money(int64(math.Ceil(v/float64(Unit))) * Unit)
}

// ParseRoundUp combines Parse and RoundUp, the path every money field
// takes from raw text to a stored value.
func ParseRoundUp(s string) (Money, error) {
	v, err := Parse(s)
	if err != nil {
		return 0, err
	}
	return RoundUp(v), nil
}

// Float converts back to a decimal amount.
func (m Money) Float() float64 {
	return float64(m)
}

// Mul multiplies by an integer quantity, saturating at Max. Rounding is
// not re-applied: the factors are already multiples of Unit.
func (m Money) Mul(qty int) Money {
	if m <= 0 || qty <= 0 {
		return 0
	}
	if Money(qty) > Max/m {
		return Max
	}
	return m * Money(qty)
}

// String renders the amount the way the review summary and the generated
// documents show it.
func (m Money) String() string {
	return strconv.FormatInt(int64(m), 10)
}
