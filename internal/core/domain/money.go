package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Money is an amount in integer cents.
type Money int64

// MoneyFromFloat rounds f to the nearest cent, halves away from zero.
func MoneyFromFloat(f float64) Money {
	return Money(math.Round(f * 100))
}

// ParseMoney reads a decimal amount such as "49.99" or "10".
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: amount is empty", ErrInvalidInput)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %q is not a decimal number", ErrInvalidInput, s)
	}
	if math.Abs(f*100) >= math.MaxInt64 {
		return 0, fmt.Errorf("%w: %q is out of range", ErrInvalidInput, s)
	}
	return MoneyFromFloat(f), nil
}

// Float64 returns the amount in currency units.
func (m Money) Float64() float64 {
	return float64(m) / 100
}

func (m Money) String() string {
	sign := ""
	v := int64(m)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}
