// Package types provides common type aliases and utilities.
package types

import (
	"github.com/shopspring/decimal"
)

// Money represents a monetary value with full precision.
// Uses decimal.Decimal to avoid floating-point errors.
type Money = decimal.Decimal

// NewMoney creates a Money value from a float.
// WARNING: Use NewMoneyFromString for precise values.
func NewMoney(f float64) Money {
	return decimal.NewFromFloat(f)
}

// NewMoneyFromString creates a Money value from a string.
// This is the preferred method for monetary values.
func NewMoneyFromString(s string) (Money, error) {
	return decimal.NewFromString(s)
}

// MustMoney creates a Money value from a string, panics on error.
// Use only for constants.
func MustMoney(s string) Money {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Zero returns zero Money value.
func Zero() Money {
	return decimal.Zero
}

// Coerce returns the value behind p, or zero when p is nil.
// Mirrors the dashboard's treatment of absent cost fields.
func Coerce(p *Money) Money {
	if p == nil {
		return decimal.Zero
	}
	return *p
}

// FirstNonZero returns the first value that is present and non-zero,
// or zero when none qualifies. A zero value falls through to the next
// candidate, matching short-circuit cost fallback semantics.
func FirstNonZero(candidates ...*Money) Money {
	for _, c := range candidates {
		if c != nil && !c.IsZero() {
			return *c
		}
	}
	return decimal.Zero
}

// Sum adds all values, treating nil entries as zero.
func Sum(values ...*Money) Money {
	total := decimal.Zero
	for _, v := range values {
		if v != nil {
			total = total.Add(*v)
		}
	}
	return total
}

// RoundWhole rounds to the nearest whole unit, halves away from zero.
func RoundWhole(m Money) Money {
	return m.Round(0)
}

// Ptr returns a pointer to m. Convenience for optional money fields.
func Ptr(m Money) *Money {
	return &m
}
