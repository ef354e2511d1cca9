package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Units selects which side of a Money value is the source of truth when an
// amount is supplied: major units (dollars, pounds) or minor units (cents,
// pence).
type Units string

const (
	UnitsMajor Units = "major"
	UnitsMinor Units = "minor"
)

// MaxAmount is the upper bound for any single amount, in either unit scale.
var MaxAmount = decimal.NewFromInt(1_000_000)

// Money is an immutable amount in a single currency, carrying both the
// major-unit and the minor-unit projection. The invariant
// inMinor == inMajor * conversionFactor holds for every constructed value.
// Mutating operations return a new value.
type Money struct {
	currency Currency
	units    Units
	inMajor  decimal.Decimal
	inMinor  decimal.Decimal
}

// EmptyMoney returns the zero money value used for freshly created wallets
// that have no balance yet.
func EmptyMoney() Money {
	return Money{units: UnitsMajor}
}

// NewMoney builds a money value from an amount expressed in the given
// units. The amount must be non-negative and at most MaxAmount.
func NewMoney(amount decimal.Decimal, currency Currency, units Units) (Money, error) {
	if currency.IsZero() {
		return Money{}, newError(ErrInvalidCurrencyCode, "money requires a registered currency")
	}
	if units != UnitsMajor && units != UnitsMinor {
		return Money{}, newError(ErrInvalidCurrencyCode, "unknown units %q", units)
	}
	m := Money{currency: currency, units: units}
	return m.SetAmount(amount)
}

// SetAmount replaces the amount entirely, repopulating both projections
// from the value's source-of-truth units.
func (m Money) SetAmount(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, newError(ErrNegativeAmount, "the given amount %s is negative", amount)
	}
	if amount.GreaterThan(MaxAmount) {
		return Money{}, newError(ErrMaxAmountExceeded, "the given amount %s is more than the maximum amount allowed", amount)
	}
	if m.units == UnitsMinor {
		m.inMinor = amount
		m.inMajor = m.currency.ToMajorUnits(amount)
		return m, nil
	}
	m.inMajor = amount
	m.inMinor = m.currency.ToMinorUnits(amount)
	return m, nil
}

// UpdateAmount accumulates a positive delta, expressed in the value's
// source-of-truth units. The bound applies to the delta and to the
// resulting total.
func (m Money) UpdateAmount(delta decimal.Decimal) (Money, error) {
	if !delta.IsPositive() {
		return Money{}, newError(ErrNegativeOrZeroAmount, "the given amount %s is either negative or zero", delta)
	}
	if delta.GreaterThan(MaxAmount) {
		return Money{}, newError(ErrMaxAmountExceeded, "the given amount %s is more than the maximum amount allowed", delta)
	}
	if m.units == UnitsMinor {
		return m.SetAmount(m.inMinor.Add(delta))
	}
	return m.SetAmount(m.inMajor.Add(delta))
}

// UpdateBy accumulates another money value of the same currency using
// UpdateAmount validation rules.
func (m Money) UpdateBy(other Money) (Money, error) {
	if err := m.requireSameCurrency(other); err != nil {
		return Money{}, err
	}
	if m.units == UnitsMinor {
		return m.UpdateAmount(other.inMinor)
	}
	return m.UpdateAmount(other.inMajor)
}

func (m Money) Currency() Currency { return m.currency }

func (m Money) Units() Units { return m.units }

// InMajorUnits returns the amount in the conventional denomination of the
// currency (e.g. whole pounds: GBP 125.12).
func (m Money) InMajorUnits() decimal.Decimal { return m.inMajor }

// InMinorUnits returns the amount in the smallest denomination of the
// currency (e.g. pence: GBP 12512).
func (m Money) InMinorUnits() decimal.Decimal { return m.inMinor }

// IsEmpty reports whether the value carries no currency, i.e. it is the
// zero balance of a wallet that was never funded.
func (m Money) IsEmpty() bool { return m.currency.IsZero() }

// Add returns the sum of two money values of the same currency.
func (m Money) Add(other Money) (Money, error) {
	if err := m.requireSameCurrency(other); err != nil {
		return Money{}, err
	}
	return NewMoney(m.inMajor.Add(other.inMajor), m.currency, UnitsMajor)
}

// Sub returns the difference of two money values of the same currency. A
// negative result is rejected with the negative-amount error.
func (m Money) Sub(other Money) (Money, error) {
	if err := m.requireSameCurrency(other); err != nil {
		return Money{}, err
	}
	return NewMoney(m.inMajor.Sub(other.inMajor), m.currency, UnitsMajor)
}

// Cmp compares two money values of the same currency: -1 if m < other,
// 0 if equal, +1 if m > other.
func (m Money) Cmp(other Money) (int, error) {
	if err := m.requireSameCurrency(other); err != nil {
		return 0, err
	}
	return m.inMajor.Cmp(other.inMajor), nil
}

func (m Money) GreaterThan(other Money) (bool, error) {
	c, err := m.Cmp(other)
	return c > 0, err
}

func (m Money) LessThan(other Money) (bool, error) {
	c, err := m.Cmp(other)
	return c < 0, err
}

// Equal reports whether two money values have the same currency and the
// same amount. Unlike the arithmetic operations a currency mismatch is not
// an error here, just inequality.
func (m Money) Equal(other Money) bool {
	return m.currency.Equal(other.currency) && m.inMajor.Equal(other.inMajor)
}

func (m Money) requireSameCurrency(other Money) error {
	if !m.currency.Equal(other.currency) {
		return newError(ErrCurrencyMismatch, "both operands must have the same currency, got %q and %q",
			m.currency.Code, other.currency.Code)
	}
	return nil
}

func (m Money) String() string {
	return fmt.Sprintf("currency: %s major: %s minor: %s", m.currency.Code, m.inMajor, m.inMinor)
}
