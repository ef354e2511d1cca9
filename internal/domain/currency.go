package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Currency is immutable ISO 4217 reference data. The conversion factor
// between major and minor units is fixed at construction and never
// recomputed elsewhere.
type Currency struct {
	Code       string
	Name       string
	Number     int
	MinorUnits int
	Countries  []string

	conversionFactor decimal.Decimal
}

// NewCurrency builds a validated currency value. MinorUnits is the number
// of decimal digits of the minor unit (2 for USD cents, 3 for TND millimes,
// 0 for JPY).
func NewCurrency(name, code string, number, minorUnits int, countries ...string) (Currency, error) {
	if strings.TrimSpace(name) == "" {
		return Currency{}, newError(ErrInvalidCurrencyCode, "currency name can not be empty")
	}
	if strings.TrimSpace(code) == "" {
		return Currency{}, newError(ErrInvalidCurrencyCode, "currency code can not be empty")
	}
	return Currency{
		Code:             code,
		Name:             name,
		Number:           number,
		MinorUnits:       minorUnits,
		Countries:        countries,
		conversionFactor: decimal.New(1, int32(minorUnits)),
	}, nil
}

// ParseCurrency resolves a currency by its alphabetic code. The lookup is
// case-sensitive and exact.
func ParseCurrency(code string) (Currency, error) {
	if strings.TrimSpace(code) == "" {
		return Currency{}, newError(ErrInvalidCurrencyCode, "currency code can not be empty")
	}
	c, ok := currencyByCode[code]
	if !ok {
		return Currency{}, newError(ErrInvalidCurrencyCode, "the given currency code %q is not valid", code)
	}
	return c, nil
}

// ParseCurrencyNumber resolves a currency by its ISO numeric code.
func ParseCurrencyNumber(number int) (Currency, error) {
	if number <= 0 {
		return Currency{}, newError(ErrInvalidCurrencyNumber, "currency number %d can not be zero or negative", number)
	}
	c, ok := currencyByNumber[number]
	if !ok {
		return Currency{}, newError(ErrInvalidCurrencyNumber, "the given currency number %d is not valid", number)
	}
	return c, nil
}

// ToMinorUnits converts an amount expressed in major units to minor units.
func (c Currency) ToMinorUnits(major decimal.Decimal) decimal.Decimal {
	return major.Mul(c.conversionFactor)
}

// ToMajorUnits converts an amount expressed in minor units to major units.
func (c Currency) ToMajorUnits(minor decimal.Decimal) decimal.Decimal {
	return minor.Div(c.conversionFactor)
}

// Equal reports whether two currencies are the same, by code.
func (c Currency) Equal(other Currency) bool {
	return c.Code == other.Code
}

// IsZero reports whether the currency is the zero value, i.e. not taken
// from the registry.
func (c Currency) IsZero() bool {
	return c.Code == ""
}

func (c Currency) String() string {
	return fmt.Sprintf("code: %s name: %s number: %d country(s): [%s]",
		c.Code, c.Name, c.Number, strings.Join(c.Countries, ","))
}
