package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCurrency(t *testing.T) {
	gbp, err := ParseCurrency("GBP")
	assert.NoError(t, err)
	assert.Equal(t, "GBP", gbp.Code)
	assert.Equal(t, "Pound Sterling", gbp.Name)
	assert.Equal(t, 826, gbp.Number)
	assert.Equal(t, 2, gbp.MinorUnits)
	assert.Contains(t, gbp.Countries, "United Kingdom")
}

func TestParseCurrency_CaseSensitive(t *testing.T) {
	_, err := ParseCurrency("gbp")
	assert.ErrorIs(t, err, ErrInvalidCurrencyCode)
}

func TestParseCurrency_Invalid(t *testing.T) {
	for _, code := range []string{"", "   ", "XXX", "US"} {
		_, err := ParseCurrency(code)
		assert.ErrorIs(t, err, ErrInvalidCurrencyCode, "code %q", code)
	}
}

func TestParseCurrencyNumber(t *testing.T) {
	usd, err := ParseCurrencyNumber(840)
	assert.NoError(t, err)
	assert.Equal(t, "USD", usd.Code)

	tnd, err := ParseCurrencyNumber(788)
	assert.NoError(t, err)
	assert.Equal(t, "TND", tnd.Code)
	assert.Equal(t, 3, tnd.MinorUnits)
}

func TestParseCurrencyNumber_Invalid(t *testing.T) {
	for _, number := range []int{0, -1, 99999} {
		_, err := ParseCurrencyNumber(number)
		assert.ErrorIs(t, err, ErrInvalidCurrencyNumber, "number %d", number)
	}
}

func TestCurrency_ScaleConversion(t *testing.T) {
	tests := []struct {
		code  string
		major string
		minor string
	}{
		{"GBP", "125.12", "12512"},
		{"JPY", "125", "125"},
		{"TND", "262.22", "262220"},
		{"USD", "0.01", "1"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			c, err := ParseCurrency(tt.code)
			require.NoError(t, err)

			major := decimal.RequireFromString(tt.major)
			minor := decimal.RequireFromString(tt.minor)

			assert.True(t, c.ToMinorUnits(major).Equal(minor), "ToMinorUnits(%s)", major)
			assert.True(t, c.ToMajorUnits(minor).Equal(major), "ToMajorUnits(%s)", minor)
		})
	}
}

func TestCurrency_RoundTrip(t *testing.T) {
	// toMinor(toMajor(x)) == x for every registered currency.
	x := decimal.RequireFromString("123456.789")
	for code := range currencyByCode {
		c := currencyByCode[code]
		assert.True(t, c.ToMinorUnits(c.ToMajorUnits(x)).Equal(x), "currency %s", code)
	}
}

func TestCurrency_Equal(t *testing.T) {
	usd, _ := ParseCurrency("USD")
	alsoUSD, _ := ParseCurrencyNumber(840)
	eur, _ := ParseCurrency("EUR")

	assert.True(t, usd.Equal(alsoUSD))
	assert.False(t, usd.Equal(eur))
	assert.False(t, usd.IsZero())
	assert.True(t, Currency{}.IsZero())
}
