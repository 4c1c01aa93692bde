package presentation

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatter_CurrencyEnglishGrouping(t *testing.T) {
	f, err := NewFormatter(Config{CurrencySymbol: "R$", CurrencyLocale: "en-US"})
	require.NoError(t, err)

	assert.Equal(t, "R$ 1,234.50", f.Currency(decimal.RequireFromString("1234.5")))
	assert.Equal(t, "R$ 0.00", f.Currency(decimal.Zero))
	assert.Equal(t, "-R$ 10.01", f.Currency(decimal.RequireFromString("-10.005")))
}

func TestFormatter_CurrencyDefaultLocale(t *testing.T) {
	f, err := NewFormatter(DefaultConfig())
	require.NoError(t, err)

	got := f.Currency(decimal.RequireFromString("1234567.891"))
	assert.True(t, strings.HasPrefix(got, "R$ "), got)
	assert.Contains(t, got, "89")
}

func TestFormatter_InvalidLocale(t *testing.T) {
	_, err := NewFormatter(Config{CurrencyLocale: "!!"})
	assert.Error(t, err)
}

func TestFormatter_Number(t *testing.T) {
	f, err := NewFormatter(Config{CurrencyLocale: "en"})
	require.NoError(t, err)
	assert.Equal(t, "1,234.57", f.Number(1234.567, 2))
	assert.Equal(t, "16.7", f.Number(16.7, 1))
	assert.Equal(t, "98,765", f.Integer(98765))
}
