package presentation

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Config carries the presentation choices that are kept out of the
// aggregation code: currency convention and chart palette.
type Config struct {
	CurrencySymbol string
	CurrencyLocale string
	HighlightColor string
	BaseColor      string
}

func DefaultConfig() Config {
	return Config{
		CurrencySymbol: "R$",
		CurrencyLocale: "es-CO",
		HighlightColor: "#1F4E9A",
		BaseColor:      "#72BCD4",
	}
}

// Formatter renders numbers for display using a locale's grouping and
// decimal separators.
type Formatter struct {
	cfg     Config
	printer *message.Printer
}

func NewFormatter(cfg Config) (*Formatter, error) {
	tag, err := language.Parse(cfg.CurrencyLocale)
	if err != nil {
		return nil, fmt.Errorf("parse currency locale %q: %w", cfg.CurrencyLocale, err)
	}
	return &Formatter{cfg: cfg, printer: message.NewPrinter(tag)}, nil
}

// Currency formats v with two decimals, prefixed by the currency symbol.
func (f *Formatter) Currency(v decimal.Decimal) string {
	amount := f.printer.Sprint(number.Decimal(v.Abs().Round(2).InexactFloat64(), number.Scale(2)))
	s := strings.TrimSpace(f.cfg.CurrencySymbol + " " + amount)
	if v.Round(2).IsNegative() {
		return "-" + s
	}
	return s
}

// Number formats v with the given number of decimals.
func (f *Formatter) Number(v float64, decimals int) string {
	return f.printer.Sprint(number.Decimal(v, number.Scale(decimals)))
}

// Integer formats n with locale grouping.
func (f *Formatter) Integer(n int) string {
	return f.printer.Sprint(number.Decimal(n))
}
