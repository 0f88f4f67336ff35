package console

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Format selects how a card value is displayed.
type Format string

const (
	FormatNumber   Format = "number"
	FormatDecimal  Format = "decimal"
	FormatCurrency Format = "currency"
	FormatPercent  Format = "percent"
)

// NumberFormatter renders values for a locale.
type NumberFormatter struct {
	printer  *message.Printer
	currency string
}

// NewNumberFormatter builds a formatter; unknown or empty locales use English.
func NewNumberFormatter(locale, currency string) NumberFormatter {
	tag := language.English
	if locale = strings.TrimSpace(locale); locale != "" {
		if parsed, err := language.Parse(locale); err == nil {
			tag = parsed
		}
	}
	if currency == "" {
		currency = "USD"
	}
	return NumberFormatter{printer: message.NewPrinter(tag), currency: strings.ToUpper(currency)}
}

// Format renders value according to format.
func (f NumberFormatter) Format(value float64, format Format) string {
	switch format {
	case FormatDecimal:
		return f.printer.Sprintf("%.2f", value)
	case FormatCurrency:
		return f.currency + " " + f.printer.Sprintf("%.2f", value)
	case FormatPercent:
		return f.printer.Sprintf("%.1f", value) + "%"
	default:
		if value == float64(int64(value)) {
			return f.printer.Sprintf("%d", int64(value))
		}
		return f.printer.Sprintf("%.2f", value)
	}
}
