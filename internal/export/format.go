package export

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	currencySymbols = map[string]string{
		"USD": "$",
		"EUR": "€",
		"INR": "₹",
	}
	decimalSeparators = map[string]string{
		"USD": ".",
		"EUR": ",",
		"INR": ".",
	}
)

// FormatCurrency renders an amount with the currency's symbol and decimal
// separator, always with two decimals. Unknown codes get no symbol and a
// dot separator.
func FormatCurrency(amount decimal.Decimal, currencyCode string) string {
	symbol := currencySymbols[currencyCode]
	separator, ok := decimalSeparators[currencyCode]
	if !ok {
		separator = "."
	}
	return symbol + strings.Replace(amount.StringFixed(2), ".", separator, 1)
}

// FormatDisplayDate renders a date as DD/MM/YYYY for table display.
func FormatDisplayDate(t time.Time) string {
	return t.Format("02/01/2006")
}
