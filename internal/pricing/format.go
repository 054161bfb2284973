package pricing

import (
	"fmt"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var usPrinter = message.NewPrinter(language.AmericanEnglish)

// FormatPrice renders a dollar amount with grouping, e.g. "$1,234.99".
func FormatPrice(amount float64) string {
	return usPrinter.Sprintf("$%.2f", amount)
}

// FormatAmount renders amount in the ISO 4217 currency code, rounded to the
// currency's standard precision.
func FormatAmount(amount float64, code string) (string, error) {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return "", fmt.Errorf("unknown currency %q: %w", code, err)
	}
	return usPrinter.Sprint(currency.Symbol(unit.Amount(amount))), nil
}
