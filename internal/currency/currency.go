// Package currency holds the table of display currencies a checklist can use.
package currency

import (
	"slices"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Default is the currency used when none has been chosen.
const Default = "INR"

// supported lists the selectable codes in display order.
var supported = []string{"INR", "USD", "EUR", "GBP", "JPY", "CAD", "AUD"}

// Codes returns the supported currency codes in display order.
func Codes() []string {
	return slices.Clone(supported)
}

// Supported reports whether code is in the supported-currency table.
// Matching is exact: codes are upper-case ISO 4217.
func Supported(code string) bool {
	return slices.Contains(supported, code)
}

// Symbol returns the display symbol for code, or the code itself when the
// money table has no grapheme for it.
func Symbol(code string) string {
	cur := money.GetCurrency(code)
	if cur == nil || cur.Grapheme == "" {
		return code
	}
	return cur.Grapheme
}

// Format renders amount in code, rounded to the currency's minor unit.
// Unknown codes fall back to the plain number followed by the code.
func Format(amount float64, code string) string {
	cur := money.GetCurrency(code)
	if cur == nil {
		return strings.TrimSpace(decimal.NewFromFloat(amount).StringFixed(2) + " " + code)
	}
	minor := decimal.NewFromFloat(amount).Shift(int32(cur.Fraction)).Round(0).IntPart()
	return money.New(minor, cur.Code).Display()
}
