package pricing

import "fmt"

// currencySymbols maps ISO currency codes to display symbols. The code is a
// label only; no conversion happens anywhere in the engine.
var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"KES": "KSh ",
	"CAD": "CA$",
	"AUD": "A$",
	"JPY": "¥",
	"INR": "₹",
}

// Symbol returns the display symbol for a currency code, falling back to
// the code itself followed by a space.
func Symbol(code string) string {
	if s, ok := currencySymbols[code]; ok {
		return s
	}
	return code + " "
}

// Format renders an amount for display. Formatting is presentational only:
// the rounded string must never be parsed back into the arithmetic.
func Format(amount float64, code string) string {
	if amount < 0 {
		return fmt.Sprintf("-%s%.2f", Symbol(code), -amount)
	}
	return fmt.Sprintf("%s%.2f", Symbol(code), amount)
}
