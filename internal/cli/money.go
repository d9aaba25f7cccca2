package cli

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultCurrency is the Peruvian sol symbol.
const DefaultCurrency = "S/"

// FormatMoney renders d with two decimals and thousands separators, e.g.
// "S/ 1,234.50". Negative amounts keep their sign after the symbol.
func FormatMoney(currency string, d decimal.Decimal) string {
	if currency == "" {
		currency = DefaultCurrency
	}
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	return currency + " " + sign + group(d.StringFixed(2))
}

// FormatSigned renders a signed movement as "+ S/ 10.00" or "- S/ 5.00".
func FormatSigned(currency string, d decimal.Decimal) string {
	if d.IsNegative() {
		return "- " + FormatMoney(currency, d.Neg())
	}
	return "+ " + FormatMoney(currency, d)
}

// StyleAmount colors a signed amount green or red.
func StyleAmount(currency string, d decimal.Decimal) string {
	text := FormatSigned(currency, d)
	if d.IsNegative() {
		return ErrorStyle.Render(text)
	}
	return SuccessStyle.Render(text)
}

func group(fixed string) string {
	whole, frac, _ := strings.Cut(fixed, ".")
	if len(whole) <= 3 {
		return fixed
	}
	var b strings.Builder
	lead := len(whole) % 3
	if lead > 0 {
		b.WriteString(whole[:lead])
	}
	for i := lead; i < len(whole); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(whole[i : i+3])
	}
	return b.String() + "." + frac
}
