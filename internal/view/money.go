// Package view turns domain values into the view models shown by the console
// and the CLI: formatted money, product cards, and price comparison panels.
package view

import "github.com/shopspring/decimal"

// MissingPrice stands in for a product the server returned without a price.
const MissingPrice = "—"

// FormatBs renders an amount in bolivianos with two decimals, rounding the
// shortest decimal form half away from zero: 150.5 -> "Bs. 150.50",
// 1.005 -> "Bs. 1.01".
func FormatBs(amount float64) string {
	return "Bs. " + decimal.NewFromFloat(amount).StringFixed(2)
}

// FormatOptionalBs is FormatBs for nullable prices.
func FormatOptionalBs(amount *float64) string {
	if amount == nil {
		return MissingPrice
	}
	return FormatBs(*amount)
}

// FormatPercent renders a signed variation with one decimal: "+12.5%".
func FormatPercent(v float64) string {
	d := decimal.NewFromFloat(v)
	s := d.StringFixed(1) + "%"
	if d.IsPositive() {
		return "+" + s
	}
	return s
}
