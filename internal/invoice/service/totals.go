package service

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// grandTotal applies the invoice-level discount to the line subtotal and
// rounds to two fractional digits. Rounding is half away from zero, which for
// the non-negative totals here means half up: 34.005 -> 34.01.
func grandTotal(subtotal, discount decimal.Decimal) decimal.Decimal {
	return subtotal.Sub(subtotal.Mul(discount).Div(hundred)).Round(2)
}
