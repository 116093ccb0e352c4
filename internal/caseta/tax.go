package caseta

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Rate is the IVA rate included in every ticket total.
var Rate = decimal.RequireFromString("0.16")

var one = decimal.NewFromInt(1)

// Decompose splits a tax-inclusive gross amount into its sub-total and tax.
// Both results are rounded to cents; tax is derived from the rounded sub-total.
// gross must be non-negative.
func Decompose(gross decimal.Decimal) (subTotal, tax decimal.Decimal) {
	subTotal = gross.Div(one.Add(Rate)).Round(2)
	tax = subTotal.Mul(Rate).Round(2)
	return subTotal, tax
}

// ParseAmount parses a user-entered total such as "100", "86.5" or "$ 12.30".
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSpace(strings.TrimPrefix(s, "$"))
	if s == "" {
		return decimal.Zero, &ValidationError{Field: "total", Reason: "missing amount"}
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, &ValidationError{Field: "total", Reason: "not a number: " + s}
	}
	if d.IsNegative() {
		return decimal.Zero, &ValidationError{Field: "total", Reason: "must not be negative"}
	}
	return d, nil
}
