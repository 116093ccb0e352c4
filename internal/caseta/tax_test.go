package caseta

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestDecompose(t *testing.T) {
	tests := []struct {
		gross, sub, tax string
	}{
		{"0", "0.00", "0.00"},
		{"100", "86.21", "13.79"},
		{"50", "43.10", "6.90"},
		{"116", "100.00", "16.00"},
		{"0.01", "0.01", "0.00"},
		{"154.33", "133.04", "21.29"},
		{"1234.56", "1064.28", "170.28"},
	}

	for _, tt := range tests {
		t.Run(tt.gross, func(t *testing.T) {
			sub, tax := Decompose(dec(tt.gross))
			assert.Equal(t, tt.sub, sub.StringFixed(2), "sub-total")
			assert.Equal(t, tt.tax, tax.StringFixed(2), "tax")
		})
	}
}

func TestDecompose_Properties(t *testing.T) {
	rate := dec("1.16")
	cent := dec("0.01")

	// Every amount from 0.00 to 300.00 in cent steps.
	for c := int64(0); c <= 30000; c++ {
		gross := decimal.New(c, -2)
		sub, tax := Decompose(gross)

		back := sub.Mul(rate).Round(2)
		if back.Sub(gross).Abs().GreaterThan(cent) {
			t.Fatalf("Decompose(%s): sub-total %s * 1.16 = %s, off by more than a cent", gross, sub, back)
		}
		if !tax.Equal(sub.Mul(Rate).Round(2)) {
			t.Fatalf("Decompose(%s): tax %s != round(%s * 0.16)", gross, tax, sub)
		}
		if sub.IsNegative() || tax.IsNegative() {
			t.Fatalf("Decompose(%s) returned negative parts %s, %s", gross, sub, tax)
		}
	}
}

func TestParseAmount(t *testing.T) {
	valid := map[string]string{
		"100":      "100",
		" 86.5 ":   "86.5",
		"$12.30":   "12.3",
		"$ 7":      "7",
		"0":        "0",
		"0.004":    "0.004",
	}
	for in, want := range valid {
		t.Run(in, func(t *testing.T) {
			got, err := ParseAmount(in)
			require.NoError(t, err)
			assert.True(t, got.Equal(dec(want)), "ParseAmount(%q) = %s, want %s", in, got, want)
		})
	}

	invalid := []string{"", "   ", "$", "abc", "12,50", "1.2.3", "-5", "-0.01"}
	for _, in := range invalid {
		t.Run("invalid "+in, func(t *testing.T) {
			_, err := ParseAmount(in)
			require.Error(t, err)
			assert.True(t, IsValidation(err), "error %v is not a ValidationError", err)
		})
	}
}
