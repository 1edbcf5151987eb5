package helpers

import "github.com/shopspring/decimal"

// currencyPlaces is the number of decimal places shown for money.
const currencyPlaces = 2

// ClampZero returns v, or zero when v is negative.
func ClampZero(v decimal.Decimal) decimal.Decimal {
	if v.IsNegative() {
		return decimal.Zero
	}
	return v
}

// MinDecimal returns the smaller of a and b.
func MinDecimal(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}

// SumDecimals adds all values.
func SumDecimals(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// RoundCurrency rounds half away from zero to cents. Presentation only; the
// calculation engine never rounds.
func RoundCurrency(v decimal.Decimal) decimal.Decimal {
	return v.Round(currencyPlaces)
}

// FormatCurrency renders v with exactly two decimal places.
func FormatCurrency(v decimal.Decimal) string {
	return v.StringFixed(currencyPlaces)
}
