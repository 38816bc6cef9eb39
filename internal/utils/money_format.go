package utils

import (
	"github.com/shopspring/decimal"
)

// MoneyPrecision is the number of decimal places used for order and charge amounts.
const MoneyPrecision = 2

// FormatAmount formats an amount with two decimal places.
// Example: 9.9 returns "9.90", 12.345 returns "12.35"
func FormatAmount(amount decimal.Decimal) string {
	return FormatWithPrecision(amount, MoneyPrecision)
}

// FormatWithPrecision formats an amount with the given precision, padding with zeros.
func FormatWithPrecision(amount decimal.Decimal, precision int) string {
	return amount.StringFixed(int32(precision))
}
