package utils

import (
	"github.com/shopspring/decimal"
)

// FormatNaira renders an amount in Nigerian Naira with two decimal places.
// The ASCII "NGN" prefix is used instead of the ₦ sign because the receipts
// are rendered with a PDF core font.
func FormatNaira(amount decimal.Decimal) string {
	return "NGN " + amount.StringFixed(2)
}
