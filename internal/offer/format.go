package offer

import "github.com/shopspring/decimal"

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// FormatDiscount renders a discount amount as "-1.00£" from one pound
// upwards and as whole pence ("-40p") below that.
func FormatDiscount(amount decimal.Decimal) string {
	if amount.GreaterThanOrEqual(one) {
		return "-" + amount.StringFixed(2) + "£"
	}
	return "-" + amount.Mul(hundred).Round(0).StringFixed(0) + "p"
}
