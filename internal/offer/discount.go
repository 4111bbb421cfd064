package offer

import (
	"github.com/shopspring/decimal"

	"github.com/xenking/price-basket/internal/domain/item"
)

// The per-unit amounts are fixed and do not follow catalog prices.
var (
	applePerUnit     = decimal.RequireFromString("0.10")
	halfBreadPerUnit = decimal.RequireFromString("0.40")
)

// AppleDiscount takes 0.10 off per apple in the basket.
func AppleDiscount(basket item.Basket) (decimal.Decimal, error) {
	if basket == nil {
		return decimal.Zero, item.ErrNilBasket
	}
	n := basket.Count(item.Apples)
	return applePerUnit.Mul(decimal.NewFromInt(int64(n))), nil
}

// SoupBreadDiscount takes 0.40 off one loaf of bread for every two tins of
// soup, limited by the number of loaves in the basket.
func SoupBreadDiscount(basket item.Basket) (decimal.Decimal, error) {
	if basket == nil {
		return decimal.Zero, item.ErrNilBasket
	}

	soups := basket.Count(item.Soup)
	breads := basket.Count(item.Bread)
	if soups < 2 || breads == 0 {
		return decimal.Zero, nil
	}

	loaves := min(soups/2, breads)
	return halfBreadPerUnit.Mul(decimal.NewFromInt(int64(loaves))), nil
}
