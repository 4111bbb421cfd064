// Package offer implements the shop's promotional discount rules.
//
// Each rule sees the whole basket, so cross-item promotions (two soups make a
// loaf of bread half price) are ordinary rules. Rules are keyed in a Registry
// by the item that triggers them; adding an offer means registering a new
// Offer, nothing else changes.
package offer

import (
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/xenking/price-basket/internal/domain/item"
)

// NoOffers is the only description line emitted when no offer applied.
const NoOffers = "(no offers available)"

var (
	// ErrNegativeDiscount is returned when a rule yields a negative amount.
	ErrNegativeDiscount = errors.New("negative discount")
	// ErrDuplicateTrigger is returned when two offers share a trigger item.
	ErrDuplicateTrigger = errors.New("duplicate offer trigger")
)

// Rule computes a discount from basket contents. The result is a positive
// amount to subtract from the subtotal, or zero.
type Rule interface {
	Discount(basket item.Basket) (decimal.Decimal, error)
}

// RuleFunc adapts a plain function to Rule.
type RuleFunc func(basket item.Basket) (decimal.Decimal, error)

// Discount calls f(basket).
func (f RuleFunc) Discount(basket item.Basket) (decimal.Decimal, error) {
	return f(basket)
}

// Offer binds a Rule to the item that triggers it.
type Offer struct {
	Trigger item.Name
	// Label prefixes the applied-offer line, e.g. "Apples 10% off".
	Label string
	// Summary is the customer-facing description of the promotion.
	Summary string
	Rule    Rule
}

// Builtin returns the shop's standard offers in registration order.
func Builtin() []Offer {
	return []Offer{
		{
			Trigger: item.Apples,
			Label:   "Apples 10% off",
			Summary: "Apples have 10% off their normal price this week",
			Rule:    RuleFunc(AppleDiscount),
		},
		{
			Trigger: item.Soup,
			Label:   "Buy 2 tins of soup and get a loaf of bread for half price",
			Summary: "Buy 2 tins of soup and get a loaf of bread for half price",
			Rule:    RuleFunc(SoupBreadDiscount),
		},
	}
}

// Select returns the offers whose trigger is in triggers, keeping the order
// of offers.
func Select(offers []Offer, triggers []item.Name) []Offer {
	want := make(map[item.Name]struct{}, len(triggers))
	for _, t := range triggers {
		want[t] = struct{}{}
	}

	out := make([]Offer, 0, len(offers))
	for _, o := range offers {
		if _, ok := want[o.Trigger]; ok {
			out = append(out, o)
		}
	}
	return out
}
