package offer

import (
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/xenking/price-basket/internal/domain/item"
)

// Registry holds the active offers keyed by trigger item. It is immutable
// once built; iteration follows registration order.
type Registry struct {
	offers []Offer
}

// NewRegistry copies offers into a Registry. Two offers with the same trigger
// are rejected with ErrDuplicateTrigger.
func NewRegistry(offers ...Offer) (*Registry, error) {
	seen := make(map[item.Name]struct{}, len(offers))
	r := &Registry{offers: make([]Offer, 0, len(offers))}
	for _, o := range offers {
		if o.Rule == nil {
			return nil, errors.Errorf("offer for %s has no rule", o.Trigger)
		}
		if _, ok := seen[o.Trigger]; ok {
			return nil, errors.Wrapf(ErrDuplicateTrigger, "%s", o.Trigger)
		}
		seen[o.Trigger] = struct{}{}
		r.offers = append(r.offers, o)
	}
	return r, nil
}

// Offers returns a copy of the registered offers.
func (r *Registry) Offers() []Offer {
	out := make([]Offer, len(r.offers))
	copy(out, r.offers)
	return out
}

// Lookup returns the offer triggered by it.
func (r *Registry) Lookup(it item.Name) (Offer, bool) {
	for _, o := range r.offers {
		if o.Trigger == it {
			return o, true
		}
	}
	return Offer{}, false
}

// apply runs a single offer against the full basket.
func apply(o Offer, basket item.Basket) (decimal.Decimal, error) {
	d, err := o.Rule.Discount(basket)
	if err != nil {
		return decimal.Zero, errors.Wrapf(err, "apply %s offer", o.Trigger)
	}
	if d.IsNegative() {
		return decimal.Zero, errors.Wrapf(ErrNegativeDiscount, "%s offer returned %s", o.Trigger, d)
	}
	return d, nil
}

// Discount applies every registered offer to the whole basket and returns
// the summed amount as a negative value, ready to add to the subtotal.
func (r *Registry) Discount(basket item.Basket) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, o := range r.offers {
		d, err := apply(o, basket)
		if err != nil {
			return decimal.Zero, err
		}
		sum = sum.Add(d)
	}
	return sum.Neg(), nil
}

// Describe returns one line per offer that produced a positive discount,
// or the single NoOffers line.
func (r *Registry) Describe(basket item.Basket) ([]string, error) {
	var lines []string
	for _, o := range r.offers {
		d, err := apply(o, basket)
		if err != nil {
			return nil, err
		}
		if d.IsPositive() {
			lines = append(lines, o.Label+": "+FormatDiscount(d))
		}
	}
	if len(lines) == 0 {
		return []string{NoOffers}, nil
	}
	return lines, nil
}
