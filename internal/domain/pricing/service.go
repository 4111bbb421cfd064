package pricing

import (
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/xenking/price-basket/internal/domain/catalog"
	"github.com/xenking/price-basket/internal/domain/item"
	"github.com/xenking/price-basket/internal/offer"
)

// Result holds the outcome of pricing one basket.
type Result struct {
	Subtotal decimal.Decimal
	// Discount is the total amount taken off by offers, never negative.
	Discount decimal.Decimal
	Total    decimal.Decimal
	// OffersApplied holds one line per applied offer, or offer.NoOffers.
	OffersApplied []string
}

// Calculator prices baskets against a catalog and a set of offers. It holds
// no mutable state and is safe for concurrent use.
type Calculator struct {
	catalog *catalog.Catalog
	offers  *offer.Registry
}

// NewCalculator creates a Calculator. Both dependencies are required.
func NewCalculator(c *catalog.Catalog, offers *offer.Registry) (*Calculator, error) {
	if c == nil {
		return nil, errors.New("catalog is required")
	}
	if offers == nil {
		return nil, errors.New("offer registry is required")
	}
	return &Calculator{
		catalog: c,
		offers:  offers,
	}, nil
}

// CalculateTotalPrice sums catalog prices for the basket, applies every
// registered offer and returns subtotal, total and the applied-offer lines.
// Items missing from the catalog are priced at zero.
func (c *Calculator) CalculateTotalPrice(basket item.Basket) (Result, error) {
	if basket == nil {
		return Result{}, item.ErrNilBasket
	}

	subtotal := decimal.Zero
	for _, it := range basket {
		if price, ok := c.catalog.Price(it); ok {
			subtotal = subtotal.Add(price)
		}
	}

	// Registry returns the aggregate as a debit (<= 0).
	debit, err := c.offers.Discount(basket)
	if err != nil {
		return Result{}, errors.Wrap(err, "calculate discount")
	}

	lines, err := c.offers.Describe(basket)
	if err != nil {
		return Result{}, errors.Wrap(err, "describe offers")
	}

	return Result{
		Subtotal:      subtotal,
		Discount:      debit.Neg(),
		Total:         subtotal.Add(debit),
		OffersApplied: lines,
	}, nil
}
