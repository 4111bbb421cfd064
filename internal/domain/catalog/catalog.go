package catalog

import (
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/xenking/price-basket/internal/domain/item"
)

// Product is a catalog entry: an item and its unit price.
type Product struct {
	Item  item.Name
	Price decimal.Decimal
}

// Catalog maps items to unit prices. It is immutable once built and safe for
// concurrent reads.
type Catalog struct {
	products []Product
	byItem   map[item.Name]decimal.Decimal
}

// New builds a Catalog from the given products, preserving their order.
// Negative prices and duplicate items are rejected.
func New(products ...Product) (*Catalog, error) {
	c := &Catalog{
		products: make([]Product, 0, len(products)),
		byItem:   make(map[item.Name]decimal.Decimal, len(products)),
	}
	for _, p := range products {
		if p.Price.IsNegative() {
			return nil, errors.Errorf("negative price %s for %s", p.Price, p.Item)
		}
		if _, ok := c.byItem[p.Item]; ok {
			return nil, errors.Errorf("duplicate catalog entry for %s", p.Item)
		}
		c.products = append(c.products, p)
		c.byItem[p.Item] = p.Price
	}
	return c, nil
}

// Default returns the shop's fixed price list.
func Default() *Catalog {
	c, err := New(
		Product{Item: item.Soup, Price: decimal.RequireFromString("0.65")},
		Product{Item: item.Bread, Price: decimal.RequireFromString("0.80")},
		Product{Item: item.Milk, Price: decimal.RequireFromString("1.30")},
		Product{Item: item.Apples, Price: decimal.RequireFromString("1.00")},
	)
	if err != nil {
		panic(err)
	}
	return c
}

// Price returns the unit price of it and whether it is listed.
func (c *Catalog) Price(it item.Name) (decimal.Decimal, bool) {
	p, ok := c.byItem[it]
	return p, ok
}

// List returns a copy of the catalog entries in insertion order.
func (c *Catalog) List() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}
