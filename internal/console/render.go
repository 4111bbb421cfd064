package console

import (
	"fmt"
	"io"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"

	"github.com/xenking/price-basket/internal/domain/catalog"
	"github.com/xenking/price-basket/internal/domain/pricing"
	"github.com/xenking/price-basket/internal/offer"
)

// Format selects how results are written.
type Format string

const (
	// FormatText writes human-readable lines.
	FormatText Format = "text"
	// FormatJSON writes one JSON object per line.
	FormatJSON Format = "json"
)

// Receipt is a priced basket as presented to the user.
type Receipt struct {
	ID string
	// Rejected lists input tokens that did not name an item.
	Rejected []string
	Result   pricing.Result
}

// Renderer writes session output in a particular format.
type Renderer interface {
	Message(msg string) error
	Items(products []catalog.Product) error
	Offers(offers []offer.Offer) error
	NoItems(rejected []string) error
	Receipt(r Receipt) error
}

// NewRenderer returns the Renderer for format.
func NewRenderer(format Format, w io.Writer) (Renderer, error) {
	switch format {
	case FormatText, "":
		return &textRenderer{w: w}, nil
	case FormatJSON:
		return &jsonRenderer{w: w}, nil
	default:
		return nil, errors.Errorf("unsupported format: %q", format)
	}
}

func pounds(v decimal.Decimal) string {
	return "£" + v.StringFixed(2)
}

type textRenderer struct {
	w io.Writer
}

func (r *textRenderer) println(s string) error {
	_, err := fmt.Fprintln(r.w, s)
	return err
}

func (r *textRenderer) Message(msg string) error {
	return r.println(msg)
}

func (r *textRenderer) Items(products []catalog.Product) error {
	if err := r.println("Available items:"); err != nil {
		return err
	}
	for _, p := range products {
		if err := r.println(p.Item.String() + " : " + pounds(p.Price)); err != nil {
			return err
		}
	}
	return nil
}

func (r *textRenderer) Offers(offers []offer.Offer) error {
	if err := r.println("Current special offers are:"); err != nil {
		return err
	}
	for _, o := range offers {
		if err := r.println("- " + o.Summary); err != nil {
			return err
		}
	}
	return nil
}

func (r *textRenderer) rejected(tokens []string) error {
	for _, tok := range tokens {
		if err := r.println("Invalid item: " + tok); err != nil {
			return err
		}
	}
	return nil
}

func (r *textRenderer) NoItems(rejected []string) error {
	if err := r.rejected(rejected); err != nil {
		return err
	}
	return r.println(msgNoItems)
}

func (r *textRenderer) Receipt(rc Receipt) error {
	if err := r.rejected(rc.Rejected); err != nil {
		return err
	}
	if err := r.println("Subtotal: " + pounds(rc.Result.Subtotal)); err != nil {
		return err
	}
	for _, line := range rc.Result.OffersApplied {
		if err := r.println(line); err != nil {
			return err
		}
	}
	return r.println("Total: " + pounds(rc.Result.Total))
}

// jsonRenderer writes every response as a single-line JSON object.
type jsonRenderer struct {
	w io.Writer
}

func money(e *jx.Encoder, v decimal.Decimal) {
	e.Num(jx.Num(v.StringFixed(2)))
}

func strs(e *jx.Encoder, values []string) {
	e.Arr(func(e *jx.Encoder) {
		for _, v := range values {
			e.Str(v)
		}
	})
}

func (r *jsonRenderer) write(f func(e *jx.Encoder)) error {
	var e jx.Encoder
	e.Obj(f)
	_, err := r.w.Write(append(e.Bytes(), '\n'))
	return err
}

func (r *jsonRenderer) Message(msg string) error {
	return r.write(func(e *jx.Encoder) {
		e.Field("message", func(e *jx.Encoder) { e.Str(msg) })
	})
}

func (r *jsonRenderer) Items(products []catalog.Product) error {
	return r.write(func(e *jx.Encoder) {
		e.Field("items", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, p := range products {
					e.Obj(func(e *jx.Encoder) {
						e.Field("name", func(e *jx.Encoder) { e.Str(p.Item.String()) })
						e.Field("price", func(e *jx.Encoder) { money(e, p.Price) })
					})
				}
			})
		})
	})
}

func (r *jsonRenderer) Offers(offers []offer.Offer) error {
	return r.write(func(e *jx.Encoder) {
		e.Field("offers", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, o := range offers {
					e.Obj(func(e *jx.Encoder) {
						e.Field("trigger", func(e *jx.Encoder) { e.Str(o.Trigger.String()) })
						e.Field("summary", func(e *jx.Encoder) { e.Str(o.Summary) })
					})
				}
			})
		})
	})
}

func (r *jsonRenderer) NoItems(rejected []string) error {
	return r.write(func(e *jx.Encoder) {
		e.Field("error", func(e *jx.Encoder) { e.Str(msgNoItems) })
		e.Field("rejected", func(e *jx.Encoder) { strs(e, rejected) })
	})
}

func (r *jsonRenderer) Receipt(rc Receipt) error {
	return r.write(func(e *jx.Encoder) {
		e.Field("id", func(e *jx.Encoder) { e.Str(rc.ID) })
		e.Field("subtotal", func(e *jx.Encoder) { money(e, rc.Result.Subtotal) })
		e.Field("discount", func(e *jx.Encoder) { money(e, rc.Result.Discount) })
		e.Field("total", func(e *jx.Encoder) { money(e, rc.Result.Total) })
		e.Field("offers", func(e *jx.Encoder) { strs(e, rc.Result.OffersApplied) })
		if len(rc.Rejected) > 0 {
			e.Field("rejected", func(e *jx.Encoder) { strs(e, rc.Rejected) })
		}
	})
}
