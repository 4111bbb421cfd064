package app

import (
	"context"

	"github.com/go-faster/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/xenking/price-basket/internal/console"
	"github.com/xenking/price-basket/internal/domain/item"
	"github.com/xenking/price-basket/internal/domain/pricing"
)

const instrumentationName = "github.com/xenking/price-basket"

var _ console.Pricer = (*instrumentedPricer)(nil)

// instrumentedPricer wraps the calculator with a span and counters per basket.
type instrumentedPricer struct {
	calc     *pricing.Calculator
	tracer   trace.Tracer
	baskets  metric.Int64Counter
	discount metric.Float64Counter
}

func newInstrumentedPricer(
	calc *pricing.Calculator,
	mp metric.MeterProvider,
	tp trace.TracerProvider,
) (*instrumentedPricer, error) {
	meter := mp.Meter(instrumentationName)

	baskets, err := meter.Int64Counter("basket.priced",
		metric.WithDescription("Number of baskets priced"),
	)
	if err != nil {
		return nil, errors.Wrap(err, "create basket counter")
	}
	discount, err := meter.Float64Counter("basket.discount",
		metric.WithDescription("Total amount taken off by offers"),
		metric.WithUnit("GBP"),
	)
	if err != nil {
		return nil, errors.Wrap(err, "create discount counter")
	}

	return &instrumentedPricer{
		calc:     calc,
		tracer:   tp.Tracer(instrumentationName),
		baskets:  baskets,
		discount: discount,
	}, nil
}

func (p *instrumentedPricer) Price(ctx context.Context, basket item.Basket) (pricing.Result, error) {
	ctx, span := p.tracer.Start(ctx, "pricing.calculate",
		trace.WithAttributes(attribute.Int("basket.items", len(basket))),
	)
	defer span.End()

	res, err := p.calc.CalculateTotalPrice(basket)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return pricing.Result{}, err
	}

	p.baskets.Add(ctx, 1)
	p.discount.Add(ctx, res.Discount.InexactFloat64())
	span.SetAttributes(
		attribute.String("basket.subtotal", res.Subtotal.StringFixed(2)),
		attribute.String("basket.total", res.Total.StringFixed(2)),
	)
	return res, nil
}
