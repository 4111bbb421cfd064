package app

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/app"
	"github.com/go-faster/sdk/zctx"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/xenking/price-basket/internal/console"
	"github.com/xenking/price-basket/internal/domain/catalog"
	"github.com/xenking/price-basket/internal/domain/pricing"
	"github.com/xenking/price-basket/internal/offer"
)

// Run wires the catalog, offers and calculator, then either prices the basket
// given on the command line or starts the interactive prompt. It is the
// single wiring point for the application.
func Run(ctx context.Context, lg *zap.Logger, m *app.Telemetry, cfg *Config, basket []string) error {
	ctx = zctx.Base(ctx, lg)
	lg.Info("Initializing",
		zap.String("format", cfg.Format),
		zap.Strings("offers", cfg.Offers),
	)

	session, err := newSession(cfg, os.Stdout, m.MeterProvider(), m.TracerProvider())
	if err != nil {
		return err
	}

	if len(basket) > 0 {
		return priceOnce(ctx, session, basket)
	}

	lg.Info("Reading baskets from stdin")
	return session.Run(ctx, os.Stdin)
}

// priceOnce prices the basket given on the command line:
// "price-basket [PriceBasket] Apples Milk Bread". A basket with no known
// items is an error so that scripts see a non-zero exit status.
func priceOnce(ctx context.Context, session *console.Session, args []string) error {
	if strings.EqualFold(args[0], "pricebasket") {
		args = args[1:]
	}
	if err := session.PriceBasket(ctx, strings.Join(args, " ")); err != nil {
		if errors.Is(err, console.ErrNoItems) {
			return errors.Wrapf(err, "basket %q", strings.Join(args, " "))
		}
		return err
	}
	return nil
}

// newSession builds the immutable catalog and offer registry and hands them
// to a console session writing to out.
func newSession(
	cfg *Config,
	out io.Writer,
	mp metric.MeterProvider,
	tp trace.TracerProvider,
) (*console.Session, error) {
	prices := catalog.Default()

	triggers, err := cfg.offerTriggers()
	if err != nil {
		return nil, err
	}
	selected := offer.Select(offer.Builtin(), triggers)
	registry, err := offer.NewRegistry(selected...)
	if err != nil {
		return nil, errors.Wrap(err, "create offer registry")
	}
	for _, t := range triggers {
		if _, ok := registry.Lookup(t); !ok {
			return nil, errors.Errorf("no offer is triggered by %s", t)
		}
	}

	calc, err := pricing.NewCalculator(prices, registry)
	if err != nil {
		return nil, errors.Wrap(err, "create calculator")
	}
	pricer, err := newInstrumentedPricer(calc, mp, tp)
	if err != nil {
		return nil, errors.Wrap(err, "create pricer")
	}

	session, err := console.NewSession(
		console.Config{
			Format: console.Format(cfg.Format),
			Prompt: cfg.Prompt,
		},
		out,
		pricer,
		prices,
		registry,
	)
	if err != nil {
		return nil, errors.Wrap(err, "create session")
	}
	return session, nil
}
