// Package console implements the interactive price-basket prompt.
package console

import (
	"bufio"
	"context"
	"io"
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xenking/price-basket/internal/domain/catalog"
	"github.com/xenking/price-basket/internal/domain/item"
	"github.com/xenking/price-basket/internal/domain/pricing"
	"github.com/xenking/price-basket/internal/offer"
)

const (
	cmdPriceBasket = "pricebasket"
	cmdList        = "list"
	cmdOffers      = "offers"
	escape         = "\x1b"
)

const (
	msgPrompt = "Please write 'PriceBasket' followed by the items in the basket separated by spaces " +
		"(use 'list' to see all available items, and 'offers' to see current offers):"
	msgUsage    = "Please write 'PriceBasket' to add items."
	msgNoItems  = "No valid items or commands were found in your input, please validate your input."
	msgContinue = "Type 'exit' (or press ESC then Enter) to quit, or press Enter to price another basket."
)

// ErrNoItems is returned by PriceBasket when no token names a known item.
var ErrNoItems = errors.New("no valid items")

// Pricer prices a single basket.
type Pricer interface {
	Price(ctx context.Context, basket item.Basket) (pricing.Result, error)
}

// Config holds presentation options for a Session.
type Config struct {
	Format Format
	// Prompt enables the instructions printed before each line is read.
	// Only honored by the text format.
	Prompt bool
}

// Session drives the read loop: it reads commands, prices baskets and writes
// the results. It keeps no state between commands.
type Session struct {
	pricer   Pricer
	products []catalog.Product
	offers   []offer.Offer
	render   Renderer
	prompt   bool
	newID    func() string
}

// NewSession creates a Session writing to out.
func NewSession(
	cfg Config,
	out io.Writer,
	pricer Pricer,
	c *catalog.Catalog,
	offers *offer.Registry,
) (*Session, error) {
	if c == nil {
		return nil, errors.New("catalog is required")
	}
	if offers == nil {
		return nil, errors.New("offer registry is required")
	}
	render, err := NewRenderer(cfg.Format, out)
	if err != nil {
		return nil, err
	}
	return &Session{
		pricer:   pricer,
		products: c.List(),
		offers:   offers.Offers(),
		render:   render,
		prompt:   cfg.Prompt && cfg.Format != FormatJSON,
		newID:    func() string { return uuid.New().String() },
	}, nil
}

// Run reads commands from in until EOF, an exit command, or ctx is done.
func (s *Session) Run(ctx context.Context, in io.Reader) error {
	lg := zctx.From(ctx)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	lines, readErr := readLines(ctx, in)

	for {
		if s.prompt {
			if err := s.render.Message(msgPrompt); err != nil {
				return err
			}
		}

		var (
			line string
			ok   bool
		)
		select {
		case <-ctx.Done():
			lg.Info("Session interrupted")
			return nil
		case line, ok = <-lines:
		}
		if !ok {
			if err := readErr(); err != nil {
				return errors.Wrap(err, "read input")
			}
			lg.Debug("Input closed")
			return nil
		}

		exit, err := s.Handle(ctx, line)
		if err != nil {
			return err
		}
		if exit {
			lg.Debug("Exit requested")
			return nil
		}
	}
}

// Handle executes a single input line. It reports whether the user asked to
// exit.
func (s *Session) Handle(ctx context.Context, line string) (bool, error) {
	if strings.HasPrefix(line, escape) {
		return true, nil
	}

	trimmed := strings.TrimSpace(line)
	lower := strings.ToLower(trimmed)
	switch {
	case lower == "":
		return false, nil
	case lower == "exit" || lower == "quit":
		return true, nil
	case lower == cmdList:
		return false, s.render.Items(s.products)
	case lower == cmdOffers:
		return false, s.render.Offers(s.offers)
	case strings.HasPrefix(lower, cmdPriceBasket):
		if err := s.PriceBasket(ctx, lower[len(cmdPriceBasket):]); err != nil && !errors.Is(err, ErrNoItems) {
			return false, err
		}
		if s.prompt {
			return false, s.render.Message(msgContinue)
		}
		return false, nil
	default:
		return false, s.render.Message(msgUsage)
	}
}

// PriceBasket parses the whitespace-separated item names in text, prices the
// recognized items and renders the receipt. When nothing in text is a known
// item the rejection is rendered and ErrNoItems returned.
func (s *Session) PriceBasket(ctx context.Context, text string) error {
	lg := zctx.From(ctx)

	basket, rejected := item.ParseBasket(text)
	for _, tok := range rejected {
		lg.Debug("Rejected token", zap.String("token", tok))
	}
	if len(basket) == 0 {
		if err := s.render.NoItems(rejected); err != nil {
			return err
		}
		return ErrNoItems
	}

	id := s.newID()
	res, err := s.pricer.Price(ctx, basket)
	if err != nil {
		return errors.Wrapf(err, "price basket %s", id)
	}

	lg.Info("Basket priced",
		zap.String("calc_id", id),
		zap.Int("items", len(basket)),
		zap.Int("rejected", len(rejected)),
		zap.Stringer("subtotal", res.Subtotal),
		zap.Stringer("discount", res.Discount),
		zap.Stringer("total", res.Total),
	)

	return s.render.Receipt(Receipt{
		ID:       id,
		Rejected: rejected,
		Result:   res,
	})
}

// readLines scans in on a separate goroutine so that Run can stop on context
// cancellation while a read is blocked. The goroutine stops sending once ctx is
// done; a Read already blocked in the scanner returns only when in does. The
// returned func reports the scan error once the channel is closed.
func readLines(ctx context.Context, in io.Reader) (<-chan string, func() error) {
	lines := make(chan string)
	var scanErr error

	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr = sc.Err()
	}()

	return lines, func() error { return scanErr }
}
