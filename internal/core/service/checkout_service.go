package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/s2k/videogame-store/internal/core/domain"
	"github.com/s2k/videogame-store/internal/core/ports"
	"github.com/s2k/videogame-store/internal/metrics"
	"github.com/s2k/videogame-store/internal/pkg/validate"
)

type checkoutService struct {
	catalog   ports.CatalogService
	carts     ports.CartService
	validator *validate.Validator
	log       zerolog.Logger
}

// NewCheckoutService returns a CheckoutService implementation.
func NewCheckoutService(
	catalog ports.CatalogService,
	carts ports.CartService,
	v *validate.Validator,
	log zerolog.Logger,
) ports.CheckoutService {
	if v == nil {
		v = validate.New()
	}
	return &checkoutService{
		catalog:   catalog,
		carts:     carts,
		validator: v,
		log:       log,
	}
}

// Process validates payment and availability, then drains the customer's cart.
func (s *checkoutService) Process(ctx context.Context, customer *domain.Account, payment ports.PaymentInput) (*domain.Receipt, error) {
	// 1. Nothing to pay for.
	items, err := s.carts.Items(ctx, customer)
	if err != nil {
		return nil, fmt.Errorf("checkout: %w", err)
	}
	if len(items) == 0 {
		metrics.CheckoutsTotal.WithLabelValues("empty_cart").Inc()
		return nil, fmt.Errorf("checkout: %w", domain.ErrCartEmpty)
	}

	// 2. Card shape only; no payment is taken.
	if err := s.validator.Struct(payment); err != nil {
		metrics.CheckoutsTotal.WithLabelValues("invalid_payment").Inc()
		return nil, fmt.Errorf("checkout: %w", err)
	}

	// 3. Every entry must still be sold, and in enough copies. Stock is read, not decremented.
	if err := s.checkAvailability(ctx, items); err != nil {
		metrics.CheckoutsTotal.WithLabelValues("out_of_stock").Inc()
		s.log.Warn().Err(err).Int64("account_id", customer.ID).Msg("checkout refused")
		return nil, fmt.Errorf("checkout: %w", err)
	}

	// 4. Drain the cart.
	receipt, err := s.carts.Checkout(ctx, customer)
	if err != nil {
		return nil, fmt.Errorf("checkout: %w", err)
	}

	// 5. Stamp payment details.
	receipt.CardholderName = payment.CardholderName
	receipt.CardLast4 = lastFour(payment.CardNumber)

	metrics.CheckoutsTotal.WithLabelValues("success").Inc()
	metrics.RevenueTotal.Add(receipt.Total.Float64())
	metrics.CheckoutItems.Observe(float64(len(receipt.Lines)))

	s.log.Info().
		Str("receipt_id", receipt.ID).
		Int64("account_id", customer.ID).
		Str("total", receipt.Total.String()).
		Str("card", receipt.CardLast4).
		Msg("payment processed")

	return receipt, nil
}

func (s *checkoutService) checkAvailability(ctx context.Context, items []*domain.Videogame) error {
	wanted := make(map[int64]int, len(items))
	order := make([]int64, 0, len(items))
	for _, g := range items {
		if wanted[g.ID] == 0 {
			order = append(order, g.ID)
		}
		wanted[g.ID]++
	}
	for _, id := range order {
		game, err := s.catalog.FindByID(ctx, id)
		if err != nil {
			return fmt.Errorf("%w: game %d is no longer sold", domain.ErrOutOfStock, id)
		}
		if wanted[id] > game.Stock {
			return fmt.Errorf("%w: %q has %d in stock, cart holds %d", domain.ErrOutOfStock, game.Title, game.Stock, wanted[id])
		}
	}
	return nil
}

func lastFour(card string) string {
	if len(card) <= 4 {
		return card
	}
	return card[len(card)-4:]
}
