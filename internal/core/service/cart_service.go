package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/s2k/videogame-store/internal/core/domain"
	"github.com/s2k/videogame-store/internal/core/ports"
	"github.com/s2k/videogame-store/internal/metrics"
)

type CartService struct {
	logger zerolog.Logger
	now    func() time.Time
	newID  func() string
}

var _ ports.CartService = (*CartService)(nil)

func NewCartService(logger zerolog.Logger) *CartService {
	return &CartService{
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
		newID:  func() string { return uuid.NewString() },
	}
}

func (s *CartService) Add(ctx context.Context, customer *domain.Account, game *domain.Videogame) error {
	cart, err := requireCustomer(customer)
	if err != nil {
		return err
	}
	if game == nil {
		return fmt.Errorf("add to cart: %w", domain.ErrGameNotFound)
	}
	cart.Add(game)
	metrics.CartOperationsTotal.WithLabelValues("add").Inc()
	s.logger.Debug().Int64("account_id", customer.ID).Int64("game_id", game.ID).Int("entries", cart.Len()).Msg("added to cart")
	return nil
}

// Remove drops one entry for game and reports whether the cart held it.
func (s *CartService) Remove(ctx context.Context, customer *domain.Account, game *domain.Videogame) (bool, error) {
	cart, err := requireCustomer(customer)
	if err != nil {
		return false, err
	}
	if game == nil {
		return false, fmt.Errorf("remove from cart: %w", domain.ErrGameNotFound)
	}
	if !cart.Remove(game) {
		return false, nil
	}
	metrics.CartOperationsTotal.WithLabelValues("remove").Inc()
	s.logger.Debug().Int64("account_id", customer.ID).Int64("game_id", game.ID).Int("entries", cart.Len()).Msg("removed from cart")
	return true, nil
}

func (s *CartService) Items(ctx context.Context, customer *domain.Account) ([]*domain.Videogame, error) {
	cart, err := requireCustomer(customer)
	if err != nil {
		return nil, err
	}
	return cart.Items(), nil
}

func (s *CartService) Total(ctx context.Context, customer *domain.Account) (domain.Money, error) {
	cart, err := requireCustomer(customer)
	if err != nil {
		return 0, err
	}
	return cart.Total(), nil
}

// Checkout turns the cart into a receipt and clears it. An empty cart is
// left untouched.
func (s *CartService) Checkout(ctx context.Context, customer *domain.Account) (*domain.Receipt, error) {
	cart, err := requireCustomer(customer)
	if err != nil {
		return nil, err
	}
	if cart.IsEmpty() {
		return nil, domain.ErrCartEmpty
	}

	items := cart.Items()
	receipt := &domain.Receipt{
		ID:         s.newID(),
		CustomerID: customer.ID,
		Username:   customer.Username,
		Lines:      make([]domain.ReceiptLine, 0, len(items)),
		Total:      cart.Total(),
		PaidAt:     s.now(),
	}
	for _, g := range items {
		receipt.Lines = append(receipt.Lines, domain.ReceiptLine{GameID: g.ID, Title: g.Title, Price: g.Price})
	}
	cart.Clear()

	s.logger.Info().
		Str("receipt_id", receipt.ID).
		Int64("account_id", customer.ID).
		Int("entries", len(receipt.Lines)).
		Str("total", receipt.Total.String()).
		Msg("cart checked out")
	return receipt, nil
}
