package ports

import (
	"context"

	"github.com/s2k/videogame-store/internal/core/domain"
)

// CartService operates on a customer's cart.
type CartService interface {
	Add(ctx context.Context, customer *domain.Account, game *domain.Videogame) error
	Remove(ctx context.Context, customer *domain.Account, game *domain.Videogame) (bool, error)
	Items(ctx context.Context, customer *domain.Account) ([]*domain.Videogame, error)
	Total(ctx context.Context, customer *domain.Account) (domain.Money, error)
	// Checkout drains the cart into a receipt. Stock is not touched.
	Checkout(ctx context.Context, customer *domain.Account) (*domain.Receipt, error)
}

// PaymentInput is the simulated card payment collected at checkout.
type PaymentInput struct {
	CardholderName string `label:"cardholder name" validate:"notblank"`
	CardNumber     string `label:"card number"     validate:"required,number,min=15,max=19"`
}

// CheckoutService validates payment and availability before draining a cart.
type CheckoutService interface {
	Process(ctx context.Context, customer *domain.Account, payment PaymentInput) (*domain.Receipt, error)
}
