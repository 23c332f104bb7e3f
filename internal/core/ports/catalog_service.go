package ports

import (
	"context"

	"github.com/s2k/videogame-store/internal/core/domain"
)

// NewGameInput carries the fields of a game being added to the catalog.
type NewGameInput struct {
	Title       string       `label:"title"       validate:"notblank"`
	Genre       domain.Genre `label:"genre"       validate:"genre"`
	Description string       `label:"description" validate:"notblank"`
	Price       domain.Money `label:"price"       validate:"gte=0"`
	Stock       int          `label:"stock"       validate:"gte=0"`
}

// CatalogService manages the store's games. Mutations take the acting account.
type CatalogService interface {
	AddGame(ctx context.Context, actor *domain.Account, in NewGameInput) (*domain.Videogame, error)
	RemoveGame(ctx context.Context, actor *domain.Account, game *domain.Videogame) (bool, error)
	UpdatePrice(ctx context.Context, actor *domain.Account, id int64, price domain.Money) error
	UpdateStock(ctx context.Context, actor *domain.Account, id int64, stock int) error
	FindByID(ctx context.Context, id int64) (*domain.Videogame, error)
	// FindByTitle matches whole titles, ignoring case.
	FindByTitle(ctx context.Context, title string) []*domain.Videogame
	FindByGenre(ctx context.Context, genre domain.Genre) []*domain.Videogame
	ListAll(ctx context.Context) []*domain.Videogame
}
