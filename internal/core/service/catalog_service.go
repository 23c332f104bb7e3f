package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/s2k/videogame-store/internal/core/domain"
	"github.com/s2k/videogame-store/internal/core/ports"
	"github.com/s2k/videogame-store/internal/metrics"
	"github.com/s2k/videogame-store/internal/pkg/validate"
)

type CatalogService struct {
	games     []*domain.Videogame
	ids       *Sequence
	validator *validate.Validator
	logger    zerolog.Logger
}

var _ ports.CatalogService = (*CatalogService)(nil)

func NewCatalogService(ids *Sequence, v *validate.Validator, logger zerolog.Logger) *CatalogService {
	if ids == nil {
		ids = NewSequence(1)
	}
	if v == nil {
		v = validate.New()
	}
	return &CatalogService{ids: ids, validator: v, logger: logger}
}

// Seed adds games without an acting account. It stops at the first invalid input.
func (s *CatalogService) Seed(ctx context.Context, games ...ports.NewGameInput) error {
	for _, in := range games {
		if _, err := s.add(in); err != nil {
			return fmt.Errorf("seed catalog: %w", err)
		}
	}
	s.logger.Debug().Int("games", len(s.games)).Msg("catalog seeded")
	return nil
}

// AddGame validates in and appends a new game with the next identifier.
func (s *CatalogService) AddGame(ctx context.Context, actor *domain.Account, in ports.NewGameInput) (*domain.Videogame, error) {
	if err := requireRole(actor, domain.RoleOwner); err != nil {
		return nil, err
	}
	game, err := s.add(in)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Int64("game_id", game.ID).Str("title", game.Title).Int64("actor_id", actor.ID).Msg("game added")
	return game, nil
}

func (s *CatalogService) add(in ports.NewGameInput) (*domain.Videogame, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	if err := s.validator.Struct(in); err != nil {
		return nil, err
	}
	game := &domain.Videogame{
		ID:          s.ids.Next(),
		Title:       in.Title,
		Genre:       in.Genre,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
	}
	s.games = append(s.games, game)
	metrics.CatalogGames.Set(float64(len(s.games)))
	return game, nil
}

// RemoveGame reports whether game was in the catalog and has been removed.
// Carts still holding the game keep their entries.
func (s *CatalogService) RemoveGame(ctx context.Context, actor *domain.Account, game *domain.Videogame) (bool, error) {
	if err := requireRole(actor, domain.RoleOwner); err != nil {
		return false, err
	}
	if game == nil {
		return false, nil
	}
	for i, g := range s.games {
		if g.ID == game.ID {
			s.games = append(s.games[:i], s.games[i+1:]...)
			metrics.CatalogGames.Set(float64(len(s.games)))
			s.logger.Info().Int64("game_id", g.ID).Str("title", g.Title).Int64("actor_id", actor.ID).Msg("game removed")
			return true, nil
		}
	}
	return false, nil
}

func (s *CatalogService) UpdatePrice(ctx context.Context, actor *domain.Account, id int64, price domain.Money) error {
	if err := requireRole(actor, domain.RoleOwner); err != nil {
		return err
	}
	if price < 0 {
		return fmt.Errorf("%w: price must be at least 0", domain.ErrInvalidInput)
	}
	game := s.lookup(id)
	if game == nil {
		return fmt.Errorf("update price of %d: %w", id, domain.ErrGameNotFound)
	}
	old := game.Price
	game.Price = price
	s.logger.Info().Int64("game_id", id).Str("old", old.String()).Str("new", price.String()).Msg("price updated")
	return nil
}

func (s *CatalogService) UpdateStock(ctx context.Context, actor *domain.Account, id int64, stock int) error {
	if err := requireRole(actor, domain.RoleOwner); err != nil {
		return err
	}
	if stock < 0 {
		return fmt.Errorf("%w: stock must be at least 0", domain.ErrInvalidInput)
	}
	game := s.lookup(id)
	if game == nil {
		return fmt.Errorf("update stock of %d: %w", id, domain.ErrGameNotFound)
	}
	old := game.Stock
	game.Stock = stock
	s.logger.Info().Int64("game_id", id).Int("old", old).Int("new", stock).Msg("stock updated")
	return nil
}

func (s *CatalogService) lookup(id int64) *domain.Videogame {
	for _, g := range s.games {
		if g.ID == id {
			return g
		}
	}
	return nil
}

func (s *CatalogService) FindByID(ctx context.Context, id int64) (*domain.Videogame, error) {
	if g := s.lookup(id); g != nil {
		return g, nil
	}
	return nil, fmt.Errorf("game %d: %w", id, domain.ErrGameNotFound)
}

// FindByTitle matches whole titles ignoring case, so "star quest" does not
// match "Star Quest 2".
func (s *CatalogService) FindByTitle(ctx context.Context, title string) []*domain.Videogame {
	title = strings.TrimSpace(title)
	var out []*domain.Videogame
	for _, g := range s.games {
		if strings.EqualFold(g.Title, title) {
			out = append(out, g)
		}
	}
	return out
}

func (s *CatalogService) FindByGenre(ctx context.Context, genre domain.Genre) []*domain.Videogame {
	var out []*domain.Videogame
	for _, g := range s.games {
		if g.Genre == genre {
			out = append(out, g)
		}
	}
	return out
}

// ListAll returns the games in insertion order.
func (s *CatalogService) ListAll(ctx context.Context) []*domain.Videogame {
	out := make([]*domain.Videogame, len(s.games))
	copy(out, s.games)
	return out
}
