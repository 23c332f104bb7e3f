package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/s2k/videogame-store/internal/core/domain"
	"github.com/s2k/videogame-store/internal/core/ports"
	"github.com/s2k/videogame-store/internal/metrics"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func testOwner() *domain.Account {
	a, _ := domain.NewAccount(1, "owner", "owner123", domain.RoleOwner, time.Now())
	return a
}

func testCustomer(id int64, username string) *domain.Account {
	a, _ := domain.NewAccount(id, username, "pw", domain.RoleCustomer, time.Now())
	return a
}

func seededCatalog(t *testing.T) *CatalogService {
	t.Helper()
	svc := NewCatalogService(NewSequence(1), nil, zerolog.Nop())
	if err := svc.Seed(context.Background(), DemoGames()...); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	return svc
}

func validGame(title string) ports.NewGameInput {
	return ports.NewGameInput{Title: title, Genre: domain.GenreRPG, Description: "desc", Price: 2500, Stock: 3}
}

// ---------------------------------------------------------------------------
// AddGame
// ---------------------------------------------------------------------------

func TestCatalogService_Seed(t *testing.T) {
	svc := seededCatalog(t)

	games := svc.ListAll(context.Background())
	if len(games) != 3 {
		t.Fatalf("expected 3 games, got %d", len(games))
	}
	if games[0].ID != 1 || games[0].Title != "Star Quest" || games[0].Price != 4999 || games[0].Stock != 10 {
		t.Errorf("unexpected first game: %+v", games[0])
	}
	if games[2].ID != 3 || games[2].Genre != domain.GenrePuzzle {
		t.Errorf("unexpected last game: %+v", games[2])
	}
	if got := testutil.ToFloat64(metrics.CatalogGames); got != 3 {
		t.Errorf("expected catalog gauge 3, got %v", got)
	}
}

func TestCatalogService_AddGame_Success(t *testing.T) {
	svc := seededCatalog(t)

	game, err := svc.AddGame(context.Background(), testOwner(), validGame("  Dungeon Deep "))
	if err != nil {
		t.Fatalf("AddGame returned error: %v", err)
	}
	if game.ID != 4 {
		t.Errorf("expected next id 4, got %d", game.ID)
	}
	if game.Title != "Dungeon Deep" {
		t.Errorf("expected trimmed title, got %q", game.Title)
	}
	all := svc.ListAll(context.Background())
	if all[len(all)-1] != game {
		t.Error("expected new game to be listed last")
	}
}

func TestCatalogService_AddGame_RequiresOwner(t *testing.T) {
	svc := seededCatalog(t)

	if _, err := svc.AddGame(context.Background(), testCustomer(2, "customer"), validGame("X")); !errors.Is(err, domain.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
	if _, err := svc.AddGame(context.Background(), nil, validGame("X")); !errors.Is(err, domain.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied for guest, got %v", err)
	}
	if len(svc.ListAll(context.Background())) != 3 {
		t.Fatal("catalog must be unchanged")
	}
}

func TestCatalogService_AddGame_InvalidInput(t *testing.T) {
	cases := map[string]func(*ports.NewGameInput){
		"blank title":       func(in *ports.NewGameInput) { in.Title = "  " },
		"blank description": func(in *ports.NewGameInput) { in.Description = "" },
		"unknown genre":     func(in *ports.NewGameInput) { in.Genre = "HORROR" },
		"negative price":    func(in *ports.NewGameInput) { in.Price = -1 },
		"negative stock":    func(in *ports.NewGameInput) { in.Stock = -5 },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			svc := seededCatalog(t)
			in := validGame("Broken")
			mutate(&in)

			if _, err := svc.AddGame(context.Background(), testOwner(), in); !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
			game, err := svc.AddGame(context.Background(), testOwner(), validGame("Fine"))
			if err != nil || game.ID != 4 {
				t.Fatalf("failed add must not consume an id, got %v (%v)", game, err)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// RemoveGame
// ---------------------------------------------------------------------------

func TestCatalogService_RemoveGame(t *testing.T) {
	svc := seededCatalog(t)
	game, _ := svc.FindByID(context.Background(), 2)

	removed, err := svc.RemoveGame(context.Background(), testOwner(), game)
	if err != nil || !removed {
		t.Fatalf("expected removal, got %v (%v)", removed, err)
	}
	if _, err := svc.FindByID(context.Background(), 2); !errors.Is(err, domain.ErrGameNotFound) {
		t.Fatalf("expected ErrGameNotFound, got %v", err)
	}
}

func TestCatalogService_RemoveGame_Absent(t *testing.T) {
	svc := seededCatalog(t)
	ghost := &domain.Videogame{ID: 99, Title: "Ghost"}

	removed, err := svc.RemoveGame(context.Background(), testOwner(), ghost)
	if err != nil || removed {
		t.Fatalf("expected false, nil; got %v, %v", removed, err)
	}
	if len(svc.ListAll(context.Background())) != 3 {
		t.Fatal("catalog must be unchanged")
	}
}

func TestCatalogService_RemoveGame_RequiresOwner(t *testing.T) {
	svc := seededCatalog(t)
	game, _ := svc.FindByID(context.Background(), 1)

	if _, err := svc.RemoveGame(context.Background(), testCustomer(2, "customer"), game); !errors.Is(err, domain.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// UpdatePrice / UpdateStock
// ---------------------------------------------------------------------------

func TestCatalogService_UpdatePrice(t *testing.T) {
	svc := seededCatalog(t)

	if err := svc.UpdatePrice(context.Background(), testOwner(), 1, 3999); err != nil {
		t.Fatalf("UpdatePrice returned error: %v", err)
	}
	game, _ := svc.FindByID(context.Background(), 1)
	if game.Price != 3999 {
		t.Errorf("expected 39.99, got %s", game.Price)
	}
}

func TestCatalogService_UpdatePrice_Errors(t *testing.T) {
	svc := seededCatalog(t)
	ctx := context.Background()

	if err := svc.UpdatePrice(ctx, testOwner(), 42, 100); !errors.Is(err, domain.ErrGameNotFound) {
		t.Fatalf("expected ErrGameNotFound, got %v", err)
	}
	if err := svc.UpdatePrice(ctx, testOwner(), 1, -1); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if err := svc.UpdatePrice(ctx, testCustomer(2, "c"), 1, 1); !errors.Is(err, domain.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
	game, _ := svc.FindByID(ctx, 1)
	if game.Price != 4999 {
		t.Errorf("price must be unchanged, got %s", game.Price)
	}
}

func TestCatalogService_UpdateStock(t *testing.T) {
	svc := seededCatalog(t)
	ctx := context.Background()

	if err := svc.UpdateStock(ctx, testOwner(), 3, 0); err != nil {
		t.Fatalf("UpdateStock returned error: %v", err)
	}
	game, _ := svc.FindByID(ctx, 3)
	if game.Stock != 0 {
		t.Errorf("expected stock 0, got %d", game.Stock)
	}

	if err := svc.UpdateStock(ctx, testOwner(), 42, 1); !errors.Is(err, domain.ErrGameNotFound) {
		t.Fatalf("expected ErrGameNotFound, got %v", err)
	}
	if err := svc.UpdateStock(ctx, testOwner(), 3, -2); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if err := svc.UpdateStock(ctx, testCustomer(2, "c"), 3, 7); !errors.Is(err, domain.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied for customer, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Queries
// ---------------------------------------------------------------------------

func TestCatalogService_FindByTitle_ExactIgnoringCase(t *testing.T) {
	svc := seededCatalog(t)
	_, _ = svc.AddGame(context.Background(), testOwner(), validGame("Star Quest 2"))

	found := svc.FindByTitle(context.Background(), "star quest")
	if len(found) != 1 || found[0].Title != "Star Quest" {
		t.Fatalf("expected only Star Quest, got %v", found)
	}
	if got := svc.FindByTitle(context.Background(), "quest"); len(got) != 0 {
		t.Fatalf("substring must not match, got %v", got)
	}
}

func TestCatalogService_FindByGenre(t *testing.T) {
	svc := seededCatalog(t)

	found := svc.FindByGenre(context.Background(), domain.GenreSimulation)
	if len(found) != 1 || found[0].Title != "Farm Days" {
		t.Fatalf("expected Farm Days, got %v", found)
	}
	if got := svc.FindByGenre(context.Background(), domain.GenreMMO); len(got) != 0 {
		t.Fatalf("expected no MMO games, got %v", got)
	}
}

func TestCatalogService_ListAll_ReturnsCopy(t *testing.T) {
	svc := seededCatalog(t)

	list := svc.ListAll(context.Background())
	list[0] = nil
	if svc.ListAll(context.Background())[0] == nil {
		t.Fatal("mutating the returned slice must not affect the catalog")
	}
}
