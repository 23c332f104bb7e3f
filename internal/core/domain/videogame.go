package domain

import (
	"fmt"
	"strings"
)

// Genre classifies a videogame.
type Genre string

const (
	GenreAction     Genre = "ACTION"
	GenreSimulation Genre = "SIMULATION"
	GenreRPG        Genre = "RPG"
	GenreStrategy   Genre = "STRATEGY"
	GenrePuzzle     Genre = "PUZZLE"
	GenreSports     Genre = "SPORTS"
	GenreMMO        Genre = "MMO"
	GenreSandbox    Genre = "SANDBOX"
)

var genres = []Genre{
	GenreAction,
	GenreSimulation,
	GenreRPG,
	GenreStrategy,
	GenrePuzzle,
	GenreSports,
	GenreMMO,
	GenreSandbox,
}

// Genres lists every known genre in display order.
func Genres() []Genre {
	out := make([]Genre, len(genres))
	copy(out, genres)
	return out
}

// Valid reports whether g is one of the known genres.
func (g Genre) Valid() bool {
	for _, known := range genres {
		if g == known {
			return true
		}
	}
	return false
}

// ParseGenre accepts tokens like "action" or "Puzzle"; spaces become underscores.
func ParseGenre(s string) (Genre, error) {
	g := Genre(strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(s)), " ", "_"))
	if !g.Valid() {
		return "", fmt.Errorf("%w: unknown genre %q", ErrInvalidInput, s)
	}
	return g, nil
}

// Videogame is a purchasable catalog record.
type Videogame struct {
	ID          int64
	Title       string
	Genre       Genre
	Description string
	Price       Money
	Stock       int
}

func (g *Videogame) String() string {
	return fmt.Sprintf("'%s' (ID: %d). Price: %s || In Stock: %d", g.Title, g.ID, g.Price, g.Stock)
}
