package service

import (
	"github.com/s2k/videogame-store/internal/core/domain"
	"github.com/s2k/videogame-store/internal/core/ports"
)

// DemoGames is the catalog a fresh store starts with.
func DemoGames() []ports.NewGameInput {
	return []ports.NewGameInput{
		{Title: "Star Quest", Genre: domain.GenreAction, Description: "Space RPG adventure", Price: 4999, Stock: 10},
		{Title: "Farm Days", Genre: domain.GenreSimulation, Description: "Farming game", Price: 1999, Stock: 5},
		{Title: "Puzzle Master", Genre: domain.GenrePuzzle, Description: "Puzzle challenges", Price: 999, Stock: 20},
	}
}
