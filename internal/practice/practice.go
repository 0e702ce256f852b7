// Package practice drives the same game rules as the realtime server, but
// locally: ids are synthesized instead of assigned by a gateway and opponent
// turns are simulated. It exists so an offline client exercises the exact
// session logic the server runs, not a parallel copy of it.
package practice

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/flocktogether/flock-backend/internal/apperror"
	"github.com/flocktogether/flock-backend/internal/entity"
	"github.com/flocktogether/flock-backend/internal/pkg"
)

type Match struct {
	game    *entity.Game
	localID string
}

// NewMatch - creates a local match hosted by the named player.
func NewMatch(playerName string, roundLimit int) *Match {
	localID := uuid.NewString()

	return &Match{
		game:    entity.NewGame(pkg.GenerateGameCode(), localID, playerName, roundLimit),
		localID: localID,
	}
}

func (that *Match) LocalPlayerID() string {
	return that.localID
}

// AddOpponent - seats a simulated opponent.
func (that *Match) AddOpponent(name string) error {
	return that.game.AddPlayer(uuid.NewString(), name)
}

func (that *Match) Start() error {
	return that.game.Start()
}

func (that *Match) IsLocalTurn() bool {
	return that.game.Turn == that.localID
}

// Hand - the local player's unplaced birds.
func (that *Match) Hand() []*entity.Bird {
	player := that.game.PlayerByID(that.localID)
	if player == nil {
		return nil
	}

	return player.Birds
}

// PlaceBird - places one of the local player's birds, under the same rules the
// server enforces.
func (that *Match) PlaceBird(birdID string, row, col int) error {
	return that.game.PlaceBird(that.localID, birdID, row, col)
}

// PlayOpponentTurn - makes a move for the simulated player whose turn it is:
// its first bird in hand onto the first free cell.
func (that *Match) PlayOpponentTurn() error {
	if that.game.Turn == that.localID {
		return apperror.ErrNotYourTurn
	}

	opponent := that.game.PlayerByID(that.game.Turn)
	if opponent == nil || len(opponent.Birds) == 0 {
		return apperror.ErrBirdNotInHand
	}

	bird := opponent.Birds[0]
	for row := 0; row < entity.BoardSize; row++ {
		for col := 0; col < entity.BoardSize; col++ {
			if that.game.Board[row][col].Bird == nil {
				return that.game.PlaceBird(opponent.ID, bird.ID, row, col)
			}
		}
	}

	return fmt.Errorf("%w: board is full", apperror.ErrCellOccupied)
}

// Snapshot - a deep copy of the local game state.
func (that *Match) Snapshot() *entity.Game {
	return that.game.Snapshot()
}
