package entity

import (
	"fmt"
	"math/rand"

	"github.com/flocktogether/flock-backend/internal/apperror"
)

const (
	StatusWaiting  = "waiting"
	StatusPlaying  = "playing"
	StatusFinished = "finished"
)

const minPlayersToStart = 2

type Game struct {
	ID         string    `json:"id"`
	Players    []*Player `json:"players"`
	Status     string    `json:"status"`
	Board      [][]Cell  `json:"board"`
	Turn       string    `json:"currentTurn"`
	Round      int       `json:"round"`
	RoundLimit int       `json:"roundLimit"`
	Winner     string    `json:"winner,omitempty"`
}

// NewGame - creates a waiting game with a generated board and the host as sole player.
func NewGame(id, hostID, hostName string, roundLimit int) *Game {
	return &Game{
		ID:     id,
		Status: StatusWaiting,
		Board:  NewBoard(),
		Players: []*Player{{
			ID:     hostID,
			Name:   hostName,
			Birds:  NewHand(),
			IsHost: true,
		}},
		RoundLimit: roundLimit,
	}
}

func (that *Game) IsWaiting() bool {
	return that.Status == StatusWaiting
}

func (that *Game) IsPlaying() bool {
	return that.Status == StatusPlaying
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

// ConfirmPlayingState - returns the precondition failure keeping the game out of play, if any.
func (that *Game) ConfirmPlayingState() error {
	switch {
	case that.IsWaiting():
		return apperror.ErrGameIsNotStarted
	case that.IsFinished():
		return apperror.ErrGameFinished
	default:
		return nil
	}
}

func (that *Game) PlayerByID(id string) *Player {
	for _, player := range that.Players {
		if player.ID == id {
			return player
		}
	}

	return nil
}

// AddPlayer - adds a player with a fresh hand; only allowed while the game is waiting.
func (that *Game) AddPlayer(id, name string) error {
	if !that.IsWaiting() {
		return apperror.ErrGameAlreadyBegun
	}

	if that.PlayerByID(id) != nil {
		return apperror.ErrPlayerExists
	}

	that.Players = append(that.Players, &Player{
		ID:    id,
		Name:  name,
		Birds: NewHand(),
	})

	return nil
}

// RemovePlayer - removes a player. If the host leaves and others remain, the
// player now at position 0 becomes host. Leaving mid-game does not end the match.
func (that *Game) RemovePlayer(id string) error {
	index := -1
	for i, player := range that.Players {
		if player.ID == id {
			index = i
			break
		}
	}

	if index == -1 {
		return apperror.ErrPlayerNotInGame
	}

	wasHost := that.Players[index].IsHost
	that.Players = append(that.Players[:index], that.Players[index+1:]...)

	if wasHost && len(that.Players) > 0 {
		that.Players[0].IsHost = true
	}

	return nil
}

// Start - moves the game into play, round 1, with a random starting player.
func (that *Game) Start() error {
	if !that.IsWaiting() {
		return apperror.ErrGameAlreadyBegun
	}

	if len(that.Players) < minPlayersToStart {
		return apperror.ErrNotEnoughPlayers
	}

	that.Status = StatusPlaying
	that.Round = 1
	that.Turn = that.Players[rand.Intn(len(that.Players))].ID //nolint: gosec // game randomness, not security

	return nil
}

// PlaceBird - moves a bird from the active player's hand onto an empty cell,
// recomputes adjacency, scores the placement and advances the turn.
func (that *Game) PlaceBird(playerID, birdID string, row, col int) error {
	if err := that.ConfirmPlayingState(); err != nil {
		return err
	}

	if that.Turn != playerID {
		return apperror.ErrNotYourTurn
	}

	if row < 0 || row >= BoardSize || col < 0 || col >= BoardSize {
		return fmt.Errorf("%w: (%d,%d)", apperror.ErrInvalidPosition, row, col)
	}

	cell := &that.Board[row][col]
	if cell.Bird != nil {
		return apperror.ErrCellOccupied
	}

	player := that.PlayerByID(playerID)
	if player == nil {
		return apperror.ErrPlayerNotInGame
	}

	bird := player.takeBird(birdID)
	if bird == nil {
		return apperror.ErrBirdNotInHand
	}

	bird.Position = &Position{Row: row, Col: col}
	cell.Bird = bird

	neighbors := that.occupiedNeighbors(row, col)

	// The placed cell's adjacency list is rebuilt from scratch; each occupied
	// neighbor only gains the new bird's id if it is not already listed.
	adjacent := make([]string, 0, len(neighbors))
	for _, neighbor := range neighbors {
		adjacent = append(adjacent, neighbor.Bird.ID)
		neighbor.AdjacentBirdIDs = appendIfAbsent(neighbor.AdjacentBirdIDs, bird.ID)
	}
	cell.AdjacentBirdIDs = adjacent

	player.Score += scorePlacement(bird, cell, neighbors)

	that.advanceTurn()

	return nil
}

// End - concludes the game. The winner is the highest-scoring player; on a tie
// the earliest-joined of the tied players wins.
func (that *Game) End() {
	that.Status = StatusFinished
	that.Turn = ""

	best := -1
	for _, player := range that.Players {
		if player.Score > best {
			best = player.Score
			that.Winner = player.ID
		}
	}
}

// takeBird - removes and returns the bird with the given id, or nil if absent.
func (that *Player) takeBird(birdID string) *Bird {
	for i, bird := range that.Birds {
		if bird.ID == birdID {
			that.Birds = append(that.Birds[:i], that.Birds[i+1:]...)
			return bird
		}
	}

	return nil
}

// scorePlacement - computes the points earned by the just-placed bird:
// 1 base, +2 on its preferred terrain, +1 per occupied orthogonal neighbor
// and +2 more for each neighbor of the same kind.
func scorePlacement(bird *Bird, cell *Cell, neighbors []*Cell) int {
	points := 1

	if bird.PrefersTerrain(cell.Terrain) {
		points += 2
	}

	points += len(cell.AdjacentBirdIDs)

	for _, neighbor := range neighbors {
		if neighbor.Bird.Kind == bird.Kind {
			points += 2
		}
	}

	return points
}

// advanceTurn - hands the turn to the next player in join order. Wrapping back
// to the first player starts a new round; past the round limit the game ends.
func (that *Game) advanceTurn() {
	index := 0
	for i, player := range that.Players {
		if player.ID == that.Turn {
			index = i
			break
		}
	}

	next := (index + 1) % len(that.Players)
	that.Turn = that.Players[next].ID

	if next == 0 {
		that.Round++
		if that.Round > that.RoundLimit {
			that.End()
		}
	}
}

// occupiedNeighbors - the orthogonally adjacent cells that hold a bird.
func (that *Game) occupiedNeighbors(row, col int) []*Cell {
	offsets := [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

	var neighbors []*Cell
	for _, offset := range offsets {
		r, c := row+offset[0], col+offset[1]
		if r < 0 || r >= BoardSize || c < 0 || c >= BoardSize {
			continue
		}
		if that.Board[r][c].Bird != nil {
			neighbors = append(neighbors, &that.Board[r][c])
		}
	}

	return neighbors
}

func appendIfAbsent(ids []string, id string) []string {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}

	return append(ids, id)
}

// Snapshot - returns a deep copy so callers can never mutate live game state.
func (that *Game) Snapshot() *Game {
	snapshot := &Game{
		ID:         that.ID,
		Status:     that.Status,
		Turn:       that.Turn,
		Round:      that.Round,
		RoundLimit: that.RoundLimit,
		Winner:     that.Winner,
		Players:    make([]*Player, 0, len(that.Players)),
		Board:      make([][]Cell, len(that.Board)),
	}

	for _, player := range that.Players {
		copied := &Player{
			ID:     player.ID,
			Name:   player.Name,
			Score:  player.Score,
			IsHost: player.IsHost,
			Birds:  make([]*Bird, 0, len(player.Birds)),
		}
		for _, bird := range player.Birds {
			copied.Birds = append(copied.Birds, copyBird(bird))
		}
		snapshot.Players = append(snapshot.Players, copied)
	}

	for row := range that.Board {
		snapshot.Board[row] = make([]Cell, len(that.Board[row]))
		for col := range that.Board[row] {
			cell := that.Board[row][col]
			cell.Bird = copyBird(cell.Bird)
			cell.AdjacentBirdIDs = append([]string(nil), cell.AdjacentBirdIDs...)
			snapshot.Board[row][col] = cell
		}
	}

	return snapshot
}

func copyBird(bird *Bird) *Bird {
	if bird == nil {
		return nil
	}

	copied := *bird
	if bird.Position != nil {
		position := *bird.Position
		copied.Position = &position
	}

	return &copied
}
