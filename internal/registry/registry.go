package registry

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/flocktogether/flock-backend/internal/apperror"
	"github.com/flocktogether/flock-backend/internal/entity"
	"github.com/flocktogether/flock-backend/internal/pkg"
)

// archive receives final snapshots of concluded games; may be nil.
type archive interface {
	SaveFinished(ctx context.Context, game *entity.Game) error
}

// Registry is the single source of truth mapping codes to live games. All
// mutations run under one mutex so every operation completes fully before the
// next begins, regardless of how many connection goroutines feed it.
type Registry struct {
	logger  *slog.Logger
	archive archive

	mu         sync.Mutex
	games      map[string]*entity.Game
	roundLimit int
}

func New(logger *slog.Logger, gameArchive archive, roundLimit int) *Registry {
	return &Registry{
		logger:     logger,
		archive:    gameArchive,
		games:      make(map[string]*entity.Game),
		roundLimit: roundLimit,
	}
}

// CreateGame - creates a game with a fresh unique code and the host as sole player.
func (that *Registry) CreateGame(hostID, hostName string) string {
	that.mu.Lock()
	defer that.mu.Unlock()

	code := pkg.GenerateGameCode()
	for _, exists := that.games[code]; exists; _, exists = that.games[code] {
		code = pkg.GenerateGameCode()
	}

	that.games[code] = entity.NewGame(code, hostID, hostName, that.roundLimit)

	return code
}

func (that *Registry) JoinGame(code, playerID, name string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	game, ok := that.games[code]
	if !ok {
		return fmt.Errorf("%w: %s", apperror.ErrGameNotFound, code)
	}

	return game.AddPlayer(playerID, name)
}

// LeaveGame - removes the player; a game with no players left is deleted.
func (that *Registry) LeaveGame(code, playerID string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	game, ok := that.games[code]
	if !ok {
		return fmt.Errorf("%w: %s", apperror.ErrGameNotFound, code)
	}

	if err := game.RemovePlayer(playerID); err != nil {
		return err
	}

	if len(game.Players) == 0 {
		delete(that.games, code)
		that.logger.Info("empty game deleted", "gameID", code)
	}

	return nil
}

func (that *Registry) StartGame(code string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	game, ok := that.games[code]
	if !ok {
		return fmt.Errorf("%w: %s", apperror.ErrGameNotFound, code)
	}

	return game.Start()
}

// PlaceBird - delegates the placement; if it concludes the game, the final
// snapshot is archived best-effort.
func (that *Registry) PlaceBird(ctx context.Context, code, playerID, birdID string, row, col int) error {
	that.mu.Lock()

	game, ok := that.games[code]
	if !ok {
		that.mu.Unlock()
		return fmt.Errorf("%w: %s", apperror.ErrGameNotFound, code)
	}

	err := game.PlaceBird(playerID, birdID, row, col)

	var finished *entity.Game
	if err == nil && game.IsFinished() {
		finished = game.Snapshot()
	}
	that.mu.Unlock()

	if finished != nil {
		that.archiveFinished(ctx, finished)
	}

	return err
}

// EndGame - force-concludes a game and archives its final snapshot.
func (that *Registry) EndGame(ctx context.Context, code string) error {
	that.mu.Lock()

	game, ok := that.games[code]
	if !ok {
		that.mu.Unlock()
		return fmt.Errorf("%w: %s", apperror.ErrGameNotFound, code)
	}

	game.End()
	finished := game.Snapshot()
	that.mu.Unlock()

	that.archiveFinished(ctx, finished)

	return nil
}

// GameSnapshot - returns a deep copy of one game's state.
func (that *Registry) GameSnapshot(code string) (*entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	game, ok := that.games[code]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperror.ErrGameNotFound, code)
	}

	return game.Snapshot(), nil
}

// AllGames - snapshots of every live game.
func (that *Registry) AllGames() []*entity.Game {
	that.mu.Lock()
	defer that.mu.Unlock()

	snapshots := make([]*entity.Game, 0, len(that.games))
	for _, game := range that.games {
		snapshots = append(snapshots, game.Snapshot())
	}

	return snapshots
}

// FindByPlayer - linear scan for the game a player currently belongs to.
func (that *Registry) FindByPlayer(playerID string) (*entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	for _, game := range that.games {
		if game.PlayerByID(playerID) != nil {
			return game.Snapshot(), nil
		}
	}

	return nil, fmt.Errorf("%w for player %s", apperror.ErrGameNotFound, playerID)
}

// archiveFinished - records a concluded game; failures are logged, never surfaced.
func (that *Registry) archiveFinished(ctx context.Context, game *entity.Game) {
	if that.archive == nil {
		return
	}

	if err := that.archive.SaveFinished(ctx, game); err != nil {
		that.logger.Error("failed to archive finished game", "gameID", game.ID, "error", err)
		return
	}

	that.logger.Info("finished game archived", "gameID", game.ID)
}
