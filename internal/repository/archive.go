package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/flocktogether/flock-backend/internal/entity"
)

var ErrGameNotArchived = errors.New("game not found in archive")

// archiveTTL keeps finished games around long enough to be looked up after a
// match, without accumulating forever.
const archiveTTL = 24 * time.Hour

type ArchiveRepository interface {
	SaveFinished(ctx context.Context, game *entity.Game) error
	GetFinished(ctx context.Context, code string) (*entity.Game, error)
}

type dbArchive struct {
	client *redis.Client
}

func NewArchiveRepository(client *redis.Client) ArchiveRepository {
	return &dbArchive{
		client: client,
	}
}

func (that *dbArchive) SaveFinished(ctx context.Context, game *entity.Game) error {
	gameJSON, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("could not marshal game: %w", err)
	}

	key := archiveKey(game.ID)
	if err = that.client.Set(ctx, key, gameJSON, archiveTTL).Err(); err != nil {
		return fmt.Errorf("failed to set archived game: %w", err)
	}

	return nil
}

func (that *dbArchive) GetFinished(ctx context.Context, code string) (*entity.Game, error) {
	response, err := that.client.Get(ctx, archiveKey(code)).Result()

	if errors.Is(err, redis.Nil) {
		return nil, ErrGameNotArchived
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get archived game: %w", err)
	}

	var game entity.Game
	if err = json.Unmarshal([]byte(response), &game); err != nil {
		return nil, fmt.Errorf("failed to unmarshal archived game: %w", err)
	}

	return &game, nil
}

func archiveKey(code string) string {
	return "archive:game:" + code
}
