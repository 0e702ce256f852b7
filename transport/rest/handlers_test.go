package rest

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/flocktogether/flock-backend/internal/entity"
	"github.com/flocktogether/flock-backend/internal/registry"
	"github.com/flocktogether/flock-backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeArchive struct {
	games map[string]*entity.Game
}

func (that *fakeArchive) SaveFinished(_ context.Context, game *entity.Game) error {
	that.games[game.ID] = game
	return nil
}

func (that *fakeArchive) GetFinished(_ context.Context, code string) (*entity.Game, error) {
	game, ok := that.games[code]
	if !ok {
		return nil, repository.ErrGameNotArchived
	}
	return game, nil
}

func newTestServer(t *testing.T, archive repository.ArchiveRepository) (*httptest.Server, *registry.Registry) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	reg := registry.New(logger, nil, 5)

	srv := httptest.NewServer(New(logger, reg, archive).routes())
	t.Cleanup(srv.Close)

	return srv, reg
}

func getJSON(t *testing.T, url string, into any) int {
	t.Helper()

	resp, err := http.Get(url) //nolint: gosec // test-local URL
	require.NoError(t, err)
	defer resp.Body.Close()

	require.NoError(t, json.NewDecoder(resp.Body).Decode(into))

	return resp.StatusCode
}

func TestHandleHealth(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	// When: probing liveness
	var body map[string]string
	status := getJSON(t, srv.URL+"/health", &body)

	// Then: the server reports ok
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
}

func TestHandleAllGames(t *testing.T) {
	srv, reg := newTestServer(t, nil)

	// Given: two live games
	reg.CreateGame("host-1", "alice")
	reg.CreateGame("host-2", "bob")

	// When: listing games
	var games []*entity.Game
	status := getJSON(t, srv.URL+"/games", &games)

	// Then: both snapshots come back
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, games, 2)
}

func TestHandleGameByCode(t *testing.T) {
	t.Run("returns a live game", func(t *testing.T) {
		srv, reg := newTestServer(t, nil)
		code := reg.CreateGame("host-1", "alice")

		// When: fetching by code
		var game entity.Game
		status := getJSON(t, srv.URL+"/games/"+code, &game)

		// Then: the snapshot matches
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, code, game.ID)
		assert.Equal(t, entity.StatusWaiting, game.Status)
	})

	t.Run("404s on an unknown code", func(t *testing.T) {
		srv, _ := newTestServer(t, nil)

		// When: fetching a code that does not exist
		var body map[string]string
		status := getJSON(t, srv.URL+"/games/ZZZZZZ", &body)

		// Then: not found with a JSON error body
		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, "game not found", body["error"])
	})
}

func TestHandleArchivedGame(t *testing.T) {
	t.Run("returns an archived game", func(t *testing.T) {
		archive := &fakeArchive{games: map[string]*entity.Game{}}
		srv, _ := newTestServer(t, archive)

		finished := entity.NewGame("ABCD23", "host-1", "alice", 5)
		finished.End()
		require.NoError(t, archive.SaveFinished(context.Background(), finished))

		// When: fetching the archived game
		var game entity.Game
		status := getJSON(t, srv.URL+"/archive/games/ABCD23", &game)

		// Then: the final snapshot comes back
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, entity.StatusFinished, game.Status)
	})

	t.Run("404s when the archive is disabled", func(t *testing.T) {
		srv, _ := newTestServer(t, nil)

		// When: fetching from a server without an archive
		var body map[string]string
		status := getJSON(t, srv.URL+"/archive/games/ABCD23", &body)

		// Then: not found
		assert.Equal(t, http.StatusNotFound, status)
	})
}
