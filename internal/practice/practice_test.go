package practice

import (
	"testing"

	"github.com/flocktogether/flock-backend/internal/apperror"
	"github.com/flocktogether/flock-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatch_Setup(t *testing.T) {
	// Given: a new local match
	match := NewMatch("alice", 3)

	// Then: it cannot start without an opponent
	require.ErrorIs(t, match.Start(), apperror.ErrNotEnoughPlayers)

	// When: an opponent is seated and the match starts
	require.NoError(t, match.AddOpponent("robo"))
	require.NoError(t, match.Start())

	// Then: the state mirrors a server-side game
	snapshot := match.Snapshot()
	assert.Equal(t, entity.StatusPlaying, snapshot.Status)
	assert.Len(t, snapshot.Players, 2)
	assert.Len(t, match.Hand(), entity.HandSize)
}

func TestMatch_PlayThrough(t *testing.T) {
	// Given: a started match limited to one round
	match := NewMatch("alice", 1)
	require.NoError(t, match.AddOpponent("robo"))
	require.NoError(t, match.Start())

	// When: both sides play their turn
	for i := 0; i < 2; i++ {
		if match.IsLocalTurn() {
			bird := match.Hand()[0]
			require.NoError(t, match.PlaceBird(bird.ID, 7, i))
		} else {
			require.NoError(t, match.PlayOpponentTurn())
		}
	}

	// Then: the round limit concludes the match under the same rules as online play
	snapshot := match.Snapshot()
	assert.Equal(t, entity.StatusFinished, snapshot.Status)
	assert.NotEmpty(t, snapshot.Winner)
	for _, player := range snapshot.Players {
		assert.GreaterOrEqual(t, player.Score, 1)
	}
}

func TestMatch_EnforcesTurnOrder(t *testing.T) {
	// Given: a started match
	match := NewMatch("alice", 3)
	require.NoError(t, match.AddOpponent("robo"))
	require.NoError(t, match.Start())

	// Then: whichever side is not active is rejected
	if match.IsLocalTurn() {
		require.ErrorIs(t, match.PlayOpponentTurn(), apperror.ErrNotYourTurn)
	} else {
		bird := match.Hand()[0]
		require.ErrorIs(t, match.PlaceBird(bird.ID, 0, 0), apperror.ErrNotYourTurn)
	}
}
