package storage

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("connects to a reachable redis", func(t *testing.T) {
		// Given: an in-process redis
		mr := miniredis.RunT(t)

		// When: connecting
		client, err := New(context.Background(), mr.Addr())

		// Then: the client is usable
		require.NoError(t, err)
		require.NoError(t, client.Ping(context.Background()).Err())
		require.NoError(t, client.Close())
	})

	t.Run("fails when redis is unreachable", func(t *testing.T) {
		// When: connecting to an address nothing listens on
		_, err := New(context.Background(), "127.0.0.1:1")

		// Then: the connect fails
		require.Error(t, err)
	})
}
