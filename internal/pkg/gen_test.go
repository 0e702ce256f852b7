package pkg

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateGameCode(t *testing.T) {
	// When: generating a batch of codes
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		code := GenerateGameCode()

		// Then: every code has the fixed length and stays inside the alphabet
		require.Len(t, code, gameCodeLength)
		for _, c := range code {
			assert.Contains(t, gameCodeAlphabet, string(c))
		}

		seen[code] = true
	}

	// Then: the batch is not a single repeated value
	assert.Greater(t, len(seen), 1)
}

func TestGenerateClientID(t *testing.T) {
	// When: generating a client id
	id := GenerateClientID()

	// Then: it parses as a uuid and differs between calls
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.NotEqual(t, id, GenerateClientID())
}
