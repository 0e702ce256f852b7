package pkg

import (
	"crypto/rand"
	"math/big"

	"github.com/google/uuid"
)

// Alphabet for human-typed game codes; 0, 1, I and O are excluded because
// they are easy to misread.
const (
	gameCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	gameCodeLength   = 6
)

// GenerateGameCode - generates a short code players type to join a game.
func GenerateGameCode() string {
	code := make([]byte, gameCodeLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(gameCodeAlphabet))))
		if err != nil {
			code[i] = gameCodeAlphabet[0]
			continue
		}
		code[i] = gameCodeAlphabet[n.Int64()]
	}

	return string(code)
}

// GenerateClientID - generates a process-unique identity for a new connection.
func GenerateClientID() string {
	return uuid.NewString()
}
