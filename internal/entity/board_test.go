package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBoard(t *testing.T) {
	// When: generating a board
	board := NewBoard()

	// Then: it is square with row/col stamped on every cell, all empty
	require.Len(t, board, BoardSize)
	for row := range board {
		require.Len(t, board[row], BoardSize)
		for col := range board[row] {
			assert.Equal(t, row, board[row][col].Row)
			assert.Equal(t, col, board[row][col].Col)
			assert.Nil(t, board[row][col].Bird)
		}
	}

	// Then: terrain counts match the fixed bag, with grassland filling the rest
	counts := map[string]int{}
	for _, row := range board {
		for _, cell := range row {
			counts[cell.Terrain]++
		}
	}

	assert.Equal(t, 8, counts[TerrainForest])
	assert.Equal(t, 6, counts[TerrainWater])
	assert.Equal(t, 4, counts[TerrainMountain])
	assert.Equal(t, 4, counts[TerrainDesert])
	assert.Equal(t, BoardSize*BoardSize-22, counts[TerrainGrassland])
}

func TestNewHand(t *testing.T) {
	// When: dealing a hand
	hand := NewHand()

	// Then: it has the fixed size, unique ids and known kinds, none placed
	require.Len(t, hand, HandSize)

	seen := map[string]bool{}
	for _, bird := range hand {
		assert.False(t, seen[bird.ID], "bird ids must be unique")
		seen[bird.ID] = true
		assert.Contains(t, birdKinds, bird.Kind)
		assert.Nil(t, bird.Position)
	}
}

func TestBird_PrefersTerrain(t *testing.T) {
	// Then: each kind favors exactly its mapped terrain
	cases := map[string]string{
		BirdBlue:   TerrainWater,
		BirdRed:    TerrainDesert,
		BirdYellow: TerrainGrassland,
		BirdGreen:  TerrainForest,
		BirdPurple: TerrainMountain,
	}

	for kind, terrain := range cases {
		bird := &Bird{Kind: kind}
		assert.True(t, bird.PrefersTerrain(terrain), "%s should prefer %s", kind, terrain)

		for _, other := range []string{TerrainForest, TerrainWater, TerrainMountain, TerrainGrassland, TerrainDesert} {
			if other == terrain {
				continue
			}
			assert.False(t, bird.PrefersTerrain(other), "%s should not prefer %s", kind, other)
		}
	}
}
