package entity

import "math/rand"

const BoardSize = 8

type Cell struct {
	Row             int      `json:"row"`
	Col             int      `json:"col"`
	Terrain         string   `json:"terrain"`
	Bird            *Bird    `json:"bird,omitempty"`
	AdjacentBirdIDs []string `json:"adjacentBirdIds,omitempty"`
}

// terrainBag returns the fixed multiset of special terrains a new board draws from.
// Cells left after the bag is exhausted default to grassland.
func terrainBag() []string {
	bag := make([]string, 0, 28)
	counts := []struct {
		terrain string
		n       int
	}{
		{TerrainForest, 8},
		{TerrainWater, 6},
		{TerrainMountain, 4},
		{TerrainGrassland, 6},
		{TerrainDesert, 4},
	}
	for _, c := range counts {
		for i := 0; i < c.n; i++ {
			bag = append(bag, c.terrain)
		}
	}

	return bag
}

// NewBoard - generates a square board, drawing each cell's terrain uniformly
// from the remaining bag until it runs out.
func NewBoard() [][]Cell {
	bag := terrainBag()

	board := make([][]Cell, BoardSize)
	for row := range board {
		board[row] = make([]Cell, BoardSize)
		for col := range board[row] {
			terrain := TerrainGrassland
			if len(bag) > 0 {
				i := rand.Intn(len(bag)) //nolint: gosec // game randomness, not security
				terrain = bag[i]
				bag[i] = bag[len(bag)-1]
				bag = bag[:len(bag)-1]
			}

			board[row][col] = Cell{
				Row:     row,
				Col:     col,
				Terrain: terrain,
			}
		}
	}

	return board
}
