package entity

import (
	"math/rand"

	"github.com/google/uuid"
)

const (
	BirdBlue   = "blue"
	BirdRed    = "red"
	BirdYellow = "yellow"
	BirdGreen  = "green"
	BirdPurple = "purple"
)

const (
	TerrainForest    = "forest"
	TerrainWater     = "water"
	TerrainMountain  = "mountain"
	TerrainGrassland = "grassland"
	TerrainDesert    = "desert"
)

const HandSize = 5

var birdKinds = []string{BirdBlue, BirdRed, BirdYellow, BirdGreen, BirdPurple}

// preferredTerrain maps every bird kind to the single terrain it scores extra on.
var preferredTerrain = map[string]string{
	BirdBlue:   TerrainWater,
	BirdRed:    TerrainDesert,
	BirdYellow: TerrainGrassland,
	BirdGreen:  TerrainForest,
	BirdPurple: TerrainMountain,
}

type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

type Bird struct {
	ID       string    `json:"id"`
	Kind     string    `json:"type"`
	Position *Position `json:"position,omitempty"`
}

// PrefersTerrain reports whether the bird's kind favors the given terrain.
func (that *Bird) PrefersTerrain(terrain string) bool {
	return preferredTerrain[that.Kind] == terrain
}

// NewHand - deals a fresh hand of birds with random kinds and unique ids.
func NewHand() []*Bird {
	hand := make([]*Bird, 0, HandSize)
	for i := 0; i < HandSize; i++ {
		hand = append(hand, &Bird{
			ID:   uuid.NewString(),
			Kind: birdKinds[rand.Intn(len(birdKinds))], //nolint: gosec // game randomness, not security
		})
	}

	return hand
}
