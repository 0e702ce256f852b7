package websocket

import (
	"encoding/json"

	"github.com/flocktogether/flock-backend/internal/entity"
)

// Message is the tagged envelope both directions of the protocol share.
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Inbound message types.
const (
	MsgCreateGame = "CREATE_GAME"
	MsgJoinGame   = "JOIN_GAME"
	MsgStartGame  = "START_GAME"
	MsgLeaveGame  = "LEAVE_GAME"
	MsgGameAction = "GAME_ACTION"
)

// Outbound message types.
const (
	MsgConnectionEstablished = "CONNECTION_ESTABLISHED"
	MsgGameCreated           = "GAME_CREATED"
	MsgPlayerJoined          = "PLAYER_JOINED"
	MsgGameStarted           = "GAME_STARTED"
	MsgPlayerLeft            = "PLAYER_LEFT"
	MsgBirdPlaced            = "BIRD_PLACED"
	MsgPlayerBirds           = "PLAYER_BIRDS"
	MsgTurnStatus            = "TURN_STATUS"
	MsgGameState             = "GAME_STATE"
	MsgError                 = "ERROR"
)

// ActionKind is the closed set of GAME_ACTION sub-commands.
type ActionKind string

const (
	ActionPlaceBird      ActionKind = "PLACE_BIRD"
	ActionGetPlayerBirds ActionKind = "GET_PLAYER_BIRDS"
	ActionIsMyTurn       ActionKind = "IS_MY_TURN"
	ActionGetGameState   ActionKind = "GET_GAME_STATE"
)

type createGamePayload struct {
	Username string `json:"username"`
}

type joinGamePayload struct {
	GameID   string `json:"gameId"`
	Username string `json:"username"`
}

type startGamePayload struct {
	GameID string `json:"gameId"`
}

type gameActionPayload struct {
	Action   ActionKind `json:"action"`
	BirdID   string     `json:"birdId,omitempty"`
	Position []int      `json:"position,omitempty"`
}

type connectionEstablishedPayload struct {
	ClientID string `json:"clientId"`
}

type gameCreatedPayload struct {
	GameID    string       `json:"gameId"`
	GameState *entity.Game `json:"gameState"`
}

type gameStatePayload struct {
	GameState *entity.Game `json:"gameState"`
}

type birdPlacedPayload struct {
	PlayerID  string       `json:"playerId"`
	BirdID    string       `json:"birdId"`
	Position  [2]int       `json:"position"`
	GameState *entity.Game `json:"gameState"`
}

type playerBirdsPayload struct {
	Birds []*entity.Bird `json:"birds"`
}

type turnStatusPayload struct {
	IsYourTurn bool `json:"isYourTurn"`
}

type errorPayload struct {
	Message string `json:"message"`
}
