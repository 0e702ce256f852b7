package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/flocktogether/flock-backend/internal/apperror"
)

func (that *Server) handleCreateGame(c *client, msg *Message) {
	log := that.logger.With("method", "handleCreateGame", "clientID", c.id)

	var payload createGamePayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Error("failed to unmarshal payload", "error", err)
		return
	}

	if payload.Username == "" {
		that.sendError(c, "username is required")
		return
	}

	if that.gameOf(c) != "" {
		that.sendError(c, "you are already in a game")
		return
	}

	gameID := that.registry.CreateGame(c.id, payload.Username)
	that.bindGame(c, gameID, payload.Username)

	snapshot, err := that.registry.GameSnapshot(gameID)
	if err != nil {
		log.Error("failed to get created game", "gameID", gameID, "error", err)
		that.sendError(c, "failed to create game")
		return
	}

	if err = c.send(Message{
		Type:    MsgGameCreated,
		Payload: mustMarshal(gameCreatedPayload{GameID: gameID, GameState: snapshot}),
	}); err != nil {
		log.Error("failed to send game created", "error", err)
		return
	}

	log.Info("game created", "gameID", gameID)
}

func (that *Server) handleJoinGame(c *client, msg *Message) {
	log := that.logger.With("method", "handleJoinGame", "clientID", c.id)

	var payload joinGamePayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Error("failed to unmarshal payload", "error", err)
		return
	}

	if that.gameOf(c) != "" {
		that.sendError(c, "you are already in a game")
		return
	}

	gameID := strings.ToUpper(payload.GameID)

	if err := that.registry.JoinGame(gameID, c.id, payload.Username); err != nil {
		log.Error("failed to join game", "gameID", gameID, "error", err)
		that.sendError(c, fmt.Sprintf("failed to join game: %v", err))
		return
	}

	that.bindGame(c, gameID, payload.Username)

	snapshot, err := that.registry.GameSnapshot(gameID)
	if err != nil {
		log.Error("failed to get joined game", "gameID", gameID, "error", err)
		return
	}

	that.broadcast(gameID, Message{
		Type:    MsgPlayerJoined,
		Payload: mustMarshal(gameStatePayload{GameState: snapshot}),
	})

	log.Info("player joined game", "gameID", gameID)
}

func (that *Server) handleStartGame(c *client, msg *Message) {
	log := that.logger.With("method", "handleStartGame", "clientID", c.id)

	var payload startGamePayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Error("failed to unmarshal payload", "error", err)
		return
	}

	gameID := strings.ToUpper(payload.GameID)
	if current := that.gameOf(c); current == "" || current != gameID {
		that.sendError(c, "you are not in that game")
		return
	}

	if err := that.registry.StartGame(gameID); err != nil {
		log.Error("failed to start game", "gameID", gameID, "error", err)
		that.sendError(c, fmt.Sprintf("failed to start game: %v", err))
		return
	}

	snapshot, err := that.registry.GameSnapshot(gameID)
	if err != nil {
		log.Error("failed to get started game", "gameID", gameID, "error", err)
		return
	}

	that.broadcast(gameID, Message{
		Type:    MsgGameStarted,
		Payload: mustMarshal(gameStatePayload{GameState: snapshot}),
	})

	log.Info("game started", "gameID", gameID)
}

func (that *Server) handleLeaveGame(c *client) {
	if that.gameOf(c) == "" {
		that.sendError(c, apperror.ErrNotInGame.Error())
		return
	}

	that.leaveCurrentGame(c)
}

// leaveCurrentGame - removes the client from its game and notifies the players
// still in it. Shared by the explicit LEAVE_GAME path and disconnects; a client
// with no association is a no-op.
func (that *Server) leaveCurrentGame(c *client) {
	gameID, username := that.unbindGame(c)
	if gameID == "" {
		return
	}

	log := that.logger.With("method", "leaveCurrentGame", "clientID", c.id, "username", username)

	if err := that.registry.LeaveGame(gameID, c.id); err != nil {
		log.Error("failed to leave game", "gameID", gameID, "error", err)
		return
	}

	// The game is gone if the leaver was its last player.
	snapshot, err := that.registry.GameSnapshot(gameID)
	if err != nil {
		log.Info("game deleted after last player left", "gameID", gameID)
		return
	}

	that.broadcast(gameID, Message{
		Type:    MsgPlayerLeft,
		Payload: mustMarshal(gameStatePayload{GameState: snapshot}),
	})

	log.Info("player left game", "gameID", gameID)
}

func (that *Server) handleGameAction(ctx context.Context, c *client, msg *Message) {
	log := that.logger.With("method", "handleGameAction", "clientID", c.id)

	gameID := that.gameOf(c)
	if gameID == "" {
		that.sendError(c, apperror.ErrNotInGame.Error())
		return
	}

	var payload gameActionPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Error("failed to unmarshal payload", "error", err)
		return
	}

	switch payload.Action {
	case ActionPlaceBird:
		that.handlePlaceBird(ctx, c, gameID, &payload)
	case ActionGetPlayerBirds:
		that.handleGetPlayerBirds(c, gameID)
	case ActionIsMyTurn:
		that.handleIsMyTurn(c, gameID)
	case ActionGetGameState:
		that.handleGetGameState(c, gameID)
	default:
		that.sendError(c, fmt.Sprintf("unknown game action: %s", payload.Action))
	}
}

func (that *Server) handlePlaceBird(ctx context.Context, c *client, gameID string, payload *gameActionPayload) {
	log := that.logger.With("method", "handlePlaceBird", "clientID", c.id, "gameID", gameID)

	if payload.BirdID == "" || len(payload.Position) != 2 {
		that.sendError(c, "invalid bird placement parameters")
		return
	}

	row, col := payload.Position[0], payload.Position[1]

	if err := that.registry.PlaceBird(ctx, gameID, c.id, payload.BirdID, row, col); err != nil {
		log.Error("failed to place bird", "error", err)
		that.sendError(c, fmt.Sprintf("failed to place bird: %v", err))
		return
	}

	snapshot, err := that.registry.GameSnapshot(gameID)
	if err != nil {
		log.Error("failed to get game after placement", "error", err)
		return
	}

	that.broadcast(gameID, Message{
		Type: MsgBirdPlaced,
		Payload: mustMarshal(birdPlacedPayload{
			PlayerID:  c.id,
			BirdID:    payload.BirdID,
			Position:  [2]int{row, col},
			GameState: snapshot,
		}),
	})

	log.Info("bird placed", "birdID", payload.BirdID, "row", row, "col", col)
}

func (that *Server) handleGetPlayerBirds(c *client, gameID string) {
	snapshot, err := that.registry.GameSnapshot(gameID)
	if err != nil {
		that.sendError(c, "failed to get birds")
		return
	}

	player := snapshot.PlayerByID(c.id)
	if player == nil {
		that.sendError(c, "failed to get birds")
		return
	}

	if err = c.send(Message{
		Type:    MsgPlayerBirds,
		Payload: mustMarshal(playerBirdsPayload{Birds: player.Birds}),
	}); err != nil {
		that.logger.Error("failed to send player birds", "clientID", c.id, "error", err)
	}
}

func (that *Server) handleIsMyTurn(c *client, gameID string) {
	snapshot, err := that.registry.GameSnapshot(gameID)
	if err != nil {
		that.sendError(c, "game not found")
		return
	}

	if err = c.send(Message{
		Type:    MsgTurnStatus,
		Payload: mustMarshal(turnStatusPayload{IsYourTurn: snapshot.Turn == c.id}),
	}); err != nil {
		that.logger.Error("failed to send turn status", "clientID", c.id, "error", err)
	}
}

func (that *Server) handleGetGameState(c *client, gameID string) {
	snapshot, err := that.registry.GameSnapshot(gameID)
	if err != nil {
		that.sendError(c, "game not found")
		return
	}

	if err = c.send(Message{
		Type:    MsgGameState,
		Payload: mustMarshal(gameStatePayload{GameState: snapshot}),
	}); err != nil {
		that.logger.Error("failed to send game state", "clientID", c.id, "error", err)
	}
}
