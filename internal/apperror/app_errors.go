package apperror

import "errors"

var (
	ErrGameFinished     = errors.New("game is already finished")
	ErrGameIsNotStarted = errors.New("game is not started")
	ErrGameAlreadyBegun = errors.New("game has already begun")
	ErrNotEnoughPlayers = errors.New("not enough players to start")
	ErrNotYourTurn      = errors.New("it's not your turn")
	ErrCellOccupied     = errors.New("cell is already occupied")
	ErrInvalidPosition  = errors.New("position is outside the board")
	ErrBirdNotInHand    = errors.New("bird is not in your hand")
	ErrPlayerExists     = errors.New("player is already in the game")
	ErrPlayerNotInGame  = errors.New("player is not in the game")
	ErrGameNotFound     = errors.New("game not found")
	ErrNotInGame        = errors.New("you are not in a game")
)
