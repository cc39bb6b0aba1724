package model

import "errors"

var (
	ErrGameNotFound   = errors.New("game not found")
	ErrGameExists     = errors.New("game already exists")
	ErrGameFull       = errors.New("game is full")
	ErrNotInGame      = errors.New("player not in game")
	ErrNotStarted     = errors.New("game has not started")
	ErrNotYourTurn    = errors.New("not your turn")
	ErrIllegalMove    = errors.New("illegal move")
	ErrGameOver       = errors.New("game is over")
	ErrNothingToUndo  = errors.New("nothing to undo")
	ErrAlreadyQueued  = errors.New("player already in queue")
	ErrNotAuthorized  = errors.New("not authorized to join this game")
	ErrInvalidRequest = errors.New("invalid request")
)
