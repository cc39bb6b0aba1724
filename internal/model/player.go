package model

import (
	"fmt"

	"github.com/benbeisheim/pixelchess-backend/internal/chess"
)

// AIPlayerID occupies the engine's seat in pvai games.
const AIPlayerID = "ai"

type Player struct {
	ID string
}

type ClientPlayer struct {
	ID       string      `json:"name"`
	Color    PlayerColor `json:"color"`
	TimeLeft int         `json:"timeLeft"`
	IsAI     bool        `json:"isAI"`
}

type PlayerColor string

const (
	PlayerColorWhite PlayerColor = "white"
	PlayerColorBlack PlayerColor = "black"
)

func colorOf(c chess.Color) PlayerColor {
	if c == chess.Black {
		return PlayerColorBlack
	}
	return PlayerColorWhite
}

func (pc PlayerColor) Chess() (chess.Color, error) {
	switch pc {
	case PlayerColorWhite:
		return chess.White, nil
	case PlayerColorBlack:
		return chess.Black, nil
	}
	return chess.White, fmt.Errorf("%w: unknown color %q", ErrInvalidRequest, pc)
}

type Mode string

const (
	ModePvP  Mode = "pvp"
	ModePvAI Mode = "pvai"
)

// ParseMode defaults to pvp for an empty string.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModePvP:
		return ModePvP, nil
	case ModePvAI:
		return ModePvAI, nil
	}
	return "", fmt.Errorf("%w: unknown mode %q", ErrInvalidRequest, s)
}
