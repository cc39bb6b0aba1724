package model

import "github.com/benbeisheim/pixelchess-backend/internal/chess"

// BoardState is the grid as sent to clients, nil for empty squares.
type BoardState [8][8]*chess.Piece

func newBoardState(b *chess.Board) BoardState {
	var out BoardState
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if pc := b[y][x]; !pc.IsEmpty() {
				out[y][x] = &pc
			}
		}
	}
	return out
}

// CapturedPieces holds each side's lost pieces in capture order.
type CapturedPieces struct {
	White []chess.Piece `json:"white"`
	Black []chess.Piece `json:"black"`
}

func newCapturedPieces() CapturedPieces {
	return CapturedPieces{
		White: make([]chess.Piece, 0),
		Black: make([]chess.Piece, 0),
	}
}

func (cp *CapturedPieces) add(pc chess.Piece) {
	if pc.Color == chess.White {
		cp.White = append(cp.White, pc)
		return
	}
	cp.Black = append(cp.Black, pc)
}

func capturedFromPlies(plies []chess.Ply) CapturedPieces {
	cp := newCapturedPieces()
	for _, ply := range plies {
		if ply.IsCapture() {
			cp.add(ply.Captured)
		}
	}
	return cp
}

type Sound string

const (
	SoundNone    Sound = ""
	SoundMove    Sound = "move"
	SoundCapture Sound = "capture"
	SoundCheck   Sound = "check"
)

type Resolve string

const (
	ResolveCheckmate Resolve = "checkmate"
	ResolveStalemate Resolve = "stalemate"
	ResolveTimeout   Resolve = "timeout"
)

type Players struct {
	White ClientPlayer `json:"white"`
	Black ClientPlayer `json:"black"`
}

// GameState is the snapshot pushed to clients after every change.
type GameState struct {
	ID              string               `json:"id"`
	Mode            Mode                 `json:"mode"`
	FEN             string               `json:"fen"`
	Board           BoardState           `json:"boardState"`
	ToMove          PlayerColor          `json:"toMove"`
	MoveHistory     []MoveRecord         `json:"moveHistory"`
	CapturedPieces  CapturedPieces       `json:"capturedPieces"`
	IsCheck         bool                 `json:"isCheck"`
	Castling        chess.CastlingRights `json:"castling"`
	EnPassantTarget *chess.Square        `json:"enPassantTarget"`
	LastMove        *SimpleMove          `json:"lastMove"`
	Sound           Sound                `json:"sound"`
	Resolve         *Resolve             `json:"resolve"`
	Winner          *PlayerColor         `json:"winner"`
	Started         bool                 `json:"started"`
	Players         Players              `json:"players"`
	Version         uint64               `json:"version"`
}
