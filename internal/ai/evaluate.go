package ai

import "github.com/benbeisheim/pixelchess-backend/internal/chess"

// PieceValue is the material value of a piece type in centipawns.
func PieceValue(t chess.PieceType) int {
	switch t {
	case chess.King:
		return 20000
	case chess.Queen:
		return 900
	case chess.Rook:
		return 500
	case chess.Bishop:
		return 330
	case chess.Knight:
		return 320
	case chess.Pawn:
		return 100
	case chess.NoPiece:
		return 0
	}
	return 0
}

// Evaluate is the material balance of p, positive when white is ahead.
func Evaluate(p *chess.Position) int {
	score := 0
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			pc := p.Board[y][x]
			if pc.IsEmpty() {
				continue
			}
			score += sideSign(pc.Color) * PieceValue(pc.Type)
		}
	}
	return score
}

func sideSign(c chess.Color) int {
	if c == chess.White {
		return 1
	}
	return -1
}
