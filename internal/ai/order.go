package ai

import "github.com/benbeisheim/pixelchess-backend/internal/chess"

// OrderMoves puts captures ahead of quiet moves in place, keeping the
// generation order within each group.
func OrderMoves(moves []chess.Move) {
	ordered := make([]chess.Move, 0, len(moves))
	for _, m := range moves {
		if m.Capture {
			ordered = append(ordered, m)
		}
	}
	for _, m := range moves {
		if !m.Capture {
			ordered = append(ordered, m)
		}
	}
	copy(moves, ordered)
}
