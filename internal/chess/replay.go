package chess

import (
	"errors"
	"fmt"
)

var ErrIllegalMove = errors.New("illegal move")

// FindLegal resolves a requested From/To/Promotion against the legal moves
// of the side to move, returning the generated move with all its flags.
func (p *Position) FindLegal(req Move) (Move, bool) {
	for _, m := range p.LegalMovesFrom(req.From) {
		if m.SameSquares(req) {
			return m, true
		}
	}
	return Move{}, false
}

// Replay plays moves from start and returns the final position together with
// the plies produced on the way. Undo is done by replaying all but the last
// move of a history onto its starting position.
func Replay(start Position, moves []Move) (Position, []Ply, error) {
	pos := start
	plies := make([]Ply, 0, len(moves))
	for i, req := range moves {
		m, ok := pos.FindLegal(req)
		if !ok {
			return start, nil, fmt.Errorf("%w: %s at index %d", ErrIllegalMove, req, i)
		}
		next, ply := pos.Apply(m)
		plies = append(plies, ply)
		pos = next
	}
	return pos, plies, nil
}
