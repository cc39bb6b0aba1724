package main

import (
	"errors"
	"fmt"

	"github.com/benbeisheim/pixelchess-backend/internal/ai"
	"github.com/benbeisheim/pixelchess-backend/internal/chess"
)

var errNothingToUndo = errors.New("nothing to undo")

// session is a local game: the start position plus the moves played, so
// undo can replay from the start.
type session struct {
	start  chess.Position
	pos    chess.Position
	moves  []chess.Move
	plies  []chess.Ply
	engine *ai.Engine
	aiSide *chess.Color
}

func newSession(start chess.Position, engine *ai.Engine, aiSide *chess.Color) *session {
	return &session{start: start, pos: start, engine: engine, aiSide: aiSide}
}

func (s *session) aiToMove() bool {
	return s.aiSide != nil && *s.aiSide == s.pos.Turn && !s.pos.Status().IsOver()
}

func (s *session) play(uci string) (chess.Ply, error) {
	req, err := chess.ParseMove(uci)
	if err != nil {
		return chess.Ply{}, err
	}
	m, ok := s.pos.FindLegal(req)
	if !ok {
		return chess.Ply{}, fmt.Errorf("%w: %s", chess.ErrIllegalMove, uci)
	}
	return s.apply(m), nil
}

func (s *session) apply(m chess.Move) chess.Ply {
	next, ply := s.pos.Apply(m)
	s.pos = next
	s.moves = append(s.moves, ply.Move)
	s.plies = append(s.plies, ply)
	return ply
}

func (s *session) reply() (chess.Ply, ai.Result, error) {
	res, err := s.engine.ChooseMove(&s.pos)
	if err != nil {
		return chess.Ply{}, res, err
	}
	return s.apply(res.Move), res, nil
}

// undo takes back one move, or back to the human's turn against the engine.
func (s *session) undo() error {
	n := len(s.moves) - 1
	if s.aiSide != nil {
		for n >= 0 && s.turnAfter(n) == *s.aiSide {
			n--
		}
	}
	if n < 0 {
		return errNothingToUndo
	}
	pos, plies, err := chess.Replay(s.start, s.moves[:n])
	if err != nil {
		return err
	}
	s.pos, s.plies, s.moves = pos, plies, s.moves[:n]
	return nil
}

func (s *session) turnAfter(n int) chess.Color {
	if n%2 == 0 {
		return s.start.Turn
	}
	return s.start.Turn.Opponent()
}

func (s *session) lastMove() *chess.Move {
	if len(s.moves) == 0 {
		return nil
	}
	return &s.moves[len(s.moves)-1]
}
