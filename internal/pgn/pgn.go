// Package pgn exports games played on the internal rules engine as PGN text.
package pgn

import (
	"errors"
	"fmt"

	notnil "github.com/notnil/chess"

	"github.com/benbeisheim/pixelchess-backend/internal/chess"
)

var ErrUnplayable = errors.New("move not playable on pgn board")

type Tag struct {
	Key   string
	Value string
}

// Record is everything needed to write one game.
type Record struct {
	Start chess.Position
	Moves []chess.Move
	Tags  []Tag
	// TimeForfeit names the side that lost on time, if any.
	TimeForfeit *chess.Color
}

// Build replays r onto a notnil game. The start position is carried over
// through its FEN, so games set up from arbitrary positions export too.
func Build(r Record) (*notnil.Game, error) {
	var opts []func(*notnil.Game)
	custom := r.Start != chess.NewGame()
	if custom {
		opt, err := notnil.FEN(r.Start.FEN())
		if err != nil {
			return nil, fmt.Errorf("load start position: %w", err)
		}
		opts = append(opts, opt)
	}
	g := notnil.NewGame(opts...)
	for _, t := range r.Tags {
		g.AddTagPair(t.Key, t.Value)
	}
	if custom {
		g.AddTagPair("SetUp", "1")
		g.AddTagPair("FEN", r.Start.FEN())
	}

	for i, m := range r.Moves {
		mv, err := notnil.UCINotation{}.Decode(g.Position(), m.String())
		if err != nil {
			return nil, fmt.Errorf("%w: %s at index %d: %v", ErrUnplayable, m, i, err)
		}
		if err := g.Move(mv); err != nil {
			return nil, fmt.Errorf("%w: %s at index %d: %v", ErrUnplayable, m, i, err)
		}
	}

	if r.TimeForfeit != nil && g.Outcome() == notnil.NoOutcome {
		g.AddTagPair("Termination", "time forfeit")
		g.Resign(colorOf(*r.TimeForfeit))
	}
	return g, nil
}

// Encode renders r as PGN.
func Encode(r Record) (string, error) {
	g, err := Build(r)
	if err != nil {
		return "", err
	}
	return g.String(), nil
}

func colorOf(c chess.Color) notnil.Color {
	if c == chess.Black {
		return notnil.Black
	}
	return notnil.White
}
