package pgn

import (
	"errors"
	"strings"
	"testing"

	notnil "github.com/notnil/chess"

	"github.com/benbeisheim/pixelchess-backend/internal/chess"
)

func parseMoves(t *testing.T, uci ...string) []chess.Move {
	t.Helper()
	moves := make([]chess.Move, 0, len(uci))
	for _, s := range uci {
		m, err := chess.ParseMove(s)
		if err != nil {
			t.Fatalf("parse %q: %v", s, err)
		}
		moves = append(moves, m)
	}
	return moves
}

func TestEncodeFoolsMate(t *testing.T) {
	t.Parallel()
	r := Record{
		Start: chess.NewGame(),
		Moves: parseMoves(t, "f2f3", "e7e5", "g2g4", "d8h4"),
		Tags:  []Tag{{Key: "Event", Value: "pixelchess"}, {Key: "White", Value: "alice"}},
	}
	out, err := Encode(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{`[Event "pixelchess"]`, `[White "alice"]`, "Qh4#", "0-1"} {
		if !strings.Contains(out, want) {
			t.Errorf("pgn missing %q:\n%s", want, out)
		}
	}
}

func TestEncodeCustomStartAndForfeit(t *testing.T) {
	t.Parallel()
	start := chess.MustParseFEN("4k3/8/8/8/8/8/4P3/4K3 w - - 0 1")
	black := chess.Black
	r := Record{
		Start:       start,
		Moves:       parseMoves(t, "e2e4"),
		TimeForfeit: &black,
	}
	g, err := Build(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Outcome() != notnil.WhiteWon {
		t.Errorf("unexpected outcome: got=%s want=%s", g.Outcome(), notnil.WhiteWon)
	}
	out := g.String()
	for _, want := range []string{`[SetUp "1"]`, start.FEN(), "time forfeit", "1-0"} {
		if !strings.Contains(out, want) {
			t.Errorf("pgn missing %q:\n%s", want, out)
		}
	}
}

func TestBuildRejectsUnplayable(t *testing.T) {
	t.Parallel()
	r := Record{Start: chess.NewGame(), Moves: parseMoves(t, "e2e5")}
	if _, err := Build(r); !errors.Is(err, ErrUnplayable) {
		t.Errorf("expected ErrUnplayable, got=%v", err)
	}
}

// TestNotationMatchesPGNBoard checks the rules engine's algebraic notation
// against the PGN library's encoder move by move.
func TestNotationMatchesPGNBoard(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		fen   string
		moves []string
	}{
		{
			name:  "italian with castles",
			fen:   chess.StartFEN,
			moves: []string{"e2e4", "e7e5", "g1f3", "b8c6", "f1c4", "g8f6", "e1g1", "f8c5", "d2d3", "e8g8", "c1g5", "h7h6", "g5f6", "d8f6"},
		},
		{
			name:  "en passant and promotion",
			fen:   "4k3/1P6/8/3pP3/8/8/8/4K3 w - d6 0 1",
			moves: []string{"e5d6", "e8f7", "b7b8q"},
		},
		{
			name:  "knight disambiguation",
			fen:   "4k3/8/8/8/8/5N2/8/1N2K3 w - - 0 1",
			moves: []string{"b1d2", "e8d8", "d2e4"},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			start := chess.MustParseFEN(tt.fen)
			_, plies, err := chess.Replay(start, parseMoves(t, tt.moves...))
			if err != nil {
				t.Fatalf("replay: %v", err)
			}

			opt, err := notnil.FEN(tt.fen)
			if err != nil {
				t.Fatalf("fen: %v", err)
			}
			g := notnil.NewGame(opt)
			for i, s := range tt.moves {
				mv, err := notnil.UCINotation{}.Decode(g.Position(), s)
				if err != nil {
					t.Fatalf("decode %s: %v", s, err)
				}
				want := notnil.AlgebraicNotation{}.Encode(g.Position(), mv)
				if plies[i].Notation != want {
					t.Errorf("move %d: unexpected notation: got=%q want=%q", i, plies[i].Notation, want)
				}
				if err := g.Move(mv); err != nil {
					t.Fatalf("move %s: %v", s, err)
				}
			}
		})
	}
}
