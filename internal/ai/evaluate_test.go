package ai

import (
	"testing"

	"github.com/benbeisheim/pixelchess-backend/internal/chess"
)

func TestEvaluate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		fen  string
		want int
	}{
		{name: "initial", fen: chess.StartFEN, want: 0},
		{name: "white queen up", fen: "4k3/8/8/8/8/8/8/3QK3 w - - 0 1", want: 900},
		{name: "black rook and pawn up", fen: "r3k3/p7/8/8/8/8/8/4K3 w - - 0 1", want: -600},
		{name: "minor pieces", fen: "2b1k3/8/8/8/8/8/8/1N2K3 b - - 0 1", want: -10},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := chess.MustParseFEN(tt.fen)
			if got := Evaluate(&p); got != tt.want {
				t.Errorf("unexpected score: got=%d want=%d", got, tt.want)
			}
		})
	}
}

func TestOrderMovesCapturesFirst(t *testing.T) {
	t.Parallel()
	p := chess.MustParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	moves := p.LegalMoves(p.Turn)
	var captures, quiet []chess.Move
	for _, m := range moves {
		if m.Capture {
			captures = append(captures, m)
		} else {
			quiet = append(quiet, m)
		}
	}
	OrderMoves(moves)
	want := append(captures, quiet...)
	for i := range moves {
		if moves[i] != want[i] {
			t.Fatalf("unexpected order at %d: got=%s want=%s", i, moves[i], want[i])
		}
	}
}
