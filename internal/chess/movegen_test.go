package chess

import (
	"sort"
	"testing"
)

func moveStrings(moves []Move) []string {
	out := make([]string, 0, len(moves))
	for _, m := range moves {
		out = append(out, m.String())
	}
	sort.Strings(out)
	return out
}

func hasMove(moves []Move, uci string) bool {
	for _, m := range moves {
		if m.String() == uci {
			return true
		}
	}
	return false
}

func playAll(t *testing.T, start Position, uci ...string) Position {
	t.Helper()
	moves := make([]Move, 0, len(uci))
	for _, s := range uci {
		m, err := ParseMove(s)
		if err != nil {
			t.Fatalf("parse %q: %v", s, err)
		}
		moves = append(moves, m)
	}
	p, _, err := Replay(start, moves)
	if err != nil {
		t.Fatalf("replay %v: %v", uci, err)
	}
	return p
}

func TestLegalMovesInitial(t *testing.T) {
	t.Parallel()
	p := NewGame()
	if got := len(p.LegalMoves(p.Turn)); got != 20 {
		t.Errorf("unexpected move count: got=%d want=20", got)
	}
}

func TestLegalMovesFrom(t *testing.T) {
	t.Parallel()
	p := NewGame()
	tests := []struct {
		name string
		sq   Square
		want []string
	}{
		{name: "pawn e2", sq: MustSquare("e2"), want: []string{"e2e3", "e2e4"}},
		{name: "knight g1", sq: MustSquare("g1"), want: []string{"g1f3", "g1h3"}},
		{name: "blocked bishop", sq: MustSquare("c1"), want: []string{}},
		{name: "empty square", sq: MustSquare("e4"), want: []string{}},
		{name: "enemy piece", sq: MustSquare("e7"), want: []string{}},
		{name: "off board", sq: Square{X: 9, Y: -2}, want: []string{}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := moveStrings(p.LegalMovesFrom(tt.sq))
			if len(got) != len(tt.want) {
				t.Fatalf("unexpected moves: got=%v want=%v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("unexpected moves: got=%v want=%v", got, tt.want)
				}
			}
		})
	}
}

func TestLegalMovesNeverExposeKing(t *testing.T) {
	t.Parallel()
	fens := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
		"4k3/8/8/8/4r3/8/3P4/4K3 w - - 0 1",
	}
	for _, fen := range fens {
		fen := fen
		t.Run(fen, func(t *testing.T) {
			t.Parallel()
			p := MustParseFEN(fen)
			for _, m := range p.LegalMoves(p.Turn) {
				next := p.After(m)
				if next.InCheck(p.Turn) {
					t.Errorf("move %s leaves own king in check", m)
				}
			}
		})
	}
}

func TestPinnedPieceCannotMove(t *testing.T) {
	t.Parallel()
	// the d2 pawn is not pinned, the e2 bishop is
	p := MustParseFEN("4k3/8/8/8/4r3/8/3PB3/4K3 w - - 0 1")
	if got := p.LegalMovesFrom(MustSquare("e2")); len(got) != 0 {
		t.Errorf("pinned bishop should have no moves: got=%v", moveStrings(got))
	}
	if got := p.LegalMovesFrom(MustSquare("d2")); len(got) != 2 {
		t.Errorf("unexpected pawn moves: got=%v", moveStrings(got))
	}
}

func TestCastlingConditions(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		fen       string
		kingSide  bool
		queenSide bool
	}{
		{name: "both allowed", fen: "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", kingSide: true, queenSide: true},
		{name: "king side right lost", fen: "r3k2r/8/8/8/8/8/8/R3K2R w Qkq - 0 1", kingSide: false, queenSide: true},
		{name: "queen side right lost", fen: "r3k2r/8/8/8/8/8/8/R3K2R w Kkq - 0 1", kingSide: true, queenSide: false},
		{name: "king side blocked", fen: "r3k2r/8/8/8/8/8/8/R3KB1R w KQkq - 0 1", kingSide: false, queenSide: true},
		{name: "queen side blocked on b1", fen: "r3k2r/8/8/8/8/8/8/RN2K2R w KQkq - 0 1", kingSide: true, queenSide: false},
		{name: "king in check", fen: "r3k2r/8/8/8/4r3/8/8/R3K2R w KQkq - 0 1", kingSide: false, queenSide: false},
		{name: "transit attacked", fen: "r3k2r/8/8/8/5r2/8/8/R3K2R w KQkq - 0 1", kingSide: false, queenSide: true},
		{name: "destination attacked", fen: "r3k2r/8/8/8/6r1/8/8/R3K2R w KQkq - 0 1", kingSide: false, queenSide: true},
		{name: "queen side transit attacked", fen: "r3k2r/8/8/8/3r4/8/8/R3K2R w KQkq - 0 1", kingSide: true, queenSide: false},
		{name: "b1 attacked does not matter", fen: "r3k2r/8/8/8/1r6/8/8/R3K2R w KQkq - 0 1", kingSide: true, queenSide: true},
		{name: "rook missing", fen: "r3k2r/8/8/8/8/8/8/4K2R w KQkq - 0 1", kingSide: true, queenSide: false},
		{name: "black both allowed", fen: "r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1", kingSide: true, queenSide: true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := MustParseFEN(tt.fen)
			row := p.Turn.BackRow()
			moves := p.LegalMovesFrom(Square{X: 4, Y: row})
			var gotKing, gotQueen bool
			for _, m := range moves {
				switch m.Castle {
				case KingSide:
					gotKing = m.To == (Square{X: 6, Y: row})
				case QueenSide:
					gotQueen = m.To == (Square{X: 2, Y: row})
				case NoCastle:
				}
			}
			if gotKing != tt.kingSide {
				t.Errorf("unexpected king side castle: got=%v want=%v", gotKing, tt.kingSide)
			}
			if gotQueen != tt.queenSide {
				t.Errorf("unexpected queen side castle: got=%v want=%v", gotQueen, tt.queenSide)
			}
		})
	}
}

func TestEnPassantWindow(t *testing.T) {
	t.Parallel()
	p := playAll(t, NewGame(), "e2e4", "a7a6", "e4e5", "d7d5")
	if !p.HasEnPassant() || p.EnPassant != MustSquare("d6") {
		t.Fatalf("unexpected en passant target: got=%s want=d6", p.EnPassant)
	}
	var ep Move
	for _, m := range p.LegalMovesFrom(MustSquare("e5")) {
		if m.EnPassant {
			ep = m
		}
	}
	if ep.String() != "e5d6" || !ep.Capture {
		t.Fatalf("expected en passant capture e5d6, got=%v", moveStrings(p.LegalMovesFrom(MustSquare("e5"))))
	}

	later := playAll(t, p, "a2a3", "h7h6")
	if later.HasEnPassant() {
		t.Errorf("en passant target should clear: got=%s", later.EnPassant)
	}
	if hasMove(later.LegalMovesFrom(MustSquare("e5")), "e5d6") {
		t.Error("en passant capture must disappear after another move")
	}
}

func TestEnPassantNotAdjacent(t *testing.T) {
	t.Parallel()
	// black pawn on b4 is two files away from the pushed d-pawn
	p := playAll(t, MustParseFEN("4k3/8/8/8/1p6/8/3P4/4K3 w - - 0 1"), "d2d4")
	for _, m := range p.LegalMoves(Black) {
		if m.EnPassant {
			t.Errorf("unexpected en passant move %s", m)
		}
	}
}

func TestPromotionVariants(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		fen  string
		from string
		want []string
	}{
		{
			name: "push",
			fen:  "8/P6k/8/8/8/8/8/K7 w - - 0 1",
			from: "a7",
			want: []string{"a7a8b", "a7a8n", "a7a8q", "a7a8r"},
		},
		{
			name: "push and capture",
			fen:  "1r5k/P7/8/8/8/8/8/K7 w - - 0 1",
			from: "a7",
			want: []string{"a7a8b", "a7a8n", "a7a8q", "a7a8r", "a7b8b", "a7b8n", "a7b8q", "a7b8r"},
		},
		{
			name: "black push",
			fen:  "K7/8/8/8/8/8/p6k/8 b - - 0 1",
			from: "a2",
			want: []string{"a2a1b", "a2a1n", "a2a1q", "a2a1r"},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := MustParseFEN(tt.fen)
			moves := p.LegalMovesFrom(MustSquare(tt.from))
			for _, m := range moves {
				if m.Promotion == NoPiece {
					t.Errorf("plain advance onto last rank generated: %s", m)
				}
			}
			got := moveStrings(moves)
			if len(got) != len(tt.want) {
				t.Fatalf("unexpected promotions: got=%v want=%v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("unexpected promotions: got=%v want=%v", got, tt.want)
				}
			}
		})
	}
}

func TestDoublePushNeedsBothSquaresEmpty(t *testing.T) {
	t.Parallel()
	p := MustParseFEN("4k3/8/8/8/4n3/8/4P3/4K3 w - - 0 1")
	got := moveStrings(p.LegalMovesFrom(MustSquare("e2")))
	if len(got) != 1 || got[0] != "e2e3" {
		t.Errorf("unexpected pawn moves: got=%v want=[e2e3]", got)
	}
	p = MustParseFEN("4k3/8/8/8/8/4n3/4P3/4K3 w - - 0 1")
	if got := p.LegalMovesFrom(MustSquare("e2")); len(got) != 0 {
		t.Errorf("blocked pawn should not move: got=%v", moveStrings(got))
	}
}
