package chess

import (
	"errors"
	"testing"
)

func TestReplayUndo(t *testing.T) {
	t.Parallel()
	start := NewGame()
	history := []string{"e2e4", "e7e5", "g1f3", "b8c6"}
	full := playAll(t, start, history...)
	undone := playAll(t, start, history[:len(history)-1]...)
	if undone == full {
		t.Fatal("undo should change the position")
	}
	if got := playAll(t, undone, "b8c6"); got != full {
		t.Error("replaying the undone move should restore the position")
	}
	if got := playAll(t, start); got != start {
		t.Error("empty history should yield the start position")
	}
}

func TestReplayPlies(t *testing.T) {
	t.Parallel()
	moves := []Move{
		{From: MustSquare("e2"), To: MustSquare("e4")},
		{From: MustSquare("d7"), To: MustSquare("d5")},
		{From: MustSquare("e4"), To: MustSquare("d5")},
	}
	_, plies, err := Replay(NewGame(), moves)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"e4", "d5", "exd5"}
	if len(plies) != len(want) {
		t.Fatalf("unexpected ply count: got=%d want=%d", len(plies), len(want))
	}
	for i, ply := range plies {
		if ply.Notation != want[i] {
			t.Errorf("ply %d: got=%q want=%q", i, ply.Notation, want[i])
		}
	}
	if !plies[1].Move.DoublePush || !plies[2].IsCapture() {
		t.Error("replayed moves should carry generator flags")
	}
}

func TestReplayIllegal(t *testing.T) {
	t.Parallel()
	moves := []Move{
		{From: MustSquare("e2"), To: MustSquare("e4")},
		{From: MustSquare("e2"), To: MustSquare("e4")},
	}
	if _, _, err := Replay(NewGame(), moves); !errors.Is(err, ErrIllegalMove) {
		t.Errorf("expected ErrIllegalMove, got=%v", err)
	}
}

func TestParseMove(t *testing.T) {
	t.Parallel()
	m, err := ParseMove("e7e8n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.From != MustSquare("e7") || m.To != MustSquare("e8") || m.Promotion != Knight {
		t.Errorf("unexpected move: %+v", m)
	}
	for _, bad := range []string{"", "e2", "e2e9", "e7e8x", "e2e4e5"} {
		if _, err := ParseMove(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}
