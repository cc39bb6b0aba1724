package service

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/benbeisheim/pixelchess-backend/internal/chess"
	"github.com/benbeisheim/pixelchess-backend/internal/model"
)

func newService(t *testing.T) (*GameService, *GameManager) {
	t.Helper()
	gm := NewGameManager(WithGameDefaults(model.WithMoveTimeLimit(0)))
	t.Cleanup(gm.Close)
	return NewGameService(gm, zerolog.Nop(), 1), gm
}

func TestCreateGameValidation(t *testing.T) {
	t.Parallel()
	gs, _ := newService(t)
	tests := []struct {
		name string
		req  CreateGameRequest
		want error
	}{
		{name: "default pvp", req: CreateGameRequest{}},
		{name: "pvai", req: CreateGameRequest{Mode: "pvai", AISide: "white", Depth: 2}},
		{name: "custom start", req: CreateGameRequest{FEN: "4k3/8/8/8/8/8/4P3/4K3 w - - 0 1"}},
		{name: "bad mode", req: CreateGameRequest{Mode: "blitz"}, want: model.ErrInvalidRequest},
		{name: "bad side", req: CreateGameRequest{Mode: "pvai", AISide: "red"}, want: model.ErrInvalidRequest},
		{name: "too deep", req: CreateGameRequest{Mode: "pvai", Depth: 9}, want: model.ErrInvalidRequest},
		{name: "bad fen", req: CreateGameRequest{FEN: "8/8/8 w - - 0 1"}, want: model.ErrInvalidRequest},
	}
	for _, tt := range tests {
		id, err := gs.CreateGame(tt.req)
		if tt.want != nil {
			if !errors.Is(err, tt.want) {
				t.Errorf("%s: expected %v, got=%v", tt.name, tt.want, err)
			}
			continue
		}
		if err != nil || id == "" {
			t.Errorf("%s: unexpected result id=%q err=%v", tt.name, id, err)
		}
	}
}

func TestUnknownGame(t *testing.T) {
	t.Parallel()
	gs, _ := newService(t)
	if _, err := gs.GetGameState("nope"); !errors.Is(err, model.ErrGameNotFound) {
		t.Errorf("expected ErrGameNotFound, got=%v", err)
	}
	if _, err := gs.JoinGame("nope", "alice"); !errors.Is(err, model.ErrGameNotFound) {
		t.Errorf("expected ErrGameNotFound, got=%v", err)
	}
	if err := gs.Undo("nope", "alice"); !errors.Is(err, model.ErrGameNotFound) {
		t.Errorf("expected ErrGameNotFound, got=%v", err)
	}
}

func TestPlayAgainstEngine(t *testing.T) {
	t.Parallel()
	gs, _ := newService(t)
	id, err := gs.CreateGame(CreateGameRequest{Mode: "pvai", AISide: "black"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if color, err := gs.JoinGame(id, "alice"); err != nil || color != model.PlayerColorWhite {
		t.Fatalf("join: color=%s err=%v", color, err)
	}

	moves, err := gs.LegalMoves(id, "g1")
	if err != nil || len(moves) != 2 {
		t.Fatalf("unexpected knight moves: %v err=%v", moves, err)
	}
	if _, err := gs.LegalMoves(id, "k9"); !errors.Is(err, model.ErrInvalidRequest) {
		t.Errorf("expected ErrInvalidRequest, got=%v", err)
	}

	if _, err := gs.HandleMove(id, "alice", model.MoveRequest{From: "g1", To: "f3"}); err != nil {
		t.Fatalf("move: %v", err)
	}
	if err := gs.WaitAI(id); err != nil {
		t.Fatal(err)
	}
	st, err := gs.GetGameState(id)
	if err != nil {
		t.Fatal(err)
	}
	if st.ToMove != model.PlayerColorWhite || st.Version != 2 {
		t.Errorf("engine should have replied: toMove=%s version=%d", st.ToMove, st.Version)
	}
	out, err := gs.PGN(id)
	if err != nil || out == "" {
		t.Errorf("unexpected pgn: %q err=%v", out, err)
	}
}

func TestMatchmaking(t *testing.T) {
	t.Parallel()
	gs, gm := newService(t)
	ch1 := make(chan model.MatchFoundEvent, 1)
	ch2 := make(chan model.MatchFoundEvent, 1)
	gs.RegisterMatchmakingChannel("alice", ch1)
	gs.RegisterMatchmakingChannel("bob", ch2)

	if err := gs.JoinMatchmaking("alice"); err != nil {
		t.Fatal(err)
	}
	if err := gs.JoinMatchmaking("alice"); !errors.Is(err, model.ErrAlreadyQueued) {
		t.Errorf("expected ErrAlreadyQueued, got=%v", err)
	}
	if gm.matchOnce() {
		t.Fatal("one player cannot be matched")
	}
	if err := gs.JoinMatchmaking("bob"); err != nil {
		t.Fatal(err)
	}
	if !gm.matchOnce() {
		t.Fatal("two players should be matched")
	}

	ev1, ok1 := <-ch1
	ev2, ok2 := <-ch2
	if !ok1 || !ok2 {
		t.Fatal("both players should be notified")
	}
	if ev1.GameID == "" || ev1.GameID != ev2.GameID {
		t.Errorf("players should share a game: %+v %+v", ev1, ev2)
	}
	if ev1.Color != model.PlayerColorWhite || ev2.Color != model.PlayerColorBlack {
		t.Errorf("unexpected colors: %s %s", ev1.Color, ev2.Color)
	}
	if _, open := <-ch1; open {
		t.Error("channel should be closed after the event")
	}

	st, err := gs.GetGameState(ev1.GameID)
	if err != nil {
		t.Fatal(err)
	}
	if !st.Started || st.ToMove != model.PlayerColorWhite {
		t.Errorf("matched game should be running: %+v", st)
	}
	if _, err := gs.HandleMove(ev1.GameID, "alice", model.MoveRequest{From: "e2", To: "e4"}); err != nil {
		t.Errorf("move in matched game: %v", err)
	}
	if got := gm.GameCount(); got != 1 {
		t.Errorf("unexpected game count: got=%d want=1", got)
	}
}

func TestRegisterMatchmakingChannelReplaces(t *testing.T) {
	t.Parallel()
	gm := NewGameManager()
	old := make(chan model.MatchFoundEvent, 1)
	gm.RegisterMatchmakingChannel("alice", old)
	gm.RegisterMatchmakingChannel("alice", make(chan model.MatchFoundEvent, 1))
	if _, open := <-old; open {
		t.Error("replaced channel should be closed")
	}
	gm.UnregisterMatchmakingChannel("alice", old)
	gm.mu.RLock()
	_, still := gm.matchingChannels["alice"]
	gm.mu.RUnlock()
	if !still {
		t.Error("unregistering a stale channel must keep the current one")
	}
}

func TestCustomStartVisibleInState(t *testing.T) {
	t.Parallel()
	gs, _ := newService(t)
	fen := "4k3/8/8/8/8/8/4P3/4K3 w - - 0 1"
	id, err := gs.CreateGame(CreateGameRequest{FEN: fen})
	if err != nil {
		t.Fatal(err)
	}
	st, err := gs.GetGameState(id)
	if err != nil {
		t.Fatal(err)
	}
	if st.FEN != fen {
		t.Errorf("unexpected fen: got=%s want=%s", st.FEN, fen)
	}
	if _, err := chess.ParseFEN(st.FEN); err != nil {
		t.Errorf("state fen should parse: %v", err)
	}
}
