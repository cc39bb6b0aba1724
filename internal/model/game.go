package model

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/benbeisheim/pixelchess-backend/internal/ai"
	"github.com/benbeisheim/pixelchess-backend/internal/chess"
	"github.com/benbeisheim/pixelchess-backend/internal/pgn"
	"github.com/benbeisheim/pixelchess-backend/internal/ws"
)

const DefaultMoveTimeLimit = 45 * time.Second

// The Game struct focuses on a single game's state and its observers
type Game struct {
	ID     string
	mu     sync.Mutex
	logger zerolog.Logger

	mode   Mode
	aiSide chess.Color
	engine *ai.Engine
	aiMu   sync.Mutex // one search at a time per engine
	aiWG   sync.WaitGroup

	start   chess.Position
	pos     chess.Position
	history []chess.Move
	plies   []chess.Ply

	white, black string
	started      bool
	createdAt    time.Time

	moveLimit time.Duration
	clocks    [2]*Clock
	timer     *time.Timer

	sound    Sound
	resolve  Resolve
	winner   *chess.Color
	lastMove *chess.Move
	// version increments on every change of pos; stale AI results and
	// timers compare against it.
	version uint64

	connections *GameConnections
}

type Option func(*Game)

// WithMode sets the game mode. aiSide only matters for ModePvAI.
func WithMode(mode Mode, aiSide chess.Color) Option {
	return func(g *Game) {
		g.mode = mode
		g.aiSide = aiSide
	}
}

func WithEngine(e *ai.Engine) Option {
	return func(g *Game) {
		g.engine = e
	}
}

// WithStart replaces the initial position.
func WithStart(p chess.Position) Option {
	return func(g *Game) {
		g.start = p
	}
}

// WithMoveTimeLimit sets the per-move clock; zero disables timeouts.
func WithMoveTimeLimit(d time.Duration) Option {
	return func(g *Game) {
		g.moveLimit = d
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(g *Game) {
		g.logger = logger
	}
}

func NewGame(id string, opts ...Option) *Game {
	g := &Game{
		ID:          id,
		logger:      zerolog.Nop(),
		mode:        ModePvP,
		start:       chess.NewGame(),
		moveLimit:   DefaultMoveTimeLimit,
		createdAt:   time.Now(),
		connections: NewGameConnections(),
	}
	for _, f := range opts {
		f(g)
	}
	g.logger = g.logger.With().Str("game_id", id).Str("mode", string(g.mode)).Logger()
	if g.engine == nil {
		g.engine = ai.NewEngine(ai.WithLogger(g.logger))
	}
	g.pos = g.start
	g.clocks = [2]*Clock{NewClock(g.moveLimit), NewClock(g.moveLimit)}
	if g.mode == ModePvAI {
		g.setSeat(g.aiSide, AIPlayerID)
	}
	return g
}

func (g *Game) seat(c chess.Color) string {
	if c == chess.Black {
		return g.black
	}
	return g.white
}

func (g *Game) setSeat(c chess.Color, playerID string) {
	if c == chess.Black {
		g.black = playerID
		return
	}
	g.white = playerID
}

// colorOf returns the seat of playerID. Must hold g.mu.
func (g *Game) colorOf(playerID string) (chess.Color, bool) {
	switch {
	case playerID == "":
		return chess.White, false
	case g.white == playerID:
		return chess.White, true
	case g.black == playerID:
		return chess.Black, true
	}
	return chess.White, false
}

// AddPlayer seats playerID on the first free side, white first. Joining a
// game the player already sits in returns their color. The game starts
// once both seats are taken.
func (g *Game) AddPlayer(playerID string) (PlayerColor, error) {
	g.mu.Lock()
	if c, ok := g.colorOf(playerID); ok {
		g.mu.Unlock()
		return colorOf(c), nil
	}

	var color chess.Color
	switch {
	case g.white == "":
		color = chess.White
	case g.black == "":
		color = chess.Black
	default:
		g.mu.Unlock()
		return "", fmt.Errorf("%w: %s", ErrGameFull, g.ID)
	}
	g.setSeat(color, playerID)
	g.logger.Info().Str("player_id", playerID).Str("color", color.String()).Msg("player joined")

	startsNow := g.white != "" && g.black != "" && !g.started
	if startsNow {
		g.started = true
		g.settle()
		g.scheduleAI()
	}
	g.mu.Unlock()

	if startsNow {
		g.broadcastState()
	}
	return colorOf(color), nil
}

func (g *Game) IsPlayerInGame(playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	_, ok := g.colorOf(playerID)
	return ok
}

func (g *Game) CanSpectate() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.canSpectate()
}

func (g *Game) canSpectate() bool {
	return g.white == "" || g.black == ""
}

// LegalMovesFrom lists the legal moves from sq for the side to move. The
// result is empty once the game is over.
func (g *Game) LegalMovesFrom(sq chess.Square) []chess.Move {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.resolve != "" {
		return []chess.Move{}
	}
	return g.pos.LegalMovesFrom(sq)
}

// MakeMove plays req for playerID, who must own the side to move.
func (g *Game) MakeMove(playerID string, req MoveRequest) (chess.Ply, error) {
	g.mu.Lock()
	color, ok := g.colorOf(playerID)
	switch {
	case !ok:
		g.mu.Unlock()
		return chess.Ply{}, fmt.Errorf("%w: %s", ErrNotInGame, playerID)
	case g.resolve != "":
		g.mu.Unlock()
		return chess.Ply{}, ErrGameOver
	case !g.started:
		g.mu.Unlock()
		return chess.Ply{}, ErrNotStarted
	case color != g.pos.Turn:
		g.mu.Unlock()
		return chess.Ply{}, ErrNotYourTurn
	}

	m, err := req.resolve(&g.pos)
	if err != nil {
		g.mu.Unlock()
		return chess.Ply{}, err
	}
	ply := g.play(m)
	g.logger.Debug().Str("player_id", playerID).Str("move", m.String()).Str("san", ply.Notation).Msg("move played")
	g.scheduleAI()
	g.mu.Unlock()

	g.broadcastState()
	return ply, nil
}

// play applies a legal move and advances the session. Must hold g.mu.
func (g *Game) play(m chess.Move) chess.Ply {
	next, ply := g.pos.Apply(m)
	g.pos = next
	g.history = append(g.history, m)
	g.plies = append(g.plies, ply)
	g.lastMove = &m
	g.version++

	g.sound = SoundMove
	if ply.IsCapture() {
		g.sound = SoundCapture
	}
	if g.pos.InCheck(g.pos.Turn) {
		g.sound = SoundCheck
	}

	g.settle()
	return ply
}

// settle records the outcome of the current position, or starts the turn
// of the side to move. Must hold g.mu.
func (g *Game) settle() {
	g.resolve, g.winner = "", nil
	status := g.pos.Status()
	switch status.Outcome {
	case chess.Checkmate:
		winner := status.Winner
		g.resolve, g.winner = ResolveCheckmate, &winner
	case chess.Stalemate:
		g.resolve = ResolveStalemate
	case chess.Ongoing:
		if g.started {
			g.startTurn()
		}
		return
	}
	g.stopClocks()
	g.logger.Info().Str("resolve", string(g.resolve)).Msg("game over")
}

func (g *Game) stopClocks() {
	for _, c := range g.clocks {
		c.Stop()
	}
	if g.timer != nil {
		g.timer.Stop()
		g.timer = nil
	}
}

// startTurn refills and starts the clock of the side to move and arms the
// timeout. Must hold g.mu.
func (g *Game) startTurn() {
	g.stopClocks()
	c := g.clocks[g.pos.Turn]
	c.Reset()
	c.Start()
	if g.moveLimit <= 0 {
		return
	}
	version := g.version
	g.timer = time.AfterFunc(g.moveLimit, func() {
		g.expire(version)
	})
}

func (g *Game) expire(version uint64) {
	g.mu.Lock()
	if g.version != version || g.resolve != "" || !g.started {
		g.mu.Unlock()
		return
	}
	winner := g.pos.Turn.Opponent()
	g.resolve, g.winner = ResolveTimeout, &winner
	g.sound = SoundNone
	g.version++
	g.stopClocks()
	g.logger.Info().Str("loser", g.pos.Turn.String()).Msg("move time expired")
	g.mu.Unlock()

	g.broadcastState()
}

// Undo takes back the last move. Against the engine it takes back moves
// until the human is to move again.
func (g *Game) Undo(playerID string) error {
	g.mu.Lock()
	human, ok := g.colorOf(playerID)
	if !ok {
		g.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrNotInGame, playerID)
	}

	target := len(g.history) - 1
	if g.mode == ModePvAI {
		for target >= 0 && g.turnAfter(target) != human {
			target--
		}
	}
	if target < 0 {
		g.mu.Unlock()
		return ErrNothingToUndo
	}

	history := g.history[:target:target]
	pos, plies, err := chess.Replay(g.start, history)
	if err != nil {
		g.mu.Unlock()
		return fmt.Errorf("replay history: %w", err)
	}
	g.pos, g.history, g.plies = pos, history, plies
	g.lastMove = nil
	if n := len(history); n > 0 {
		last := history[n-1]
		g.lastMove = &last
	}
	g.sound = SoundNone
	g.version++
	g.settle()
	g.scheduleAI()
	g.logger.Debug().Str("player_id", playerID).Int("plies", len(history)).Msg("undo")
	g.mu.Unlock()

	g.broadcastState()
	return nil
}

// turnAfter is the side to move after the first n moves of the history.
func (g *Game) turnAfter(n int) chess.Color {
	if n%2 == 0 {
		return g.start.Turn
	}
	return g.start.Turn.Opponent()
}

// scheduleAI starts the engine's search when it is the engine's turn. The
// search runs on a copy of the position without holding g.mu. Must hold g.mu.
func (g *Game) scheduleAI() {
	if g.mode != ModePvAI || !g.started || g.resolve != "" || g.pos.Turn != g.aiSide {
		return
	}
	pos, version := g.pos, g.version
	g.aiWG.Add(1)
	go g.runAI(pos, version)
}

func (g *Game) runAI(pos chess.Position, version uint64) {
	defer g.aiWG.Done()

	g.aiMu.Lock()
	res, err := g.engine.ChooseMove(&pos)
	g.aiMu.Unlock()
	if err != nil {
		g.logger.Warn().Err(err).Msg("engine found no move")
		return
	}

	g.mu.Lock()
	if g.version != version || g.resolve != "" {
		g.mu.Unlock()
		g.logger.Debug().Str("move", res.Move.String()).Msg("discarding stale engine move")
		return
	}
	ply := g.play(res.Move)
	g.logger.Debug().
		Str("move", res.Move.String()).
		Str("san", ply.Notation).
		Int("score", res.Score).
		Uint64("nodes", res.Nodes).
		Msg("engine moved")
	g.mu.Unlock()

	g.broadcastState()
}

// WaitAI blocks until no engine search is pending.
func (g *Game) WaitAI() {
	g.aiWG.Wait()
}

// Close stops the move timer.
func (g *Game) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.stopClocks()
}

func (g *Game) GetState() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.snapshot()
}

func (g *Game) snapshot() GameState {
	st := GameState{
		ID:             g.ID,
		Mode:           g.mode,
		FEN:            g.pos.FEN(),
		Board:          newBoardState(&g.pos.Board),
		ToMove:         colorOf(g.pos.Turn),
		MoveHistory:    pairPlies(g.plies),
		CapturedPieces: capturedFromPlies(g.plies),
		IsCheck:        g.pos.InCheck(g.pos.Turn),
		Castling:       g.pos.Castling,
		Sound:          g.sound,
		Started:        g.started,
		Version:        g.version,
		Players: Players{
			White: g.clientPlayer(chess.White),
			Black: g.clientPlayer(chess.Black),
		},
	}
	if g.pos.HasEnPassant() {
		ep := g.pos.EnPassant
		st.EnPassantTarget = &ep
	}
	if g.lastMove != nil {
		st.LastMove = &SimpleMove{From: g.lastMove.From, To: g.lastMove.To}
	}
	if g.resolve != "" {
		resolve := g.resolve
		st.Resolve = &resolve
	}
	if g.winner != nil {
		w := colorOf(*g.winner)
		st.Winner = &w
	}
	return st
}

func (g *Game) clientPlayer(c chess.Color) ClientPlayer {
	id := g.seat(c)
	cp := ClientPlayer{
		ID:       id,
		TimeLeft: g.clocks[c].tenths(),
		IsAI:     g.mode == ModePvAI && c == g.aiSide,
	}
	if id != "" {
		cp.Color = colorOf(c)
	}
	return cp
}

// PGN renders the game so far.
func (g *Game) PGN() (string, error) {
	g.mu.Lock()
	r := pgn.Record{
		Start: g.start,
		Moves: append([]chess.Move(nil), g.history...),
		Tags: []pgn.Tag{
			{Key: "Event", Value: "pixelchess " + string(g.mode)},
			{Key: "Site", Value: g.ID},
			{Key: "Date", Value: g.createdAt.Format("2006.01.02")},
			{Key: "White", Value: g.seatName(chess.White)},
			{Key: "Black", Value: g.seatName(chess.Black)},
		},
	}
	if g.resolve == ResolveTimeout {
		loser := g.pos.Turn
		r.TimeForfeit = &loser
	}
	g.mu.Unlock()

	return pgn.Encode(r)
}

func (g *Game) seatName(c chess.Color) string {
	if id := g.seat(c); id != "" {
		return id
	}
	return "?"
}

// RegisterConnection subscribes conn to state pushes. Players of the game
// and spectators of a game with a free seat are allowed. A second
// connection for the same player is closed, the first one is kept.
func (g *Game) RegisterConnection(playerID string, conn Conn) error {
	g.mu.Lock()
	_, seated := g.colorOf(playerID)
	isAuthorized := seated || g.canSpectate()
	g.mu.Unlock()

	if !isAuthorized {
		return ErrNotAuthorized
	}

	if !g.connections.add(playerID, conn) {
		g.logger.Debug().Str("player_id", playerID).Msg("rejecting duplicate connection")
		(&subscriber{conn: conn}).reject("Connection already exists")
		return nil
	}
	g.logger.Debug().Str("player_id", playerID).Msg("connection registered")

	g.broadcastState()
	return nil
}

func (g *Game) UnregisterConnection(playerID string, conn Conn) {
	if g.connections.remove(playerID, conn) {
		g.logger.Debug().Str("player_id", playerID).Msg("connection unregistered")
	}
}

// Send writes msg to the connection of playerID, if any.
func (g *Game) Send(playerID string, msg ws.Message) error {
	s, ok := g.connections.get(playerID)
	if !ok {
		return fmt.Errorf("%w: no connection for %s", ErrNotInGame, playerID)
	}
	return s.send(msg)
}

func (g *Game) broadcastState() {
	msg, err := ws.NewMessage(ws.MessageTypeGameState, g.GetState())
	if err != nil {
		g.logger.Error().Err(err).Msg("failed to marshal state")
		return
	}

	for playerID, s := range g.connections.snapshot() {
		if err := s.send(msg); err != nil {
			g.logger.Warn().Err(err).Str("player_id", playerID).Msg("failed to send state, dropping connection")
			g.connections.remove(playerID, s.conn)
		}
	}
}
