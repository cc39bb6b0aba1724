package ai

import (
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/benbeisheim/pixelchess-backend/internal/chess"
)

const (
	// Infinity bounds the root search window.
	Infinity = 1_000_000_000
	// MateScore is the score of being checkmated, from the mated side's view.
	MateScore = 10_000_000

	DefaultDepth = 2
)

var ErrNoLegalMoves = errors.New("no legal moves")

type Result struct {
	Move  chess.Move `json:"move"`
	Score int        `json:"score"`
	Found bool       `json:"found"`
	Nodes uint64     `json:"nodes"`
}

// Engine is a fixed-depth negamax searcher. It keeps a node counter, so a
// single Engine must not run two searches at once.
type Engine struct {
	depth  int
	logger zerolog.Logger
	nodes  uint64
}

type Option func(*Engine)

func WithDepth(depth int) Option {
	return func(e *Engine) {
		if depth > 0 {
			e.depth = depth
		}
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		depth:  DefaultDepth,
		logger: zerolog.Nop(),
	}
	for _, f := range opts {
		f(e)
	}
	return e
}

func (e *Engine) Depth() int {
	return e.depth
}

// ChooseMove searches p for the side to move at the engine depth.
func (e *Engine) ChooseMove(p *chess.Position) (Result, error) {
	e.nodes = 0
	start := time.Now()
	res := e.Search(p, e.depth, -Infinity, Infinity, p.Turn)
	res.Nodes = e.nodes
	if !res.Found {
		return res, ErrNoLegalMoves
	}
	e.logger.Debug().
		Str("side", p.Turn.String()).
		Int("depth", e.depth).
		Str("move", res.Move.String()).
		Int("score", res.Score).
		Uint64("nodes", res.Nodes).
		Dur("took", time.Since(start)).
		Msg("search done")
	return res, nil
}

// Search is negamax with alpha-beta pruning. Scores are from side's point of
// view. Leaves are resolved by Quiescence. The bound is fail-hard: when no
// move raises alpha the result carries alpha and Found is false.
func (e *Engine) Search(p *chess.Position, depth, alpha, beta int, side chess.Color) Result {
	e.nodes++
	if depth == 0 {
		return Result{Score: e.Quiescence(p, alpha, beta, side)}
	}

	moves := p.LegalMoves(side)
	if len(moves) == 0 {
		if p.InCheck(side) {
			return Result{Score: -MateScore}
		}
		return Result{Score: 0}
	}
	OrderMoves(moves)

	var best Result
	for _, m := range moves {
		next := p.After(m)
		score := -e.Search(&next, depth-1, -beta, -alpha, side.Opponent()).Score
		if score > alpha {
			alpha = score
			best = Result{Move: m, Score: score, Found: true}
		}
		if alpha >= beta {
			break
		}
	}
	if !best.Found {
		return Result{Score: alpha}
	}
	return best
}

// Quiescence extends a leaf through capture sequences only, using the
// static evaluation as a stand-pat lower bound. It does not look for
// check evasions.
func (e *Engine) Quiescence(p *chess.Position, alpha, beta int, side chess.Color) int {
	e.nodes++
	stand := sideSign(side) * Evaluate(p)
	if stand >= beta {
		return beta
	}
	if stand > alpha {
		alpha = stand
	}

	for _, m := range p.LegalMoves(side) {
		if !m.Capture {
			continue
		}
		next := p.After(m)
		score := -e.Quiescence(&next, -beta, -alpha, side.Opponent())
		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}
	return alpha
}
