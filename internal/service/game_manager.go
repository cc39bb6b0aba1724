package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/benbeisheim/pixelchess-backend/internal/model"
)

const DefaultMatchmakingInterval = time.Second

type GameManager struct {
	games            map[string]*model.Game
	queue            *model.Queue
	matchingChannels map[string]chan model.MatchFoundEvent
	mu               sync.RWMutex

	logger   zerolog.Logger
	gameOpts []model.Option
	interval time.Duration
}

type ManagerOption func(*GameManager)

func WithManagerLogger(logger zerolog.Logger) ManagerOption {
	return func(gm *GameManager) {
		gm.logger = logger
	}
}

// WithGameDefaults are applied to every game before its own options.
func WithGameDefaults(opts ...model.Option) ManagerOption {
	return func(gm *GameManager) {
		gm.gameOpts = append(gm.gameOpts, opts...)
	}
}

func WithMatchmakingInterval(d time.Duration) ManagerOption {
	return func(gm *GameManager) {
		if d > 0 {
			gm.interval = d
		}
	}
}

func NewGameManager(opts ...ManagerOption) *GameManager {
	gm := &GameManager{
		games:            make(map[string]*model.Game),
		queue:            model.NewQueue(),
		matchingChannels: make(map[string]chan model.MatchFoundEvent),
		logger:           zerolog.Nop(),
		interval:         DefaultMatchmakingInterval,
	}
	for _, f := range opts {
		f(gm)
	}
	return gm
}

// Run pairs queued players every tick until ctx is done.
func (gm *GameManager) Run(ctx context.Context) {
	ticker := time.NewTicker(gm.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for gm.matchOnce() {
			}
		}
	}
}

// matchOnce creates a game for the two longest-waiting players and
// notifies them. It reports false when nobody could be paired.
func (gm *GameManager) matchOnce() bool {
	player1, player2, ok := gm.queue.GetNextPair()
	if !ok {
		return false
	}

	gameID := uuid.New().String()
	game := gm.newGame(gameID)
	p1Color, err := game.AddPlayer(player1.ID)
	if err != nil {
		gm.logger.Error().Err(err).Str("game_id", gameID).Msg("error adding player to game")
		return true
	}
	p2Color, err := game.AddPlayer(player2.ID)
	if err != nil {
		gm.logger.Error().Err(err).Str("game_id", gameID).Msg("error adding player to game")
		return true
	}

	gm.mu.Lock()
	defer gm.mu.Unlock()
	gm.games[gameID] = game

	sent1 := gm.notifyLocked(player1.ID, model.MatchFoundEvent{GameID: gameID, Color: p1Color})
	sent2 := gm.notifyLocked(player2.ID, model.MatchFoundEvent{GameID: gameID, Color: p2Color})
	if !sent1 || !sent2 {
		gm.logger.Warn().Str("game_id", gameID).Msg("failed to notify all players of match")
	}
	gm.logger.Info().
		Str("game_id", gameID).
		Str("white", player1.ID).
		Str("black", player2.ID).
		Msg("match created")
	return true
}

// notifyLocked sends the event and retires the channel. Must hold gm.mu.
func (gm *GameManager) notifyLocked(playerID string, event model.MatchFoundEvent) bool {
	ch, ok := gm.matchingChannels[playerID]
	if !ok {
		return false
	}
	delete(gm.matchingChannels, playerID)
	defer close(ch)
	select {
	case ch <- event:
		return true
	default:
		return false
	}
}

// RegisterMatchmakingChannel replaces any earlier channel of playerID,
// closing it. ch should be buffered.
func (gm *GameManager) RegisterMatchmakingChannel(playerID string, ch chan model.MatchFoundEvent) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if existing, exists := gm.matchingChannels[playerID]; exists {
		delete(gm.matchingChannels, playerID)
		close(existing)
	}
	gm.matchingChannels[playerID] = ch
}

// UnregisterMatchmakingChannel forgets ch if it is still registered. The
// channel is not closed here.
func (gm *GameManager) UnregisterMatchmakingChannel(playerID string, ch chan model.MatchFoundEvent) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if current, ok := gm.matchingChannels[playerID]; ok && current == ch {
		delete(gm.matchingChannels, playerID)
	}
}

func (gm *GameManager) newGame(gameID string, opts ...model.Option) *model.Game {
	all := make([]model.Option, 0, len(gm.gameOpts)+len(opts)+1)
	all = append(all, model.WithLogger(gm.logger))
	all = append(all, gm.gameOpts...)
	all = append(all, opts...)
	return model.NewGame(gameID, all...)
}

func (gm *GameManager) CreateGame(gameID string, opts ...model.Option) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; exists {
		return fmt.Errorf("%w: %s", model.ErrGameExists, gameID)
	}
	gm.games[gameID] = gm.newGame(gameID, opts...)
	gm.logger.Info().Str("game_id", gameID).Msg("game created")
	return nil
}

func (gm *GameManager) GetGame(gameID string) (*model.Game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	game, exists := gm.games[gameID]
	if !exists {
		return nil, fmt.Errorf("%w: %s", model.ErrGameNotFound, gameID)
	}
	return game, nil
}

func (gm *GameManager) JoinMatchmaking(playerID string) error {
	if err := gm.queue.AddPlayer(model.Player{ID: playerID}); err != nil {
		return err
	}
	gm.logger.Debug().Str("player_id", playerID).Int("queued", gm.queue.Size()).Msg("player queued")
	return nil
}

func (gm *GameManager) LeaveMatchmaking(playerID string) {
	if gm.queue.Remove(playerID) {
		gm.logger.Debug().Str("player_id", playerID).Msg("player left queue")
	}
}

func (gm *GameManager) GameCount() int {
	gm.mu.RLock()
	defer gm.mu.RUnlock()
	return len(gm.games)
}

// Close stops the clocks of every game.
func (gm *GameManager) Close() {
	gm.mu.RLock()
	defer gm.mu.RUnlock()
	for _, g := range gm.games {
		g.Close()
	}
}
