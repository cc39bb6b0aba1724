package service

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/benbeisheim/pixelchess-backend/internal/ai"
	"github.com/benbeisheim/pixelchess-backend/internal/chess"
	"github.com/benbeisheim/pixelchess-backend/internal/model"
	"github.com/benbeisheim/pixelchess-backend/internal/ws"
)

// MaxSearchDepth bounds the depth a client may ask the engine for.
const MaxSearchDepth = 5

type CreateGameRequest struct {
	Mode   string `json:"mode"`
	AISide string `json:"aiSide"`
	Depth  int    `json:"depth"`
	FEN    string `json:"fen"`
}

type GameService struct {
	gameManager  *GameManager
	logger       zerolog.Logger
	defaultDepth int
}

func NewGameService(gameManager *GameManager, logger zerolog.Logger, defaultDepth int) *GameService {
	if defaultDepth <= 0 {
		defaultDepth = ai.DefaultDepth
	}
	return &GameService{
		gameManager:  gameManager,
		logger:       logger,
		defaultDepth: defaultDepth,
	}
}

func (gs *GameService) CreateGame(req CreateGameRequest) (string, error) {
	mode, err := model.ParseMode(req.Mode)
	if err != nil {
		return "", err
	}
	opts := []model.Option{}

	if req.FEN != "" {
		start, err := chess.ParseFEN(req.FEN)
		if err != nil {
			return "", fmt.Errorf("%w: %v", model.ErrInvalidRequest, err)
		}
		opts = append(opts, model.WithStart(start))
	}

	if mode == model.ModePvAI {
		side := model.PlayerColorBlack
		if req.AISide != "" {
			side = model.PlayerColor(req.AISide)
		}
		aiSide, err := side.Chess()
		if err != nil {
			return "", err
		}
		depth := req.Depth
		if depth == 0 {
			depth = gs.defaultDepth
		}
		if depth < 1 || depth > MaxSearchDepth {
			return "", fmt.Errorf("%w: depth must be between 1 and %d", model.ErrInvalidRequest, MaxSearchDepth)
		}
		engine := ai.NewEngine(ai.WithDepth(depth), ai.WithLogger(gs.logger))
		opts = append(opts, model.WithMode(mode, aiSide), model.WithEngine(engine))
	}

	gameID := uuid.New().String()
	if err := gs.gameManager.CreateGame(gameID, opts...); err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}
	return gameID, nil
}

func (gs *GameService) JoinGame(gameID string, playerID string) (model.PlayerColor, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return "", err
	}
	return game.AddPlayer(playerID)
}

func (gs *GameService) GetGameState(gameID string) (model.GameState, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	return game.GetState(), nil
}

// LegalMoves lists the moves of the piece on square, in algebraic notation.
func (gs *GameService) LegalMoves(gameID string, square string) ([]chess.Move, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	sq, err := chess.ParseSquare(square)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrInvalidRequest, err)
	}
	return game.LegalMovesFrom(sq), nil
}

func (gs *GameService) HandleMove(gameID string, playerID string, move model.MoveRequest) (chess.Ply, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return chess.Ply{}, err
	}
	return game.MakeMove(playerID, move)
}

func (gs *GameService) Undo(gameID string, playerID string) error {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.Undo(playerID)
}

func (gs *GameService) PGN(gameID string) (string, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return "", err
	}
	return game.PGN()
}

func (gs *GameService) JoinMatchmaking(playerID string) error {
	return gs.gameManager.JoinMatchmaking(playerID)
}

func (gs *GameService) LeaveMatchmaking(playerID string) {
	gs.gameManager.LeaveMatchmaking(playerID)
}

func (gs *GameService) RegisterConnection(gameID string, playerID string, conn model.Conn) error {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.RegisterConnection(playerID, conn)
}

func (gs *GameService) UnregisterConnection(gameID string, playerID string, conn model.Conn) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return
	}
	game.UnregisterConnection(playerID, conn)
}

// Send writes msg to one player's connection of a game.
func (gs *GameService) Send(gameID string, playerID string, msg ws.Message) error {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.Send(playerID, msg)
}

func (gs *GameService) RegisterMatchmakingChannel(playerID string, ch chan model.MatchFoundEvent) {
	gs.gameManager.RegisterMatchmakingChannel(playerID, ch)
}

func (gs *GameService) UnregisterMatchmakingChannel(playerID string, ch chan model.MatchFoundEvent) {
	gs.gameManager.UnregisterMatchmakingChannel(playerID, ch)
}

// WaitAI blocks until the engine of gameID has no pending search.
func (gs *GameService) WaitAI(gameID string) error {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return err
	}
	game.WaitAI()
	return nil
}
