package controller

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/benbeisheim/pixelchess-backend/internal/middleware"
	"github.com/benbeisheim/pixelchess-backend/internal/model"
	"github.com/benbeisheim/pixelchess-backend/internal/service"
)

type GameController struct {
	gameService *service.GameService
	logger      zerolog.Logger
}

func NewGameController(gameService *service.GameService, logger zerolog.Logger) *GameController {
	return &GameController{gameService: gameService, logger: logger}
}

// CreateGame accepts an optional body; an empty one creates a pvp game from
// the initial position.
func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	var req service.CreateGameRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return gc.fail(c, fmt.Errorf("%w: %v", model.ErrInvalidRequest, err))
		}
	}

	gameID, err := gc.gameService.CreateGame(req)
	if err != nil {
		return gc.fail(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Game created",
		"game_id": gameID,
	})
}

func (gc *GameController) JoinGame(c *fiber.Ctx) error {
	color, err := gc.gameService.JoinGame(c.Params("gameId"), middleware.PlayerID(c))
	if err != nil {
		return gc.fail(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Game joined",
		"color":   color,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	state, err := gc.gameService.GetGameState(c.Params("gameId"))
	if err != nil {
		return gc.fail(c, err)
	}
	return c.JSON(state)
}

func (gc *GameController) LegalMoves(c *fiber.Ctx) error {
	moves, err := gc.gameService.LegalMoves(c.Params("gameId"), c.Query("square"))
	if err != nil {
		return gc.fail(c, err)
	}
	return c.JSON(moves)
}

func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	var req model.MoveRequest
	if err := c.BodyParser(&req); err != nil {
		return gc.fail(c, fmt.Errorf("%w: %v", model.ErrInvalidRequest, err))
	}
	ply, err := gc.gameService.HandleMove(c.Params("gameId"), middleware.PlayerID(c), req)
	if err != nil {
		return gc.fail(c, err)
	}
	return c.JSON(ply)
}

func (gc *GameController) Undo(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	if err := gc.gameService.Undo(gameID, middleware.PlayerID(c)); err != nil {
		return gc.fail(c, err)
	}
	state, err := gc.gameService.GetGameState(gameID)
	if err != nil {
		return gc.fail(c, err)
	}
	return c.JSON(state)
}

func (gc *GameController) PGN(c *fiber.Ctx) error {
	pgn, err := gc.gameService.PGN(c.Params("gameId"))
	if err != nil {
		return gc.fail(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.SendString(pgn)
}

func (gc *GameController) JoinMatchmaking(c *fiber.Ctx) error {
	if err := gc.gameService.JoinMatchmaking(middleware.PlayerID(c)); err != nil {
		return gc.fail(c, err)
	}
	return c.JSON(fiber.Map{
		"status": "queued",
	})
}

func (gc *GameController) LeaveMatchmaking(c *fiber.Ctx) error {
	gc.gameService.LeaveMatchmaking(middleware.PlayerID(c))
	return c.JSON(fiber.Map{
		"status": "left",
	})
}
