package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog"

	"github.com/benbeisheim/pixelchess-backend/internal/middleware"
	"github.com/benbeisheim/pixelchess-backend/internal/service"
)

// Register mounts the REST API under /api and the sockets under /ws.
func Register(app *fiber.App, gameService *service.GameService, logger zerolog.Logger, origins []string) {
	gameController := NewGameController(gameService, logger)
	wsController := NewWebSocketController(gameService, logger)

	wsConfig := websocket.Config{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		Origins:         origins,
	}
	sockets := app.Group("/ws", middleware.EnsurePlayerID())
	sockets.Get("/game/:gameId", middleware.WebSocketUpgrade(), websocket.New(wsController.HandleConnection, wsConfig))
	sockets.Get("/matchmaking", middleware.WebSocketUpgrade(), websocket.New(wsController.HandleMatchmaking, wsConfig))

	api := app.Group("/api", middleware.EnsurePlayerID())
	gameRoutes := api.Group("/game")
	gameRoutes.Post("/matchmaking/join", gameController.JoinMatchmaking)
	gameRoutes.Post("/matchmaking/leave", gameController.LeaveMatchmaking)
	gameRoutes.Post("/create", gameController.CreateGame)
	gameRoutes.Post("/join/:gameId", gameController.JoinGame)
	gameRoutes.Get("/:gameId", gameController.GetGameState)
	gameRoutes.Get("/:gameId/moves", gameController.LegalMoves)
	gameRoutes.Post("/:gameId/move", gameController.MakeMove)
	gameRoutes.Post("/:gameId/undo", gameController.Undo)
	gameRoutes.Get("/:gameId/pgn", gameController.PGN)
}
