package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/benbeisheim/pixelchess-backend/internal/config"
	"github.com/benbeisheim/pixelchess-backend/internal/controller"
	"github.com/benbeisheim/pixelchess-backend/internal/logging"
	"github.com/benbeisheim/pixelchess-backend/internal/middleware"
	"github.com/benbeisheim/pixelchess-backend/internal/model"
	"github.com/benbeisheim/pixelchess-backend/internal/service"
)

func main() {
	cfg, err := config.Load(os.Args[0], os.Args[1:], os.Getenv)
	if err != nil {
		defaultLogger := logging.Default()
		defaultLogger.Fatal().Err(err).Msg("load config")
	}
	logger := logging.New(os.Stderr, cfg.LogLevel, cfg.LogPretty)

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, " + middleware.PlayerIDHeader,
		AllowMethods:     "GET, POST, OPTIONS",
		AllowCredentials: true,
	}))
	app.Use(middleware.RequestLogger(logger))

	gameManager := service.NewGameManager(
		service.WithManagerLogger(logger),
		service.WithGameDefaults(model.WithMoveTimeLimit(cfg.MoveTimeLimit)),
		service.WithMatchmakingInterval(cfg.MatchmakingInterval),
	)
	gameService := service.NewGameService(gameManager, logger, cfg.SearchDepth)
	controller.Register(app, gameService, logger, cfg.Origins())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go gameManager.Run(ctx)

	go func() {
		<-ctx.Done()
		logger.Info().Msg("shutting down")
		if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
			logger.Error().Err(err).Msg("shutdown")
		}
	}()

	logger.Info().Str("addr", cfg.Addr).Int("depth", cfg.SearchDepth).Dur("move_time", cfg.MoveTimeLimit).Msg("listening")
	if err := app.Listen(cfg.Addr); err != nil {
		logger.Fatal().Err(err).Msg("listen")
	}
	gameManager.Close()
}
