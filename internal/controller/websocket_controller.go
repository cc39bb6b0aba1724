package controller

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog"

	"github.com/benbeisheim/pixelchess-backend/internal/middleware"
	"github.com/benbeisheim/pixelchess-backend/internal/model"
	"github.com/benbeisheim/pixelchess-backend/internal/service"
	"github.com/benbeisheim/pixelchess-backend/internal/ws"
)

type WebSocketController struct {
	gameService *service.GameService
	logger      zerolog.Logger
}

func NewWebSocketController(gameService *service.GameService, logger zerolog.Logger) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
		logger:      logger,
	}
}

// HandleConnection serves one player's game channel until the socket closes.
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID, _ := c.Locals(middleware.WSGameIDKey).(string)
	playerID, _ := c.Locals(middleware.WSPlayerIDKey).(string)
	logger := wsc.logger.With().Str("game_id", gameID).Str("player_id", playerID).Logger()

	if err := wsc.gameService.RegisterConnection(gameID, playerID, c); err != nil {
		logger.Warn().Err(err).Msg("register connection")
		wsc.sendError(c, err)
		c.Close()
		return
	}
	defer wsc.gameService.UnregisterConnection(gameID, playerID, c)
	logger.Debug().Msg("connected")

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			logger.Debug().Err(err).Msg("read")
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			wsc.sendGameError(gameID, playerID, fmt.Errorf("%w: %v", model.ErrInvalidRequest, err))
			continue
		}
		if err := wsc.handleMessage(gameID, playerID, msg); err != nil {
			logger.Debug().Err(err).Str("type", string(msg.Type)).Msg("message rejected")
			wsc.sendGameError(gameID, playerID, err)
		}
	}
}

func (wsc *WebSocketController) handleMessage(gameID, playerID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeMove:
		var move model.MoveRequest
		if err := json.Unmarshal(msg.Payload, &move); err != nil {
			return fmt.Errorf("%w: %v", model.ErrInvalidRequest, err)
		}
		_, err := wsc.gameService.HandleMove(gameID, playerID, move)
		return err

	case ws.MessageTypeUndo:
		return wsc.gameService.Undo(gameID, playerID)

	case ws.MessageTypeSelect:
		var sel ws.SelectPayload
		if err := json.Unmarshal(msg.Payload, &sel); err != nil {
			return fmt.Errorf("%w: %v", model.ErrInvalidRequest, err)
		}
		moves, err := wsc.gameService.LegalMoves(gameID, sel.Square)
		if err != nil {
			return err
		}
		reply, err := ws.NewMessage(ws.MessageTypeLegalMoves, moves)
		if err != nil {
			return err
		}
		return wsc.gameService.Send(gameID, playerID, reply)
	}
	return fmt.Errorf("%w: unknown message type %q", model.ErrInvalidRequest, msg.Type)
}

func errorMessage(err error) ws.Message {
	msg, _ := ws.NewMessage(ws.MessageTypeError, ws.ErrorPayload{Error: err.Error()})
	return msg
}

// sendGameError goes through the game so it is serialized with broadcasts.
func (wsc *WebSocketController) sendGameError(gameID, playerID string, err error) {
	if sendErr := wsc.gameService.Send(gameID, playerID, errorMessage(err)); sendErr != nil {
		wsc.logger.Debug().Err(sendErr).Msg("send error")
	}
}

// sendError writes directly; only used before the connection is registered.
func (wsc *WebSocketController) sendError(c *websocket.Conn, err error) {
	if writeErr := c.WriteJSON(errorMessage(err)); writeErr != nil {
		wsc.logger.Debug().Err(writeErr).Msg("write error")
	}
}

// HandleMatchmaking queues the player, holds the socket open while they wait
// and pushes a matchFound event once paired. Closing the socket leaves the
// queue.
func (wsc *WebSocketController) HandleMatchmaking(c *websocket.Conn) {
	playerID, _ := c.Locals(middleware.WSPlayerIDKey).(string)
	logger := wsc.logger.With().Str("player_id", playerID).Logger()

	ch := make(chan model.MatchFoundEvent, 1)
	wsc.gameService.RegisterMatchmakingChannel(playerID, ch)
	defer wsc.gameService.UnregisterMatchmakingChannel(playerID, ch)
	if err := wsc.gameService.JoinMatchmaking(playerID); err != nil && !errors.Is(err, model.ErrAlreadyQueued) {
		logger.Warn().Err(err).Msg("join matchmaking")
		wsc.sendError(c, err)
		return
	}

	// The read loop only detects the client going away.
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()

	select {
	case event, ok := <-ch:
		if !ok {
			return
		}
		msg, err := ws.NewMessage(ws.MessageTypeMatchFound, event)
		if err != nil {
			logger.Error().Err(err).Msg("encode match")
			return
		}
		if err := c.WriteJSON(msg); err != nil {
			logger.Debug().Err(err).Msg("write match")
		}
		logger.Info().Str("game_id", event.GameID).Msg("match delivered")
	case <-gone:
		wsc.gameService.LeaveMatchmaking(playerID)
		logger.Debug().Msg("left matchmaking")
	}
}
