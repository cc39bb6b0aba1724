package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/benbeisheim/pixelchess-backend/internal/model"
)

func statusOf(err error) int {
	switch {
	case errors.Is(err, model.ErrGameNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, model.ErrGameFull),
		errors.Is(err, model.ErrGameExists),
		errors.Is(err, model.ErrAlreadyQueued):
		return fiber.StatusConflict
	case errors.Is(err, model.ErrNotYourTurn),
		errors.Is(err, model.ErrNotInGame),
		errors.Is(err, model.ErrNotAuthorized):
		return fiber.StatusForbidden
	case errors.Is(err, model.ErrInvalidRequest):
		return fiber.StatusBadRequest
	case errors.Is(err, model.ErrIllegalMove),
		errors.Is(err, model.ErrGameOver),
		errors.Is(err, model.ErrNothingToUndo),
		errors.Is(err, model.ErrNotStarted):
		return fiber.StatusUnprocessableEntity
	}
	return fiber.StatusInternalServerError
}

func (gc *GameController) fail(c *fiber.Ctx, err error) error {
	status := statusOf(err)
	msg := err.Error()
	if status == fiber.StatusInternalServerError {
		gc.logger.Error().Err(err).Str("path", c.Path()).Msg("request failed")
		msg = "internal error"
	}
	return c.Status(status).JSON(fiber.Map{"error": msg})
}
