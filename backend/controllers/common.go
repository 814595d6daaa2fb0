package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"project/backend/services"
	"project/backend/store"
	"project/backend/utils"
)

// serviceError maps the engine error taxonomy onto HTTP responses.
func serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return utils.NotFound(c, err.Error())
	case errors.Is(err, services.ErrInvalidInput):
		return utils.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrAttemptsExhausted):
		return utils.Forbidden(c, err.Error())
	default:
		return utils.InternalServerError(c, err.Error())
	}
}
