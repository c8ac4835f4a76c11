package handlers

import (
	"errors"
	"log"

	"placement/internal/apperrors"
	"placement/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// respondDomainError maps the shared error taxonomy onto HTTP statuses.
// Business-rule failures keep their message; anything unexpected is
// logged and hidden behind a generic 500.
func respondDomainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return utils.BadRequest(c, err.Error())
	case errors.Is(err, apperrors.ErrNotAuthorized):
		return utils.Forbidden(c, "you are not allowed to perform this action")
	case errors.Is(err, apperrors.ErrNotFound):
		return utils.NotFound(c, "not found")
	case errors.Is(err, apperrors.ErrAlreadyOpen):
		return utils.Conflict(c, "this item has already been submitted for review")
	case errors.Is(err, apperrors.ErrInvalidTransition):
		return utils.Conflict(c, "the item's review status does not allow this action")
	case errors.Is(err, apperrors.ErrConflict):
		return utils.Conflict(c, "someone else already reviewed this item, refresh and retry")
	default:
		log.Printf("internal error: %v", err)
		return utils.InternalError(c, "internal error")
	}
}
