package utils

import (
	"placement/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ExtractUserClaims pulls the authenticated user's claims out of the
// request context. The auth middleware stores them under "claims".
func ExtractUserClaims(c *fiber.Ctx) (*models.UserClaims, error) {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok || claims == nil {
		return nil, fiber.ErrUnauthorized
	}
	return claims, nil
}
