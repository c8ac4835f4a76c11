package handlers

import (
	"placement/internal/services/user"
	"placement/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	userService user.Service
}

func NewUserHandler(userService user.Service) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) RegisterUser(c *fiber.Ctx) error {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
		Role     string `json:"role"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	created, err := h.userService.Register(input.Email, input.Password, input.Name, input.Role)
	if err != nil {
		return respondDomainError(c, err)
	}

	return utils.Created(c, fiber.Map{
		"user": fiber.Map{
			"id":    created.ID,
			"email": created.Email,
			"name":  created.Name,
			"role":  created.Role,
		},
	})
}

// GetUsersPaginated lists all accounts; admin only.
func (h *UserHandler) GetUsersPaginated(c *fiber.Ctx) error {
	pagination := utils.GetPagination(c, 1, 20)

	users, total, err := h.userService.ListPaginated(pagination.Limit, pagination.Offset)
	if err != nil {
		return respondDomainError(c, err)
	}

	sanitized := make([]fiber.Map, 0, len(users))
	for _, u := range users {
		sanitized = append(sanitized, fiber.Map{
			"id":     u.ID,
			"email":  u.Email,
			"name":   u.Name,
			"role":   u.Role,
			"status": u.Status,
		})
	}

	pagination.SetTotal(total)
	return utils.Success(c, utils.NewPaginatedResponse(sanitized, pagination))
}
