package handlers

import (
	"placement/internal/services/assignment"
	"placement/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type AssignmentHandler struct {
	registry assignment.Service
}

func NewAssignmentHandler(registry assignment.Service) *AssignmentHandler {
	return &AssignmentHandler{registry: registry}
}

type assignmentInput struct {
	MentorID  uint `json:"mentor_id"`
	StudentID uint `json:"student_id"`
}

// CreateAssignment pairs a mentor with a student; admin only, idempotent.
func (h *AssignmentHandler) CreateAssignment(c *fiber.Ctx) error {
	claims, err := utils.ExtractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input assignmentInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	if err := h.registry.Assign(c.Context(), input.MentorID, input.StudentID, claims.UserID); err != nil {
		return respondDomainError(c, err)
	}

	return utils.Created(c, fiber.Map{"message": "assignment created"})
}

// DeleteAssignment removes a pairing. Past decisions stay untouched.
func (h *AssignmentHandler) DeleteAssignment(c *fiber.Ctx) error {
	var input assignmentInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	if err := h.registry.Unassign(c.Context(), input.MentorID, input.StudentID); err != nil {
		return respondDomainError(c, err)
	}

	return utils.Success(c, fiber.Map{"message": "assignment removed"})
}

func (h *AssignmentHandler) ListByMentor(c *fiber.Ctx) error {
	mentorID, ok := parseIDParam(c, "id")
	if !ok {
		return utils.BadRequest(c, "invalid mentor id")
	}

	assignments, err := h.registry.ListByMentor(c.Context(), mentorID)
	if err != nil {
		return respondDomainError(c, err)
	}

	return utils.Success(c, fiber.Map{"assignments": assignments})
}

func (h *AssignmentHandler) ListByStudent(c *fiber.Ctx) error {
	studentID, ok := parseIDParam(c, "id")
	if !ok {
		return utils.BadRequest(c, "invalid student id")
	}

	assignments, err := h.registry.ListByStudent(c.Context(), studentID)
	if err != nil {
		return respondDomainError(c, err)
	}

	return utils.Success(c, fiber.Map{"assignments": assignments})
}
