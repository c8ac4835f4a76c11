package handlers

import (
	"strconv"

	"placement/internal/models"
	"placement/internal/services/assignment"
	"placement/internal/services/query"
	"placement/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type ReviewHandler struct {
	query    query.Service
	registry assignment.Service
}

func NewReviewHandler(queryService query.Service, registry assignment.Service) *ReviewHandler {
	return &ReviewHandler{query: queryService, registry: registry}
}

// PendingCount returns the number of pending reviews, optionally scoped
// to one mentor via ?mentor_id=.
func (h *ReviewHandler) PendingCount(c *fiber.Ctx) error {
	claims, err := utils.ExtractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var mentorID *uint
	if raw := c.Query("mentor_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return utils.BadRequest(c, "invalid mentor_id")
		}
		v := uint(id)
		mentorID = &v
	}

	// Mentors may only ask about their own queue; global counts are
	// for admins.
	if claims.Role == models.RoleMentor {
		if mentorID == nil || *mentorID != claims.UserID {
			return utils.Forbidden(c, "mentors can only view their own pending count")
		}
	} else if claims.Role != models.RoleAdmin {
		return utils.Forbidden(c, "insufficient role")
	}

	count, err := h.query.PendingCount(c.Context(), mentorID)
	if err != nil {
		return respondDomainError(c, err)
	}

	return utils.Success(c, fiber.Map{"pending": count})
}

// ListStudentReviews lists a student's verification records. A student
// sees their own; admins see anyone's; mentors see assigned students'.
func (h *ReviewHandler) ListStudentReviews(c *fiber.Ctx) error {
	claims, err := utils.ExtractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	studentID, ok := parseIDParam(c, "id")
	if !ok {
		return utils.BadRequest(c, "invalid student id")
	}

	switch claims.Role {
	case models.RoleAdmin:
	case models.RoleStudent:
		if studentID != claims.UserID {
			return utils.Forbidden(c, "students can only view their own reviews")
		}
	case models.RoleMentor:
		assigned, err := h.registry.IsAssigned(c.Context(), claims.UserID, studentID)
		if err != nil {
			return respondDomainError(c, err)
		}
		if !assigned {
			return utils.Forbidden(c, "you are not assigned to this student")
		}
	default:
		return utils.Forbidden(c, "insufficient role")
	}

	pagination := utils.GetPagination(c, 1, 20)
	filter := query.Filter{
		Status:   c.Query("status"),
		ItemType: c.Query("type"),
	}

	records, total, err := h.query.ListForStudent(c.Context(), studentID, filter, pagination.Limit, pagination.Offset)
	if err != nil {
		return respondDomainError(c, err)
	}

	pagination.SetTotal(total)
	return utils.Success(c, utils.NewPaginatedResponse(records, pagination))
}

// ListMentorReviews lists records across a mentor's assigned students.
func (h *ReviewHandler) ListMentorReviews(c *fiber.Ctx) error {
	claims, err := utils.ExtractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	mentorID, ok := parseIDParam(c, "id")
	if !ok {
		return utils.BadRequest(c, "invalid mentor id")
	}

	if claims.Role != models.RoleAdmin && claims.UserID != mentorID {
		return utils.Forbidden(c, "mentors can only view their own review queue")
	}

	pagination := utils.GetPagination(c, 1, 20)
	filter := query.Filter{
		Status:   c.Query("status"),
		ItemType: c.Query("type"),
	}

	records, total, err := h.query.ListForMentor(c.Context(), mentorID, filter, pagination.Limit, pagination.Offset)
	if err != nil {
		return respondDomainError(c, err)
	}

	pagination.SetTotal(total)
	return utils.Success(c, utils.NewPaginatedResponse(records, pagination))
}

func parseIDParam(c *fiber.Ctx, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
