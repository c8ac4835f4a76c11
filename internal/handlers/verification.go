package handlers

import (
	"placement/internal/services/ledger"
	"placement/internal/services/workflow"
	"placement/internal/utils"
	"placement/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type VerificationHandler struct {
	workflow workflow.Service
	ledger   ledger.Service
}

func NewVerificationHandler(workflowService workflow.Service, ledgerService ledger.Service) *VerificationHandler {
	return &VerificationHandler{workflow: workflowService, ledger: ledgerService}
}

// SubmitItem opens a verification record for one of the caller's items.
func (h *VerificationHandler) SubmitItem(c *fiber.Ctx) error {
	claims, err := utils.ExtractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	itemType, itemID, ok := parseItemPath(c)
	if !ok {
		return utils.BadRequest(c, "invalid item path")
	}

	record, err := h.workflow.Submit(c.Context(), claims.UserID, itemType, itemID)
	if err != nil {
		return respondDomainError(c, err)
	}

	return utils.Created(c, fiber.Map{"record": record})
}

// DecideItem applies an approve or reject verdict to a pending record.
func (h *VerificationHandler) DecideItem(c *fiber.Ctx) error {
	claims, err := utils.ExtractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	itemType, itemID, ok := parseItemPath(c)
	if !ok {
		return utils.BadRequest(c, "invalid item path")
	}

	var input struct {
		Approve  *bool  `json:"approve"`
		Feedback string `json:"feedback"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}
	if input.Approve == nil {
		return utils.BadRequest(c, "approve is required")
	}

	v := validation.New()
	v.Decision(input.Feedback)
	if !v.Valid() {
		return utils.Respond(c, fiber.StatusBadRequest, fiber.Map{"errors": v.Errors})
	}

	record, err := h.workflow.Decide(c.Context(), claims.UserID, itemType, itemID, *input.Approve, input.Feedback)
	if err != nil {
		return respondDomainError(c, err)
	}

	return utils.Success(c, fiber.Map{"record": record})
}

// ResubmitItem returns a rejected record to the review queue.
func (h *VerificationHandler) ResubmitItem(c *fiber.Ctx) error {
	claims, err := utils.ExtractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	itemType, itemID, ok := parseItemPath(c)
	if !ok {
		return utils.BadRequest(c, "invalid item path")
	}

	record, err := h.workflow.Resubmit(c.Context(), claims.UserID, itemType, itemID)
	if err != nil {
		return respondDomainError(c, err)
	}

	return utils.Success(c, fiber.Map{"record": record})
}

// GetRecord returns a record with its full audit history.
func (h *VerificationHandler) GetRecord(c *fiber.Ctx) error {
	if _, err := utils.ExtractUserClaims(c); err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	itemType, itemID, ok := parseItemPath(c)
	if !ok {
		return utils.BadRequest(c, "invalid item path")
	}

	record, err := h.ledger.Get(c.Context(), itemType, itemID)
	if err != nil {
		return respondDomainError(c, err)
	}

	history, err := h.ledger.History(c.Context(), record.ID)
	if err != nil {
		return respondDomainError(c, err)
	}

	return utils.Success(c, fiber.Map{
		"record":  record,
		"history": history,
	})
}
