package handlers

import (
	"strconv"
	"time"

	"placement/internal/models"
	"placement/internal/repositories"
	"placement/internal/utils"
	"placement/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type ItemHandler struct {
	items repositories.ItemRepository
}

func NewItemHandler(items repositories.ItemRepository) *ItemHandler {
	return &ItemHandler{items: items}
}

// itemInput covers the union of artifact fields; each type picks the
// ones it cares about.
type itemInput struct {
	Title       string      `json:"title"`
	Institution string      `json:"institution"`
	Grade       string      `json:"grade"`
	Subject     string      `json:"subject"`
	DurationM   int         `json:"duration_minutes"`
	Description string      `json:"description"`
	Framework   string      `json:"framework"`
	Level       string      `json:"level"`
	FileURL     string      `json:"file_url"`
	MimeType    string      `json:"mime_type"`
	AwardedAt   *time.Time  `json:"awarded_at"`
	HeldAt      *time.Time  `json:"held_at"`
	OccurredAt  *time.Time  `json:"occurred_at"`
	Metadata    models.JSON `json:"metadata"`
}

func (h *ItemHandler) CreateItem(c *fiber.Ctx) error {
	claims, err := utils.ExtractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	itemType := c.Params("type")

	var input itemInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	v := validation.New()
	v.ItemType(itemType)
	v.Required("title", input.Title)
	v.MaxLength("title", input.Title, validation.MaxTitleLength)
	if !v.Valid() {
		return utils.Respond(c, fiber.StatusBadRequest, fiber.Map{"errors": v.Errors})
	}

	item := buildItem(itemType, claims.UserID, input)
	if err := h.items.Create(item); err != nil {
		return utils.InternalError(c, "failed to create item")
	}

	return utils.Created(c, fiber.Map{"item": item})
}

func (h *ItemHandler) GetItem(c *fiber.Ctx) error {
	claims, err := utils.ExtractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	itemType, itemID, ok := parseItemPath(c)
	if !ok {
		return utils.BadRequest(c, "invalid item path")
	}

	ownerID, err := h.items.Exists(itemType, itemID)
	if err != nil {
		return utils.NotFound(c, "item not found")
	}

	// Students see only their own artifacts; reviewers see everything.
	if claims.Role == models.RoleStudent && ownerID != claims.UserID {
		return utils.Forbidden(c, "you do not own this item")
	}

	item, err := h.items.Get(itemType, itemID)
	if err != nil {
		return utils.NotFound(c, "item not found")
	}

	return utils.Success(c, fiber.Map{"item": item})
}

func (h *ItemHandler) ListOwnItems(c *fiber.Ctx) error {
	claims, err := utils.ExtractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	itemType := c.Query("type", models.ItemQualification)

	v := validation.New()
	v.ItemType(itemType)
	if !v.Valid() {
		return utils.Respond(c, fiber.StatusBadRequest, fiber.Map{"errors": v.Errors})
	}

	items, err := h.items.ListByOwner(itemType, claims.UserID)
	if err != nil {
		return utils.InternalError(c, "failed to list items")
	}

	return utils.Success(c, fiber.Map{"items": items})
}

func buildItem(itemType string, ownerID uint, input itemInput) interface{} {
	switch itemType {
	case models.ItemQualification:
		return &models.Qualification{
			OwnerID:     ownerID,
			Title:       input.Title,
			Institution: input.Institution,
			AwardedAt:   input.AwardedAt,
			Grade:       input.Grade,
			Metadata:    input.Metadata,
		}
	case models.ItemSession:
		return &models.TeachingSession{
			OwnerID:   ownerID,
			Title:     input.Title,
			Subject:   input.Subject,
			HeldAt:    input.HeldAt,
			DurationM: input.DurationM,
			Metadata:  input.Metadata,
		}
	case models.ItemActivity:
		return &models.Activity{
			OwnerID:     ownerID,
			Title:       input.Title,
			Description: input.Description,
			OccurredAt:  input.OccurredAt,
			Metadata:    input.Metadata,
		}
	case models.ItemCompetencyClaim:
		return &models.CompetencyClaim{
			OwnerID:   ownerID,
			Title:     input.Title,
			Framework: input.Framework,
			Level:     input.Level,
			Metadata:  input.Metadata,
		}
	default:
		return &models.ProfileDocument{
			OwnerID:  ownerID,
			Title:    input.Title,
			FileURL:  input.FileURL,
			MimeType: input.MimeType,
			Metadata: input.Metadata,
		}
	}
}

func parseItemPath(c *fiber.Ctx) (string, uint, bool) {
	itemType := c.Params("type")
	if !models.IsValidItemType(itemType) {
		return "", 0, false
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return "", 0, false
	}
	return itemType, uint(id), true
}
