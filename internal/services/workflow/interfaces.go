package workflow

import (
	"context"

	"placement/internal/models"
)

// ItemStore is the engine's view of the artifact tables. Only the
// (type, id, owner) triple matters here; payloads stay with the store.
type ItemStore interface {
	Exists(itemType string, itemID uint) (ownerID uint, err error)
}

// RoleDirectory resolves a user's role for authorization checks.
type RoleDirectory interface {
	RoleOf(userID uint) (string, error)
}

// Registry answers whether a mentor may review a student's items.
type Registry interface {
	IsAssigned(ctx context.Context, mentorID, studentID uint) (bool, error)
}

// Notifier receives fire-and-forget decision notifications. A nil
// notifier disables dispatch.
type Notifier interface {
	OnDecision(ctx context.Context, record *models.VerificationRecord)
}
