package notification

import (
	"context"
	"log"

	"placement/internal/models"
)

// Service is a minimal notification service implementation.
type Service struct{}

// NewService creates a new notification service.
func NewService() *Service { return &Service{} }

// OnDecision logs a decision notification for the record's owner.
func (s *Service) OnDecision(ctx context.Context, record *models.VerificationRecord) {
	log.Printf("Notify user %d: %s %d is now %s", record.OwnerID, record.ItemType, record.ItemID, record.Status)
}
