// Package ledger owns the verification state machine. It is the single
// place transitions are enforced:
//
//	(none) --open--> pending --approve--> verified   (terminal)
//	                 pending --reject---> rejected --resubmit--> pending
//
// Every transition bumps the record version; concurrent writers
// compare-and-swap against the version they read and the loser gets
// a conflict instead of silently overwriting the winner.
package ledger

import (
	"context"
	"errors"
	"log"
	"time"

	"placement/internal/apperrors"
	"placement/internal/models"
	"placement/internal/repositories"
	"placement/internal/repositories/cache"

	"github.com/google/uuid"
)

type Service interface {
	Open(ctx context.Context, itemType string, itemID, ownerID uint) (*models.VerificationRecord, error)
	Decide(ctx context.Context, recordID, actorID uint, approve bool, feedback string) (*models.VerificationRecord, error)
	Resubmit(ctx context.Context, recordID, actorID uint) (*models.VerificationRecord, error)
	Get(ctx context.Context, itemType string, itemID uint) (*models.VerificationRecord, error)
	History(ctx context.Context, recordID uint) ([]models.VerificationEvent, error)
}

type service struct {
	repo  repositories.VerificationRepository
	cache *cache.CacheService
}

// NewService creates a new ledger service. The cache is optional; a nil
// cache turns record caching off.
func NewService(repo repositories.VerificationRepository, cacheService *cache.CacheService) Service {
	if repo == nil {
		panic("verification repository is required")
	}
	return &service{repo: repo, cache: cacheService}
}

func (s *service) Open(ctx context.Context, itemType string, itemID, ownerID uint) (*models.VerificationRecord, error) {
	if !models.IsValidItemType(itemType) {
		return nil, apperrors.Validation("unknown item type")
	}

	record := &models.VerificationRecord{
		Reference:   uuid.NewString(),
		ItemType:    itemType,
		ItemID:      itemID,
		OwnerID:     ownerID,
		Status:      models.StatusPending,
		Version:     0,
		SubmittedAt: time.Now().UTC(),
	}
	event := &models.VerificationEvent{
		ActorID:    ownerID,
		FromStatus: "",
		ToStatus:   models.StatusPending,
	}

	if err := s.repo.Create(record, event); err != nil {
		if errors.Is(err, repositories.ErrDuplicateRecord) {
			return nil, apperrors.ErrAlreadyOpen
		}
		return nil, apperrors.Internal(err)
	}

	s.cacheRecord(ctx, record)
	return record, nil
}

func (s *service) Decide(ctx context.Context, recordID, actorID uint, approve bool, feedback string) (*models.VerificationRecord, error) {
	record, err := s.repo.FindByID(recordID)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Internal(err)
	}

	if record.Status != models.StatusPending {
		return nil, apperrors.ErrInvalidTransition
	}

	newStatus := models.StatusRejected
	if approve {
		newStatus = models.StatusVerified
	}

	fb := nullableFeedback(feedback)
	updates := map[string]interface{}{
		"status":      newStatus,
		"verifier_id": actorID,
		"feedback":    fb,
	}
	event := &models.VerificationEvent{
		ActorID:    actorID,
		FromStatus: models.StatusPending,
		ToStatus:   newStatus,
		Feedback:   fb,
	}

	if err := s.repo.UpdateWithVersion(record.ID, record.Version, updates, event); err != nil {
		return nil, s.translateUpdateErr(err)
	}

	s.invalidateRecord(ctx, record.ItemType, record.ItemID)
	return s.reload(ctx, record.ID)
}

func (s *service) Resubmit(ctx context.Context, recordID, actorID uint) (*models.VerificationRecord, error) {
	record, err := s.repo.FindByID(recordID)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Internal(err)
	}

	// Only rejected records can come back; verified is terminal and a
	// pending record has nothing to resubmit.
	if record.Status != models.StatusRejected {
		return nil, apperrors.ErrInvalidTransition
	}

	updates := map[string]interface{}{
		"status":      models.StatusPending,
		"verifier_id": nil,
		"feedback":    nil,
	}
	event := &models.VerificationEvent{
		ActorID:    actorID,
		FromStatus: models.StatusRejected,
		ToStatus:   models.StatusPending,
	}

	if err := s.repo.UpdateWithVersion(record.ID, record.Version, updates, event); err != nil {
		return nil, s.translateUpdateErr(err)
	}

	s.invalidateRecord(ctx, record.ItemType, record.ItemID)
	return s.reload(ctx, record.ID)
}

func (s *service) Get(ctx context.Context, itemType string, itemID uint) (*models.VerificationRecord, error) {
	if s.cache != nil {
		if record, err := s.cache.GetRecord(ctx, itemType, itemID); err == nil && record != nil {
			return record, nil
		}
	}

	record, err := s.repo.FindByItem(itemType, itemID)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Internal(err)
	}

	s.cacheRecord(ctx, record)
	return record, nil
}

func (s *service) History(ctx context.Context, recordID uint) ([]models.VerificationEvent, error) {
	events, err := s.repo.FindEvents(recordID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if len(events) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return events, nil
}

func (s *service) translateUpdateErr(err error) error {
	switch {
	case errors.Is(err, repositories.ErrVersionConflict):
		return apperrors.ErrConflict
	case errors.Is(err, repositories.ErrRecordNotFound):
		return apperrors.ErrNotFound
	default:
		return apperrors.Internal(err)
	}
}

func (s *service) reload(ctx context.Context, recordID uint) (*models.VerificationRecord, error) {
	record, err := s.repo.FindByID(recordID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	s.cacheRecord(ctx, record)
	return record, nil
}

func (s *service) cacheRecord(ctx context.Context, record *models.VerificationRecord) {
	if s.cache == nil {
		return
	}
	if err := s.cache.CacheRecord(ctx, record); err != nil {
		log.Printf("failed to cache record %d: %v", record.ID, err)
	}
}

func (s *service) invalidateRecord(ctx context.Context, itemType string, itemID uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateRecord(ctx, itemType, itemID); err != nil {
		log.Printf("failed to invalidate record cache %s/%d: %v", itemType, itemID, err)
	}
}

func nullableFeedback(feedback string) *string {
	if feedback == "" {
		return nil
	}
	return &feedback
}
