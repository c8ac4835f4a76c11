// Package workflow orchestrates the verification lifecycle: it checks
// item ownership and reviewer authorization, then delegates transitions
// to the ledger. Authorization is always checked before the ledger is
// touched, so an unauthorized caller can never perturb record state.
package workflow

import (
	"context"
	"errors"

	"placement/internal/apperrors"
	"placement/internal/models"
	"placement/internal/repositories"
	"placement/internal/services/ledger"
)

type Service interface {
	Submit(ctx context.Context, ownerID uint, itemType string, itemID uint) (*models.VerificationRecord, error)
	Decide(ctx context.Context, actorID uint, itemType string, itemID uint, approve bool, feedback string) (*models.VerificationRecord, error)
	Resubmit(ctx context.Context, actorID uint, itemType string, itemID uint) (*models.VerificationRecord, error)
}

type service struct {
	ledger   ledger.Service
	registry Registry
	items    ItemStore
	roles    RoleDirectory
	notifier Notifier
}

func NewService(ledgerService ledger.Service, registry Registry, items ItemStore, roles RoleDirectory, notifier Notifier) Service {
	if ledgerService == nil {
		panic("ledger service is required")
	}
	if registry == nil {
		panic("assignment registry is required")
	}
	if items == nil {
		panic("item store is required")
	}
	if roles == nil {
		panic("role directory is required")
	}
	return &service{
		ledger:   ledgerService,
		registry: registry,
		items:    items,
		roles:    roles,
		notifier: notifier,
	}
}

// Submit opens a verification record for an item the caller owns.
func (s *service) Submit(ctx context.Context, ownerID uint, itemType string, itemID uint) (*models.VerificationRecord, error) {
	realOwner, err := s.lookupOwner(itemType, itemID)
	if err != nil {
		return nil, err
	}
	if realOwner != ownerID {
		return nil, apperrors.ErrNotAuthorized
	}

	return s.ledger.Open(ctx, itemType, itemID, ownerID)
}

// Decide applies a reviewer's verdict. Admins may decide anything;
// mentors only items owned by students assigned to them.
func (s *service) Decide(ctx context.Context, actorID uint, itemType string, itemID uint, approve bool, feedback string) (*models.VerificationRecord, error) {
	ownerID, err := s.lookupOwner(itemType, itemID)
	if err != nil {
		return nil, err
	}

	if err := s.authorizeReviewer(ctx, actorID, ownerID); err != nil {
		return nil, err
	}

	record, err := s.ledger.Get(ctx, itemType, itemID)
	if err != nil {
		return nil, err
	}

	decided, err := s.ledger.Decide(ctx, record.ID, actorID, approve, feedback)
	if err != nil {
		// ConcurrencyConflict passes through unchanged; the caller
		// decides whether to refresh and retry.
		return nil, err
	}

	if s.notifier != nil {
		go s.notifier.OnDecision(context.WithoutCancel(ctx), decided)
	}
	return decided, nil
}

// Resubmit returns a rejected item to the review queue. Only the owner
// may resubmit.
func (s *service) Resubmit(ctx context.Context, actorID uint, itemType string, itemID uint) (*models.VerificationRecord, error) {
	ownerID, err := s.lookupOwner(itemType, itemID)
	if err != nil {
		return nil, err
	}
	if ownerID != actorID {
		return nil, apperrors.ErrNotAuthorized
	}

	record, err := s.ledger.Get(ctx, itemType, itemID)
	if err != nil {
		return nil, err
	}

	return s.ledger.Resubmit(ctx, record.ID, actorID)
}

func (s *service) lookupOwner(itemType string, itemID uint) (uint, error) {
	if !models.IsValidItemType(itemType) {
		return 0, apperrors.Validation("unknown item type")
	}

	ownerID, err := s.items.Exists(itemType, itemID)
	if err != nil {
		if errors.Is(err, repositories.ErrItemNotFound) {
			return 0, apperrors.ErrNotFound
		}
		return 0, apperrors.Internal(err)
	}
	return ownerID, nil
}

func (s *service) authorizeReviewer(ctx context.Context, actorID, ownerID uint) error {
	role, err := s.roles.RoleOf(actorID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrNotAuthorized
		}
		return apperrors.Internal(err)
	}

	switch role {
	case models.RoleAdmin:
		return nil
	case models.RoleMentor:
		assigned, err := s.registry.IsAssigned(ctx, actorID, ownerID)
		if err != nil {
			return err
		}
		if !assigned {
			return apperrors.ErrNotAuthorized
		}
		return nil
	default:
		return apperrors.ErrNotAuthorized
	}
}
