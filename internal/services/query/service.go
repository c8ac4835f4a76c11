// Package query serves the read side of the verification workflow:
// pending counts for dashboards and paginated listings per student or
// mentor. It never mutates ledger state, and its reads may lag a
// concurrent decision by design.
package query

import (
	"context"
	"log"
	"time"

	"placement/internal/apperrors"
	"placement/internal/models"
	"placement/internal/repositories"
	"placement/internal/repositories/cache"
)

// pendingCountTTL bounds how stale a cached dashboard count can be.
const pendingCountTTL = 30 * time.Second

// Filter narrows listings; empty fields match everything.
type Filter struct {
	Status   string
	ItemType string
}

type Service interface {
	// PendingCount returns the number of pending records, globally when
	// mentorID is nil, otherwise across the mentor's assigned students.
	PendingCount(ctx context.Context, mentorID *uint) (int64, error)
	ListForStudent(ctx context.Context, studentID uint, filter Filter, limit, offset int) ([]models.VerificationRecord, int64, error)
	ListForMentor(ctx context.Context, mentorID uint, filter Filter, limit, offset int) ([]models.VerificationRecord, int64, error)
}

type service struct {
	records     repositories.VerificationRepository
	assignments repositories.AssignmentRepository
	cache       *cache.CacheService
}

func NewService(records repositories.VerificationRepository, assignments repositories.AssignmentRepository, cacheService *cache.CacheService) Service {
	if records == nil {
		panic("verification repository is required")
	}
	if assignments == nil {
		panic("assignment repository is required")
	}
	return &service{records: records, assignments: assignments, cache: cacheService}
}

func (s *service) PendingCount(ctx context.Context, mentorID *uint) (int64, error) {
	key := "verification:pending:global"
	if mentorID != nil {
		key = s.mentorCountKey(*mentorID)
	}

	if s.cache != nil {
		if count, found, err := s.cache.GetPendingCount(ctx, key); err == nil && found {
			return count, nil
		}
	}

	var ownerIDs []uint
	if mentorID != nil {
		ids, err := s.assignments.StudentIDs(*mentorID)
		if err != nil {
			return 0, apperrors.Internal(err)
		}
		if ids == nil {
			ids = []uint{}
		}
		ownerIDs = ids
	}

	count, err := s.records.CountPending(ownerIDs)
	if err != nil {
		return 0, apperrors.Internal(err)
	}

	if s.cache != nil {
		if err := s.cache.CachePendingCount(ctx, key, count, pendingCountTTL); err != nil {
			log.Printf("failed to cache pending count %s: %v", key, err)
		}
	}
	return count, nil
}

func (s *service) ListForStudent(ctx context.Context, studentID uint, filter Filter, limit, offset int) ([]models.VerificationRecord, int64, error) {
	records, total, err := s.records.ListByOwners([]uint{studentID}, repositories.ListFilter{
		Status:   filter.Status,
		ItemType: filter.ItemType,
	}, limit, offset)
	if err != nil {
		return nil, 0, apperrors.Internal(err)
	}
	return records, total, nil
}

func (s *service) ListForMentor(ctx context.Context, mentorID uint, filter Filter, limit, offset int) ([]models.VerificationRecord, int64, error) {
	studentIDs, err := s.assignments.StudentIDs(mentorID)
	if err != nil {
		return nil, 0, apperrors.Internal(err)
	}
	if studentIDs == nil {
		studentIDs = []uint{}
	}

	records, total, err := s.records.ListByOwners(studentIDs, repositories.ListFilter{
		Status:   filter.Status,
		ItemType: filter.ItemType,
	}, limit, offset)
	if err != nil {
		return nil, 0, apperrors.Internal(err)
	}
	return records, total, nil
}

func (s *service) mentorCountKey(mentorID uint) string {
	if s.cache != nil {
		return s.cache.GenerateKey("verification", "pending:mentor", mentorID)
	}
	return ""
}
