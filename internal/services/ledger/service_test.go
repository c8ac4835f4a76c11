package ledger

import (
	"context"
	"testing"
	"time"

	"placement/internal/apperrors"
	"placement/internal/models"
	"placement/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockVerificationRepo struct {
	mock.Mock
}

func (m *MockVerificationRepo) Create(record *models.VerificationRecord, event *models.VerificationEvent) error {
	args := m.Called(record, event)
	return args.Error(0)
}

func (m *MockVerificationRepo) FindByID(id uint) (*models.VerificationRecord, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VerificationRecord), args.Error(1)
}

func (m *MockVerificationRepo) FindByItem(itemType string, itemID uint) (*models.VerificationRecord, error) {
	args := m.Called(itemType, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VerificationRecord), args.Error(1)
}

func (m *MockVerificationRepo) FindEvents(recordID uint) ([]models.VerificationEvent, error) {
	args := m.Called(recordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.VerificationEvent), args.Error(1)
}

func (m *MockVerificationRepo) UpdateWithVersion(recordID uint, expectedVersion uint64, updates map[string]interface{}, event *models.VerificationEvent) error {
	args := m.Called(recordID, expectedVersion, updates, event)
	return args.Error(0)
}

func (m *MockVerificationRepo) CountPending(ownerIDs []uint) (int64, error) {
	args := m.Called(ownerIDs)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockVerificationRepo) ListByOwners(ownerIDs []uint, filter repositories.ListFilter, limit, offset int) ([]models.VerificationRecord, int64, error) {
	args := m.Called(ownerIDs, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.VerificationRecord), args.Get(1).(int64), args.Error(2)
}

func pendingRecord(id uint, version uint64) *models.VerificationRecord {
	rec := &models.VerificationRecord{
		Reference:   "ref",
		ItemType:    models.ItemQualification,
		ItemID:      123,
		OwnerID:     7,
		Status:      models.StatusPending,
		Version:     version,
		SubmittedAt: time.Now(),
	}
	rec.ID = id
	return rec
}

func TestLedger_Open(t *testing.T) {
	t.Run("creates a pending record with a creation event", func(t *testing.T) {
		repo := new(MockVerificationRepo)
		repo.On("Create", mock.Anything, mock.Anything).Return(nil)

		s := NewService(repo, nil)
		record, err := s.Open(context.Background(), models.ItemQualification, 123, 7)

		assert.NoError(t, err)
		assert.Equal(t, models.StatusPending, record.Status)
		assert.EqualValues(t, 0, record.Version)
		assert.NotEmpty(t, record.Reference)
		assert.Nil(t, record.VerifierID)

		event := repo.Calls[0].Arguments.Get(1).(*models.VerificationEvent)
		assert.Equal(t, "", event.FromStatus)
		assert.Equal(t, models.StatusPending, event.ToStatus)
		assert.Equal(t, uint(7), event.ActorID)
		repo.AssertExpectations(t)
	})

	t.Run("double submit fails with already open", func(t *testing.T) {
		repo := new(MockVerificationRepo)
		repo.On("Create", mock.Anything, mock.Anything).Return(repositories.ErrDuplicateRecord)

		s := NewService(repo, nil)
		_, err := s.Open(context.Background(), models.ItemQualification, 123, 7)

		assert.ErrorIs(t, err, apperrors.ErrAlreadyOpen)
	})

	t.Run("unknown item type is rejected", func(t *testing.T) {
		repo := new(MockVerificationRepo)

		s := NewService(repo, nil)
		_, err := s.Open(context.Background(), "diploma", 123, 7)

		assert.ErrorIs(t, err, apperrors.ErrValidation)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestLedger_Decide(t *testing.T) {
	tests := []struct {
		name      string
		record    *models.VerificationRecord
		updateErr error
		wantErr   error
	}{
		{
			name:   "approve pending record",
			record: pendingRecord(1, 0),
		},
		{
			name: "decide on verified record fails",
			record: func() *models.VerificationRecord {
				r := pendingRecord(1, 1)
				r.Status = models.StatusVerified
				return r
			}(),
			wantErr: apperrors.ErrInvalidTransition,
		},
		{
			name: "decide on rejected record fails",
			record: func() *models.VerificationRecord {
				r := pendingRecord(1, 1)
				r.Status = models.StatusRejected
				return r
			}(),
			wantErr: apperrors.ErrInvalidTransition,
		},
		{
			name:      "lost race surfaces concurrency conflict",
			record:    pendingRecord(1, 0),
			updateErr: repositories.ErrVersionConflict,
			wantErr:   apperrors.ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockVerificationRepo)
			repo.On("FindByID", uint(1)).Return(tt.record, nil).Once()

			if tt.record.Status == models.StatusPending {
				repo.On("UpdateWithVersion", uint(1), tt.record.Version, mock.Anything, mock.Anything).
					Return(tt.updateErr).Once()
				if tt.updateErr == nil {
					decided := pendingRecord(1, 1)
					decided.Status = models.StatusVerified
					verifier := uint(9)
					decided.VerifierID = &verifier
					repo.On("FindByID", uint(1)).Return(decided, nil).Once()
				}
			}

			s := NewService(repo, nil)
			record, err := s.Decide(context.Background(), 1, 9, true, "looks good")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, models.StatusVerified, record.Status)
				assert.EqualValues(t, 1, record.Version)
			}
			repo.AssertExpectations(t)

			if tt.record.Status != models.StatusPending {
				repo.AssertNotCalled(t, "UpdateWithVersion", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}

	t.Run("reject without feedback stores null", func(t *testing.T) {
		repo := new(MockVerificationRepo)
		repo.On("FindByID", uint(1)).Return(pendingRecord(1, 0), nil).Once()
		repo.On("UpdateWithVersion", uint(1), uint64(0), mock.Anything, mock.Anything).Return(nil).Once()
		rejected := pendingRecord(1, 1)
		rejected.Status = models.StatusRejected
		repo.On("FindByID", uint(1)).Return(rejected, nil).Once()

		s := NewService(repo, nil)
		_, err := s.Decide(context.Background(), 1, 9, false, "")

		assert.NoError(t, err)
		updates := repo.Calls[1].Arguments.Get(2).(map[string]interface{})
		assert.Equal(t, models.StatusRejected, updates["status"])
		assert.Nil(t, updates["feedback"])
	})
}

func TestLedger_Resubmit(t *testing.T) {
	tests := []struct {
		name    string
		status  string
		wantErr error
	}{
		{name: "rejected record returns to pending", status: models.StatusRejected},
		{name: "pending record has nothing to resubmit", status: models.StatusPending, wantErr: apperrors.ErrInvalidTransition},
		{name: "verified is terminal", status: models.StatusVerified, wantErr: apperrors.ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := pendingRecord(4, 2)
			record.Status = tt.status

			repo := new(MockVerificationRepo)
			repo.On("FindByID", uint(4)).Return(record, nil).Once()

			if tt.status == models.StatusRejected {
				repo.On("UpdateWithVersion", uint(4), uint64(2), mock.Anything, mock.Anything).Return(nil).Once()
				reopened := pendingRecord(4, 3)
				repo.On("FindByID", uint(4)).Return(reopened, nil).Once()
			}

			s := NewService(repo, nil)
			reopened, err := s.Resubmit(context.Background(), 4, 7)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				repo.AssertNotCalled(t, "UpdateWithVersion", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, models.StatusPending, reopened.Status)

				updates := repo.Calls[1].Arguments.Get(2).(map[string]interface{})
				assert.Nil(t, updates["verifier_id"])
				assert.Nil(t, updates["feedback"])
			}
		})
	}
}

// memRepo is an in-memory VerificationRepository for exercising full
// lifecycles without mock choreography.
type memRepo struct {
	records map[uint]*models.VerificationRecord
	events  []models.VerificationEvent
	nextID  uint
}

func newMemRepo() *memRepo {
	return &memRepo{records: make(map[uint]*models.VerificationRecord), nextID: 1}
}

func (r *memRepo) Create(record *models.VerificationRecord, event *models.VerificationEvent) error {
	for _, existing := range r.records {
		if existing.ItemType == record.ItemType && existing.ItemID == record.ItemID {
			return repositories.ErrDuplicateRecord
		}
	}
	record.ID = r.nextID
	r.nextID++
	r.records[record.ID] = record

	event.RecordID = record.ID
	r.events = append(r.events, *event)
	return nil
}

func (r *memRepo) FindByID(id uint) (*models.VerificationRecord, error) {
	record, ok := r.records[id]
	if !ok {
		return nil, repositories.ErrRecordNotFound
	}
	copied := *record
	return &copied, nil
}

func (r *memRepo) FindByItem(itemType string, itemID uint) (*models.VerificationRecord, error) {
	for _, record := range r.records {
		if record.ItemType == itemType && record.ItemID == itemID {
			copied := *record
			return &copied, nil
		}
	}
	return nil, repositories.ErrRecordNotFound
}

func (r *memRepo) FindEvents(recordID uint) ([]models.VerificationEvent, error) {
	var events []models.VerificationEvent
	for _, event := range r.events {
		if event.RecordID == recordID {
			events = append(events, event)
		}
	}
	return events, nil
}

func (r *memRepo) UpdateWithVersion(recordID uint, expectedVersion uint64, updates map[string]interface{}, event *models.VerificationEvent) error {
	record, ok := r.records[recordID]
	if !ok {
		return repositories.ErrRecordNotFound
	}
	if record.Version != expectedVersion {
		return repositories.ErrVersionConflict
	}

	record.Version = expectedVersion + 1
	record.Status = updates["status"].(string)
	if v, ok := updates["verifier_id"].(uint); ok {
		record.VerifierID = &v
	} else {
		record.VerifierID = nil
	}
	if fb, ok := updates["feedback"].(*string); ok {
		record.Feedback = fb
	} else {
		record.Feedback = nil
	}

	event.RecordID = recordID
	r.events = append(r.events, *event)
	return nil
}

func (r *memRepo) CountPending(ownerIDs []uint) (int64, error) {
	var count int64
	for _, record := range r.records {
		if record.Status == models.StatusPending {
			count++
		}
	}
	return count, nil
}

func (r *memRepo) ListByOwners(ownerIDs []uint, filter repositories.ListFilter, limit, offset int) ([]models.VerificationRecord, int64, error) {
	var records []models.VerificationRecord
	for _, record := range r.records {
		records = append(records, *record)
	}
	return records, int64(len(records)), nil
}

// TestLedger_Lifecycle walks one record through submit, reject,
// resubmit and approve, checking the audit trail end to end.
func TestLedger_Lifecycle(t *testing.T) {
	const (
		owner  = uint(7)
		mentor = uint(20)
	)

	s := NewService(newMemRepo(), nil)
	ctx := context.Background()

	record, err := s.Open(ctx, models.ItemSession, 55, owner)
	assert.NoError(t, err)
	assert.EqualValues(t, 0, record.Version)

	// A second submit while the record is open must fail.
	_, err = s.Open(ctx, models.ItemSession, 55, owner)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyOpen)

	rejected, err := s.Decide(ctx, record.ID, mentor, false, "needs more detail")
	assert.NoError(t, err)
	assert.Equal(t, models.StatusRejected, rejected.Status)
	assert.EqualValues(t, 1, rejected.Version)
	if assert.NotNil(t, rejected.Feedback) {
		assert.Equal(t, "needs more detail", *rejected.Feedback)
	}

	reopened, err := s.Resubmit(ctx, record.ID, owner)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusPending, reopened.Status)
	assert.EqualValues(t, 2, reopened.Version)
	assert.Nil(t, reopened.VerifierID)
	assert.Nil(t, reopened.Feedback)

	verified, err := s.Decide(ctx, record.ID, mentor, true, "")
	assert.NoError(t, err)
	assert.Equal(t, models.StatusVerified, verified.Status)
	assert.EqualValues(t, 3, verified.Version)

	// Verified is terminal.
	_, err = s.Decide(ctx, record.ID, mentor, false, "")
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
	_, err = s.Resubmit(ctx, record.ID, owner)
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)

	history, err := s.History(ctx, record.ID)
	assert.NoError(t, err)
	if assert.Len(t, history, 4) {
		assert.Equal(t, "", history[0].FromStatus)
		assert.Equal(t, models.StatusPending, history[0].ToStatus)
		assert.Equal(t, models.StatusRejected, history[1].ToStatus)
		assert.Equal(t, models.StatusPending, history[2].ToStatus)
		assert.Equal(t, models.StatusVerified, history[3].ToStatus)
	}
}

// TestLedger_ConcurrentDeciders races two reviewers over the same
// pending record; exactly one verdict must win.
func TestLedger_ConcurrentDeciders(t *testing.T) {
	s := NewService(newMemRepo(), nil)
	ctx := context.Background()

	record, err := s.Open(ctx, models.ItemActivity, 9, 7)
	assert.NoError(t, err)

	_, firstErr := s.Decide(ctx, record.ID, 20, true, "")
	_, secondErr := s.Decide(ctx, record.ID, 21, false, "no")

	assert.NoError(t, firstErr)
	assert.ErrorIs(t, secondErr, apperrors.ErrInvalidTransition)

	// Same race, but the loser read the record before the winner wrote:
	// that surfaces as a version conflict instead.
	repo := newMemRepo()
	s2 := NewService(repo, nil)
	record2, err := s2.Open(ctx, models.ItemActivity, 10, 7)
	assert.NoError(t, err)

	stale := record2.Version
	_, err = s2.Decide(ctx, record2.ID, 20, true, "")
	assert.NoError(t, err)

	err = repo.UpdateWithVersion(record2.ID, stale, map[string]interface{}{
		"status":      models.StatusRejected,
		"verifier_id": uint(21),
	}, &models.VerificationEvent{ActorID: 21})
	assert.ErrorIs(t, err, repositories.ErrVersionConflict)
}

func TestLedger_Get(t *testing.T) {
	t.Run("missing record", func(t *testing.T) {
		repo := new(MockVerificationRepo)
		repo.On("FindByItem", models.ItemSession, uint(5)).Return(nil, repositories.ErrRecordNotFound)

		s := NewService(repo, nil)
		_, err := s.Get(context.Background(), models.ItemSession, 5)

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}
