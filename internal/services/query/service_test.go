package query

import (
	"context"
	"testing"

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

type MockAssignmentRepo struct {
	mock.Mock
}

func (m *MockAssignmentRepo) Create(assignment *models.Assignment) error {
	args := m.Called(assignment)
	return args.Error(0)
}

func (m *MockAssignmentRepo) Delete(mentorID, studentID uint) error {
	args := m.Called(mentorID, studentID)
	return args.Error(0)
}

func (m *MockAssignmentRepo) Exists(mentorID, studentID uint) (bool, error) {
	args := m.Called(mentorID, studentID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAssignmentRepo) StudentIDs(mentorID uint) ([]uint, error) {
	args := m.Called(mentorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint), args.Error(1)
}

func (m *MockAssignmentRepo) MentorIDs(studentID uint) ([]uint, error) {
	args := m.Called(studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint), args.Error(1)
}

func (m *MockAssignmentRepo) ListByMentor(mentorID uint) ([]models.Assignment, error) {
	args := m.Called(mentorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Assignment), args.Error(1)
}

func (m *MockAssignmentRepo) ListByStudent(studentID uint) ([]models.Assignment, error) {
	args := m.Called(studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Assignment), args.Error(1)
}

func TestPendingCount(t *testing.T) {
	t.Run("global count when no mentor given", func(t *testing.T) {
		records := new(MockVerificationRepo)
		records.On("CountPending", []uint(nil)).Return(int64(12), nil)

		s := NewService(records, new(MockAssignmentRepo), nil)
		count, err := s.PendingCount(context.Background(), nil)

		assert.NoError(t, err)
		assert.EqualValues(t, 12, count)
	})

	t.Run("mentor count spans assigned students", func(t *testing.T) {
		assignments := new(MockAssignmentRepo)
		assignments.On("StudentIDs", uint(20)).Return([]uint{7, 8}, nil)

		records := new(MockVerificationRepo)
		records.On("CountPending", []uint{7, 8}).Return(int64(3), nil)

		s := NewService(records, assignments, nil)
		mentorID := uint(20)
		count, err := s.PendingCount(context.Background(), &mentorID)

		assert.NoError(t, err)
		assert.EqualValues(t, 3, count)
	})

	t.Run("mentor with no students counts zero, not global", func(t *testing.T) {
		assignments := new(MockAssignmentRepo)
		assignments.On("StudentIDs", uint(21)).Return(nil, nil)

		records := new(MockVerificationRepo)
		records.On("CountPending", []uint{}).Return(int64(0), nil)

		s := NewService(records, assignments, nil)
		mentorID := uint(21)
		count, err := s.PendingCount(context.Background(), &mentorID)

		assert.NoError(t, err)
		assert.Zero(t, count)
		records.AssertCalled(t, "CountPending", []uint{})
	})
}

func TestListForStudent(t *testing.T) {
	records := new(MockVerificationRepo)
	filter := repositories.ListFilter{Status: models.StatusPending, ItemType: models.ItemSession}
	records.On("ListByOwners", []uint{7}, filter, 10, 0).
		Return([]models.VerificationRecord{{OwnerID: 7}}, int64(1), nil)

	s := NewService(records, new(MockAssignmentRepo), nil)
	got, total, err := s.ListForStudent(context.Background(), 7, Filter{
		Status:   models.StatusPending,
		ItemType: models.ItemSession,
	}, 10, 0)

	assert.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Len(t, got, 1)
}

func TestListForMentor(t *testing.T) {
	t.Run("lists records of assigned students only", func(t *testing.T) {
		assignments := new(MockAssignmentRepo)
		assignments.On("StudentIDs", uint(20)).Return([]uint{7, 8}, nil)

		records := new(MockVerificationRepo)
		records.On("ListByOwners", []uint{7, 8}, repositories.ListFilter{}, 25, 0).
			Return([]models.VerificationRecord{{OwnerID: 7}, {OwnerID: 8}}, int64(2), nil)

		s := NewService(records, assignments, nil)
		got, total, err := s.ListForMentor(context.Background(), 20, Filter{}, 25, 0)

		assert.NoError(t, err)
		assert.EqualValues(t, 2, total)
		assert.Len(t, got, 2)
	})

	t.Run("page beyond the last record is empty, not an error", func(t *testing.T) {
		assignments := new(MockAssignmentRepo)
		assignments.On("StudentIDs", uint(20)).Return([]uint{7}, nil)

		records := new(MockVerificationRepo)
		records.On("ListByOwners", []uint{7}, repositories.ListFilter{}, 25, 500).
			Return([]models.VerificationRecord{}, int64(2), nil)

		s := NewService(records, assignments, nil)
		got, total, err := s.ListForMentor(context.Background(), 20, Filter{}, 25, 500)

		assert.NoError(t, err)
		assert.Empty(t, got)
		assert.EqualValues(t, 2, total)
	})

	t.Run("mentor with no students sees nothing", func(t *testing.T) {
		assignments := new(MockAssignmentRepo)
		assignments.On("StudentIDs", uint(21)).Return(nil, nil)

		records := new(MockVerificationRepo)
		records.On("ListByOwners", []uint{}, repositories.ListFilter{}, 25, 0).
			Return([]models.VerificationRecord{}, int64(0), nil)

		s := NewService(records, assignments, nil)
		got, total, err := s.ListForMentor(context.Background(), 21, Filter{}, 25, 0)

		assert.NoError(t, err)
		assert.Empty(t, got)
		assert.Zero(t, total)
	})
}
