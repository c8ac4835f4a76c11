// Package assignment is the registry of mentor-student pairings that
// gate review authorization.
package assignment

import (
	"context"
	"errors"

	"placement/internal/apperrors"
	"placement/internal/models"
	"placement/internal/repositories"
	"placement/internal/validation"
)

type Service interface {
	Assign(ctx context.Context, mentorID, studentID, createdByID uint) error
	Unassign(ctx context.Context, mentorID, studentID uint) error
	IsAssigned(ctx context.Context, mentorID, studentID uint) (bool, error)
	StudentsOf(ctx context.Context, mentorID uint) ([]uint, error)
	MentorsOf(ctx context.Context, studentID uint) ([]uint, error)
	ListByMentor(ctx context.Context, mentorID uint) ([]models.Assignment, error)
	ListByStudent(ctx context.Context, studentID uint) ([]models.Assignment, error)
}

type service struct {
	repo     repositories.AssignmentRepository
	userRepo repositories.UserRepository
}

func NewService(repo repositories.AssignmentRepository, userRepo repositories.UserRepository) Service {
	if repo == nil {
		panic("assignment repository is required")
	}
	if userRepo == nil {
		panic("user repository is required")
	}
	return &service{repo: repo, userRepo: userRepo}
}

// Assign creates the pairing if absent. Creating an existing pairing is
// a no-op, not an error.
func (s *service) Assign(ctx context.Context, mentorID, studentID, createdByID uint) error {
	v := validation.New()
	v.Assignment(mentorID, studentID)
	if !v.Valid() {
		return apperrors.Validation(firstError(v))
	}

	if err := s.requireRole(mentorID, models.RoleMentor); err != nil {
		return err
	}
	if err := s.requireRole(studentID, models.RoleStudent); err != nil {
		return err
	}

	assignment := &models.Assignment{
		MentorID:    mentorID,
		StudentID:   studentID,
		CreatedByID: createdByID,
	}
	if err := s.repo.Create(assignment); err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

// Unassign removes the pairing. Decisions the mentor already made stay
// valid; removing the pairing only stops future reviews.
func (s *service) Unassign(ctx context.Context, mentorID, studentID uint) error {
	err := s.repo.Delete(mentorID, studentID)
	if errors.Is(err, repositories.ErrAssignmentNotFound) {
		return apperrors.ErrNotFound
	}
	if err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

func (s *service) IsAssigned(ctx context.Context, mentorID, studentID uint) (bool, error) {
	assigned, err := s.repo.Exists(mentorID, studentID)
	if err != nil {
		return false, apperrors.Internal(err)
	}
	return assigned, nil
}

func (s *service) StudentsOf(ctx context.Context, mentorID uint) ([]uint, error) {
	ids, err := s.repo.StudentIDs(mentorID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return ids, nil
}

func (s *service) MentorsOf(ctx context.Context, studentID uint) ([]uint, error) {
	ids, err := s.repo.MentorIDs(studentID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return ids, nil
}

func (s *service) ListByMentor(ctx context.Context, mentorID uint) ([]models.Assignment, error) {
	assignments, err := s.repo.ListByMentor(mentorID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return assignments, nil
}

func (s *service) ListByStudent(ctx context.Context, studentID uint) ([]models.Assignment, error) {
	assignments, err := s.repo.ListByStudent(studentID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return assignments, nil
}

func (s *service) requireRole(userID uint, role string) error {
	user, err := s.userRepo.GetByID(userID)
	if errors.Is(err, repositories.ErrUserNotFound) {
		return apperrors.ErrNotFound
	}
	if err != nil {
		return apperrors.Internal(err)
	}
	if user.Role != role {
		return apperrors.Validation("user " + user.Name + " does not have role " + role)
	}
	return nil
}

func firstError(v *validation.Validator) string {
	for _, msg := range v.Errors {
		return msg
	}
	return "invalid input"
}
