package user

import (
	"errors"

	"placement/internal/apperrors"
	"placement/internal/models"
	"placement/internal/repositories"
	"placement/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

type Service interface {
	Register(email, password, name, role string) (*models.User, error)
	GetByID(id uint) (*models.User, error)
	// RoleOf implements the workflow engine's role directory.
	RoleOf(userID uint) (string, error)
	ListPaginated(limit, offset int) ([]models.User, int64, error)
}

type service struct {
	repo repositories.UserRepository
}

func NewService(repo repositories.UserRepository) Service {
	return &service{repo: repo}
}

func (s *service) Register(email, password, name, role string) (*models.User, error) {
	v := validation.New()
	v.Registration(email, password, name, role)
	if !v.Valid() {
		for _, msg := range v.Errors {
			return nil, apperrors.Validation(msg)
		}
	}

	// Admin accounts come from the seed command, never self-registration.
	if role == models.RoleAdmin {
		return nil, apperrors.Validation("cannot self-register as admin")
	}

	if _, err := s.repo.GetByEmail(email); err == nil {
		return nil, apperrors.Validation("email already registered")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	user := &models.User{
		Email:        email,
		Password:     string(hashedPassword),
		Name:         name,
		Role:         role,
		TokenVersion: 1,
	}
	if err := s.repo.Create(user); err != nil {
		return nil, apperrors.Internal(err)
	}
	return user, nil
}

func (s *service) GetByID(id uint) (*models.User, error) {
	user, err := s.repo.GetByID(id)
	if errors.Is(err, repositories.ErrUserNotFound) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return user, nil
}

func (s *service) RoleOf(userID uint) (string, error) {
	user, err := s.repo.GetByID(userID)
	if err != nil {
		return "", err
	}
	return user.Role, nil
}

func (s *service) ListPaginated(limit, offset int) ([]models.User, int64, error) {
	users, total, err := s.repo.ListPaginated(limit, offset)
	if err != nil {
		return nil, 0, apperrors.Internal(err)
	}
	return users, total, err
}
