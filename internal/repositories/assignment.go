package repositories

import (
	"errors"

	"placement/internal/models"

	"gorm.io/gorm"
)

var ErrAssignmentNotFound = errors.New("assignment not found")

type AssignmentRepository interface {
	Create(assignment *models.Assignment) error
	Delete(mentorID, studentID uint) error
	Exists(mentorID, studentID uint) (bool, error)
	StudentIDs(mentorID uint) ([]uint, error)
	MentorIDs(studentID uint) ([]uint, error)
	ListByMentor(mentorID uint) ([]models.Assignment, error)
	ListByStudent(studentID uint) ([]models.Assignment, error)
}

type assignmentRepository struct {
	db *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) AssignmentRepository {
	return &assignmentRepository{db: db}
}

func (r *assignmentRepository) Create(assignment *models.Assignment) error {
	err := r.db.Create(assignment).Error
	if err != nil && isUniqueViolation(err) {
		// Pair already exists; assign is idempotent.
		return nil
	}
	return err
}

func (r *assignmentRepository) Delete(mentorID, studentID uint) error {
	res := r.db.Where("mentor_id = ? AND student_id = ?", mentorID, studentID).
		Delete(&models.Assignment{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrAssignmentNotFound
	}
	return nil
}

func (r *assignmentRepository) Exists(mentorID, studentID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Assignment{}).
		Where("mentor_id = ? AND student_id = ?", mentorID, studentID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *assignmentRepository) StudentIDs(mentorID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.Assignment{}).
		Where("mentor_id = ?", mentorID).
		Pluck("student_id", &ids).Error
	return ids, err
}

func (r *assignmentRepository) MentorIDs(studentID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.Assignment{}).
		Where("student_id = ?", studentID).
		Pluck("mentor_id", &ids).Error
	return ids, err
}

func (r *assignmentRepository) ListByMentor(mentorID uint) ([]models.Assignment, error) {
	var assignments []models.Assignment
	err := r.db.Where("mentor_id = ?", mentorID).Find(&assignments).Error
	return assignments, err
}

func (r *assignmentRepository) ListByStudent(studentID uint) ([]models.Assignment, error) {
	var assignments []models.Assignment
	err := r.db.Where("student_id = ?", studentID).Find(&assignments).Error
	return assignments, err
}
