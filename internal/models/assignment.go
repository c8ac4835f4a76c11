package models

import (
	"gorm.io/gorm"
)

// Assignment links a mentor to a student they may review.
// A student can have several mentors and a mentor several students;
// the composite index keeps each pairing unique.
type Assignment struct {
	gorm.Model
	MentorID    uint `gorm:"not null;uniqueIndex:idx_mentor_student"`
	StudentID   uint `gorm:"not null;uniqueIndex:idx_mentor_student"`
	CreatedByID uint `gorm:"not null"`
}
