package models

import (
	"time"

	"gorm.io/gorm"
)

// User roles
const (
	RoleAdmin   = "admin"
	RoleMentor  = "mentor"
	RoleStudent = "student"
)

type User struct {
	gorm.Model
	Email               string `gorm:"uniqueIndex;not null"` // Unique index on Email
	Password            string `gorm:"not null"`
	Name                string `gorm:"not null"`
	Role                string `gorm:"default:'student'"`
	Status              string `gorm:"default:'active'"`
	LastLoginAt         time.Time
	LastLoginIP         string
	FailedLoginAttempts int `gorm:"default:0"`
	AccountLockoutUntil *time.Time
	TokenVersion        int `gorm:"default:1"`
}

// IsValidRole reports whether role is one of the three known roles.
func IsValidRole(role string) bool {
	return role == RoleAdmin || role == RoleMentor || role == RoleStudent
}
