package models

import (
	"time"

	"gorm.io/gorm"
)

// The five artifact tables share the (ID, OwnerID) shape the workflow
// engine cares about; everything else is per-type payload.

type Qualification struct {
	gorm.Model
	OwnerID     uint   `gorm:"not null;index"`
	Title       string `gorm:"not null"`
	Institution string
	AwardedAt   *time.Time
	Grade       string
	Metadata    JSON `gorm:"type:jsonb"`
}

type TeachingSession struct {
	gorm.Model
	OwnerID   uint   `gorm:"not null;index"`
	Title     string `gorm:"not null"`
	Subject   string
	HeldAt    *time.Time
	DurationM int // duration in minutes
	Metadata  JSON `gorm:"type:jsonb"`
}

type Activity struct {
	gorm.Model
	OwnerID     uint   `gorm:"not null;index"`
	Title       string `gorm:"not null"`
	Description string
	OccurredAt  *time.Time
	Metadata    JSON `gorm:"type:jsonb"`
}

type CompetencyClaim struct {
	gorm.Model
	OwnerID   uint   `gorm:"not null;index"`
	Title     string `gorm:"not null"`
	Framework string
	Level     string
	Metadata  JSON `gorm:"type:jsonb"`
}

type ProfileDocument struct {
	gorm.Model
	OwnerID  uint   `gorm:"not null;index"`
	Title    string `gorm:"not null"`
	FileURL  string
	MimeType string
	Metadata JSON `gorm:"type:jsonb"`
}
