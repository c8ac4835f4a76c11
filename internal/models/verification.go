package models

import (
	"time"

	"gorm.io/gorm"
)

// Verification statuses
const (
	StatusPending  = "pending"
	StatusVerified = "verified"
	StatusRejected = "rejected"
)

// Item type tags for the five reviewable artifact kinds.
const (
	ItemQualification   = "qualification"
	ItemSession         = "session"
	ItemActivity        = "activity"
	ItemCompetencyClaim = "competency"
	ItemProfileDocument = "profile_document"
)

// IsValidItemType reports whether tag names a known artifact kind.
func IsValidItemType(tag string) bool {
	switch tag {
	case ItemQualification, ItemSession, ItemActivity, ItemCompetencyClaim, ItemProfileDocument:
		return true
	}
	return false
}

// VerificationRecord is the review state for one submitted artifact.
// Exactly one record exists per (item_type, item_id). Version is the
// optimistic-concurrency counter: every successful transition bumps it,
// and writers compare-and-swap against the version they read.
type VerificationRecord struct {
	gorm.Model
	Reference   string  `gorm:"uniqueIndex;not null"` // external UUID handle
	ItemType    string  `gorm:"not null;uniqueIndex:idx_verification_item"`
	ItemID      uint    `gorm:"not null;uniqueIndex:idx_verification_item"`
	OwnerID     uint    `gorm:"not null;index"`
	Status      string  `gorm:"default:'pending';index"`
	VerifierID  *uint   // NULL while pending
	Feedback    *string // NULL when the reviewer left none
	Version     uint64  `gorm:"not null;default:0"`
	SubmittedAt time.Time `gorm:"not null;index"`

	Events []VerificationEvent `gorm:"foreignKey:RecordID"`
}

// VerificationEvent is one entry in a record's append-only audit trail.
// Events are never updated or pruned.
type VerificationEvent struct {
	ID         uint   `gorm:"primaryKey"`
	RecordID   uint   `gorm:"not null;index"`
	ActorID    uint   `gorm:"not null"`
	FromStatus string `gorm:"not null"` // empty on the creation event
	ToStatus   string `gorm:"not null"`
	Feedback   *string
	CreatedAt  time.Time
}

func (VerificationEvent) TableName() string {
	return "verification_events"
}
