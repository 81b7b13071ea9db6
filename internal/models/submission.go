package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Submission statuses. Transitions past "submitted" belong to the
// admin review workflow.
const (
	SubmissionStatusDraft       = "draft"
	SubmissionStatusSubmitted   = "submitted"
	SubmissionStatusUnderReview = "under_review"
	SubmissionStatusApproved    = "approved"
	SubmissionStatusRejected    = "rejected"
)

// Submission is a leader's periodic discipleship status update.
// Anonymous submissions carry the redeemed token reference; the token
// link is cleared, not cascaded, when the token is deleted.
type Submission struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	LeaderID    *uuid.UUID     `gorm:"type:uuid;index"`
	FormTokenID *uuid.UUID     `gorm:"type:uuid;index"`
	LeaderLabel string         `gorm:"type:text;not null"`
	Status      string         `gorm:"type:text;not null;default:'submitted'"`
	Payload     datatypes.JSON `gorm:"type:jsonb;default:'{}'::jsonb"`
	SubmittedAt time.Time      `gorm:"not null"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`

	Leader    *Leader    `gorm:"constraint:OnDelete:SET NULL;foreignKey:LeaderID;references:ID"`
	FormToken *FormToken `gorm:"constraint:OnDelete:SET NULL;foreignKey:FormTokenID;references:ID"`
}
