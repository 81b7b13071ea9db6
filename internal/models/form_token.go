package models

import (
	"time"

	"github.com/google/uuid"
)

// FormToken grants one unauthenticated actor access to the public
// status-update form, subject to expiry and an optional usage cap.
// A nil MaxUses means unlimited redemptions.
type FormToken struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Code        string    `gorm:"type:text;uniqueIndex;not null"`
	LeaderLabel string    `gorm:"type:text;not null"`
	Description *string   `gorm:"type:text"`
	ExpiresAt   time.Time `gorm:"not null"`
	IsActive    bool      `gorm:"not null;default:true"`
	MaxUses     *int
	UsedCount   int       `gorm:"not null;default:0"`
	CreatedBy   string    `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`

	// Deleting a token keeps its submissions; only the link is cleared.
	Submissions []Submission `gorm:"foreignKey:FormTokenID;constraint:OnDelete:SET NULL"`
}
