package models

import (
	"time"

	"github.com/google/uuid"
)

// Leader runs one or more victory groups and reports progress through
// periodic status-update submissions.
type Leader struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name       string     `gorm:"type:text;not null"`
	Email      string     `gorm:"type:text;index"`
	Phone      string     `gorm:"type:text"`
	MinistryID *uuid.UUID `gorm:"type:uuid;index"`
	CoachID    *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt  time.Time  `gorm:"autoCreateTime"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime"`

	Ministry      *Ministry      `gorm:"constraint:OnDelete:SET NULL;foreignKey:MinistryID;references:ID"`
	Coach         *Coach         `gorm:"constraint:OnDelete:SET NULL;foreignKey:CoachID;references:ID"`
	VictoryGroups []VictoryGroup `gorm:"foreignKey:LeaderID;constraint:OnDelete:SET NULL"`
	Submissions   []Submission   `gorm:"foreignKey:LeaderID;constraint:OnDelete:SET NULL"`
}
