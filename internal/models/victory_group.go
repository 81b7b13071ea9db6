package models

import (
	"time"

	"github.com/google/uuid"
)

// VictoryGroup is a small fellowship group led by a leader.
type VictoryGroup struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string     `gorm:"type:text;not null"`
	LeaderID  *uuid.UUID `gorm:"type:uuid;index"`
	Schedule  string     `gorm:"type:text"`
	Venue     string     `gorm:"type:text"`
	CreatedAt time.Time  `gorm:"autoCreateTime"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime"`

	Leader  *Leader  `gorm:"constraint:OnDelete:SET NULL;foreignKey:LeaderID;references:ID"`
	Members []Member `gorm:"foreignKey:VictoryGroupID;constraint:OnDelete:SET NULL"`
}
