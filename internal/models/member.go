package models

import (
	"time"

	"github.com/google/uuid"
)

// Member belongs to a victory group. The class flags mirror the
// discipleship milestones and are the durable counterpart of the
// checkbox sets submitted on status updates.
type Member struct {
	ID             uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name           string     `gorm:"type:text;not null"`
	VictoryGroupID *uuid.UUID `gorm:"type:uuid;index"`

	One2One           bool `gorm:"not null;default:false"`
	VictoryWeekend    bool `gorm:"not null;default:false"`
	ChurchCommunity   bool `gorm:"not null;default:false"`
	PurpleBook        bool `gorm:"not null;default:false"`
	MakingDisciples   bool `gorm:"not null;default:false"`
	EmpoweringLeaders bool `gorm:"not null;default:false"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	VictoryGroup *VictoryGroup `gorm:"constraint:OnDelete:SET NULL;foreignKey:VictoryGroupID;references:ID"`
}
