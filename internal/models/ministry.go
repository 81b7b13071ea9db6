package models

import (
	"time"

	"github.com/google/uuid"
)

// Ministry is a church ministry area a leader serves under.
type Ministry struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string    `gorm:"type:text;uniqueIndex;not null"`
	Description string    `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`

	Leaders []Leader `gorm:"foreignKey:MinistryID;constraint:OnDelete:SET NULL"`
}
