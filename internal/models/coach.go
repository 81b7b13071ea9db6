package models

import (
	"time"

	"github.com/google/uuid"
)

// Coach oversees a set of leaders.
type Coach struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string    `gorm:"type:text;not null"`
	Email     string    `gorm:"type:text"`
	Phone     string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	Leaders []Leader `gorm:"foreignKey:CoachID;constraint:OnDelete:SET NULL"`
}
