package models

import (
	"time"

	"github.com/google/uuid"
)

// DiscipleshipClass is a milestone in the discipleship journey. The
// Position column orders classes the way they are taken; the checkbox
// groups on submissions reference classes by their Key.
type DiscipleshipClass struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Key       string    `gorm:"type:text;uniqueIndex;not null"`
	Name      string    `gorm:"type:text;not null"`
	Position  int       `gorm:"not null;default:0"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}
