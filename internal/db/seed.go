package db

import (
	"context"
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/android19/discipleship-form-sub001/internal/models"
)

//go:embed seed/lookups.yaml
var lookupData []byte

type lookupSeed struct {
	Ministries []struct {
		Name        string `yaml:"name"`
		Description string `yaml:"description"`
	} `yaml:"ministries"`
	DiscipleshipClasses []struct {
		Key      string `yaml:"key"`
		Name     string `yaml:"name"`
		Position int    `yaml:"position"`
	} `yaml:"discipleship_classes"`
}

// Seed inserts baseline lookup data: ministries and the ordered list
// of discipleship classes the checkbox sets refer to. Existing rows
// are left untouched.
func Seed(ctx context.Context, database *gorm.DB) error {
	var seed lookupSeed
	if err := yaml.Unmarshal(lookupData, &seed); err != nil {
		return fmt.Errorf("parse lookup seed: %w", err)
	}

	for _, m := range seed.Ministries {
		ministry := models.Ministry{Name: m.Name, Description: m.Description}
		if err := database.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&ministry).Error; err != nil {
			return err
		}
	}

	for _, c := range seed.DiscipleshipClasses {
		class := models.DiscipleshipClass{Key: c.Key, Name: c.Name, Position: c.Position}
		if err := database.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&class).Error; err != nil {
			return err
		}
	}

	return nil
}
