package token

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/android19/discipleship-form-sub001/internal/models"
)

// GormStore persists tokens through GORM. It is a thin value type so
// callers can rebind it to a transaction handle.
type GormStore struct {
	orm *gorm.DB
}

// NewGormStore wraps a GORM handle (or transaction) as a Store.
func NewGormStore(orm *gorm.DB) *GormStore {
	return &GormStore{orm: orm}
}

func (s *GormStore) FindByCode(ctx context.Context, code string) (Token, error) {
	var model models.FormToken
	err := s.orm.WithContext(ctx).Where("code = ?", code).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Token{}, ErrNotFound
	}
	if err != nil {
		return Token{}, err
	}
	return fromModel(model), nil
}

func (s *GormStore) FindByID(ctx context.Context, id uuid.UUID) (Token, error) {
	var model models.FormToken
	err := s.orm.WithContext(ctx).First(&model, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Token{}, ErrNotFound
	}
	if err != nil {
		return Token{}, err
	}
	return fromModel(model), nil
}

func (s *GormStore) CodeExists(ctx context.Context, code string) (bool, error) {
	var count int64
	err := s.orm.WithContext(ctx).Model(&models.FormToken{}).Where("code = ?", code).Count(&count).Error
	return count > 0, err
}

func (s *GormStore) List(ctx context.Context) ([]Token, error) {
	var rows []models.FormToken
	if err := s.orm.WithContext(ctx).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	tokens := make([]Token, 0, len(rows))
	for _, row := range rows {
		tokens = append(tokens, fromModel(row))
	}
	return tokens, nil
}

func (s *GormStore) Create(ctx context.Context, tok Token) (Token, error) {
	model := toModel(tok)
	if model.ID == uuid.Nil {
		model.ID = uuid.New()
	}
	err := s.orm.WithContext(ctx).Create(&model).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return Token{}, ErrDuplicateCode
	}
	if err != nil {
		return Token{}, err
	}
	return fromModel(model), nil
}

func (s *GormStore) Update(ctx context.Context, id uuid.UUID, fields map[string]any) (Token, error) {
	res := s.orm.WithContext(ctx).Model(&models.FormToken{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return Token{}, res.Error
	}
	if res.RowsAffected == 0 {
		return Token{}, ErrNotFound
	}
	return s.FindByID(ctx, id)
}

func (s *GormStore) Delete(ctx context.Context, id uuid.UUID) error {
	res := s.orm.WithContext(ctx).Delete(&models.FormToken{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// IncrementUsage performs the increment as one conditional UPDATE so
// concurrent redemptions serialize on the row and the cap can never
// be overshot. A read-then-write here would race.
func (s *GormStore) IncrementUsage(ctx context.Context, id uuid.UUID) (Token, error) {
	res := s.orm.WithContext(ctx).
		Model(&models.FormToken{}).
		Where("id = ? AND (max_uses IS NULL OR used_count < max_uses)", id).
		UpdateColumn("used_count", gorm.Expr("used_count + 1"))
	if res.Error != nil {
		return Token{}, res.Error
	}
	if res.RowsAffected == 0 {
		// Either the row is gone or the cap was hit first.
		if _, err := s.FindByID(ctx, id); err != nil {
			return Token{}, err
		}
		return Token{}, ErrLimitReached
	}
	return s.FindByID(ctx, id)
}

func (s *GormStore) ResetUsage(ctx context.Context, id uuid.UUID) (Token, error) {
	return s.Update(ctx, id, map[string]any{"used_count": 0})
}

func fromModel(m models.FormToken) Token {
	tok := Token{
		ID:          m.ID,
		Code:        m.Code,
		LeaderLabel: m.LeaderLabel,
		ExpiresAt:   m.ExpiresAt,
		IsActive:    m.IsActive,
		MaxUses:     m.MaxUses,
		UsedCount:   m.UsedCount,
		CreatedBy:   m.CreatedBy,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	if m.Description != nil {
		tok.Description = *m.Description
	}
	return tok
}

func toModel(t Token) models.FormToken {
	model := models.FormToken{
		ID:          t.ID,
		Code:        t.Code,
		LeaderLabel: t.LeaderLabel,
		ExpiresAt:   t.ExpiresAt,
		IsActive:    t.IsActive,
		MaxUses:     t.MaxUses,
		UsedCount:   t.UsedCount,
		CreatedBy:   t.CreatedBy,
	}
	if t.Description != "" {
		model.Description = &t.Description
	}
	return model
}
