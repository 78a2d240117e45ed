package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fundraiser/internal/model"
)

// TokenRepository defines verification token persistence operations.
type TokenRepository interface {
	Create(ctx context.Context, token *model.VerificationToken) error
	FindByToken(ctx context.Context, token string) (*model.VerificationToken, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type tokenRepository struct {
	db *gorm.DB
}

// NewTokenRepository creates a new verification token repository.
func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &tokenRepository{db: db}
}

// Create creates a new verification token.
func (r *tokenRepository) Create(ctx context.Context, token *model.VerificationToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

// FindByToken finds a token record by its opaque token string.
func (r *tokenRepository) FindByToken(ctx context.Context, token string) (*model.VerificationToken, error) {
	var record model.VerificationToken
	if err := r.db.WithContext(ctx).Where("token = ?", token).First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// Delete removes a token record, making replay impossible.
func (r *tokenRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.VerificationToken{}).Error
}
