package repository

import (
	"context"

	"github.com/steelstack/crm-api/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MailTokenRepository struct {
	db *gorm.DB
}

func NewMailTokenRepository(db *gorm.DB) *MailTokenRepository {
	return &MailTokenRepository{db: db}
}

// Upsert stores a token pair, replacing any existing token for the same
// user and provider
func (r *MailTokenRepository) Upsert(ctx context.Context, token *domain.MailToken) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "provider"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"email", "access_token", "refresh_token", "expiry", "updated_at",
		}),
	}).Create(token).Error
}

func (r *MailTokenRepository) Get(ctx context.Context, userID uint, provider domain.MailProvider) (*domain.MailToken, error) {
	var token domain.MailToken
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND provider = ?", userID, provider).
		First(&token).Error
	if err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *MailTokenRepository) ListByUser(ctx context.Context, userID uint) ([]domain.MailToken, error) {
	var tokens []domain.MailToken
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&tokens).Error
	return tokens, err
}

// Delete disconnects a provider for a user
func (r *MailTokenRepository) Delete(ctx context.Context, userID uint, provider domain.MailProvider) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND provider = ?", userID, provider).
		Delete(&domain.MailToken{}).Error
}
