package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/zest/product-api/internal/models"
)

func (r *GormRepo) FindRefreshByToken(ctx context.Context, value string) (*models.RefreshToken, error) {
	var token models.RefreshToken
	if err := r.DB.WithContext(ctx).Where("token = ?", value).First(&token).Error; err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *GormRepo) FindRefreshByUserID(ctx context.Context, userID uint) (*models.RefreshToken, error) {
	var token models.RefreshToken
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&token).Error; err != nil {
		return nil, err
	}
	return &token, nil
}

// SaveRefresh upserts the row keyed by its own primary key, so rotation
// reuses the existing row instead of inserting a second one.
func (r *GormRepo) SaveRefresh(ctx context.Context, token *models.RefreshToken) error {
	return r.DB.WithContext(ctx).Save(token).Error
}

// RotateRefresh overwrites the user's refresh row with a fresh value and
// expiry, clearing the revoked flag, or creates the row on first issue.
// Exactly one row per user exists after this call.
func (r *GormRepo) RotateRefresh(ctx context.Context, userID uint, value string, expiresAt time.Time) (*models.RefreshToken, error) {
	token, err := r.FindRefreshByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		token = &models.RefreshToken{UserID: userID}
	}

	token.Token = value
	token.ExpiresAt = expiresAt.Unix()
	token.Revoked = false

	if err := r.SaveRefresh(ctx, token); err != nil {
		return nil, err
	}
	return token, nil
}

// ClaimRefresh consumes a refresh token by value.
//
// An unknown value yields ErrRefreshNotFound. A revoked or expired row is
// re-marked revoked before ErrRefreshExpiredOrRevoked is returned, so the
// store is consistent when the failure surfaces. Otherwise the row is
// revoked with a guarded update; when two calls race on the same value the
// revoked=false predicate lets only one of them through.
func (r *GormRepo) ClaimRefresh(ctx context.Context, value string) (*models.RefreshToken, error) {
	var token models.RefreshToken
	if err := r.DB.WithContext(ctx).Where("token = ?", value).First(&token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRefreshNotFound
		}
		return nil, err
	}

	if token.Revoked || token.Expired(time.Now()) {
		if err := r.DB.WithContext(ctx).Model(&models.RefreshToken{}).
			Where("id = ?", token.ID).
			Update("revoked", true).Error; err != nil {
			return nil, err
		}
		return nil, ErrRefreshExpiredOrRevoked
	}

	res := r.DB.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("id = ? AND revoked = ?", token.ID, false).
		Update("revoked", true)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrRefreshExpiredOrRevoked
	}

	token.Revoked = true
	return &token, nil
}
