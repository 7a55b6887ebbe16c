package auth

import (
	"context"
	"time"

	"github.com/Luismorlan/socialmux/model"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// TokenStore keeps track of issued tokens so that they can be revoked before
// they expire.
type TokenStore interface {
	Save(ctx context.Context, userId uint, tokenId string, expiresAt time.Time) error
	Exists(ctx context.Context, userId uint, tokenId string) (bool, error)
	Delete(ctx context.Context, userId uint, tokenId string) error
	DeleteAll(ctx context.Context, userId uint) error
}

// DBTokenStore stores tokens in the access_tokens table.
type DBTokenStore struct {
	DB *gorm.DB
}

func NewDBTokenStore(db *gorm.DB) *DBTokenStore {
	return &DBTokenStore{DB: db}
}

func (s *DBTokenStore) Save(ctx context.Context, userId uint, tokenId string, expiresAt time.Time) error {
	err := s.DB.WithContext(ctx).Create(&model.AccessToken{
		Id:        tokenId,
		UserID:    userId,
		ExpiresAt: expiresAt,
	}).Error
	return errors.Wrap(err, "save access token")
}

func (s *DBTokenStore) Exists(ctx context.Context, userId uint, tokenId string) (bool, error) {
	var count int64
	err := s.DB.WithContext(ctx).Model(&model.AccessToken{}).
		Where("id = ? AND user_id = ? AND expires_at > ?", tokenId, userId, time.Now()).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "count access token")
	}
	return count > 0, nil
}

func (s *DBTokenStore) Delete(ctx context.Context, userId uint, tokenId string) error {
	err := s.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", tokenId, userId).
		Delete(&model.AccessToken{}).Error
	return errors.Wrap(err, "delete access token")
}

func (s *DBTokenStore) DeleteAll(ctx context.Context, userId uint) error {
	err := s.DB.WithContext(ctx).
		Where("user_id = ?", userId).
		Delete(&model.AccessToken{}).Error
	return errors.Wrap(err, "delete access tokens of user")
}
