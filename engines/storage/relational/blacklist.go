package relational

import (
	"context"
	"time"

	"github.com/lamassuiot/authping/core/pkg/engines/storage"
	"github.com/lamassuiot/authping/core/pkg/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TokenBlacklistStore struct {
	db *gorm.DB
}

func NewTokenBlacklistRepository(db *gorm.DB) storage.TokenBlacklistRepo {
	return &TokenBlacklistStore{db: db}
}

// Insert is idempotent: blacklisting an already blacklisted jti is a no-op.
func (s *TokenBlacklistStore) Insert(ctx context.Context, token *models.BlacklistedToken) (*models.BlacklistedToken, error) {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(token).Error
	if err != nil {
		return nil, err
	}

	return token, nil
}

func (s *TokenBlacklistStore) Exists(ctx context.Context, jti string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.BlacklistedToken{}).Where("jti = ?", jti).Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (s *TokenBlacklistStore) DeleteExpired(ctx context.Context, before time.Time) (int, error) {
	tx := s.db.WithContext(ctx).Where("expires_at < ?", before).Delete(&models.BlacklistedToken{})
	if tx.Error != nil {
		return 0, tx.Error
	}

	return int(tx.RowsAffected), nil
}
