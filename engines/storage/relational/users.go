package relational

import (
	"context"
	"errors"

	"github.com/lamassuiot/authping/core/pkg/engines/storage"
	"github.com/lamassuiot/authping/core/pkg/models"
	"gorm.io/gorm"
)

type UserStore struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) storage.UserRepo {
	return &UserStore{db: db}
}

func (s *UserStore) Count(ctx context.Context) (int, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error; err != nil {
		return -1, err
	}

	return int(count), nil
}

func (s *UserStore) SelectExistsByID(ctx context.Context, id string) (bool, *models.User, error) {
	return s.selectExists(ctx, "id = ?", id)
}

func (s *UserStore) SelectExistsByUsername(ctx context.Context, username string) (bool, *models.User, error) {
	return s.selectExists(ctx, "username = ?", username)
}

func (s *UserStore) selectExists(ctx context.Context, query string, arg any) (bool, *models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where(query, arg).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil, nil
	}
	if err != nil {
		return false, nil, err
	}

	return true, &user, nil
}

func (s *UserStore) Insert(ctx context.Context, user *models.User) (*models.User, error) {
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}

	return user, nil
}

func (s *UserStore) Update(ctx context.Context, user *models.User) (*models.User, error) {
	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		return nil, err
	}

	return user, nil
}
