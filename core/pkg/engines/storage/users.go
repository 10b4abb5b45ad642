package storage

import (
	"context"
	"time"

	"github.com/lamassuiot/authping/core/pkg/models"
)

type UserRepo interface {
	Count(ctx context.Context) (int, error)
	SelectExistsByID(ctx context.Context, id string) (bool, *models.User, error)
	SelectExistsByUsername(ctx context.Context, username string) (bool, *models.User, error)
	Insert(ctx context.Context, user *models.User) (*models.User, error)
	Update(ctx context.Context, user *models.User) (*models.User, error)
}

type TokenBlacklistRepo interface {
	Insert(ctx context.Context, token *models.BlacklistedToken) (*models.BlacklistedToken, error)
	Exists(ctx context.Context, jti string) (bool, error)
	DeleteExpired(ctx context.Context, before time.Time) (int, error)
}
