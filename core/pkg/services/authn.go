package services

import (
	"context"

	"github.com/lamassuiot/authping/core/pkg/models"
)

type AuthnService interface {
	Login(ctx context.Context, input LoginInput) (*models.TokenPair, error)
	Refresh(ctx context.Context, input RefreshInput) (*models.TokenPair, error)
	Register(ctx context.Context, input RegisterInput) (*models.User, error)
	Authenticate(ctx context.Context, input AuthenticateInput) (*models.Identity, error)
}

type LoginInput struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

type RefreshInput struct {
	Refresh string `validate:"required"`
}

type RegisterInput struct {
	Username string `validate:"required,max=150,username"`
	Password string `validate:"required,min=8"`
}

type AuthenticateInput struct {
	Token string `validate:"required"`
}
