package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/lamassuiot/authping/core/pkg/engines/storage"
	"github.com/lamassuiot/authping/core/pkg/errs"
	chelpers "github.com/lamassuiot/authping/core/pkg/helpers"
	"github.com/lamassuiot/authping/core/pkg/models"
	"github.com/lamassuiot/authping/core/pkg/services"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const (
	DefaultAccessTokenLifetime  = 5 * time.Minute
	DefaultRefreshTokenLifetime = 24 * time.Hour
)

var usernameRegex = regexp.MustCompile(`^[\w.@+-]+$`)

var authnValidate *validator.Validate

type AuthnServiceBackend struct {
	logger                 *logrus.Entry
	userRepo               storage.UserRepo
	blacklistRepo          storage.TokenBlacklistRepo
	signingKey             []byte
	issuer                 string
	accessTokenLifetime    time.Duration
	refreshTokenLifetime   time.Duration
	rotateRefreshTokens    bool
	blacklistAfterRotation bool
	passwordHashCost       int
	now                    func() time.Time
}

type AuthnServiceBuilder struct {
	Logger                 *logrus.Entry
	UserStorage            storage.UserRepo
	BlacklistStorage       storage.TokenBlacklistRepo
	SigningKey             string
	Issuer                 string
	AccessTokenLifetime    time.Duration
	RefreshTokenLifetime   time.Duration
	RotateRefreshTokens    bool
	BlacklistAfterRotation bool
	PasswordHashCost       int
	TimeFunc               func() time.Time
}

type AuthnMiddleware func(services.AuthnService) services.AuthnService

func NewAuthnService(builder AuthnServiceBuilder) (services.AuthnService, error) {
	authnValidate = validator.New()
	err := authnValidate.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernameRegex.MatchString(fl.Field().String())
	})
	if err != nil {
		return nil, err
	}

	if builder.SigningKey == "" {
		return nil, fmt.Errorf("token signing key not set")
	}

	svc := &AuthnServiceBackend{
		logger:                 builder.Logger,
		userRepo:               builder.UserStorage,
		blacklistRepo:          builder.BlacklistStorage,
		signingKey:             []byte(builder.SigningKey),
		issuer:                 builder.Issuer,
		accessTokenLifetime:    builder.AccessTokenLifetime,
		refreshTokenLifetime:   builder.RefreshTokenLifetime,
		rotateRefreshTokens:    builder.RotateRefreshTokens,
		blacklistAfterRotation: builder.BlacklistAfterRotation,
		passwordHashCost:       builder.PasswordHashCost,
		now:                    builder.TimeFunc,
	}

	if svc.accessTokenLifetime <= 0 {
		svc.accessTokenLifetime = DefaultAccessTokenLifetime
	}

	if svc.refreshTokenLifetime <= 0 {
		svc.refreshTokenLifetime = DefaultRefreshTokenLifetime
	}

	if svc.passwordHashCost == 0 {
		svc.passwordHashCost = bcrypt.DefaultCost
	}

	if svc.now == nil {
		svc.now = time.Now
	}

	return svc, nil
}

func (svc *AuthnServiceBackend) Login(ctx context.Context, input services.LoginInput) (*models.TokenPair, error) {
	lFunc := chelpers.ConfigureLogger(ctx, svc.logger)

	err := authnValidate.Struct(input)
	if err != nil {
		lFunc.Errorf("struct validation error: %s", err)
		return nil, errs.ErrValidateBadRequest
	}

	lFunc.Debugf("checking if user '%s' exists", input.Username)
	exists, user, err := svc.userRepo.SelectExistsByUsername(ctx, input.Username)
	if err != nil {
		lFunc.Errorf("something went wrong while checking if user '%s' exists in storage engine: %s", input.Username, err)
		return nil, err
	}

	if !exists {
		lFunc.Warnf("login attempt for unknown user '%s'", input.Username)
		return nil, errs.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		lFunc.Warnf("login attempt for user '%s' with wrong password", input.Username)
		return nil, errs.ErrInvalidCredentials
	}

	if !user.IsActive {
		lFunc.Warnf("login attempt for inactive user '%s'", input.Username)
		return nil, errs.ErrInvalidCredentials
	}

	pair, err := svc.issueTokenPair(user)
	if err != nil {
		lFunc.Errorf("could not issue tokens for user '%s': %s", input.Username, err)
		return nil, err
	}

	now := svc.now()
	user.LastLogin = &now
	if _, err := svc.userRepo.Update(ctx, user); err != nil {
		lFunc.Errorf("could not update last login of user '%s': %s", input.Username, err)
		return nil, err
	}

	lFunc.Infof("issued token pair for user '%s'", input.Username)
	return pair, nil
}

func (svc *AuthnServiceBackend) Refresh(ctx context.Context, input services.RefreshInput) (*models.TokenPair, error) {
	lFunc := chelpers.ConfigureLogger(ctx, svc.logger)

	err := authnValidate.Struct(input)
	if err != nil {
		lFunc.Errorf("struct validation error: %s", err)
		return nil, errs.ErrValidateBadRequest
	}

	claims, err := svc.parseToken(input.Refresh, models.RefreshToken)
	if err != nil {
		lFunc.Warnf("rejected refresh token: %s", err)
		return nil, err
	}

	blacklisted, err := svc.blacklistRepo.Exists(ctx, claims.ID)
	if err != nil {
		lFunc.Errorf("something went wrong while checking if token '%s' is blacklisted: %s", claims.ID, err)
		return nil, err
	}

	if blacklisted {
		lFunc.Warnf("refresh token '%s' is blacklisted", claims.ID)
		return nil, errs.ErrTokenBlacklisted
	}

	user, err := svc.activeUser(ctx, lFunc, claims.Subject)
	if err != nil {
		return nil, err
	}

	access, _, err := svc.issueToken(user, models.AccessToken, svc.accessTokenLifetime)
	if err != nil {
		lFunc.Errorf("could not issue access token for user '%s': %s", user.Username, err)
		return nil, err
	}

	pair := &models.TokenPair{Access: access}
	if !svc.rotateRefreshTokens {
		return pair, nil
	}

	pair.Refresh, _, err = svc.issueToken(user, models.RefreshToken, svc.refreshTokenLifetime)
	if err != nil {
		lFunc.Errorf("could not issue refresh token for user '%s': %s", user.Username, err)
		return nil, err
	}

	if svc.blacklistAfterRotation {
		lFunc.Debugf("blacklisting rotated refresh token '%s'", claims.ID)
		_, err = svc.blacklistRepo.Insert(ctx, &models.BlacklistedToken{
			JTI:       claims.ID,
			UserID:    user.ID,
			ExpiresAt: claims.ExpiresAt.Time,
			CreatedAt: svc.now(),
		})
		if err != nil {
			lFunc.Errorf("could not blacklist rotated refresh token '%s': %s", claims.ID, err)
			return nil, err
		}
	}

	return pair, nil
}

func (svc *AuthnServiceBackend) Register(ctx context.Context, input services.RegisterInput) (*models.User, error) {
	lFunc := chelpers.ConfigureLogger(ctx, svc.logger)

	err := authnValidate.Struct(input)
	if err != nil {
		lFunc.Errorf("struct validation error: %s", err)
		return nil, errs.ErrValidateBadRequest
	}

	exists, _, err := svc.userRepo.SelectExistsByUsername(ctx, input.Username)
	if err != nil {
		lFunc.Errorf("something went wrong while checking if user '%s' exists in storage engine: %s", input.Username, err)
		return nil, err
	}

	if exists {
		lFunc.Warnf("user '%s' already exists", input.Username)
		return nil, errs.ErrUserAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), svc.passwordHashCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		lFunc.Errorf("password for user '%s' is too long", input.Username)
		return nil, errs.WrapError(err, errs.ErrValidateBadRequest)
	}
	if err != nil {
		lFunc.Errorf("could not hash password: %s", err)
		return nil, err
	}

	user, err := svc.userRepo.Insert(ctx, &models.User{
		ID:           uuid.NewString(),
		Username:     input.Username,
		PasswordHash: string(hash),
		IsActive:     true,
		DateJoined:   svc.now(),
	})
	if err != nil {
		lFunc.Errorf("could not insert user '%s' in storage engine: %s", input.Username, err)
		return nil, err
	}

	lFunc.Infof("registered user '%s' with id %s", user.Username, user.ID)
	return user, nil
}

func (svc *AuthnServiceBackend) Authenticate(ctx context.Context, input services.AuthenticateInput) (*models.Identity, error) {
	lFunc := chelpers.ConfigureLogger(ctx, svc.logger)

	if input.Token == "" {
		return nil, errs.ErrAuthenticationRequired
	}

	claims, err := svc.parseToken(input.Token, models.AccessToken)
	if err != nil {
		lFunc.Debugf("rejected access token: %s", err)
		return nil, err
	}

	user, err := svc.activeUser(ctx, lFunc, claims.Subject)
	if err != nil {
		return nil, err
	}

	return &models.Identity{
		UserID:   user.ID,
		Username: user.Username,
		AuthMode: models.AuthModeJWT,
	}, nil
}

func (svc *AuthnServiceBackend) activeUser(ctx context.Context, lFunc *logrus.Entry, id string) (*models.User, error) {
	exists, user, err := svc.userRepo.SelectExistsByID(ctx, id)
	if err != nil {
		lFunc.Errorf("something went wrong while reading user %s from storage engine: %s", id, err)
		return nil, err
	}

	if !exists {
		lFunc.Warnf("token subject %s does not exist", id)
		return nil, errs.WrapError(errs.ErrUserNotFound, errs.ErrInvalidToken)
	}

	if !user.IsActive {
		lFunc.Warnf("user '%s' is inactive", user.Username)
		return nil, errs.ErrUserInactive
	}

	return user, nil
}

func (svc *AuthnServiceBackend) issueTokenPair(user *models.User) (*models.TokenPair, error) {
	access, _, err := svc.issueToken(user, models.AccessToken, svc.accessTokenLifetime)
	if err != nil {
		return nil, err
	}

	refresh, _, err := svc.issueToken(user, models.RefreshToken, svc.refreshTokenLifetime)
	if err != nil {
		return nil, err
	}

	return &models.TokenPair{Access: access, Refresh: refresh}, nil
}

func (svc *AuthnServiceBackend) issueToken(user *models.User, tokenType models.TokenType, lifetime time.Duration) (string, *models.TokenClaims, error) {
	now := svc.now()
	claims := &models.TokenClaims{
		Username:  user.Username,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.ID,
			Issuer:    svc.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(svc.signingKey)
	if err != nil {
		return "", nil, fmt.Errorf("could not sign %s token: %w", tokenType, err)
	}

	return signed, claims, nil
}

func (svc *AuthnServiceBackend) parseToken(token string, expected models.TokenType) (*models.TokenClaims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(svc.now),
	}
	if svc.issuer != "" {
		opts = append(opts, jwt.WithIssuer(svc.issuer))
	}

	claims := &models.TokenClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return svc.signingKey, nil
	}, opts...)
	if err != nil {
		return nil, errs.WrapError(err, errs.ErrInvalidToken)
	}

	if claims.TokenType != expected {
		return nil, errs.WrapError(fmt.Errorf("expected %s token, got '%s'", expected, claims.TokenType), errs.ErrInvalidToken)
	}

	if claims.Subject == "" || claims.ID == "" {
		return nil, errs.WrapError(fmt.Errorf("token has no subject or jti"), errs.ErrInvalidToken)
	}

	return claims, nil
}
