package authguard

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	identityextractors "github.com/lamassuiot/authping/backend/pkg/routes/middlewares/identity-extractors"
	"github.com/lamassuiot/authping/core"
	"github.com/lamassuiot/authping/core/pkg/errs"
	"github.com/lamassuiot/authping/core/pkg/helpers"
	"github.com/lamassuiot/authping/core/pkg/models"
	"github.com/lamassuiot/authping/core/pkg/services"
	"github.com/sirupsen/logrus"
)

// AuthGuard decides whether a request carries valid credentials.
type AuthGuard interface {
	Authenticate(ctx context.Context, req *http.Request) (*models.Identity, error)
}

// JWTGuard accepts bearer access tokens issued by the authentication service.
type JWTGuard struct {
	authn services.AuthnService
}

func NewJWTGuard(authn services.AuthnService) *JWTGuard {
	return &JWTGuard{authn: authn}
}

func (g *JWTGuard) Authenticate(ctx context.Context, req *http.Request) (*models.Identity, error) {
	token, ok := identityextractors.BearerToken(req.Context())
	if !ok {
		return nil, errs.ErrAuthenticationRequired
	}

	return g.authn.Authenticate(ctx, services.AuthenticateInput{Token: token})
}

type AuthGuardMiddleware struct {
	logger *logrus.Entry
	guard  AuthGuard
}

func NewAuthGuardMiddleware(logger *logrus.Entry, guard AuthGuard) AuthGuardMiddleware {
	return AuthGuardMiddleware{
		logger: logger,
		guard:  guard,
	}
}

// Use rejects unauthenticated requests before any later handler runs.
func (mw AuthGuardMiddleware) Use() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := mw.guard.Authenticate(c.Request.Context(), c.Request)
		if err != nil {
			status, msg := http.StatusUnauthorized, err.Error()

			var apiErr errs.APIError
			if errors.As(err, &apiErr) {
				status, msg = apiErr.APIError()
			} else {
				msg = errs.ErrInvalidToken.Msg
			}

			helpers.ConfigureLogger(c.Request.Context(), mw.logger).Debugf("rejected request to %s: %s", c.Request.URL.Path, err)

			if status == http.StatusUnauthorized {
				c.Header("WWW-Authenticate", `Bearer realm="api"`)
			}
			c.AbortWithStatusJSON(status, gin.H{"err": msg})
			return
		}

		reqCtx := c.Request.Context()
		reqCtx = context.WithValue(reqCtx, core.ContextKeyAuthID, identity.UserID)
		reqCtx = context.WithValue(reqCtx, core.ContextKeyAuthUsername, identity.Username)
		reqCtx = context.WithValue(reqCtx, core.ContextKeyAuthType, identity.AuthMode)
		c.Request = c.Request.WithContext(reqCtx)

		c.Set(core.ContextKeyAuthID, identity.UserID)
		c.Set(core.ContextKeyAuthUsername, identity.Username)
		c.Set(core.ContextKeyAuthType, identity.AuthMode)

		c.Next()
	}
}
