package authguard

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	identityextractors "github.com/lamassuiot/authping/backend/pkg/routes/middlewares/identity-extractors"
	"github.com/lamassuiot/authping/core"
	"github.com/lamassuiot/authping/core/pkg/errs"
	"github.com/lamassuiot/authping/core/pkg/models"
	"github.com/lamassuiot/authping/core/pkg/services"
	svcmock "github.com/lamassuiot/authping/core/pkg/services/mock"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newGuardedRouter(t *testing.T, authn services.AuthnService, handlerCalls *int) *gin.Engine {
	gin.SetMode(gin.TestMode)

	lgr := logrus.New()
	lgr.SetOutput(io.Discard)
	logger := lgr.WithField("test", t.Name())

	guard := NewAuthGuardMiddleware(logger, NewJWTGuard(authn))

	router := gin.New()
	router.Use(identityextractors.RequestMetadataToContextMiddleware(logger))
	router.GET("/protected", guard.Use(), func(c *gin.Context) {
		*handlerCalls++
		c.JSON(http.StatusOK, gin.H{
			"gin_username": c.GetString(core.ContextKeyAuthUsername),
			"req_username": c.Request.Context().Value(core.ContextKeyAuthUsername),
			"req_id":       c.Request.Context().Value(core.ContextKeyAuthID),
			"req_mode":     c.Request.Context().Value(core.ContextKeyAuthType),
		})
	})

	return router
}

func doRequest(router *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthGuardAllowsAuthenticated(t *testing.T) {
	authn := new(svcmock.MockAuthnService)
	authn.On("Authenticate", mock.Anything, services.AuthenticateInput{Token: "good"}).
		Return(&models.Identity{UserID: "u-1", Username: "alice", AuthMode: models.AuthModeJWT}, nil)

	calls := 0
	w := doRequest(newGuardedRouter(t, authn, &calls), "Bearer good")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, calls)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "alice", body["gin_username"])
	assert.Equal(t, "alice", body["req_username"])
	assert.Equal(t, "u-1", body["req_id"])
	assert.Equal(t, models.AuthModeJWT, body["req_mode"])
}

func TestAuthGuardRejects(t *testing.T) {
	var testcases = []struct {
		name           string
		authorization  string
		authnErr       error
		expectedStatus int
		expectedMsg    string
	}{
		{
			name:           "NoCredentials",
			expectedStatus: http.StatusUnauthorized,
			expectedMsg:    errs.ErrAuthenticationRequired.Msg,
		},
		{
			name:           "InvalidToken",
			authorization:  "Bearer bad",
			authnErr:       errs.WrapError(errors.New("signature is invalid"), errs.ErrInvalidToken),
			expectedStatus: http.StatusUnauthorized,
			expectedMsg:    errs.ErrInvalidToken.Msg,
		},
		{
			name:           "InactiveUser",
			authorization:  "Bearer bad",
			authnErr:       errs.ErrUserInactive,
			expectedStatus: http.StatusUnauthorized,
			expectedMsg:    errs.ErrUserInactive.Msg,
		},
		{
			name:           "PlainError",
			authorization:  "Bearer bad",
			authnErr:       errors.New("database is down"),
			expectedStatus: http.StatusUnauthorized,
			expectedMsg:    errs.ErrInvalidToken.Msg,
		},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			authn := new(svcmock.MockAuthnService)
			if tc.authnErr != nil {
				authn.On("Authenticate", mock.Anything, mock.Anything).Return(nil, tc.authnErr)
			}

			calls := 0
			w := doRequest(newGuardedRouter(t, authn, &calls), tc.authorization)

			assert.Equal(t, tc.expectedStatus, w.Code)
			assert.Equal(t, 0, calls)
			assert.Equal(t, `Bearer realm="api"`, w.Header().Get("WWW-Authenticate"))

			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tc.expectedMsg, body["err"])

			if tc.authnErr == nil {
				authn.AssertNotCalled(t, "Authenticate", mock.Anything, mock.Anything)
			}
		})
	}
}
