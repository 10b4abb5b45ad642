package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/lamassuiot/authping/backend/pkg/routes/middlewares/authguard"
	identityextractors "github.com/lamassuiot/authping/backend/pkg/routes/middlewares/identity-extractors"
	"github.com/lamassuiot/authping/core/pkg/errs"
	"github.com/lamassuiot/authping/core/pkg/models"
	"github.com/lamassuiot/authping/core/pkg/services"
	svcmock "github.com/lamassuiot/authping/core/pkg/services/mock"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newPingRouter(t *testing.T) (*gin.Engine, *test.Hook) {
	gin.SetMode(gin.TestMode)

	lgr, hook := test.NewNullLogger()
	lgr.SetLevel(logrus.InfoLevel)
	logger := lgr.WithField("test", t.Name())

	authn := new(svcmock.MockAuthnService)
	authn.On("Authenticate", mock.Anything, services.AuthenticateInput{Token: "alice-token"}).
		Return(&models.Identity{UserID: "u-1", Username: "alice", AuthMode: models.AuthModeJWT}, nil)
	authn.On("Authenticate", mock.Anything, mock.Anything).
		Return(nil, errs.ErrInvalidToken)

	guard := authguard.NewAuthGuardMiddleware(logger, authguard.NewJWTGuard(authn))
	pingRoutes := NewPingHttpRoutes(logger)

	router := gin.New()
	router.Use(identityextractors.RequestMetadataToContextMiddleware(logger))
	router.GET("/api/test", guard.Use(), pingRoutes.Ping)

	return router, hook
}

func ping(router *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/test", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func pingEntries(hook *test.Hook) []logrus.Entry {
	entries := []logrus.Entry{}
	for _, entry := range hook.AllEntries() {
		if strings.Contains(entry.Message, PingLogMarker) {
			entries = append(entries, *entry)
		}
	}
	return entries
}

func TestPingAuthenticated(t *testing.T) {
	router, hook := newPingRouter(t)

	w := ping(router, "alice-token")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `{"successful":true}`, w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")

	entries := pingEntries(hook)
	require.Len(t, entries, 1)
	assert.Equal(t, logrus.InfoLevel, entries[0].Level)
	assert.Contains(t, entries[0].Message, "alice")
	assert.Equal(t, "alice", entries[0].Data["user"])
}

func TestPingUnauthenticated(t *testing.T) {
	router, hook := newPingRouter(t)

	w := ping(router, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"err":"authentication credentials were not provided"}`, w.Body.String())
	assert.Empty(t, pingEntries(hook))
}

func TestPingInvalidToken(t *testing.T) {
	router, hook := newPingRouter(t)

	w := ping(router, "forged")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.NotContains(t, w.Body.String(), "successful")
	assert.Empty(t, pingEntries(hook))
}

func TestPingRepeated(t *testing.T) {
	router, hook := newPingRouter(t)

	for i := 0; i < 100; i++ {
		w := ping(router, "alice-token")
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, `{"successful":true}`, w.Body.String())
	}

	assert.Len(t, pingEntries(hook), 100)
}

func TestPingMethodNotAllowed(t *testing.T) {
	router, _ := newPingRouter(t)
	router.HandleMethodNotAllowed = true

	req := httptest.NewRequest(http.MethodPost, "/api/test", nil)
	req.Header.Set("Authorization", "Bearer alice-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
