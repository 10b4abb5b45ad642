package controllers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/lamassuiot/authping/core/pkg/errs"
	"github.com/lamassuiot/authping/core/pkg/models"
	"github.com/lamassuiot/authping/core/pkg/services"
	svcmock "github.com/lamassuiot/authping/core/pkg/services/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newAuthnRouter(svc services.AuthnService) *gin.Engine {
	gin.SetMode(gin.TestMode)

	routes := NewAuthnHttpRoutes(svc)
	router := gin.New()
	router.POST("/api/token/", routes.ObtainTokenPair)
	router.POST("/api/token/refresh/", routes.RefreshToken)
	router.POST("/api/register/", routes.Register)
	return router
}

func post(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestObtainTokenPair(t *testing.T) {
	var testcases = []struct {
		name           string
		body           string
		mockFn         func(*svcmock.MockAuthnService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "OK",
			body: `{"username":"alice","password":"wonderland"}`,
			mockFn: func(m *svcmock.MockAuthnService) {
				m.On("Login", mock.Anything, services.LoginInput{Username: "alice", Password: "wonderland"}).
					Return(&models.TokenPair{Access: "acc", Refresh: "ref"}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"access":"acc","refresh":"ref"}`,
		},
		{
			name:           "Err/MissingPassword",
			body:           `{"username":"alice"}`,
			mockFn:         func(m *svcmock.MockAuthnService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Err/MalformedBody",
			body:           `{"username":`,
			mockFn:         func(m *svcmock.MockAuthnService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Err/InvalidCredentials",
			body: `{"username":"alice","password":"nope-nope"}`,
			mockFn: func(m *svcmock.MockAuthnService) {
				m.On("Login", mock.Anything, mock.Anything).Return(nil, errs.ErrInvalidCredentials)
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"err":"no active account found with the given credentials"}`,
		},
		{
			name: "Err/Internal",
			body: `{"username":"alice","password":"wonderland"}`,
			mockFn: func(m *svcmock.MockAuthnService) {
				m.On("Login", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"err":"internal server error"}`,
		},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			svc := new(svcmock.MockAuthnService)
			tc.mockFn(svc)

			w := post(newAuthnRouter(svc), "/api/token/", tc.body)

			assert.Equal(t, tc.expectedStatus, w.Code)
			if tc.expectedBody != "" {
				assert.JSONEq(t, tc.expectedBody, w.Body.String())
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestRefreshToken(t *testing.T) {
	svc := new(svcmock.MockAuthnService)
	svc.On("Refresh", mock.Anything, services.RefreshInput{Refresh: "ref"}).
		Return(&models.TokenPair{Access: "acc2"}, nil)
	svc.On("Refresh", mock.Anything, services.RefreshInput{Refresh: "old"}).
		Return(nil, errs.ErrTokenBlacklisted)

	router := newAuthnRouter(svc)

	w := post(router, "/api/token/refresh/", `{"refresh":"ref"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"access":"acc2"}`, w.Body.String())

	w = post(router, "/api/token/refresh/", `{"refresh":"old"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"err":"token is blacklisted"}`, w.Body.String())

	w = post(router, "/api/token/refresh/", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegister(t *testing.T) {
	svc := new(svcmock.MockAuthnService)
	svc.On("Register", mock.Anything, services.RegisterInput{Username: "alice", Password: "wonderland"}).
		Return(&models.User{ID: "u-1", Username: "alice", PasswordHash: "secret-hash"}, nil)
	svc.On("Register", mock.Anything, services.RegisterInput{Username: "bob", Password: "builder123"}).
		Return(nil, errs.ErrUserAlreadyExists)

	router := newAuthnRouter(svc)

	w := post(router, "/api/register/", `{"username":"alice","password":"wonderland"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"id":"u-1","username":"alice"}`, w.Body.String())
	assert.NotContains(t, w.Body.String(), "secret-hash")

	w = post(router, "/api/register/", `{"username":"bob","password":"builder123"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"err":"a user with that username already exists"}`, w.Body.String())
}
