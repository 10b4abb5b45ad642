package errs

import (
	"errors"
	"net/http"
)

var (
	ErrAuthenticationRequired = &SentinelAPIError{Status: http.StatusUnauthorized, Msg: "authentication credentials were not provided"}
	ErrInvalidToken           = &SentinelAPIError{Status: http.StatusUnauthorized, Msg: "token is invalid or expired"}
	ErrInvalidCredentials     = &SentinelAPIError{Status: http.StatusUnauthorized, Msg: "no active account found with the given credentials"}
	ErrTokenBlacklisted       = &SentinelAPIError{Status: http.StatusUnauthorized, Msg: "token is blacklisted"}
	ErrUserInactive           = &SentinelAPIError{Status: http.StatusUnauthorized, Msg: "user is inactive"}

	ErrUserAlreadyExists  = &SentinelAPIError{Status: http.StatusBadRequest, Msg: "a user with that username already exists"}
	ErrValidateBadRequest = &SentinelAPIError{Status: http.StatusBadRequest, Msg: "struct validation error"}

	ErrUserNotFound error = errors.New("user not found")
)
