package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapErrorKeepsSentinel(t *testing.T) {
	cause := errors.New("signature is invalid")
	err := WrapError(cause, ErrInvalidToken)

	assert.True(t, errors.Is(err, ErrInvalidToken))
	assert.True(t, errors.Is(err, cause))
	assert.False(t, errors.Is(err, ErrInvalidCredentials))

	var apiErr APIError
	if assert.True(t, errors.As(err, &apiErr)) {
		status, msg := apiErr.APIError()
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, ErrInvalidToken.Msg, msg)
	}
}

func TestWrapErrorThroughFmt(t *testing.T) {
	err := fmt.Errorf("refresh: %w", WrapError(errors.New("expired"), ErrInvalidToken))

	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestSentinelAPIError(t *testing.T) {
	status, msg := ErrUserAlreadyExists.APIError()
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, ErrUserAlreadyExists.Error(), msg)
}
