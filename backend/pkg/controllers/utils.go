package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lamassuiot/authping/core/pkg/errs"
)

// handleError renders err as {"err": msg} using the status carried by errs.APIError.
// Errors without one are not exposed to the caller.
func handleError(ctx *gin.Context, err error) {
	var apiErr errs.APIError
	if !errors.As(err, &apiErr) {
		ctx.JSON(http.StatusInternalServerError, gin.H{"err": "internal server error"})
		return
	}

	status, msg := apiErr.APIError()
	if status == http.StatusUnauthorized {
		ctx.Header("WWW-Authenticate", `Bearer realm="api"`)
	}

	ctx.JSON(status, gin.H{"err": msg})
}
