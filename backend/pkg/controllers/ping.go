package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lamassuiot/authping/core"
	"github.com/lamassuiot/authping/core/pkg/helpers"
	"github.com/sirupsen/logrus"
)

const PingLogMarker = "Successfully called API"

type pingHttpRoutes struct {
	logger *logrus.Entry
}

func NewPingHttpRoutes(logger *logrus.Entry) *pingHttpRoutes {
	return &pingHttpRoutes{
		logger: logger,
	}
}

// Ping must be mounted behind the auth guard: it trusts the identity already in the context.
func (r *pingHttpRoutes) Ping(ctx *gin.Context) {
	username := ctx.GetString(core.ContextKeyAuthUsername)

	lFunc := helpers.ConfigureLogger(ctx.Request.Context(), r.logger)
	lFunc.WithField("user", username).Infof("%s. User: %s", PingLogMarker, username)

	ctx.JSON(http.StatusOK, gin.H{"successful": true})
}
