package headerextractors

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lamassuiot/authping/core"
	"github.com/sirupsen/logrus"
)

const (
	HttpSourceHeader    = "x-authping-source"
	HttpRequestIDHeader = "x-request-id"
)

func updateContextWithRequestID(ctx *gin.Context, headers http.Header) {
	reqID := headers.Get(HttpRequestIDHeader)
	if reqID != "" {
		ctx.Set(core.ContextKeyRequestID, reqID)
		ctx.Request = ctx.Request.WithContext(context.WithValue(ctx.Request.Context(), core.ContextKeyRequestID, reqID))
	}
}

func updateContextWithSource(ctx *gin.Context, headers http.Header) {
	source := headers.Get(HttpSourceHeader)
	if source != "" {
		ctx.Set(core.ContextKeySource, source)
		ctx.Request = ctx.Request.WithContext(context.WithValue(ctx.Request.Context(), core.ContextKeySource, source))
	}
}

func RequestMetadataToContextMiddleware(logger *logrus.Entry) gin.HandlerFunc {
	return func(c *gin.Context) {
		updateContextWithRequestID(c, c.Request.Header)
		updateContextWithSource(c, c.Request.Header)

		c.Next()
	}
}
