package identityextractors

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	IdentityExtractorJWT IdentityExtractor = "JWT"
)

type JWTExtractor struct {
	logger *logrus.Entry
}

// ExtractAuthentication stores the raw bearer token, if any, in the gin and request contexts.
func (extractor JWTExtractor) ExtractAuthentication(ctx *gin.Context, req http.Request) {
	header := req.Header.Get("authorization")

	// The Authorization header typically looks like "Bearer <token>"
	authToken := strings.Fields(header)
	if len(authToken) != 2 || !strings.EqualFold(authToken[0], "Bearer") {
		return
	}

	extractor.logger.Tracef("found bearer token in request headers")

	ctx.Set(string(IdentityExtractorJWT), authToken[1])
	ctx.Request = ctx.Request.WithContext(context.WithValue(ctx.Request.Context(), string(IdentityExtractorJWT), authToken[1]))
}

// BearerToken returns the token collected by JWTExtractor.
func BearerToken(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(string(IdentityExtractorJWT)).(string)
	return token, ok && token != ""
}
