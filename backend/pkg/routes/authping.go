package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/lamassuiot/authping/backend/pkg/controllers"
	"github.com/lamassuiot/authping/backend/pkg/routes/middlewares/authguard"
	"github.com/lamassuiot/authping/core/pkg/services"
	"github.com/sirupsen/logrus"
)

func NewAuthPingRoutes(logger *logrus.Entry, httpGrp *gin.RouterGroup, svc services.AuthnService) {
	authnRoutes := controllers.NewAuthnHttpRoutes(svc)
	pingRoutes := controllers.NewPingHttpRoutes(logger)
	guard := authguard.NewAuthGuardMiddleware(logger, authguard.NewJWTGuard(svc))

	httpGrp.POST("/token/", authnRoutes.ObtainTokenPair)
	httpGrp.POST("/token/refresh/", authnRoutes.RefreshToken)
	httpGrp.POST("/register/", authnRoutes.Register)

	httpGrp.GET("/test", guard.Use(), pingRoutes.Ping)
}
