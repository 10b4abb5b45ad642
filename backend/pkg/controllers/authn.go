package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lamassuiot/authping/core/pkg/resources"
	"github.com/lamassuiot/authping/core/pkg/services"
)

type authnHttpRoutes struct {
	svc services.AuthnService
}

func NewAuthnHttpRoutes(svc services.AuthnService) *authnHttpRoutes {
	return &authnHttpRoutes{
		svc: svc,
	}
}

func (r *authnHttpRoutes) ObtainTokenPair(ctx *gin.Context) {
	var requestBody resources.TokenObtainRequest
	if err := ctx.ShouldBindJSON(&requestBody); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	pair, err := r.svc.Login(ctx.Request.Context(), services.LoginInput{
		Username: requestBody.Username,
		Password: requestBody.Password,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, pair)
}

func (r *authnHttpRoutes) RefreshToken(ctx *gin.Context) {
	var requestBody resources.TokenRefreshRequest
	if err := ctx.ShouldBindJSON(&requestBody); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	pair, err := r.svc.Refresh(ctx.Request.Context(), services.RefreshInput{
		Refresh: requestBody.Refresh,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, pair)
}

func (r *authnHttpRoutes) Register(ctx *gin.Context) {
	var requestBody resources.RegisterRequest
	if err := ctx.ShouldBindJSON(&requestBody); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	user, err := r.svc.Register(ctx.Request.Context(), services.RegisterInput{
		Username: requestBody.Username,
		Password: requestBody.Password,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, resources.RegisterResponse{
		ID:       user.ID,
		Username: user.Username,
	})
}
