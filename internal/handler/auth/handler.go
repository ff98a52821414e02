package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/niramoy/clinic-api/internal/handler"
	"github.com/niramoy/clinic-api/internal/model"
	authService "github.com/niramoy/clinic-api/internal/service/auth"
)

type Handler struct {
	service *authService.Service
}

func NewHandler(service *authService.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	auth := r.Group("/auth")
	{
		auth.POST("/login", h.Login)
	}
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	tokens, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, authService.ErrInvalidCredentials) || errors.Is(err, authService.ErrAccountLocked) {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse(err.Error()))
			return
		}
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(tokens))
}
