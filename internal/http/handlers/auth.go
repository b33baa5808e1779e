package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stratahub/strata-portal/internal/http/response"
	pkgerrors "github.com/stratahub/strata-portal/internal/pkg/errors"
	"github.com/stratahub/strata-portal/internal/platform/logger"
	"github.com/stratahub/strata-portal/internal/services"
)

type AuthHandler struct {
	log         *logger.Logger
	authService services.AuthService
}

func NewAuthHandler(log *logger.Logger, authService services.AuthService) *AuthHandler {
	return &AuthHandler{log: log.With("handler", "AuthHandler"), authService: authService}
}

// POST /api/auth/login
// body: { "email": "...", "password": "..." }
func (ah *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	token, user, err := ah.authService.Login(c.Request.Context(), req.Email, req.Password)
	if errors.Is(err, pkgerrors.ErrUnauthorized) {
		response.RespondError(c, http.StatusUnauthorized, "invalid_credentials", err)
		return
	}
	if err != nil {
		ah.log.Error("Login failed", "error", err)
		response.RespondError(c, http.StatusInternalServerError, "login_failed", err)
		return
	}

	response.RespondOK(c, gin.H{"token": token, "user": user})
}
