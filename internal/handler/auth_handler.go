package handler

import (
	"net/http"

	"github.com/campusly/college-management/internal/model"
	"github.com/campusly/college-management/internal/response"
	"github.com/campusly/college-management/internal/service"
	"github.com/campusly/college-management/internal/validator"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService *service.AuthService
	log         zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *service.AuthService, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		log:         log.With().Str("component", "auth_handler").Logger(),
	}
}

// Login godoc
// POST /cm/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.log.Warn().Str("username", req.Username).Str("ip", c.ClientIP()).Msg("login failed")
		writeError(c, h.log, err)
		return
	}

	h.log.Info().Str("username", req.Username).Msg("login succeeded")
	response.Success(c, http.StatusOK, resp)
}
