package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sims/sims-backend/internal/middleware"
	"github.com/sims/sims-backend/internal/model"
	"github.com/sims/sims-backend/internal/response"
	"github.com/sims/sims-backend/internal/service"
	"github.com/sims/sims-backend/internal/validator"
)

// Authenticator signs users in and out.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (*model.LoginResponse, error)
	Logout(ctx context.Context, claims *service.Claims) error
	Me(ctx context.Context, claims *service.Claims) (*model.User, error)
}

var _ Authenticator = (*service.AuthService)(nil)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	auth Authenticator
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth Authenticator) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Login godoc
// POST /api/v1/auth/login
// Authenticates a user and returns a JWT with the role's permissions.
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	resp, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		failWithError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// Logout godoc
// POST /api/v1/auth/logout
// Ends the session of the presented token.
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	if err := h.auth.Logout(c.Request.Context(), claims); err != nil {
		failWithError(c, err)
		return
	}

	response.Success(c, http.StatusOK, model.MessageResponse{Message: "Logged out successfully"})
}

// Me godoc
// GET /api/v1/auth/me
// Returns the signed-in user.
func (h *AuthHandler) Me(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	user, err := h.auth.Me(c.Request.Context(), claims)
	if err != nil {
		failWithError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"user":        user,
		"permissions": claims.Permissions,
	})
}
