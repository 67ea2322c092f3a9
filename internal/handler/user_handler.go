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

// UserService is the account logic used by UserHandler.
type UserService interface {
	List(ctx context.Context) ([]model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	Create(ctx context.Context, req model.CreateUserRequest) (*model.User, error)
	Update(ctx context.Context, id int64, req model.UpdateUserRequest) (*model.User, error)
	Delete(ctx context.Context, actorID, id int64) error
}

var _ UserService = (*service.UserService)(nil)

// UserHandler handles user account management.
type UserHandler struct {
	users UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users UserService) *UserHandler {
	return &UserHandler{users: users}
}

// ListUsers godoc
// GET /api/v1/users
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		failWithError(c, err)
		return
	}
	response.Success(c, http.StatusOK, users)
}

// GetUser godoc
// GET /api/v1/users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), id)
	if err != nil {
		failWithError(c, err)
		return
	}
	response.Success(c, http.StatusOK, user)
}

// CreateUser godoc
// POST /api/v1/users
// Creates a user account. Usernames are unique.
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req model.CreateUserRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	user, err := h.users.Create(c.Request.Context(), req)
	if err != nil {
		failWithError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, user)
}

// UpdateUser godoc
// PUT /api/v1/users/:id
// Updates a user. An empty password keeps the current one.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req model.UpdateUserRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	user, err := h.users.Update(c.Request.Context(), id, req)
	if err != nil {
		failWithError(c, err)
		return
	}
	response.Success(c, http.StatusOK, user)
}

// DeleteUser godoc
// DELETE /api/v1/users/:id
// Deletes a user. Users cannot delete their own account.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	if err := h.users.Delete(c.Request.Context(), claims.UserID, id); err != nil {
		failWithError(c, err)
		return
	}
	response.Success(c, http.StatusOK, model.MessageResponse{Message: "User deleted successfully"})
}
