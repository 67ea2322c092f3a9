// Package handler exposes the services over HTTP.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sims/sims-backend/internal/repository"
	"github.com/sims/sims-backend/internal/response"
	"github.com/sims/sims-backend/internal/service"
)

// parseID reads the :id path parameter. It writes the error response and
// returns false when the value is not a positive integer.
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return 0, false
	}
	return id, true
}

// failWithError maps service and store errors onto API error responses.
func failWithError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, repository.ErrDuplicateAdmissionNumber):
		response.Fail(c, http.StatusConflict, response.ErrDuplicateAdmissionNumber)
	case errors.Is(err, repository.ErrDuplicateUsername):
		response.Fail(c, http.StatusConflict, response.ErrDuplicateUsername)
	case errors.Is(err, repository.ErrConstraintViolation):
		response.Fail(c, http.StatusConflict, response.ErrConflict)
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
	case errors.Is(err, service.ErrUnsupportedField):
		response.Fail(c, http.StatusBadRequest, response.ErrUnsupportedField)
	case errors.Is(err, service.ErrPasswordTooLong):
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation,
			map[string]string{"password": err.Error()})
	case errors.Is(err, service.ErrSelfDelete):
		response.Fail(c, http.StatusForbidden, response.ErrActionForbidden)
	default:
		_ = c.Error(err)
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
