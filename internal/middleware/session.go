package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sims/sims-backend/internal/response"
	"github.com/sims/sims-backend/internal/service"
)

var errNoClaims = errors.New("session check ran without claims in context")

// RequireActiveSession rejects tokens whose session was ended by logout.
// It must run after RequireAuth.
func RequireActiveSession(auth TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			_ = c.Error(errNoClaims)
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}

		if err := auth.ValidateSession(c.Request.Context(), claims); err != nil {
			if errors.Is(err, service.ErrSessionRevoked) {
				response.AbortFail(c, http.StatusUnauthorized, response.ErrSessionInvalidated)
				return
			}
			_ = c.Error(err)
			response.AbortFail(c, http.StatusInternalServerError, response.ErrInternal)
			return
		}

		c.Next()
	}
}
