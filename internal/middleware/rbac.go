package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sims/sims-backend/internal/model"
	"github.com/sims/sims-backend/internal/response"
)

// RequirePermission checks that the JWT carries the required permission.
func RequirePermission(permission model.Permission) gin.HandlerFunc {
	return RequireAnyPermission(permission)
}

// RequireAnyPermission checks that the JWT carries at least one of the given permissions.
func RequireAnyPermission(permissions ...model.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}

		for _, p := range claims.Permissions {
			for _, want := range permissions {
				if p == string(want) {
					c.Next()
					return
				}
			}
		}

		response.AbortFail(c, http.StatusForbidden, response.ErrPermissionDenied)
	}
}
