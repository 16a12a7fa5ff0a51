package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/comunitech/acolhe-api/internal/models"
	appErrors "github.com/comunitech/acolhe-api/pkg/errors"
	"github.com/comunitech/acolhe-api/pkg/response"
)

// Ownership restricts a route to staff or to the customer whose ID matches
// the named route parameter.
func Ownership(paramName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := CurrentPrincipal(c)
		if !ok {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		if principal.Role == models.RoleStaff {
			c.Next()
			return
		}
		if target := c.Param(paramName); target != "" && target == principal.ID {
			c.Next()
			return
		}
		response.Error(c, appErrors.ErrForbidden)
		c.Abort()
	}
}

// RequireStaff restricts a route to staff principals only.
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := CurrentPrincipal(c)
		if !ok {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		if principal.Role != models.RoleStaff {
			response.Error(c, appErrors.ErrForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}
