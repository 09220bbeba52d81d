package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireAdmin ensures the authenticated principal carries the admin
// role. Role comes from the validated token, never from request fields.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.ID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "Unauthorized",
				"message": "Authentication required",
			})
			return
		}

		if !principal.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":   "Forbidden",
				"message": "Admin access required",
			})
			return
		}

		c.Next()
	}
}
