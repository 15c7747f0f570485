// Middleware guarding admin-only mutation endpoints.
// File: middleware/admin_required.go
package middleware

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"chapel-site/logger"
)

// AdminRequired blocks API mutations unless a signed-in identity exists. The
// site has a single privilege tier: any signed-in account is an admin.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)

		if CurrentIdentity(session) == nil {
			logger.Warn.Printf("AdminRequired: unauthorised %s %s blocked", c.Request.Method, c.Request.URL.Path)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		c.Next()
	}
}
