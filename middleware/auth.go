// Package middleware provides request filters and security checks for the application.
// File: middleware/auth.go
package middleware

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"chapel-site/logger"
)

// -------------- authentication middleware --------------

// AuthRequired ensures a signed-in identity is present in the session before
// letting the request through. Page requests without one are sent to /login.
func AuthRequired(c *gin.Context) {
	session := sessions.Default(c)

	if CurrentIdentity(session) == nil {
		logger.Warn.Printf("AuthRequired: no identity in session for %s", c.Request.URL.Path)
		c.Redirect(http.StatusFound, "/login")
		c.Abort()
		return
	}

	logger.Debug.Println("[AuthRequired] identity present - proceeding with request")
	c.Next()
}
