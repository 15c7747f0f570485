// Package controllers handles user authentication and session management.
// File: controllers/auth_controller.go
package controllers

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"chapel-site/logger"
	"chapel-site/middleware"
)

// oauthStateKey is the session key holding the anti-forgery state for the
// Google redirect flow.
const oauthStateKey = "oauthState"

// PerformLogin authenticates email/password credentials and stores the
// identity in the session. Failures re-render the form; the gate itself
// never exposes why a sign-in failed.
func PerformLogin(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")

	if email == "" || password == "" {
		c.HTML(http.StatusBadRequest, "login.html", gin.H{"Error": "Please fill in all fields."})
		return
	}

	identity, ok := authService.Login(c.Request.Context(), email, password)
	if !ok {
		logger.Warn.Printf("PerformLogin: invalid login attempt for %s", email)
		c.HTML(http.StatusUnauthorized, "login.html", gin.H{"Error": "Invalid credentials"})
		return
	}

	session := sessions.Default(c)
	if err := middleware.SaveIdentity(session, identity); err != nil {
		logger.Error.Println("PerformLogin: failed to save session:", err)
		c.HTML(http.StatusInternalServerError, "login.html", gin.H{"Error": "Internal error, please try again."})
		return
	}

	logger.Info.Printf("PerformLogin: %s signed in", email)
	c.Redirect(http.StatusFound, "/")
}

// PerformSignup creates an email/password account and signs it in.
func PerformSignup(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")

	if email == "" || password == "" {
		c.HTML(http.StatusBadRequest, "login.html", gin.H{"Error": "Please fill in all fields."})
		return
	}

	identity, ok := authService.Signup(c.Request.Context(), email, password)
	if !ok {
		c.HTML(http.StatusUnauthorized, "login.html", gin.H{"Error": "Could not create the account."})
		return
	}

	session := sessions.Default(c)
	if err := middleware.SaveIdentity(session, identity); err != nil {
		logger.Error.Println("PerformSignup: failed to save session:", err)
		c.HTML(http.StatusInternalServerError, "login.html", gin.H{"Error": "Internal error, please try again."})
		return
	}

	c.Redirect(http.StatusFound, "/")
}

// GoogleLogin starts the federated sign-in redirect.
func GoogleLogin(c *gin.Context) {
	state, err := randomState()
	if err != nil {
		logger.Error.Println("GoogleLogin: state generation failed:", err)
		c.HTML(http.StatusInternalServerError, "login.html", gin.H{"Error": "Internal error, please try again."})
		return
	}

	session := sessions.Default(c)
	session.Set(oauthStateKey, state)
	if err := session.Save(); err != nil {
		logger.Error.Println("GoogleLogin: failed to save session:", err)
		c.HTML(http.StatusInternalServerError, "login.html", gin.H{"Error": "Internal error, please try again."})
		return
	}

	url := authService.GoogleAuthURL(state)
	if url == "" {
		c.HTML(http.StatusServiceUnavailable, "login.html", gin.H{"Error": "Google sign-in is not configured."})
		return
	}
	c.Redirect(http.StatusFound, url)
}

// GoogleCallback completes federated sign-in. Provider errors arrive on the
// query string and are classified by the auth service; either way the user
// ends up back on a page rather than an error screen.
func GoogleCallback(c *gin.Context) {
	session := sessions.Default(c)

	wantState, _ := session.Get(oauthStateKey).(string)
	session.Delete(oauthStateKey)
	_ = session.Save()

	providerErr := c.Query("error")
	if providerErr == "" && (wantState == "" || c.Query("state") != wantState) {
		logger.Warn.Println("GoogleCallback: state mismatch, rejecting callback")
		c.Redirect(http.StatusFound, "/login")
		return
	}

	identity, ok := authService.LoginWithGoogle(c.Request.Context(), c.Query("code"), providerErr)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	if err := middleware.SaveIdentity(session, identity); err != nil {
		logger.Error.Println("GoogleCallback: failed to save session:", err)
		c.Redirect(http.StatusFound, "/login")
		return
	}

	logger.Info.Printf("GoogleCallback: %s signed in via Google", identity.Email)
	c.Redirect(http.StatusFound, "/")
}

// Logout clears the session identity. Logging out while already signed out
// succeeds the same way.
func Logout(c *gin.Context) {
	session := sessions.Default(c)

	if identity := middleware.CurrentIdentity(session); identity != nil {
		logger.Info.Printf("Logout: signing out %s", identity.Email)
	}

	if err := middleware.ClearIdentity(session); err != nil {
		logger.Error.Printf("Logout: error saving session during logout: %v", err)
	}
	authService.Logout()

	c.Redirect(http.StatusFound, "/")
}

func randomState() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
