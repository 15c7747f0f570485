// Package controllers. File: controllers/page_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"chapel-site/logger"
	"chapel-site/middleware"
	"chapel-site/notify"
	"chapel-site/services"
)

var (
	// ApplicationURL and WebsocketURL are injected from main so pages can
	// render absolute links and the live-update socket address.
	ApplicationURL string
	WebsocketURL   string
)

// Shared service handles, wired once from main.
var (
	eventService  services.EventServiceInterface
	sermonService services.SermonServiceInterface
	uploadService services.UploadServiceInterface
	authService   services.AuthServiceInterface
	notifier      notify.Notifier
)

// SetConfig stores the externally visible URLs.
func SetConfig(applicationURL, websocketURL string) {
	ApplicationURL = applicationURL
	WebsocketURL = websocketURL
}

// SetServices wires the controllers to their services and the notification
// channel.
func SetServices(e services.EventServiceInterface, s services.SermonServiceInterface, u services.UploadServiceInterface, a services.AuthServiceInterface, n notify.Notifier) {
	eventService = e
	sermonService = s
	uploadService = u
	authService = a
	notifier = n
}

// Health responds to load-balancer health checks.
func Health(c *gin.Context) {
	logger.Debug.Println("Health: Health check requested")
	c.String(http.StatusOK, "OK")
}

// Home renders the landing page: hero, upcoming events, recent sermons. The
// identity, when present, switches on the admin affordances in the template.
func Home(c *gin.Context) {
	session := sessions.Default(c)
	identity := middleware.CurrentIdentity(session)

	data := gin.H{
		"WebsocketURL": WebsocketURL,
		"Identity":     identity,
		"Events":       eventService.Events(),
		"Sermons":      sermonService.Sermons(),
	}
	c.HTML(http.StatusOK, "home.html", data)
}

// ShowLoginPage renders the admin login form.
func ShowLoginPage(c *gin.Context) {
	session := sessions.Default(c)
	if middleware.CurrentIdentity(session) != nil {
		c.Redirect(http.StatusFound, "/")
		return
	}
	c.HTML(http.StatusOK, "login.html", gin.H{})
}
