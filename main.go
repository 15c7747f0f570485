// main.go
package main

import (
	"context"
	"log"
	"net/http"
	"path/filepath"
	"runtime"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"chapel-site/config"
	"chapel-site/controllers"
	"chapel-site/logger"
	"chapel-site/middleware"
	"chapel-site/notify"
	"chapel-site/services"
	"chapel-site/store"
	"chapel-site/websocket"
)

func main() {
	cfg := config.Load()
	logger.SetLogLevel(cfg.Env)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
		websocket.EnableMetrics()
	}

	ctx := context.Background()

	// Managed backends: Firestore events, RTDB sermons, S3 blobs.
	app, err := store.NewFirebaseApp(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialise Firebase: %v", err)
	}
	eventStore, err := store.NewFirestoreEventStore(ctx, app)
	if err != nil {
		log.Fatalf("Failed to open the event store: %v", err)
	}
	sermonStore, err := store.NewRTDBSermonStore(ctx, app)
	if err != nil {
		log.Fatalf("Failed to open the sermon store: %v", err)
	}
	blobStore := store.NewS3BlobStore(cfg.S3Bucket, cfg.S3Region)

	notifier := notify.LogNotifier{}

	googleCfg := &oauth2.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  cfg.GoogleRedirectURL,
		Scopes:       []string{"openid", "profile", "email"},
		Endpoint:     google.Endpoint,
	}

	eventService := services.NewEventService(eventStore, notifier)
	sermonService := services.NewSermonService(sermonStore, notifier)
	uploadService := services.NewUploadService(blobStore, notifier)
	authService := services.NewAuthService(
		services.NewIdentityToolkitProvider(cfg.FirebaseWebAPIKey),
		googleCfg, notifier, cfg.AdminEmail, cfg.AdminPasswordHash)

	// Populate the merged collections before serving; both degrade
	// gracefully when the backends are unreachable.
	eventService.LoadEvents(ctx)
	sermonService.LoadSermons(ctx)

	controllers.SetConfig(cfg.ApplicationURL, cfg.ApplicationURL+"/updates")
	controllers.SetServices(eventService, sermonService, uploadService, authService, notifier)

	// Initialize the router
	router := gin.Default()

	// Initialize session store
	sessionStore := cookie.NewStore([]byte(cfg.SessionSecret))
	sessionStore.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   cfg.Env == "production",
		SameSite: http.SameSiteLaxMode,
	})
	router.Use(sessions.Sessions("chapelsession", sessionStore))

	// Determine the absolute path to the templates directory
	_, b, _, _ := runtime.Caller(0)
	basepath := filepath.Dir(b)
	router.LoadHTMLGlob(filepath.Join(basepath, "templates", "*.html"))

	// Serve static files under /static
	router.Static("/static", "./static")

	// Public routes
	router.GET("/health", controllers.Health)
	router.GET("/", controllers.Home)
	router.GET("/login", controllers.ShowLoginPage)
	router.POST("/login", controllers.PerformLogin)
	router.POST("/signup", controllers.PerformSignup)
	router.GET("/logout", controllers.Logout)

	// Google Auth routes
	router.GET("/auth/google/login", controllers.GoogleLogin)
	router.GET("/auth/google/callback", controllers.GoogleCallback)

	// Public content API
	router.GET("/api/events", controllers.ListEvents)
	router.GET("/api/sermons", controllers.ListSermons)
	router.GET("/events/:id/calendar.ics", controllers.EventCalendar)
	router.GET("/events/:id/qrcode", controllers.EventQRCode)

	// Live content updates
	router.GET("/updates", func(c *gin.Context) {
		websocket.ServeWs(c.Writer, c.Request)
	})

	// Admin-only mutations
	admin := router.Group("/api", middleware.AdminRequired())
	{
		admin.POST("/events", controllers.CreateEvent)
		admin.PUT("/events/:id", controllers.UpdateEvent)
		admin.POST("/sermons", controllers.CreateSermon)
		admin.POST("/uploads/audio", controllers.UploadSermonAudio)
		admin.POST("/uploads/image", controllers.UploadEventImage)
	}

	// Start the update hub
	go websocket.HandleMessages()

	// Start the server
	if err := router.Run(cfg.Addr); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
