// Package config reads application settings from the environment.
// File: config/config.go
package config

import (
	"os"

	"github.com/joho/godotenv"

	"chapel-site/logger"
)

// Config holds every environment-driven setting the site needs. Backend
// project credentials stay in the environment (or a local .env file); nothing
// here is persisted by the application itself.
type Config struct {
	Env            string // development | staging | production
	Addr           string
	ApplicationURL string
	SessionSecret  string

	// Firebase project (events, sermons, identity provider)
	FirebaseProjectID       string
	FirebaseCredentialsFile string
	FirebaseDatabaseURL     string
	FirebaseWebAPIKey       string

	// Google OAuth (federated sign-in)
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string

	// S3 (uploaded audio and images)
	S3Bucket string
	S3Region string

	// Optional bootstrap admin so the site is usable before any Firebase
	// account exists. The password is a bcrypt hash, never plaintext.
	AdminEmail        string
	AdminPasswordHash string
}

// Load reads a .env file if present and assembles the Config. Missing
// optional values fall back to local-development defaults, matching how the
// rest of the app treats the environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		logger.Debug.Println("Load: no .env file found, relying on process environment")
	}

	return Config{
		Env:            getenv("APP_ENV", "development"),
		Addr:           getenv("ADDR", ":8080"),
		ApplicationURL: getenv("APPLICATION_URL", "http://localhost:8080"),
		SessionSecret:  getenv("SESSION_SECRET", "dev-session-secret"),

		FirebaseProjectID:       os.Getenv("FIREBASE_PROJECT_ID"),
		FirebaseCredentialsFile: os.Getenv("FIREBASE_CREDENTIALS_FILE"),
		FirebaseDatabaseURL:     os.Getenv("FIREBASE_DATABASE_URL"),
		FirebaseWebAPIKey:       os.Getenv("FIREBASE_WEB_API_KEY"),

		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURL:  getenv("GOOGLE_REDIRECT_URL", "http://localhost:8080/auth/google/callback"),

		S3Bucket: os.Getenv("S3_BUCKET"),
		S3Region: getenv("AWS_REGION", "ap-southeast-2"),

		AdminEmail:        os.Getenv("ADMIN_EMAIL"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
