// Package store holds the clients for the managed backends: Firestore event
// documents, Realtime Database sermon records, and the S3 blob store. Durable
// state lives behind these interfaces; the services own the in-memory view.
// File: store/firebase.go
package store

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"

	"chapel-site/config"
	"chapel-site/logger"
)

// NewFirebaseApp initialises the Firebase Admin SDK app shared by the event
// and sermon stores.
func NewFirebaseApp(ctx context.Context, cfg config.Config) (*firebase.App, error) {
	conf := &firebase.Config{
		ProjectID:   cfg.FirebaseProjectID,
		DatabaseURL: cfg.FirebaseDatabaseURL,
	}

	var opts []option.ClientOption
	if cfg.FirebaseCredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.FirebaseCredentialsFile))
	}

	app, err := firebase.NewApp(ctx, conf, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase init failed: %w", err)
	}

	logger.Info.Printf("NewFirebaseApp: connected to project %s", cfg.FirebaseProjectID)
	return app, nil
}
