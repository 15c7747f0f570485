// File: store/sermons.go
package store

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/db"

	"chapel-site/logger"
	"chapel-site/models"
)

// sermonsPath is the Realtime Database path holding sermon child records
// under store-generated push keys.
const sermonsPath = "sermons"

// SermonStore is the keyed real-time store client for sermons. Unlike the
// event document store, keys are generated on append and the full collection
// is read in one call, so the two stay separate interfaces.
type SermonStore interface {
	// FetchAll returns every child record keyed by its generated key.
	FetchAll(ctx context.Context) (map[string]models.SermonRecord, error)
	// Push appends a record under a new generated key and returns the key.
	Push(ctx context.Context, rec models.SermonRecord) (string, error)
}

// RTDBSermonStore implements SermonStore against the Firebase Realtime
// Database.
type RTDBSermonStore struct {
	ref *db.Ref
}

// NewRTDBSermonStore opens the database client from the shared app.
func NewRTDBSermonStore(ctx context.Context, app *firebase.App) (*RTDBSermonStore, error) {
	client, err := app.Database(ctx)
	if err != nil {
		return nil, fmt.Errorf("realtime database client failed: %w", err)
	}
	return &RTDBSermonStore{ref: client.NewRef(sermonsPath)}, nil
}

// FetchAll reads the whole sermons path. A nil map (empty path) is returned
// as an empty map so callers never see a nil collection.
func (s *RTDBSermonStore) FetchAll(ctx context.Context) (map[string]models.SermonRecord, error) {
	var records map[string]models.SermonRecord
	if err := s.ref.Get(ctx, &records); err != nil {
		return nil, fmt.Errorf("fetch sermons: %w", err)
	}
	if records == nil {
		records = map[string]models.SermonRecord{}
	}
	return records, nil
}

// Push appends the record under a store-generated unique key.
func (s *RTDBSermonStore) Push(ctx context.Context, rec models.SermonRecord) (string, error) {
	newRef, err := s.ref.Push(ctx, rec)
	if err != nil {
		return "", fmt.Errorf("push sermon: %w", err)
	}
	logger.Debug.Printf("Push: sermon stored as %s", newRef.Key)
	return newRef.Key, nil
}
