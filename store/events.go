// File: store/events.go
package store

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"

	"chapel-site/logger"
	"chapel-site/models"
)

// eventsCollection is the Firestore collection holding one document per
// special event. Permanent events never appear here.
const eventsCollection = "events"

// EventStore is the document-store client for events. Documents carry the
// Event fields without the id; the document name is the id.
type EventStore interface {
	// FetchAll returns every stored event, ordered by date descending.
	FetchAll(ctx context.Context) ([]models.Event, error)
	// CreateOne stores a new event document and returns the assigned id.
	CreateOne(ctx context.Context, event models.Event) (string, error)
	// UpdateOne merges the given fields into the document with the given id.
	UpdateOne(ctx context.Context, id string, fields map[string]interface{}) error
}

// FirestoreEventStore implements EventStore against Cloud Firestore.
type FirestoreEventStore struct {
	client *firestore.Client
}

// NewFirestoreEventStore opens the Firestore client from the shared app.
func NewFirestoreEventStore(ctx context.Context, app *firebase.App) (*FirestoreEventStore, error) {
	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("firestore client failed: %w", err)
	}
	return &FirestoreEventStore{client: client}, nil
}

// FetchAll queries the events collection ordered by date descending.
// Documents that fail to decode are skipped rather than failing the whole
// listing; a malformed document should not blank the events page.
func (s *FirestoreEventStore) FetchAll(ctx context.Context) ([]models.Event, error) {
	docs, err := s.client.Collection(eventsCollection).
		OrderBy("date", firestore.Desc).
		Documents(ctx).
		GetAll()
	if err != nil {
		return nil, fmt.Errorf("fetch events: %w", err)
	}

	events := make([]models.Event, 0, len(docs))
	for _, doc := range docs {
		var e models.Event
		if err := doc.DataTo(&e); err != nil {
			logger.Warn.Printf("FetchAll: skipping malformed event %s: %v", doc.Ref.ID, err)
			continue
		}
		e.ID = doc.Ref.ID
		events = append(events, e)
	}
	return events, nil
}

// CreateOne adds a new document; Firestore assigns the id.
func (s *FirestoreEventStore) CreateOne(ctx context.Context, event models.Event) (string, error) {
	ref, _, err := s.client.Collection(eventsCollection).Add(ctx, event)
	if err != nil {
		return "", fmt.Errorf("create event: %w", err)
	}
	logger.Debug.Printf("CreateOne: event stored as %s", ref.ID)
	return ref.ID, nil
}

// UpdateOne merges fields into an existing document by id.
func (s *FirestoreEventStore) UpdateOne(ctx context.Context, id string, fields map[string]interface{}) error {
	_, err := s.client.Collection(eventsCollection).Doc(id).Set(ctx, fields, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("update event %s: %w", id, err)
	}
	return nil
}

// Close releases the underlying Firestore client.
func (s *FirestoreEventStore) Close() error {
	return s.client.Close()
}
