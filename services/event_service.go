// Package services: services/event_service.go
package services

import (
	"context"
	"sync"

	"chapel-site/logger"
	"chapel-site/models"
	"chapel-site/notify"
	"chapel-site/store"
)

// PermanentEvents returns the fixed recurring entries that are always shown,
// whatever the remote store holds. Their literal ids can never collide with
// Firestore-assigned document ids.
func PermanentEvents() []models.Event {
	return []models.Event{
		{
			ID:          "sunday-service",
			Title:       "Sunday Service",
			Time:        "10:00",
			Description: "Weekly worship service for all ages. Join us for praise, prayer, and fellowship.",
			ImageURL:    "https://images.unsplash.com/photo-1438232992991-995b7058bbb3?ixlib=rb-4.0.3&auto=format&fit=crop&w=1974&q=80",
			IsPermanent: true,
			Type:        models.EventTypeRegular,
		},
		{
			ID:          "bible-study",
			Title:       "Bible Study",
			Time:        "19:00",
			Description: "Wednesday evening Bible study. Dive deeper into God's word with our community.",
			ImageURL:    "https://images.unsplash.com/photo-1504052434569-70ad5836ab65?ixlib=rb-4.0.3&auto=format&fit=crop&w=1470&q=80",
			IsPermanent: true,
			Type:        models.EventTypeRegular,
		},
	}
}

// EventServiceInterface is what the controllers program against.
type EventServiceInterface interface {
	LoadEvents(ctx context.Context) []models.Event
	SaveEvent(ctx context.Context, input models.Event, existing *models.Event) (models.Event, error)
	Events() []models.Event
	Find(id string) (models.Event, bool)
}

// EventService owns the merged in-memory event collection: the permanent
// seeds plus whatever the remote document store holds. All mutations write
// through to the store first; local state only changes on a confirmed write.
type EventService struct {
	mu       sync.Mutex
	store    store.EventStore
	notifier notify.Notifier
	events   []models.Event
}

// NewEventService starts with the permanent seeds so the events page is never
// empty, even before (or without) a successful remote fetch.
func NewEventService(s store.EventStore, n notify.Notifier) *EventService {
	return &EventService{
		store:    s,
		notifier: n,
		events:   PermanentEvents(),
	}
}

// LoadEvents fetches the stored special events and replaces the merged
// collection with seeds + fetched entries, in that order. A fetch failure is
// non-fatal: the seeds alone remain and the failure is surfaced to the user.
func (s *EventService) LoadEvents(ctx context.Context) []models.Event {
	fetched, err := s.store.FetchAll(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		logger.Error.Printf("LoadEvents: fetch failed: %v", err)
		s.notifier.Error("Failed to load events")
		s.events = PermanentEvents()
		return s.snapshot()
	}

	s.events = append(PermanentEvents(), fetched...)
	return s.snapshot()
}

// SaveEvent writes an admin edit through to the store and reconciles the
// local collection with the confirmed write. Three paths:
//   - existing permanent: only the time is writable; everything else in the
//     input is ignored.
//   - existing non-permanent: full field update by id.
//   - no existing: create; the store-assigned id becomes the new entry's id.
//
// On store failure the local collection is untouched and the error goes back
// to the caller so the edit form stays open.
func (s *EventService) SaveEvent(ctx context.Context, input models.Event, existing *models.Event) (models.Event, error) {
	var saved models.Event
	var err error

	switch {
	case existing != nil && existing.IsPermanent:
		saved, err = s.saveTimeOnly(ctx, input, existing)
	case existing != nil && existing.ID != "":
		saved, err = s.saveExisting(ctx, input, existing)
	default:
		saved, err = s.saveNew(ctx, input)
	}

	if err != nil {
		logger.Error.Printf("SaveEvent: %v", err)
		s.notifier.Error("Failed to save event")
		return models.Event{}, err
	}

	s.notifier.Success("Event saved successfully!")
	return saved, nil
}

func (s *EventService) saveTimeOnly(ctx context.Context, input models.Event, existing *models.Event) (models.Event, error) {
	if err := s.store.UpdateOne(ctx, existing.ID, map[string]interface{}{"time": input.Time}); err != nil {
		return models.Event{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var saved models.Event
	for i := range s.events {
		if s.events[i].ID == existing.ID {
			s.events[i].Time = input.Time
			saved = s.events[i]
			break
		}
	}
	return saved, nil
}

func (s *EventService) saveExisting(ctx context.Context, input models.Event, existing *models.Event) (models.Event, error) {
	fields := map[string]interface{}{
		"title":       input.Title,
		"time":        input.Time,
		"date":        input.Date,
		"description": input.Description,
		"imageUrl":    input.ImageURL,
		"type":        eventTypeOrDefault(input.Type),
	}
	if err := s.store.UpdateOne(ctx, existing.ID, fields); err != nil {
		return models.Event{}, err
	}

	merged := *existing
	merged.Title = input.Title
	merged.Time = input.Time
	merged.Date = input.Date
	merged.Description = input.Description
	merged.ImageURL = input.ImageURL
	merged.Type = eventTypeOrDefault(input.Type)

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.events {
		if s.events[i].ID == existing.ID {
			s.events[i] = merged
			break
		}
	}
	return merged, nil
}

func (s *EventService) saveNew(ctx context.Context, input models.Event) (models.Event, error) {
	input.ID = ""
	input.IsPermanent = false
	input.Type = eventTypeOrDefault(input.Type)

	id, err := s.store.CreateOne(ctx, input)
	if err != nil {
		return models.Event{}, err
	}

	created := input
	created.ID = id

	s.mu.Lock()
	defer s.mu.Unlock()

	s.events = append(s.events, created)
	return created, nil
}

// Events returns a copy of the merged collection in display order.
func (s *EventService) Events() []models.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Find looks up an event by id in the merged collection.
func (s *EventService) Find(id string) (models.Event, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.events {
		if e.ID == id {
			return e, true
		}
	}
	return models.Event{}, false
}

// snapshot copies the slice; callers must hold s.mu.
func (s *EventService) snapshot() []models.Event {
	out := make([]models.Event, len(s.events))
	copy(out, s.events)
	return out
}

func eventTypeOrDefault(t string) string {
	if t == "" {
		return models.EventTypeSpecial
	}
	return t
}
