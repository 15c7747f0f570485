// services/event_service_test.go
package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"chapel-site/models"
	"chapel-site/notify"
)

// fakeEventStore records calls and returns scripted results.
type fakeEventStore struct {
	fetchResult []models.Event
	fetchErr    error

	createID  string
	createErr error
	created   []models.Event

	updateErr     error
	updatedID     string
	updatedFields map[string]interface{}
}

func (f *fakeEventStore) FetchAll(_ context.Context) ([]models.Event, error) {
	return f.fetchResult, f.fetchErr
}

func (f *fakeEventStore) CreateOne(_ context.Context, event models.Event) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	f.created = append(f.created, event)
	return f.createID, nil
}

func (f *fakeEventStore) UpdateOne(_ context.Context, id string, fields map[string]interface{}) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updatedID = id
	f.updatedFields = fields
	return nil
}

func TestLoadEvents_MergesSeedsWithFetched(t *testing.T) {
	fetched := []models.Event{
		{ID: "evt-1", Title: "Easter Picnic", Time: "12:00", Date: "2026-04-05", Type: models.EventTypeSpecial},
	}
	svc := NewEventService(&fakeEventStore{fetchResult: fetched}, &notify.Recorder{})

	events := svc.LoadEvents(context.Background())

	assert.Len(t, events, 3)
	assert.Equal(t, "sunday-service", events[0].ID)
	assert.Equal(t, "bible-study", events[1].ID)
	assert.Equal(t, "evt-1", events[2].ID)
}

func TestLoadEvents_FetchFailureFallsBackToSeeds(t *testing.T) {
	recorder := &notify.Recorder{}
	svc := NewEventService(&fakeEventStore{fetchErr: errors.New("firestore down")}, recorder)

	events := svc.LoadEvents(context.Background())

	assert.Len(t, events, 2)
	assert.True(t, events[0].IsPermanent)
	assert.True(t, events[1].IsPermanent)
	assert.Len(t, recorder.Errors, 1)
}

func TestLoadEvents_EmptyFetchKeepsSeedsOnly(t *testing.T) {
	svc := NewEventService(&fakeEventStore{}, &notify.Recorder{})

	events := svc.LoadEvents(context.Background())

	assert.Len(t, events, 2)
}

func TestSaveEvent_PermanentOnlyTimeIsWritable(t *testing.T) {
	fake := &fakeEventStore{}
	svc := NewEventService(fake, &notify.Recorder{})
	existing, found := svc.Find("sunday-service")
	assert.True(t, found)

	input := models.Event{Title: "Renamed Service", Time: "11:30", Description: "changed"}
	saved, err := svc.SaveEvent(context.Background(), input, &existing)

	assert.NoError(t, err)
	assert.Equal(t, "sunday-service", fake.updatedID)
	assert.Equal(t, map[string]interface{}{"time": "11:30"}, fake.updatedFields)

	// local state: time changed, everything else untouched
	assert.Equal(t, "11:30", saved.Time)
	assert.Equal(t, "Sunday Service", saved.Title)
	got, _ := svc.Find("sunday-service")
	assert.Equal(t, "11:30", got.Time)
	assert.Equal(t, "Sunday Service", got.Title)
}

func TestSaveEvent_ExistingFullUpdate(t *testing.T) {
	fake := &fakeEventStore{fetchResult: []models.Event{
		{ID: "evt-9", Title: "Old Title", Time: "09:00", Date: "2026-05-01", Type: models.EventTypeSpecial},
	}}
	svc := NewEventService(fake, &notify.Recorder{})
	svc.LoadEvents(context.Background())

	existing, _ := svc.Find("evt-9")
	input := models.Event{Title: "New Title", Time: "10:15", Date: "2026-05-02", Description: "updated", ImageURL: "https://img/x.jpg"}
	saved, err := svc.SaveEvent(context.Background(), input, &existing)

	assert.NoError(t, err)
	assert.Equal(t, "evt-9", fake.updatedID)
	assert.Equal(t, "New Title", fake.updatedFields["title"])
	assert.Equal(t, "10:15", fake.updatedFields["time"])

	assert.Equal(t, "evt-9", saved.ID)
	assert.Equal(t, "New Title", saved.Title)
	got, _ := svc.Find("evt-9")
	assert.Equal(t, "New Title", got.Title)
	assert.Equal(t, "https://img/x.jpg", got.ImageURL)
}

func TestSaveEvent_CreateAssignsStoreID(t *testing.T) {
	fake := &fakeEventStore{createID: "evt-new"}
	svc := NewEventService(fake, &notify.Recorder{})
	before := len(svc.Events())

	input := models.Event{Title: "Carol Night", Time: "18:00", Date: "2026-12-20"}
	saved, err := svc.SaveEvent(context.Background(), input, nil)

	assert.NoError(t, err)
	assert.Equal(t, "evt-new", saved.ID)
	assert.Equal(t, models.EventTypeSpecial, saved.Type)
	assert.Len(t, svc.Events(), before+1)

	got, found := svc.Find("evt-new")
	assert.True(t, found)
	assert.Equal(t, "Carol Night", got.Title)
}

func TestSaveEvent_StoreFailureLeavesLocalStateUntouched(t *testing.T) {
	recorder := &notify.Recorder{}
	fake := &fakeEventStore{createErr: errors.New("permission denied")}
	svc := NewEventService(fake, recorder)
	before := svc.Events()

	_, err := svc.SaveEvent(context.Background(), models.Event{Title: "Doomed", Time: "08:00"}, nil)

	assert.Error(t, err)
	assert.Equal(t, before, svc.Events())
	assert.Len(t, recorder.Errors, 1)
	assert.Empty(t, recorder.Successes)
}

func TestSaveEvent_UpdateFailurePropagates(t *testing.T) {
	fake := &fakeEventStore{fetchResult: []models.Event{
		{ID: "evt-2", Title: "Bake Sale", Time: "14:00", Date: "2026-06-01"},
	}}
	svc := NewEventService(fake, &notify.Recorder{})
	svc.LoadEvents(context.Background())
	fake.updateErr = errors.New("quota exceeded")

	existing, _ := svc.Find("evt-2")
	_, err := svc.SaveEvent(context.Background(), models.Event{Title: "Renamed", Time: "15:00"}, &existing)

	assert.Error(t, err)
	got, _ := svc.Find("evt-2")
	assert.Equal(t, "Bake Sale", got.Title)
	assert.Equal(t, "14:00", got.Time)
}

func TestPermanentEvents_IdsNeverEmpty(t *testing.T) {
	for _, e := range PermanentEvents() {
		assert.NotEmpty(t, e.ID)
		assert.True(t, e.IsPermanent)
		assert.Empty(t, e.Date)
	}
}
