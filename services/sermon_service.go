// Package services: services/sermon_service.go
package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"chapel-site/logger"
	"chapel-site/models"
	"chapel-site/notify"
	"chapel-site/store"
)

// untitledSermon is the display title for records stored without one.
const untitledSermon = "Untitled Sermon"

// Allow tests to pin the clock.
var nowFunc = time.Now

// SermonServiceInterface is what the controllers program against.
type SermonServiceInterface interface {
	LoadSermons(ctx context.Context) []models.Sermon
	AddSermon(ctx context.Context, audioURL, title, description string) (models.Sermon, error)
	Sermons() []models.Sermon
}

// SermonService owns the in-memory sermon list, most-recent-first. Durable
// records live in the keyed store; this service normalises and orders them.
type SermonService struct {
	mu       sync.Mutex
	store    store.SermonStore
	notifier notify.Notifier
	sermons  []models.Sermon
}

// NewSermonService returns a service with an empty collection until
// LoadSermons runs.
func NewSermonService(s store.SermonStore, n notify.Notifier) *SermonService {
	return &SermonService{store: s, notifier: n, sermons: []models.Sermon{}}
}

// LoadSermons reads every keyed record, fills in defaults for missing
// fields, and sorts descending by date. It never surfaces an error to the
// caller: a failed fetch is notified and leaves an empty collection.
func (s *SermonService) LoadSermons(ctx context.Context) []models.Sermon {
	records, err := s.store.FetchAll(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		logger.Error.Printf("LoadSermons: fetch failed: %v", err)
		s.notifier.Error("Failed to load sermons")
		s.sermons = []models.Sermon{}
		return s.snapshot()
	}

	sermons := make([]models.Sermon, 0, len(records))
	for key, rec := range records {
		sermons = append(sermons, normaliseSermon(key, rec))
	}

	sort.SliceStable(sermons, func(i, j int) bool {
		return parseSermonDate(sermons[i].Date).After(parseSermonDate(sermons[j].Date))
	})

	s.sermons = sermons
	return s.snapshot()
}

// AddSermon pushes a new record and prepends the stored result, keeping the
// collection most-recent-first. On push failure nothing changes locally.
func (s *SermonService) AddSermon(ctx context.Context, audioURL, title, description string) (models.Sermon, error) {
	rec := models.SermonRecord{
		Title:       title,
		Date:        nowFunc().UTC().Format(time.RFC3339),
		AudioURL:    audioURL,
		Description: description,
	}

	key, err := s.store.Push(ctx, rec)
	if err != nil {
		logger.Error.Printf("AddSermon: push failed: %v", err)
		s.notifier.Error("Failed to save sermon")
		return models.Sermon{}, err
	}

	sermon := models.Sermon{
		ID:          key,
		Title:       rec.Title,
		Date:        rec.Date,
		AudioURL:    rec.AudioURL,
		Description: rec.Description,
	}

	s.mu.Lock()
	s.sermons = append([]models.Sermon{sermon}, s.sermons...)
	s.mu.Unlock()

	s.notifier.Success("Sermon uploaded successfully!")
	return sermon, nil
}

// Sermons returns a copy of the current ordered collection.
func (s *SermonService) Sermons() []models.Sermon {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *SermonService) snapshot() []models.Sermon {
	out := make([]models.Sermon, len(s.sermons))
	copy(out, s.sermons)
	return out
}

// normaliseSermon applies defaults for fields older records may be missing.
func normaliseSermon(key string, rec models.SermonRecord) models.Sermon {
	sermon := models.Sermon{
		ID:          key,
		Title:       rec.Title,
		Date:        rec.Date,
		AudioURL:    rec.AudioURL,
		Description: rec.Description,
	}
	if sermon.Title == "" {
		sermon.Title = untitledSermon
	}
	if sermon.Date == "" {
		sermon.Date = nowFunc().UTC().Format(time.RFC3339)
	}
	return sermon
}

// parseSermonDate is lenient: unparseable dates sort to the end of the list
// instead of breaking the page.
func parseSermonDate(raw string) time.Time {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t
	}
	return time.Time{}
}
