// controllers/helpers_test.go
package controllers

import (
	"context"
	"errors"
	"html/template"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"chapel-site/middleware"
	"chapel-site/models"
	"chapel-site/notify"
	"chapel-site/services"
)

// ---------------- stub services ----------------

type stubEventService struct {
	events  []models.Event
	saved   models.Event
	saveErr error

	lastInput    models.Event
	lastExisting *models.Event
}

func (s *stubEventService) LoadEvents(_ context.Context) []models.Event { return s.events }

func (s *stubEventService) SaveEvent(_ context.Context, input models.Event, existing *models.Event) (models.Event, error) {
	s.lastInput = input
	s.lastExisting = existing
	if s.saveErr != nil {
		return models.Event{}, s.saveErr
	}
	return s.saved, nil
}

func (s *stubEventService) Events() []models.Event { return s.events }

func (s *stubEventService) Find(id string) (models.Event, bool) {
	for _, e := range s.events {
		if e.ID == id {
			return e, true
		}
	}
	return models.Event{}, false
}

type stubSermonService struct {
	sermons []models.Sermon
	added   models.Sermon
	addErr  error
}

func (s *stubSermonService) LoadSermons(_ context.Context) []models.Sermon { return s.sermons }

func (s *stubSermonService) AddSermon(_ context.Context, audioURL, title, description string) (models.Sermon, error) {
	if s.addErr != nil {
		return models.Sermon{}, s.addErr
	}
	s.added = models.Sermon{ID: "new", Title: title, AudioURL: audioURL, Description: description}
	return s.added, nil
}

func (s *stubSermonService) Sermons() []models.Sermon { return s.sermons }

type stubAuthService struct {
	identity models.Identity
	ok       bool
	authURL  string

	googleCode string
	googleErr  string
}

func (s *stubAuthService) Login(_ context.Context, _, _ string) (models.Identity, bool) {
	return s.identity, s.ok
}

func (s *stubAuthService) Signup(_ context.Context, _, _ string) (models.Identity, bool) {
	return s.identity, s.ok
}

func (s *stubAuthService) LoginWithGoogle(_ context.Context, code, providerErr string) (models.Identity, bool) {
	s.googleCode = code
	s.googleErr = providerErr
	return s.identity, s.ok
}

func (s *stubAuthService) GoogleAuthURL(state string) string {
	if s.authURL == "" {
		return ""
	}
	return s.authURL + "?state=" + state
}

func (s *stubAuthService) Logout() {}

// blockedUploadService reports an upload permanently in flight.
type blockedUploadService struct{}

func (blockedUploadService) UploadAudio(_ context.Context, _ services.UploadFile) (*services.UploadTask, error) {
	return nil, errors.New("not used")
}

func (blockedUploadService) UploadImage(_ context.Context, _ services.UploadFile) (*services.UploadTask, error) {
	return nil, errors.New("not used")
}

func (blockedUploadService) IsUploading() bool { return true }

// ---------------- router helpers ----------------

// setupTestRouter builds a Gin engine with session middleware and minimal
// templates so HTML handlers can render.
func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()

	store := cookie.NewStore([]byte("test-secret"))
	router.Use(sessions.Sessions("testsession", store))

	tmpl := template.Must(template.New("login.html").Parse(`login {{ .Error }}`))
	template.Must(tmpl.New("home.html").Parse(`home events={{ len .Events }} sermons={{ len .Sermons }}`))
	router.SetHTMLTemplate(tmpl)
	return router
}

// signIn stores an identity in the session for every following request.
func signIn(router *gin.Engine) {
	router.Use(func(c *gin.Context) {
		session := sessions.Default(c)
		_ = middleware.SaveIdentity(session, models.Identity{UID: "u1", Email: "pastor@chapel.org"})
		c.Next()
	})
}

// wireDefaults installs permissive stubs so individual tests only override
// what they assert on.
func wireDefaults(uploads services.UploadServiceInterface) (*stubEventService, *stubSermonService, *stubAuthService, *notify.Recorder) {
	events := &stubEventService{}
	sermons := &stubSermonService{}
	auth := &stubAuthService{}
	recorder := &notify.Recorder{}

	if uploads == nil {
		uploads = services.NewUploadService(&stubBlobStore{url: "https://bucket/obj"}, recorder)
	}

	SetConfig("http://localhost:8080", "http://localhost:8080/updates")
	SetServices(events, sermons, uploads, auth, recorder)
	return events, sermons, auth, recorder
}
