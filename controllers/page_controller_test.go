// controllers/page_controller_test.go
package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"chapel-site/models"
)

func TestHealth(t *testing.T) {
	wireDefaults(nil)

	router := setupTestRouter(t)
	router.GET("/health", Health)

	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

func TestHome_RendersEventsAndSermons(t *testing.T) {
	events, sermons, _, _ := wireDefaults(nil)
	events.events = []models.Event{{ID: "sunday-service", Title: "Sunday Service", Time: "10:00"}}
	sermons.sermons = []models.Sermon{
		{ID: "a", Title: "Grace"},
		{ID: "b", Title: "Hope"},
	}

	router := setupTestRouter(t)
	router.GET("/", Home)

	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "events=1")
	assert.Contains(t, w.Body.String(), "sermons=2")
}

func TestShowLoginPage_RedirectsWhenAlreadySignedIn(t *testing.T) {
	wireDefaults(nil)

	router := setupTestRouter(t)
	signIn(router)
	router.GET("/login", ShowLoginPage)

	req, _ := http.NewRequest(http.MethodGet, "/login", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestShowLoginPage_RendersWhenSignedOut(t *testing.T) {
	wireDefaults(nil)

	router := setupTestRouter(t)
	router.GET("/login", ShowLoginPage)

	req, _ := http.NewRequest(http.MethodGet, "/login", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "login")
}
