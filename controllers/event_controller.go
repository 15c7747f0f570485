// Package controllers. File: controllers/event_controller.go
package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"chapel-site/logger"
	"chapel-site/models"
	"chapel-site/services"
	"chapel-site/websocket"
)

// ListEvents returns the merged event collection: permanent entries first,
// then stored special events.
func ListEvents(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"events": eventService.Events()})
}

// CreateEvent stores a new special event. Admin-only (AdminRequired).
func CreateEvent(c *gin.Context) {
	var input models.Event
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event payload"})
		return
	}
	if input.Title == "" || input.Time == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title and time are required"})
		return
	}

	saved, err := eventService.SaveEvent(c.Request.Context(), input, nil)
	if err != nil {
		// local state untouched; the admin's form stays open for a retry
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to save event"})
		return
	}

	websocket.BroadcastUpdate("eventSaved", saved)
	c.JSON(http.StatusCreated, gin.H{"event": saved})
}

// UpdateEvent edits an existing event by id. For permanent entries only the
// time is honoured; the service ignores everything else.
func UpdateEvent(c *gin.Context) {
	id := c.Param("id")

	existing, found := eventService.Find(id)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	var input models.Event
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event payload"})
		return
	}

	saved, err := eventService.SaveEvent(c.Request.Context(), input, &existing)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to save event"})
		return
	}

	websocket.BroadcastUpdate("eventSaved", saved)
	c.JSON(http.StatusOK, gin.H{"event": saved})
}

// EventCalendar serves the event as a downloadable .ics file.
func EventCalendar(c *gin.Context) {
	event, found := eventService.Find(c.Param("id"))
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	ical, err := services.EventICS(event)
	if err != nil {
		logger.Error.Printf("EventCalendar: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not build calendar entry"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", event.ID+".ics"))
	c.Data(http.StatusOK, "text/calendar", []byte(ical))
}

// EventQRCode serves a QR code pointing at the event's calendar download,
// for the printed notice board.
func EventQRCode(c *gin.Context) {
	event, found := eventService.Find(c.Param("id"))
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	url := fmt.Sprintf("%s/events/%s/calendar.ics", ApplicationURL, event.ID)
	png, err := services.EventQRCode(url, 256)
	if err != nil {
		logger.Error.Printf("EventQRCode: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate QR code"})
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}
