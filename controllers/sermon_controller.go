// Package controllers. File: controllers/sermon_controller.go
package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"chapel-site/logger"
	"chapel-site/services"
	"chapel-site/websocket"
)

// ListSermons returns the sermon archive, most recent first.
func ListSermons(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"sermons": sermonService.Sermons()})
}

// sermonForm is the submit payload once the audio upload has completed.
type sermonForm struct {
	Title       string `json:"title" binding:"required"`
	AudioURL    string `json:"audioUrl" binding:"required"`
	Description string `json:"description"`
}

// CreateSermon records an uploaded sermon. Submitting while an upload is
// still in flight is blocked outright; the audio URL does not exist yet.
func CreateSermon(c *gin.Context) {
	if uploadService.IsUploading() {
		notifier.Error("Please wait for the upload to finish")
		c.JSON(http.StatusConflict, gin.H{"error": "Upload still in progress"})
		return
	}

	var form sermonForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title and audio URL are required"})
		return
	}

	sermon, err := sermonService.AddSermon(c.Request.Context(), form.AudioURL, form.Title, form.Description)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to save sermon"})
		return
	}

	websocket.BroadcastUpdate("sermonAdded", sermon)
	c.JSON(http.StatusCreated, gin.H{"sermon": sermon})
}

// UploadSermonAudio transfers a sermon recording to blob storage and returns
// its URL. Progress is pushed over the websocket hub while the transfer runs.
func UploadSermonAudio(c *gin.Context) {
	runUpload(c, "file", uploadService.UploadAudio)
}

// UploadEventImage transfers an event image to blob storage.
func UploadEventImage(c *gin.Context) {
	runUpload(c, "file", uploadService.UploadImage)
}

func runUpload(c *gin.Context, field string, start func(ctx context.Context, file services.UploadFile) (*services.UploadTask, error)) {
	header, err := c.FormFile(field)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}

	f, err := header.Open()
	if err != nil {
		logger.Error.Printf("runUpload: opening %s failed: %v", header.Filename, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not read the file"})
		return
	}
	defer func() { _ = f.Close() }()

	file := services.UploadFile{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        f,
	}

	task, err := start(c.Request.Context(), file)
	if err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": verr.Reason})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload failed"})
		return
	}

	// mirror progress to any other open admin tabs
	go func() {
		for pct := range task.Progress() {
			websocket.BroadcastProgress(header.Filename, pct)
		}
	}()

	url, err := task.Wait()
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Upload failed"})
		return
	}

	websocket.PublishUploadBytes(header.Size)
	c.JSON(http.StatusOK, gin.H{"url": url})
}
