// Package services: services/upload_service.go
package services

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"sync"

	"chapel-site/logger"
	"chapel-site/notify"
	"chapel-site/store"
)

// maxImageBytes caps event image uploads at 5 MB. Audio has no size cap.
const maxImageBytes = 5 << 20

// ValidationError is returned for uploads rejected before any network call.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// UploadFile describes a file selected for upload.
type UploadFile struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

// UploadTask is a running transfer. Progress yields a finite stream of 0-100
// values and closes when the transfer ends; Wait blocks until then and
// returns the retrievable URL or the transport error. There is no partial
// URL: a failed transfer yields only the error.
type UploadTask struct {
	progress chan int
	done     chan struct{}
	url      string
	err      error
}

// Progress returns the progress stream. Values repeat and are not guaranteed
// to increase; treat each as the latest display value.
func (t *UploadTask) Progress() <-chan int {
	return t.progress
}

// Wait blocks until the transfer finishes.
func (t *UploadTask) Wait() (string, error) {
	<-t.done
	return t.url, t.err
}

// UploadServiceInterface is what the controllers program against.
type UploadServiceInterface interface {
	UploadAudio(ctx context.Context, file UploadFile) (*UploadTask, error)
	UploadImage(ctx context.Context, file UploadFile) (*UploadTask, error)
	IsUploading() bool
}

// UploadService validates files and runs transfers against the blob store.
// The uploading flag guards dependent form submissions: a submit while a
// transfer is in flight is blocked by the controllers.
type UploadService struct {
	blobs    store.BlobStore
	notifier notify.Notifier

	mu        sync.Mutex
	uploading bool
}

// NewUploadService wires the blob store and notification channel.
func NewUploadService(b store.BlobStore, n notify.Notifier) *UploadService {
	return &UploadService{blobs: b, notifier: n}
}

// UploadAudio validates and transfers a sermon recording to
// sermons/{epoch-ms}-{filename}.
func (s *UploadService) UploadAudio(ctx context.Context, file UploadFile) (*UploadTask, error) {
	if !strings.HasPrefix(file.ContentType, "audio/") {
		err := &ValidationError{Reason: "Please select an audio file"}
		s.notifier.Error(err.Reason)
		return nil, err
	}
	return s.start(ctx, "sermons", file), nil
}

// UploadImage validates and transfers an event image to
// events/{epoch-ms}-{filename}. Images are additionally capped at 5 MB.
func (s *UploadService) UploadImage(ctx context.Context, file UploadFile) (*UploadTask, error) {
	if !strings.HasPrefix(file.ContentType, "image/") {
		err := &ValidationError{Reason: "Please select an image file"}
		s.notifier.Error(err.Reason)
		return nil, err
	}
	if file.Size > maxImageBytes {
		err := &ValidationError{Reason: "Image must be 5 MB or smaller"}
		s.notifier.Error(err.Reason)
		return nil, err
	}
	return s.start(ctx, "events", file), nil
}

// IsUploading reports whether a transfer is in flight.
func (s *UploadService) IsUploading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.uploading
}

// start launches the transfer. The key is namespaced by current time to
// avoid collisions between files with the same name.
func (s *UploadService) start(ctx context.Context, prefix string, file UploadFile) *UploadTask {
	key := fmt.Sprintf("%s/%d-%s", prefix, nowFunc().UnixMilli(), path.Base(file.Name))

	task := &UploadTask{
		progress: make(chan int, 16),
		done:     make(chan struct{}),
	}

	s.setUploading(true)

	go func() {
		defer close(task.done)
		defer close(task.progress)
		defer s.setUploading(false)

		url, err := s.blobs.Upload(ctx, key, file.ContentType, file.Size, file.Body, func(transferred, total int64) {
			pct := 0
			if total > 0 {
				pct = int(float64(transferred) / float64(total) * 100)
			}
			select {
			case task.progress <- pct:
			default:
				// progress display is best-effort; never stall the transfer
			}
		})
		if err != nil {
			logger.Error.Printf("start: upload of %s failed: %v", key, err)
			s.notifier.Error("Failed to upload file")
			task.err = err
			return
		}

		task.url = url
	}()

	return task
}

func (s *UploadService) setUploading(v bool) {
	s.mu.Lock()
	s.uploading = v
	s.mu.Unlock()
}
