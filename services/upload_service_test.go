// services/upload_service_test.go
package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"chapel-site/notify"
	"chapel-site/store"
)

// fakeBlobStore scripts the transfer outcome and emits progress in chunks.
type fakeBlobStore struct {
	url   string
	err   error
	calls int
	keys  []string
	block chan struct{}
}

func (f *fakeBlobStore) Upload(_ context.Context, key, _ string, size int64, _ io.Reader, progress store.ProgressFunc) (string, error) {
	f.calls++
	f.keys = append(f.keys, key)
	if f.block != nil {
		<-f.block
	}
	if f.err != nil {
		return "", f.err
	}
	if progress != nil {
		progress(size/2, size)
		progress(size, size)
	}
	return f.url, nil
}

func audioFile(name string, size int64) UploadFile {
	return UploadFile{Name: name, ContentType: "audio/mpeg", Size: size, Body: strings.NewReader("data")}
}

func TestUploadImage_OversizeRejectedSynchronously(t *testing.T) {
	fake := &fakeBlobStore{}
	recorder := &notify.Recorder{}
	svc := NewUploadService(fake, recorder)

	file := UploadFile{Name: "big.png", ContentType: "image/png", Size: 6 << 20, Body: strings.NewReader("x")}
	task, err := svc.UploadImage(context.Background(), file)

	assert.Nil(t, task)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, 0, fake.calls) // no network call
	assert.Len(t, recorder.Errors, 1)
}

func TestUploadAudio_WrongMimeRejectedSynchronously(t *testing.T) {
	fake := &fakeBlobStore{}
	svc := NewUploadService(fake, &notify.Recorder{})

	file := UploadFile{Name: "notes.pdf", ContentType: "application/pdf", Size: 100, Body: strings.NewReader("x")}
	task, err := svc.UploadAudio(context.Background(), file)

	assert.Nil(t, task)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, 0, fake.calls)
}

func TestUploadAudio_ReportsProgressAndURL(t *testing.T) {
	fake := &fakeBlobStore{url: "https://bucket/sermons/1-a.mp3"}
	svc := NewUploadService(fake, &notify.Recorder{})

	task, err := svc.UploadAudio(context.Background(), audioFile("a.mp3", 1000))
	assert.NoError(t, err)

	var values []int
	for pct := range task.Progress() {
		assert.GreaterOrEqual(t, pct, 0)
		assert.LessOrEqual(t, pct, 100)
		values = append(values, pct)
	}

	url, err := task.Wait()
	assert.NoError(t, err)
	assert.Equal(t, "https://bucket/sermons/1-a.mp3", url)
	assert.NotEmpty(t, values)
	assert.Equal(t, 100, values[len(values)-1])
}

func TestUploadAudio_KeyNamespacedByTime(t *testing.T) {
	fixed := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	original := nowFunc
	nowFunc = func() time.Time { return fixed }
	defer func() { nowFunc = original }()

	fake := &fakeBlobStore{url: "https://bucket/x"}
	svc := NewUploadService(fake, &notify.Recorder{})

	task, err := svc.UploadAudio(context.Background(), audioFile("sunday.mp3", 10))
	assert.NoError(t, err)
	_, _ = task.Wait()

	assert.Len(t, fake.keys, 1)
	assert.Equal(t, "sermons/1788080400000-sunday.mp3", fake.keys[0])
}

func TestUploadImage_KeyUsesEventsPrefix(t *testing.T) {
	fake := &fakeBlobStore{url: "https://bucket/x"}
	svc := NewUploadService(fake, &notify.Recorder{})

	file := UploadFile{Name: "picnic.jpg", ContentType: "image/jpeg", Size: 10, Body: strings.NewReader("x")}
	task, err := svc.UploadImage(context.Background(), file)
	assert.NoError(t, err)
	_, _ = task.Wait()

	assert.True(t, strings.HasPrefix(fake.keys[0], "events/"))
	assert.True(t, strings.HasSuffix(fake.keys[0], "-picnic.jpg"))
}

func TestUpload_TransportFailureYieldsNoURL(t *testing.T) {
	recorder := &notify.Recorder{}
	fake := &fakeBlobStore{err: errors.New("connection reset")}
	svc := NewUploadService(fake, recorder)

	task, err := svc.UploadAudio(context.Background(), audioFile("a.mp3", 10))
	assert.NoError(t, err)

	url, err := task.Wait()
	assert.Error(t, err)
	assert.Empty(t, url)
	assert.Len(t, recorder.Errors, 1)
}

func TestIsUploading_TrueWhileTransferInFlight(t *testing.T) {
	fake := &fakeBlobStore{url: "https://bucket/x", block: make(chan struct{})}
	svc := NewUploadService(fake, &notify.Recorder{})

	task, err := svc.UploadAudio(context.Background(), audioFile("a.mp3", 10))
	assert.NoError(t, err)

	assert.Eventually(t, svc.IsUploading, time.Second, 5*time.Millisecond)

	close(fake.block)
	_, _ = task.Wait()

	assert.Eventually(t, func() bool { return !svc.IsUploading() }, time.Second, 5*time.Millisecond)
}
