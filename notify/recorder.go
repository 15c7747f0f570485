// Recorder is a checked-in test double, mirroring the pattern of keeping
// mocks next to the real implementation.
// File: notify/recorder.go
package notify

import "sync"

// Recorder captures notifications for assertions in tests.
type Recorder struct {
	mu        sync.Mutex
	Successes []string
	Errors    []string
	Infos     []string
}

// Success records a success notification.
func (r *Recorder) Success(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Successes = append(r.Successes, msg)
}

// Error records a failure notification.
func (r *Recorder) Error(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Errors = append(r.Errors, msg)
}

// Info records a neutral notification.
func (r *Recorder) Info(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Infos = append(r.Infos, msg)
}

// Total returns the number of notifications of any kind.
func (r *Recorder) Total() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.Successes) + len(r.Errors) + len(r.Infos)
}
