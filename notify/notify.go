// Package notify is the narrow seam between the services and whatever the
// presentation layer uses for toasts. Services emit outcomes here; how they
// are shown is not this package's business.
// File: notify/notify.go
package notify

import "chapel-site/logger"

// Notifier receives user-facing outcome messages.
type Notifier interface {
	Success(msg string)
	Error(msg string)
	// Info carries neutral notices, e.g. a user-cancelled sign-in.
	Info(msg string)
}

// LogNotifier writes notifications to the application log. It is the default
// sink when no richer presentation channel is wired in.
type LogNotifier struct{}

// Success logs a success notification.
func (LogNotifier) Success(msg string) {
	logger.Info.Printf("[notify] success: %s", msg)
}

// Error logs a failure notification.
func (LogNotifier) Error(msg string) {
	logger.Warn.Printf("[notify] error: %s", msg)
}

// Info logs a neutral notification.
func (LogNotifier) Info(msg string) {
	logger.Info.Printf("[notify] info: %s", msg)
}
