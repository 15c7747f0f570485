// Package models defines data structures used across the application.
// File: models/models.go
package models

// ----------------------- event model -----------------------

// Event types. Admin-created entries default to special; the recurring
// weekly entries are regular.
const (
	EventTypeRegular = "regular"
	EventTypeSpecial = "special"
)

// Event represents a calendar entry on the events page. Permanent entries
// are seeded in memory and never stored remotely, so the remote document
// carries neither the id nor the permanent flag.
type Event struct {
	ID          string `json:"id" firestore:"-"`
	Title       string `json:"title" firestore:"title"`
	Time        string `json:"time" firestore:"time"` // HH:MM
	Date        string `json:"date,omitempty" firestore:"date,omitempty"`
	Description string `json:"description" firestore:"description"`
	ImageURL    string `json:"imageUrl" firestore:"imageUrl"`
	IsPermanent bool   `json:"isPermanent,omitempty" firestore:"-"`
	Type        string `json:"type,omitempty" firestore:"type,omitempty"`
}

// ----------------------- sermon model -----------------------

// Sermon is a recorded sermon with an uploaded audio file.
type Sermon struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Date        string `json:"date"` // ISO timestamp
	AudioURL    string `json:"audioUrl"`
	Description string `json:"description,omitempty"`
}

// SermonRecord is the shape stored under the keyed sermons path; the key
// itself becomes the Sermon ID on read.
type SermonRecord struct {
	Title       string `json:"title"`
	Date        string `json:"date"`
	AudioURL    string `json:"audioUrl"`
	Description string `json:"description"`
}

// ----------------------- session identity -----------------------

// Identity is the signed-in user's minimal profile. A non-nil Identity is
// what unlocks admin affordances; everything except UID may be empty.
type Identity struct {
	UID         string `json:"uid"`
	Email       string `json:"email,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
	PhotoURL    string `json:"photoURL,omitempty"`
}
