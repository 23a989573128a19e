package domain

import "time"

// LessonType is read-only reference data; rows are managed out of band
// and the client only ever lists the active ones.
type LessonType struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	DurationMinutes int       `json:"duration_minutes"`
	PriceCents      int64     `json:"price_cents"`
	Active          bool      `json:"active"`
	CreatedAt       time.Time `json:"created_at"`
}
