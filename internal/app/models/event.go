package models

import (
	"time"
)

// Event defines the event model based on the 'events' table.
// Attendees is an append-only array column de-duplicated at the
// storage layer; CreatedByRole is a snapshot taken at creation.
type Event struct {
	ID            int64     `json:"id" db:"id"`
	Title         string    `json:"title" db:"title"`
	Description   string    `json:"description" db:"description"`
	Date          time.Time `json:"date" db:"date"`
	Time          time.Time `json:"time" db:"time"`
	Location      string    `json:"location" db:"location"`
	Category      string    `json:"category" db:"category"`
	CreatedBy     int64     `json:"created_by" db:"created_by"`
	CreatedByRole string    `json:"created_by_role" db:"created_by_role"`
	Attendees     []int64   `json:"attendees" db:"attendees"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}
