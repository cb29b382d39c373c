package dto

import (
	"time"

	"github.com/ekoca/volunteerhub/internal/app/models"
)

// CreateEventRequest represents the event creation payload
type CreateEventRequest struct {
	Title       string    `json:"title" binding:"required,max=255"`
	Description string    `json:"description" binding:"required"`
	Date        time.Time `json:"date" binding:"required"`
	Time        time.Time `json:"time" binding:"required"`
	Location    string    `json:"location" binding:"required,max=255"`
	Category    string    `json:"category" binding:"required,max=100"`
}

// EventFilter carries the list filters parsed from the query string
type EventFilter struct {
	Category *string
	Location *string
	Date     *time.Time
	Page     int
	Limit    int
	All      bool
}

// AttendeeDetail identifies a resolved attendee
type AttendeeDetail struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// EventResponse is an event row annotated with creator and attendees
type EventResponse struct {
	models.Event
	CreatorName      string           `json:"creator_name,omitempty"`
	AttendeesDetails []AttendeeDetail `json:"attendees_details"`
}

// EventListResponse is the paginated event listing
type EventListResponse struct {
	Pagination Pagination      `json:"pagination"`
	Events     []EventResponse `json:"events"`
}

// CreateEventResponse wraps a newly created event
type CreateEventResponse struct {
	Message string       `json:"message"`
	Event   models.Event `json:"event"`
}

// JoinEventResponse wraps the updated event after a join
type JoinEventResponse struct {
	Message string        `json:"message"`
	Event   EventResponse `json:"event"`
}
