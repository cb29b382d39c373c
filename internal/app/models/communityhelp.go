package models

import (
	"time"
)

// UrgencyLevel defines how urgent a help request is
type UrgencyLevel string

const (
	UrgencyLow    UrgencyLevel = "low"
	UrgencyMedium UrgencyLevel = "medium"
	UrgencyUrgent UrgencyLevel = "urgent"
)

// ValidUrgencyLevel reports whether level is an enumerated urgency level.
func ValidUrgencyLevel(level string) bool {
	switch UrgencyLevel(level) {
	case UrgencyLow, UrgencyMedium, UrgencyUrgent:
		return true
	}
	return false
}

// HelpRequestStatus defines the lifecycle state of a help request
type HelpRequestStatus string

const (
	HelpStatusOpen       HelpRequestStatus = "open"
	HelpStatusInProgress HelpRequestStatus = "in_progress"
	HelpStatusCompleted  HelpRequestStatus = "completed"
	HelpStatusClosed     HelpRequestStatus = "closed"
)

// ValidHelpRequestStatus reports whether status is an enumerated status.
func ValidHelpRequestStatus(status string) bool {
	switch HelpRequestStatus(status) {
	case HelpStatusOpen, HelpStatusInProgress, HelpStatusCompleted, HelpStatusClosed:
		return true
	}
	return false
}

// HelpRequest defines the community help request model.
// HelperCount is denormalized and maintained in the same transaction
// as the comment insert that flips it.
type HelpRequest struct {
	ID            int64             `json:"id" db:"id"`
	Title         string            `json:"title" db:"title"`
	Description   string            `json:"description" db:"description"`
	Location      string            `json:"location" db:"location"`
	Category      string            `json:"category" db:"category"`
	UrgencyLevel  UrgencyLevel      `json:"urgency_level" db:"urgency_level"`
	Status        HelpRequestStatus `json:"status" db:"status"`
	CreatedBy     int64             `json:"created_by" db:"created_by"`
	CreatedByRole string            `json:"created_by_role" db:"created_by_role"`
	HelperCount   int               `json:"helper_count" db:"helper_count"`
	CreatedAt     time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at" db:"updated_at"`
}

// HelpComment defines a comment on a help request
type HelpComment struct {
	ID            int64     `json:"id" db:"id"`
	HelpRequestID int64     `json:"help_request_id" db:"help_request_id"`
	CommentText   string    `json:"comment_text" db:"comment_text"`
	CreatedBy     int64     `json:"created_by" db:"created_by"`
	CreatedByRole string    `json:"created_by_role" db:"created_by_role"`
	IsHelper      bool      `json:"is_helper" db:"is_helper"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}
