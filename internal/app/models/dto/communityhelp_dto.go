package dto

import (
	"github.com/ekoca/volunteerhub/internal/app/models"
)

// CreateHelpRequestRequest represents the help request creation payload
type CreateHelpRequestRequest struct {
	Title        string `json:"title" binding:"required,max=255"`
	Description  string `json:"description" binding:"required"`
	Location     string `json:"location" binding:"required,max=255"`
	Category     string `json:"category" binding:"required,max=100"`
	UrgencyLevel string `json:"urgency_level" binding:"required,oneof=low medium urgent"`
}

// HelpRequestFilter carries the list filters parsed from the query string
type HelpRequestFilter struct {
	Category     *string
	Location     *string
	UrgencyLevel *string
	Status       *string
	Page         int
	Limit        int
	All          bool
}

// AddCommentRequest represents the comment payload
type AddCommentRequest struct {
	CommentText string `json:"comment_text" binding:"required"`
	IsHelper    bool   `json:"is_helper"`
}

// UpdateStatusRequest represents the status transition payload
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=open in_progress completed closed"`
}

// CommentResponse is a comment annotated with the commenter's name
type CommentResponse struct {
	models.HelpComment
	CommenterName string `json:"commenter_name"`
}

// HelpRequestResponse is a help request annotated with its creator name
// and pre-aggregated comments
type HelpRequestResponse struct {
	models.HelpRequest
	CreatorName string            `json:"creator_name,omitempty"`
	Comments    []CommentResponse `json:"comments"`
}

// HelpRequestListResponse is the paginated help request listing
type HelpRequestListResponse struct {
	Pagination   Pagination            `json:"pagination"`
	HelpRequests []HelpRequestResponse `json:"help_requests"`
}

// CreateHelpRequestResponse wraps a newly created help request
type CreateHelpRequestResponse struct {
	Message     string             `json:"message"`
	HelpRequest models.HelpRequest `json:"help_request"`
}

// AddCommentResponse wraps a newly created comment
type AddCommentResponse struct {
	Message string          `json:"message"`
	Comment CommentResponse `json:"comment"`
}

// UpdateStatusResponse wraps the updated help request
type UpdateStatusResponse struct {
	Message     string             `json:"message"`
	HelpRequest models.HelpRequest `json:"help_request"`
}

// CommentListResponse lists the comments of one help request
type CommentListResponse struct {
	HelpRequestID int64             `json:"help_request_id"`
	Comments      []CommentResponse `json:"comments"`
}
