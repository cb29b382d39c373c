package dto

import (
	"encoding/json"
	"time"
)

// RegisterRequest represents the user registration payload
type RegisterRequest struct {
	Name            string   `json:"name" binding:"required"`
	Email           string   `json:"email" binding:"required,email"`
	Password        string   `json:"password" binding:"required,min=6"`
	Skills          []string `json:"skills" binding:"omitempty"`
	CausesSupported []string `json:"causes_supported" binding:"omitempty"`
}

// LoginRequest represents the login payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest applies a partial profile update; nil fields
// retain their previous values.
type UpdateProfileRequest struct {
	Name            *string  `json:"name" binding:"omitempty"`
	Skills          []string `json:"skills" binding:"omitempty"`
	CausesSupported []string `json:"causes_supported" binding:"omitempty"`
}

// UpdateUserRoleRequest represents an admin role change
type UpdateUserRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// UserResponse is the public user view returned by register
type UserResponse struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Skills          []string  `json:"skills"`
	CausesSupported []string  `json:"causes_supported"`
	VolunteerHours  int       `json:"volunteer_hours"`
	Role            string    `json:"role"`
	CreatedAt       time.Time `json:"created_at"`
}

// ProfileResponse is the full own-profile view
type ProfileResponse struct {
	ID                 int64           `json:"id"`
	Name               string          `json:"name"`
	Email              string          `json:"email"`
	Skills             []string        `json:"skills"`
	CausesSupported    []string        `json:"causes_supported"`
	VolunteerHours     int             `json:"volunteer_hours"`
	VolunteerHistory   json.RawMessage `json:"volunteer_history"`
	TotalContributions json.RawMessage `json:"total_contributions"`
	CreatedAt          time.Time       `json:"created_at"`
}

// UserSummary is the admin user-listing row
type UserSummary struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// RegisterResponse wraps the created user
type RegisterResponse struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}

// LoginResponse carries the bearer token and the public profile
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UpdateUserRoleResponse wraps the updated user summary
type UpdateUserRoleResponse struct {
	Message string      `json:"message"`
	User    UserSummary `json:"user"`
}
