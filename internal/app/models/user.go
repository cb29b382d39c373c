package models

import (
	"encoding/json"
	"time"
)

// Role defines the user role tag
type Role string

const (
	RoleVolunteer    Role = "volunteer"
	RoleOrganization Role = "organization"
	RoleAdmin        Role = "admin"
)

// ValidRole reports whether role is one of the enumerated user roles.
func ValidRole(role string) bool {
	switch Role(role) {
	case RoleVolunteer, RoleOrganization, RoleAdmin:
		return true
	}
	return false
}

// User defines the user model based on the 'users' table
type User struct {
	ID                 int64           `json:"id" db:"id"`
	Name               string          `json:"name" db:"name"`
	Email              string          `json:"email" db:"email"`
	Password           string          `json:"-" db:"password"` // bcrypt hash, never serialized
	Skills             []string        `json:"skills" db:"skills"`
	CausesSupported    []string        `json:"causes_supported" db:"causes_supported"`
	VolunteerHours     int             `json:"volunteer_hours" db:"volunteer_hours"`
	VolunteerHistory   json.RawMessage `json:"volunteer_history,omitempty" db:"volunteer_history"`
	TotalContributions json.RawMessage `json:"total_contributions,omitempty" db:"total_contributions"`
	Role               Role            `json:"role" db:"role"`
	CreatedAt          time.Time       `json:"created_at" db:"created_at"`
}
