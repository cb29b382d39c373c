package models

import (
	"time"
)

// TeamRole defines the role of a user inside a team
type TeamRole string

const (
	TeamRoleAdmin     TeamRole = "admin"
	TeamRoleModerator TeamRole = "moderator"
	TeamRoleMember    TeamRole = "member"
)

// InvitationStatus defines the state of a team invitation
type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationDeclined InvitationStatus = "declined"
)

// Team defines the team model based on the 'teams' table.
// MemberCount and AchievementPoints are denormalized counters updated
// inside the transaction of the write that changes them.
type Team struct {
	ID                int64     `json:"id" db:"id"`
	Name              string    `json:"name" db:"name"`
	Description       string    `json:"description" db:"description"`
	IsPrivate         bool      `json:"is_private" db:"is_private"`
	CreatedBy         int64     `json:"created_by" db:"created_by"`
	CreatedByRole     string    `json:"created_by_role" db:"created_by_role"`
	MemberCount       int       `json:"member_count" db:"member_count"`
	AchievementPoints int       `json:"achievement_points" db:"achievement_points"`
	AvatarURL         *string   `json:"avatar_url" db:"avatar_url"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`
}

// TeamMember defines the membership join row; one row per (team, user)
type TeamMember struct {
	ID                 int64     `json:"id" db:"id"`
	TeamID             int64     `json:"team_id" db:"team_id"`
	UserID             int64     `json:"user_id" db:"user_id"`
	Role               TeamRole  `json:"role" db:"role"`
	ContributionPoints int       `json:"contribution_points" db:"contribution_points"`
	JoinedAt           time.Time `json:"joined_at" db:"joined_at"`
}

// TeamInvitation defines an invitation; at most one pending row per
// (team, invited user)
type TeamInvitation struct {
	ID          int64            `json:"id" db:"id"`
	TeamID      int64            `json:"team_id" db:"team_id"`
	InvitedBy   int64            `json:"invited_by" db:"invited_by"`
	InvitedUser int64            `json:"invited_user" db:"invited_user"`
	Status      InvitationStatus `json:"status" db:"status"`
	CreatedAt   time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at" db:"updated_at"`
}
