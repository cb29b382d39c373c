package dto

import (
	"time"

	"github.com/ekoca/volunteerhub/internal/app/models"
)

// CreateTeamRequest represents the team creation payload
type CreateTeamRequest struct {
	Name        string  `json:"name" binding:"required,max=255"`
	Description string  `json:"description" binding:"required"`
	IsPrivate   bool    `json:"is_private"`
	AvatarURL   *string `json:"avatar_url" binding:"omitempty,url"`
}

// TeamFilter carries the team listing parameters. ViewerID scopes the
// listing to teams visible to the caller.
type TeamFilter struct {
	Page     int
	Limit    int
	Search   *string
	SortBy   string // achievement_points | member_count | created_at
	ViewerID int64
}

// SendInvitationRequest represents the invite payload
type SendInvitationRequest struct {
	UserEmail string `json:"user_email" binding:"required,email"`
}

// RespondInvitationRequest represents the invitation response payload
type RespondInvitationRequest struct {
	Accept *bool `json:"accept" binding:"required"`
}

// TeamMemberDetail is a resolved member sub-object
type TeamMemberDetail struct {
	ID                 int64     `json:"id"`
	Name               string    `json:"name"`
	Role               string    `json:"role"`
	JoinedAt           time.Time `json:"joined_at"`
	ContributionPoints int       `json:"contribution_points,omitempty"`
}

// TeamEventDetail is a resolved team event sub-object
type TeamEventDetail struct {
	ID            int64      `json:"id"`
	Title         string     `json:"title,omitempty"`
	Date          *time.Time `json:"date,omitempty"`
	PointsAwarded int        `json:"points_awarded"`
}

// TeamAchievementDetail is a resolved achievement sub-object
type TeamAchievementDetail struct {
	ID         int64     `json:"id,omitempty"`
	Title      string    `json:"title"`
	Points     int       `json:"points"`
	AchievedAt time.Time `json:"achieved_at"`
}

// TeamResponse is a team row aggregated with its sub-objects
type TeamResponse struct {
	models.Team
	Members      []TeamMemberDetail      `json:"members"`
	Events       []TeamEventDetail       `json:"events"`
	Achievements []TeamAchievementDetail `json:"achievements"`
}

// TeamListResponse is the paginated team listing
type TeamListResponse struct {
	Pagination Pagination     `json:"pagination"`
	Teams      []TeamResponse `json:"teams"`
}

// CreateTeamResponse wraps a newly created team
type CreateTeamResponse struct {
	Message string      `json:"message"`
	Team    models.Team `json:"team"`
}

// LeaderboardEntry is one row of the public leaderboard
type LeaderboardEntry struct {
	ID                 int64                   `json:"id"`
	Name               string                  `json:"name"`
	AchievementPoints  int                     `json:"achievement_points"`
	MemberCount        int                     `json:"member_count"`
	AvatarURL          *string                 `json:"avatar_url"`
	RecentAchievements []TeamAchievementDetail `json:"recent_achievements"`
}

// LeaderboardResponse wraps the leaderboard rows
type LeaderboardResponse struct {
	Message     string             `json:"message"`
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
}

// TeamDashboardResponse is the composite per-team view
type TeamDashboardResponse struct {
	models.Team
	Members            []TeamMemberDetail      `json:"members"`
	RecentEvents       []TeamEventDetail       `json:"recent_events"`
	RecentAchievements []TeamAchievementDetail `json:"recent_achievements"`
	UserRole           *string                 `json:"user_role"`
}

// PendingInvitation is one pending invitation annotated with team and
// inviter details
type PendingInvitation struct {
	models.TeamInvitation
	TeamName        string `json:"team_name"`
	TeamDescription string `json:"team_description"`
	MemberCount     int    `json:"member_count"`
	InvitedByName   string `json:"invited_by_name"`
}

// PendingInvitationsResponse wraps the caller's pending invitations
type PendingInvitationsResponse struct {
	Message     string              `json:"message"`
	Invitations []PendingInvitation `json:"invitations"`
}

// UserTeam is one membership row of the caller with team details
type UserTeam struct {
	models.Team
	MemberRole         string    `json:"member_role"`
	JoinedAt           time.Time `json:"joined_at"`
	ContributionPoints int       `json:"contribution_points"`
	TotalEvents        int       `json:"total_events"`
}

// UserTeamsResponse wraps the caller's memberships
type UserTeamsResponse struct {
	Message string     `json:"message"`
	Teams   []UserTeam `json:"teams"`
}

// CreatedTeamsResponse wraps the teams created by the caller
type CreatedTeamsResponse struct {
	Message string         `json:"message"`
	Teams   []TeamResponse `json:"teams"`
}
