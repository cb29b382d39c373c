package services

import (
	"context"

	"github.com/ekoca/volunteerhub/internal/app/models"
	"github.com/ekoca/volunteerhub/internal/app/models/dto"
	"github.com/ekoca/volunteerhub/internal/pkg/apperrors"
	"github.com/ekoca/volunteerhub/internal/pkg/helpers"
	"github.com/ekoca/volunteerhub/internal/pkg/logger"
)

const (
	leaderboardSize        = 10
	leaderboardRecentLimit = 3
	dashboardRecentLimit   = 5
)

// TeamService defines the interface for team operations
type TeamService interface {
	CreateTeam(ctx context.Context, userID int64, userRole string, req *dto.CreateTeamRequest) (*dto.CreateTeamResponse, error)
	GetAllTeams(ctx context.Context, filter dto.TeamFilter) (*dto.TeamListResponse, error)
	GetTeamDashboard(ctx context.Context, teamID, userID int64) (*dto.TeamDashboardResponse, error)
	JoinTeam(ctx context.Context, teamID, userID int64) (*dto.MessageResponse, error)
	SendInvitation(ctx context.Context, teamID, inviterID int64, req *dto.SendInvitationRequest) (*dto.MessageResponse, error)
	RespondToInvitation(ctx context.Context, invitationID, userID int64, accept bool) (*dto.MessageResponse, error)
	GetPendingInvitations(ctx context.Context, userID int64) (*dto.PendingInvitationsResponse, error)
	GetLeaderboard(ctx context.Context) (*dto.LeaderboardResponse, error)
	GetCreatedTeams(ctx context.Context, userID int64, isPrivate *bool) (*dto.CreatedTeamsResponse, error)
	GetUserTeams(ctx context.Context, userID int64) (*dto.UserTeamsResponse, error)
}

// teamStore is the slice of the team repository the service needs
type teamStore interface {
	CreateWithAdmin(ctx context.Context, team *models.Team) error
	GetAll(ctx context.Context, filter dto.TeamFilter) ([]models.Team, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Team, error)
	GetMembersByTeamIDs(ctx context.Context, teamIDs []int64) (map[int64][]dto.TeamMemberDetail, error)
	GetEventsByTeamIDs(ctx context.Context, teamIDs []int64) (map[int64][]dto.TeamEventDetail, error)
	GetAchievementsByTeamIDs(ctx context.Context, teamIDs []int64) (map[int64][]dto.TeamAchievementDetail, error)
	GetMembership(ctx context.Context, teamID, userID int64) (*models.TeamMember, error)
	AddMember(ctx context.Context, teamID, userID int64, role models.TeamRole) error
	CreateInvitation(ctx context.Context, invitation *models.TeamInvitation) error
	RespondToInvitation(ctx context.Context, invitationID, userID int64, accept bool) (int64, error)
	GetPendingInvitations(ctx context.Context, userID int64) ([]dto.PendingInvitation, error)
	GetLeaderboard(ctx context.Context, limit int) ([]models.Team, error)
	GetCreatedBy(ctx context.Context, userID int64, isPrivate *bool) ([]models.Team, error)
	GetUserTeams(ctx context.Context, userID int64) ([]dto.UserTeam, error)
}

// emailResolver resolves a user account by email
type emailResolver interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// teamServiceImpl implements TeamService
type teamServiceImpl struct {
	teamRepo teamStore
	users    emailResolver
}

// NewTeamService creates a new TeamService
func NewTeamService(teamRepo teamStore, users emailResolver) TeamService {
	return &teamServiceImpl{
		teamRepo: teamRepo,
		users:    users,
	}
}

// CreateTeam creates a team. The creator becomes its admin in the same
// transaction, so a team never exists without an admin.
func (s *teamServiceImpl) CreateTeam(ctx context.Context, userID int64, userRole string, req *dto.CreateTeamRequest) (*dto.CreateTeamResponse, error) {
	team := &models.Team{
		Name:          req.Name,
		Description:   req.Description,
		IsPrivate:     req.IsPrivate,
		CreatedBy:     userID,
		CreatedByRole: userRole,
		AvatarURL:     req.AvatarURL,
	}

	if err := s.teamRepo.CreateWithAdmin(ctx, team); err != nil {
		return nil, err
	}

	logger.Info().Int64("teamID", team.ID).Int64("userID", userID).Msg("Team created")

	return &dto.CreateTeamResponse{
		Message: "Team created successfully",
		Team:    *team,
	}, nil
}

// GetAllTeams lists teams with search and pagination. Members, events
// and achievements for the whole page are fetched in three batch
// queries and grouped here.
func (s *teamServiceImpl) GetAllTeams(ctx context.Context, filter dto.TeamFilter) (*dto.TeamListResponse, error) {
	teams, totalItems, err := s.teamRepo.GetAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses, err := s.aggregateTeams(ctx, teams)
	if err != nil {
		return nil, err
	}

	return &dto.TeamListResponse{
		Pagination: helpers.NewPagination(totalItems, filter.Page, filter.Limit),
		Teams:      responses,
	}, nil
}

// GetTeamDashboard returns the composite per-team view. Private teams
// are visible only to their members and creator.
func (s *teamServiceImpl) GetTeamDashboard(ctx context.Context, teamID, userID int64) (*dto.TeamDashboardResponse, error) {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}

	membership, err := s.teamRepo.GetMembership(ctx, teamID, userID)
	if err != nil {
		return nil, err
	}

	if team.IsPrivate && membership == nil && team.CreatedBy != userID {
		return nil, apperrors.ErrTeamPrivate
	}

	members, err := s.teamRepo.GetMembersByTeamIDs(ctx, []int64{teamID})
	if err != nil {
		return nil, err
	}
	events, err := s.teamRepo.GetEventsByTeamIDs(ctx, []int64{teamID})
	if err != nil {
		return nil, err
	}
	achievements, err := s.teamRepo.GetAchievementsByTeamIDs(ctx, []int64{teamID})
	if err != nil {
		return nil, err
	}

	var userRole *string
	if membership != nil {
		role := string(membership.Role)
		userRole = &role
	}

	return &dto.TeamDashboardResponse{
		Team:               *team,
		Members:            emptyIfNilMembers(members[teamID]),
		RecentEvents:       capEvents(events[teamID], dashboardRecentLimit),
		RecentAchievements: capAchievements(achievements[teamID], dashboardRecentLimit),
		UserRole:           userRole,
	}, nil
}

// JoinTeam adds the caller to a public team as a regular member.
// Private teams are join-by-invitation only.
func (s *teamServiceImpl) JoinTeam(ctx context.Context, teamID, userID int64) (*dto.MessageResponse, error) {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}

	if team.IsPrivate {
		return nil, apperrors.ErrTeamPrivate
	}

	if err := s.teamRepo.AddMember(ctx, teamID, userID, models.TeamRoleMember); err != nil {
		return nil, err
	}

	logger.Info().Int64("teamID", teamID).Int64("userID", userID).Msg("User joined team")

	return &dto.MessageResponse{Message: "Successfully joined the team"}, nil
}

// SendInvitation invites a user to a team by email. Only team admins
// and moderators may invite, and at most one pending invitation per
// (team, user) can exist.
func (s *teamServiceImpl) SendInvitation(ctx context.Context, teamID, inviterID int64, req *dto.SendInvitationRequest) (*dto.MessageResponse, error) {
	if _, err := s.teamRepo.GetByID(ctx, teamID); err != nil {
		return nil, err
	}

	inviterMembership, err := s.teamRepo.GetMembership(ctx, teamID, inviterID)
	if err != nil {
		return nil, err
	}
	if inviterMembership == nil || inviterMembership.Role == models.TeamRoleMember {
		return nil, apperrors.ErrNotTeamAdmin
	}

	invited, err := s.users.GetByEmail(ctx, req.UserEmail)
	if err != nil {
		return nil, err
	}

	invitedMembership, err := s.teamRepo.GetMembership(ctx, teamID, invited.ID)
	if err != nil {
		return nil, err
	}
	if invitedMembership != nil {
		return nil, apperrors.ErrAlreadyTeamMember
	}

	invitation := &models.TeamInvitation{
		TeamID:      teamID,
		InvitedBy:   inviterID,
		InvitedUser: invited.ID,
	}
	if err := s.teamRepo.CreateInvitation(ctx, invitation); err != nil {
		return nil, err
	}

	logger.Info().Int64("teamID", teamID).Int64("invitedUser", invited.ID).Msg("Invitation sent")

	return &dto.MessageResponse{Message: "Invitation sent successfully"}, nil
}

// RespondToInvitation accepts or declines a pending invitation. Only
// the invited user can respond, and only once.
func (s *teamServiceImpl) RespondToInvitation(ctx context.Context, invitationID, userID int64, accept bool) (*dto.MessageResponse, error) {
	teamID, err := s.teamRepo.RespondToInvitation(ctx, invitationID, userID, accept)
	if err != nil {
		return nil, err
	}

	if accept {
		logger.Info().Int64("teamID", teamID).Int64("userID", userID).Msg("Invitation accepted")
		return &dto.MessageResponse{Message: "Invitation accepted, welcome to the team"}, nil
	}
	return &dto.MessageResponse{Message: "Invitation declined"}, nil
}

// GetPendingInvitations lists the caller's pending invitations.
func (s *teamServiceImpl) GetPendingInvitations(ctx context.Context, userID int64) (*dto.PendingInvitationsResponse, error) {
	invitations, err := s.teamRepo.GetPendingInvitations(ctx, userID)
	if err != nil {
		return nil, err
	}
	if invitations == nil {
		invitations = []dto.PendingInvitation{}
	}

	return &dto.PendingInvitationsResponse{
		Message:     "Pending invitations retrieved successfully",
		Invitations: invitations,
	}, nil
}

// GetLeaderboard returns the top teams by achievement points with
// their most recent achievements. Always an array, possibly empty.
func (s *teamServiceImpl) GetLeaderboard(ctx context.Context) (*dto.LeaderboardResponse, error) {
	teams, err := s.teamRepo.GetLeaderboard(ctx, leaderboardSize)
	if err != nil {
		return nil, err
	}

	teamIDs := make([]int64, 0, len(teams))
	for i := range teams {
		teamIDs = append(teamIDs, teams[i].ID)
	}

	achievements, err := s.teamRepo.GetAchievementsByTeamIDs(ctx, teamIDs)
	if err != nil {
		return nil, err
	}

	entries := make([]dto.LeaderboardEntry, 0, len(teams))
	for i := range teams {
		t := &teams[i]
		entries = append(entries, dto.LeaderboardEntry{
			ID:                 t.ID,
			Name:               t.Name,
			AchievementPoints:  t.AchievementPoints,
			MemberCount:        t.MemberCount,
			AvatarURL:          t.AvatarURL,
			RecentAchievements: capAchievements(achievements[t.ID], leaderboardRecentLimit),
		})
	}

	return &dto.LeaderboardResponse{
		Message:     "Leaderboard retrieved successfully",
		Leaderboard: entries,
	}, nil
}

// GetCreatedTeams lists the teams the caller created, aggregated like
// the team listing.
func (s *teamServiceImpl) GetCreatedTeams(ctx context.Context, userID int64, isPrivate *bool) (*dto.CreatedTeamsResponse, error) {
	teams, err := s.teamRepo.GetCreatedBy(ctx, userID, isPrivate)
	if err != nil {
		return nil, err
	}

	responses, err := s.aggregateTeams(ctx, teams)
	if err != nil {
		return nil, err
	}

	return &dto.CreatedTeamsResponse{
		Message: "Created teams retrieved successfully",
		Teams:   responses,
	}, nil
}

// GetUserTeams lists the teams the caller belongs to.
func (s *teamServiceImpl) GetUserTeams(ctx context.Context, userID int64) (*dto.UserTeamsResponse, error) {
	teams, err := s.teamRepo.GetUserTeams(ctx, userID)
	if err != nil {
		return nil, err
	}
	if teams == nil {
		teams = []dto.UserTeam{}
	}

	return &dto.UserTeamsResponse{
		Message: "User teams retrieved successfully",
		Teams:   teams,
	}, nil
}

// aggregateTeams attaches members, events and achievements to a set of
// teams using one batch query per child table.
func (s *teamServiceImpl) aggregateTeams(ctx context.Context, teams []models.Team) ([]dto.TeamResponse, error) {
	teamIDs := make([]int64, 0, len(teams))
	for i := range teams {
		teamIDs = append(teamIDs, teams[i].ID)
	}

	members, err := s.teamRepo.GetMembersByTeamIDs(ctx, teamIDs)
	if err != nil {
		return nil, err
	}
	events, err := s.teamRepo.GetEventsByTeamIDs(ctx, teamIDs)
	if err != nil {
		return nil, err
	}
	achievements, err := s.teamRepo.GetAchievementsByTeamIDs(ctx, teamIDs)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.TeamResponse, 0, len(teams))
	for i := range teams {
		id := teams[i].ID
		responses = append(responses, dto.TeamResponse{
			Team:         teams[i],
			Members:      emptyIfNilMembers(members[id]),
			Events:       capEvents(events[id], len(events[id])),
			Achievements: capAchievements(achievements[id], len(achievements[id])),
		})
	}
	return responses, nil
}

func emptyIfNilMembers(members []dto.TeamMemberDetail) []dto.TeamMemberDetail {
	if members == nil {
		return []dto.TeamMemberDetail{}
	}
	return members
}

func capEvents(events []dto.TeamEventDetail, limit int) []dto.TeamEventDetail {
	if events == nil {
		return []dto.TeamEventDetail{}
	}
	if len(events) > limit {
		return events[:limit]
	}
	return events
}

func capAchievements(achievements []dto.TeamAchievementDetail, limit int) []dto.TeamAchievementDetail {
	if achievements == nil {
		return []dto.TeamAchievementDetail{}
	}
	if len(achievements) > limit {
		return achievements[:limit]
	}
	return achievements
}
