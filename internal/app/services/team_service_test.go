package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ekoca/volunteerhub/internal/app/models"
	"github.com/ekoca/volunteerhub/internal/app/models/dto"
	"github.com/ekoca/volunteerhub/internal/pkg/apperrors"
)

type teamStoreStub struct {
	teams        map[int64]*models.Team
	memberships  map[int64]map[int64]*models.TeamMember
	achievements map[int64][]dto.TeamAchievementDetail
	leaderboard  []models.Team
	invitations  []*models.TeamInvitation
	respondErr   error
	respondTeam  int64
	addedMembers []int64
}

func (s *teamStoreStub) CreateWithAdmin(_ context.Context, team *models.Team) error {
	team.ID = 1
	team.MemberCount = 1
	return nil
}

func (s *teamStoreStub) GetAll(_ context.Context, _ dto.TeamFilter) ([]models.Team, int64, error) {
	teams := []models.Team{}
	for _, t := range s.teams {
		teams = append(teams, *t)
	}
	return teams, int64(len(teams)), nil
}

func (s *teamStoreStub) GetByID(_ context.Context, id int64) (*models.Team, error) {
	if t, ok := s.teams[id]; ok {
		return t, nil
	}
	return nil, apperrors.ErrTeamNotFound
}

func (s *teamStoreStub) GetMembersByTeamIDs(_ context.Context, teamIDs []int64) (map[int64][]dto.TeamMemberDetail, error) {
	result := map[int64][]dto.TeamMemberDetail{}
	for _, id := range teamIDs {
		for userID, m := range s.memberships[id] {
			result[id] = append(result[id], dto.TeamMemberDetail{ID: userID, Role: string(m.Role)})
		}
	}
	return result, nil
}

func (s *teamStoreStub) GetEventsByTeamIDs(_ context.Context, _ []int64) (map[int64][]dto.TeamEventDetail, error) {
	return map[int64][]dto.TeamEventDetail{}, nil
}

func (s *teamStoreStub) GetAchievementsByTeamIDs(_ context.Context, teamIDs []int64) (map[int64][]dto.TeamAchievementDetail, error) {
	result := map[int64][]dto.TeamAchievementDetail{}
	for _, id := range teamIDs {
		if a, ok := s.achievements[id]; ok {
			result[id] = a
		}
	}
	return result, nil
}

func (s *teamStoreStub) GetMembership(_ context.Context, teamID, userID int64) (*models.TeamMember, error) {
	if m, ok := s.memberships[teamID][userID]; ok {
		return m, nil
	}
	return nil, nil
}

func (s *teamStoreStub) AddMember(_ context.Context, teamID, userID int64, role models.TeamRole) error {
	if _, ok := s.memberships[teamID][userID]; ok {
		return apperrors.ErrAlreadyTeamMember
	}
	s.addedMembers = append(s.addedMembers, userID)
	return nil
}

func (s *teamStoreStub) CreateInvitation(_ context.Context, invitation *models.TeamInvitation) error {
	for _, inv := range s.invitations {
		if inv.TeamID == invitation.TeamID && inv.InvitedUser == invitation.InvitedUser && inv.Status == models.InvitationPending {
			return apperrors.ErrInvitationPending
		}
	}
	invitation.ID = int64(len(s.invitations) + 1)
	invitation.Status = models.InvitationPending
	s.invitations = append(s.invitations, invitation)
	return nil
}

func (s *teamStoreStub) RespondToInvitation(_ context.Context, _, _ int64, _ bool) (int64, error) {
	if s.respondErr != nil {
		return 0, s.respondErr
	}
	return s.respondTeam, nil
}

func (s *teamStoreStub) GetPendingInvitations(_ context.Context, _ int64) ([]dto.PendingInvitation, error) {
	return nil, nil
}

func (s *teamStoreStub) GetLeaderboard(_ context.Context, limit int) ([]models.Team, error) {
	if len(s.leaderboard) > limit {
		return s.leaderboard[:limit], nil
	}
	return s.leaderboard, nil
}

func (s *teamStoreStub) GetCreatedBy(_ context.Context, _ int64, _ *bool) ([]models.Team, error) {
	return nil, nil
}

func (s *teamStoreStub) GetUserTeams(_ context.Context, _ int64) ([]dto.UserTeam, error) {
	return nil, nil
}

type emailResolverStub struct {
	users map[string]*models.User
}

func (s *emailResolverStub) GetByEmail(_ context.Context, email string) (*models.User, error) {
	if u, ok := s.users[email]; ok {
		return u, nil
	}
	return nil, apperrors.ErrUserNotFound
}

func newTeamStoreStub() *teamStoreStub {
	return &teamStoreStub{
		teams:        map[int64]*models.Team{},
		memberships:  map[int64]map[int64]*models.TeamMember{},
		achievements: map[int64][]dto.TeamAchievementDetail{},
	}
}

func TestCreateTeam_CreatorBecomesAdmin(t *testing.T) {
	store := newTeamStoreStub()
	svc := NewTeamService(store, &emailResolverStub{})

	resp, err := svc.CreateTeam(context.Background(), 7, "volunteer", &dto.CreateTeamRequest{
		Name:        "Green Team",
		Description: "Environmental work",
	})
	require.NoError(t, err)
	require.EqualValues(t, 7, resp.Team.CreatedBy)
	require.Equal(t, 1, resp.Team.MemberCount)
}

func TestJoinTeam_PrivateRequiresInvitation(t *testing.T) {
	store := newTeamStoreStub()
	store.teams[1] = &models.Team{ID: 1, IsPrivate: true}
	svc := NewTeamService(store, &emailResolverStub{})

	_, err := svc.JoinTeam(context.Background(), 1, 9)
	require.ErrorIs(t, err, apperrors.ErrTeamPrivate)
	require.Empty(t, store.addedMembers)
}

func TestJoinTeam_DuplicateConflict(t *testing.T) {
	store := newTeamStoreStub()
	store.teams[1] = &models.Team{ID: 1}
	store.memberships[1] = map[int64]*models.TeamMember{9: {Role: models.TeamRoleMember}}
	svc := NewTeamService(store, &emailResolverStub{})

	_, err := svc.JoinTeam(context.Background(), 1, 9)
	require.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestSendInvitation_RequiresAdminOrModerator(t *testing.T) {
	store := newTeamStoreStub()
	store.teams[1] = &models.Team{ID: 1}
	store.memberships[1] = map[int64]*models.TeamMember{
		5: {Role: models.TeamRoleMember},
	}
	svc := NewTeamService(store, &emailResolverStub{users: map[string]*models.User{
		"bo@example.com": {ID: 9, Email: "bo@example.com"},
	}})

	_, err := svc.SendInvitation(context.Background(), 1, 5, &dto.SendInvitationRequest{UserEmail: "bo@example.com"})
	require.ErrorIs(t, err, apperrors.ErrNotTeamAdmin)

	_, err = svc.SendInvitation(context.Background(), 1, 99, &dto.SendInvitationRequest{UserEmail: "bo@example.com"})
	require.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestSendInvitation_AlreadyMemberAndDuplicatePending(t *testing.T) {
	store := newTeamStoreStub()
	store.teams[1] = &models.Team{ID: 1}
	store.memberships[1] = map[int64]*models.TeamMember{
		5: {Role: models.TeamRoleAdmin},
		9: {Role: models.TeamRoleMember},
	}
	svc := NewTeamService(store, &emailResolverStub{users: map[string]*models.User{
		"bo@example.com":  {ID: 9},
		"eli@example.com": {ID: 11},
	}})

	_, err := svc.SendInvitation(context.Background(), 1, 5, &dto.SendInvitationRequest{UserEmail: "bo@example.com"})
	require.ErrorIs(t, err, apperrors.ErrAlreadyTeamMember)

	_, err = svc.SendInvitation(context.Background(), 1, 5, &dto.SendInvitationRequest{UserEmail: "eli@example.com"})
	require.NoError(t, err)

	_, err = svc.SendInvitation(context.Background(), 1, 5, &dto.SendInvitationRequest{UserEmail: "eli@example.com"})
	require.ErrorIs(t, err, apperrors.ErrInvitationPending)
}

func TestRespondToInvitation_SingleResponse(t *testing.T) {
	store := newTeamStoreStub()
	store.respondErr = apperrors.ErrInvitationNotFound
	svc := NewTeamService(store, &emailResolverStub{})

	_, err := svc.RespondToInvitation(context.Background(), 3, 9, true)
	require.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestRespondToInvitation_AcceptMessage(t *testing.T) {
	store := newTeamStoreStub()
	store.respondTeam = 1
	svc := NewTeamService(store, &emailResolverStub{})

	accepted, err := svc.RespondToInvitation(context.Background(), 3, 9, true)
	require.NoError(t, err)
	declined, err := svc.RespondToInvitation(context.Background(), 4, 9, false)
	require.NoError(t, err)
	require.NotEqual(t, accepted.Message, declined.Message)
}

func TestGetLeaderboard_CapsRecentAchievements(t *testing.T) {
	store := newTeamStoreStub()
	store.leaderboard = []models.Team{{ID: 1, Name: "Green Team", AchievementPoints: 90}}
	store.achievements[1] = []dto.TeamAchievementDetail{
		{Title: "a"}, {Title: "b"}, {Title: "c"}, {Title: "d"}, {Title: "e"},
	}
	svc := NewTeamService(store, &emailResolverStub{})

	resp, err := svc.GetLeaderboard(context.Background())
	require.NoError(t, err)
	require.Len(t, resp.Leaderboard, 1)
	require.Len(t, resp.Leaderboard[0].RecentAchievements, 3)
}

func TestGetLeaderboard_EmptyIsArray(t *testing.T) {
	svc := NewTeamService(newTeamStoreStub(), &emailResolverStub{})

	resp, err := svc.GetLeaderboard(context.Background())
	require.NoError(t, err)
	require.NotNil(t, resp.Leaderboard)
	require.Empty(t, resp.Leaderboard)
}

func TestGetTeamDashboard_PrivateVisibility(t *testing.T) {
	store := newTeamStoreStub()
	store.teams[1] = &models.Team{ID: 1, IsPrivate: true, CreatedBy: 5}
	store.memberships[1] = map[int64]*models.TeamMember{
		9: {Role: models.TeamRoleMember},
	}
	svc := NewTeamService(store, &emailResolverStub{})

	_, err := svc.GetTeamDashboard(context.Background(), 1, 99)
	require.ErrorIs(t, err, apperrors.ErrTeamPrivate)

	member, err := svc.GetTeamDashboard(context.Background(), 1, 9)
	require.NoError(t, err)
	require.NotNil(t, member.UserRole)
	require.Equal(t, "member", *member.UserRole)

	creator, err := svc.GetTeamDashboard(context.Background(), 1, 5)
	require.NoError(t, err)
	require.Nil(t, creator.UserRole)
}

func TestGetUserTeams_EmptyIsArray(t *testing.T) {
	svc := NewTeamService(newTeamStoreStub(), &emailResolverStub{})

	resp, err := svc.GetUserTeams(context.Background(), 9)
	require.NoError(t, err)
	require.NotNil(t, resp.Teams)
	require.Empty(t, resp.Teams)
}
