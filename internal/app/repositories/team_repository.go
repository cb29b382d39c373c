package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/ekoca/volunteerhub/internal/app/models"
	"github.com/ekoca/volunteerhub/internal/app/models/dto"
	"github.com/ekoca/volunteerhub/internal/db"
	"github.com/ekoca/volunteerhub/internal/pkg/apperrors"
	"github.com/ekoca/volunteerhub/internal/pkg/dberrors"
	"github.com/ekoca/volunteerhub/internal/pkg/helpers"
	"github.com/ekoca/volunteerhub/internal/pkg/logger"
)

// TeamRepository handles database operations for teams, memberships,
// invitations, team events and achievements
type TeamRepository struct {
	db *db.PostgresDB
}

// NewTeamRepository creates a new TeamRepository
func NewTeamRepository(database *db.PostgresDB) *TeamRepository {
	return &TeamRepository{db: database}
}

const teamColumns = `id, name, description, is_private, created_by, created_by_role,
	member_count, achievement_points, avatar_url, created_at, updated_at`

// Whitelisted sort keys for team listings. Anything else falls back to
// achievement points.
var teamSortColumns = map[string]string{
	"achievement_points": "achievement_points DESC",
	"member_count":       "member_count DESC",
	"created_at":         "created_at DESC",
}

func scanTeam(row pgx.Row) (*models.Team, error) {
	var t models.Team
	err := row.Scan(
		&t.ID, &t.Name, &t.Description, &t.IsPrivate, &t.CreatedBy, &t.CreatedByRole,
		&t.MemberCount, &t.AchievementPoints, &t.AvatarURL, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTeamNotFound
		}
		return nil, fmt.Errorf("error scanning team: %w", err)
	}
	return &t, nil
}

func scanTeamRows(rows pgx.Rows) ([]models.Team, error) {
	teams := []models.Team{}
	for rows.Next() {
		var t models.Team
		err := rows.Scan(
			&t.ID, &t.Name, &t.Description, &t.IsPrivate, &t.CreatedBy, &t.CreatedByRole,
			&t.MemberCount, &t.AchievementPoints, &t.AvatarURL, &t.CreatedAt, &t.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning team row: %w", err)
		}
		teams = append(teams, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating team rows: %w", err)
	}
	return teams, nil
}

// CreateWithAdmin inserts a team and its creator's admin membership in
// one transaction, so a team can never exist without its admin row.
func (r *TeamRepository) CreateWithAdmin(ctx context.Context, team *models.Team) error {
	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		insertQuery := `
			INSERT INTO teams (name, description, is_private, created_by, created_by_role, avatar_url)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, member_count, achievement_points, created_at, updated_at
		`

		err := tx.QueryRow(ctx, insertQuery,
			team.Name, team.Description, team.IsPrivate, team.CreatedBy, team.CreatedByRole, team.AvatarURL,
		).Scan(&team.ID, &team.MemberCount, &team.AchievementPoints, &team.CreatedAt, &team.UpdatedAt)
		if err != nil {
			logger.Error().Err(err).Str("name", team.Name).Msg("Error creating team")
			return fmt.Errorf("error creating team: %w", err)
		}

		_, err = tx.Exec(ctx,
			"INSERT INTO team_members (team_id, user_id, role) VALUES ($1, $2, $3)",
			team.ID, team.CreatedBy, models.TeamRoleAdmin,
		)
		if err != nil {
			return fmt.Errorf("error creating admin membership: %w", err)
		}

		return nil
	})
}

// GetAll retrieves teams visible to the viewer with search and
// pagination. Private teams are listed only for their creator.
func (r *TeamRepository) GetAll(ctx context.Context, filter dto.TeamFilter) ([]models.Team, int64, error) {
	sqlBuilder := squirrel.Select(
		"id", "name", "description", "is_private", "created_by", "created_by_role",
		"member_count", "achievement_points", "avatar_url", "created_at", "updated_at",
	).From("teams").PlaceholderFormat(squirrel.Dollar)
	countBuilder := squirrel.Select("count(*)").From("teams").PlaceholderFormat(squirrel.Dollar)

	visibility := squirrel.Or{
		squirrel.Eq{"is_private": false},
		squirrel.Eq{"created_by": filter.ViewerID},
	}
	sqlBuilder = sqlBuilder.Where(visibility)
	countBuilder = countBuilder.Where(visibility)

	if filter.Search != nil && *filter.Search != "" {
		cond := squirrel.ILike{"name": "%" + *filter.Search + "%"}
		sqlBuilder = sqlBuilder.Where(cond)
		countBuilder = countBuilder.Where(cond)
	}

	countSql, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building team count SQL: %w", err)
	}

	var totalItems int64
	if err := r.db.Pool.QueryRow(ctx, countSql, countArgs...).Scan(&totalItems); err != nil {
		logger.Error().Err(err).Msg("Error counting teams")
		return nil, 0, fmt.Errorf("error counting teams: %w", err)
	}

	if totalItems == 0 {
		return []models.Team{}, 0, nil
	}

	orderBy, ok := teamSortColumns[filter.SortBy]
	if !ok {
		orderBy = teamSortColumns["achievement_points"]
	}

	offset, limit := helpers.CalculateOffsetLimit(filter.Page, filter.Limit)
	sqlStr, args, err := sqlBuilder.
		OrderBy(orderBy, "id ASC").
		Limit(uint64(limit)).
		Offset(offset).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building team list SQL: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing teams")
		return nil, 0, fmt.Errorf("error listing teams: %w", err)
	}
	defer rows.Close()

	teams, err := scanTeamRows(rows)
	if err != nil {
		return nil, 0, err
	}

	return teams, totalItems, nil
}

// GetByID retrieves a team by ID
func (r *TeamRepository) GetByID(ctx context.Context, id int64) (*models.Team, error) {
	query := fmt.Sprintf("SELECT %s FROM teams WHERE id = $1", teamColumns)
	return scanTeam(r.db.Pool.QueryRow(ctx, query, id))
}

// GetMembersByTeamIDs fetches the members of a set of teams in one
// query, names resolved, grouped by team ID. Admins first, then by
// join date.
func (r *TeamRepository) GetMembersByTeamIDs(ctx context.Context, teamIDs []int64) (map[int64][]dto.TeamMemberDetail, error) {
	members := make(map[int64][]dto.TeamMemberDetail, len(teamIDs))
	if len(teamIDs) == 0 {
		return members, nil
	}

	query := `
		SELECT tm.team_id, tm.user_id, u.name, tm.role, tm.joined_at, tm.contribution_points
		FROM team_members tm
		JOIN users u ON tm.user_id = u.id
		WHERE tm.team_id = ANY($1)
		ORDER BY CASE tm.role WHEN 'admin' THEN 0 WHEN 'moderator' THEN 1 ELSE 2 END, tm.joined_at ASC
	`

	rows, err := r.db.Pool.Query(ctx, query, teamIDs)
	if err != nil {
		logger.Error().Err(err).Msg("Error fetching team members")
		return nil, fmt.Errorf("error fetching team members: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var teamID int64
		var m dto.TeamMemberDetail
		if err := rows.Scan(&teamID, &m.ID, &m.Name, &m.Role, &m.JoinedAt, &m.ContributionPoints); err != nil {
			return nil, fmt.Errorf("error scanning team member row: %w", err)
		}
		members[teamID] = append(members[teamID], m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating team member rows: %w", err)
	}

	return members, nil
}

// GetEventsByTeamIDs fetches the linked events of a set of teams in one
// query, grouped by team ID, newest first.
func (r *TeamRepository) GetEventsByTeamIDs(ctx context.Context, teamIDs []int64) (map[int64][]dto.TeamEventDetail, error) {
	events := make(map[int64][]dto.TeamEventDetail, len(teamIDs))
	if len(teamIDs) == 0 {
		return events, nil
	}

	query := `
		SELECT te.team_id, te.event_id, e.title, e.date, te.points_awarded
		FROM team_events te
		JOIN events e ON te.event_id = e.id
		WHERE te.team_id = ANY($1)
		ORDER BY e.date DESC, te.id DESC
	`

	rows, err := r.db.Pool.Query(ctx, query, teamIDs)
	if err != nil {
		logger.Error().Err(err).Msg("Error fetching team events")
		return nil, fmt.Errorf("error fetching team events: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var teamID int64
		var e dto.TeamEventDetail
		if err := rows.Scan(&teamID, &e.ID, &e.Title, &e.Date, &e.PointsAwarded); err != nil {
			return nil, fmt.Errorf("error scanning team event row: %w", err)
		}
		events[teamID] = append(events[teamID], e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating team event rows: %w", err)
	}

	return events, nil
}

// GetAchievementsByTeamIDs fetches the achievements of a set of teams
// in one query, grouped by team ID, most recent first.
func (r *TeamRepository) GetAchievementsByTeamIDs(ctx context.Context, teamIDs []int64) (map[int64][]dto.TeamAchievementDetail, error) {
	achievements := make(map[int64][]dto.TeamAchievementDetail, len(teamIDs))
	if len(teamIDs) == 0 {
		return achievements, nil
	}

	query := `
		SELECT team_id, id, title, points, achieved_at
		FROM team_achievements
		WHERE team_id = ANY($1)
		ORDER BY achieved_at DESC, id DESC
	`

	rows, err := r.db.Pool.Query(ctx, query, teamIDs)
	if err != nil {
		logger.Error().Err(err).Msg("Error fetching team achievements")
		return nil, fmt.Errorf("error fetching team achievements: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var teamID int64
		var a dto.TeamAchievementDetail
		if err := rows.Scan(&teamID, &a.ID, &a.Title, &a.Points, &a.AchievedAt); err != nil {
			return nil, fmt.Errorf("error scanning achievement row: %w", err)
		}
		achievements[teamID] = append(achievements[teamID], a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating achievement rows: %w", err)
	}

	return achievements, nil
}

// GetMembership returns the caller's membership row, or nil when the
// user is not a member.
func (r *TeamRepository) GetMembership(ctx context.Context, teamID, userID int64) (*models.TeamMember, error) {
	query := `
		SELECT id, team_id, user_id, role, contribution_points, joined_at
		FROM team_members
		WHERE team_id = $1 AND user_id = $2
	`

	var m models.TeamMember
	err := r.db.Pool.QueryRow(ctx, query, teamID, userID).Scan(
		&m.ID, &m.TeamID, &m.UserID, &m.Role, &m.ContributionPoints, &m.JoinedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching membership: %w", err)
	}
	return &m, nil
}

// AddMember inserts a membership row and bumps the team's member
// counter in the same transaction. The unique constraint on
// (team_id, user_id) makes concurrent duplicate joins impossible.
func (r *TeamRepository) AddMember(ctx context.Context, teamID, userID int64, role models.TeamRole) error {
	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			"INSERT INTO team_members (team_id, user_id, role) VALUES ($1, $2, $3)",
			teamID, userID, role,
		)
		if err != nil {
			if dberrors.IsUniqueViolation(err) {
				return apperrors.ErrAlreadyTeamMember
			}
			return fmt.Errorf("error creating membership: %w", err)
		}

		tag, err := tx.Exec(ctx, "UPDATE teams SET member_count = member_count + 1 WHERE id = $1", teamID)
		if err != nil {
			return fmt.Errorf("error incrementing member count: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrTeamNotFound
		}

		return nil
	})
}

// CreateInvitation inserts a pending invitation. The partial unique
// index on pending rows maps a duplicate to ErrInvitationPending.
func (r *TeamRepository) CreateInvitation(ctx context.Context, invitation *models.TeamInvitation) error {
	query := `
		INSERT INTO team_invitations (team_id, invited_by, invited_user)
		VALUES ($1, $2, $3)
		RETURNING id, status, created_at, updated_at
	`

	err := r.db.Pool.QueryRow(ctx, query,
		invitation.TeamID, invitation.InvitedBy, invitation.InvitedUser,
	).Scan(&invitation.ID, &invitation.Status, &invitation.CreatedAt, &invitation.UpdatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrInvitationPending
		}
		logger.Error().Err(err).Int64("teamID", invitation.TeamID).Msg("Error creating invitation")
		return fmt.Errorf("error creating invitation: %w", err)
	}

	return nil
}

// RespondToInvitation atomically claims a pending invitation for the
// invited user and, on accept, adds the membership and bumps the
// member counter in the same transaction. A second response, a
// response by anyone else, or a response to an unknown invitation all
// map to ErrInvitationNotFound.
func (r *TeamRepository) RespondToInvitation(ctx context.Context, invitationID, userID int64, accept bool) (int64, error) {
	status := models.InvitationDeclined
	if accept {
		status = models.InvitationAccepted
	}

	var teamID int64
	err := r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		claimQuery := `
			UPDATE team_invitations
			SET status = $1
			WHERE id = $2 AND invited_user = $3 AND status = 'pending'
			RETURNING team_id
		`

		err := tx.QueryRow(ctx, claimQuery, status, invitationID, userID).Scan(&teamID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrInvitationNotFound
			}
			return fmt.Errorf("error claiming invitation: %w", err)
		}

		if !accept {
			return nil
		}

		_, err = tx.Exec(ctx,
			"INSERT INTO team_members (team_id, user_id, role) VALUES ($1, $2, $3)",
			teamID, userID, models.TeamRoleMember,
		)
		if err != nil {
			if dberrors.IsUniqueViolation(err) {
				return apperrors.ErrAlreadyTeamMember
			}
			return fmt.Errorf("error creating membership: %w", err)
		}

		if _, err := tx.Exec(ctx, "UPDATE teams SET member_count = member_count + 1 WHERE id = $1", teamID); err != nil {
			return fmt.Errorf("error incrementing member count: %w", err)
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return teamID, nil
}

// GetPendingInvitations lists the caller's pending invitations with
// team and inviter details, newest first.
func (r *TeamRepository) GetPendingInvitations(ctx context.Context, userID int64) ([]dto.PendingInvitation, error) {
	query := `
		SELECT ti.id, ti.team_id, ti.invited_by, ti.invited_user, ti.status, ti.created_at, ti.updated_at,
		       t.name, t.description, t.member_count, u.name
		FROM team_invitations ti
		JOIN teams t ON ti.team_id = t.id
		JOIN users u ON ti.invited_by = u.id
		WHERE ti.invited_user = $1 AND ti.status = 'pending'
		ORDER BY ti.created_at DESC, ti.id DESC
	`

	rows, err := r.db.Pool.Query(ctx, query, userID)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing pending invitations")
		return nil, fmt.Errorf("error listing pending invitations: %w", err)
	}
	defer rows.Close()

	invitations := []dto.PendingInvitation{}
	for rows.Next() {
		var inv dto.PendingInvitation
		err := rows.Scan(
			&inv.ID, &inv.TeamID, &inv.InvitedBy, &inv.InvitedUser, &inv.Status, &inv.CreatedAt, &inv.UpdatedAt,
			&inv.TeamName, &inv.TeamDescription, &inv.MemberCount, &inv.InvitedByName,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning invitation row: %w", err)
		}
		invitations = append(invitations, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invitation rows: %w", err)
	}

	return invitations, nil
}

// GetLeaderboard retrieves the top public teams by achievement points.
func (r *TeamRepository) GetLeaderboard(ctx context.Context, limit int) ([]models.Team, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM teams
		WHERE is_private = false
		ORDER BY achievement_points DESC, member_count DESC, id ASC
		LIMIT $1
	`, teamColumns)

	rows, err := r.db.Pool.Query(ctx, query, limit)
	if err != nil {
		logger.Error().Err(err).Msg("Error fetching leaderboard")
		return nil, fmt.Errorf("error fetching leaderboard: %w", err)
	}
	defer rows.Close()

	return scanTeamRows(rows)
}

// GetCreatedBy retrieves the teams a user created, newest first,
// optionally filtered by privacy.
func (r *TeamRepository) GetCreatedBy(ctx context.Context, userID int64, isPrivate *bool) ([]models.Team, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM teams
		WHERE created_by = $1 AND ($2::boolean IS NULL OR is_private = $2)
		ORDER BY created_at DESC, id DESC
	`, teamColumns)

	rows, err := r.db.Pool.Query(ctx, query, userID, isPrivate)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing created teams")
		return nil, fmt.Errorf("error listing created teams: %w", err)
	}
	defer rows.Close()

	return scanTeamRows(rows)
}

// GetUserTeams lists the teams the caller belongs to, with the caller's
// membership details and the team's event count.
func (r *TeamRepository) GetUserTeams(ctx context.Context, userID int64) ([]dto.UserTeam, error) {
	query := `
		SELECT t.id, t.name, t.description, t.is_private, t.created_by, t.created_by_role,
		       t.member_count, t.achievement_points, t.avatar_url, t.created_at, t.updated_at,
		       tm.role, tm.joined_at, tm.contribution_points,
		       (SELECT COUNT(*) FROM team_events te WHERE te.team_id = t.id) AS total_events
		FROM team_members tm
		JOIN teams t ON tm.team_id = t.id
		WHERE tm.user_id = $1
		ORDER BY tm.joined_at DESC, t.id DESC
	`

	rows, err := r.db.Pool.Query(ctx, query, userID)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing user teams")
		return nil, fmt.Errorf("error listing user teams: %w", err)
	}
	defer rows.Close()

	teams := []dto.UserTeam{}
	for rows.Next() {
		var ut dto.UserTeam
		err := rows.Scan(
			&ut.ID, &ut.Name, &ut.Description, &ut.IsPrivate, &ut.CreatedBy, &ut.CreatedByRole,
			&ut.MemberCount, &ut.AchievementPoints, &ut.AvatarURL, &ut.CreatedAt, &ut.UpdatedAt,
			&ut.MemberRole, &ut.JoinedAt, &ut.ContributionPoints, &ut.TotalEvents,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning user team row: %w", err)
		}
		teams = append(teams, ut)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user team rows: %w", err)
	}

	return teams, nil
}
