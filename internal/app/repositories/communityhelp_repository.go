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
	"github.com/ekoca/volunteerhub/internal/pkg/helpers"
	"github.com/ekoca/volunteerhub/internal/pkg/logger"
)

// CommunityHelpRepository handles database operations for community
// help requests and their comments
type CommunityHelpRepository struct {
	db *db.PostgresDB
}

// NewCommunityHelpRepository creates a new CommunityHelpRepository
func NewCommunityHelpRepository(database *db.PostgresDB) *CommunityHelpRepository {
	return &CommunityHelpRepository{db: database}
}

const helpRequestColumns = `id, title, description, location, category, urgency_level,
	status, created_by, created_by_role, helper_count, created_at, updated_at`

// Urgent requests surface first, then medium, then low. Ties break on
// recency.
const urgencyOrder = `CASE urgency_level WHEN 'urgent' THEN 0 WHEN 'medium' THEN 1 ELSE 2 END`

func scanHelpRequest(row pgx.Row) (*models.HelpRequest, error) {
	var hr models.HelpRequest
	err := row.Scan(
		&hr.ID, &hr.Title, &hr.Description, &hr.Location, &hr.Category, &hr.UrgencyLevel,
		&hr.Status, &hr.CreatedBy, &hr.CreatedByRole, &hr.HelperCount, &hr.CreatedAt, &hr.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrHelpRequestNotFound
		}
		return nil, fmt.Errorf("error scanning help request: %w", err)
	}
	return &hr, nil
}

// Create inserts a new help request; new requests start as open.
func (r *CommunityHelpRepository) Create(ctx context.Context, request *models.HelpRequest) error {
	query := `
		INSERT INTO community_help_requests (title, description, location, category, urgency_level, created_by, created_by_role)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, status, helper_count, created_at, updated_at
	`

	err := r.db.Pool.QueryRow(ctx, query,
		request.Title, request.Description, request.Location, request.Category,
		request.UrgencyLevel, request.CreatedBy, request.CreatedByRole,
	).Scan(&request.ID, &request.Status, &request.HelperCount, &request.CreatedAt, &request.UpdatedAt)
	if err != nil {
		logger.Error().Err(err).Str("title", request.Title).Msg("Error creating help request")
		return fmt.Errorf("error creating help request: %w", err)
	}

	return nil
}

// GetAll retrieves help requests with filtering and pagination, most
// urgent first.
func (r *CommunityHelpRepository) GetAll(ctx context.Context, filter dto.HelpRequestFilter) ([]models.HelpRequest, int64, error) {
	sqlBuilder := squirrel.Select(
		"id", "title", "description", "location", "category", "urgency_level",
		"status", "created_by", "created_by_role", "helper_count", "created_at", "updated_at",
	).From("community_help_requests").PlaceholderFormat(squirrel.Dollar)
	countBuilder := squirrel.Select("count(*)").From("community_help_requests").PlaceholderFormat(squirrel.Dollar)

	if filter.Category != nil && *filter.Category != "" {
		sqlBuilder = sqlBuilder.Where(squirrel.Eq{"category": *filter.Category})
		countBuilder = countBuilder.Where(squirrel.Eq{"category": *filter.Category})
	}
	if filter.Location != nil && *filter.Location != "" {
		pattern := "%" + *filter.Location + "%"
		sqlBuilder = sqlBuilder.Where(squirrel.ILike{"location": pattern})
		countBuilder = countBuilder.Where(squirrel.ILike{"location": pattern})
	}
	if filter.UrgencyLevel != nil && *filter.UrgencyLevel != "" {
		sqlBuilder = sqlBuilder.Where(squirrel.Eq{"urgency_level": *filter.UrgencyLevel})
		countBuilder = countBuilder.Where(squirrel.Eq{"urgency_level": *filter.UrgencyLevel})
	}
	if filter.Status != nil && *filter.Status != "" {
		sqlBuilder = sqlBuilder.Where(squirrel.Eq{"status": *filter.Status})
		countBuilder = countBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}

	countSql, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building help request count SQL: %w", err)
	}

	var totalItems int64
	if err := r.db.Pool.QueryRow(ctx, countSql, countArgs...).Scan(&totalItems); err != nil {
		logger.Error().Err(err).Msg("Error counting help requests")
		return nil, 0, fmt.Errorf("error counting help requests: %w", err)
	}

	if totalItems == 0 {
		return []models.HelpRequest{}, 0, nil
	}

	sqlBuilder = sqlBuilder.OrderBy(urgencyOrder, "created_at DESC", "id DESC")
	if !filter.All {
		offset, limit := helpers.CalculateOffsetLimit(filter.Page, filter.Limit)
		sqlBuilder = sqlBuilder.Limit(uint64(limit)).Offset(offset)
	}

	sqlStr, args, err := sqlBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building help request list SQL: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing help requests")
		return nil, 0, fmt.Errorf("error listing help requests: %w", err)
	}
	defer rows.Close()

	requests := []models.HelpRequest{}
	for rows.Next() {
		var hr models.HelpRequest
		err := rows.Scan(
			&hr.ID, &hr.Title, &hr.Description, &hr.Location, &hr.Category, &hr.UrgencyLevel,
			&hr.Status, &hr.CreatedBy, &hr.CreatedByRole, &hr.HelperCount, &hr.CreatedAt, &hr.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning help request row: %w", err)
		}
		requests = append(requests, hr)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating help request rows: %w", err)
	}

	return requests, totalItems, nil
}

// GetByID retrieves a help request by ID
func (r *CommunityHelpRepository) GetByID(ctx context.Context, id int64) (*models.HelpRequest, error) {
	query := fmt.Sprintf("SELECT %s FROM community_help_requests WHERE id = $1", helpRequestColumns)
	return scanHelpRequest(r.db.Pool.QueryRow(ctx, query, id))
}

// AddComment inserts a comment and, when the commenter volunteers as a
// helper, bumps the request's helper counter in the same transaction.
func (r *CommunityHelpRepository) AddComment(ctx context.Context, comment *models.HelpComment) error {
	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		insertQuery := `
			INSERT INTO community_help_comments (help_request_id, comment_text, created_by, created_by_role, is_helper)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, created_at, updated_at
		`

		err := tx.QueryRow(ctx, insertQuery,
			comment.HelpRequestID, comment.CommentText, comment.CreatedBy, comment.CreatedByRole, comment.IsHelper,
		).Scan(&comment.ID, &comment.CreatedAt, &comment.UpdatedAt)
		if err != nil {
			logger.Error().Err(err).Int64("helpRequestID", comment.HelpRequestID).Msg("Error creating comment")
			return fmt.Errorf("error creating comment: %w", err)
		}

		if comment.IsHelper {
			tag, err := tx.Exec(ctx,
				"UPDATE community_help_requests SET helper_count = helper_count + 1 WHERE id = $1",
				comment.HelpRequestID,
			)
			if err != nil {
				return fmt.Errorf("error incrementing helper count: %w", err)
			}
			if tag.RowsAffected() == 0 {
				return apperrors.ErrHelpRequestNotFound
			}
		}

		return nil
	})
}

// GetCommentsByRequestIDs fetches the comments of a set of requests in
// one query, commenter names resolved, grouped by request ID. Newest
// comment first within each request.
func (r *CommunityHelpRepository) GetCommentsByRequestIDs(ctx context.Context, requestIDs []int64) (map[int64][]dto.CommentResponse, error) {
	comments := make(map[int64][]dto.CommentResponse, len(requestIDs))
	if len(requestIDs) == 0 {
		return comments, nil
	}

	query := `
		SELECT c.id, c.help_request_id, c.comment_text, c.created_by, c.created_by_role,
		       c.is_helper, c.created_at, c.updated_at, u.name
		FROM community_help_comments c
		JOIN users u ON c.created_by = u.id
		WHERE c.help_request_id = ANY($1)
		ORDER BY c.created_at DESC, c.id DESC
	`

	rows, err := r.db.Pool.Query(ctx, query, requestIDs)
	if err != nil {
		logger.Error().Err(err).Msg("Error fetching comments")
		return nil, fmt.Errorf("error fetching comments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c dto.CommentResponse
		err := rows.Scan(
			&c.ID, &c.HelpRequestID, &c.CommentText, &c.CreatedBy, &c.CreatedByRole,
			&c.IsHelper, &c.CreatedAt, &c.UpdatedAt, &c.CommenterName,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning comment row: %w", err)
		}
		comments[c.HelpRequestID] = append(comments[c.HelpRequestID], c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comment rows: %w", err)
	}

	return comments, nil
}

// UpdateStatus transitions a help request to a new status.
func (r *CommunityHelpRepository) UpdateStatus(ctx context.Context, id int64, status models.HelpRequestStatus) (*models.HelpRequest, error) {
	query := fmt.Sprintf(`
		UPDATE community_help_requests SET status = $1 WHERE id = $2
		RETURNING %s
	`, helpRequestColumns)

	return scanHelpRequest(r.db.Pool.QueryRow(ctx, query, status, id))
}
