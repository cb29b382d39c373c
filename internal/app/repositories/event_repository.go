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

// EventRepository handles database operations for events
type EventRepository struct {
	db *db.PostgresDB
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(database *db.PostgresDB) *EventRepository {
	return &EventRepository{db: database}
}

const eventColumns = `id, title, description, date, time, location, category,
	created_by, created_by_role, attendees, created_at`

func scanEvent(row pgx.Row) (*models.Event, error) {
	var e models.Event
	err := row.Scan(
		&e.ID, &e.Title, &e.Description, &e.Date, &e.Time, &e.Location, &e.Category,
		&e.CreatedBy, &e.CreatedByRole, &e.Attendees, &e.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, fmt.Errorf("error scanning event: %w", err)
	}
	return &e, nil
}

// Create inserts a new event. CreatedByRole is the creator's role at
// creation time and is never rewritten afterwards.
func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	query := `
		INSERT INTO events (title, description, date, time, location, category, created_by, created_by_role)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, attendees, created_at
	`

	err := r.db.Pool.QueryRow(ctx, query,
		event.Title, event.Description, event.Date, event.Time,
		event.Location, event.Category, event.CreatedBy, event.CreatedByRole,
	).Scan(&event.ID, &event.Attendees, &event.CreatedAt)
	if err != nil {
		logger.Error().Err(err).Str("title", event.Title).Msg("Error creating event")
		return fmt.Errorf("error creating event: %w", err)
	}

	return nil
}

// GetAll retrieves upcoming events with filtering and pagination,
// soonest first.
func (r *EventRepository) GetAll(ctx context.Context, filter dto.EventFilter) ([]models.Event, int64, error) {
	sqlBuilder := squirrel.Select(
		"id", "title", "description", "date", "time", "location", "category",
		"created_by", "created_by_role", "attendees", "created_at",
	).From("events").PlaceholderFormat(squirrel.Dollar)
	countBuilder := squirrel.Select("count(*)").From("events").PlaceholderFormat(squirrel.Dollar)

	// Past events are not listed, only fetched by ID.
	sqlBuilder = sqlBuilder.Where("date::date >= CURRENT_DATE")
	countBuilder = countBuilder.Where("date::date >= CURRENT_DATE")

	if filter.Category != nil && *filter.Category != "" {
		sqlBuilder = sqlBuilder.Where(squirrel.Eq{"category": *filter.Category})
		countBuilder = countBuilder.Where(squirrel.Eq{"category": *filter.Category})
	}
	if filter.Location != nil && *filter.Location != "" {
		pattern := "%" + *filter.Location + "%"
		sqlBuilder = sqlBuilder.Where(squirrel.ILike{"location": pattern})
		countBuilder = countBuilder.Where(squirrel.ILike{"location": pattern})
	}
	if filter.Date != nil {
		sqlBuilder = sqlBuilder.Where("date::date = ?::date", *filter.Date)
		countBuilder = countBuilder.Where("date::date = ?::date", *filter.Date)
	}

	countSql, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building event count SQL: %w", err)
	}

	var totalItems int64
	if err := r.db.Pool.QueryRow(ctx, countSql, countArgs...).Scan(&totalItems); err != nil {
		logger.Error().Err(err).Msg("Error counting events")
		return nil, 0, fmt.Errorf("error counting events: %w", err)
	}

	if totalItems == 0 {
		return []models.Event{}, 0, nil
	}

	sqlBuilder = sqlBuilder.OrderBy("date ASC", "id ASC")
	if !filter.All {
		offset, limit := helpers.CalculateOffsetLimit(filter.Page, filter.Limit)
		sqlBuilder = sqlBuilder.Limit(uint64(limit)).Offset(offset)
	}

	sqlStr, args, err := sqlBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building event list SQL: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing events")
		return nil, 0, fmt.Errorf("error listing events: %w", err)
	}
	defer rows.Close()

	events := []models.Event{}
	for rows.Next() {
		var e models.Event
		err := rows.Scan(
			&e.ID, &e.Title, &e.Description, &e.Date, &e.Time, &e.Location, &e.Category,
			&e.CreatedBy, &e.CreatedByRole, &e.Attendees, &e.CreatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning event row: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating event rows: %w", err)
	}

	return events, totalItems, nil
}

// GetByID retrieves an event by ID
func (r *EventRepository) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	query := fmt.Sprintf("SELECT %s FROM events WHERE id = $1", eventColumns)
	return scanEvent(r.db.Pool.QueryRow(ctx, query, id))
}

// AddAttendee registers a user for an event in a single conditional
// update. The guard in the WHERE clause makes concurrent duplicate
// joins impossible without taking a row lock first.
func (r *EventRepository) AddAttendee(ctx context.Context, eventID, userID int64) (*models.Event, error) {
	query := fmt.Sprintf(`
		UPDATE events
		SET attendees = array_append(attendees, $1)
		WHERE id = $2 AND NOT ($1 = ANY(attendees))
		RETURNING %s
	`, eventColumns)

	event, err := scanEvent(r.db.Pool.QueryRow(ctx, query, userID, eventID))
	if err == nil {
		return event, nil
	}
	if !errors.Is(err, apperrors.ErrEventNotFound) {
		return nil, err
	}

	// Zero rows updated: either the event does not exist or the user
	// is already in the array. Disambiguate with an existence check.
	var exists bool
	checkErr := r.db.Pool.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM events WHERE id = $1)", eventID).Scan(&exists)
	if checkErr != nil {
		return nil, fmt.Errorf("error checking event existence: %w", checkErr)
	}
	if !exists {
		return nil, apperrors.ErrEventNotFound
	}
	return nil, apperrors.ErrAlreadyAttending
}
