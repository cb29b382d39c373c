package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/ekoca/volunteerhub/internal/app/models"
	"github.com/ekoca/volunteerhub/internal/db"
	"github.com/ekoca/volunteerhub/internal/pkg/apperrors"
	"github.com/ekoca/volunteerhub/internal/pkg/dberrors"
	"github.com/ekoca/volunteerhub/internal/pkg/logger"
)

// UserRepository handles database operations for users
type UserRepository struct {
	db *db.PostgresDB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(database *db.PostgresDB) *UserRepository {
	return &UserRepository{db: database}
}

const userColumns = `id, name, email, password, skills, causes_supported, volunteer_hours,
	volunteer_history, total_contributions, role, created_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.Password, &u.Skills, &u.CausesSupported,
		&u.VolunteerHours, &u.VolunteerHistory, &u.TotalContributions, &u.Role, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error scanning user: %w", err)
	}
	return &u, nil
}

// Create inserts a new user and fills in the generated fields.
// A duplicate email maps to apperrors.ErrEmailAlreadyExists.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (name, email, password, skills, causes_supported, role)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, volunteer_hours, volunteer_history, total_contributions, created_at
	`

	err := r.db.Pool.QueryRow(ctx, query,
		user.Name, user.Email, user.Password, user.Skills, user.CausesSupported, user.Role,
	).Scan(&user.ID, &user.VolunteerHours, &user.VolunteerHistory, &user.TotalContributions, &user.CreatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Str("email", user.Email).Msg("Error creating user")
		return fmt.Errorf("error creating user: %w", err)
	}

	return nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users WHERE email = $1", userColumns)
	return scanUser(r.db.Pool.QueryRow(ctx, query, email))
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users WHERE id = $1", userColumns)
	return scanUser(r.db.Pool.QueryRow(ctx, query, id))
}

// UpdateProfile applies a partial profile update. Nil fields keep their
// previous values via COALESCE.
func (r *UserRepository) UpdateProfile(ctx context.Context, userID int64, name *string, skills, causesSupported []string) (*models.User, error) {
	query := fmt.Sprintf(`
		UPDATE users
		SET name = COALESCE($1, name),
		    skills = COALESCE($2, skills),
		    causes_supported = COALESCE($3, causes_supported)
		WHERE id = $4
		RETURNING %s
	`, userColumns)

	return scanUser(r.db.Pool.QueryRow(ctx, query, name, skills, causesSupported, userID))
}

// UpdateRole sets a user's role and returns the updated row.
func (r *UserRepository) UpdateRole(ctx context.Context, userID int64, role models.Role) (*models.User, error) {
	query := fmt.Sprintf(`
		UPDATE users SET role = $1 WHERE id = $2
		RETURNING %s
	`, userColumns)

	return scanUser(r.db.Pool.QueryRow(ctx, query, role, userID))
}

// GetAll retrieves every user, newest first. Admin listing only.
func (r *UserRepository) GetAll(ctx context.Context) ([]models.User, error) {
	sqlStr, args, err := squirrel.Select("id", "name", "email", "role", "created_at").
		From("users").
		OrderBy("created_at DESC", "id DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building user list SQL: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing users")
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning user row: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}

	return users, nil
}

// GetNamesByIDs resolves a set of user IDs to display names in one
// round trip. Unknown IDs are simply absent from the result.
func (r *UserRepository) GetNamesByIDs(ctx context.Context, ids []int64) (map[int64]string, error) {
	names := make(map[int64]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	rows, err := r.db.Pool.Query(ctx, "SELECT id, name FROM users WHERE id = ANY($1)", ids)
	if err != nil {
		return nil, fmt.Errorf("error resolving user names: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("error scanning user name row: %w", err)
		}
		names[id] = name
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user name rows: %w", err)
	}

	return names, nil
}
