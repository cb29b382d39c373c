package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ekoca/volunteerhub/internal/config"
	"github.com/ekoca/volunteerhub/internal/pkg/auth"
	"github.com/ekoca/volunteerhub/internal/pkg/logger"
)

// CreateDefaultData ensures a default admin account exists so a fresh
// deployment can manage roles. Skipped when no admin credentials are
// configured.
func CreateDefaultData(ctx context.Context, db *pgxpool.Pool, cfg *config.Config) error {
	if cfg.Seed.AdminEmail == "" || cfg.Seed.AdminPassword == "" {
		logger.Debug().Msg("No admin seed credentials configured, skipping")
		return nil
	}

	var exists bool
	err := db.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)", cfg.Seed.AdminEmail).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check for admin account: %w", err)
	}
	if exists {
		return nil
	}

	hashedPassword, err := auth.HashPassword(cfg.Seed.AdminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	_, err = db.Exec(ctx,
		"INSERT INTO users (name, email, password, role) VALUES ($1, $2, $3, 'admin')",
		"Administrator", cfg.Seed.AdminEmail, hashedPassword,
	)
	if err != nil {
		return fmt.Errorf("failed to create admin account: %w", err)
	}

	logger.Info().Str("email", cfg.Seed.AdminEmail).Msg("Default admin account created")
	return nil
}
