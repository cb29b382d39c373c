package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	appControllers "github.com/ekoca/volunteerhub/internal/app/controllers"
	appMigrations "github.com/ekoca/volunteerhub/internal/app/migrations"
	appRepos "github.com/ekoca/volunteerhub/internal/app/repositories"
	appRoutes "github.com/ekoca/volunteerhub/internal/app/routes"
	appServices "github.com/ekoca/volunteerhub/internal/app/services"
	"github.com/ekoca/volunteerhub/internal/config"
	"github.com/ekoca/volunteerhub/internal/db"
	"github.com/ekoca/volunteerhub/internal/middleware"
	pkgAuth "github.com/ekoca/volunteerhub/internal/pkg/auth"
	"github.com/ekoca/volunteerhub/internal/pkg/helpers"
	"github.com/ekoca/volunteerhub/internal/pkg/logger"
	"github.com/ekoca/volunteerhub/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos                   *appRepos.Repositories
	Services                *appServices.Services
	JWTService              *pkgAuth.JWTService
	AuthController          *appControllers.AuthController
	EventController         *appControllers.EventController
	CommunityHelpController *appControllers.CommunityHelpController
	TeamController          *appControllers.TeamController
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, err
	}

	logger.Configure(logger.Config{
		Level:  logger.LogLevel(strings.ToLower(cfg.Logging.Level)),
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})

	logger.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, nil
}

// SetupDatabase establishes the database connection, runs migrations
// and seeds default data.
func SetupDatabase(cfg *config.Config) (*db.PostgresDB, error) {
	logger.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	ctx := context.Background()

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		database.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	migrator := appMigrations.NewMigrator(database.Pool)
	if err := migrator.MigrateFromDirectory(ctx, migrationsDir); err != nil {
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	logger.Info().Msg("Database migrations applied")

	if err := seed.CreateDefaultData(ctx, database.Pool, cfg); err != nil {
		// A missing admin account is not fatal; roles can be fixed by hand.
		logger.Error().Err(err).Msg("Failed to create default data, proceeding anyway")
	}

	return database, nil
}

// BuildDependencies initializes repositories, services and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB) (*Dependencies, error) {
	jwtService := pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	repos := appRepos.NewRepositories(database)
	svcs := appServices.NewServices(repos, jwtService)

	return &Dependencies{
		Repos:                   repos,
		Services:                svcs,
		JWTService:              jwtService,
		AuthController:          appControllers.NewAuthController(svcs.AuthService),
		EventController:         appControllers.NewEventController(svcs.EventService),
		CommunityHelpController: appControllers.NewCommunityHelpController(svcs.CommunityHelpService),
		TeamController:          appControllers.NewTeamController(svcs.TeamService),
	}, nil
}

// SetupRouter builds the gin engine with middleware, operational
// endpoints and the API routes.
func SetupRouter(cfg *config.Config, deps *Dependencies) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(), middleware.Metrics())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	appRoutes.SetupRouter(
		router,
		deps.AuthController,
		deps.EventController,
		deps.CommunityHelpController,
		deps.TeamController,
		deps.JWTService,
	)

	return router
}
