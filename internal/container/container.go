package container

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"apextelemetry/adapters/ergast"
	"apextelemetry/adapters/postgres"
	"apextelemetry/adapters/smtp"
	"apextelemetry/app"
	"apextelemetry/internal/config"
	"apextelemetry/ports"
)

// Container holds all application dependencies and manages their lifecycle.
type Container struct {
	Config *config.Config

	// Infrastructure
	DB *sqlx.DB

	// Repositories (data access layer)
	UserRepo       ports.UserRepository
	TokenRepo      ports.TokenRepository
	SessionRepo    ports.SessionRepository
	ComparisonRepo ports.ComparisonRepository

	// External collaborators
	Results ports.ResultsProvider
	Mailer  ports.Mailer

	// Application services
	AuthService       *app.AuthService
	SessionService    *app.SessionService
	ComparisonService *app.ComparisonService
}

// New creates a dependency injection container from the configuration.
func New(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	return &Container{Config: cfg}, nil
}

// InitWithDatabase wires every component that needs database access.
func (c *Container) InitWithDatabase(db *sqlx.DB) error {
	if db == nil {
		return fmt.Errorf("database connection cannot be nil")
	}
	if err := db.Ping(); err != nil {
		return fmt.Errorf("database connection test failed: %w", err)
	}
	c.DB = db

	c.UserRepo = postgres.NewUserRepository(db)
	c.TokenRepo = postgres.NewTokenRepository(db)
	c.SessionRepo = postgres.NewSessionRepository(db)
	c.ComparisonRepo = postgres.NewComparisonRepository(db)

	c.Results = ergast.NewClient(c.Config.Results.BaseURL)
	c.Mailer = smtp.NewMailer(c.Config.Mail)

	c.AuthService = app.NewAuthService(c.UserRepo, c.TokenRepo)
	c.SessionService = app.NewSessionService(c.SessionRepo, c.Results, c.Mailer, c.Config.Telemetry.TotalLaps)
	c.ComparisonService = app.NewComparisonService(c.ComparisonRepo, c.Results, c.Config.Telemetry.TotalLaps)

	return nil
}

// Close releases held resources.
func (c *Container) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
