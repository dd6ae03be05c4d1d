package main

import (
	"context"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"apextelemetry/adapters/db/postgres/migrations"
	"apextelemetry/internal"
	"apextelemetry/internal/config"
	"apextelemetry/internal/container"
	"apextelemetry/ui"
)

func main() {
	_ = godotenv.Load()
	logger := internal.DefaultLogger

	cfg, err := config.Load()
	if err != nil {
		logger.Error("configuration invalid: %v", err)
		os.Exit(1)
	}

	gin.SetMode(cfg.Server.GinMode)

	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		logger.Error("database connection failed: %v", err)
		os.Exit(1)
	}

	if err := migrations.NewMigrator(db.DB).Up(context.Background()); err != nil {
		logger.Error("migrations failed: %v", err)
		os.Exit(1)
	}

	c, err := container.New(cfg)
	if err != nil {
		logger.Error("container setup failed: %v", err)
		os.Exit(1)
	}
	if err := c.InitWithDatabase(db); err != nil {
		logger.Error("container init failed: %v", err)
		os.Exit(1)
	}
	defer c.Close()

	server, err := ui.NewServer(c.AuthService, c.SessionService, c.ComparisonService, c.Results)
	if err != nil {
		logger.Error("web server setup failed: %v", err)
		os.Exit(1)
	}

	if err := server.Run(cfg.Server.Port); err != nil {
		logger.Error("web server stopped: %v", err)
		os.Exit(1)
	}
}
