package main

import (
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"apextelemetry/adapters/ergast"
	"apextelemetry/internal"
	"apextelemetry/internal/api"
)

// Headless JSON API entrypoint. Serves the driver catalog and on-demand
// telemetry generation without auth or a database.
func main() {
	_ = godotenv.Load()
	logger := internal.DefaultLogger

	baseURL := os.Getenv("ERGAST_BASE_URL")
	if baseURL == "" {
		baseURL = "https://ergast.com/api/f1"
	}

	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8081"
	}

	server := api.NewServer(ergast.NewClient(baseURL))

	logger.Info("telemetry API listening on :%s", port)
	if err := http.ListenAndServe(":"+port, server.Router()); err != nil {
		logger.Error("api server stopped: %v", err)
		os.Exit(1)
	}
}
