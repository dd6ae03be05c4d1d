package ui

import (
	"fmt"
	"html/template"
	"io/fs"
	"strings"

	"github.com/gin-gonic/gin"

	"apextelemetry/app"
	"apextelemetry/internal"
	"apextelemetry/ports"
)

// Server is the authenticated web UI for telemetry sessions and
// comparisons.
type Server struct {
	router      *gin.Engine
	auth        *app.AuthService
	sessions    *app.SessionService
	comparisons *app.ComparisonService
	results     ports.ResultsProvider
	log         *internal.Logger
}

// NewServer wires the web UI over the application services.
func NewServer(auth *app.AuthService, sessions *app.SessionService, comparisons *app.ComparisonService, results ports.ResultsProvider) (*Server, error) {
	s := &Server{
		router:      gin.Default(),
		auth:        auth,
		sessions:    sessions,
		comparisons: comparisons,
		results:     results,
		log:         internal.DefaultLogger,
	}

	if err := s.loadTemplates(); err != nil {
		return nil, err
	}
	s.setupRoutes()
	return s, nil
}

func (s *Server) loadTemplates() error {
	funcMap := template.FuncMap{
		"upper": strings.ToUpper,
		"fmt1":  func(v float64) string { return fmt.Sprintf("%.1f", v) },
		"fmt2":  func(v float64) string { return fmt.Sprintf("%.2f", v) },
		"fmt3":  func(v float64) string { return fmt.Sprintf("%.3f", v) },
		"lapTime": func(seconds float64) string {
			m := int(seconds) / 60
			return fmt.Sprintf("%d:%06.3f", m, seconds-float64(m*60))
		},
		"add": func(a, b int) int { return a + b },
	}

	templatesFS, err := fs.Sub(templateFiles, "templates")
	if err != nil {
		return fmt.Errorf("templates filesystem: %w", err)
	}

	tmpl, err := template.New("").Funcs(funcMap).ParseFS(templatesFS, "*.html")
	if err != nil {
		return fmt.Errorf("parse templates: %w", err)
	}

	s.router.SetHTMLTemplate(tmpl)
	return nil
}

func (s *Server) setupRoutes() {
	r := s.router

	r.GET("/", s.handleIndex)
	r.GET("/register", s.showRegister)
	r.POST("/register", s.handleRegister)
	r.GET("/login", s.showLogin)
	r.POST("/login", s.handleLogin)
	r.GET("/logout", s.handleLogout)

	authed := r.Group("/", s.requireAuth())
	{
		authed.GET("/dashboard", s.handleDashboard)

		authed.GET("/session/new", s.showNewSession)
		authed.POST("/session/new", s.handleNewSession)
		authed.GET("/session/:id", s.handleViewSession)
		authed.GET("/session/:id/data", s.handleSessionData)
		authed.POST("/session/:id/update", s.handleUpdateSession)
		authed.POST("/session/:id/delete", s.handleDeleteSession)
		authed.POST("/session/:id/refresh", s.handleRefreshSession)
		authed.GET("/session/:id/export.xlsx", s.handleExportSession)

		authed.GET("/compare", s.showCompare)
		authed.POST("/compare", s.handleCompare)
		authed.POST("/comparison/save", s.handleSaveComparison)
		authed.GET("/comparison/:id", s.handleViewComparison)
		authed.POST("/comparison/:id/delete", s.handleDeleteComparison)

		authed.GET("/change-password", s.showChangePassword)
		authed.POST("/change-password", s.handleChangePassword)
		authed.GET("/delete-account", s.showDeleteAccount)
		authed.POST("/delete-account", s.handleDeleteAccount)
	}
}

// Run starts the web server on the given port.
func (s *Server) Run(port string) error {
	s.log.Info("web UI listening on :%s", port)
	return s.router.Run(":" + port)
}

// Router exposes the underlying engine, mainly for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}
