package ui

import (
	"fmt"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/google/uuid"

	"apextelemetry/adapters/excel"
)

func (s *Server) handleDashboard(c *gin.Context) {
	user := currentUser(c)

	sessions, err := s.sessions.ListSessions(c.Request.Context(), user.ID)
	if err != nil {
		s.renderError(c, err)
		return
	}
	comparisons, err := s.comparisons.ListComparisons(c.Request.Context(), user.ID)
	if err != nil {
		s.renderError(c, err)
		return
	}

	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"User":        user,
		"Sessions":    sessions,
		"Comparisons": comparisons,
		"Flash":       takeFlash(c),
	})
}

func (s *Server) showNewSession(c *gin.Context) {
	drivers, err := s.results.Drivers(c.Request.Context())
	if err != nil {
		s.renderError(c, err)
		return
	}

	c.HTML(http.StatusOK, "new_session.html", gin.H{
		"User":    currentUser(c),
		"Drivers": drivers,
		"Flash":   takeFlash(c),
	})
}

func (s *Server) handleNewSession(c *gin.Context) {
	user := currentUser(c)
	name := c.PostForm("name")
	driverName := c.PostForm("driver_name")
	raceDate := c.PostForm("race_date")

	session, err := s.sessions.CreateSession(c.Request.Context(), user, name, driverName, raceDate)
	if err != nil {
		drivers, _ := s.results.Drivers(c.Request.Context())
		c.HTML(http.StatusBadRequest, "new_session.html", gin.H{
			"User":    user,
			"Drivers": drivers,
			"Error":   err.Error(),
			"Name":    name,
		})
		return
	}

	setFlash(c, "Session created.")
	c.Redirect(http.StatusFound, "/session/"+session.ID.String())
}

func (s *Server) handleViewSession(c *gin.Context) {
	user := currentUser(c)
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		s.renderNotFound(c)
		return
	}

	view, err := s.sessions.GetSessionView(c.Request.Context(), user.ID, sessionID)
	if err != nil {
		s.renderError(c, err)
		return
	}

	c.HTML(http.StatusOK, "view_session.html", gin.H{
		"User":      user,
		"Session":   view.Session,
		"Laps":      view.Laps,
		"PitStops":  view.PitStops,
		"NotesHTML": renderMarkdown(view.Session.Notes),
		"Flash":     takeFlash(c),
	})
}

func (s *Server) handleSessionData(c *gin.Context) {
	user := currentUser(c)
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	view, err := s.sessions.GetSessionView(c.Request.Context(), user.ID, sessionID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session_id":  view.Session.ID,
		"driver_name": view.Session.DriverName,
		"laps":        view.Laps,
		"pit_stops":   view.PitStops,
	})
}

func (s *Server) handleUpdateSession(c *gin.Context) {
	user := currentUser(c)
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		s.renderNotFound(c)
		return
	}

	if name := c.PostForm("name"); name != "" {
		if err := s.sessions.RenameSession(c.Request.Context(), user.ID, sessionID, name); err != nil {
			s.renderError(c, err)
			return
		}
	}
	if _, ok := c.GetPostForm("notes"); ok {
		if err := s.sessions.UpdateNotes(c.Request.Context(), user.ID, sessionID, c.PostForm("notes")); err != nil {
			s.renderError(c, err)
			return
		}
	}

	setFlash(c, "Session updated.")
	c.Redirect(http.StatusFound, "/session/"+sessionID.String())
}

func (s *Server) handleDeleteSession(c *gin.Context) {
	user := currentUser(c)
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		s.renderNotFound(c)
		return
	}

	if err := s.sessions.DeleteSession(c.Request.Context(), user.ID, sessionID); err != nil {
		s.renderError(c, err)
		return
	}

	setFlash(c, "Session deleted.")
	c.Redirect(http.StatusFound, "/dashboard")
}

func (s *Server) handleRefreshSession(c *gin.Context) {
	user := currentUser(c)
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		s.renderNotFound(c)
		return
	}

	if _, err := s.sessions.RefreshSession(c.Request.Context(), user, sessionID); err != nil {
		s.renderError(c, err)
		return
	}

	setFlash(c, "Telemetry regenerated.")
	c.Redirect(http.StatusFound, "/session/"+sessionID.String())
}

func (s *Server) handleExportSession(c *gin.Context) {
	user := currentUser(c)
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		s.renderNotFound(c)
		return
	}

	view, err := s.sessions.GetSessionView(c.Request.Context(), user.ID, sessionID)
	if err != nil {
		s.renderError(c, err)
		return
	}

	data, err := excel.WriteLapSeries(view.Session.Name, view.Laps)
	if err != nil {
		s.renderError(c, err)
		return
	}

	filename := fmt.Sprintf("%s.xlsx", view.Session.Name)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// renderMarkdown converts session notes to sanitizable HTML for the
// session view.
func renderMarkdown(notes string) template.HTML {
	if notes == "" {
		return ""
	}

	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{
		Flags: mdhtml.CommonFlags | mdhtml.SkipHTML,
	})
	return template.HTML(markdown.ToHTML([]byte(notes), p, renderer))
}

func (s *Server) renderError(c *gin.Context, err error) {
	s.log.Error("ui error: %v", err)
	c.HTML(http.StatusInternalServerError, "error.html", gin.H{
		"User":  currentUser(c),
		"Error": err.Error(),
	})
}

func (s *Server) renderNotFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "error.html", gin.H{
		"User":  currentUser(c),
		"Error": "Not found",
	})
}
