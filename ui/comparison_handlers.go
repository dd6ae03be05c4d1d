package ui

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (s *Server) showCompare(c *gin.Context) {
	drivers, err := s.results.Drivers(c.Request.Context())
	if err != nil {
		s.renderError(c, err)
		return
	}

	c.HTML(http.StatusOK, "compare.html", gin.H{
		"User":    currentUser(c),
		"Drivers": drivers,
		"Flash":   takeFlash(c),
	})
}

func (s *Server) handleCompare(c *gin.Context) {
	user := currentUser(c)
	driver1 := c.PostForm("driver1")
	driver2 := c.PostForm("driver2")
	raceDate := c.PostForm("race_date")

	result, err := s.comparisons.Compare(c.Request.Context(), driver1, driver2, raceDate)
	if err != nil {
		drivers, _ := s.results.Drivers(c.Request.Context())
		c.HTML(http.StatusBadRequest, "compare.html", gin.H{
			"User":    user,
			"Drivers": drivers,
			"Error":   err.Error(),
		})
		return
	}

	c.HTML(http.StatusOK, "compare_results.html", gin.H{
		"User":     user,
		"Result":   result,
		"Summary":  result.Summary,
		"RaceDate": raceDate,
	})
}

// handleSaveComparison regenerates the comparison from its inputs and
// persists it. Generation is deterministic, so the stored series match
// what the user just saw.
func (s *Server) handleSaveComparison(c *gin.Context) {
	user := currentUser(c)
	driver1 := c.PostForm("driver1")
	driver2 := c.PostForm("driver2")
	raceDate := c.PostForm("race_date")

	result, err := s.comparisons.Compare(c.Request.Context(), driver1, driver2, raceDate)
	if err != nil {
		s.renderError(c, err)
		return
	}

	saved, err := s.comparisons.SaveComparison(c.Request.Context(), user.ID, result)
	if err != nil {
		s.renderError(c, err)
		return
	}

	setFlash(c, "Comparison saved.")
	c.Redirect(http.StatusFound, "/comparison/"+saved.ID.String())
}

func (s *Server) handleViewComparison(c *gin.Context) {
	user := currentUser(c)
	comparisonID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		s.renderNotFound(c)
		return
	}

	comparison, summary, err := s.comparisons.GetComparison(c.Request.Context(), user.ID, comparisonID)
	if err != nil {
		s.renderError(c, err)
		return
	}

	c.HTML(http.StatusOK, "comparison.html", gin.H{
		"User":       user,
		"Comparison": comparison,
		"Summary":    summary,
		"Flash":      takeFlash(c),
	})
}

func (s *Server) handleDeleteComparison(c *gin.Context) {
	user := currentUser(c)
	comparisonID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		s.renderNotFound(c)
		return
	}

	if err := s.comparisons.DeleteComparison(c.Request.Context(), user.ID, comparisonID); err != nil {
		s.renderError(c, err)
		return
	}

	setFlash(c, "Comparison deleted.")
	c.Redirect(http.StatusFound, "/dashboard")
}
