package ui

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"apextelemetry/models"
)

const (
	authCookie  = "auth_token"
	flashCookie = "flash"

	authCookieMaxAge = 30 * 24 * 60 * 60
)

// requireAuth resolves the auth cookie to a user and puts it in the
// request context. Unauthenticated requests are redirected to login.
func (s *Server) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(authCookie)
		if err != nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		token, err := uuid.Parse(raw)
		if err != nil {
			s.clearAuthCookie(c)
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		user, err := s.auth.ValidateToken(c.Request.Context(), token)
		if err != nil {
			s.clearAuthCookie(c)
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		c.Set("user", user)
		c.Next()
	}
}

// currentUser returns the authenticated user set by requireAuth.
func currentUser(c *gin.Context) *models.User {
	if v, ok := c.Get("user"); ok {
		if user, ok := v.(*models.User); ok {
			return user
		}
	}
	return nil
}

func (s *Server) setAuthCookie(c *gin.Context, token uuid.UUID) {
	c.SetCookie(authCookie, token.String(), authCookieMaxAge, "/", "", false, true)
}

func (s *Server) clearAuthCookie(c *gin.Context) {
	c.SetCookie(authCookie, "", -1, "/", "", false, true)
}

// setFlash stores a one-shot message shown on the next page render.
func setFlash(c *gin.Context, message string) {
	c.SetCookie(flashCookie, message, 10, "/", "", false, true)
}

// takeFlash reads and clears the pending flash message.
func takeFlash(c *gin.Context) string {
	message, err := c.Cookie(flashCookie)
	if err != nil {
		return ""
	}
	c.SetCookie(flashCookie, "", -1, "/", "", false, true)
	return message
}
