package ui

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (s *Server) handleIndex(c *gin.Context) {
	if raw, err := c.Cookie(authCookie); err == nil && raw != "" {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}
	c.Redirect(http.StatusFound, "/login")
}

func (s *Server) showRegister(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", gin.H{
		"Flash": takeFlash(c),
	})
}

func (s *Server) handleRegister(c *gin.Context) {
	username := c.PostForm("username")
	email := c.PostForm("email")
	password := c.PostForm("password")

	_, token, err := s.auth.Register(c.Request.Context(), username, email, password)
	if err != nil {
		c.HTML(http.StatusBadRequest, "register.html", gin.H{
			"Error":    err.Error(),
			"Username": username,
			"Email":    email,
		})
		return
	}

	s.setAuthCookie(c, token.Token)
	setFlash(c, "Welcome to ApexTelemetry!")
	c.Redirect(http.StatusFound, "/dashboard")
}

func (s *Server) showLogin(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{
		"Flash": takeFlash(c),
	})
}

func (s *Server) handleLogin(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	_, token, err := s.auth.Login(c.Request.Context(), username, password)
	if err != nil {
		c.HTML(http.StatusUnauthorized, "login.html", gin.H{
			"Error":    "Invalid username or password",
			"Username": username,
		})
		return
	}

	s.setAuthCookie(c, token.Token)
	c.Redirect(http.StatusFound, "/dashboard")
}

func (s *Server) handleLogout(c *gin.Context) {
	if raw, err := c.Cookie(authCookie); err == nil {
		if token, err := uuid.Parse(raw); err == nil {
			_ = s.auth.Logout(c.Request.Context(), token)
		}
	}
	s.clearAuthCookie(c)
	setFlash(c, "You have been logged out.")
	c.Redirect(http.StatusFound, "/login")
}

func (s *Server) showChangePassword(c *gin.Context) {
	c.HTML(http.StatusOK, "change_password.html", gin.H{
		"User":  currentUser(c),
		"Flash": takeFlash(c),
	})
}

func (s *Server) handleChangePassword(c *gin.Context) {
	user := currentUser(c)
	current := c.PostForm("current_password")
	next := c.PostForm("new_password")
	confirm := c.PostForm("confirm_password")

	if next != confirm {
		c.HTML(http.StatusBadRequest, "change_password.html", gin.H{
			"User":  user,
			"Error": "New passwords do not match",
		})
		return
	}

	if err := s.auth.ChangePassword(c.Request.Context(), user.ID, current, next); err != nil {
		c.HTML(http.StatusBadRequest, "change_password.html", gin.H{
			"User":  user,
			"Error": err.Error(),
		})
		return
	}

	// Changing the password revokes every session, including this one.
	s.clearAuthCookie(c)
	setFlash(c, "Password changed. Please log in again.")
	c.Redirect(http.StatusFound, "/login")
}

func (s *Server) showDeleteAccount(c *gin.Context) {
	user := currentUser(c)

	sessionCount, _ := s.sessions.CountSessions(c.Request.Context(), user.ID)
	comparisonCount, _ := s.comparisons.CountComparisons(c.Request.Context(), user.ID)

	c.HTML(http.StatusOK, "delete_account.html", gin.H{
		"User":            user,
		"SessionCount":    sessionCount,
		"ComparisonCount": comparisonCount,
		"Flash":           takeFlash(c),
	})
}

func (s *Server) handleDeleteAccount(c *gin.Context) {
	user := currentUser(c)
	password := c.PostForm("password")
	confirm := c.PostForm("confirm")

	if confirm != "DELETE" {
		c.HTML(http.StatusBadRequest, "delete_account.html", gin.H{
			"User":  user,
			"Error": "Type DELETE to confirm",
		})
		return
	}

	if err := s.auth.DeleteAccount(c.Request.Context(), user.ID, password); err != nil {
		c.HTML(http.StatusBadRequest, "delete_account.html", gin.H{
			"User":  user,
			"Error": err.Error(),
		})
		return
	}

	s.clearAuthCookie(c)
	setFlash(c, "Your account has been deleted.")
	c.Redirect(http.StatusFound, "/login")
}
