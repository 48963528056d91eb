package api

import (
	"net/http"

	"gemilang-store/internal/auth"

	"github.com/gin-gonic/gin"
)

type credentialsRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// signIn handles customer sign-in
func (h *Handler) signIn(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	session, err := h.authService.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	h.setSessionCookie(c, session)
	c.JSON(http.StatusOK, gin.H{
		"token":      session.Token,
		"user_id":    session.UserID,
		"expires_at": session.ExpiresAt,
	})
}

// signUp handles customer registration
func (h *Handler) signUp(c *gin.Context) {
	var req auth.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	session, err := h.authService.SignUp(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	h.setSessionCookie(c, session)
	c.JSON(http.StatusCreated, gin.H{
		"token":      session.Token,
		"user_id":    session.UserID,
		"expires_at": session.ExpiresAt,
	})
}

// signOut clears the backend session; failures surface as a short error
// rather than a crash
func (h *Handler) signOut(c *gin.Context) {
	token := h.sessionToken(c)
	if token == "" {
		c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
		return
	}

	if err := h.authService.SignOut(c.Request.Context(), token); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to log out. Please try again.",
		})
		return
	}

	h.clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// refreshSession replaces the current session with a fresh token
func (h *Handler) refreshSession(c *gin.Context) {
	session, err := h.sessions.Refresh(c.Request.Context(), h.sessionToken(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if session == nil {
		c.Redirect(http.StatusFound, "/")
		return
	}

	h.setSessionCookie(c, session)
	c.JSON(http.StatusOK, gin.H{
		"token":      session.Token,
		"expires_at": session.ExpiresAt,
	})
}

// adminLogin handles the two-step admin login. On success the client
// navigates to the console's default sub-route.
func (h *Handler) adminLogin(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	session, err := h.authService.AttemptAdminLogin(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	h.setSessionCookie(c, session)
	c.JSON(http.StatusOK, gin.H{
		"token":    session.Token,
		"redirect": adminHomePath,
	})
}

func (h *Handler) setSessionCookie(c *gin.Context, session *auth.Session) {
	c.SetCookie(h.cookieName, session.Token, h.cookieMaxAge, "/", "", false, true)
}

func (h *Handler) clearSessionCookie(c *gin.Context) {
	c.SetCookie(h.cookieName, "", -1, "/", "", false, true)
}
