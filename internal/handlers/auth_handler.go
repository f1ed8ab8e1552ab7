package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/univflow/admission-api/internal/utils"
)

type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required"` // username or mobile
	Credential string `json:"credential" binding:"required"` // password (admin) or agent id
}

// Login authenticates either role: admins with username-or-mobile plus
// password, agents with mobile-or-username plus agent id.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	user, ok := h.Tracker.Authenticate(req.Identifier, req.Credential)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := utils.GenerateJWT(user.ID, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate token"})
		return
	}

	h.Tracker.SetCurrentUser(user)
	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// Logout clears the session user; the mirror removes its cache key.
func (h *Handler) Logout(c *gin.Context) {
	h.Tracker.Logout()
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// GetCurrentUser returns the authenticated caller's profile.
func (h *Handler) GetCurrentUser(c *gin.Context) {
	user, ok := h.actor(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, user)
}
