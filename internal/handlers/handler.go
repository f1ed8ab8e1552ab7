package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/univflow/admission-api/internal/chat"
	"github.com/univflow/admission-api/internal/models"
	"github.com/univflow/admission-api/internal/workflow"
)

type Handler struct {
	Tracker *workflow.Tracker
	Chat    *chat.Log
}

func NewHandler(tracker *workflow.Tracker, chatLog *chat.Log) *Handler {
	return &Handler{
		Tracker: tracker,
		Chat:    chatLog,
	}
}

// actor resolves the authenticated caller to a tracked user. A token whose
// user no longer exists (dropped by a reconcile, for example) is rejected.
func (h *Handler) actor(c *gin.Context) (models.User, bool) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return models.User{}, false
	}
	user, ok := h.Tracker.FindUser(userID.(string))
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unknown user"})
		return models.User{}, false
	}
	return user, true
}

// writeError maps the workflow failure taxonomy onto HTTP statuses.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, workflow.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, workflow.ErrPermission):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, workflow.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, workflow.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, workflow.ErrRemote):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
