package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/univflow/admission-api/internal/models"
	"github.com/univflow/admission-api/internal/workflow"
)

type AgentRequest struct {
	Name     string `json:"name" binding:"required"`
	AgentID  string `json:"agentId" binding:"required"`
	Mobile   string `json:"mobile" binding:"required"`
	Username string `json:"username"`
}

// ListAgents returns the agent subset of the users collection. Admin only.
func (h *Handler) ListAgents(c *gin.Context) {
	user, ok := h.actor(c)
	if !ok {
		return
	}
	if !user.IsAdmin() {
		writeError(c, workflow.ErrPermission)
		return
	}

	agents := make([]models.User, 0)
	for _, u := range h.Tracker.Users() {
		if u.IsAgent() {
			agents = append(agents, u)
		}
	}
	c.JSON(http.StatusOK, agents)
}

// AddAgent creates a field agent. The uniqueness guard rejects a candidate
// sharing an agent id or a mobile number with any existing user.
func (h *Handler) AddAgent(c *gin.Context) {
	user, ok := h.actor(c)
	if !ok {
		return
	}
	if !user.IsAdmin() {
		writeError(c, workflow.ErrPermission)
		return
	}

	var req AgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	agent, accepted := h.Tracker.AddAgent(c.Request.Context(), models.User{
		Name:     req.Name,
		AgentID:  req.AgentID,
		Mobile:   req.Mobile,
		Username: req.Username,
	})
	if !accepted {
		writeError(c, workflow.ErrDuplicate)
		return
	}
	c.JSON(http.StatusCreated, agent)
}

// UpdateAgent lets the admin, or the agent themselves, change profile
// fields. Role and id are immutable.
func (h *Handler) UpdateAgent(c *gin.Context) {
	user, ok := h.actor(c)
	if !ok {
		return
	}
	id := c.Param("id")
	if !user.IsAdmin() && user.ID != id {
		writeError(c, workflow.ErrPermission)
		return
	}

	var req AgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated := models.User{
		ID:       id,
		Name:     req.Name,
		AgentID:  req.AgentID,
		Mobile:   req.Mobile,
		Username: req.Username,
	}
	if !h.Tracker.UpdateUser(c.Request.Context(), updated) {
		writeError(c, workflow.ErrNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Agent updated"})
}

// DeleteAgent removes an agent. Admin only; their student records keep the
// agent id, ownership is permanent.
func (h *Handler) DeleteAgent(c *gin.Context) {
	user, ok := h.actor(c)
	if !ok {
		return
	}
	if !user.IsAdmin() {
		writeError(c, workflow.ErrPermission)
		return
	}

	if !h.Tracker.RemoveAgent(c.Request.Context(), c.Param("id")) {
		writeError(c, workflow.ErrNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Agent deleted"})
}
