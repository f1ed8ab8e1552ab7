package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetChatMessages returns the retained chat log.
func (h *Handler) GetChatMessages(c *gin.Context) {
	if _, ok := h.actor(c); !ok {
		return
	}
	c.JSON(http.StatusOK, h.Chat.Messages())
}

// PostChatMessage appends one message to the team chat.
func (h *Handler) PostChatMessage(c *gin.Context) {
	user, ok := h.actor(c)
	if !ok {
		return
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message text cannot be empty"})
		return
	}

	msg := h.Chat.Append(c.Request.Context(), user, req.Text)
	c.JSON(http.StatusCreated, msg)
}

// StreamChatMessages pushes appended messages as server-sent events until
// the client disconnects.
func (h *Handler) StreamChatMessages(c *gin.Context) {
	if _, ok := h.actor(c); !ok {
		return
	}

	ch, cancel := h.Chat.Subscribe()
	defer cancel()

	c.Stream(func(w io.Writer) bool {
		select {
		case msg, open := <-ch:
			if !open {
				return false
			}
			c.SSEvent("message", msg)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
