package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/univflow/admission-api/internal/models"
	"github.com/univflow/admission-api/internal/stage"
	"github.com/univflow/admission-api/internal/workflow"
)

// ListStudents returns the records the caller may see: all of them for the
// admin, only owned ones for an agent.
func (h *Handler) ListStudents(c *gin.Context) {
	user, ok := h.actor(c)
	if !ok {
		return
	}

	if user.IsAdmin() {
		c.JSON(http.StatusOK, h.Tracker.Students())
		return
	}
	students := h.Tracker.StudentsByAgent(user.AgentID)
	if students == nil {
		students = make([]models.Student, 0)
	}
	c.JSON(http.StatusOK, students)
}

// GetStudent returns one record together with its derived stage.
func (h *Handler) GetStudent(c *gin.Context) {
	user, ok := h.actor(c)
	if !ok {
		return
	}

	student, found := h.Tracker.Student(c.Param("id"))
	if !found {
		writeError(c, workflow.ErrNotFound)
		return
	}
	if !user.IsAdmin() && student.AgentID != user.AgentID {
		writeError(c, workflow.ErrPermission)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"student":      student,
		"derivedStage": int(stage.Resolve(student)),
	})
}

// ViewStudent opens a record in the workflow: the cursor jumps to the stage
// derived from the record's field state.
func (h *Handler) ViewStudent(c *gin.Context) {
	user, ok := h.actor(c)
	if !ok {
		return
	}

	id := c.Param("id")
	student, found := h.Tracker.Student(id)
	if !found {
		writeError(c, workflow.ErrNotFound)
		return
	}
	if !user.IsAdmin() && student.AgentID != user.AgentID {
		writeError(c, workflow.ErrPermission)
		return
	}

	derived, err := h.Tracker.ViewStudent(id)
	if err != nil {
		writeError(c, err)
		return
	}
	cursor, current := h.Tracker.Cursor()
	c.JSON(http.StatusOK, gin.H{
		"derivedStage":     int(derived),
		"cursor":           cursor,
		"currentStudentId": current,
	})
}

// DeleteStudent removes a record outright. Admin only.
func (h *Handler) DeleteStudent(c *gin.Context) {
	user, ok := h.actor(c)
	if !ok {
		return
	}
	if !user.IsAdmin() {
		writeError(c, workflow.ErrPermission)
		return
	}

	if err := h.Tracker.RemoveStudent(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Student deleted"})
}
