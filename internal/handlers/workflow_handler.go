package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/univflow/admission-api/internal/models"
	"github.com/univflow/admission-api/internal/stage"
)

// Fixed fee amounts of the admission process.
const (
	applicationFeeAmount  = 250
	registrationFeeAmount = 10000
)

type EnquiryRequest struct {
	Name    string `json:"name" binding:"required"`
	Mobile  string `json:"mobile" binding:"required"`
	Email   string `json:"email"`
	Course  string `json:"course"`
	Source  string `json:"source"`
	Remarks string `json:"remarks"`
}

// CreateEnquiry opens a new admission case for the acting agent and, on
// success, moves the cursor to the application-fee stage.
func (h *Handler) CreateEnquiry(c *gin.Context) {
	user, ok := h.actor(c)
	if !ok {
		return
	}

	var req EnquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.Tracker.NewEnquiry(c.Request.Context(), user, models.Student{
		Name:    req.Name,
		Mobile:  req.Mobile,
		Email:   req.Email,
		Course:  req.Course,
		Source:  req.Source,
		Remarks: req.Remarks,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

type ApplicationFeeRequest struct {
	Date          string `json:"date"`
	ApplicationNo string `json:"applicationNo"`
}

// PayApplicationFee records the application fee and advances to the
// registration-fee stage.
func (h *Handler) PayApplicationFee(c *gin.Context) {
	if _, ok := h.actor(c); !ok {
		return
	}

	var req ApplicationFeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if req.Date == "" || req.ApplicationNo == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Payment date and application number are required"})
		return
	}

	fee := float64(applicationFeeAmount)
	patch := models.StudentPatch{
		ApplicationFee:  &fee,
		ApplicationDate: &req.Date,
		ApplicationNo:   &req.ApplicationNo,
	}
	err := h.Tracker.Advance(c.Request.Context(), c.Param("id"), patch,
		stage.RegistrationFee, stage.LabelApplicationDone)
	if err != nil {
		writeError(c, err)
		return
	}
	h.respondAdvanced(c)
}

type RegistrationFeeRequest struct {
	Date           string `json:"date"`
	RegistrationNo string `json:"registrationNo"`
}

// PayRegistrationFee records the registration fee and advances to the
// university-visit stage.
func (h *Handler) PayRegistrationFee(c *gin.Context) {
	if _, ok := h.actor(c); !ok {
		return
	}

	var req RegistrationFeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if req.Date == "" || req.RegistrationNo == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Payment date and registration number are required"})
		return
	}

	fee := float64(registrationFeeAmount)
	patch := models.StudentPatch{
		RegistrationFee:  &fee,
		RegistrationDate: &req.Date,
		RegistrationNo:   &req.RegistrationNo,
	}
	err := h.Tracker.Advance(c.Request.Context(), c.Param("id"), patch,
		stage.UniversityVisit, stage.LabelVisitPending)
	if err != nil {
		writeError(c, err)
		return
	}
	h.respondAdvanced(c)
}

// RecordVisit stores the campus visit details and advances to the final
// admission stage.
func (h *Handler) RecordVisit(c *gin.Context) {
	if _, ok := h.actor(c); !ok {
		return
	}

	var visit models.VisitDetails
	if err := c.ShouldBindJSON(&visit); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if visit.VisitStatus == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Visit status is required"})
		return
	}

	patch := models.StudentPatch{VisitDetails: &visit}
	err := h.Tracker.Advance(c.Request.Context(), c.Param("id"), patch,
		stage.Admission, stage.LabelSeatPending)
	if err != nil {
		writeError(c, err)
		return
	}
	h.respondAdvanced(c)
}

// CompleteAdmission records the seat confirmation and tuition details and
// closes the case.
func (h *Handler) CompleteAdmission(c *gin.Context) {
	if _, ok := h.actor(c); !ok {
		return
	}

	var details models.AdmissionDetails
	if err := c.ShouldBindJSON(&details); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	err := h.Tracker.CompleteAdmission(c.Request.Context(), c.Param("id"), details)
	if err != nil {
		writeError(c, err)
		return
	}
	h.respondAdvanced(c)
}

// GetWorkflow reports the cursor, the record being walked and whether the
// startup sync has settled.
func (h *Handler) GetWorkflow(c *gin.Context) {
	cursor, current := h.Tracker.Cursor()
	c.JSON(http.StatusOK, gin.H{
		"cursor":           cursor,
		"currentStudentId": current,
		"ready":            h.Tracker.Ready(),
	})
}

// ExitToDashboard is the explicit exit action from any stage.
func (h *Handler) ExitToDashboard(c *gin.Context) {
	if _, ok := h.actor(c); !ok {
		return
	}
	h.Tracker.ExitToDashboard()
	h.respondAdvanced(c)
}

// StartEnquiry resets the walk state and opens stage 1 for a fresh case.
func (h *Handler) StartEnquiry(c *gin.Context) {
	if _, ok := h.actor(c); !ok {
		return
	}
	h.Tracker.StartNewEnquiry()
	h.respondAdvanced(c)
}

func (h *Handler) respondAdvanced(c *gin.Context) {
	cursor, current := h.Tracker.Cursor()
	c.JSON(http.StatusOK, gin.H{
		"cursor":           cursor,
		"currentStudentId": current,
	})
}
