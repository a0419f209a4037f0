package handlers

import (
	"errors"
	"net/http"

	"challengeapi/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AssignmentHandler struct {
	assignmentService *services.AssignmentService
	summaryService    *services.SummaryService
	hub               *services.Hub
}

func NewAssignmentHandler(assignmentService *services.AssignmentService, summaryService *services.SummaryService, hub *services.Hub) *AssignmentHandler {
	return &AssignmentHandler{
		assignmentService: assignmentService,
		summaryService:    summaryService,
		hub:               hub,
	}
}

func (h *AssignmentHandler) GetChallengeQuestions(c *gin.Context) {
	challenge, err := h.assignmentService.GetChallengeWithQuestions(c.Param("challengeId"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Challenge not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"challenge": challenge})
}

func (h *AssignmentHandler) GetSummary(c *gin.Context) {
	summary, err := h.summaryService.GetSummary(c.Request.Context(), c.Param("challengeId"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Challenge not found"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *AssignmentHandler) GetAvailableDays(c *gin.Context) {
	category := c.Query("category")
	if category == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "category query parameter required"})
		return
	}

	days, err := h.assignmentService.GetAvailableDays(c.Param("challengeId"), category)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"days": days})
}

// AssignQuestions commits a batch of assignments all-or-nothing. The
// first failing item aborts the batch with its validation code.
func (h *AssignmentHandler) AssignQuestions(c *gin.Context) {
	var req services.AssignQuestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.assignmentService.AssignQuestions(&req)
	if err != nil {
		respondAssignmentError(c, err)
		return
	}

	h.afterChange(c, req.ChallengeID)
	c.JSON(http.StatusCreated, gin.H{"questions": created})
}

func (h *AssignmentHandler) UpdateAssignment(c *gin.Context) {
	var req services.UpdateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	challengeID := c.Param("challengeId")
	assignment, err := h.assignmentService.UpdateAssignment(challengeID, c.Param("questionId"), &req)
	if err != nil {
		respondAssignmentError(c, err)
		return
	}

	h.afterChange(c, challengeID)
	c.JSON(http.StatusOK, assignment)
}

func (h *AssignmentHandler) DeleteAssignment(c *gin.Context) {
	challengeID := c.Param("challengeId")
	if err := h.assignmentService.DeleteAssignment(challengeID, c.Param("questionId")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Assignment not found"})
		return
	}

	h.afterChange(c, challengeID)
	c.JSON(http.StatusOK, gin.H{"message": "Question unassigned successfully"})
}

// afterChange drops the cached summary and tells watching clients to
// re-fetch.
func (h *AssignmentHandler) afterChange(c *gin.Context, challengeID string) {
	h.summaryService.Invalidate(c.Request.Context(), challengeID)
	h.hub.NotifyChallenge(challengeID)
}

func respondAssignmentError(c *gin.Context, err error) {
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		status := http.StatusBadRequest
		if verr.Code == services.CodeDuplicateSlot || verr.Code == services.CodeQuotaExceeded {
			status = http.StatusConflict
		}
		c.JSON(status, gin.H{"error": err.Error(), "code": verr.Code})
		return
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
