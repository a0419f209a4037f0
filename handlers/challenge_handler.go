package handlers

import (
	"net/http"

	"challengeapi/services"

	"github.com/gin-gonic/gin"
)

type ChallengeHandler struct {
	challengeService *services.ChallengeService
}

func NewChallengeHandler(challengeService *services.ChallengeService) *ChallengeHandler {
	return &ChallengeHandler{
		challengeService: challengeService,
	}
}

// GetChallenges is public: it backs the catalog page, so only active
// challenges are listed. Admins get the full list.
func (h *ChallengeHandler) GetChallenges(c *gin.Context) {
	role, _ := c.Get("role")
	activeOnly := role != "admin"

	challenges, err := h.challengeService.GetChallenges(activeOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, challenges)
}

func (h *ChallengeHandler) CreateChallenge(c *gin.Context) {
	var req services.CreateChallengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	challenge, err := h.challengeService.CreateChallenge(&req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, challenge)
}

func (h *ChallengeHandler) UpdateChallenge(c *gin.Context) {
	var req services.UpdateChallengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	challenge, err := h.challengeService.UpdateChallenge(c.Param("id"), &req)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Challenge not found"})
		return
	}

	c.JSON(http.StatusOK, challenge)
}

func (h *ChallengeHandler) SetChallengeActive(c *gin.Context) {
	var req services.SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	challenge, err := h.challengeService.SetChallengeActive(c.Param("id"), *req.Active)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Challenge not found"})
		return
	}

	c.JSON(http.StatusOK, challenge)
}

func (h *ChallengeHandler) DeleteChallenge(c *gin.Context) {
	if err := h.challengeService.DeleteChallenge(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Challenge not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Challenge deleted successfully"})
}
