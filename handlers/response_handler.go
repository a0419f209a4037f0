package handlers

import (
	"errors"
	"net/http"

	"challengeapi/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ResponseHandler struct {
	responseService *services.ResponseService
}

func NewResponseHandler(responseService *services.ResponseService) *ResponseHandler {
	return &ResponseHandler{
		responseService: responseService,
	}
}

func (h *ResponseHandler) GetUserChallenges(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	userChallenges, err := h.responseService.GetUserChallenges(userID.(string))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, userChallenges)
}

func (h *ResponseHandler) StartChallenge(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req services.StartChallengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userChallenge, err := h.responseService.StartChallenge(userID.(string), &req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Challenge not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, userChallenge)
}

func (h *ResponseHandler) GetResponses(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	responses, err := h.responseService.GetResponses(userID.(string), c.Param("userChallengeId"))
	if err != nil {
		respondResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"responses": responses})
}

func (h *ResponseHandler) SubmitResponse(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req services.SubmitResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.responseService.SubmitResponse(userID.(string), c.Param("userChallengeId"), &req)
	if err != nil {
		respondResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

func respondResponseError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotYourChallenge):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, services.ErrQuestionNotAssigned):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}
