package routes

import (
	"log"
	"net/http"

	"challengeapi/handlers"
	"challengeapi/middleware"
	"challengeapi/services"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

func SetupRoutes(
	router *gin.Engine,
	authHandler *handlers.AuthHandler,
	challengeHandler *handlers.ChallengeHandler,
	questionHandler *handlers.QuestionHandler,
	assignmentHandler *handlers.AssignmentHandler,
	responseHandler *handlers.ResponseHandler,
	hub *services.Hub,
	jwtSecret string,
) {
	// API routes
	api := router.Group("/api")
	{
		// Public routes
		api.POST("/signup", authHandler.Signup)
		api.POST("/login", authHandler.Login)
		api.GET("/challenge", middleware.OptionalAuth(jwtSecret), challengeHandler.GetChallenges)

		// Protected routes
		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware(jwtSecret))
		{
			protected.GET("/profile", authHandler.GetProfile)

			// User challenge routes
			protected.GET("/user-challenges", responseHandler.GetUserChallenges)
			protected.POST("/user-challenges", responseHandler.StartChallenge)
			protected.GET("/user-responses/:userChallengeId", responseHandler.GetResponses)
			protected.POST("/user-responses/:userChallengeId", responseHandler.SubmitResponse)

			// Admin routes
			admin := protected.Group("/")
			admin.Use(middleware.AdminOnly())
			{
				questions := admin.Group("/questions")
				{
					questions.GET("", questionHandler.GetQuestions)
					questions.POST("", questionHandler.CreateQuestion)
					questions.PUT("/:id", questionHandler.UpdateQuestion)
					questions.DELETE("/:id", questionHandler.DeleteQuestion)
				}

				admin.POST("/challenge", challengeHandler.CreateChallenge)
				admin.PUT("/challenge/:id", challengeHandler.UpdateChallenge)
				admin.PATCH("/challenge/:id", challengeHandler.SetChallengeActive)
				admin.DELETE("/challenge/:id", challengeHandler.DeleteChallenge)

				assignments := admin.Group("/challenge-questions")
				{
					assignments.GET("/:challengeId", assignmentHandler.GetChallengeQuestions)
					assignments.GET("/:challengeId/summary", assignmentHandler.GetSummary)
					assignments.GET("/:challengeId/available-days", assignmentHandler.GetAvailableDays)
					assignments.POST("", assignmentHandler.AssignQuestions)
					assignments.PUT("/:challengeId/:questionId", assignmentHandler.UpdateAssignment)
					assignments.DELETE("/:challengeId/:questionId", assignmentHandler.DeleteAssignment)
				}
			}
		}
	}

	// WebSocket endpoint for the admin summary refresh feed. Browsers
	// cannot set headers on websocket requests, so the token rides in a
	// query parameter.
	router.GET("/ws/challenges/:challengeId", func(c *gin.Context) {
		challengeID := c.Param("challengeId")
		tokenString := c.Query("token")

		userID, role, err := parseToken(tokenString, jwtSecret)
		if err != nil {
			log.Printf("WebSocket auth failed for challenge %s: %v", challengeID, err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		if role != "admin" {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("WebSocket upgrade failed for challenge %s: %v", challengeID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upgrade connection"})
			return
		}

		hub.RegisterClient(conn, challengeID, userID)
	})

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

func parseToken(tokenString, jwtSecret string) (userID, role string, err error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return "", "", jwt.ErrTokenInvalidClaims
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", jwt.ErrTokenInvalidClaims
	}

	userID, _ = claims["user_id"].(string)
	role, _ = claims["role"].(string)
	return userID, role, nil
}
