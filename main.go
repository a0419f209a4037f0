package main

import (
	"log"

	"challengeapi/config"
	"challengeapi/handlers"
	"challengeapi/middleware"
	"challengeapi/models"
	"challengeapi/routes"
	"challengeapi/services"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database models
	err = db.AutoMigrate(
		&models.User{},
		&models.Challenge{},
		&models.Question{},
		&models.Option{},
		&models.ChallengeQuestion{},
		&models.UserChallenge{},
		&models.UserResponse{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize Redis
	redisClient := config.InitRedis(cfg)

	// Initialize services
	authService := services.NewAuthService(db, cfg.JWTSecret)
	challengeService := services.NewChallengeService(db)
	questionService := services.NewQuestionService(db)
	assignmentService := services.NewAssignmentService(db)
	summaryService := services.NewSummaryService(assignmentService, redisClient)
	responseService := services.NewResponseService(db)

	// Initialize WebSocket hub for summary refresh signals
	hub := services.NewHub()
	go hub.Run()

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	challengeHandler := handlers.NewChallengeHandler(challengeService)
	questionHandler := handlers.NewQuestionHandler(questionService)
	assignmentHandler := handlers.NewAssignmentHandler(assignmentService, summaryService, hub)
	responseHandler := handlers.NewResponseHandler(responseService)

	// Setup Gin router
	router := gin.Default()

	// Add CORS middleware
	router.Use(middleware.CORS())

	// Setup routes
	routes.SetupRoutes(router, authHandler, challengeHandler, questionHandler, assignmentHandler, responseHandler, hub, cfg.JWTSecret)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
