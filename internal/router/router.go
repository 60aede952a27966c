package router

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	"github.com/openhaven/haven-backend/internal/handlers"
	"github.com/openhaven/haven-backend/internal/middleware"
	"github.com/openhaven/haven-backend/internal/models"
	"github.com/openhaven/haven-backend/internal/repositories"
	"github.com/openhaven/haven-backend/pkg/config"
)

// SetupMiddleware configures global Echo middleware and the error shape.
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Logger())
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	e.HTTPErrorHandler = HTTPErrorHandler
	log.Println("Global middleware configured.")
}

// HTTPErrorHandler renders every failure as {"error": string}. Messages pass
// through verbatim; nothing is swallowed or rewritten.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := err.Error()

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		code = httpErr.Code
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		} else {
			message = fmt.Sprintf("%v", httpErr.Message)
		}
	}

	if err := c.JSON(code, map[string]string{"error": message}); err != nil {
		c.Logger().Error(err)
	}
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, mgClient *mongo.Client, firebaseAuthClient *auth.Client, cfg *config.Config) {
	err := pgdb.AutoMigrate(
		&models.Post{},
		&models.Comment{},
		&models.Upvote{},
		&models.Reaction{},
		&models.UserRole{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	postRepo := repositories.NewPostgresPostRepository(pgdb)
	commentRepo := repositories.NewPostgresCommentRepository(pgdb)
	upvoteRepo := repositories.NewPostgresUpvoteRepository(pgdb)
	reactionRepo := repositories.NewPostgresReactionRepository(pgdb)
	roleRepo := repositories.NewPostgresRoleRepository(pgdb)
	notificationRepo := repositories.NewPostgresNotificationRepository(pgdb)
	reportRepo := repositories.NewMongoReportRepository(mgClient.Database("haven"))

	// Public routes need no identity; protected routes resolve the caller
	// from the bearer token or the session cookie.
	public := e.Group("")
	protected := e.Group("", middleware.RequireIdentity(firebaseAuthClient, cfg.SessionJWTSecret))

	authHandler := handlers.NewAuthHandler(firebaseAuthClient, cfg.SessionJWTSecret)
	authHandler.RegisterAuthRoutes(public)
	log.Println("Auth routes configured.")

	postHandler := handlers.NewPostHandler(postRepo)
	postHandler.RegisterPostRoutes(public, protected)
	log.Println("Post routes configured.")

	commentHandler := handlers.NewCommentHandler(commentRepo, postRepo, upvoteRepo)
	commentHandler.RegisterCommentRoutes(public, protected)
	log.Println("Comment routes configured.")

	reactionHandler := handlers.NewReactionHandler(reactionRepo, postRepo, commentRepo)
	reactionHandler.RegisterReactionRoutes(public, protected)
	log.Println("Reaction routes configured.")

	reportHandler := handlers.NewReportHandler(reportRepo, roleRepo, notificationRepo)
	reportHandler.RegisterReportRoutes(public)
	log.Println("Report routes configured.")

	adminHandler := handlers.NewAdminHandler(postRepo, reportRepo, roleRepo, notificationRepo)
	adminHandler.RegisterAdminRoutes(protected)
	log.Println("Admin routes configured.")

	userHandler := handlers.NewUserHandler(roleRepo)
	userHandler.RegisterUserRoutes(protected)
	log.Println("User routes configured.")

	log.Println("All routes configured.")
}
