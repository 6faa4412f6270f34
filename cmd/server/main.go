package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"cookhub/internal/config"
	"cookhub/internal/handlers"
	"cookhub/internal/middleware"
	"cookhub/internal/realtime"
	"cookhub/internal/repository/mongodb"
	"cookhub/internal/services"
	"cookhub/internal/token"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading env vars from system")
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	cfg := config.Load()
	if cfg.JWTSecret == "" {
		logger.Fatal("JWT_SECRET must be set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := mongodb.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		logger.Fatal("connect mongodb", zap.Error(err))
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.Close(closeCtx); err != nil {
			logger.Warn("disconnect mongodb", zap.Error(err))
		}
	}()

	users := mongodb.NewUserRepo(db)
	recipes := mongodb.NewRecipeRepo(db)
	posts := mongodb.NewPostRepo(db)
	notifications := mongodb.NewNotificationRepo(db)

	tokens := token.NewManager([]byte(cfg.JWTSecret), cfg.TokenTTL)

	media, err := services.NewMediaStore(cfg.UploadDir)
	if err != nil {
		logger.Fatal("prepare upload dir", zap.Error(err))
	}

	hub := realtime.NewHub(logger)
	go hub.Run()

	userHandler := handlers.NewUserHandler(users, tokens, logger)
	recipeHandler := handlers.NewRecipeHandler(recipes, users, notifications, hub, media, logger)
	postHandler := handlers.NewPostHandler(posts, users, notifications, hub, media, logger)
	notificationHandler := handlers.NewNotificationHandler(notifications, users, hub, logger)

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.AllowedOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: cfg.AllowedOrigin != "*",
		MaxAge:           12 * time.Hour,
	}))

	// Uploaded media is served straight from disk.
	r.Static("/uploads", cfg.UploadDir)

	// Public Routes
	r.POST("/api/users/register", userHandler.Register)
	r.POST("/api/users/login", userHandler.Login)
	r.GET("/api/recipes", recipeHandler.List)
	r.GET("/api/posts", postHandler.List)
	r.GET("/ws", hub.ServeWS(tokens))

	// Protected Routes
	authorized := r.Group("/api")
	authorized.Use(middleware.AuthRequired(tokens))
	{
		authorized.GET("/users/me", userHandler.Me)
		authorized.PUT("/users/me", userHandler.UpdateMe)

		authorized.GET("/recipes/user", recipeHandler.Mine)
		authorized.POST("/recipes", recipeHandler.Create)
		authorized.DELETE("/recipes/:id", recipeHandler.Delete)
		authorized.POST("/recipes/:id/like", recipeHandler.Like)
		authorized.POST("/recipes/:id/reshare", recipeHandler.Reshare)

		authorized.POST("/posts", postHandler.Create)
		authorized.POST("/posts/:id/upvote", postHandler.Upvote)
		authorized.POST("/posts/:id/downvote", postHandler.Downvote)
		authorized.POST("/posts/:id/comment", postHandler.Comment)
		authorized.DELETE("/posts/:id", postHandler.Delete)
		authorized.DELETE("/posts/:id/comment/:commentId", postHandler.DeleteComment)

		authorized.GET("/notifications", notificationHandler.List)
		authorized.POST("/notifications", notificationHandler.Create)
	}

	logger.Info("server starting", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
