package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wikiarea-backend/internal/comment"
	"wikiarea-backend/internal/config"
	"wikiarea-backend/internal/db"
	"wikiarea-backend/internal/domain"
	"wikiarea-backend/internal/middleware"
	"wikiarea-backend/internal/user"
	"wikiarea-backend/internal/wikifolder"
	"wikiarea-backend/internal/wikipage"
	"wikiarea-backend/internal/worker"
	"wikiarea-backend/redis"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load configuration
	config.LoadConfig()

	// Structured logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if config.AppConfig.Environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Connect to database
	db.ConnectDb()
	defer db.CloseDb()

	// Create the collection indexes up front so slug and path uniqueness
	// hold from the first write.
	if err := db.EnsureIndexes(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("failed to create mongodb indexes")
	}

	// Initialize Redis
	redis.InitRedis()
	cache := redis.NewCache(redis.RedisClient)

	// Audit event workers
	auditPool := worker.NewAuditPool(config.AppConfig.AuditWorkers)
	defer auditPool.Shutdown()

	// Initialize repositories
	userRepo := user.NewRepository(db.Database, db.UsersCollection)
	pageRepo := wikipage.NewRepository(db.Database, db.WikiPagesCollection)
	folderRepo := wikifolder.NewRepository(db.Database, db.WikiFoldersCollection)
	commentRepo := comment.NewRepository(db.Database, db.CommentsCollection)

	// Initialize services
	userService := user.NewService(userRepo)
	pageService := wikipage.NewService(pageRepo, cache, auditPool)
	folderService := wikifolder.NewService(folderRepo, auditPool)
	commentService := comment.NewService(commentRepo, pageRepo, auditPool)

	// Initialize handlers
	userHandler := user.NewHandler(userService)
	pageHandler := wikipage.NewHandler(pageService)
	folderHandler := wikifolder.NewHandler(folderService)
	commentHandler := comment.NewHandler(commentService)

	authMiddleware := &middleware.Auth{UserService: userService}

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.ErrorHandler())

	// cors setting
	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
	}

	if config.AppConfig.Environment == "development" {
		// Allow all origins in development
		corsConfig.AllowAllOrigins = true
	} else {
		// Restrict origins in production
		corsConfig.AllowOrigins = []string{config.AppConfig.FrontendAddress}
	}
	router.Use(cors.New(corsConfig))

	// Auth routes
	router.POST("/auth/signup", userHandler.Signup)
	router.POST("/auth/signin", userHandler.Signin)
	router.GET("/auth/availability", userHandler.CheckAvailability)

	authed := router.Group("/", authMiddleware.AuthMiddleware())

	// User routes
	authed.GET("/profile", userHandler.GetProfile)
	authed.GET("/users", userHandler.Search)
	authed.GET("/users/:id", userHandler.GetByID)
	authed.GET("/users/:id/pages", pageHandler.ByAuthor)
	authed.GET("/users/:id/comments", commentHandler.ByAuthor)

	// Admin routes
	admin := authed.Group("/admin", middleware.RequireRole(domain.RoleAdministrator))
	admin.GET("/users", userHandler.ListAll)
	admin.GET("/users/role/:role", userHandler.ByRole)
	admin.POST("/users", userHandler.Create)
	admin.PUT("/users/:id/role", userHandler.UpdateRole)
	admin.PUT("/users/:id/status", userHandler.UpdateStatus)
	admin.DELETE("/users/:id", userHandler.Delete)
	admin.GET("/roles-permissions", userHandler.RolesPermissions)

	// Wiki page routes. Writes require at least Writer, review verbs at
	// least Reviewer; page-level access checks live in the service.
	authed.GET("/wikipages", pageHandler.ByFolder)
	authed.GET("/wikipages/search", pageHandler.Search)
	authed.GET("/wikipages/recent", pageHandler.Recent)
	authed.GET("/wikipages/most-viewed", pageHandler.MostViewed)
	authed.GET("/wikipages/tag/:tag", pageHandler.ByTag)
	authed.GET("/wikipages/status/:status", pageHandler.ByStatus)
	authed.GET("/wikipages/slug/:slug", pageHandler.GetBySlug)
	authed.GET("/wikipages/:id", pageHandler.GetByID)
	authed.POST("/wikipages/:id/like", pageHandler.Like)
	authed.DELETE("/wikipages/:id/like", pageHandler.Unlike)

	writers := authed.Group("/", middleware.RequireRole(domain.RoleWriter))
	writers.POST("/wikipages", pageHandler.Create)
	writers.PUT("/wikipages/:id", pageHandler.Update)
	writers.DELETE("/wikipages/:id", pageHandler.Delete)
	writers.POST("/wikipages/:id/publish", pageHandler.Publish)
	writers.POST("/wikipages/:id/submit-for-review", pageHandler.SubmitForReview)
	writers.POST("/wikipages/:id/archive", pageHandler.Archive)
	writers.POST("/wikipages/:id/move", pageHandler.Move)

	reviewers := authed.Group("/", middleware.RequireRole(domain.RoleReviewer))
	reviewers.GET("/wikipages/for-review", pageHandler.ForReview)
	reviewers.POST("/wikipages/:id/approve", pageHandler.Approve)
	reviewers.POST("/wikipages/:id/reject", pageHandler.Reject)

	// Folder routes
	authed.GET("/wikifolders", folderHandler.Roots)
	authed.GET("/wikifolders/by-path", folderHandler.GetByPath)
	authed.GET("/wikifolders/:id", folderHandler.GetByID)
	authed.GET("/wikifolders/:id/children", folderHandler.Children)
	authed.GET("/wikifolders/:id/descendants", folderHandler.Descendants)
	authed.GET("/wikifolders/:id/ancestors", folderHandler.Ancestors)

	writers.POST("/wikifolders", folderHandler.Create)
	writers.PUT("/wikifolders/:id", folderHandler.Update)
	writers.PUT("/wikifolders/:id/path", folderHandler.UpdatePath)
	writers.POST("/wikifolders/:id/move", folderHandler.Move)
	writers.DELETE("/wikifolders/:id", folderHandler.Delete)

	// Comment routes
	authed.POST("/comments", commentHandler.Create)
	authed.GET("/comments/:id", commentHandler.GetByID)
	authed.PUT("/comments/:id", commentHandler.Update)
	authed.DELETE("/comments/:id", commentHandler.Delete)
	authed.POST("/comments/:id/resolve", commentHandler.Resolve)
	authed.POST("/comments/:id/unresolve", commentHandler.Unresolve)
	authed.POST("/comments/:id/like", commentHandler.Like)
	authed.DELETE("/comments/:id/like", commentHandler.Unlike)
	authed.GET("/comments/:id/replies", commentHandler.Replies)
	authed.GET("/wikipages/:id/comments", commentHandler.ByPage)
	authed.GET("/wikipages/:id/comments/unresolved", commentHandler.Unresolved)
	authed.GET("/wikipages/:id/comments/count", commentHandler.Count)
	authed.GET("/mentions/:username/comments", commentHandler.ByMention)

	// Server configuration
	serverPort := config.AppConfig.ServerPort
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", serverPort),
		Handler: router.Handler(),
	}

	// Start server
	go func() {
		log.Info().Str("port", serverPort).Msg("server listening")
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server shutdown error")
	}

	<-ctx.Done()
	log.Info().Msg("server shutdown complete")
}
