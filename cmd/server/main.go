package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/plumeio/plume/internal/api"
	"github.com/plumeio/plume/internal/cache"
	"github.com/plumeio/plume/internal/comment"
	"github.com/plumeio/plume/internal/db"
	"github.com/plumeio/plume/internal/feed"
	"github.com/plumeio/plume/internal/follow"
	"github.com/plumeio/plume/internal/post"
	"github.com/plumeio/plume/internal/storage/postgres"
	"github.com/plumeio/plume/pkg/config"
	"github.com/plumeio/plume/pkg/logging"
	"github.com/plumeio/plume/pkg/telemetry"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logging.InitLogger(&cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logging.GetLogger().Sync()

	logger := logging.GetLogger()
	logger.Info("Starting Plume API Server")

	// Initialize telemetry
	telemetryShutdown, err := telemetry.Init(&cfg.Telemetry)
	if err != nil {
		logger.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer telemetryShutdown()

	// Connect to the database
	database, err := db.New(&cfg.Database, cfg.Logging.Level)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close()

	// Timeline cache: redis when configured, in-process otherwise
	var timelineCache cache.Cache
	redisCache, err := cache.NewRedis(&cfg.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	if redisCache != nil {
		defer redisCache.Close()
		timelineCache = redisCache
	} else {
		timelineCache = cache.NewMemory()
	}

	// Wire stores and services
	users := postgres.NewUserStore(database.DB)
	groups := postgres.NewGroupStore(database.DB)
	posts := postgres.NewPostStore(database.DB)
	comments := postgres.NewCommentStore(database.DB)
	followEdges := postgres.NewFollowStore(database.DB)

	followManager := follow.NewManager(users, followEdges, logging.WithComponent("follow"))
	feedEngine := feed.NewEngine(posts, groups, users, followManager, timelineCache,
		cfg.Feed.PageSize, cfg.Feed.CacheTTL, logging.WithComponent("feed"))
	postService := post.NewService(users, groups, posts, logging.WithComponent("post"))
	commentManager := comment.NewManager(users, posts, comments, logging.WithComponent("comment"))

	// Create Gin router
	if cfg.Logging.Level == "DEBUG" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())

	router := api.NewRouter(feedEngine, postService, commentManager, followManager)
	router.SetupRoutes(engine)

	// Create HTTP server
	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: engine,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Server starting", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
