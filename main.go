package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/vedant-codes/legalMindAI-Backend/config"
	"github.com/vedant-codes/legalMindAI-Backend/handler"
	"github.com/vedant-codes/legalMindAI-Backend/middleware"
	"github.com/vedant-codes/legalMindAI-Backend/pkg/logger"
	"github.com/vedant-codes/legalMindAI-Backend/service"
)

func main() {
	// Optional .env for local development
	_ = godotenv.Load()

	cfg, err := config.Load("config.yaml")
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Init(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})

	slog.Info("configuration loaded",
		"storage_backend", cfg.Storage.Backend,
		"llm_model", cfg.LLM.Model,
		"llm_configured", cfg.LLM.APIKey != "",
	)

	files, err := newFileStore(cfg)
	if err != nil {
		slog.Error("failed to initialize file storage", "error", err)
		os.Exit(1)
	}

	store := service.NewDocumentStore(&cfg.Store)
	processor := service.NewProcessor(store, files)
	store.OnEvict = func(rec service.Record) {
		processor.ReleaseFile(context.Background(), rec.Document)
	}

	llmSvc, err := service.NewLLMService(context.Background(), &cfg.LLM)
	if err != nil {
		slog.Error("failed to initialize LLM gateway", "error", err)
		os.Exit(1)
	}

	documentHandler := handler.NewDocumentHandler(store, files, processor, cfg.Upload.MaxFileSizeBytes())
	generateHandler := handler.NewGenerateHandler(llmSvc)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(corsMiddleware())
	router.Use(middleware.RateLimit(100, time.Minute))

	api := router.Group("/api")
	{
		api.GET("/", generateHandler.Health)
		api.POST("/generate-summary", generateHandler.GenerateSummary)
		api.POST("/qna", generateHandler.QnA)
		api.POST("/negotiation", generateHandler.Negotiation)

		api.POST("/upload", documentHandler.Upload)
		api.GET("/status/:fileId", documentHandler.GetStatus)
		api.GET("/document/:fileId", documentHandler.GetDocument)
		api.GET("/documents", documentHandler.List)
		api.DELETE("/document/:fileId", documentHandler.Delete)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server exited gracefully")
}

// newFileStore selects the upload backend. Local disk is the default; MinIO
// keeps uploads in a bucket when configured.
func newFileStore(cfg *config.Config) (service.FileStore, error) {
	switch cfg.Storage.Backend {
	case "minio":
		store, err := service.NewMinioStore(&cfg.Storage.Minio)
		if err != nil {
			return nil, err
		}
		if err := store.EnsureBucket(context.Background()); err != nil {
			return nil, err
		}
		return store, nil
	default:
		return service.NewLocalStore(cfg.Upload.Dir)
	}
}

// corsMiddleware handles CORS headers for browser clients
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, DELETE")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "X-Request-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
