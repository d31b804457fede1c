package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"ecosort-service/centers"
	"ecosort-service/config"
	"ecosort-service/database"
	"ecosort-service/gemini"
	"ecosort-service/handlers"
	"ecosort-service/llm"
	"ecosort-service/metrics"
	"ecosort-service/middleware"
	"ecosort-service/openai"
	"ecosort-service/rabbitmq"
	"ecosort-service/ratelimit"
	"ecosort-service/service"
	"ecosort-service/stubllm"

	apexlog "github.com/apex/log"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// Load configuration
	cfg := config.Load()

	if level, err := apexlog.ParseLevel(cfg.LogLevel); err == nil {
		apexlog.SetLevel(level)
	}

	llmClient := newLLMClient(cfg)

	if cfg.JWTSecret == "" {
		log.Println("JWT_SECRET not set; history and admin routes will reject all tokens")
	}

	// Initialize database
	db, err := database.NewDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := db.CreateTables(); err != nil {
		log.Fatalf("Failed to create tables: %v", err)
	}

	// Initialize RabbitMQ publisher (optional)
	var publisher *rabbitmq.Publisher
	if cfg.RabbitMQURL != "" {
		publisher, err = rabbitmq.NewPublisher(cfg.RabbitMQURL, cfg.RabbitMQExchange, cfg.ClassificationRoutingKey)
		if err != nil {
			log.Printf("Failed to initialize RabbitMQ publisher: %v", err)
			// Continue without publisher - classification still works
			publisher = nil
		}
	}

	// Initialize the classification pipeline
	limiter := ratelimit.NewLimiter(db, cfg.RateLimit, cfg.RateLimitWindow)
	svc := service.NewService(cfg, db, limiter, llmClient, publisherOrNil(publisher))

	// Initialize handlers
	directory := centers.NewDirectory()
	h := handlers.NewHandlers(svc, db, directory, eventPublisherOrNil(publisher), cfg.CorrectionApprovedRoutingKey)

	// Register Prometheus metrics
	metrics.Register()

	// Setup HTTP server
	router := gin.Default()
	router.Use(middleware.CORSMiddleware())

	// API routes
	api := router.Group("/api/v1")
	{
		api.GET("/health", h.HealthCheck)
		api.POST("/classify-waste", h.ClassifyWaste)
		api.GET("/recycling-centers", h.GetRecyclingCenters)
		api.POST("/feedback", middleware.OptionalAuthMiddleware(cfg.JWTSecret), h.SubmitFeedback)

		authed := api.Group("", middleware.AuthMiddleware(cfg.JWTSecret))
		{
			authed.GET("/history", h.GetHistory)
			authed.POST("/history", h.SaveHistory)
			authed.GET("/history/:id/image", h.GetHistoryImage)
		}

		admin := api.Group("/admin", middleware.AdminMiddleware(cfg.JWTSecret))
		{
			admin.GET("/feedback", h.PendingFeedback)
			admin.POST("/feedback/:id/approve", h.ApproveFeedback)
			admin.POST("/feedback/:id/deny", h.DenyFeedback)
			admin.GET("/corrections", h.ListCorrections)
		}
	}

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Printf("Starting HTTP server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Close RabbitMQ publisher if it exists
	if publisher != nil {
		if err := publisher.Close(); err != nil {
			log.Printf("Failed to close RabbitMQ publisher: %v", err)
		}
	}

	// Create a deadline for server shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

// newLLMClient selects the configured provider and fails fast when its
// credentials are missing.
func newLLMClient(cfg *config.Config) llm.Client {
	switch strings.ToLower(cfg.LLMProvider) {
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			log.Fatal("GEMINI_API_KEY environment variable is required for the gemini provider")
		}
		log.Printf("Classifier LLM provider=Gemini model=%s", cfg.GeminiModel)
		return gemini.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.ModelTimeout)
	case "stub":
		log.Printf("Classifier LLM provider=Stub (no network calls)")
		return stubllm.NewClient()
	default:
		if cfg.AIGatewayKey == "" {
			log.Fatal("AI_GATEWAY_KEY environment variable is required")
		}
		log.Printf("Classifier LLM provider=Gateway model=%s", cfg.AIModel)
		return openai.NewClient(cfg.AIGatewayURL, cfg.AIGatewayKey, cfg.AIModel, cfg.ModelTimeout)
	}
}

// publisherOrNil keeps a nil *rabbitmq.Publisher from becoming a non-nil
// service.Publisher interface value.
func publisherOrNil(p *rabbitmq.Publisher) service.Publisher {
	if p == nil {
		return nil
	}
	return p
}

func eventPublisherOrNil(p *rabbitmq.Publisher) handlers.EventPublisher {
	if p == nil {
		return nil
	}
	return p
}
