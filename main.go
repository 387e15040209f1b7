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

	"github.com/yashsharma-007/Financeautomation/config"
	"github.com/yashsharma-007/Financeautomation/handler"
	"github.com/yashsharma-007/Financeautomation/middleware"
	"github.com/yashsharma-007/Financeautomation/pkg/logger"
	"github.com/yashsharma-007/Financeautomation/service"
	"github.com/yashsharma-007/Financeautomation/storage"
)

func main() {
	// Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger.Init(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})

	slog.Info("configuration loaded successfully")

	// Open the persistence backend and wire the entity stores
	backend, err := storage.Open(context.Background(), &cfg.Storage)
	if err != nil {
		slog.Error("failed to open storage backend", "backend", cfg.Storage.Backend, "error", err)
		os.Exit(1)
	}
	registry := storage.NewRegistry(backend)
	slog.Info("storage backend ready", "backend", cfg.Storage.Backend)

	// File archiving is optional; without it uploads are still processed,
	// only the source files are not retained.
	var archiveSvc *service.ArchiveService
	if cfg.Archive.Enabled {
		archiveSvc, err = service.NewArchiveService(&cfg.Archive)
		if err != nil {
			slog.Error("failed to initialize archive service", "error", err)
			os.Exit(1)
		}
		if err := archiveSvc.EnsureBucket(context.Background()); err != nil {
			slog.Error("failed to ensure archive bucket", "error", err)
			os.Exit(1)
		}
		slog.Info("file archiving enabled", "bucket", cfg.Archive.Bucket)
	}

	// Initialize services
	recognizer := service.NewHTTPRecognizer(&cfg.OCR)
	ocrTimeout := time.Duration(cfg.OCR.TimeoutSeconds) * time.Second
	pipeline := service.NewPipeline(registry.Invoices, recognizer, archiveSvc, cfg.OCR.Language, ocrTimeout)
	estimator := service.NewEstimator(registry.TaxEstimates, cfg.Tax.GSTRate)
	complianceSvc := service.NewComplianceService(registry.ITCMismatches, registry.ComplianceIssues)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(registry, cfg)
	invoiceHandler := handler.NewInvoiceHandler(pipeline, registry.Invoices, archiveSvc)
	estimateHandler := handler.NewEstimateHandler(estimator)
	reconciliationHandler := handler.NewReconciliationHandler(complianceSvc)
	complianceHandler := handler.NewComplianceHandler(complianceSvc)
	settingsHandler := handler.NewSettingsHandler(registry.BusinessSettings)
	billingHandler := handler.NewBillingHandler(registry.Billing)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New() // Use New() instead of Default() to avoid default middleware

	// Add custom middleware
	router.Use(middleware.RequestID())                 // Request ID for tracing
	router.Use(middleware.Recovery())                  // Panic recovery
	router.Use(middleware.RequestLogger())             // Access logging
	router.Use(corsMiddleware())                       // CORS
	router.Use(middleware.RateLimit(100, time.Minute)) // Rate limiting: 100 requests per minute

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	// Public routes
	api := router.Group("/api")
	{
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)
	}

	// Protected routes
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(&cfg.Auth))
	{
		protected.POST("/auth/logout", authHandler.Logout)
		protected.GET("/auth/me", authHandler.GetCurrentUser)
		protected.PUT("/auth/me", authHandler.UpdateProfile)

		protected.POST("/invoices/upload", invoiceHandler.Upload)
		protected.GET("/invoices", invoiceHandler.List)
		protected.GET("/invoices/:id", invoiceHandler.Get)
		protected.GET("/invoices/:id/status", invoiceHandler.GetStatus)
		protected.GET("/invoices/:id/file", invoiceHandler.GetFileURL)
		protected.DELETE("/invoices/:id", invoiceHandler.Delete)

		protected.POST("/estimates", estimateHandler.Create)
		protected.GET("/estimates", estimateHandler.History)

		protected.GET("/itc/mismatches", reconciliationHandler.ListMismatches)
		protected.POST("/itc/mismatches/:id/toggle", reconciliationHandler.ToggleMismatch)
		protected.POST("/itc/refresh", reconciliationHandler.Refresh)

		protected.GET("/compliance", complianceHandler.ListIssues)
		protected.POST("/compliance", complianceHandler.ReportIssue)
		protected.POST("/compliance/:id/toggle", complianceHandler.ToggleIssue)

		protected.GET("/settings/business", settingsHandler.GetBusiness)
		protected.PUT("/settings/business", settingsHandler.SaveBusiness)

		protected.GET("/billing", billingHandler.Get)
		protected.PUT("/billing", billingHandler.UpdatePlan)
		protected.POST("/billing/payments", billingHandler.RecordPayment)
	}

	// Create server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
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

	// Let in-flight recognitions finish before closing the backend
	pipeline.Wait()
	if err := registry.Close(); err != nil {
		slog.Error("failed to close storage backend", "error", err)
	}

	slog.Info("server exited gracefully")
}

// corsMiddleware handles CORS headers
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "X-Request-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
