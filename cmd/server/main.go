package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Andrew766938/DASHA-FINAL/internal/config"
	"github.com/Andrew766938/DASHA-FINAL/internal/database"
	"github.com/Andrew766938/DASHA-FINAL/internal/handlers"
	"github.com/Andrew766938/DASHA-FINAL/internal/services"
)

var (
	version   = "1.0.0"
	buildTime = "unknown"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	logger.Info("Starting Railway Booking Backend")
	logger.Infof("Version: %s, Build Time: %s", version, buildTime)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	// Set log level
	logLevel, err := logrus.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		logger.Warn("Invalid log level, using INFO")
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Set Gin mode
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	// Initialize database connection
	logger.Info("Connecting to database...")
	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	logger.Info("Database connection established")

	// Initialize repositories
	trainRepo := database.NewTrainRepository(db.DB)
	wagonRepo := database.NewWagonRepository(db.DB)
	seatRepo := database.NewSeatRepository(db.DB)
	ticketRepo := database.NewTicketRepository(db.DB)

	// Initialize services
	logger.Info("Initializing services...")
	fareService := services.NewFareService()
	catalogService := services.NewCatalogService(trainRepo, wagonRepo, seatRepo)
	bookingService := services.NewBookingService(
		trainRepo,
		wagonRepo,
		seatRepo,
		ticketRepo,
		fareService,
		cfg.Booking,
		logger,
	)

	// Background hold sweeper releases expired pending tickets
	sweeper := services.NewHoldSweeperService(ticketRepo, seatRepo, cfg.Booking, logger)
	sweeper.Start()

	// Scheduled catalog maintenance
	maintenance := services.NewMaintenanceService(trainRepo, logger)
	if err := maintenance.Start(); err != nil {
		logger.Fatalf("Failed to start maintenance jobs: %v", err)
	}

	// Initialize handlers
	trainHandler := handlers.NewTrainHandler(catalogService)
	seatHandler := handlers.NewSeatHandler(catalogService)
	bookingHandler := handlers.NewBookingHandler(bookingService, fareService)

	// Initialize Gin router
	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(requestLogger(logger))

	// CORS configuration
	corsConfig := cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", healthCheckHandler(db))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		trains := v1.Group("/trains")
		{
			trains.GET("/search", trainHandler.SearchTrains)
			trains.GET("", trainHandler.ListTrains)
			trains.GET("/:trainId", trainHandler.GetTrain)
			trains.GET("/:trainId/wagons", trainHandler.GetTrainWagons)
			trains.GET("/:trainId/wagons/type/:class", trainHandler.GetTrainWagonsByClass)
		}

		wagons := v1.Group("/wagons")
		{
			wagons.GET("/:wagonId", seatHandler.GetWagon)
			wagons.GET("/:wagonId/seats", seatHandler.GetWagonLayout)
			wagons.GET("/:wagonId/available", seatHandler.GetAvailableSeats)
		}

		v1.GET("/discounts", bookingHandler.GetDiscounts)
		v1.POST("/fare/quote", bookingHandler.QuoteFare)

		tickets := v1.Group("/tickets")
		{
			tickets.POST("", bookingHandler.BookSeat)
			tickets.GET("/:ticketId", bookingHandler.GetTicket)
			tickets.POST("/:ticketId/pay", bookingHandler.PayTicket)
			tickets.POST("/:ticketId/cancel", bookingHandler.CancelTicket)
			tickets.GET("/passenger/:email", bookingHandler.GetPassengerTickets)
		}
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Infof("Server starting on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	sweeper.Stop()
	maintenance.Stop()

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited successfully")
}

// requestLogger middleware for logging HTTP requests
func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)

		fields := logrus.Fields{
			"status":     c.Writer.Status(),
			"method":     c.Request.Method,
			"path":       path,
			"query":      query,
			"ip":         c.ClientIP(),
			"latency_ms": latency.Milliseconds(),
			"user_agent": c.Request.UserAgent(),
		}

		entry := logger.WithFields(fields)

		if len(c.Errors) > 0 {
			for i, err := range c.Errors {
				entry = entry.WithField(fmt.Sprintf("error_%d", i), err.Error())
			}
			entry.Error("Request failed with errors")
			return
		}

		status := c.Writer.Status()
		switch {
		case status >= 500:
			entry.Error("Request completed with server error")
		case status >= 400:
			entry.Warn("Request completed with client error")
		default:
			entry.Info("Request completed successfully")
		}
	}
}

// healthCheckHandler returns a health check endpoint
func healthCheckHandler(db database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		dbStatus := "healthy"
		if err := db.Ping(); err != nil {
			dbStatus = "unhealthy"
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"database": dbStatus,
				"error":    err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"database":  dbStatus,
			"version":   version,
			"timestamp": time.Now().Unix(),
		})
	}
}
