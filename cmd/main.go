package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/random"

	"github.com/mfk4us/bocc-client-panel/internal/caching"
	"github.com/mfk4us/bocc-client-panel/internal/config"
	"github.com/mfk4us/bocc-client-panel/internal/handlers"
	"github.com/mfk4us/bocc-client-panel/internal/jobs/background"
	"github.com/mfk4us/bocc-client-panel/internal/middleware"
	"github.com/mfk4us/bocc-client-panel/internal/repositories"
	"github.com/mfk4us/bocc-client-panel/internal/services"
	"github.com/mfk4us/bocc-client-panel/pkg/database"
)

const version = "1.0.0"

func main() {
	// Database connection
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}
	pool, err := database.NewPool(databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// File-based configuration for the messaging provider and exports
	configPath := os.Getenv("PANEL_CONFIG")
	if configPath == "" {
		configPath = "panel.toml"
	}
	panelConfig, err := config.LoadPanelConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load panel config: %v", err)
	}

	// JWT configuration
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = random.String(32) // Generate random secret for development
		log.Printf("WARNING: Using generated JWT secret")
	}

	// Redis configuration
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := 0
	if raw := os.Getenv("REDIS_DB"); raw != "" {
		if db, err := strconv.Atoi(raw); err == nil {
			redisDB = db
		}
	}

	// MinIO configuration
	minioEndpoint := os.Getenv("MINIO_ENDPOINT")
	if minioEndpoint == "" {
		minioEndpoint = "localhost:9000"
	}
	minioAccessKey := os.Getenv("MINIO_ACCESS_KEY")
	if minioAccessKey == "" {
		minioAccessKey = "minioadmin"
	}
	minioSecretKey := os.Getenv("MINIO_SECRET_KEY")
	if minioSecretKey == "" {
		minioSecretKey = "minioadmin"
	}
	useSSL := os.Getenv("MINIO_USE_SSL") == "true"

	storageSvc, err := services.NewMinioStorage(minioEndpoint, minioAccessKey, minioSecretKey, useSSL)
	if err != nil {
		log.Fatalf("Failed to initialize object storage: %v", err)
	}
	if panelConfig.Exports.Archive {
		if err := storageSvc.EnsureBucketExists(context.Background(), panelConfig.Exports.Bucket); err != nil {
			log.Printf("WARNING: export bucket check failed: %v", err)
		}
	}

	// Create repositories
	profileRepo := repositories.NewProfileRepo(pool)
	bookingRepo := repositories.NewBookingRepo(pool)
	noteRepo := repositories.NewNoteRepo(pool)
	messageRepo := repositories.NewMessageRepo(pool)
	teamRepo := repositories.NewTeamMemberRepo(pool)
	integrationRepo := repositories.NewIntegrationRepo(pool)

	// Create cache service
	cacheSvc := caching.NewRedisCacheService(redisAddr, redisPassword, redisDB)

	// Create services
	authSvc := services.NewAuthService(jwtSecret, 24*time.Hour)
	sessionSvc := services.NewSessionService(cacheSvc)
	profileSvc := services.NewProfileService(profileRepo)
	exportSvc := services.NewExportService(storageSvc, panelConfig.Exports.Bucket, panelConfig.Exports.Archive)
	templateSvc := services.NewTemplateService(panelConfig.Provider, cacheSvc,
		time.Duration(panelConfig.Cache.TemplateTTLMinutes)*time.Minute)

	// Create handlers
	authHandlers := handlers.NewAuthHandlers(authSvc, sessionSvc, profileRepo)
	profileHandlers := handlers.NewProfileHandlers(profileSvc, exportSvc)
	sessionHandlers := handlers.NewSessionHandlers(sessionSvc)
	templateHandlers := handlers.NewTemplateHandlers(templateSvc)
	bookingHandlers := handlers.NewBookingHandlers(bookingRepo)
	noteHandlers := handlers.NewNoteHandlers(noteRepo)
	messageHandlers := handlers.NewMessageHandlers(messageRepo)
	teamHandlers := handlers.NewTeamHandlers(teamRepo)
	integrationHandlers := handlers.NewIntegrationHandlers(integrationRepo)
	healthHandlers := handlers.NewHealthHandlers(pool, cacheSvc)

	// Background jobs
	scheduler, err := background.NewJobScheduler(templateSvc,
		time.Duration(panelConfig.Cache.RefreshIntervalMinutes)*time.Minute)
	if err != nil {
		log.Fatalf("Failed to create job scheduler: %v", err)
	}
	scheduler.Start()
	defer func() {
		if err := scheduler.Stop(); err != nil {
			log.Printf("scheduler shutdown failed: %v", err)
		}
	}()

	// Create Echo instance
	e := echo.New()

	// Global middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	// Health endpoints (no auth required)
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/ready", healthHandlers.ReadinessCheck)

	// API routes
	v1 := e.Group("/v1")

	// Authentication routes (no JWT required)
	auth := v1.Group("/auth")
	auth.POST("/login", authHandlers.Login)

	// Protected routes
	protected := v1.Group("")
	protected.Use(echojwt.WithConfig(middleware.JWTConfig(jwtSecret)))

	protected.GET("/me", authHandlers.Me)

	// Session state
	protected.GET("/session", sessionHandlers.GetSession)
	protected.PUT("/session", sessionHandlers.SaveSession)
	protected.DELETE("/session", sessionHandlers.ClearSession)
	protected.POST("/session/last-route/take", sessionHandlers.TakeLastRoute)

	// Tenant profiles. Listing and export respect the caller's visibility;
	// mutations and bulk operations are admin-only.
	protected.GET("/profiles", profileHandlers.ListProfiles)
	protected.POST("/profiles/export", profileHandlers.ExportProfiles)
	protected.POST("/profiles", profileHandlers.CreateProfile, middleware.RequireAdmin)
	protected.PUT("/profiles/:id", profileHandlers.UpdateProfile, middleware.RequireAdmin)
	protected.DELETE("/profiles/:id", profileHandlers.DeleteProfile, middleware.RequireAdmin)
	protected.POST("/profiles/bulk/activate", profileHandlers.BulkActivate, middleware.RequireAdmin)
	protected.POST("/profiles/bulk/delete", profileHandlers.BulkDelete, middleware.RequireAdmin)

	// Message templates
	protected.GET("/templates", templateHandlers.ListTemplates)
	protected.POST("/templates/refresh", templateHandlers.RefreshTemplates)
	protected.DELETE("/templates/cache", templateHandlers.ClearTemplateCache, middleware.RequireAdmin)

	// Bookings
	protected.GET("/bookings", bookingHandlers.ListBookings)
	protected.POST("/bookings", bookingHandlers.CreateBooking)
	protected.PUT("/bookings/:id", bookingHandlers.UpdateBooking)
	protected.DELETE("/bookings/:id", bookingHandlers.DeleteBooking)

	// Customer notes
	protected.GET("/notes", noteHandlers.ListNotes)
	protected.POST("/notes", noteHandlers.CreateNote)
	protected.PUT("/notes/:id", noteHandlers.UpdateNote)
	protected.DELETE("/notes/:id", noteHandlers.DeleteNote)

	// Messages
	protected.GET("/messages", messageHandlers.ListMessages)
	protected.POST("/messages", messageHandlers.CreateMessage)
	protected.PATCH("/messages/:id/status", messageHandlers.UpdateMessageStatus)
	protected.DELETE("/messages/:id", messageHandlers.DeleteMessage)

	// Team members
	protected.GET("/team-members", teamHandlers.ListTeamMembers)
	protected.POST("/team-members", teamHandlers.CreateTeamMember)
	protected.PUT("/team-members/:id", teamHandlers.UpdateTeamMember)
	protected.DELETE("/team-members/:id", teamHandlers.DeleteTeamMember)

	// Integrations
	protected.GET("/integrations", integrationHandlers.ListIntegrations)
	protected.POST("/integrations", integrationHandlers.CreateIntegration)
	protected.PUT("/integrations/:id", integrationHandlers.UpdateIntegration)
	protected.DELETE("/integrations/:id", integrationHandlers.DeleteIntegration)

	// Start server
	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		log.Fatalf("Invalid port %s: %v", portStr, err)
	}

	log.Printf("Client panel server v%s starting on port %d", version, port)
	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", port)))
}
