// Package server contains the HTTP handlers for the application's API
// endpoints.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"globetrotter/internal/cache"
	"globetrotter/internal/config"
	"globetrotter/internal/database"
	"globetrotter/internal/middleware"
	"globetrotter/internal/models"
	"globetrotter/internal/observability"
	"globetrotter/internal/repository"
	"globetrotter/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	tokenIssuer   = "globetrotter-api"
	tokenAudience = "globetrotter-client"
	tokenLifetime = 7 * 24 * time.Hour
)

// Server holds all dependencies and provides handlers.
type Server struct {
	config          *config.Config
	db              *gorm.DB
	redis           *redis.Client
	app             *fiber.App
	promMiddleware  *fiberprometheus.FiberPrometheus
	tracingShutdown func(context.Context) error

	userRepo    repository.UserRepository
	cityRepo    repository.CityRepository
	tripRepo    repository.TripRepository
	stopRepo    repository.StopRepository
	expenseRepo repository.ExpenseRepository

	authService      *service.AuthService
	tripService      *service.TripService
	itineraryService *service.ItineraryService
	expenseService   *service.ExpenseService
	cityService      *service.CityService
	imageService     *service.ImageService
}

type mailerDep interface {
	SendOTP(ctx context.Context, to, otp string) error
}

// NewServer creates a server instance, establishing its own DB and Redis
// connections.
func NewServer(cfg *config.Config, mail mailerDep) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()

	return NewServerWithDeps(cfg, db, redisClient, mail)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Used by tests and by bootstrap code that manages connections itself.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, mail mailerDep) (*Server, error) {
	prom := middleware.InitMetrics("globetrotter-api")

	// Error envelopes only echo wrapped error text outside production.
	models.SetErrorDetails(cfg.Env != "production" && cfg.Env != "prod")

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: prom,
		userRepo:       repository.NewUserRepository(db),
		cityRepo:       repository.NewCityRepository(db),
		tripRepo:       repository.NewTripRepository(db),
		stopRepo:       repository.NewStopRepository(db),
		expenseRepo:    repository.NewExpenseRepository(db),
	}

	server.authService = service.NewAuthService(server.userRepo, mail, cfg)
	server.tripService = service.NewTripService(server.tripRepo, server.cityRepo)
	server.itineraryService = service.NewItineraryService(server.stopRepo, server.tripRepo)
	server.expenseService = service.NewExpenseService(server.expenseRepo, server.tripRepo)
	server.cityService = service.NewCityService(server.cityRepo)
	server.imageService = service.NewImageService(cfg)

	if cfg.TracingEnabled {
		shutdown, err := observability.InitTracing(observability.TracingConfig{
			ServiceName:  "globetrotter-api",
			Environment:  cfg.Env,
			Enabled:      true,
			Exporter:     cfg.TracingExporter,
			OTLPEndpoint: cfg.OTLPEndpoint,
			SamplerRatio: cfg.TracingSampler,
		})
		if err != nil {
			return nil, fmt.Errorf("tracing initialization failed: %w", err)
		}
		server.tracingShutdown = shutdown
	}

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app.
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context middleware to propagate request ID and user ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}

	// Security headers
	app.Use(helmet.New())

	// Structured logging (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS must run before middlewares that can short-circuit (e.g. limiter)
	// so browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(models.ErrorResponse{
				Success: false,
				Message: "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application.
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	// Normalized uploads (profile pictures, trip covers)
	app.Static("/uploads", s.imageService.UploadDir())

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/register", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "register"), s.Register)
	auth.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)
	auth.Post("/forgot-password", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "forgot_password"), s.ForgotPassword)
	auth.Post("/reset-password", middleware.RateLimit(
		s.redis, 5, 10*time.Minute, "reset_password"), s.ResetPassword)
	auth.Get("/profile", s.AuthRequired(), s.GetProfile)
	auth.Patch("/update-profile", s.AuthRequired(), s.UpdateProfile)

	// City catalog (public) and saved cities (protected)
	cities := api.Group("/cities")
	cities.Get("/search", middleware.RateLimit(
		s.redis, 30, time.Minute, "city_search"), s.SearchCities)
	cities.Get("/popular", s.PopularCities)
	saved := cities.Group("/me/saved", s.AuthRequired())
	saved.Get("/", s.GetSavedCities)
	saved.Post("/:cityId", s.SaveCity)
	saved.Delete("/:cityId", s.UnsaveCity)

	// Public trip view must be registered before the generic /:tripId routes.
	api.Get("/trips/public/:tripId", s.GetPublicTrip)

	trips := api.Group("/trips", s.AuthRequired())
	trips.Post("/", s.CreateTrip)
	trips.Get("/my", s.GetMyTrips)
	trips.Post("/:tripId/stops", s.ReplaceStops)
	trips.Patch("/:tripId/stops/order", s.ReorderStops)
	trips.Get("/:tripId", s.GetTrip)
	trips.Patch("/:tripId", s.UpdateTrip)
	trips.Delete("/:tripId", s.DeleteTrip)

	activities := api.Group("/activities", s.AuthRequired())
	activities.Get("/:stopId", s.GetStop)
	activities.Post("/:stopId/activities", s.ReplaceActivities)
	activities.Patch("/:stopId/activities/order", s.ReorderActivities)

	expenses := api.Group("/expenses", s.AuthRequired())
	expenses.Get("/:tripId", s.GetExpenses)
	expenses.Post("/:tripId", s.ReplaceExpenses)
}

// LivenessCheck handles liveness probe requests.
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		// The app degrades without Redis; readiness only requires the DB.
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// AuthRequired returns the authentication middleware.
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		tokenString := ""
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}
		if tokenString == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Authorization required"))
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
			}
			return []byte(s.config.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			// Expired and invalid tokens both yield 401, differing only in
			// the message.
			message := "Invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				message = "Token expired"
			}
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError(message))
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token claims"))
		}

		if issuer, issuerOk := claims["iss"].(string); !issuerOk || issuer != tokenIssuer {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token issuer"))
		}
		if audience, audienceOk := claims["aud"].(string); !audienceOk || audience != tokenAudience {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token audience"))
		}

		sub, ok := claims["sub"].(string)
		if !ok {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid subject claim"))
		}
		userID, err := strconv.ParseUint(sub, 10, 32)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid user ID in token"))
		}

		c.Locals("userID", uint(userID))
		ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, uint(userID))
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// generateToken creates a signed JWT for the given user.
func (s *Server) generateToken(userID uint) (string, error) {
	if s.config.JWTSecret == "" {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(userID), 10),
		"iss": tokenIssuer,
		"aud": tokenAudience,
		"exp": now.Add(tokenLifetime).Unix(),
		"iat": now.Unix(),
		"nbf": now.Unix(),
		"jti": s.generateJTI(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

// generateJTI creates a unique JWT ID to prevent replay attacks.
func (s *Server) generateJTI() string {
	return fmt.Sprintf("%d-%s", time.Now().Unix(), uuid.New().String()[:8])
}

// Start starts the server.
func (s *Server) Start() error {
	app := fiber.New(fiber.Config{
		AppName:   "GlobeTrotter API",
		BodyLimit: (s.config.UploadMaxSizeMB + 1) * 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	log.Printf("Server starting on port %s...", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}

	if s.tracingShutdown != nil {
		if err := s.tracingShutdown(ctx); err != nil {
			log.Printf("error shutting down tracing: %v", err)
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}
