// Package server wires the HTTP surface: GraphQL endpoint, image upload,
// static file serving, and operational probes.
package server

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"waypost/internal/auth"
	"waypost/internal/cache"
	"waypost/internal/cleanup"
	"waypost/internal/config"
	"waypost/internal/database"
	"waypost/internal/graph"
	"waypost/internal/middleware"
	"waypost/internal/repository"
	"waypost/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/graphql-go/graphql"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Server holds all dependencies and provides handlers.
type Server struct {
	config      *config.Config
	mongoClient *mongo.Client
	db          *mongo.Database
	redis       *redis.Client
	app         *fiber.App
	prom        *fiberprometheus.FiberPrometheus
	shutdownCtx context.Context
	shutdownFn  context.CancelFunc
	userRepo    repository.UserRepository
	postRepo    repository.PostRepository
	tokens      *auth.TokenManager
	cleaner     *cleanup.Cleaner
	authService *service.AuthService
	postService *service.PostService
	userService *service.UserService
	schema      graphql.Schema
}

// NewServer creates a server instance, establishing the MongoDB and Redis
// connections itself.
func NewServer(cfg *config.Config) (*Server, error) {
	client, db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	return NewServerWithDeps(cfg, client, db, cache.GetClient())
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes the connections.
func NewServerWithDeps(cfg *config.Config, client *mongo.Client, db *mongo.Database, redisClient *redis.Client) (*Server, error) {
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	tokens := auth.NewTokenManager(cfg.JWTSecret)
	cleaner := cleanup.NewCleaner(cfg.UploadDir)

	server := &Server{
		config:      cfg,
		mongoClient: client,
		db:          db,
		redis:       redisClient,
		prom:        fiberprometheus.New("waypost"),
		userRepo:    userRepo,
		postRepo:    postRepo,
		tokens:      tokens,
		cleaner:     cleaner,
	}
	server.authService = service.NewAuthService(userRepo, tokens)
	server.postService = service.NewPostService(postRepo, userRepo, cleaner)
	server.userService = service.NewUserService(userRepo)

	resolver := graph.NewResolver(server.authService, server.postService, server.userService)
	schema, err := graph.NewSchema(resolver)
	if err != nil {
		return nil, fmt.Errorf("schema construction failed: %w", err)
	}
	server.schema = schema

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app.
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Propagate request ID and user ID into the request context
	app.Use(middleware.ContextMiddleware())

	// Prometheus metrics
	if s.prom != nil {
		app.Use(s.prom.Middleware)
	}

	// Structured logging (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	if s.config.TracingEnabled {
		app.Use(middleware.Tracing())
	}

	// CORS runs before anything that can short-circuit so browser clients
	// still receive the headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: "OPTIONS, GET, POST, PUT, PATCH, DELETE",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		MaxAge:       86400,
	}))

	// Bearer token verification. Pass-through: requests continue with their
	// auth outcome recorded, resolvers decide what requires identity.
	app.Use(middleware.Authenticate(s.tokens))
}

// SetupRoutes configures all routes for the application.
func (s *Server) SetupRoutes(app *fiber.App) {
	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.prom != nil {
		s.prom.RegisterAt(app, "/metrics")
	}

	// GraphQL endpoint and in-browser IDE
	app.Post("/graphql", middleware.RateLimit(
		s.redis, 120, time.Minute, "graphql"), graph.Handler(s.schema))
	app.Get("/playground", graph.Playground())

	// REST image upload; GraphQL mutations reference the stored path
	app.Put("/post-image", middleware.RateLimit(
		s.redis, 20, time.Minute, "upload"), s.UploadImage)

	// Stored images are served as static files
	app.Static("/images", s.config.UploadDir)
}

// LivenessCheck handles liveness probe requests.
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests. MongoDB is required;
// Redis is optional and reported for visibility only.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	if err := s.mongoClient.Ping(ctx, readpref.Primary()); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
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

// Start starts the server.
func (s *Server) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	s.shutdownCtx = ctx
	s.shutdownFn = cancel

	if err := os.MkdirAll(s.config.UploadDir, 0o755); err != nil {
		cancel()
		return fmt.Errorf("creating upload directory: %w", err)
	}

	app := fiber.New(fiber.Config{
		AppName:   "Waypost API",
		BodyLimit: 10 * 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			status := fiber.StatusInternalServerError
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
			middleware.Logger.ErrorContext(c.UserContext(), "request failed", "error", err)
			return c.Status(status).JSON(fiber.Map{
				"message": "An error occurred.",
				"status":  status,
			})
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	s.cleaner.Start(s.shutdownCtx)

	log.Printf("Server starting on port %s...", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server and its background workers.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.shutdownFn != nil {
		s.shutdownFn()
	}

	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}

	// Let the cleanup worker drain its queue
	if s.cleaner != nil {
		s.cleaner.Wait()
	}

	if s.mongoClient != nil {
		if err := database.Disconnect(s.mongoClient); err != nil {
			log.Printf("error disconnecting MongoDB: %v", err)
		}
	}

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			log.Printf("error closing redis: %v", err)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}
