package config

import (
	analysisHandler "PresenceCoach/internal/api/analysis/handler"
	analysisService "PresenceCoach/internal/api/analysis/service"
	"PresenceCoach/internal/middleware"
	"PresenceCoach/internal/scoring"
	"PresenceCoach/pkg/landmark"
	"PresenceCoach/pkg/redis"
	"PresenceCoach/pkg/utils"
	"fmt"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"os"
	"time"
)

type ServerOption func(*Server) error

type Server struct {
	engine        *fiber.App
	log           *logrus.Logger
	middleware    middleware.Middleware
	validator     *validator.Validate
	utils         utils.IUtils
	handlers      []handler
	detector      landmark.Detector
	snapshotCache redis.ISnapshotCache
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if server.detector == nil {
		return nil, fmt.Errorf("landmark detector is required")
	}
	if server.middleware == nil {
		server.middleware = middleware.New(server.log)
	}
	if server.validator == nil {
		server.validator = NewValidator()
	}
	if server.utils == nil {
		server.utils = utils.New()
	}

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}
		s.middleware = middleware.New(s.log)
		return nil
	}
}

func WithUtils() ServerOption {
	return func(s *Server) error {
		s.utils = utils.New()
		return nil
	}
}

func WithLandmarkDetector(detector landmark.Detector) ServerOption {
	return func(s *Server) error {
		if detector == nil {
			return fmt.Errorf("landmark detector is nil")
		}
		s.detector = detector
		return nil
	}
}

// WithSnapshotCache puts the cache in front of the detector. It must come
// after WithLandmarkDetector.
func WithSnapshotCache(cache redis.ISnapshotCache, ttl time.Duration) ServerOption {
	return func(s *Server) error {
		if s.detector == nil {
			return fmt.Errorf("landmark detector must be initialized before snapshot cache")
		}
		if cache == nil {
			return nil
		}
		s.snapshotCache = cache
		s.detector = landmark.NewCachedDetector(s.detector, cache, ttl, s.log)
		return nil
	}
}

func (s *Server) RegisterHandler() {
	// Analysis
	evaluator := scoring.NewEvaluator(s.log)
	analysisServices := analysisService.NewAnalysisService(s.log, s.detector, evaluator, s.utils)
	analysisHandlers := analysisHandler.New(s.log, s.validator, s.middleware, analysisServices, s.utils)

	s.handlers = append(s.handlers, analysisHandlers)
}

// Mount attaches the global middleware, the health check and every registered
// handler under /api/v1.
func (s *Server) Mount() {
	s.engine.Use(s.middleware.NewRequestIDMiddleware())
	s.engine.Use(s.middleware.NewLoggingMiddleware())
	s.setupHealthCheck()

	router := s.engine.Group("/api/v1")
	for _, h := range s.handlers {
		h.Start(router)
	}
}

func (s *Server) Run() error {
	s.Mount()

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "3000"
	}

	return s.engine.Listen(fmt.Sprintf(":%s", port))
}

func (s *Server) Shutdown(timeout time.Duration) error {
	err := s.engine.ShutdownWithTimeout(timeout)

	if closeErr := s.detector.Close(); closeErr != nil {
		s.log.Errorf("Failed to close landmark detector: %v", closeErr)
	}
	if s.snapshotCache != nil {
		if closeErr := s.snapshotCache.Close(); closeErr != nil {
			s.log.Errorf("Failed to close snapshot cache: %v", closeErr)
		}
	}

	return err
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"message": "Server is Healthy!",
		})
	})
}
