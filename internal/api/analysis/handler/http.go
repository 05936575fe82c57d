package analysisHandler

import (
	analysisService "PresenceCoach/internal/api/analysis/service"
	"PresenceCoach/internal/middleware"
	"PresenceCoach/pkg/utils"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"
	"os"
	"time"
)

const defaultRequestTimeout = 15 * time.Second

type AnalysisHandler struct {
	log             *logrus.Logger
	validator       *validator.Validate
	middleware      middleware.Middleware
	analysisService analysisService.IAnalysisService
	utils           utils.IUtils
	timeout         time.Duration
}

func New(
	log *logrus.Logger,
	validator *validator.Validate,
	middleware middleware.Middleware,
	as analysisService.IAnalysisService,
	utils utils.IUtils,
) *AnalysisHandler {
	timeout := defaultRequestTimeout
	if v, err := time.ParseDuration(os.Getenv("REQUEST_TIMEOUT")); err == nil && v > 0 {
		timeout = v
	}

	return &AnalysisHandler{
		analysisService: as,
		log:             log,
		validator:       validator,
		middleware:      middleware,
		utils:           utils,
		timeout:         timeout,
	}
}

func (h *AnalysisHandler) Start(srv fiber.Router) {
	wsMiddleware := func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}

	srv.Use("/analyze/ws", wsMiddleware)
	srv.Get("/analyze/ws", websocket.New(h.handleWebSocket))
	srv.Post("/analyze", h.middleware.NewRateLimiter, h.AnalyzeFrame)
}
