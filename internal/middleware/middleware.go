package middleware

import (
	contextPkg "PresenceCoach/pkg/context"
	"PresenceCoach/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
	"os"
	"strconv"
	"time"
)

// RequestIDKey is both the header and the Locals key carrying the request id.
const RequestIDKey = contextPkg.FiberRequestIDKey

const (
	defaultRequestsPerSecond = 5
	defaultBurst             = 10
)

type Middleware interface {
	NewRateLimiter(ctx *fiber.Ctx) error
	NewRequestIDMiddleware() fiber.Handler
	NewLoggingMiddleware() fiber.Handler
	GetRequestID(ctx *fiber.Ctx) string
}

type middleware struct {
	rateLimitter        *rateLimiter
	loggingMiddleware   *loggingMiddleware
	requestIDMiddleware fiber.Handler
	log                 *logrus.Logger
}

func New(logger *logrus.Logger) Middleware {
	rps := float64(defaultRequestsPerSecond)
	if v, err := strconv.ParseFloat(os.Getenv("RATE_LIMIT_RPS"), 64); err == nil && v > 0 {
		rps = v
	}

	burst := defaultBurst
	if v, err := strconv.Atoi(os.Getenv("RATE_LIMIT_BURST")); err == nil && v > 0 {
		burst = v
	}

	return NewWithLimits(logger, rate.Limit(rps), burst)
}

// NewWithLimits builds the middleware set with an explicit per-IP rate.
func NewWithLimits(logger *logrus.Logger, rps rate.Limit, burst int) Middleware {
	return &middleware{
		rateLimitter:        newRateLimiter(rps, burst),
		loggingMiddleware:   newLoggingMiddleware(logger),
		requestIDMiddleware: newRequestIDMiddleware(utils.New()),
		log:                 logger,
	}
}

func (m *middleware) GetRequestID(ctx *fiber.Ctx) string {
	requestID, ok := ctx.Locals(RequestIDKey).(string)
	if !ok || requestID == "" {
		return "unknown"
	}
	return requestID
}

func (m *middleware) NewRequestIDMiddleware() fiber.Handler {
	return m.requestIDMiddleware
}

// newRequestIDMiddleware keeps a client supplied X-Request-ID and mints a ULID
// otherwise. The id is echoed back and stored for handlers and access logs.
func newRequestIDMiddleware(u utils.IUtils) fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID := c.Get(RequestIDKey)
		if requestID == "" {
			id, err := u.NewULIDFromTimestamp(time.Now())
			if err != nil {
				id = "unknown"
			}
			requestID = id
		}

		c.Locals(RequestIDKey, requestID)
		c.Set(RequestIDKey, requestID)

		return c.Next()
	}
}
