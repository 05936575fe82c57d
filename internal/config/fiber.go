package config

import (
	"PresenceCoach/pkg/utils"
	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"os"
)

// bodyOverhead leaves room for multipart framing and base64 expansion around
// a frame of the maximum size.
const bodyOverhead = 2

func NewFiber(logger *logrus.Logger) *fiber.App {
	maxFrame := utils.New().MaxFileSize()

	app := fiber.New(
		fiber.Config{
			AppName:               "Presence Coach",
			BodyLimit:             int(maxFrame) * bodyOverhead,
			DisableKeepalive:      false,
			StrictRouting:         true,
			CaseSensitive:         true,
			EnablePrintRoutes:     os.Getenv("APP_ENV") == "development",
			DisableStartupMessage: os.Getenv("APP_ENV") == "test",
			JSONEncoder:           jsoniter.Marshal,
			JSONDecoder:           jsoniter.Unmarshal,
		})

	logger.WithField("body_limit", app.Config().BodyLimit).Debug("Fiber app configured")

	return app
}
