package httpserver

import (
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"weather-forecast/pkg/metrics"
)

const (
	_bodyLimit    = 64 * 1024
	_readTimeout  = 10 * time.Second
	_writeTimeout = 60 * time.Second
)

// InitFiberServer builds the app with the shared middleware stack. The write
// timeout covers a full geocode plus forecast round-trip.
func InitFiberServer(appName string) *fiber.App {
	s := fiber.New(fiber.Config{
		AppName:      appName,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
		BodyLimit:    _bodyLimit,
		ReadTimeout:  _readTimeout,
		WriteTimeout: _writeTimeout,
	})

	s.Use(recover.New(recover.Config{
		EnableStackTrace: true,
	}))
	s.Use(requestid.New())
	s.Use(cors.New())
	s.Use(metrics.Middleware())
	s.Use(healthcheck.New(healthcheck.Config{
		LivenessEndpoint:  "/manage/health",
		ReadinessEndpoint: "/manage/ready",
	}))

	return s
}
