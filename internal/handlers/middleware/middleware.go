package middleware

import (
	"time"

	"server/config"
	"server/internal/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const requestIDKey = "requestId"

type Middleware struct {
	config config.Config
	log    logger.Logger
}

func New(config config.Config) Middleware {
	return Middleware{
		config: config,
		log:    logger.New("middleware"),
	}
}

// RequestID tags every request with a unique id, echoed in the
// X-Request-Id response header and available to downstream handlers.
func (m Middleware) RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := uuid.NewString()
		c.Locals(requestIDKey, id)
		c.Set("X-Request-Id", id)
		return c.Next()
	}
}

// RequestLogger writes one structured log line per request.
func (m Middleware) RequestLogger() fiber.Handler {
	log := m.log.Function("RequestLogger")
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		log.Info("request",
			"requestId", c.Locals(requestIDKey),
			"method", c.Method(),
			"path", c.Path(),
			"status", c.Response().StatusCode(),
			"durationMs", time.Since(start).Milliseconds(),
		)
		return err
	}
}
