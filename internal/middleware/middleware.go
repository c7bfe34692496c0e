package middleware

import (
	"academiq/pkg/logger"
	"runtime/debug"

	"github.com/gofiber/fiber/v3"
)

// Register installs the shared middleware chain: panic recovery first, then
// an optional cap on in-flight requests. Ingestion runs in the background, so
// the cap only guards the HTTP surface.
func Register(app *fiber.App, maxInFlight int) {
	app.Use(recoverPanics())
	if maxInFlight > 0 {
		app.Use(limitInFlight(maxInFlight))
	}
}

// limitInFlight rejects requests with 503 once maxInFlight are being served.
func limitInFlight(maxInFlight int) fiber.Handler {
	slots := make(chan struct{}, maxInFlight)
	return func(c fiber.Ctx) error {
		select {
		case slots <- struct{}{}:
		default:
			return c.Status(fiber.StatusServiceUnavailable).SendString("Server is at maximum capacity")
		}
		defer func() { <-slots }()
		return c.Next()
	}
}

// recoverPanics converts handler panics into logged 500 responses.
func recoverPanics() fiber.Handler {
	return func(c fiber.Ctx) error {
		defer func() {
			if r := recover(); r != nil {
				logger.WithFields(map[string]interface{}{
					"panic":  r,
					"method": c.Method(),
					"path":   c.Path(),
					"ip":     c.IP(),
					"stack":  string(debug.Stack()),
				}).Errorf("panic recovered")

				if err := c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error":   "Internal Server Error",
					"message": "An unexpected error occurred",
				}); err != nil {
					logger.WithField("error", err).Errorf("failed to send error response")
				}
			}
		}()
		return c.Next()
	}
}
