package history

import (
	"github.com/gofiber/fiber/v3"
)

func RegisterRoutes(r fiber.Router) {
	r.Get("/history/:paperID", HandleGet)
	r.Delete("/history/:paperID", HandleClear)
}
