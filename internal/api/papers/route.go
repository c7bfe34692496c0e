package papers

import (
	"github.com/gofiber/fiber/v3"
)

// RegisterRoutes registers paper-related routes on the provided router.
func RegisterRoutes(r fiber.Router) {
	r.Post("/papers", HandleUpload)
	r.Get("/papers", HandleList)
	r.Get("/papers/:paperID", HandleGet)
}
