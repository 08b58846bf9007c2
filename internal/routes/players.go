package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lucky-wheel/lucky_wheel/internal/player"
)

// RegisterPlayerRoutes wires participant endpoints. Registration carries the
// rate limiter; it is the only endpoint a public page can spam meaningfully.
func RegisterPlayerRoutes(r fiber.Router, h *player.Handler, rateLimiter fiber.Handler) {
	r.Post("/players/validate", h.Validate)
	r.Post("/players", rateLimiter, h.Register)
	r.Put("/players/:id/score", h.CommitScore)
	r.Put("/players/:id/name", h.Rename)
}
