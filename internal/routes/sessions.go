package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lucky-wheel/lucky_wheel/internal/game"
)

// RegisterSessionRoutes wires the spin state machine endpoints.
func RegisterSessionRoutes(r fiber.Router, h *game.Handler) {
	r.Post("/sessions", h.Start)
	r.Get("/sessions/:token", h.Get)
	r.Post("/sessions/:token/spin", h.Spin)
	r.Post("/sessions/:token/resolve", h.Resolve)
}
