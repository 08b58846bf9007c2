package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lucky-wheel/lucky_wheel/internal/leaderboard"
)

// RegisterLeaderboardRoutes wires the standings and winners queries.
func RegisterLeaderboardRoutes(r fiber.Router, h *leaderboard.Handler) {
	r.Get("/players", h.Standings)
	r.Get("/winners", h.Winners)
}
