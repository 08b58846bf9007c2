package leaderboard

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes the leaderboard endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a leaderboard HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Standings lists all participants ordered by score descending.
func (h *Handler) Standings(c *fiber.Ctx) error {
	standings, err := h.service.Standings(c.UserContext())
	if err != nil {
		return fiber.NewError(http.StatusServiceUnavailable, err.Error())
	}
	return c.Status(http.StatusOK).JSON(standings)
}

// Winners lists the top three participants who have played.
func (h *Handler) Winners(c *fiber.Ctx) error {
	winners, err := h.service.Winners(c.UserContext())
	if err != nil {
		return fiber.NewError(http.StatusServiceUnavailable, err.Error())
	}
	return c.Status(http.StatusOK).JSON(winners)
}
