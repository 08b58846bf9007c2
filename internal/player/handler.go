package player

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes participant endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a player HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type validateRequest struct {
	WalletNumber string `json:"wallet_number"`
}

type registerRequest struct {
	Name         string `json:"name"`
	WalletNumber string `json:"wallet_number"`
}

type scoreRequest struct {
	Score int `json:"score"`
}

type nameRequest struct {
	Name string `json:"name"`
}

// Validate checks whether a wallet number is available or already registered.
// A registered wallet returns the existing record so the client can switch to
// the returning-participant flow.
func (h *Handler) Validate(c *fiber.Ctx) error {
	var req validateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	existing, taken, err := h.service.CheckWallet(c.UserContext(), req.WalletNumber)
	if err != nil {
		return mapError(err)
	}
	if taken {
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"valid":   false,
			"message": "this wallet number is already registered",
			"player":  existing.Public(),
		})
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"valid":   true,
		"message": "wallet number is available",
	})
}

// Register creates a new participant. A duplicate wallet yields 409 with the
// existing record in the body.
func (h *Handler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	player, err := h.service.Register(c.UserContext(), req.Name, req.WalletNumber)
	if err != nil {
		if errors.Is(err, ErrWalletTaken) {
			return c.Status(http.StatusConflict).JSON(fiber.Map{
				"message": "this wallet number is already registered",
				"player":  player.Public(),
			})
		}
		return mapError(err)
	}
	return c.Status(http.StatusCreated).JSON(player.Public())
}

// CommitScore persists a spin outcome for the player.
func (h *Handler) CommitScore(c *fiber.Ctx) error {
	var req scoreRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.CommitScore(c.UserContext(), c.Params("id"), req.Score); err != nil {
		return mapError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"message": "score updated"})
}

// Rename updates the player's display name.
func (h *Handler) Rename(c *fiber.Ctx) error {
	var req nameRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.Rename(c.UserContext(), c.Params("id"), req.Name); err != nil {
		return mapError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"message": "name updated"})
}

func mapError(err error) error {
	switch {
	case errors.Is(err, ErrInvalidWallet), errors.Is(err, ErrEmptyName):
		return fiber.NewError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrUnknownScore):
		return fiber.NewError(http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, ErrNotFound):
		return fiber.NewError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrScoreCommitted):
		return fiber.NewError(http.StatusConflict, err.Error())
	default:
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
}
