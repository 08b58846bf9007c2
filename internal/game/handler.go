package game

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes the session endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a game HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type rosterEntryResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Wallet    string `json:"wallet_number"`
	Score     int    `json:"score"`
	HasPlayed bool   `json:"has_played"`
}

type sessionResponse struct {
	Token     string                `json:"token"`
	State     string                `json:"state"`
	Current   int                   `json:"current"`
	SpinCount int                   `json:"spin_count"`
	Roster    []rosterEntryResponse `json:"roster"`
}

func sessionView(sess Session) sessionResponse {
	roster := make([]rosterEntryResponse, 0, len(sess.Roster))
	for _, e := range sess.Roster {
		roster = append(roster, rosterEntryResponse{
			ID:        e.ID,
			Name:      e.Name,
			Wallet:    e.Wallet,
			Score:     e.Score,
			HasPlayed: e.HasPlayed,
		})
	}
	return sessionResponse{
		Token:     sess.Token,
		State:     sess.State,
		Current:   sess.Current,
		SpinCount: sess.SpinCount,
		Roster:    roster,
	}
}

// Start opens a session over the registered roster.
func (h *Handler) Start(c *fiber.Ctx) error {
	sess, err := h.service.Start(c.UserContext())
	if err != nil {
		if errors.Is(err, ErrEmptyRoster) {
			return fiber.NewError(http.StatusConflict, err.Error())
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusCreated).JSON(sessionView(*sess))
}

// Get returns the session snapshot.
func (h *Handler) Get(c *fiber.Ctx) error {
	sess, err := h.service.Get(c.Params("token"))
	if err != nil {
		return fiber.NewError(http.StatusNotFound, err.Error())
	}
	return c.Status(http.StatusOK).JSON(sessionView(sess))
}

// Spin starts a spin for the current participant.
func (h *Handler) Spin(c *fiber.Ctx) error {
	result, err := h.service.Spin(c.UserContext(), c.Params("token"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNoSession):
			return fiber.NewError(http.StatusNotFound, err.Error())
		case errors.Is(err, ErrNoPlayer):
			return fiber.NewError(http.StatusConflict, err.Error())
		default:
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"prize":       result.Prize,
		"duration_ms": result.Duration.Milliseconds(),
		"spin_count":  result.SpinCount,
	})
}

// Resolve commits the in-flight spin and advances the roster pointer.
func (h *Handler) Resolve(c *fiber.Ctx) error {
	result, err := h.service.Resolve(c.UserContext(), c.Params("token"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNoSession):
			return fiber.NewError(http.StatusNotFound, err.Error())
		case errors.Is(err, ErrNotSpinning), errors.Is(err, ErrNoPlayer):
			return fiber.NewError(http.StatusConflict, err.Error())
		default:
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"prize": result.Prize,
		"player": rosterEntryResponse{
			ID:        result.Player.ID,
			Name:      result.Player.Name,
			Wallet:    result.Player.Wallet,
			Score:     result.Player.Score,
			HasPlayed: result.Player.HasPlayed,
		},
		"committed": result.Committed,
		"completed": result.Completed,
	})
}
