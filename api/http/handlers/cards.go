package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/artem13815/trello/api/http/presenter"
	"github.com/artem13815/trello/pkg/card"
)

type CardHandler struct {
	uc card.UseCase
}

func NewCardHandler(uc card.UseCase) *CardHandler { return &CardHandler{uc: uc} }

// cardDTO fixes the JSON field order: id, title, description, date, status, priority.
type cardDTO struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Date        *string `json:"date"`
	Status      string  `json:"status"`
	Priority    string  `json:"priority"`
}

func toCardDTO(c card.Card) cardDTO {
	dto := cardDTO{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Status:      c.Status,
		Priority:    c.Priority,
	}
	if !c.Date.IsZero() {
		d := c.Date.Format("2006-01-02")
		dto.Date = &d
	}
	return dto
}

// List returns the cards, all of them unless ?limit= is given.
// @Summary List cards
// @Tags    cards
// @Produce json
// @Param   limit  query int false "page size (1..200)"
// @Param   offset query int false "rows to skip"
// @Security BearerAuth
// @Success 200 {array} cardDTO
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 403 {object} presenter.ErrorResponse
// @Router  /cards/ [get]
func (h *CardHandler) List(c *fiber.Ctx) error {
	limit, offset := parseLimitOffset(c, 0)
	cards, err := h.uc.List(c.UserContext(), limit, offset)
	if err != nil {
		log.WithContext(c.UserContext()).Errorw("list cards failed", "error", err)
		return presenter.Error(c, http.StatusInternalServerError, "failed to list cards")
	}
	out := make([]cardDTO, 0, len(cards))
	for _, cd := range cards {
		out = append(out, toCardDTO(cd))
	}
	return presenter.JSON(c, http.StatusOK, out)
}

// Index is the plain-text landing page.
func Index(c *fiber.Ctx) error {
	return c.SendString("Welcome to the cards board!")
}
