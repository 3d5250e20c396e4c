package v1

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/abhishek-iiit/innotract/internal/domain"
	"github.com/abhishek-iiit/innotract/internal/service"
)

// Chat processes one conversation turn.
// POST /chat
func (h *Handler) Chat(c echo.Context) error {
	var req domain.ChatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	ctx := c.Request().Context()
	result, err := h.service.Chat(ctx, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEngineUnavailable):
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": err.Error()})
		case errors.Is(err, service.ErrMessageRequired), errors.Is(err, service.ErrMessageBlocked):
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		case errors.Is(err, service.ErrSessionNotFound):
			return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
		default:
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "chat processing failed: " + err.Error()})
		}
	}

	return c.JSON(http.StatusOK, result)
}
