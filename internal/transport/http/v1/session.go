package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/abhishek-iiit/innotract/internal/domain"
)

// NewSession creates a session and records the initial greeting.
// POST /session/new
func (h *Handler) NewSession(c echo.Context) error {
	var req domain.SessionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if req.UserID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "user_id is required"})
	}

	ctx := c.Request().Context()
	sessionID, err := h.service.CreateSession(ctx, req.UserID, req.Title)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to create session: " + err.Error()})
	}

	return c.JSON(http.StatusOK, domain.SessionResponse{SessionID: sessionID})
}

// GetSessionMessages retrieves the ordered transcript for a session.
// GET /session/:session_id/messages
func (h *Handler) GetSessionMessages(c echo.Context) error {
	sessionID := c.Param("session_id")

	ctx := c.Request().Context()
	messages, err := h.service.GetHistory(ctx, sessionID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"messages": messages,
	})
}

// GetSessionSlots retrieves the current slot map for a session.
// GET /session/:session_id/slots
func (h *Handler) GetSessionSlots(c echo.Context) error {
	sessionID := c.Param("session_id")

	ctx := c.Request().Context()
	slots, err := h.service.GetSlots(ctx, sessionID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"slots": slots,
	})
}
