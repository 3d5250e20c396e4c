// Package v1 provides HTTP handlers for the intake service.
package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/abhishek-iiit/innotract/internal/service"
)

const serviceVersion = "1.0.0"

// Handler handles HTTP requests.
type Handler struct {
	service *service.Service
}

// NewHandler creates a new handler.
func NewHandler(service *service.Service) *Handler {
	return &Handler{
		service: service,
	}
}

// RegisterRoutes registers routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Root)
	e.GET("/health", h.Health)

	e.POST("/session/new", h.NewSession)
	e.POST("/chat", h.Chat)

	e.GET("/session/:session_id/messages", h.GetSessionMessages)
	e.GET("/session/:session_id/slots", h.GetSessionSlots)
}

// Root returns service status.
// GET /
func (h *Handler) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"ok":            true,
		"service":       "Innotract Chatbot",
		"version":       serviceVersion,
		"engine_status": h.engineStatus(),
	})
}

// Health returns health status.
// GET /health
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":   "healthy",
		"engine":   h.engineStatus(),
		"database": "connected",
	})
}

func (h *Handler) engineStatus() string {
	if h.service.EngineAvailable() {
		return "available"
	}
	return "unavailable"
}
