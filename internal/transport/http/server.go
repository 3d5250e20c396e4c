// Package http provides the HTTP server implementation for the intake service.
package http

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/abhishek-iiit/innotract/internal/config"
	"github.com/abhishek-iiit/innotract/internal/service"
	v1 "github.com/abhishek-iiit/innotract/internal/transport/http/v1"
)

// NewServer creates and configures the HTTP server.
func NewServer(svc *service.Service, cfg *config.Config) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Debug = cfg.Debug

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Credentials only with explicit origins; a wildcard origin cannot
	// carry credentials.
	corsCfg := middleware.CORSConfig{AllowOrigins: cfg.CORSOrigins}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		corsCfg.AllowCredentials = true
	}
	e.Use(middleware.CORSWithConfig(corsCfg))

	// Handlers
	handler := v1.NewHandler(svc)
	handler.RegisterRoutes(e)

	return e
}
