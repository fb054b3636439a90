package handlers

import (
	"net/http"

	"github.com/curaan-web/internal/services"
	"github.com/labstack/echo/v4"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	therapySearch *services.TherapySearchService
	backendURL    string
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(therapySearch *services.TherapySearchService, backendURL string) *HealthHandler {
	return &HealthHandler{
		therapySearch: therapySearch,
		backendURL:    backendURL,
	}
}

// HealthResponse is the response for basic health check
type HealthResponse struct {
	Status string `json:"status"`
}

// BackendHealthResponse is the response for the search backend health check
type BackendHealthResponse struct {
	Status  string `json:"status"`
	Backend string `json:"backend"`
}

// Health handles GET /health
func (h *HealthHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{
		Status: "healthy",
	})
}

// BackendHealth handles GET /health/backend
func (h *HealthHandler) BackendHealth(c echo.Context) error {
	if err := h.therapySearch.BackendHealth(c.Request().Context()); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "error",
			"error":  "search backend not available",
		})
	}

	return c.JSON(http.StatusOK, BackendHealthResponse{
		Status:  "connected",
		Backend: h.backendURL,
	})
}

// RegisterRoutes registers health check routes
func (h *HealthHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/health", h.Health)
	g.GET("/health/backend", h.BackendHealth)
}
