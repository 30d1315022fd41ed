// Package v1 provides the JSON API of the venue timeline.
package v1

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/xiaot623/gogo/venueboard/internal/domain"
	"github.com/xiaot623/gogo/venueboard/internal/service"
)

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

// RegisterRoutes registers the API routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	// Dataset import/export
	e.POST("/v1/datasets/rows", h.ImportRows)
	e.POST("/v1/datasets/upload", h.UploadSpreadsheet)
	e.POST("/v1/datasets/snapshot", h.ImportSnapshot)
	e.GET("/v1/datasets/snapshot", h.ExportSnapshot)
	e.GET("/v1/datasets/current", h.GetCurrentDataset)
	e.GET("/v1/imports", h.ListImports)

	// Records
	e.GET("/v1/events", h.ListEvents)
	e.GET("/v1/events/:event_id", h.GetEvent)
	e.GET("/v1/events/:event_id/gradients", h.GetEventGradients)

	// To-do lists
	e.GET("/v1/events/:event_id/todos", h.ListTodos)
	e.POST("/v1/events/:event_id/todos", h.CreateTodo)
	e.PATCH("/v1/todos/:todo_id", h.UpdateTodo)
	e.POST("/v1/todos/:todo_id/toggle", h.ToggleTodo)
	e.DELETE("/v1/todos/:todo_id", h.DeleteTodo)

	e.GET("/health", h.Health)
}

// Health returns health status.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": "0.1.0",
	})
}

// errorStatus maps service errors to HTTP status codes.
func errorStatus(err error) int {
	var rowErr *domain.RowError
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrNoDataset):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrPredicateFailed):
		return http.StatusInternalServerError
	case errors.As(err, &rowErr), errors.Is(err, domain.ErrMalformedValue):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func fail(c echo.Context, err error) error {
	return c.JSON(errorStatus(err), map[string]string{"error": err.Error()})
}
