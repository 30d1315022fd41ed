package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ListEvents lists the chart tasks of the current dataset.
// GET /v1/events
func (h *Handler) ListEvents(c echo.Context) error {
	tasks, err := h.service.Tasks(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"events": tasks,
	})
}

// GetEvent returns one record.
// GET /v1/events/:event_id
func (h *Handler) GetEvent(c echo.Context) error {
	rec, err := h.service.Record(c.Request().Context(), c.Param("event_id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, rec)
}

// GetEventGradients returns the plan and progress gradients of one record.
// GET /v1/events/:event_id/gradients
func (h *Handler) GetEventGradients(c echo.Context) error {
	g, err := h.service.Gradients(c.Request().Context(), c.Param("event_id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, g)
}
