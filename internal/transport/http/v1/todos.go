package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// CreateTodoRequest is the request to add a to-do item.
type CreateTodoRequest struct {
	Text string `json:"text"`
	Done bool   `json:"done"`
}

// UpdateTodoRequest changes the fields that are present.
type UpdateTodoRequest struct {
	Text *string `json:"text"`
	Done *bool   `json:"done"`
}

// ListTodos lists the to-do items of an event.
// GET /v1/events/:event_id/todos
func (h *Handler) ListTodos(c echo.Context) error {
	todos, err := h.service.ListTodos(c.Request().Context(), c.Param("event_id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"todos": todos,
	})
}

// CreateTodo adds a to-do item to an event.
// POST /v1/events/:event_id/todos
func (h *Handler) CreateTodo(c echo.Context) error {
	var req CreateTodoRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	todo, err := h.service.CreateTodo(c.Request().Context(), c.Param("event_id"), req.Text, req.Done)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, todo)
}

// UpdateTodo edits a to-do item.
// PATCH /v1/todos/:todo_id
func (h *Handler) UpdateTodo(c echo.Context) error {
	var req UpdateTodoRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if req.Text == nil && req.Done == nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "text or done is required"})
	}

	todo, err := h.service.UpdateTodo(c.Request().Context(), c.Param("todo_id"), req.Text, req.Done)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, todo)
}

// ToggleTodo flips the done flag of a to-do item.
// POST /v1/todos/:todo_id/toggle
func (h *Handler) ToggleTodo(c echo.Context) error {
	todo, err := h.service.ToggleTodo(c.Request().Context(), c.Param("todo_id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, todo)
}

// DeleteTodo removes a to-do item.
// DELETE /v1/todos/:todo_id
func (h *Handler) DeleteTodo(c echo.Context) error {
	if err := h.service.DeleteTodo(c.Request().Context(), c.Param("todo_id")); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
