package api

import (
	"log"
	"strings"

	"github.com/example/taskboard/modules/task"
	"github.com/gofiber/fiber/v2"
)

// CreateTask handles POST /api/tasks. The authenticated caller becomes
// the creator regardless of the request body.
func (h *Handlers) CreateTask(c *fiber.Ctx) error {
	claims, ok := currentClaims(c)
	if !ok {
		return unauthorized(c)
	}

	var req CreateTaskBody
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	created, err := h.taskAdapter.Create(c.UserContext(), task.CreateTaskRequest{
		Title:        req.Title,
		Description:  req.Description,
		DueDate:      req.DueDate,
		Priority:     req.Priority,
		Status:       req.Status,
		AssignedToID: req.AssignedToID,
		CreatorID:    claims.UserID,
	})
	if err != nil {
		return h.handleTaskError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// GetTask handles GET /api/tasks/:id.
func (h *Handlers) GetTask(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Task ID is required")
	}

	found, err := h.taskAdapter.Get(c.UserContext(), id)
	if err != nil {
		return h.handleTaskError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(found)
}

// ListTasks handles GET /api/tasks. Every query parameter is optional;
// the response always carries the full matching set.
func (h *Handlers) ListTasks(c *fiber.Ctx) error {
	req := task.ListTasksRequest{
		Status:       c.Query("status"),
		Priority:     c.Query("priority"),
		AssignedToID: c.Query("assignedTo"),
		CreatorID:    c.Query("creator"),
		Overdue:      c.Query("overdue") == "true",
		SortBy:       c.Query("sortBy"),
		Order:        c.Query("order"),
	}

	tasks, err := h.taskAdapter.List(c.UserContext(), req)
	if err != nil {
		return h.handleTaskError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"tasks": tasks,
		"total": len(tasks),
	})
}

// UpdateTask handles PUT /api/tasks/:id. Only fields present in the
// body change.
func (h *Handlers) UpdateTask(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Task ID is required")
	}

	var req UpdateTaskBody
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	updated, err := h.taskAdapter.Update(c.UserContext(), task.UpdateTaskRequest{
		ID:           id,
		Title:        req.Title,
		Description:  req.Description,
		DueDate:      req.DueDate,
		Priority:     req.Priority,
		Status:       req.Status,
		AssignedToID: req.AssignedToID,
	})
	if err != nil {
		return h.handleTaskError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(updated)
}

// DeleteTask handles DELETE /api/tasks/:id. Deletion is permanent.
func (h *Handlers) DeleteTask(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Task ID is required")
	}

	if err := h.taskAdapter.Delete(c.UserContext(), id); err != nil {
		return h.handleTaskError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// handleTaskError maps task service errors onto HTTP statuses.
func (h *Handlers) handleTaskError(c *fiber.Ctx, err error) error {
	errStr := err.Error()

	switch {
	case strings.Contains(errStr, "task not found"):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error:   "not_found",
			Message: "Task not found",
		})
	case strings.Contains(errStr, "required"),
		strings.Contains(errStr, "invalid"),
		strings.Contains(errStr, "must be"),
		strings.Contains(errStr, "exceeds"):
		return badRequest(c, capitalize(errStr))
	default:
		log.Printf("[api] Internal error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "internal_error",
			Message: "An internal error occurred",
		})
	}
}
