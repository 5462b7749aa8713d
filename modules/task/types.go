package task

import (
	"time"

	domain "github.com/example/taskboard/domain/task"
)

// CreateTaskRequest is the request for creating a task. CreatorID is
// injected by the caller from the authenticated identity, never taken
// from a client body.
type CreateTaskRequest struct {
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	DueDate      time.Time `json:"dueDate"`
	Priority     string    `json:"priority,omitempty"`
	Status       string    `json:"status,omitempty"`
	AssignedToID string    `json:"assignedToId"`
	CreatorID    string    `json:"creatorId"`
}

// GetTaskRequest is the request for fetching a single task.
type GetTaskRequest struct {
	ID string `json:"id"`
}

// UpdateTaskRequest is the request for a partial task update. Nil
// fields keep their prior values; only supplied fields change.
type UpdateTaskRequest struct {
	ID           string     `json:"id"`
	Title        *string    `json:"title,omitempty"`
	Description  *string    `json:"description,omitempty"`
	DueDate      *time.Time `json:"dueDate,omitempty"`
	Priority     *string    `json:"priority,omitempty"`
	Status       *string    `json:"status,omitempty"`
	AssignedToID *string    `json:"assignedToId,omitempty"`
}

// DeleteTaskRequest is the request for deleting a task.
type DeleteTaskRequest struct {
	ID string `json:"id"`
}

// DeleteTaskResponse is the response after deleting a task.
type DeleteTaskResponse struct {
	Deleted bool   `json:"deleted"`
	ID      string `json:"id"`
}

// ListTasksRequest carries the optional list filters and sort. All
// fields are independent; absent fields impose no constraint.
type ListTasksRequest struct {
	Status       string `json:"status,omitempty"`
	Priority     string `json:"priority,omitempty"`
	AssignedToID string `json:"assignedToId,omitempty"`
	CreatorID    string `json:"creatorId,omitempty"`
	Overdue      bool   `json:"overdue,omitempty"`
	SortBy       string `json:"sortBy,omitempty"`
	Order        string `json:"order,omitempty"`
}

// ListTasksResponse is the response containing the full matching set.
type ListTasksResponse struct {
	Tasks []domain.View `json:"tasks"`
	Total int           `json:"total"`
}
