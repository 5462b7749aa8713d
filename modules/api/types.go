package api

import "time"

// ErrorResponse is the JSON error body returned by every handler.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// RegisterBody is the request body for POST /api/auth/register.
type RegisterBody struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginBody is the request body for POST /api/auth/login.
type LoginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileBody is the request body for PUT /api/auth/profile.
// Absent fields are left unchanged.
type UpdateProfileBody struct {
	Name     *string `json:"name"`
	Avatar   *string `json:"avatar"`
	Password *string `json:"password"`
}

// CreateTaskBody is the request body for POST /api/tasks. The creator
// is always taken from the authenticated identity, never from the body.
type CreateTaskBody struct {
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	DueDate      time.Time `json:"dueDate"`
	Priority     string    `json:"priority"`
	Status       string    `json:"status"`
	AssignedToID string    `json:"assignedToId"`
}

// UpdateTaskBody is the request body for PUT /api/tasks/:id. Absent
// fields keep their prior values.
type UpdateTaskBody struct {
	Title        *string    `json:"title"`
	Description  *string    `json:"description"`
	DueDate      *time.Time `json:"dueDate"`
	Priority     *string    `json:"priority"`
	Status       *string    `json:"status"`
	AssignedToID *string    `json:"assignedToId"`
}
