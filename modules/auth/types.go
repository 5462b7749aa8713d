package auth

import domain "github.com/example/taskboard/domain/user"

// RegisterRequest is the request for the register service.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the request for the login service.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionResponse is returned by both register and login.
type SessionResponse struct {
	Token string         `json:"token"`
	User  domain.Summary `json:"user"`
}

// ValidateTokenRequest is the request for the validate-token service.
type ValidateTokenRequest struct {
	Token string `json:"token"`
}

// ValidateTokenResponse is the response for the validate-token service.
// Validation failures are reported in the body, not as service errors.
type ValidateTokenResponse struct {
	Valid  bool   `json:"valid"`
	UserID string `json:"userId,omitempty"`
	Email  string `json:"email,omitempty"`
	Error  string `json:"error,omitempty"`
}

// GetProfileRequest is the request for the get-profile service.
type GetProfileRequest struct {
	UserID string `json:"userId"`
}

// UpdateProfileRequest is the request for the update-profile service.
// Nil fields are left unchanged.
type UpdateProfileRequest struct {
	UserID   string  `json:"userId"`
	Name     *string `json:"name,omitempty"`
	Avatar   *string `json:"avatar,omitempty"`
	Password *string `json:"password,omitempty"`
}

// ProfileResponse is the public view of a single user.
type ProfileResponse struct {
	User domain.Summary `json:"user"`
}

// ListUsersRequest is the request for the list-users service.
type ListUsersRequest struct{}

// ListUsersResponse is the response for the list-users service.
type ListUsersResponse struct {
	Users []domain.Summary `json:"users"`
	Total int              `json:"total"`
}
