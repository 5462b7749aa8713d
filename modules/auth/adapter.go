package auth

import (
	"context"
	"encoding/json"
	"fmt"

	domain "github.com/example/taskboard/domain/user"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// AuthPort is the interface other modules use to reach account
// functionality.
type AuthPort interface {
	Register(ctx context.Context, req RegisterRequest) (*Session, error)
	Login(ctx context.Context, req LoginRequest) (*Session, error)
	ValidateToken(ctx context.Context, token string) (*domain.Claims, error)
	GetProfile(ctx context.Context, userID string) (domain.Summary, error)
	UpdateProfile(ctx context.Context, req UpdateProfileRequest) (domain.Summary, error)
	ListUsers(ctx context.Context) ([]domain.Summary, error)
}

// AuthAdapter implements AuthPort using the service container.
type AuthAdapter struct {
	container mono.ServiceContainer
}

// Compile-time interface check.
var _ AuthPort = (*AuthAdapter)(nil)

// NewAuthAdapter creates a new AuthAdapter.
func NewAuthAdapter(container mono.ServiceContainer) *AuthAdapter {
	return &AuthAdapter{
		container: container,
	}
}

// Register creates a new account and returns a session.
func (a *AuthAdapter) Register(ctx context.Context, req RegisterRequest) (*Session, error) {
	var resp SessionResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "register", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, err
	}
	return &Session{Token: resp.Token, User: resp.User}, nil
}

// Login authenticates a user and returns a session.
func (a *AuthAdapter) Login(ctx context.Context, req LoginRequest) (*Session, error) {
	var resp SessionResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "login", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, err
	}
	return &Session{Token: resp.Token, User: resp.User}, nil
}

// ValidateToken validates a bearer token and returns its claims.
func (a *AuthAdapter) ValidateToken(ctx context.Context, token string) (*domain.Claims, error) {
	req := ValidateTokenRequest{Token: token}
	var resp ValidateTokenResponse

	if err := helper.CallRequestReplyService(
		ctx, a.container, "validate-token", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, fmt.Errorf("validate-token request failed: %w", err)
	}

	if !resp.Valid {
		return nil, fmt.Errorf("token validation failed: %s", resp.Error)
	}

	return &domain.Claims{
		UserID: resp.UserID,
		Email:  resp.Email,
	}, nil
}

// GetProfile retrieves the public view of a user.
func (a *AuthAdapter) GetProfile(ctx context.Context, userID string) (domain.Summary, error) {
	req := GetProfileRequest{UserID: userID}
	var resp ProfileResponse

	if err := helper.CallRequestReplyService(
		ctx, a.container, "get-profile", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return domain.Summary{}, err
	}
	return resp.User, nil
}

// UpdateProfile applies a partial profile update.
func (a *AuthAdapter) UpdateProfile(ctx context.Context, req UpdateProfileRequest) (domain.Summary, error) {
	var resp ProfileResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "update-profile", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return domain.Summary{}, err
	}
	return resp.User, nil
}

// ListUsers returns the public user directory.
func (a *AuthAdapter) ListUsers(ctx context.Context) ([]domain.Summary, error) {
	req := ListUsersRequest{}
	var resp ListUsersResponse

	if err := helper.CallRequestReplyService(
		ctx, a.container, "list-users", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, err
	}
	return resp.Users, nil
}
