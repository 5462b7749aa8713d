package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/mail"

	domain "github.com/example/taskboard/domain/user"
	"github.com/example/taskboard/modules/cache"
	"github.com/google/uuid"
)

var (
	// ErrInvalidCredentials is returned when login credentials are invalid.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidEmail is returned when email format is invalid.
	ErrInvalidEmail = errors.New("invalid email format")
	// ErrNameTooShort is returned when the display name is too short.
	ErrNameTooShort = errors.New("name must be at least 2 characters")
	// ErrWeakPassword is returned when password is too weak.
	ErrWeakPassword = errors.New("password must be at least 6 characters")
	// ErrPasswordTooLong is returned when password exceeds bcrypt's 72-byte limit.
	ErrPasswordTooLong = errors.New("password must be at most 72 characters")
)

const (
	directoryCacheKey  = "directory"
	profileCachePrefix = "profile:"
)

// Session is the result of a successful registration or login.
type Session struct {
	Token string         `json:"token"`
	User  domain.Summary `json:"user"`
}

// UpdateProfileInput carries the optional profile fields to change.
// A supplied password is re-hashed before storage.
type UpdateProfileInput struct {
	Name     *string
	Avatar   *string
	Password *string
}

// AuthService handles account business logic. The cache is optional:
// when absent every read goes straight to the repository, and cache
// failures never fail a request.
type AuthService struct {
	repo   *UserRepository
	hasher *PasswordHasher
	jwt    *JWTManager
	cache  *cache.Cache
}

// NewAuthService creates a new AuthService.
func NewAuthService(repo *UserRepository, hasher *PasswordHasher, jwt *JWTManager) *AuthService {
	return &AuthService{
		repo:   repo,
		hasher: hasher,
		jwt:    jwt,
	}
}

// SetCache attaches an optional cache-aside layer for the user
// directory and profiles.
func (s *AuthService) SetCache(c *cache.Cache) {
	s.cache = c
}

// Register creates a new account and returns a signed session.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*Session, error) {
	if len(name) < 2 {
		return nil, ErrNameTooShort
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidEmail
	}
	if len(password) < 6 {
		return nil, ErrWeakPassword
	}
	if len(password) > 72 {
		return nil, ErrPasswordTooLong
	}

	exists, err := s.repo.EmailExists(email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return nil, ErrUserExists
	}

	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
	}

	if err := s.repo.Create(user); err != nil {
		return nil, err
	}

	s.invalidateDirectory(ctx)
	return s.newSession(user)
}

// Login authenticates a user and returns a signed session.
func (s *AuthService) Login(_ context.Context, email, password string) (*Session, error) {
	user, err := s.repo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return s.newSession(user)
}

// ValidateToken verifies a bearer token and returns its claims.
func (s *AuthService) ValidateToken(_ context.Context, token string) (*domain.Claims, error) {
	claims, err := s.jwt.Validate(token)
	if err != nil {
		return nil, err
	}

	return &domain.Claims{
		UserID: claims.UserID,
		Email:  claims.Email,
	}, nil
}

// GetProfile retrieves a user by ID, through the cache when one is
// attached.
func (s *AuthService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	if s.cache != nil {
		var cached domain.User
		hit, err := s.cache.Get(ctx, profileCachePrefix+userID, &cached)
		if err != nil {
			log.Printf("[auth] Profile cache read failed: %v", err)
		} else if hit {
			return &cached, nil
		}
	}

	user, err := s.repo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, profileCachePrefix+userID, user); err != nil {
			log.Printf("[auth] Profile cache write failed: %v", err)
		}
	}
	return user, nil
}

// UpdateProfile applies the supplied profile fields. A new password is
// re-hashed; the email is immutable.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*domain.User, error) {
	user, err := s.repo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if len(*input.Name) < 2 {
			return nil, ErrNameTooShort
		}
		user.Name = *input.Name
	}
	if input.Avatar != nil {
		user.Avatar = *input.Avatar
	}
	if input.Password != nil {
		if len(*input.Password) < 6 {
			return nil, ErrWeakPassword
		}
		if len(*input.Password) > 72 {
			return nil, ErrPasswordTooLong
		}
		hash, err := s.hasher.Hash(*input.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = hash
	}

	if err := s.repo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	s.invalidateProfile(ctx, userID)
	s.invalidateDirectory(ctx)
	return user, nil
}

// ListUsers returns the public directory of all users, for assignment
// pickers. Passwords never leave the repository layer.
func (s *AuthService) ListUsers(ctx context.Context) ([]domain.Summary, error) {
	if s.cache != nil {
		var cached []domain.Summary
		hit, err := s.cache.Get(ctx, directoryCacheKey, &cached)
		if err != nil {
			log.Printf("[auth] Directory cache read failed: %v", err)
		} else if hit {
			return cached, nil
		}
	}

	users, err := s.repo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	summaries := make([]domain.Summary, 0, len(users))
	for _, u := range users {
		summaries = append(summaries, u.Summarize())
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, directoryCacheKey, summaries); err != nil {
			log.Printf("[auth] Directory cache write failed: %v", err)
		}
	}
	return summaries, nil
}

func (s *AuthService) newSession(user *domain.User) (*Session, error) {
	token, err := s.jwt.Generate(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &Session{
		Token: token,
		User:  user.Summarize(),
	}, nil
}

func (s *AuthService) invalidateDirectory(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, directoryCacheKey); err != nil {
		log.Printf("[auth] Directory cache invalidation failed: %v", err)
	}
}

func (s *AuthService) invalidateProfile(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, profileCachePrefix+userID); err != nil {
		log.Printf("[auth] Profile cache invalidation failed: %v", err)
	}
}
