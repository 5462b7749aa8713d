package auth

import (
	"testing"
	"time"
)

func TestJWTManager_GenerateAndValidate(t *testing.T) {
	config := JWTConfig{
		SecretKey:     "test-secret-key",
		TokenDuration: 24 * time.Hour,
		Issuer:        "test-issuer",
	}
	manager := NewJWTManager(config)

	userID := "user-123"
	email := "test@example.com"

	token, err := manager.Generate(userID, email)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if token == "" {
		t.Error("Generate() returned empty token")
	}

	claims, err := manager.Validate(token)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if claims.UserID != userID {
		t.Errorf("claims.UserID = %v, want %v", claims.UserID, userID)
	}
	if claims.Email != email {
		t.Errorf("claims.Email = %v, want %v", claims.Email, email)
	}
	if claims.Issuer != config.Issuer {
		t.Errorf("claims.Issuer = %v, want %v", claims.Issuer, config.Issuer)
	}
}

func TestJWTManager_InvalidToken(t *testing.T) {
	manager := NewJWTManager(DefaultJWTConfig())

	tests := []struct {
		name  string
		token string
	}{
		{
			name:  "empty token",
			token: "",
		},
		{
			name:  "random string",
			token: "not.a.valid.token",
		},
		{
			name:  "malformed jwt",
			token: "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.invalid",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := manager.Validate(tt.token)
			if err == nil {
				t.Error("Validate() should return error for invalid token")
			}
		})
	}
}

func TestJWTManager_WrongSecretKey(t *testing.T) {
	manager1 := NewJWTManager(JWTConfig{
		SecretKey:     "secret-key-1",
		TokenDuration: 24 * time.Hour,
		Issuer:        "test-issuer",
	})
	manager2 := NewJWTManager(JWTConfig{
		SecretKey:     "secret-key-2",
		TokenDuration: 24 * time.Hour,
		Issuer:        "test-issuer",
	})

	token, err := manager1.Generate("user-123", "test@example.com")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	_, err = manager2.Validate(token)
	if err == nil {
		t.Error("Validate() should fail with different secret key")
	}
}

func TestJWTManager_ExpiredToken(t *testing.T) {
	manager := NewJWTManager(JWTConfig{
		SecretKey:     "test-secret-key",
		TokenDuration: 1 * time.Millisecond,
		Issuer:        "test-issuer",
	})

	token, err := manager.Generate("user-123", "test@example.com")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	// Wait for token to expire
	time.Sleep(10 * time.Millisecond)

	_, err = manager.Validate(token)
	if err == nil {
		t.Error("Validate() should fail for expired token")
	}
	if err != ErrExpiredToken {
		t.Errorf("expected ErrExpiredToken, got %v", err)
	}
}

func TestJWTManager_TokenDuration(t *testing.T) {
	manager := NewJWTManager(JWTConfig{
		SecretKey:     "test-secret-key",
		TokenDuration: 24 * time.Hour,
		Issuer:        "test-issuer",
	})

	expected := int64(24 * 60 * 60)
	if got := manager.TokenDuration(); got != expected {
		t.Errorf("TokenDuration() = %v, want %v", got, expected)
	}
}
