package user

import (
	"time"
)

// User represents a registered account.
type User struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Name         string    `gorm:"size:100;not null" json:"name"`
	Email        string    `gorm:"uniqueIndex;not null;size:255" json:"email"`
	PasswordHash string    `gorm:"not null;type:text" json:"-"`
	Avatar       string    `gorm:"size:500" json:"avatar,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// TableName returns the table name for the User entity.
func (User) TableName() string {
	return "users"
}

// Summary is the public projection of a user embedded into expanded
// task references and auth responses. It never carries the password hash.
type Summary struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`
}

// Summarize returns the public projection of the user.
func (u *User) Summarize() Summary {
	return Summary{
		ID:     u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Avatar: u.Avatar,
	}
}

// Claims represents the identity carried by a verified bearer token.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}
