package entity

import (
	"context"
	"errors"
	"time"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("user with this email already exists")
)

type User struct {
	ID                 int64      `json:"id"`
	Email              string     `json:"email"`
	Name               *string    `json:"name"`
	PasswordHash       string     `json:"-"`
	CanGenerateInvites bool       `json:"can_generate_invites"`
	LastLogin          *time.Time `json:"last_login,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
}

type UserRepositoryInterface interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	TouchLastLogin(ctx context.Context, id int64) error
	// CreateWithInvite inserts the user and consumes one invite use in a single transaction.
	CreateWithInvite(ctx context.Context, user *User, inviteID int64) error
	// ResetPassword stores the new hash and marks the reset token used in a single transaction.
	ResetPassword(ctx context.Context, userID int64, passwordHash, token string) error
}
