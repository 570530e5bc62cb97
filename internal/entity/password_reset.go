package entity

import (
	"context"
	"errors"
	"time"
)

const PasswordResetTTL = time.Hour

var (
	ErrResetTokenNotFound = errors.New("invalid or expired token")
	ErrResetTokenUsed     = errors.New("token has already been used")
	ErrResetTokenExpired  = errors.New("token has expired")
)

type PasswordResetToken struct {
	UserID    int64
	Token     string
	ExpiresAt time.Time
	Used      bool
}

func (t *PasswordResetToken) Usable(now time.Time) error {
	if t.Used {
		return ErrResetTokenUsed
	}
	if now.After(t.ExpiresAt) {
		return ErrResetTokenExpired
	}
	return nil
}

type PasswordResetRepositoryInterface interface {
	Create(ctx context.Context, token *PasswordResetToken) error
	FindByToken(ctx context.Context, token string) (*PasswordResetToken, error)
	PurgeStale(ctx context.Context, now time.Time) (int64, error)
}
