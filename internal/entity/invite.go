package entity

import (
	"context"
	"errors"
	"time"
)

const (
	DefaultInviteMaxUses    = 1
	DefaultInviteTTLInHours = 168
)

var (
	ErrInviteNotFound  = errors.New("invalid invite token")
	ErrInviteInactive  = errors.New("invite token is inactive")
	ErrInviteExpired   = errors.New("invite token has expired")
	ErrInviteExhausted = errors.New("invite token has reached maximum uses")
)

type Invite struct {
	ID          int64      `json:"invite_id"`
	Token       string     `json:"token"`
	CreatedBy   int64      `json:"created_by"`
	ExpiresAt   *time.Time `json:"expires_at"`
	MaxUses     int        `json:"max_uses"`
	CurrentUses int        `json:"current_uses"`
	IsActive    bool       `json:"is_active"`
}

// Usable reports why the invite cannot admit another registration at now, if it cannot.
func (i *Invite) Usable(now time.Time) error {
	if !i.IsActive {
		return ErrInviteInactive
	}
	if i.ExpiresAt != nil && now.After(*i.ExpiresAt) {
		return ErrInviteExpired
	}
	if i.CurrentUses >= i.MaxUses {
		return ErrInviteExhausted
	}
	return nil
}

type InviteRepositoryInterface interface {
	FindByToken(ctx context.Context, token string) (*Invite, error)
	Create(ctx context.Context, invite *Invite) error
	DeactivateExpired(ctx context.Context, now time.Time) (int64, error)
}
