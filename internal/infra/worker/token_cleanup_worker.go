package worker

import (
	"context"
	"log"
	"time"
)

type InviteExpirer interface {
	DeactivateExpired(ctx context.Context, now time.Time) (int64, error)
}

type ResetTokenPurger interface {
	PurgeStale(ctx context.Context, now time.Time) (int64, error)
}

// TokenCleanupWorker deactivates expired invite links and removes used or expired reset tokens.
type TokenCleanupWorker struct {
	invites      InviteExpirer
	resets       ResetTokenPurger
	tickInterval time.Duration
	now          func() time.Time
}

func NewTokenCleanupWorker(invites InviteExpirer, resets ResetTokenPurger, interval time.Duration) *TokenCleanupWorker {
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	return &TokenCleanupWorker{
		invites:      invites,
		resets:       resets,
		tickInterval: interval,
		now:          time.Now,
	}
}

func (w *TokenCleanupWorker) Start(ctx context.Context) {
	log.Printf("🕒 Token cleanup worker started (every %s)", w.tickInterval)

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.RunOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Println("⚠️ Token cleanup worker stopped")
			return
		case <-ticker.C:
			w.RunOnce(ctx)
		}
	}
}

// RunOnce performs a single cleanup pass. Failures are logged and retried on the next tick.
func (w *TokenCleanupWorker) RunOnce(ctx context.Context) {
	now := w.now()

	if n, err := w.invites.DeactivateExpired(ctx, now); err != nil {
		log.Printf("❌ [CLEANUP] deactivate expired invites: %v", err)
	} else if n > 0 {
		log.Printf("✅ [CLEANUP] %d invite link(s) deactivated", n)
	}

	if n, err := w.resets.PurgeStale(ctx, now); err != nil {
		log.Printf("❌ [CLEANUP] purge reset tokens: %v", err)
	} else if n > 0 {
		log.Printf("✅ [CLEANUP] %d reset token(s) removed", n)
	}
}
