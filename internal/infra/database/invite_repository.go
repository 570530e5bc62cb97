package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/onedayhr/crm-api/internal/entity"
)

type InviteRepository struct {
	DB *sql.DB
}

func NewInviteRepository(db *sql.DB) *InviteRepository {
	return &InviteRepository{DB: db}
}

func (r *InviteRepository) FindByToken(ctx context.Context, token string) (*entity.Invite, error) {
	var i entity.Invite
	var createdBy sql.NullInt64
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, token, created_by, expires_at, max_uses, current_uses, is_active
		FROM invite_links
		WHERE token = $1
	`, token).Scan(&i.ID, &i.Token, &createdBy, &i.ExpiresAt, &i.MaxUses, &i.CurrentUses, &i.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrInviteNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find invite: %w", err)
	}
	i.CreatedBy = createdBy.Int64
	return &i, nil
}

func (r *InviteRepository) Create(ctx context.Context, i *entity.Invite) error {
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO invite_links (token, created_by, expires_at, max_uses, current_uses, is_active)
		VALUES ($1, $2, $3, $4, 0, TRUE)
		RETURNING id
	`, i.Token, i.CreatedBy, i.ExpiresAt, i.MaxUses).Scan(&i.ID)
	if err != nil {
		return fmt.Errorf("insert invite: %w", err)
	}
	return nil
}

// DeactivateExpired switches off invites past their expiry and returns how many changed.
func (r *InviteRepository) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE invite_links SET is_active = FALSE WHERE is_active AND expires_at IS NOT NULL AND expires_at < $1`, now,
	)
	if err != nil {
		return 0, fmt.Errorf("deactivate invites: %w", err)
	}
	return res.RowsAffected()
}
