package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/onedayhr/crm-api/internal/entity"
)

type UserRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var u entity.User
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, email, name, password_hash, can_generate_invites, last_login, created_at
		FROM users
		WHERE email = $1
	`, email).Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.CanGenerateInvites, &u.LastLogin, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &u, nil
}

func (r *UserRepository) TouchLastLogin(ctx context.Context, id int64) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE users SET last_login = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("touch last login: %w", err)
	}
	return nil
}

// CreateWithInvite inserts the user and counts one use of the invite. The invite row is not
// locked; limits were checked by the caller before this transaction started.
func (r *UserRepository) CreateWithInvite(ctx context.Context, u *entity.User, inviteID int64) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO users (email, name, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, can_generate_invites, created_at
	`, u.Email, u.Name, u.PasswordHash).Scan(&u.ID, &u.CanGenerateInvites, &u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return entity.ErrEmailAlreadyExists
		}
		log.Printf("❌ failed to insert user: %v", err)
		return fmt.Errorf("insert user: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE invite_links SET current_uses = current_uses + 1 WHERE id = $1`, inviteID,
	); err != nil {
		return fmt.Errorf("consume invite %d: %w", inviteID, err)
	}

	return tx.Commit()
}

func (r *UserRepository) ResetPassword(ctx context.Context, userID int64, passwordHash, token string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `UPDATE users SET password_hash = $1 WHERE id = $2`, passwordHash, userID)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if err := requireAffected(res, entity.ErrUserNotFound); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `UPDATE password_reset_tokens SET used = TRUE WHERE token = $1`, token); err != nil {
		return fmt.Errorf("consume reset token: %w", err)
	}

	return tx.Commit()
}

// UpsertAdmin creates or updates a user that may issue invites. An existing account keeps its
// id and gets the new password hash.
func (r *UserRepository) UpsertAdmin(ctx context.Context, u *entity.User) error {
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO users (email, name, password_hash, can_generate_invites)
		VALUES ($1, $2, $3, TRUE)
		ON CONFLICT (email) DO UPDATE
		SET password_hash = EXCLUDED.password_hash,
		    name = COALESCE(EXCLUDED.name, users.name),
		    can_generate_invites = TRUE
		RETURNING id, can_generate_invites, created_at
	`, u.Email, u.Name, u.PasswordHash).Scan(&u.ID, &u.CanGenerateInvites, &u.CreatedAt)
	if err != nil {
		return fmt.Errorf("upsert admin: %w", err)
	}
	return nil
}
