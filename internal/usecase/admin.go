package usecase

import (
	"context"

	"github.com/onedayhr/crm-api/internal/entity"
)

type AdminStore interface {
	UpsertAdmin(ctx context.Context, u *entity.User) error
}

type BootstrapAdminInput struct {
	Email    string
	Password string
	Name     string
}

// BootstrapAdmin creates or updates an account allowed to generate invites.
func BootstrapAdmin(ctx context.Context, store AdminStore, hasher PasswordHasher, input BootstrapAdminInput) (*entity.User, error) {
	email := NormalizeEmail(input.Email)
	errs := append(ValidateEmail(email), ValidatePassword("password", input.Password)...)
	if len(errs) > 0 {
		return nil, ValidationFailed(errs)
	}

	hash, err := hasher.Hash(input.Password)
	if err != nil {
		return nil, &TechnicalError{Code: CodeUpstream, Message: "failed to hash password", Err: err}
	}

	user := &entity.User{Email: email, Name: OptionalText(input.Name), PasswordHash: hash}
	if err := store.UpsertAdmin(ctx, user); err != nil {
		return nil, dbError("failed to save admin", err)
	}
	return user, nil
}
