package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/onedayhr/crm-api/internal/entity"
)

const (
	msgInvalidCredentials = "Invalid email or password"
	msgResetRequested     = "If this email exists, a reset token has been sent"
)

type AuthService struct {
	Users   entity.UserRepositoryInterface
	Invites entity.InviteRepositoryInterface
	Resets  entity.PasswordResetRepositoryInterface
	Hasher  PasswordHasher
	Tokens  TokenGenerator
	// Mailer is optional; without it reset tokens are only returned in the response.
	Mailer ResetMailer

	InviteBaseURL string
	ResetBaseURL  string
	Now           func() time.Time
}

func (s *AuthService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginOutput, error) {
	email := NormalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return nil, NewDomainError(CodeValidation, "Email and password are required")
	}

	user, err := s.Users.FindByEmail(ctx, email)
	if errors.Is(err, entity.ErrUserNotFound) {
		return nil, NewDomainError(CodeUnauthorized, msgInvalidCredentials)
	}
	if err != nil {
		return nil, dbError("failed to load user", err)
	}

	if !s.Hasher.Verify(user.PasswordHash, input.Password) {
		return nil, NewDomainError(CodeUnauthorized, msgInvalidCredentials)
	}

	if err := s.Users.TouchLastLogin(ctx, user.ID); err != nil {
		return nil, dbError("failed to update last login", err)
	}

	token, err := s.Tokens.Generate()
	if err != nil {
		return nil, &TechnicalError{Code: CodeUpstream, Message: "failed to issue token", Err: err}
	}

	return &LoginOutput{
		Token: token,
		User:  UserSummary{ID: user.ID, Email: user.Email, Name: user.Name},
	}, nil
}

// Register creates an account behind an invite token. The invite check and the insert are
// separate statements, so two registrations racing on the last use can both succeed.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*RegisterOutput, error) {
	email := NormalizeEmail(input.Email)
	token := strings.TrimSpace(input.InviteToken)
	if email == "" || input.Password == "" || token == "" {
		return nil, NewDomainError(CodeValidation, "Email, password and invite_token are required")
	}
	if errs := ValidatePassword("password", input.Password); len(errs) > 0 {
		return nil, NewDomainError(CodeValidation, "Password must be at least 6 characters")
	}

	invite, err := s.Invites.FindByToken(ctx, token)
	if errors.Is(err, entity.ErrInviteNotFound) {
		return nil, NewDomainError(CodeInvalidToken, "Invalid invite token")
	}
	if err != nil {
		return nil, dbError("failed to load invite", err)
	}
	if err := invite.Usable(s.now()); err != nil {
		return nil, NewDomainError(CodeInvalidToken, sentence(err))
	}

	_, err = s.Users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, NewDomainError(CodeEmailExists, sentence(entity.ErrEmailAlreadyExists))
	case !errors.Is(err, entity.ErrUserNotFound):
		return nil, dbError("failed to check email", err)
	}

	hash, err := s.Hasher.Hash(input.Password)
	if err != nil {
		return nil, &TechnicalError{Code: CodeUpstream, Message: "failed to hash password", Err: err}
	}

	user := &entity.User{Email: email, Name: OptionalText(input.Name), PasswordHash: hash}
	err = s.Users.CreateWithInvite(ctx, user, invite.ID)
	if errors.Is(err, entity.ErrEmailAlreadyExists) {
		return nil, NewDomainError(CodeEmailExists, sentence(entity.ErrEmailAlreadyExists))
	}
	if err != nil {
		return nil, dbError("failed to create user", err)
	}

	return &RegisterOutput{UserID: user.ID, Message: "User registered successfully"}, nil
}

// GenerateInvite issues a new invite on behalf of the user identified by requesterEmail.
func (s *AuthService) GenerateInvite(ctx context.Context, requesterEmail string, input GenerateInviteInput) (*InviteOutput, error) {
	email := NormalizeEmail(requesterEmail)
	if email == "" {
		return nil, NewDomainError(CodeUnauthorized, "Authentication required")
	}

	user, err := s.Users.FindByEmail(ctx, email)
	if errors.Is(err, entity.ErrUserNotFound) {
		return nil, NewDomainError(CodeForbidden, "User not found")
	}
	if err != nil {
		return nil, dbError("failed to load user", err)
	}
	if !user.CanGenerateInvites {
		return nil, NewDomainError(CodeForbidden, "No permission to generate invites")
	}

	maxUses := entity.DefaultInviteMaxUses
	if input.MaxUses != nil {
		maxUses = *input.MaxUses
	}
	hours := entity.DefaultInviteTTLInHours
	if input.ExpiresInHours != nil {
		hours = *input.ExpiresInHours
	}
	if maxUses < 1 || hours < 1 {
		return nil, NewDomainError(CodeValidation, "max_uses and expires_in_hours must be positive")
	}

	token, err := s.Tokens.Generate()
	if err != nil {
		return nil, &TechnicalError{Code: CodeUpstream, Message: "failed to issue token", Err: err}
	}

	expiresAt := s.now().Add(time.Duration(hours) * time.Hour)
	invite := &entity.Invite{
		Token:     token,
		CreatedBy: user.ID,
		ExpiresAt: &expiresAt,
		MaxUses:   maxUses,
		IsActive:  true,
	}
	if err := s.Invites.Create(ctx, invite); err != nil {
		return nil, dbError("failed to create invite", err)
	}

	return &InviteOutput{
		InviteID:  invite.ID,
		Token:     token,
		InviteURL: s.InviteBaseURL + token,
		ExpiresAt: expiresAt,
		MaxUses:   maxUses,
	}, nil
}

// RequestPasswordReset never reveals whether the address is registered.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) (*PasswordResetOutput, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return nil, NewDomainError(CodeValidation, "Email is required")
	}

	user, err := s.Users.FindByEmail(ctx, email)
	if errors.Is(err, entity.ErrUserNotFound) {
		return &PasswordResetOutput{Message: msgResetRequested}, nil
	}
	if err != nil {
		return nil, dbError("failed to load user", err)
	}

	token, err := s.Tokens.Generate()
	if err != nil {
		return nil, &TechnicalError{Code: CodeUpstream, Message: "failed to issue token", Err: err}
	}

	expiresAt := s.now().Add(entity.PasswordResetTTL)
	if err := s.Resets.Create(ctx, &entity.PasswordResetToken{UserID: user.ID, Token: token, ExpiresAt: expiresAt}); err != nil {
		return nil, dbError("failed to store reset token", err)
	}

	if s.Mailer != nil {
		if err := s.Mailer.SendPasswordReset(user.Email, s.ResetBaseURL+token); err != nil {
			log.Printf("❌ [AUTH] reset e-mail to user %d failed: %v", user.ID, err)
		}
	}

	return &PasswordResetOutput{
		Message:   "Reset token generated successfully",
		Token:     token,
		ExpiresAt: &expiresAt,
	}, nil
}

func (s *AuthService) ResetPassword(ctx context.Context, input ResetPasswordInput) error {
	token := strings.TrimSpace(input.Token)
	if token == "" || input.NewPassword == "" {
		return NewDomainError(CodeValidation, "Token and new password are required")
	}
	if errs := ValidatePassword("new_password", input.NewPassword); len(errs) > 0 {
		return NewDomainError(CodeValidation, "Password must be at least 6 characters")
	}

	reset, err := s.Resets.FindByToken(ctx, token)
	if errors.Is(err, entity.ErrResetTokenNotFound) {
		return NewDomainError(CodeInvalidToken, sentence(err))
	}
	if err != nil {
		return dbError("failed to load reset token", err)
	}
	if err := reset.Usable(s.now()); err != nil {
		return NewDomainError(CodeInvalidToken, sentence(err))
	}

	hash, err := s.Hasher.Hash(input.NewPassword)
	if err != nil {
		return &TechnicalError{Code: CodeUpstream, Message: "failed to hash password", Err: err}
	}

	if err := s.Users.ResetPassword(ctx, reset.UserID, hash, token); err != nil {
		return dbError("failed to reset password", err)
	}
	return nil
}

// sentence capitalises a sentinel error for display.
func sentence(err error) string {
	msg := err.Error()
	if msg == "" {
		return msg
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}
