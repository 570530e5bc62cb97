package usecase

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/onedayhr/crm-api/internal/entity"
)

const MinPasswordLength = 6

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// ValidationFailed folds field errors into a single 400-class error naming every field.
func ValidationFailed(errs []ValidationError) *DomainError {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, e.Error())
	}
	return NewDomainError(CodeValidation, strings.Join(parts, "; "))
}

func Required(field, value string) []ValidationError {
	if strings.TrimSpace(value) == "" {
		return []ValidationError{{field, "is required"}}
	}
	return nil
}

func ValidateLeadFields(name, phone string, priority entity.Priority) []ValidationError {
	var errors []ValidationError
	errors = append(errors, Required("name", name)...)
	errors = append(errors, Required("phone", phone)...)
	if !priority.Valid() {
		errors = append(errors, ValidationError{"priority", "must be one of low, medium, high"})
	}
	return errors
}

func ValidateLeadPatch(p entity.LeadPatch) []ValidationError {
	var errors []ValidationError
	if p.Name.Set && (p.Name.Null || strings.TrimSpace(p.Name.Value) == "") {
		errors = append(errors, ValidationError{"name", "cannot be empty"})
	}
	if p.Phone.Set && (p.Phone.Null || strings.TrimSpace(p.Phone.Value) == "") {
		errors = append(errors, ValidationError{"phone", "cannot be empty"})
	}
	if p.Priority.Set && (p.Priority.Null || !p.Priority.Value.Valid()) {
		errors = append(errors, ValidationError{"priority", "must be one of low, medium, high"})
	}
	return errors
}

func ValidateStagePatch(p entity.StagePatch) []ValidationError {
	var errors []ValidationError
	if p.Name.Set && (p.Name.Null || strings.TrimSpace(p.Name.Value) == "") {
		errors = append(errors, ValidationError{"name", "cannot be empty"})
	}
	if p.Color.Set && p.Color.Null {
		errors = append(errors, ValidationError{"color", "cannot be null"})
	}
	if p.Position.Set && p.Position.Null {
		errors = append(errors, ValidationError{"position", "cannot be null"})
	}
	return errors
}

func ValidatePassword(field, password string) []ValidationError {
	if password == "" {
		return []ValidationError{{field, "is required"}}
	}
	if len(password) < MinPasswordLength {
		return []ValidationError{{field, fmt.Sprintf("must be at least %d characters", MinPasswordLength)}}
	}
	return nil
}

func ValidateEmail(email string) []ValidationError {
	if email == "" {
		return []ValidationError{{"email", "is required"}}
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return []ValidationError{{"email", "is invalid"}}
	}
	return nil
}

// NormalizeEmail matches how addresses are stored: trimmed and lowercased.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// OptionalText trims s and maps the empty string to NULL.
func OptionalText(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
