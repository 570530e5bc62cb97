package usecase

import (
	"context"

	"github.com/onedayhr/crm-api/internal/entity"
	"github.com/onedayhr/crm-api/internal/infra/queue"
)

// ChatRequest is one completion call to the language model.
type ChatRequest struct {
	System      string
	Prompt      string
	Temperature float32
	MaxTokens   int
	JSON        bool
}

type LanguageModel interface {
	Complete(ctx context.Context, req ChatRequest) (string, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) bool
}

type TokenGenerator interface {
	Generate() (string, error)
}

type ResetMailer interface {
	SendPasswordReset(to, link string) error
}

type SpreadsheetRenderer interface {
	Render(rows []entity.ExportRow) ([]byte, error)
}

type QueueProducerInterface interface {
	PublishLeadCaptured(ctx context.Context, payload queue.LeadCapturedPayload) error
}
