package usecase

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/onedayhr/crm-api/internal/entity"
	"github.com/onedayhr/crm-api/internal/infra/queue"
)

type CaptureLeadUseCase struct {
	Repo entity.LeadRepositoryInterface
	// Queue is nil when no broker is configured.
	Queue      QueueProducerInterface
	OnCaptured func(source string)
	Now        func() time.Time
}

func (uc *CaptureLeadUseCase) Execute(ctx context.Context, input CaptureLeadInput) (*CaptureLeadOutput, error) {
	name := strings.TrimSpace(input.Name)
	phone := strings.TrimSpace(input.Phone)

	if errs := append(Required("name", name), Required("phone", phone)...); len(errs) > 0 {
		return nil, ValidationFailed(errs)
	}

	source := strings.TrimSpace(input.Source)
	if source == "" {
		source = entity.SourceMainForm
	}

	lead := &entity.Lead{
		Name:     name,
		Phone:    phone,
		Company:  OptionalText(input.Company),
		Vacancy:  OptionalText(input.Vacancy),
		Source:   source,
		Priority: entity.PriorityMedium,
	}

	if err := uc.Repo.CreateOnFirstStage(ctx, lead); err != nil {
		return nil, dbError("failed to save lead", err)
	}

	if uc.OnCaptured != nil {
		uc.OnCaptured(source)
	}

	if uc.Queue != nil {
		capturedAt := lead.CreatedAt
		if capturedAt.IsZero() && uc.Now != nil {
			capturedAt = uc.Now()
		}
		payload := queue.LeadCapturedPayload{
			LeadID:     lead.ID,
			Name:       name,
			Phone:      phone,
			Company:    strings.TrimSpace(input.Company),
			Vacancy:    strings.TrimSpace(input.Vacancy),
			Source:     source,
			CapturedAt: capturedAt,
		}
		if err := uc.Queue.PublishLeadCaptured(ctx, payload); err != nil {
			log.Printf("⚠️ [CAPTURE] lead %d saved but event not published: %v", lead.ID, err)
		}
	}

	return &CaptureLeadOutput{LeadID: lead.ID, Message: "Request submitted successfully"}, nil
}
