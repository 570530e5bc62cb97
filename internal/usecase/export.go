package usecase

import (
	"context"
	"log"

	"github.com/onedayhr/crm-api/internal/entity"
)

// ExportFailedMarker replaces the workbook body when it cannot be rendered.
const ExportFailedMarker = "Error: spreadsheet generation failed"

type ExportService struct {
	Repo     entity.ExportRepositoryInterface
	Renderer SpreadsheetRenderer
}

func (s *ExportService) Rows(ctx context.Context, filter entity.ExportFilter) ([]entity.ExportRow, error) {
	if filter.Priority != "" && !entity.Priority(filter.Priority).Valid() {
		return nil, NewDomainError(CodeValidation, "priority must be one of low, medium, high")
	}
	rows, err := s.Repo.Rows(ctx, filter)
	if err != nil {
		return nil, dbError("failed to load leads for export", err)
	}
	if rows == nil {
		rows = []entity.ExportRow{}
	}
	return rows, nil
}

// Workbook renders the filtered leads. A rendering failure yields the marker body, not an error.
func (s *ExportService) Workbook(ctx context.Context, filter entity.ExportFilter) ([]byte, bool, error) {
	rows, err := s.Rows(ctx, filter)
	if err != nil {
		return nil, false, err
	}
	if s.Renderer == nil {
		return []byte(ExportFailedMarker), false, nil
	}
	data, err := s.Renderer.Render(rows)
	if err != nil {
		log.Printf("❌ [EXPORT] workbook rendering failed: %v", err)
		return []byte(ExportFailedMarker), false, nil
	}
	return data, true, nil
}
