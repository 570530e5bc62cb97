package entity

import (
	"context"
	"time"
)

type ExportFilter struct {
	StageID  *int64
	Priority string
	Source   string
	DateFrom *time.Time
	DateTo   *time.Time
}

// ExportRow is a lead with its activity counters, one spreadsheet row.
type ExportRow struct {
	Lead
	OpenTasks      int `json:"open_tasks"`
	CompletedTasks int `json:"completed_tasks"`
	CommentsCount  int `json:"comments_count"`
	CallsCount     int `json:"calls_count"`
}

type ExportRepositoryInterface interface {
	Rows(ctx context.Context, filter ExportFilter) ([]ExportRow, error)
}
