package entity

import (
	"context"
	"errors"
)

const DefaultStageColor = "#3b82f6"

var (
	ErrStageNotFound = errors.New("stage not found")
	ErrLastStage     = errors.New("cannot delete the last stage")
)

// Stage is a funnel phase; lower Position comes earlier.
type Stage struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Color    string `json:"color"`
	Position int    `json:"position"`
}

type StagePatch struct {
	Name     Optional[string] `json:"name"`
	Color    Optional[string] `json:"color"`
	Position Optional[int]    `json:"position"`
}

func (p StagePatch) Empty() bool {
	return !p.Name.Set && !p.Color.Set && !p.Position.Set
}

type StageRepositoryInterface interface {
	List(ctx context.Context) ([]Stage, error)
	// Create appends the stage after the last one when position is nil.
	Create(ctx context.Context, stage *Stage, position *int) error
	Patch(ctx context.Context, id int64, patch StagePatch) error
	// Delete moves the stage's leads to the lowest-position remaining stage, then removes it.
	Delete(ctx context.Context, id int64) error
}
