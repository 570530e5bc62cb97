package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/onedayhr/crm-api/internal/entity"
)

type StageRepository struct {
	DB *sql.DB
}

func NewStageRepository(db *sql.DB) *StageRepository {
	return &StageRepository{DB: db}
}

func (r *StageRepository) List(ctx context.Context) ([]entity.Stage, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, name, color, position FROM lead_stages ORDER BY position, id`)
	if err != nil {
		return nil, fmt.Errorf("list stages: %w", err)
	}
	defer rows.Close()

	stages := []entity.Stage{}
	for rows.Next() {
		var s entity.Stage
		if err := rows.Scan(&s.ID, &s.Name, &s.Color, &s.Position); err != nil {
			return nil, fmt.Errorf("scan stage: %w", err)
		}
		stages = append(stages, s)
	}
	return stages, rows.Err()
}

func (r *StageRepository) Create(ctx context.Context, stage *entity.Stage, position *int) error {
	query := `
		INSERT INTO lead_stages (name, color, position)
		VALUES ($1, $2, COALESCE($3, (SELECT COALESCE(MAX(position), 0) + 1 FROM lead_stages)))
		RETURNING id, position
	`

	err := r.DB.QueryRowContext(ctx, query, stage.Name, stage.Color, position).Scan(&stage.ID, &stage.Position)
	if err != nil {
		return fmt.Errorf("insert stage: %w", err)
	}
	return nil
}

func (r *StageRepository) Patch(ctx context.Context, id int64, patch entity.StagePatch) error {
	query, args, ok := buildUpdate("lead_stages", id, false, []column{
		{"name", patch.Name.Set, patch.Name.Arg()},
		{"color", patch.Color.Set, patch.Color.Arg()},
		{"position", patch.Position.Set, patch.Position.Arg()},
	})
	if !ok {
		return nil
	}

	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("patch stage %d: %w", id, err)
	}
	return requireAffected(res, entity.ErrStageNotFound)
}

// Delete refuses to remove the only stage so that leads always have somewhere to go.
func (r *StageRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var exists bool
	if err := tx.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM lead_stages WHERE id = $1)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("check stage %d: %w", id, err)
	}
	if !exists {
		return entity.ErrStageNotFound
	}

	var target int64
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM lead_stages WHERE id <> $1 ORDER BY position, id LIMIT 1`, id,
	).Scan(&target)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.ErrLastStage
	}
	if err != nil {
		return fmt.Errorf("find fallback stage: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE lead_data SET stage_id = $1, updated_at = NOW() WHERE stage_id = $2`, target, id,
	); err != nil {
		return fmt.Errorf("reassign leads: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM lead_stages WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete stage %d: %w", id, err)
	}

	return tx.Commit()
}
