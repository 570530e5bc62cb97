package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/onedayhr/crm-api/internal/entity"
)

const leadSelect = `
	SELECT l.id, l.name, l.phone, l.email, l.company, l.vacancy, l.source, l.priority,
	       l.stage_id, s.name, s.color, l.notes, l.created_at, l.updated_at
	FROM lead_data l
	LEFT JOIN lead_stages s ON s.id = l.stage_id
`

type scanner interface {
	Scan(dest ...any) error
}

func scanLead(row scanner, l *entity.Lead) error {
	return row.Scan(
		&l.ID, &l.Name, &l.Phone, &l.Email, &l.Company, &l.Vacancy, &l.Source, &l.Priority,
		&l.StageID, &l.StageName, &l.StageColor, &l.Notes, &l.CreatedAt, &l.UpdatedAt,
	)
}

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	query := `
		INSERT INTO lead_data (name, phone, email, company, vacancy, source, priority, stage_id, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`

	err := r.DB.QueryRowContext(ctx, query,
		lead.Name, lead.Phone, lead.Email, lead.Company, lead.Vacancy,
		lead.Source, lead.Priority, lead.StageID, lead.Notes,
	).Scan(&lead.ID, &lead.CreatedAt, &lead.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return entity.ErrStageNotFound
		}
		return fmt.Errorf("insert lead: %w", err)
	}
	return nil
}

func (r *LeadRepository) CreateOnFirstStage(ctx context.Context, lead *entity.Lead) error {
	query := `
		INSERT INTO lead_data (name, phone, company, vacancy, source, priority, stage_id)
		VALUES ($1, $2, $3, $4, $5, $6, (SELECT id FROM lead_stages ORDER BY position, id LIMIT 1))
		RETURNING id, stage_id, created_at, updated_at
	`

	err := r.DB.QueryRowContext(ctx, query,
		lead.Name, lead.Phone, lead.Company, lead.Vacancy, lead.Source, lead.Priority,
	).Scan(&lead.ID, &lead.StageID, &lead.CreatedAt, &lead.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert captured lead: %w", err)
	}
	return nil
}

func (r *LeadRepository) FindByID(ctx context.Context, id int64) (*entity.Lead, error) {
	var lead entity.Lead
	err := scanLead(r.DB.QueryRowContext(ctx, leadSelect+" WHERE l.id = $1", id), &lead)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrLeadNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find lead %d: %w", id, err)
	}
	return &lead, nil
}

// FindIDByPhone returns the most recent lead with this exact phone number.
func (r *LeadRepository) FindIDByPhone(ctx context.Context, phone string) (int64, error) {
	var id int64
	err := r.DB.QueryRowContext(ctx,
		`SELECT id FROM lead_data WHERE phone = $1 ORDER BY created_at DESC LIMIT 1`, phone,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, entity.ErrLeadNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("find lead by phone: %w", err)
	}
	return id, nil
}

func (r *LeadRepository) List(ctx context.Context, filter entity.LeadFilter) ([]entity.Lead, error) {
	var limit any
	if filter.Limit > 0 {
		limit = filter.Limit
	}

	query := leadSelect + `
		WHERE ($1::bigint IS NULL OR l.stage_id = $1)
		ORDER BY l.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.DB.QueryContext(ctx, query, filter.StageID, limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	leads := []entity.Lead{}
	for rows.Next() {
		var l entity.Lead
		if err := scanLead(rows, &l); err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		leads = append(leads, l)
	}
	return leads, rows.Err()
}

// Replace overwrites the editable contact fields; stage and source are left alone.
func (r *LeadRepository) Replace(ctx context.Context, lead *entity.Lead) error {
	query := `
		UPDATE lead_data
		SET name = $1, phone = $2, email = $3, company = $4, vacancy = $5,
		    priority = $6, notes = $7, updated_at = NOW()
		WHERE id = $8
		RETURNING updated_at
	`

	err := r.DB.QueryRowContext(ctx, query,
		lead.Name, lead.Phone, lead.Email, lead.Company, lead.Vacancy,
		lead.Priority, lead.Notes, lead.ID,
	).Scan(&lead.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.ErrLeadNotFound
	}
	if err != nil {
		return fmt.Errorf("replace lead %d: %w", lead.ID, err)
	}
	return nil
}

func leadPatchColumns(p entity.LeadPatch) []column {
	return []column{
		{"name", p.Name.Set, p.Name.Arg()},
		{"phone", p.Phone.Set, p.Phone.Arg()},
		{"email", p.Email.Set, p.Email.Arg()},
		{"company", p.Company.Set, p.Company.Arg()},
		{"vacancy", p.Vacancy.Set, p.Vacancy.Arg()},
		{"priority", p.Priority.Set, p.Priority.Arg()},
		{"notes", p.Notes.Set, p.Notes.Arg()},
		{"stage_id", p.StageID.Set, p.StageID.Arg()},
	}
}

// Patch writes only the fields present in patch. An empty patch is a no-op.
func (r *LeadRepository) Patch(ctx context.Context, id int64, patch entity.LeadPatch) error {
	query, args, ok := buildUpdate("lead_data", id, true, leadPatchColumns(patch))
	if !ok {
		return nil
	}

	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		if isForeignKeyViolation(err) {
			return entity.ErrStageNotFound
		}
		return fmt.Errorf("patch lead %d: %w", id, err)
	}
	return requireAffected(res, entity.ErrLeadNotFound)
}

func (r *LeadRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM lead_data WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete lead %d: %w", id, err)
	}
	return requireAffected(res, entity.ErrLeadNotFound)
}

func requireAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}
