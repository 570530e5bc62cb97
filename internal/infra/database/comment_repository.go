package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/onedayhr/crm-api/internal/entity"
)

type CommentRepository struct {
	DB *sql.DB
}

func NewCommentRepository(db *sql.DB) *CommentRepository {
	return &CommentRepository{DB: db}
}

func (r *CommentRepository) ListByLead(ctx context.Context, leadID int64) ([]entity.Comment, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, lead_id, author_name, text, created_at FROM lead_comments WHERE lead_id = $1 ORDER BY created_at DESC`,
		leadID,
	)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	comments := []entity.Comment{}
	for rows.Next() {
		var c entity.Comment
		if err := rows.Scan(&c.ID, &c.LeadID, &c.AuthorName, &c.Text, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func (r *CommentRepository) Create(ctx context.Context, c *entity.Comment) error {
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO lead_comments (lead_id, author_name, text) VALUES ($1, $2, $3) RETURNING id, created_at`,
		c.LeadID, c.AuthorName, c.Text,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return entity.ErrLeadNotFound
		}
		return fmt.Errorf("insert comment: %w", err)
	}
	return nil
}
