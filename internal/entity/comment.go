package entity

import (
	"context"
	"time"
)

const DefaultCommentAuthor = "HR Manager"

type Comment struct {
	ID         int64     `json:"id"`
	LeadID     int64     `json:"lead_id"`
	AuthorName string    `json:"author_name"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"created_at"`
}

type CommentRepositoryInterface interface {
	ListByLead(ctx context.Context, leadID int64) ([]Comment, error)
	Create(ctx context.Context, comment *Comment) error
}
