package repository

import (
	"context"

	"gearshare/internal/domain/comment"
	"gearshare/internal/infra/db"

	"github.com/google/uuid"
)

type CommentRepository struct{}

func NewCommentRepository() *CommentRepository {
	return &CommentRepository{}
}

func (r *CommentRepository) Create(ctx context.Context, tx db.DBTX, c *comment.Comment) (uuid.UUID, error) {
	query := `
INSERT INTO comments (id, item_id, author_id, text)
VALUES ($1, $2, $3, $4)
RETURNING id`

	var id uuid.UUID
	err := tx.QueryRow(ctx, query, c.ID(), c.ItemID(), c.AuthorID(), c.Text()).Scan(&id)
	if err != nil {
		return uuid.Nil, wrapWriteErr("failed to create comment", err)
	}

	return id, nil
}
