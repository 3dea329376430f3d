package readstore

import (
	"context"

	"gearshare/internal/infra"
	"gearshare/internal/infra/db"
	"gearshare/internal/pkg/pgconv"
	"gearshare/internal/usecase/queries"

	"github.com/google/uuid"
)

type CommentReadStore struct {
	db db.DBTX
}

func NewCommentReadStore(db db.DBTX) *CommentReadStore {
	return &CommentReadStore{db: db}
}

func (r *CommentReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.CommentView, error) {
	query := `
SELECT c.id, c.item_id, c.author_id, u.name, c.text, c.created_at
FROM comments c
JOIN users u ON u.id = c.author_id
WHERE c.id = $1`

	view := &queries.CommentView{}
	err := r.db.QueryRow(ctx, query, id).Scan(&view.ID, &view.ItemID, &view.AuthorID, &view.AuthorName, &view.Text, &view.CreatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("comment not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find comment by ID", err)
	}

	return view, nil
}

func (r *CommentReadStore) ListByItem(ctx context.Context, itemID uuid.UUID) ([]*queries.CommentView, error) {
	query := `
SELECT c.id, c.item_id, c.author_id, u.name, c.text, c.created_at
FROM comments c
JOIN users u ON u.id = c.author_id
WHERE c.item_id = $1
ORDER BY c.created_at DESC`

	rows, err := r.db.Query(ctx, query, itemID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list comments", err)
	}
	defer rows.Close()

	result := []*queries.CommentView{}
	for rows.Next() {
		view := &queries.CommentView{}
		if err := rows.Scan(&view.ID, &view.ItemID, &view.AuthorID, &view.AuthorName, &view.Text, &view.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan comment row", err)
		}
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate comment rows", err)
	}

	return result, nil
}
