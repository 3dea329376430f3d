package repository

import (
	"context"

	"gearshare/internal/domain/item"
	"gearshare/internal/infra/db"

	"github.com/google/uuid"
)

type ItemRepository struct{}

func NewItemRepository() *ItemRepository {
	return &ItemRepository{}
}

func (r *ItemRepository) Create(ctx context.Context, tx db.DBTX, it *item.Item) (uuid.UUID, error) {
	query := `
INSERT INTO items (id, owner_id, name, description, available)
VALUES ($1, $2, $3, $4, $5)
RETURNING id`

	var id uuid.UUID
	err := tx.QueryRow(ctx, query,
		it.ID(), it.OwnerID(), it.Name(), it.Description(), it.Available(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, wrapWriteErr("failed to create item", err)
	}

	return id, nil
}

func (r *ItemRepository) Update(ctx context.Context, tx db.DBTX, it *item.Item) error {
	query := `
UPDATE items
SET name = $2, description = $3, available = $4, updated_at = now()
WHERE id = $1`

	if _, err := tx.Exec(ctx, query, it.ID(), it.Name(), it.Description(), it.Available()); err != nil {
		return wrapWriteErr("failed to update item", err)
	}

	return nil
}
