package readstore

import (
	"context"

	"gearshare/internal/infra"
	"gearshare/internal/infra/db"
	"gearshare/internal/pkg/pgconv"
	"gearshare/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const itemViewSelect = `
SELECT i.id, i.owner_id, i.name, i.description, i.available, i.created_at, i.updated_at
FROM items i`

type ItemReadStore struct {
	db db.DBTX
}

func NewItemReadStore(db db.DBTX) *ItemReadStore {
	return &ItemReadStore{db: db}
}

func (r *ItemReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ItemView, error) {
	row := r.db.QueryRow(ctx, itemViewSelect+" WHERE i.id = $1", id)

	view, err := scanItemView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("item not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find item by ID", err)
	}

	return view, nil
}

func (r *ItemReadStore) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*queries.ItemView, error) {
	query := itemViewSelect + " WHERE i.owner_id = $1 ORDER BY i.created_at DESC LIMIT $2 OFFSET $3"

	rows, err := r.db.Query(ctx, query, ownerID, limit, offset)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list items by owner", err)
	}
	defer rows.Close()

	result := []*queries.ItemView{}
	for rows.Next() {
		view, err := scanItemView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan item row", err)
		}
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate item rows", err)
	}

	return result, nil
}

func scanItemView(row pgx.Row) (*queries.ItemView, error) {
	view := &queries.ItemView{}
	err := row.Scan(
		&view.ID, &view.OwnerID, &view.Name, &view.Description,
		&view.Available, &view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return view, nil
}
