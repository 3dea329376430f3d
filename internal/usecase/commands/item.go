package commands

import (
	"context"

	"gearshare/internal/domain/item"
	"gearshare/internal/infra"
	"gearshare/internal/infra/db"
	"gearshare/internal/pkg/errs"
	"gearshare/internal/usecase/queries"
	"gearshare/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrItemValidation = errs.New("item validation failed")

type CreateItemParams struct {
	Name        string
	Description string
	Available   bool
}

// UpdateItemParams carries a partial update; nil fields are left unchanged.
type UpdateItemParams struct {
	Name        *string
	Description *string
	Available   *bool
}

type ItemCommands interface {
	Create(ctx context.Context, ownerID uuid.UUID, params CreateItemParams) (*queries.ItemView, error)
	Update(ctx context.Context, actorID, itemID uuid.UUID, params UpdateItemParams) (*queries.ItemView, error)
}

type itemCommandsImpl struct {
	repo  ItemRepository
	items ItemReader
	users UserReader
	pool  *pgxpool.Pool
}

func NewItemCommands(repo ItemRepository, items ItemReader, users UserReader, pool *pgxpool.Pool) ItemCommands {
	return &itemCommandsImpl{
		repo:  repo,
		items: items,
		users: users,
		pool:  pool,
	}
}

func (c *itemCommandsImpl) Create(ctx context.Context, ownerID uuid.UUID, params CreateItemParams) (*queries.ItemView, error) {
	exists, err := c.users.Exists(ctx, ownerID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	entity, err := item.NewItem(ownerID, params.Name, params.Description, params.Available)
	if err != nil {
		return nil, errs.Mark(err, ErrItemValidation)
	}

	id, err := shared.RunInTx(ctx, c.pool, func(tx db.DBTX) (uuid.UUID, error) {
		return c.repo.Create(ctx, tx, entity)
	})
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return c.items.FindByID(ctx, id)
}

func (c *itemCommandsImpl) Update(ctx context.Context, actorID, itemID uuid.UUID, params UpdateItemParams) (*queries.ItemView, error) {
	view, err := c.items.FindByID(ctx, itemID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if view.OwnerID != actorID {
		return nil, ErrNotItemOwner
	}

	entity := item.ReconstructItem(view.ID, view.OwnerID, view.Name, view.Description, view.Available, view.CreatedAt, view.UpdatedAt)

	if params.Name != nil {
		if err := entity.Rename(*params.Name); err != nil {
			return nil, errs.Mark(err, ErrItemValidation)
		}
	}
	if params.Description != nil {
		if err := entity.Describe(*params.Description); err != nil {
			return nil, errs.Mark(err, ErrItemValidation)
		}
	}
	if params.Available != nil {
		entity.SetAvailable(*params.Available)
	}

	_, err = shared.RunInTx(ctx, c.pool, func(tx db.DBTX) (struct{}, error) {
		return struct{}{}, c.repo.Update(ctx, tx, entity)
	})
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return c.items.FindByID(ctx, itemID)
}
