package queries

import (
	"context"
	"time"

	"gearshare/internal/infra"
	"gearshare/internal/pkg/clock"
	"gearshare/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrItemNotFound = errs.New("item not found")

type ItemReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ItemView, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*ItemView, error)
}

type CommentReadStore interface {
	ListByItem(ctx context.Context, itemID uuid.UUID) ([]*CommentView, error)
}

// LastNextStore resolves the most recent past and nearest future approved
// booking per item, relative to a reference instant.
type LastNextStore interface {
	Last(ctx context.Context, itemID uuid.UUID, now time.Time) (*BookingRef, error)
	Next(ctx context.Context, itemID uuid.UUID, now time.Time) (*BookingRef, error)
	LastBatch(ctx context.Context, itemIDs []uuid.UUID, now time.Time) (map[uuid.UUID]*BookingRef, error)
	NextBatch(ctx context.Context, itemIDs []uuid.UUID, now time.Time) (map[uuid.UUID]*BookingRef, error)
}

type ItemQueries interface {
	// GetByID returns item details. Last/next booking resolution is
	// owner-only; other viewers still get the comments.
	GetByID(ctx context.Context, actorID, itemID uuid.UUID) (*ItemDetailsView, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, page Page) ([]*ItemDetailsView, error)
}

type itemQueriesImpl struct {
	items    ItemReadStore
	comments CommentReadStore
	lastNext LastNextStore
	users    UserExistsStore
	clock    clock.Clock
}

func NewItemQueries(items ItemReadStore, comments CommentReadStore, lastNext LastNextStore, users UserExistsStore, clock clock.Clock) ItemQueries {
	return &itemQueriesImpl{
		items:    items,
		comments: comments,
		lastNext: lastNext,
		users:    users,
		clock:    clock,
	}
}

func (q *itemQueriesImpl) GetByID(ctx context.Context, actorID, itemID uuid.UUID) (*ItemDetailsView, error) {
	itemView, err := q.items.FindByID(ctx, itemID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	details := &ItemDetailsView{ItemView: *itemView}

	if itemView.OwnerID == actorID {
		now := q.clock.Now()

		if details.LastBooking, err = q.lastNext.Last(ctx, itemID, now); err != nil {
			return nil, err
		}
		if details.NextBooking, err = q.lastNext.Next(ctx, itemID, now); err != nil {
			return nil, err
		}
	}

	if details.Comments, err = q.comments.ListByItem(ctx, itemID); err != nil {
		return nil, err
	}

	return details, nil
}

func (q *itemQueriesImpl) ListByOwner(ctx context.Context, ownerID uuid.UUID, page Page) ([]*ItemDetailsView, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}

	exists, err := q.users.Exists(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	items, err := q.items.ListByOwner(ctx, ownerID, page.Size, page.Offset())
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return []*ItemDetailsView{}, nil
	}

	ids := make([]uuid.UUID, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}

	// Resolve last/next for the whole page in two queries instead of 2N.
	now := q.clock.Now()
	lasts, err := q.lastNext.LastBatch(ctx, ids, now)
	if err != nil {
		return nil, err
	}
	nexts, err := q.lastNext.NextBatch(ctx, ids, now)
	if err != nil {
		return nil, err
	}

	result := make([]*ItemDetailsView, len(items))
	for i, it := range items {
		comments, err := q.comments.ListByItem(ctx, it.ID)
		if err != nil {
			return nil, err
		}
		result[i] = &ItemDetailsView{
			ItemView:    *it,
			LastBooking: lasts[it.ID],
			NextBooking: nexts[it.ID],
			Comments:    comments,
		}
	}

	return result, nil
}
