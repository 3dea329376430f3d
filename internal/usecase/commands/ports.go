package commands

import (
	"context"
	"time"

	"gearshare/internal/domain/booking"
	"gearshare/internal/domain/comment"
	"gearshare/internal/domain/item"
	"gearshare/internal/domain/user"
	"gearshare/internal/infra/db"
	"gearshare/internal/usecase/queries"

	"github.com/google/uuid"
)

// Write-side repositories. Each method runs on the given DBTX so callers
// control transaction boundaries.

type BookingRepository interface {
	Create(ctx context.Context, tx db.DBTX, b *booking.Booking) (uuid.UUID, error)
	// UpdateStatusIfWaiting performs the conditional terminal transition and
	// returns the number of rows changed; zero means a concurrent decision won.
	UpdateStatusIfWaiting(ctx context.Context, tx db.DBTX, id uuid.UUID, status booking.Status) (int64, error)
}

type ItemRepository interface {
	Create(ctx context.Context, tx db.DBTX, it *item.Item) (uuid.UUID, error)
	Update(ctx context.Context, tx db.DBTX, it *item.Item) error
}

type UserRepository interface {
	Create(ctx context.Context, tx db.DBTX, u *user.User) (uuid.UUID, error)
}

type CommentRepository interface {
	Create(ctx context.Context, tx db.DBTX, c *comment.Comment) (uuid.UUID, error)
}

// Read-side dependencies of the command handlers.

type ItemReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*queries.ItemView, error)
}

type UserReader interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

type BookingReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error)
	// HasFinishedApprovedBooking reports whether the user completed an
	// approved booking of the item with end <= before.
	HasFinishedApprovedBooking(ctx context.Context, bookerID, itemID uuid.UUID, before time.Time) (bool, error)
}
