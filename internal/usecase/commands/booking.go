package commands

import (
	"context"
	"time"

	"gearshare/internal/domain/booking"
	"gearshare/internal/infra"
	"gearshare/internal/infra/db"
	"gearshare/internal/pkg/errs"
	"gearshare/internal/pkg/metrics"
	"gearshare/internal/usecase/queries"
	"gearshare/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrUserNotFound            = errs.New("user not found")
	ErrItemNotFound            = errs.New("item not found")
	ErrBookingNotFound         = errs.New("booking not found")
	ErrInvalidPeriod           = errs.New("invalid booking period")
	ErrItemUnavailable         = errs.New("item is not available for booking")
	ErrOwnItemBooking          = errs.New("owner cannot book their own item")
	ErrNotItemOwner            = errs.New("only the item owner can decide a booking")
	ErrAlreadyDecided          = errs.New("booking is already decided")
	ErrBookingDecisionConflict = errs.New("booking was decided concurrently")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

type CreateBookingParams struct {
	ItemID uuid.UUID
	Start  time.Time
	End    time.Time
}

type BookingCommands interface {
	Create(ctx context.Context, actorID uuid.UUID, params CreateBookingParams) (*queries.BookingView, error)
	Decide(ctx context.Context, actorID, bookingID uuid.UUID, approved bool) (*queries.BookingView, error)
}

type bookingCommandsImpl struct {
	bookings     BookingRepository
	items        ItemReader
	users        UserReader
	bookingReads BookingReader
	pool         *pgxpool.Pool
}

func NewBookingCommands(
	bookings BookingRepository,
	items ItemReader,
	users UserReader,
	bookingReads BookingReader,
	pool *pgxpool.Pool,
) BookingCommands {
	return &bookingCommandsImpl{
		bookings:     bookings,
		items:        items,
		users:        users,
		bookingReads: bookingReads,
		pool:         pool,
	}
}

func (c *bookingCommandsImpl) Create(ctx context.Context, actorID uuid.UUID, params CreateBookingParams) (*queries.BookingView, error) {
	exists, err := c.users.Exists(ctx, actorID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	itemView, err := c.items.FindByID(ctx, params.ItemID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	period, err := booking.NewPeriod(params.Start, params.End)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidPeriod)
	}

	if !itemView.Available {
		return nil, ErrItemUnavailable
	}

	// A booking of one's own item is reported as a missing item rather than
	// a permission failure, matching the read-side policy of not confirming
	// ownership to the requester.
	if itemView.OwnerID == actorID {
		return nil, ErrOwnItemBooking
	}

	entity := booking.NewBooking(itemView.ID, actorID, period)

	id, err := shared.RunInTx(ctx, c.pool, func(tx db.DBTX) (uuid.UUID, error) {
		return c.bookings.Create(ctx, tx, entity)
	})
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	metrics.IncBookingCreated()

	view, err := c.bookingReads.FindByID(ctx, id)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (c *bookingCommandsImpl) Decide(ctx context.Context, actorID, bookingID uuid.UUID, approved bool) (*queries.BookingView, error) {
	view, err := c.bookingReads.FindByID(ctx, bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if view.ItemOwnerID != actorID {
		return nil, ErrNotItemOwner
	}

	if booking.Status(view.Status) != booking.StatusWaiting {
		return nil, ErrAlreadyDecided
	}

	next := booking.StatusRejected
	if approved {
		next = booking.StatusApproved
	}

	rows, err := shared.RunInTx(ctx, c.pool, func(tx db.DBTX) (int64, error) {
		return c.bookings.UpdateStatusIfWaiting(ctx, tx, bookingID, next)
	})
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if rows == 0 {
		// The waiting check above raced with another decision.
		return nil, ErrBookingDecisionConflict
	}

	metrics.IncBookingDecision(next.String())

	updated, err := c.bookingReads.FindByID(ctx, bookingID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return updated, nil
}
