package queries

import (
	"context"
	"time"

	"gearshare/internal/domain/booking"
	"gearshare/internal/infra"
	"gearshare/internal/pkg/clock"
	"gearshare/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrBookingNotFound = errs.New("booking not found")
	ErrUserNotFound    = errs.New("user not found")
	ErrInvalidPage     = errs.New("invalid pagination parameters")
)

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	ListByBooker(ctx context.Context, bookerID uuid.UUID, state booking.ListState, now time.Time, limit, offset int) ([]*BookingView, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, state booking.ListState, now time.Time, limit, offset int) ([]*BookingView, error)
}

type UserExistsStore interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

type BookingQueries interface {
	// GetByID returns the booking only to its booker or the item's owner.
	// Anyone else learns nothing: the booking is reported as absent.
	GetByID(ctx context.Context, actorID, id uuid.UUID) (*BookingView, error)
	ListByBooker(ctx context.Context, bookerID uuid.UUID, state booking.ListState, page Page) ([]*BookingView, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, state booking.ListState, page Page) ([]*BookingView, error)
}

type bookingQueriesImpl struct {
	store BookingReadStore
	users UserExistsStore
	clock clock.Clock
}

func NewBookingQueries(store BookingReadStore, users UserExistsStore, clock clock.Clock) BookingQueries {
	return &bookingQueriesImpl{
		store: store,
		users: users,
		clock: clock,
	}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, actorID, id uuid.UUID) (*BookingView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	if view.BookerID != actorID && view.ItemOwnerID != actorID {
		return nil, ErrBookingNotFound
	}

	return view, nil
}

func (q *bookingQueriesImpl) ListByBooker(ctx context.Context, bookerID uuid.UUID, state booking.ListState, page Page) ([]*BookingView, error) {
	if err := q.validateSubject(ctx, bookerID, page); err != nil {
		return nil, err
	}

	// One reference instant for all time-relative filters in this call.
	now := q.clock.Now()
	return q.store.ListByBooker(ctx, bookerID, state, now, page.Size, page.Offset())
}

func (q *bookingQueriesImpl) ListByOwner(ctx context.Context, ownerID uuid.UUID, state booking.ListState, page Page) ([]*BookingView, error) {
	if err := q.validateSubject(ctx, ownerID, page); err != nil {
		return nil, err
	}

	now := q.clock.Now()
	return q.store.ListByOwner(ctx, ownerID, state, now, page.Size, page.Offset())
}

func (q *bookingQueriesImpl) validateSubject(ctx context.Context, userID uuid.UUID, page Page) error {
	if err := page.Validate(); err != nil {
		return err
	}

	exists, err := q.users.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrUserNotFound
	}

	return nil
}
