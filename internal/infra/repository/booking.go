package repository

import (
	"context"

	"gearshare/internal/domain/booking"
	"gearshare/internal/infra"
	"gearshare/internal/infra/db"

	"github.com/google/uuid"
)

type BookingRepository struct{}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{}
}

func (r *BookingRepository) Create(ctx context.Context, tx db.DBTX, b *booking.Booking) (uuid.UUID, error) {
	query := `
INSERT INTO bookings (id, item_id, booker_id, start_at, end_at, status)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id`

	var id uuid.UUID
	err := tx.QueryRow(ctx, query,
		b.ID(), b.ItemID(), b.BookerID(),
		b.Period().Start(), b.Period().End(), string(b.Status()),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, wrapWriteErr("failed to create booking", err)
	}

	return id, nil
}

// UpdateStatusIfWaiting applies a terminal decision only when the booking is
// still waiting, so concurrent decisions race on the row predicate instead of
// on a read-then-write window.
func (r *BookingRepository) UpdateStatusIfWaiting(ctx context.Context, tx db.DBTX, id uuid.UUID, status booking.Status) (int64, error) {
	query := `
UPDATE bookings
SET status = $2, updated_at = now()
WHERE id = $1 AND status = 'waiting'`

	tag, err := tx.Exec(ctx, query, id, string(status))
	if err != nil {
		return 0, wrapWriteErr("failed to update booking status", err)
	}

	return tag.RowsAffected(), nil
}

func wrapWriteErr(msg string, err error) error {
	switch {
	case isUniqueViolation(err):
		return infra.WrapRepoErr(msg, err, infra.KindDuplicateKey)
	case isForeignKeyViolation(err):
		return infra.WrapRepoErr(msg, err, infra.KindForeignKeyViolated)
	default:
		return infra.WrapRepoErr(msg, err)
	}
}
