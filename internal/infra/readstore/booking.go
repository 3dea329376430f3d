package readstore

import (
	"context"
	"fmt"
	"time"

	"gearshare/internal/domain/booking"
	"gearshare/internal/infra"
	"gearshare/internal/infra/db"
	"gearshare/internal/pkg/pgconv"
	"gearshare/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const bookingViewSelect = `
SELECT b.id, b.item_id, i.name, i.owner_id, b.booker_id, u.name,
       b.start_at, b.end_at, b.status, b.created_at, b.updated_at
FROM bookings b
JOIN items i ON i.id = b.item_id
JOIN users u ON u.id = b.booker_id`

const bookingRefSelect = `
SELECT b.id, b.booker_id, b.start_at, b.end_at
FROM bookings b`

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(db db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: db}
}

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	row := r.db.QueryRow(ctx, bookingViewSelect+" WHERE b.id = $1", id)

	view, err := scanBookingView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}

	return view, nil
}

func (r *BookingReadStore) ListByBooker(ctx context.Context, bookerID uuid.UUID, state booking.ListState, now time.Time, limit, offset int) ([]*queries.BookingView, error) {
	return r.list(ctx, "b.booker_id", bookerID, state, now, limit, offset)
}

func (r *BookingReadStore) ListByOwner(ctx context.Context, ownerID uuid.UUID, state booking.ListState, now time.Time, limit, offset int) ([]*queries.BookingView, error) {
	return r.list(ctx, "i.owner_id", ownerID, state, now, limit, offset)
}

func (r *BookingReadStore) list(ctx context.Context, subjectColumn string, subjectID uuid.UUID, state booking.ListState, now time.Time, limit, offset int) ([]*queries.BookingView, error) {
	query := bookingViewSelect + " WHERE " + subjectColumn + " = $1"
	args := []any{subjectID}

	filter, usesNow := stateFilter(state, len(args)+1)
	query += filter
	if usesNow {
		args = append(args, now)
	}

	query += fmt.Sprintf(" ORDER BY b.start_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	defer rows.Close()

	return collectBookingViews(rows)
}

// stateFilter returns the SQL condition for a listing state. Time-relative
// states compare against a single reference instant bound at argIdx.
func stateFilter(state booking.ListState, argIdx int) (string, bool) {
	switch state {
	case booking.StateCurrent:
		return fmt.Sprintf(" AND b.start_at < $%d AND b.end_at > $%d", argIdx, argIdx), true
	case booking.StatePast:
		return fmt.Sprintf(" AND b.end_at < $%d", argIdx), true
	case booking.StateFuture:
		return fmt.Sprintf(" AND b.start_at > $%d", argIdx), true
	case booking.StateWaiting:
		return " AND b.status = 'waiting'", false
	case booking.StateRejected:
		return " AND b.status = 'rejected'", false
	default:
		return "", false
	}
}

func (r *BookingReadStore) Last(ctx context.Context, itemID uuid.UUID, now time.Time) (*queries.BookingRef, error) {
	query := bookingRefSelect + ` WHERE b.item_id = $1 AND b.status = 'approved' AND b.start_at < $2
ORDER BY b.start_at DESC LIMIT 1`
	return r.findRef(ctx, query, itemID, now)
}

func (r *BookingReadStore) Next(ctx context.Context, itemID uuid.UUID, now time.Time) (*queries.BookingRef, error) {
	query := bookingRefSelect + ` WHERE b.item_id = $1 AND b.status = 'approved' AND b.start_at > $2
ORDER BY b.start_at ASC LIMIT 1`
	return r.findRef(ctx, query, itemID, now)
}

func (r *BookingReadStore) findRef(ctx context.Context, query string, itemID uuid.UUID, now time.Time) (*queries.BookingRef, error) {
	ref := &queries.BookingRef{}
	err := r.db.QueryRow(ctx, query, itemID, now).Scan(&ref.ID, &ref.BookerID, &ref.Start, &ref.End)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to resolve booking for item", err)
	}
	return ref, nil
}

func (r *BookingReadStore) LastBatch(ctx context.Context, itemIDs []uuid.UUID, now time.Time) (map[uuid.UUID]*queries.BookingRef, error) {
	query := `
SELECT b.item_id, b.id, b.booker_id, b.start_at, b.end_at
FROM bookings b
WHERE b.item_id = ANY($1::uuid[]) AND b.status = 'approved' AND b.start_at < $2
ORDER BY b.start_at DESC`
	return r.batchRefs(ctx, query, itemIDs, now)
}

func (r *BookingReadStore) NextBatch(ctx context.Context, itemIDs []uuid.UUID, now time.Time) (map[uuid.UUID]*queries.BookingRef, error) {
	query := `
SELECT b.item_id, b.id, b.booker_id, b.start_at, b.end_at
FROM bookings b
WHERE b.item_id = ANY($1::uuid[]) AND b.status = 'approved' AND b.start_at > $2
ORDER BY b.start_at ASC`
	return r.batchRefs(ctx, query, itemIDs, now)
}

// batchRefs walks rows already ordered by start and keeps the first row seen
// per item, so the ordering of the query decides last-vs-next semantics.
func (r *BookingReadStore) batchRefs(ctx context.Context, query string, itemIDs []uuid.UUID, now time.Time) (map[uuid.UUID]*queries.BookingRef, error) {
	ids := make([]string, len(itemIDs))
	for i, id := range itemIDs {
		ids[i] = id.String()
	}

	rows, err := r.db.Query(ctx, query, ids, now)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to batch-resolve bookings for items", err)
	}
	defer rows.Close()

	result := make(map[uuid.UUID]*queries.BookingRef, len(itemIDs))
	for rows.Next() {
		var itemID uuid.UUID
		ref := &queries.BookingRef{}
		if err := rows.Scan(&itemID, &ref.ID, &ref.BookerID, &ref.Start, &ref.End); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking row", err)
		}
		if _, seen := result[itemID]; !seen {
			result[itemID] = ref
		}
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booking rows", err)
	}

	return result, nil
}

// HasOverlap reports whether any waiting or approved booking of the item
// intersects the half-open window [start, end).
func (r *BookingReadStore) HasOverlap(ctx context.Context, itemID uuid.UUID, start, end time.Time) (bool, error) {
	query := `
SELECT EXISTS (
    SELECT 1 FROM bookings b
    WHERE b.item_id = $1
      AND b.status IN ('waiting', 'approved')
      AND b.start_at < $3 AND b.end_at > $2
)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, itemID, start, end).Scan(&exists); err != nil {
		return false, infra.WrapRepoErr("failed to check booking overlap", err)
	}
	return exists, nil
}

func (r *BookingReadStore) HasFinishedApprovedBooking(ctx context.Context, bookerID, itemID uuid.UUID, before time.Time) (bool, error) {
	query := `
SELECT EXISTS (
    SELECT 1 FROM bookings b
    WHERE b.booker_id = $1 AND b.item_id = $2
      AND b.status = 'approved' AND b.end_at <= $3
)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, bookerID, itemID, before).Scan(&exists); err != nil {
		return false, infra.WrapRepoErr("failed to check finished bookings", err)
	}
	return exists, nil
}

func scanBookingView(row pgx.Row) (*queries.BookingView, error) {
	view := &queries.BookingView{}
	err := row.Scan(
		&view.ID, &view.ItemID, &view.ItemName, &view.ItemOwnerID,
		&view.BookerID, &view.BookerName,
		&view.Start, &view.End, &view.Status,
		&view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return view, nil
}

func collectBookingViews(rows pgx.Rows) ([]*queries.BookingView, error) {
	result := []*queries.BookingView{}
	for rows.Next() {
		view, err := scanBookingView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking row", err)
		}
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booking rows", err)
	}
	return result, nil
}
