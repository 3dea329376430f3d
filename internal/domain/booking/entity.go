package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrAlreadyDecided    = errors.New("booking is already decided")
	ErrInvalidTransition = errors.New("invalid booking status transition")
)

type Booking struct {
	id        uuid.UUID
	itemID    uuid.UUID
	bookerID  uuid.UUID
	period    Period
	status    Status
	createdAt time.Time
	updatedAt time.Time
}

// NewBooking creates a waiting booking for the given item and requester.
// Item availability and the no-self-booking rule are enforced by the
// creating use case, which has the item at hand.
func NewBooking(itemID, bookerID uuid.UUID, period Period) *Booking {
	return &Booking{
		id:       uuid.New(),
		itemID:   itemID,
		bookerID: bookerID,
		period:   period,
		status:   StatusWaiting,
	}
}

func ReconstructBooking(
	id, itemID, bookerID uuid.UUID,
	period Period,
	status Status,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:        id,
		itemID:    itemID,
		bookerID:  bookerID,
		period:    period,
		status:    status,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// Decide moves a waiting booking to approved or rejected. Both outcomes are
// terminal; a second decision fails.
func (b *Booking) Decide(approved bool) error {
	next := StatusRejected
	if approved {
		next = StatusApproved
	}

	if !b.status.CanTransitionTo(next) {
		if b.status.IsTerminal() {
			return ErrAlreadyDecided
		}
		return ErrInvalidTransition
	}

	b.status = next
	return nil
}

func (b *Booking) IsWaiting() bool {
	return b.status == StatusWaiting
}

func (b *Booking) IsApproved() bool {
	return b.status == StatusApproved
}

func (b *Booking) ID() uuid.UUID       { return b.id }
func (b *Booking) ItemID() uuid.UUID   { return b.itemID }
func (b *Booking) BookerID() uuid.UUID { return b.bookerID }
func (b *Booking) Period() Period      { return b.period }
func (b *Booking) Status() Status      { return b.status }
func (b *Booking) CreatedAt() time.Time { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }
