//go:build unit || e2e

package builder

import (
	"time"

	"gearshare/internal/domain/booking"
	reqdto "gearshare/internal/handler/dto/request"
	"gearshare/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	ID          uuid.UUID
	ItemID      uuid.UUID
	ItemName    string
	ItemOwnerID uuid.UUID
	BookerID    uuid.UUID
	BookerName  string
	Start       time.Time
	End         time.Time
	Status      booking.Status
}

func NewBookingBuilder() *BookingBuilder {
	start := time.Now().Add(24 * time.Hour).Truncate(time.Second)
	return &BookingBuilder{
		ID:          uuid.New(),
		ItemID:      uuid.New(),
		ItemName:    "Cordless Drill",
		ItemOwnerID: uuid.New(),
		BookerID:    uuid.New(),
		BookerName:  "Test Booker",
		Start:       start,
		End:         start.Add(48 * time.Hour),
		Status:      booking.StatusWaiting,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) BuildDomain() (*booking.Booking, error) {
	period, err := booking.NewPeriod(b.Start, b.End)
	if err != nil {
		return nil, err
	}
	return booking.NewBooking(b.ItemID, b.BookerID, period), nil
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	now := time.Now()
	return &queries.BookingView{
		ID:          b.ID,
		ItemID:      b.ItemID,
		ItemName:    b.ItemName,
		ItemOwnerID: b.ItemOwnerID,
		BookerID:    b.BookerID,
		BookerName:  b.BookerName,
		Start:       b.Start,
		End:         b.End,
		Status:      b.Status.String(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (b *BookingBuilder) BuildRef() *queries.BookingRef {
	return &queries.BookingRef{
		ID:       b.ID,
		BookerID: b.BookerID,
		Start:    b.Start,
		End:      b.End,
	}
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		ItemID: b.ItemID,
		Start:  b.Start,
		End:    b.End,
	}
}

func (b *BookingBuilder) WithItemID(itemID uuid.UUID) *BookingBuilder {
	b.ItemID = itemID
	return b
}

func (b *BookingBuilder) WithItemOwnerID(ownerID uuid.UUID) *BookingBuilder {
	b.ItemOwnerID = ownerID
	return b
}

func (b *BookingBuilder) WithBookerID(bookerID uuid.UUID) *BookingBuilder {
	b.BookerID = bookerID
	return b
}

func (b *BookingBuilder) WithPeriod(start, end time.Time) *BookingBuilder {
	b.Start = start
	b.End = end
	return b
}

func (b *BookingBuilder) WithStatus(status booking.Status) *BookingBuilder {
	b.Status = status
	return b
}

func (b *BookingBuilder) AsApproved() *BookingBuilder {
	b.Status = booking.StatusApproved
	return b
}

func (b *BookingBuilder) AsRejected() *BookingBuilder {
	b.Status = booking.StatusRejected
	return b
}
