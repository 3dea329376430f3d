//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"gearshare/internal/domain/booking"
	"gearshare/internal/infra"
	"gearshare/internal/usecase/commands"
	"gearshare/tests/common/builder"
	commandsmock "gearshare/tests/mock/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

// The transactional paths need a live pool and are covered by the e2e suite;
// these tests exercise the guard checks that run before any write.

type bookingCommandsMocks struct {
	bookings     *commandsmock.MockBookingRepository
	items        *commandsmock.MockItemReader
	users        *commandsmock.MockUserReader
	bookingReads *commandsmock.MockBookingReader
}

func newBookingCommands(t *testing.T) (commands.BookingCommands, bookingCommandsMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := bookingCommandsMocks{
		bookings:     commandsmock.NewMockBookingRepository(ctrl),
		items:        commandsmock.NewMockItemReader(ctrl),
		users:        commandsmock.NewMockUserReader(ctrl),
		bookingReads: commandsmock.NewMockBookingReader(ctrl),
	}
	c := commands.NewBookingCommands(m.bookings, m.items, m.users, m.bookingReads, nil)
	return c, m
}

func validParams() commands.CreateBookingParams {
	start := time.Now().Add(24 * time.Hour)
	return commands.CreateBookingParams{
		ItemID: uuid.New(),
		Start:  start,
		End:    start.Add(48 * time.Hour),
	}
}

func TestCreateBookingGuards(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New()

	t.Run("unknown user", func(t *testing.T) {
		c, m := newBookingCommands(t)
		m.users.EXPECT().Exists(ctx, actorID).Return(false, nil)

		_, err := c.Create(ctx, actorID, validParams())
		assert.ErrorIs(t, err, commands.ErrUserNotFound)
	})

	t.Run("missing item", func(t *testing.T) {
		c, m := newBookingCommands(t)
		params := validParams()
		m.users.EXPECT().Exists(ctx, actorID).Return(true, nil)
		m.items.EXPECT().FindByID(ctx, params.ItemID).
			Return(nil, infra.WrapRepoErr("item not found", nil, infra.KindNotFound))

		_, err := c.Create(ctx, actorID, params)
		assert.ErrorIs(t, err, commands.ErrItemNotFound)
	})

	t.Run("invalid period", func(t *testing.T) {
		c, m := newBookingCommands(t)
		params := validParams()
		params.End = params.Start

		itemView := builder.NewItemBuilder().BuildView()
		itemView.ID = params.ItemID
		m.users.EXPECT().Exists(ctx, actorID).Return(true, nil)
		m.items.EXPECT().FindByID(ctx, params.ItemID).Return(itemView, nil)

		_, err := c.Create(ctx, actorID, params)
		assert.ErrorIs(t, err, commands.ErrInvalidPeriod)
	})

	t.Run("unavailable item", func(t *testing.T) {
		c, m := newBookingCommands(t)
		params := validParams()

		itemView := builder.NewItemBuilder().AsUnavailable().BuildView()
		itemView.ID = params.ItemID
		m.users.EXPECT().Exists(ctx, actorID).Return(true, nil)
		m.items.EXPECT().FindByID(ctx, params.ItemID).Return(itemView, nil)

		_, err := c.Create(ctx, actorID, params)
		assert.ErrorIs(t, err, commands.ErrItemUnavailable)
	})

	t.Run("booking one's own item", func(t *testing.T) {
		c, m := newBookingCommands(t)
		params := validParams()

		itemView := builder.NewItemBuilder().WithOwnerID(actorID).BuildView()
		itemView.ID = params.ItemID
		m.users.EXPECT().Exists(ctx, actorID).Return(true, nil)
		m.items.EXPECT().FindByID(ctx, params.ItemID).Return(itemView, nil)

		_, err := c.Create(ctx, actorID, params)
		assert.ErrorIs(t, err, commands.ErrOwnItemBooking)
	})
}

func TestDecideBookingGuards(t *testing.T) {
	ctx := context.Background()
	bookingID := uuid.New()

	t.Run("missing booking", func(t *testing.T) {
		c, m := newBookingCommands(t)
		m.bookingReads.EXPECT().FindByID(ctx, bookingID).
			Return(nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound))

		_, err := c.Decide(ctx, uuid.New(), bookingID, true)
		assert.ErrorIs(t, err, commands.ErrBookingNotFound)
	})

	t.Run("actor is not the item owner", func(t *testing.T) {
		c, m := newBookingCommands(t)
		view := builder.NewBookingBuilder().BuildView()
		view.ID = bookingID
		m.bookingReads.EXPECT().FindByID(ctx, bookingID).Return(view, nil)

		_, err := c.Decide(ctx, view.BookerID, bookingID, true)
		assert.ErrorIs(t, err, commands.ErrNotItemOwner)
	})

	t.Run("already approved", func(t *testing.T) {
		c, m := newBookingCommands(t)
		view := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
			b.Status = booking.StatusApproved
		}).BuildView()
		view.ID = bookingID
		m.bookingReads.EXPECT().FindByID(ctx, bookingID).Return(view, nil)

		_, err := c.Decide(ctx, view.ItemOwnerID, bookingID, false)
		assert.ErrorIs(t, err, commands.ErrAlreadyDecided)
	})

	t.Run("already rejected", func(t *testing.T) {
		c, m := newBookingCommands(t)
		view := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
			b.Status = booking.StatusRejected
		}).BuildView()
		view.ID = bookingID
		m.bookingReads.EXPECT().FindByID(ctx, bookingID).Return(view, nil)

		_, err := c.Decide(ctx, view.ItemOwnerID, bookingID, true)
		assert.ErrorIs(t, err, commands.ErrAlreadyDecided)
	})
}
