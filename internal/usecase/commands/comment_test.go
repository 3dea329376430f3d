//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"gearshare/internal/infra"
	"gearshare/internal/pkg/clock"
	"gearshare/internal/usecase/commands"
	"gearshare/tests/common/builder"
	commandsmock "gearshare/tests/mock/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type commentCommandsMocks struct {
	repo         *commandsmock.MockCommentRepository
	commentReads *commandsmock.MockCommentReader
	items        *commandsmock.MockItemReader
	users        *commandsmock.MockUserReader
	bookingReads *commandsmock.MockBookingReader
}

func newCommentCommands(t *testing.T, now time.Time) (commands.CommentCommands, commentCommandsMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := commentCommandsMocks{
		repo:         commandsmock.NewMockCommentRepository(ctrl),
		commentReads: commandsmock.NewMockCommentReader(ctrl),
		items:        commandsmock.NewMockItemReader(ctrl),
		users:        commandsmock.NewMockUserReader(ctrl),
		bookingReads: commandsmock.NewMockBookingReader(ctrl),
	}
	c := commands.NewCommentCommands(m.repo, m.commentReads, m.items, m.users, m.bookingReads, clock.NewFixedClock(now), nil)
	return c, m
}

func TestCreateCommentGuards(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	authorID := uuid.New()

	t.Run("unknown author", func(t *testing.T) {
		c, m := newCommentCommands(t, now)
		m.users.EXPECT().Exists(ctx, authorID).Return(false, nil)

		_, err := c.Create(ctx, authorID, uuid.New(), "Nice drill")
		assert.ErrorIs(t, err, commands.ErrUserNotFound)
	})

	t.Run("missing item", func(t *testing.T) {
		c, m := newCommentCommands(t, now)
		itemID := uuid.New()
		m.users.EXPECT().Exists(ctx, authorID).Return(true, nil)
		m.items.EXPECT().FindByID(ctx, itemID).
			Return(nil, infra.WrapRepoErr("item not found", nil, infra.KindNotFound))

		_, err := c.Create(ctx, authorID, itemID, "Nice drill")
		assert.ErrorIs(t, err, commands.ErrItemNotFound)
	})

	t.Run("no finished approved booking", func(t *testing.T) {
		c, m := newCommentCommands(t, now)
		itemView := builder.NewItemBuilder().BuildView()

		m.users.EXPECT().Exists(ctx, authorID).Return(true, nil)
		m.items.EXPECT().FindByID(ctx, itemView.ID).Return(itemView, nil)
		// Eligibility cutoff leans one second past the current instant.
		m.bookingReads.EXPECT().
			HasFinishedApprovedBooking(ctx, authorID, itemView.ID, now.Add(time.Second)).
			Return(false, nil)

		_, err := c.Create(ctx, authorID, itemView.ID, "Nice drill")
		assert.ErrorIs(t, err, commands.ErrCommentNotAllowed)
	})

	t.Run("empty text fails validation before any write", func(t *testing.T) {
		c, m := newCommentCommands(t, now)
		itemView := builder.NewItemBuilder().BuildView()

		m.users.EXPECT().Exists(ctx, authorID).Return(true, nil)
		m.items.EXPECT().FindByID(ctx, itemView.ID).Return(itemView, nil)
		m.bookingReads.EXPECT().
			HasFinishedApprovedBooking(ctx, authorID, itemView.ID, now.Add(time.Second)).
			Return(true, nil)

		_, err := c.Create(ctx, authorID, itemView.ID, "   ")
		assert.ErrorIs(t, err, commands.ErrCommentValidation)
	})
}
