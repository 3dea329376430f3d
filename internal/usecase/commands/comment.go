package commands

import (
	"context"
	"time"

	"gearshare/internal/domain/comment"
	"gearshare/internal/infra"
	"gearshare/internal/infra/db"
	"gearshare/internal/pkg/clock"
	"gearshare/internal/pkg/errs"
	"gearshare/internal/usecase/queries"
	"gearshare/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrCommentNotAllowed = errs.New("commenting requires a finished approved booking of the item")
	ErrCommentValidation = errs.New("comment validation failed")
)

type CommentReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*queries.CommentView, error)
}

type CommentCommands interface {
	Create(ctx context.Context, authorID, itemID uuid.UUID, text string) (*queries.CommentView, error)
}

type commentCommandsImpl struct {
	repo         CommentRepository
	commentReads CommentReader
	items        ItemReader
	users        UserReader
	bookingReads BookingReader
	clock        clock.Clock
	pool         *pgxpool.Pool
}

func NewCommentCommands(
	repo CommentRepository,
	commentReads CommentReader,
	items ItemReader,
	users UserReader,
	bookingReads BookingReader,
	clock clock.Clock,
	pool *pgxpool.Pool,
) CommentCommands {
	return &commentCommandsImpl{
		repo:         repo,
		commentReads: commentReads,
		items:        items,
		users:        users,
		bookingReads: bookingReads,
		clock:        clock,
		pool:         pool,
	}
}

func (c *commentCommandsImpl) Create(ctx context.Context, authorID, itemID uuid.UUID, text string) (*queries.CommentView, error) {
	exists, err := c.users.Exists(ctx, authorID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	if _, err := c.items.FindByID(ctx, itemID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	// The cutoff leans one second past now so a booking that ended within
	// the handling of this request still counts as finished.
	cutoff := c.clock.Now().Add(time.Second)
	allowed, err := c.bookingReads.HasFinishedApprovedBooking(ctx, authorID, itemID, cutoff)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if !allowed {
		return nil, ErrCommentNotAllowed
	}

	entity, err := comment.NewComment(itemID, authorID, text)
	if err != nil {
		return nil, errs.Mark(err, ErrCommentValidation)
	}

	id, err := shared.RunInTx(ctx, c.pool, func(tx db.DBTX) (uuid.UUID, error) {
		return c.repo.Create(ctx, tx, entity)
	})
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return c.commentReads.FindByID(ctx, id)
}
