package commands

import (
	"context"

	"gearshare/internal/domain/user"
	"gearshare/internal/infra"
	"gearshare/internal/infra/db"
	"gearshare/internal/pkg/errs"
	"gearshare/internal/pkg/password"
	"gearshare/internal/usecase/queries"
	"gearshare/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrEmailTaken     = errs.New("email is already registered")
	ErrUserValidation = errs.New("user validation failed")
)

type RegisterUserParams struct {
	Name     string
	Email    string
	Password string
}

type UserCommands interface {
	Register(ctx context.Context, params RegisterUserParams) (*queries.UserView, error)
}

type UserViewReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*queries.UserView, error)
}

type userCommandsImpl struct {
	repo  UserRepository
	reads UserViewReader
	pool  *pgxpool.Pool
}

func NewUserCommands(repo UserRepository, reads UserViewReader, pool *pgxpool.Pool) UserCommands {
	return &userCommandsImpl{
		repo:  repo,
		reads: reads,
		pool:  pool,
	}
}

func (c *userCommandsImpl) Register(ctx context.Context, params RegisterUserParams) (*queries.UserView, error) {
	email, err := user.NewEmail(params.Email)
	if err != nil {
		return nil, errs.Mark(err, ErrUserValidation)
	}

	hash, err := password.Hash(params.Password)
	if err != nil {
		return nil, errs.Mark(err, ErrUserValidation)
	}

	entity, err := user.NewUser(params.Name, email, hash)
	if err != nil {
		return nil, errs.Mark(err, ErrUserValidation)
	}

	id, err := shared.RunInTx(ctx, c.pool, func(tx db.DBTX) (uuid.UUID, error) {
		return c.repo.Create(ctx, tx, entity)
	})
	if err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, ErrEmailTaken
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return c.reads.FindByID(ctx, id)
}
