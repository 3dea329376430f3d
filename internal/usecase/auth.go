package usecase

import (
	"context"

	"gearshare/internal/infra"
	"gearshare/internal/pkg/errs"
	"gearshare/internal/pkg/jwt"
	"gearshare/internal/pkg/password"
	"gearshare/internal/usecase/queries"

	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = errs.New("invalid email or password")
	ErrTokenGeneration    = errs.New("token generation failed")
	ErrTokenValidation    = errs.New("token validation failed")
)

type CredentialStore interface {
	FindByEmail(ctx context.Context, email string) (*queries.UserView, string, error)
}

type AuthUseCase interface {
	Login(ctx context.Context, email, plainPassword string) (string, *queries.UserView, error)
	ValidateToken(tokenString string) (uuid.UUID, error)
}

type authUseCaseImpl struct {
	credentials CredentialStore
	jwtService  *jwt.Service
}

func NewAuthUseCase(credentials CredentialStore, jwtService *jwt.Service) AuthUseCase {
	return &authUseCaseImpl{
		credentials: credentials,
		jwtService:  jwtService,
	}
}

func (a *authUseCaseImpl) Login(ctx context.Context, email, plainPassword string) (string, *queries.UserView, error) {
	view, hash, err := a.credentials.FindByEmail(ctx, email)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := password.Compare(hash, plainPassword); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := a.jwtService.GenerateToken(view.ID)
	if err != nil {
		return "", nil, ErrTokenGeneration
	}

	return token, view, nil
}

func (a *authUseCaseImpl) ValidateToken(tokenString string) (uuid.UUID, error) {
	claims, err := a.jwtService.ValidateToken(tokenString)
	if err != nil {
		return uuid.Nil, ErrTokenValidation
	}

	return claims.UserID, nil
}
