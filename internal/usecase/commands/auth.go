package commands

import (
	"context"

	"library-reserve/internal/domain/user"
	"library-reserve/internal/infra"
	"library-reserve/internal/pkg/errs"
	"library-reserve/internal/pkg/jwt"
	"library-reserve/internal/pkg/password"
	"library-reserve/internal/usecase/queries"

	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials   = errs.New("invalid credentials")
	ErrAuthenticationFailed = errs.New("authentication failed")
	ErrTokenGeneration      = errs.New("token generation failed")
)

type LoginResult struct {
	UserID      uuid.UUID
	Role        user.Role
	AccessToken string
}

type AuthCommands interface {
	Login(ctx context.Context, email, plainPassword string) (*LoginResult, error)
}

type authCommandsImpl struct {
	readStore  queries.UserReadStore
	jwtService *jwt.Service
}

func NewAuthCommands(readStore queries.UserReadStore, jwtService *jwt.Service) AuthCommands {
	return &authCommandsImpl{
		readStore:  readStore,
		jwtService: jwtService,
	}
}

func (a *authCommandsImpl) Login(ctx context.Context, email, plainPassword string) (*LoginResult, error) {
	u, err := a.readStore.FindAuthorizedByEmail(ctx, email)
	if err != nil {
		// An unknown email reads the same as a wrong password to the caller.
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrInvalidCredentials)
		}
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	if err := password.ComparePassword(u.PasswordHash, plainPassword); err != nil {
		return nil, errs.Mark(err, ErrInvalidCredentials)
	}

	role := user.Role(u.Role)
	if !role.IsValid() {
		return nil, errs.Mark(errs.New("unknown role "+u.Role), ErrAuthenticationFailed)
	}

	token, err := a.jwtService.GenerateToken(u.ID, role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	return &LoginResult{
		UserID:      u.ID,
		Role:        role,
		AccessToken: token,
	}, nil
}
