package queries

import (
	"context"

	"github.com/google/uuid"
)

// UserReadStore exposes the credential lookup the auth flow needs. The
// password hash never leaves the usecase layer.
type UserReadStore interface {
	FindAuthorizedByEmail(ctx context.Context, email string) (*AuthorizedUserView, error)
	FindAuthorizedByID(ctx context.Context, id uuid.UUID) (*AuthorizedUserView, error)
}
