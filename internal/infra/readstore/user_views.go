package readstore

import (
	"context"

	"library-reserve/internal/infra/db"
	"library-reserve/internal/usecase/queries"

	"github.com/google/uuid"
)

type UserReadStore struct {
	db db.DBTX
}

func NewUserReadStore(dbtx db.DBTX) *UserReadStore {
	return &UserReadStore{db: dbtx}
}

const authorizedUserQuery = `
	SELECT id, name, email, role, password_hash FROM users`

func (r *UserReadStore) FindAuthorizedByEmail(ctx context.Context, email string) (*queries.AuthorizedUserView, error) {
	var v queries.AuthorizedUserView
	err := r.db.QueryRow(ctx, authorizedUserQuery+` WHERE email = $1`, email).
		Scan(&v.ID, &v.Name, &v.Email, &v.Role, &v.PasswordHash)
	if err != nil {
		return nil, notFoundOr(err, "failed to find user by email")
	}
	return &v, nil
}

func (r *UserReadStore) FindAuthorizedByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error) {
	var v queries.AuthorizedUserView
	err := r.db.QueryRow(ctx, authorizedUserQuery+` WHERE id = $1`, id).
		Scan(&v.ID, &v.Name, &v.Email, &v.Role, &v.PasswordHash)
	if err != nil {
		return nil, notFoundOr(err, "failed to find user by id")
	}
	return &v, nil
}
