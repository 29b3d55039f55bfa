//go:build unit || e2e

package builder

import (
	domuser "library-reserve/internal/domain/user"
	"library-reserve/internal/usecase/queries"
	"library-reserve/internal/usecase/shared"

	"github.com/google/uuid"
)

type UserBuilder struct {
	ID           uuid.UUID
	Name         string
	Email        string
	Role         domuser.Role
	PasswordHash string
}

func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		ID:           uuid.New(),
		Name:         "Test Student",
		Email:        "student@example.edu",
		Role:         domuser.RoleStudent,
		PasswordHash: "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy",
	}
}

func (u *UserBuilder) With(mutate func(*UserBuilder)) *UserBuilder {
	mutate(u)
	return u
}

func (u *UserBuilder) BuildSnapshot() *shared.UserSnapshot {
	return &shared.UserSnapshot{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}

func (u *UserBuilder) BuildAuthorizedView() *queries.AuthorizedUserView {
	return &queries.AuthorizedUserView{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Role:         string(u.Role),
		PasswordHash: u.PasswordHash,
	}
}

func (u *UserBuilder) WithRole(role domuser.Role) *UserBuilder {
	u.Role = role
	return u
}

func (u *UserBuilder) AsLibrarian() *UserBuilder {
	u.Role = domuser.RoleLibrarian
	u.Email = "librarian@example.edu"
	return u
}
