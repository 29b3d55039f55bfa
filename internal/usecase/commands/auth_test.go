//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"library-reserve/internal/domain/user"
	"library-reserve/internal/pkg/jwt"
	"library-reserve/internal/pkg/password"
	"library-reserve/internal/usecase/commands"
	"library-reserve/tests/common/builder"
	queriesmock "library-reserve/tests/mock/queries"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AuthCommandsTestSuite struct {
	suite.Suite
	mockCtrl      *gomock.Controller
	mockReadStore *queriesmock.MockUserReadStore
	jwtService    *jwt.Service
	cmds          commands.AuthCommands
}

func (s *AuthCommandsTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockReadStore = queriesmock.NewMockUserReadStore(s.mockCtrl)
	s.jwtService = jwt.NewService("test-secret-key", time.Hour)
	s.cmds = commands.NewAuthCommands(s.mockReadStore, s.jwtService)
}

func (s *AuthCommandsTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAuthCommandsSuite(t *testing.T) {
	suite.Run(t, new(AuthCommandsTestSuite))
}

func (s *AuthCommandsTestSuite) TestLogin() {
	ctx := context.Background()
	plain := "password123"
	hash, err := password.HashPassword(plain)
	s.Require().NoError(err)

	authorized := builder.NewUserBuilder().
		With(func(u *builder.UserBuilder) { u.PasswordHash = hash }).
		BuildAuthorizedView()

	s.Run("success: returns a signed token and the user's role", func() {
		s.mockReadStore.EXPECT().FindAuthorizedByEmail(gomock.Any(), authorized.Email).
			Return(authorized, nil).Times(1)

		result, err := s.cmds.Login(ctx, authorized.Email, plain)
		s.Require().NoError(err)

		s.Equal(authorized.ID, result.UserID)
		s.Equal(user.RoleStudent, result.Role)

		claims, err := s.jwtService.ValidateToken(result.AccessToken)
		s.Require().NoError(err)
		s.Equal(authorized.ID, claims.UserID)
		s.Equal("student", claims.Role)
	})

	s.Run("error: unknown email reads as invalid credentials", func() {
		s.mockReadStore.EXPECT().FindAuthorizedByEmail(gomock.Any(), "nobody@example.edu").
			Return(nil, notFound("user not found")).Times(1)

		_, err := s.cmds.Login(ctx, "nobody@example.edu", plain)
		s.Require().ErrorIs(err, commands.ErrInvalidCredentials)
	})

	s.Run("error: wrong password", func() {
		s.mockReadStore.EXPECT().FindAuthorizedByEmail(gomock.Any(), authorized.Email).
			Return(authorized, nil).Times(1)

		_, err := s.cmds.Login(ctx, authorized.Email, "wrong-password")
		s.Require().ErrorIs(err, commands.ErrInvalidCredentials)
	})

	s.Run("error: corrupt role in the store", func() {
		broken := builder.NewUserBuilder().BuildAuthorizedView()
		broken.PasswordHash = hash
		broken.Role = "superuser"

		s.mockReadStore.EXPECT().FindAuthorizedByEmail(gomock.Any(), broken.Email).
			Return(broken, nil).Times(1)

		_, err := s.cmds.Login(ctx, broken.Email, plain)
		s.Require().ErrorIs(err, commands.ErrAuthenticationFailed)
	})
}
