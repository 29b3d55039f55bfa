//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"library-reserve/internal/domain/user"
	"library-reserve/internal/handler/api"
	resdto "library-reserve/internal/handler/dto/response"
	"library-reserve/internal/infra"
	"library-reserve/internal/usecase/commands"
	"library-reserve/internal/usecase/queries"
	"library-reserve/tests/common/builder"
	"library-reserve/tests/common/httptest"
	"library-reserve/tests/common/testutil"
	commandsmock "library-reserve/tests/mock/commands"
	queriesmock "library-reserve/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AuthHandlerTestSuite struct {
	suite.Suite
	router        *gin.Engine
	mockCtrl      *gomock.Controller
	mockCommands  *commandsmock.MockAuthCommands
	mockReadStore *queriesmock.MockUserReadStore
	handler       *api.AuthHandler

	authedUserID uuid.UUID
}

func (s *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockAuthCommands(s.mockCtrl)
	s.mockReadStore = queriesmock.NewMockUserReadStore(s.mockCtrl)
	s.handler = api.NewAuthHandler(s.mockCommands, s.mockReadStore)

	s.authedUserID = uuid.New()

	// Mock middleware behavior: an Authorization header authenticates as the
	// suite's user.
	withAuth := func(next gin.HandlerFunc) gin.HandlerFunc {
		return func(c *gin.Context) {
			if c.GetHeader("Authorization") != "" {
				c.Set("user_id", s.authedUserID)
			}
			next(c)
		}
	}

	s.router.POST("/auth/login", s.handler.Login)
	s.router.GET("/auth/me", withAuth(s.handler.Me))
}

func (s *AuthHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAuthHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}

func (s *AuthHandlerTestSuite) TestLogin() {
	url := "/auth/login"

	reqBody := builder.NewAuthBuilder().BuildDTO()
	userID := uuid.New()
	expectedToken := "test-jwt-token"

	s.Run("success: returns 200 OK for valid credentials", func() {
		s.mockCommands.EXPECT().Login(gomock.Any(), reqBody.Email, reqBody.Password).
			Return(&commands.LoginResult{
				UserID:      userID,
				Role:        user.RoleStudent,
				AccessToken: expectedToken,
			}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var response resdto.LoginResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(expectedToken, response.AccessToken)
		s.Equal(userID, response.UserID)
		s.Equal("student", response.Role)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		testCases := []struct {
			name       string
			mutate     func(m map[string]any)
			expectCode int
		}{
			{name: "email boundary OK (valid email)", mutate: testutil.Field("email", "valid@example.edu"), expectCode: http.StatusOK},
			{name: "email boundary invalid (invalid email)", mutate: testutil.Field("email", "invalid-email"), expectCode: http.StatusBadRequest},
			{name: "password boundary OK (8 chars)", mutate: testutil.Field("password", "password"), expectCode: http.StatusOK},
			{name: "password boundary invalid (7 chars)", mutate: testutil.Field("password", strings.Repeat("a", 7)), expectCode: http.StatusBadRequest},
			{name: "missing field: email (required)", mutate: testutil.Field("email", nil), expectCode: http.StatusBadRequest},
			{name: "missing field: password (required)", mutate: testutil.Field("password", nil), expectCode: http.StatusBadRequest},
			{name: "empty email", mutate: testutil.Field("email", ""), expectCode: http.StatusBadRequest},
			{name: "empty password", mutate: testutil.Field("password", ""), expectCode: http.StatusBadRequest},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)

				if tc.expectCode == http.StatusOK {
					s.mockCommands.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).
						Return(&commands.LoginResult{
							UserID:      userID,
							Role:        user.RoleStudent,
							AccessToken: expectedToken,
						}, nil).Times(1)
				}
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "")
				if tc.expectCode == http.StatusOK {
					httptest.AssertSuccessResponse(s.T(), rec, tc.expectCode, nil)
				} else {
					httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "")
				}
			})
		}
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "invalid credentials",
				commandsError:  commands.ErrInvalidCredentials,
				expectedStatus: http.StatusUnauthorized,
				expectedMsg:    "Invalid email or password",
			},
			{
				name:           "internal server error",
				commandsError:  errors.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal server error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Login(gomock.Any(), reqBody.Email, reqBody.Password).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

func (s *AuthHandlerTestSuite) TestMe() {
	url := "/auth/me"

	s.Run("success: returns the caller's profile", func() {
		s.mockReadStore.EXPECT().FindAuthorizedByID(gomock.Any(), s.authedUserID).
			Return(&queries.AuthorizedUserView{
				ID:    s.authedUserID,
				Name:  "Test Student",
				Email: "student@example.edu",
				Role:  "student",
			}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response resdto.UserResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(s.authedUserID, response.ID)
		s.Equal("Test Student", response.Name)
		s.Equal("student@example.edu", response.Email)
		s.Equal("student", response.Role)
	})

	s.Run("error: 500 when the auth context is missing", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})

	s.Run("error: 404 when the user row is gone", func() {
		s.mockReadStore.EXPECT().FindAuthorizedByID(gomock.Any(), s.authedUserID).
			Return(nil, infra.WrapRepoErr("user not found", nil, infra.KindNotFound)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "User not found")
	})
}
