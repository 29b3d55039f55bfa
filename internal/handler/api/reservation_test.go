//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

	"library-reserve/internal/domain/reservation"
	"library-reserve/internal/handler/api"
	resdto "library-reserve/internal/handler/dto/response"
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

type ReservationHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockReservationCommands
	mockQueries  *queriesmock.MockReservationQueries
	handler      *api.ReservationHandler

	authedUserID uuid.UUID
}

func (s *ReservationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockReservationCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockReservationQueries(s.mockCtrl)
	s.handler = api.NewReservationHandler(s.mockCommands, s.mockQueries)

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

	s.router.POST("/reservations", withAuth(s.handler.CreateReservation))
	s.router.GET("/reservations", withAuth(s.handler.GetReservations))
	s.router.POST("/reservations/check-in", s.handler.CheckIn)
	s.router.GET("/reservations/:id", s.handler.GetReservation)
	s.router.PATCH("/reservations/:id/cancel", withAuth(s.handler.CancelReservation))
	s.router.PATCH("/reservations/:id/approve", s.handler.ApproveReservation)
	s.router.PATCH("/reservations/:id/reject", s.handler.RejectReservation)
	s.router.PATCH("/reservations/:id/check-out", s.handler.CheckOut)
}

func (s *ReservationHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestReservationHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReservationHandlerTestSuite))
}

func (s *ReservationHandlerTestSuite) TestCreateReservation() {
	url := "/reservations"

	resBuilder := builder.NewReservationBuilder()
	reqBody := resBuilder.BuildCreateRequestDTO()
	returnView := resBuilder.BuildView()

	s.Run("success: returns 201 Created with the reservation", func() {
		s.mockCommands.EXPECT().
			CreateReservation(gomock.Any(), commands.CreateReservationParams{
				UserID:     s.authedUserID,
				RoomID:     reqBody.RoomID,
				SeatID:     reqBody.SeatID,
				TimeslotID: reqBody.TimeslotID,
			}).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var response resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(returnView.ID, response.ID)
		s.Equal("PENDING", response.Status)
		s.NotEmpty(response.CheckInCode)
	})

	s.Run("error: 500 when the auth context is missing", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		testCases := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{name: "missing field: timeslot_id (required)", mutate: testutil.Field("timeslot_id", nil)},
			{name: "malformed timeslot_id", mutate: testutil.Field("timeslot_id", "not-a-uuid")},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
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
				name:           "both or neither resource",
				commandsError:  commands.ErrExactlyOneResource,
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "Provide exactly one of roomId or seatId",
			},
			{
				name:           "timeslot not found",
				commandsError:  commands.ErrTimeslotNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Timeslot not found",
			},
			{
				name:           "timeslot blocked",
				commandsError:  commands.ErrTimeslotBlocked,
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "Timeslot is blocked",
			},
			{
				name:           "timeslot in the past",
				commandsError:  commands.ErrTimeslotInPast,
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "Cannot reserve a past timeslot",
			},
			{
				name:           "duplicate timeslot",
				commandsError:  commands.ErrDuplicateTimeslot,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "You already have a reservation for this timeslot",
			},
			{
				name:           "daily limit exceeded",
				commandsError:  commands.ErrDailyLimitExceeded,
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "Daily reservation limit exceeded",
			},
			{
				name:           "room not found",
				commandsError:  commands.ErrRoomNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Room not found",
			},
			{
				name:           "seat not found",
				commandsError:  commands.ErrSeatNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Seat not found",
			},
			{
				name:           "resource conflict",
				commandsError:  commands.ErrResourceConflict,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "Resource is already reserved for this timeslot",
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
				s.mockCommands.EXPECT().
					CreateReservation(gomock.Any(), gomock.Any()).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

func (s *ReservationHandlerTestSuite) TestGetReservation() {
	returnView := builder.NewReservationBuilder().BuildView()

	s.Run("success: returns the reservation", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), returnView.ID).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/"+returnView.ID.String(), nil, "")

		var response resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(returnView.ID, response.ID)
	})

	s.Run("error: 404 when missing", func() {
		id := uuid.New()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), id).
			Return(nil, errors.New("no rows")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/"+id.String(), nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Reservation not found")
	})
}

func (s *ReservationHandlerTestSuite) TestGetReservations() {
	views := []*queries.ReservationView{builder.NewReservationBuilder().BuildView()}

	s.Run("success: lists all with the default limit", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), 50).
			Return(views, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations", nil, "bearer-token")

		var response []*resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, 1)
	})

	s.Run("success: mine=true lists only the caller's", func() {
		s.mockQueries.EXPECT().ListByUser(gomock.Any(), s.authedUserID).
			Return(views, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations?mine=true", nil, "bearer-token")

		var response []*resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, 1)
	})
}

func (s *ReservationHandlerTestSuite) TestApproveReservation() {
	id := uuid.New()
	url := "/reservations/" + id.String() + "/approve"

	s.Run("success: returns 200 with a confirmation", func() {
		s.mockCommands.EXPECT().Approve(gomock.Any(), id).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, nil, "")

		var response map[string]string
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("Reservation approved", response["message"])
	})

	s.Run("error: 404 when missing", func() {
		s.mockCommands.EXPECT().Approve(gomock.Any(), id).
			Return(commands.ErrReservationNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Reservation not found")
	})

	s.Run("error: 400 when not pending", func() {
		s.mockCommands.EXPECT().Approve(gomock.Any(), id).
			Return(commands.ErrInvalidStatus).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Operation not allowed in current status")
	})
}

func (s *ReservationHandlerTestSuite) TestRejectReservation() {
	id := uuid.New()
	url := "/reservations/" + id.String() + "/reject"

	s.Run("success: passes the reason through", func() {
		s.mockCommands.EXPECT().Reject(gomock.Any(), id, "overbooked").
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"reason": "overbooked"}, "")

		var response map[string]string
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("Reservation rejected", response["message"])
	})

	s.Run("success: empty body rejects without a reason", func() {
		s.mockCommands.EXPECT().Reject(gomock.Any(), id, "").
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, nil, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 400 when not pending", func() {
		s.mockCommands.EXPECT().Reject(gomock.Any(), id, "").
			Return(commands.ErrInvalidStatus).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Operation not allowed in current status")
	})
}

func (s *ReservationHandlerTestSuite) TestCancelReservation() {
	id := uuid.New()
	url := "/reservations/" + id.String() + "/cancel"

	s.Run("success: returns 200 with a confirmation", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), id, s.authedUserID).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, nil, "bearer-token")

		var response map[string]string
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("Reservation cancelled", response["message"])
	})

	s.Run("error: 500 when the auth context is missing", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "not found",
				commandsError:  commands.ErrReservationNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Reservation not found",
			},
			{
				name:           "not the owner",
				commandsError:  commands.ErrReservationNotOwned,
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "You can only cancel your own reservations",
			},
			{
				name:           "already started",
				commandsError:  commands.ErrReservationStarted,
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "Reservation has already started",
			},
			{
				name:           "already closed",
				commandsError:  commands.ErrInvalidStatus,
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "Reservation is already closed",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Cancel(gomock.Any(), id, s.authedUserID).
					Return(tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, nil, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

func (s *ReservationHandlerTestSuite) TestCheckIn() {
	url := "/reservations/check-in"
	code := uuid.NewString()
	reqBody := map[string]any{"code": code}

	s.Run("success: on-time check-in", func() {
		reservationID := uuid.New()
		s.mockCommands.EXPECT().CheckIn(gomock.Any(), code).
			Return(&commands.CheckInOutcome{
				ReservationID: reservationID,
				Status:        reservation.StatusCheckedIn,
			}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var response resdto.CheckInResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(reservationID, response.ReservationID)
		s.Equal("CHECKED_IN", response.Status)
		s.False(response.Forfeited)
	})

	s.Run("success: a late arrival past grace reports the forfeiture", func() {
		s.mockCommands.EXPECT().CheckIn(gomock.Any(), code).
			Return(&commands.CheckInOutcome{
				ReservationID: uuid.New(),
				Status:        reservation.StatusForfeited,
				Forfeited:     true,
				LateMinutes:   20,
			}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var response resdto.CheckInResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.True(response.Forfeited)
		s.Equal(20, response.LateMinutes)
		s.Equal("FORFEITED", response.Status)
	})

	s.Run("error: 400 when the code is not a UUID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"code": "bogus"}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "unknown code",
				commandsError:  commands.ErrCheckInCodeNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Invalid check-in code",
			},
			{
				name:           "too early",
				commandsError:  commands.ErrCheckInNotOpen,
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "Check-in opens 15 minutes before the start time",
			},
			{
				name:           "wrong status",
				commandsError:  commands.ErrInvalidStatus,
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "Reservation cannot be checked in",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().CheckIn(gomock.Any(), code).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

func (s *ReservationHandlerTestSuite) TestCheckOut() {
	id := uuid.New()
	url := "/reservations/" + id.String() + "/check-out"

	s.Run("success: returns 200 with a confirmation", func() {
		s.mockCommands.EXPECT().CheckOut(gomock.Any(), id).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, nil, "")

		var response map[string]string
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("Checked out", response["message"])
	})

	s.Run("error: 400 when not checked in", func() {
		s.mockCommands.EXPECT().CheckOut(gomock.Any(), id).
			Return(commands.ErrInvalidStatus).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Operation not allowed in current status")
	})
}
