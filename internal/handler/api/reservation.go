package api

import (
	"errors"
	"net/http"
	"strconv"

	reqdto "library-reserve/internal/handler/dto/request"
	resdto "library-reserve/internal/handler/dto/response"
	"library-reserve/internal/handler/httperr"
	"library-reserve/internal/handler/middleware"
	"library-reserve/internal/pkg/errs"
	"library-reserve/internal/usecase/commands"
	"library-reserve/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var errMissingUserContext = errs.New("user id missing from request context")

type ReservationHandler struct {
	cmds commands.ReservationCommands
	q    queries.ReservationQueries
}

func NewReservationHandler(cmds commands.ReservationCommands, q queries.ReservationQueries) *ReservationHandler {
	return &ReservationHandler{cmds: cmds, q: q}
}

// @Summary Create reservation
// @Description Reserve a room or a seat for a timeslot
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateReservationRequest true "Reservation request"
// @Success 201 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /reservations [post]
func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errMissingUserContext, "Internal server error", nil)
		return
	}

	var req reqdto.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	view, err := h.cmds.CreateReservation(c.Request.Context(), commands.CreateReservationParams{
		UserID:     userID,
		RoomID:     req.RoomID,
		SeatID:     req.SeatID,
		TimeslotID: req.TimeslotID,
		Note:       req.GetNote(),
	})
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrExactlyOneResource):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Provide exactly one of roomId or seatId", nil)
		case errors.Is(err, commands.ErrUserNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "User not found", nil)
		case errors.Is(err, commands.ErrTimeslotNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Timeslot not found", nil)
		case errors.Is(err, commands.ErrTimeslotBlocked):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Timeslot is blocked", nil)
		case errors.Is(err, commands.ErrTimeslotInPast):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Cannot reserve a past timeslot", nil)
		case errors.Is(err, commands.ErrDuplicateTimeslot):
			httperr.AbortWithError(c, http.StatusConflict, err, "You already have a reservation for this timeslot", nil)
		case errors.Is(err, commands.ErrDailyLimitExceeded):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Daily reservation limit exceeded", nil)
		case errors.Is(err, commands.ErrRoomNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Room not found", nil)
		case errors.Is(err, commands.ErrSeatNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Seat not found", nil)
		case errors.Is(err, commands.ErrResourceConflict):
			httperr.AbortWithError(c, http.StatusConflict, err, "Resource is already reserved for this timeslot", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromReservationView(view))
}

// @Summary Get reservation
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 404 {object} httperr.Response
// @Router /reservations/{id} [get]
func (h *ReservationHandler) GetReservation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid reservation ID", nil)
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithError(c, http.StatusNotFound, err, "Reservation not found", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

// @Summary List reservations
// @Description List all reservations (staff) or the caller's own
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param mine query bool false "Only the caller's reservations"
// @Param limit query int false "Page size"
// @Success 200 {array} resdto.ReservationResponse
// @Router /reservations [get]
func (h *ReservationHandler) GetReservations(c *gin.Context) {
	if c.Query("mine") == "true" {
		userID, ok := middleware.GetUserID(c)
		if !ok {
			httperr.AbortWithError(c, http.StatusInternalServerError, errMissingUserContext, "Internal server error", nil)
			return
		}
		views, err := h.q.ListByUser(c.Request.Context(), userID)
		if err != nil {
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
			return
		}
		c.JSON(http.StatusOK, resdto.FromReservationViews(views))
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	views, err := h.q.List(c.Request.Context(), limit)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationViews(views))
}

// @Summary Approve reservation
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /reservations/{id}/approve [patch]
func (h *ReservationHandler) ApproveReservation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid reservation ID", nil)
		return
	}

	if err := h.cmds.Approve(c.Request.Context(), id); err != nil {
		h.writeModerationError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reservation approved"})
}

// @Summary Reject reservation
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Param request body reqdto.RejectReservationRequest false "Rejection reason"
// @Success 200 {object} map[string]string
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /reservations/{id}/reject [patch]
func (h *ReservationHandler) RejectReservation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid reservation ID", nil)
		return
	}

	var req reqdto.RejectReservationRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
			return
		}
	}

	if err := h.cmds.Reject(c.Request.Context(), id, req.Reason); err != nil {
		h.writeModerationError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reservation rejected"})
}

// @Summary Cancel reservation
// @Description Cancel the caller's own reservation before it starts
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /reservations/{id}/cancel [patch]
func (h *ReservationHandler) CancelReservation(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errMissingUserContext, "Internal server error", nil)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid reservation ID", nil)
		return
	}

	if err := h.cmds.Cancel(c.Request.Context(), id, userID); err != nil {
		switch {
		case errors.Is(err, commands.ErrReservationNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Reservation not found", nil)
		case errors.Is(err, commands.ErrReservationNotOwned):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "You can only cancel your own reservations", nil)
		case errors.Is(err, commands.ErrReservationStarted):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Reservation has already started", nil)
		case errors.Is(err, commands.ErrInvalidStatus):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Reservation is already closed", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reservation cancelled"})
}

// @Summary Check in
// @Description Check in with the reservation's check-in code. Arriving more
// than 15 minutes late forfeits the reservation.
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CheckInRequest true "Check-in code"
// @Success 200 {object} resdto.CheckInResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /reservations/check-in [post]
func (h *ReservationHandler) CheckIn(c *gin.Context) {
	var req reqdto.CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	outcome, err := h.cmds.CheckIn(c.Request.Context(), req.Code)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrCheckInCodeNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Invalid check-in code", nil)
		case errors.Is(err, commands.ErrCheckInNotOpen):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Check-in opens 15 minutes before the start time", nil)
		case errors.Is(err, commands.ErrInvalidStatus):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Reservation cannot be checked in", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}
	c.JSON(http.StatusOK, resdto.FromCheckInOutcome(outcome))
}

// @Summary Check out
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /reservations/{id}/check-out [patch]
func (h *ReservationHandler) CheckOut(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid reservation ID", nil)
		return
	}

	if err := h.cmds.CheckOut(c.Request.Context(), id); err != nil {
		h.writeModerationError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Checked out"})
}

// writeModerationError maps the shared moderation failures. An invalid status
// transition is a policy violation, not contention, so it answers 400.
func (h *ReservationHandler) writeModerationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrReservationNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Reservation not found", nil)
	case errors.Is(err, commands.ErrInvalidStatus):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Operation not allowed in current status", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}
