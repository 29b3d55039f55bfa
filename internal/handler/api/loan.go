package api

import (
	"errors"
	"net/http"
	"strconv"

	reqdto "library-reserve/internal/handler/dto/request"
	resdto "library-reserve/internal/handler/dto/response"
	"library-reserve/internal/handler/httperr"
	"library-reserve/internal/usecase/commands"
	"library-reserve/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type LoanHandler struct {
	cmds commands.LoanCommands
	q    queries.LoanQueries
}

func NewLoanHandler(cmds commands.LoanCommands, q queries.LoanQueries) *LoanHandler {
	return &LoanHandler{cmds: cmds, q: q}
}

// @Summary Borrow a book
// @Description Create a loan for a user and an available book
// @Tags loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateLoanRequest true "Loan request"
// @Success 201 {object} resdto.LoanResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /loans [post]
func (h *LoanHandler) CreateLoan(c *gin.Context) {
	var req reqdto.CreateLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	view, err := h.cmds.CreateLoan(c.Request.Context(), req.UserID, req.BookID, req.DueDate)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrUserNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "User not found", nil)
		case errors.Is(err, commands.ErrBookNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Book not found", nil)
		case errors.Is(err, commands.ErrBookUnavailable):
			httperr.AbortWithError(c, http.StatusConflict, err, "Book is not available", nil)
		case errors.Is(err, commands.ErrOverdueLoans):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Borrowing is blocked while overdue loans exist", nil)
		case errors.Is(err, commands.ErrLoanLimitReached):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Maximum number of active loans reached", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromLoanView(view))
}

// @Summary Get loan
// @Tags loans
// @Produce json
// @Security BearerAuth
// @Param id path string true "Loan ID"
// @Success 200 {object} resdto.LoanResponse
// @Failure 404 {object} httperr.Response
// @Router /loans/{id} [get]
func (h *LoanHandler) GetLoan(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid loan ID", nil)
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithError(c, http.StatusNotFound, err, "Loan not found", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromLoanView(view))
}

// @Summary List loans
// @Description List loans, optionally filtered by user
// @Tags loans
// @Produce json
// @Security BearerAuth
// @Param user_id query string false "Filter by user ID"
// @Param limit query int false "Page size"
// @Success 200 {array} resdto.LoanResponse
// @Router /loans [get]
func (h *LoanHandler) GetLoans(c *gin.Context) {
	if rawUserID := c.Query("user_id"); rawUserID != "" {
		userID, err := uuid.Parse(rawUserID)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid user ID", nil)
			return
		}
		views, err := h.q.ListByUser(c.Request.Context(), userID)
		if err != nil {
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
			return
		}
		c.JSON(http.StatusOK, resdto.FromLoanViews(views))
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	views, err := h.q.List(c.Request.Context(), limit)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromLoanViews(views))
}

// @Summary List overdue loans
// @Tags loans
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.LoanResponse
// @Router /loans/overdue [get]
func (h *LoanHandler) GetOverdueLoans(c *gin.Context) {
	views, err := h.q.ListOverdue(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromLoanViews(views))
}

// @Summary Return a book
// @Tags loans
// @Produce json
// @Security BearerAuth
// @Param id path string true "Loan ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /loans/{id}/return [patch]
func (h *LoanHandler) ReturnLoan(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid loan ID", nil)
		return
	}

	if err := h.cmds.ReturnLoan(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, commands.ErrLoanNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Loan not found", nil)
		case errors.Is(err, commands.ErrLoanNotActive):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Loan is already returned", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Book returned"})
}

// @Summary Extend a loan
// @Tags loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Loan ID"
// @Param request body reqdto.ExtendLoanRequest false "Extension request"
// @Success 200 {object} resdto.LoanResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /loans/{id}/extend [patch]
func (h *LoanHandler) ExtendLoan(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid loan ID", nil)
		return
	}

	// Body is optional; an empty body extends by the default policy period.
	var req reqdto.ExtendLoanRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
			return
		}
	}

	view, err := h.cmds.ExtendLoan(c.Request.Context(), id, req.Days)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrLoanNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Loan not found", nil)
		case errors.Is(err, commands.ErrLoanNotActive):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Only active loans can be extended", nil)
		case errors.Is(err, commands.ErrLoanOverdue):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Overdue loans cannot be extended", nil)
		case errors.Is(err, commands.ErrExtensionLimit):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Extension limit reached", nil)
		case errors.Is(err, commands.ErrLoanModified):
			httperr.AbortWithError(c, http.StatusConflict, err, "Loan was modified concurrently, try again", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}
	c.JSON(http.StatusOK, resdto.FromLoanView(view))
}

// @Summary Join a book's waitlist
// @Tags waitlist
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.JoinWaitlistRequest true "Waitlist request"
// @Success 201 {object} map[string]string
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /loans/waitlist [post]
func (h *LoanHandler) JoinWaitlist(c *gin.Context) {
	var req reqdto.JoinWaitlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	entryID, err := h.cmds.JoinWaitlist(c.Request.Context(), req.UserID, req.BookID)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrUserNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "User not found", nil)
		case errors.Is(err, commands.ErrBookNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Book not found", nil)
		case errors.Is(err, commands.ErrBookStillAvailable):
			httperr.AbortWithError(c, http.StatusConflict, err, "Book is available, borrow it directly", nil)
		case errors.Is(err, commands.ErrAlreadyOnWaitlist):
			httperr.AbortWithError(c, http.StatusConflict, err, "Already on the waitlist for this book", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": entryID.String()})
}

// @Summary Leave a waitlist
// @Tags waitlist
// @Produce json
// @Security BearerAuth
// @Param id path string true "Waitlist entry ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} httperr.Response
// @Router /loans/waitlist/{id} [delete]
func (h *LoanHandler) LeaveWaitlist(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid waitlist entry ID", nil)
		return
	}

	if err := h.cmds.LeaveWaitlist(c.Request.Context(), id); err != nil {
		if errors.Is(err, commands.ErrWaitlistEntryNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Waitlist entry not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Removed from waitlist"})
}

// @Summary Get a book's waitlist
// @Tags waitlist
// @Produce json
// @Security BearerAuth
// @Param bookId path string true "Book ID"
// @Success 200 {array} resdto.WaitlistEntryResponse
// @Router /loans/waitlist/{bookId} [get]
func (h *LoanHandler) GetWaitlist(c *gin.Context) {
	bookID, err := uuid.Parse(c.Param("bookId"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid book ID", nil)
		return
	}

	views, err := h.q.GetWaitlist(c.Request.Context(), bookID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromWaitlistEntryViews(views))
}
