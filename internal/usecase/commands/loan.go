package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"library-reserve/internal/domain/book"
	"library-reserve/internal/domain/loan"
	"library-reserve/internal/domain/waitlist"
	"library-reserve/internal/infra"
	"library-reserve/internal/notify"
	"library-reserve/internal/pkg/clock"
	"library-reserve/internal/pkg/config"
	"library-reserve/internal/pkg/errs"
	"library-reserve/internal/usecase/queries"
	"library-reserve/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound            = errs.New("user not found")
	ErrBookNotFound            = errs.New("book not found")
	ErrBookUnavailable         = errs.New("book is not available")
	ErrOverdueLoans            = errs.New("user has overdue loans")
	ErrLoanLimitReached        = errs.New("maximum number of active loans reached")
	ErrLoanNotFound            = errs.New("loan not found")
	ErrLoanNotActive           = errs.New("loan is not active")
	ErrLoanOverdue             = errs.New("overdue loans cannot be extended")
	ErrExtensionLimit          = errs.New("extension limit reached")
	ErrBookStillAvailable      = errs.New("book is available, borrow it directly")
	ErrAlreadyOnWaitlist       = errs.New("user is already on the waitlist")
	ErrWaitlistEntryNotFound   = errs.New("waitlist entry not found")
	ErrLoanModified            = errs.New("loan was modified concurrently")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

type LoanCommands interface {
	CreateLoan(ctx context.Context, userID, bookID uuid.UUID, dueDate *time.Time) (*queries.LoanView, error)
	ReturnLoan(ctx context.Context, loanID uuid.UUID) error
	ExtendLoan(ctx context.Context, loanID uuid.UUID, days int) (*queries.LoanView, error)
	JoinWaitlist(ctx context.Context, userID, bookID uuid.UUID) (uuid.UUID, error)
	LeaveWaitlist(ctx context.Context, entryID uuid.UUID) error
}

type loanUseCaseImpl struct {
	uow         shared.UnitOfWork
	loanQueries queries.LoanQueries
	policy      config.PolicyConfig
	clock       clock.Clock
}

func NewLoanUseCase(
	uow shared.UnitOfWork,
	loanQueries queries.LoanQueries,
	policy config.PolicyConfig,
	clock clock.Clock,
) LoanCommands {
	return &loanUseCaseImpl{
		uow:         uow,
		loanQueries: loanQueries,
		policy:      policy,
		clock:       clock,
	}
}

// CreateLoan checks the borrowing preconditions in order (user, book, book
// availability, overdue gate, active-loan cap) and then flips the book to
// ON_LOAN and inserts the loan in the same transaction.
func (u *loanUseCaseImpl) CreateLoan(
	ctx context.Context,
	userID, bookID uuid.UUID,
	dueDate *time.Time,
) (*queries.LoanView, error) {
	now := u.clock.Now()

	var loanID uuid.UUID
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		reads := tx.Reads()

		if _, err := reads.UserByID(ctx, userID); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrUserNotFound)
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		bookSnap, err := reads.BookByID(ctx, bookID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrBookNotFound)
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		b := bookFromSnapshot(bookSnap)
		if err := b.Lend(); err != nil {
			return errs.Mark(
				errs.New(fmt.Sprintf("book is not available (current status: %s)", bookSnap.Status)),
				ErrBookUnavailable,
			)
		}

		overdue, err := reads.CountOverdueLoans(ctx, userID, now)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if overdue > 0 {
			return errs.Mark(
				errs.New(fmt.Sprintf("user has %d overdue loan(s)", overdue)),
				ErrOverdueLoans,
			)
		}

		active, err := reads.CountActiveLoans(ctx, userID)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if active >= u.policy.MaxActiveLoans {
			return errs.Mark(
				errs.New(fmt.Sprintf("user already has %d active loans", active)),
				ErrLoanLimitReached,
			)
		}

		due := now.AddDate(0, 0, u.policy.LoanPeriodDays)
		if dueDate != nil {
			due = *dueDate
		}
		l, err := loan.NewLoan(userID, bookID, due, now)
		if err != nil {
			return errs.Mark(err, ErrLoanNotActive)
		}

		if err := tx.Books().UpdateStatus(ctx, bookID, b.Status()); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		loanID, err = tx.Loans().Create(ctx, l)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		n := notify.BookBorrowed(userID, loanID, bookSnap.Title, due)
		if err := tx.Notifications().CreateJob(ctx, n, now); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	view, err := u.loanQueries.GetByID(ctx, loanID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

// ReturnLoan closes the loan and makes the book borrowable again. Waitlist
// promotion is not done here; the hourly sweep picks the book up.
func (u *loanUseCaseImpl) ReturnLoan(ctx context.Context, loanID uuid.UUID) error {
	now := u.clock.Now()

	return u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().LoanByID(ctx, loanID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrLoanNotFound)
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		l := loanFromSnapshot(snap)
		if err := l.Return(now); err != nil {
			return errs.Mark(
				errs.New(fmt.Sprintf("loan cannot be returned (current status: %s)", snap.Status)),
				ErrLoanNotActive,
			)
		}

		bookSnap, err := tx.Reads().BookByID(ctx, snap.BookID)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		b := bookFromSnapshot(bookSnap)
		if err := b.Return(); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if err := tx.Books().UpdateStatus(ctx, snap.BookID, b.Status()); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if err := tx.Loans().MarkReturned(ctx, loanID, now); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		n := notify.BookReturned(snap.UserID, loanID, snap.BookTitle)
		if err := tx.Notifications().CreateJob(ctx, n, now); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
}

// ExtendLoan pushes the due date forward. The write is a compare-and-set on
// extension_count so two concurrent extends cannot both consume the same slot.
func (u *loanUseCaseImpl) ExtendLoan(ctx context.Context, loanID uuid.UUID, days int) (*queries.LoanView, error) {
	now := u.clock.Now()
	if days <= 0 {
		days = u.policy.ExtensionDays
	}

	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().LoanByID(ctx, loanID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrLoanNotFound)
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		l := loanFromSnapshot(snap)
		if err := l.Extend(days, now); err != nil {
			switch {
			case errors.Is(err, loan.ErrNotBorrowed):
				return errs.Mark(err, ErrLoanNotActive)
			case errors.Is(err, loan.ErrOverdue):
				return errs.Mark(err, ErrLoanOverdue)
			case errors.Is(err, loan.ErrExtensionLimit):
				return errs.Mark(err, ErrExtensionLimit)
			default:
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
		}

		if err := tx.Loans().ExtendCAS(ctx, loanID, l.DueDate(), snap.ExtensionCount); err != nil {
			// Zero rows means another extend consumed this slot first.
			if infra.IsKind(err, infra.KindConflict) {
				return errs.Mark(err, ErrLoanModified)
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		left := loan.MaxExtensions - l.ExtensionCount()
		n := notify.LoanExtended(snap.UserID, loanID, snap.BookTitle, l.DueDate(), left)
		if err := tx.Notifications().CreateJob(ctx, n, now); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	view, err := u.loanQueries.GetByID(ctx, loanID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

// JoinWaitlist queues the user for a book that is currently out. A book that is
// sitting on the shelf has no waitlist: borrow it instead.
func (u *loanUseCaseImpl) JoinWaitlist(ctx context.Context, userID, bookID uuid.UUID) (uuid.UUID, error) {
	now := u.clock.Now()

	var entryID uuid.UUID
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		reads := tx.Reads()

		if _, err := reads.UserByID(ctx, userID); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrUserNotFound)
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		bookSnap, err := reads.BookByID(ctx, bookID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrBookNotFound)
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if bookFromSnapshot(bookSnap).IsAvailable() {
			return errs.Mark(errs.New("book is on the shelf"), ErrBookStillAvailable)
		}

		existing, err := reads.WaitlistEntryByUserAndBook(ctx, userID, bookID)
		if err != nil && !infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if existing != nil {
			return errs.Mark(errs.New("duplicate waitlist entry"), ErrAlreadyOnWaitlist)
		}

		e := waitlist.NewEntry(userID, bookID, now)
		entryID, err = tx.Waitlist().Create(ctx, e)
		if err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return errs.Mark(err, ErrAlreadyOnWaitlist)
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return entryID, nil
}

func (u *loanUseCaseImpl) LeaveWaitlist(ctx context.Context, entryID uuid.UUID) error {
	return u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Waitlist().Delete(ctx, entryID); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrWaitlistEntryNotFound)
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
}

func loanFromSnapshot(s *shared.LoanSnapshot) *loan.Loan {
	return loan.ReconstructLoan(
		s.ID, s.UserID, s.BookID,
		s.DueDate, s.ReturnedDate, s.Status, s.ExtensionCount, s.CreatedAt,
	)
}

func bookFromSnapshot(s *shared.BookSnapshot) *book.Book {
	return book.ReconstructBook(s.ID, s.ISBN, s.Title, s.Author, s.Year, s.Status)
}
