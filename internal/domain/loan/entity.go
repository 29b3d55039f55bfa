package loan

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// MaxExtensions caps how many times a single loan can be extended.
const MaxExtensions = 2

var (
	ErrNotBorrowed    = errors.New("loan is not in borrowed status")
	ErrOverdue        = errors.New("loan is overdue")
	ErrExtensionLimit = errors.New("maximum number of extensions reached")
	ErrInvalidDueDate = errors.New("due date cannot be in the past")
)

// Loan is append-only borrow history: created on borrow, mutated on extend and
// return, never deleted.
type Loan struct {
	id             uuid.UUID
	userID         uuid.UUID
	bookID         uuid.UUID
	dueDate        time.Time
	returnedDate   *time.Time
	status         Status
	extensionCount int
	createdAt      time.Time
}

func NewLoan(userID, bookID uuid.UUID, dueDate, now time.Time) (*Loan, error) {
	if dueDate.Before(now) {
		return nil, ErrInvalidDueDate
	}

	return &Loan{
		id:        uuid.New(),
		userID:    userID,
		bookID:    bookID,
		dueDate:   dueDate,
		status:    StatusBorrowed,
		createdAt: now,
	}, nil
}

func ReconstructLoan(
	id, userID, bookID uuid.UUID,
	dueDate time.Time,
	returnedDate *time.Time,
	status Status,
	extensionCount int,
	createdAt time.Time,
) *Loan {
	return &Loan{
		id:             id,
		userID:         userID,
		bookID:         bookID,
		dueDate:        dueDate,
		returnedDate:   returnedDate,
		status:         status,
		extensionCount: extensionCount,
		createdAt:      createdAt,
	}
}

func (l *Loan) Return(now time.Time) error {
	if l.status != StatusBorrowed {
		return ErrNotBorrowed
	}
	l.status = StatusReturned
	l.returnedDate = &now
	return nil
}

// Extend pushes the due date forward by days. An overdue loan cannot be
// extended regardless of how many extensions remain.
func (l *Loan) Extend(days int, now time.Time) error {
	if l.status != StatusBorrowed {
		return ErrNotBorrowed
	}
	if l.dueDate.Before(now) {
		return ErrOverdue
	}
	if l.extensionCount >= MaxExtensions {
		return ErrExtensionLimit
	}

	l.dueDate = l.dueDate.AddDate(0, 0, days)
	l.extensionCount++
	return nil
}

func (l *Loan) IsOverdue(now time.Time) bool {
	return l.status == StatusBorrowed && l.dueDate.Before(now)
}

func (l *Loan) ID() uuid.UUID            { return l.id }
func (l *Loan) UserID() uuid.UUID        { return l.userID }
func (l *Loan) BookID() uuid.UUID        { return l.bookID }
func (l *Loan) DueDate() time.Time       { return l.dueDate }
func (l *Loan) ReturnedDate() *time.Time { return l.returnedDate }
func (l *Loan) Status() Status           { return l.status }
func (l *Loan) ExtensionCount() int      { return l.extensionCount }
func (l *Loan) CreatedAt() time.Time     { return l.createdAt }
