//go:build unit || e2e

package builder

import (
	"time"

	domloan "library-reserve/internal/domain/loan"
	reqdto "library-reserve/internal/handler/dto/request"
	"library-reserve/internal/usecase/queries"
	"library-reserve/internal/usecase/shared"

	"github.com/google/uuid"
)

type LoanBuilder struct {
	UserID         uuid.UUID
	UserName       string
	UserEmail      string
	BookID         uuid.UUID
	BookTitle      string
	BookISBN       string
	Status         domloan.Status
	DueDate        time.Time
	ReturnedDate   *time.Time
	ExtensionCount int
	CreatedAt      time.Time
}

func NewLoanBuilder() *LoanBuilder {
	now := time.Now()
	return &LoanBuilder{
		UserID:    uuid.New(),
		UserName:  "Test Student",
		UserEmail: "student@example.edu",
		BookID:    uuid.New(),
		BookTitle: "The Go Programming Language",
		BookISBN:  "978-0134190440",
		Status:    domloan.StatusBorrowed,
		DueDate:   now.AddDate(0, 0, 14),
		CreatedAt: now,
	}
}

func (b *LoanBuilder) With(mutate func(*LoanBuilder)) *LoanBuilder {
	mutate(b)
	return b
}

func (b *LoanBuilder) BuildDomain() (*domloan.Loan, error) {
	return domloan.NewLoan(b.UserID, b.BookID, b.DueDate, b.CreatedAt)
}

func (b *LoanBuilder) BuildSnapshot() *shared.LoanSnapshot {
	return &shared.LoanSnapshot{
		ID:             uuid.New(),
		UserID:         b.UserID,
		BookID:         b.BookID,
		BookTitle:      b.BookTitle,
		DueDate:        b.DueDate,
		ReturnedDate:   b.ReturnedDate,
		Status:         b.Status,
		ExtensionCount: b.ExtensionCount,
		CreatedAt:      b.CreatedAt,
	}
}

func (b *LoanBuilder) BuildView() *queries.LoanView {
	return &queries.LoanView{
		ID:             uuid.New(),
		UserID:         b.UserID,
		UserName:       b.UserName,
		UserEmail:      b.UserEmail,
		BookID:         b.BookID,
		BookTitle:      b.BookTitle,
		BookISBN:       b.BookISBN,
		Status:         string(b.Status),
		DueDate:        b.DueDate,
		ReturnedDate:   b.ReturnedDate,
		ExtensionCount: b.ExtensionCount,
		CreatedAt:      b.CreatedAt,
	}
}

func (b *LoanBuilder) BuildCreateRequestDTO() reqdto.CreateLoanRequest {
	return reqdto.CreateLoanRequest{
		UserID: b.UserID,
		BookID: b.BookID,
	}
}

func (b *LoanBuilder) WithUserID(userID uuid.UUID) *LoanBuilder {
	b.UserID = userID
	return b
}

func (b *LoanBuilder) WithBookID(bookID uuid.UUID) *LoanBuilder {
	b.BookID = bookID
	return b
}

func (b *LoanBuilder) WithDueDate(dueDate time.Time) *LoanBuilder {
	b.DueDate = dueDate
	return b
}

func (b *LoanBuilder) WithExtensionCount(count int) *LoanBuilder {
	b.ExtensionCount = count
	return b
}

func (b *LoanBuilder) AsReturned(returnedAt time.Time) *LoanBuilder {
	b.Status = domloan.StatusReturned
	b.ReturnedDate = &returnedAt
	return b
}

func (b *LoanBuilder) AsOverdue(now time.Time) *LoanBuilder {
	b.DueDate = now.AddDate(0, 0, -1)
	return b
}
