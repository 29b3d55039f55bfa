package queries

import (
	"context"

	"github.com/google/uuid"
)

type LoanViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*LoanView, error)
	FindAll(ctx context.Context, limit, offset int32) ([]*LoanView, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*LoanView, error)
	FindOverdue(ctx context.Context) ([]*LoanView, error)
	FindWaitlistByBookID(ctx context.Context, bookID uuid.UUID) ([]*WaitlistEntryView, error)
}

type LoanQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*LoanView, error)
	List(ctx context.Context, limit int) ([]*LoanView, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*LoanView, error)
	// ListOverdue returns BORROWED loans past due, earliest due date first.
	ListOverdue(ctx context.Context) ([]*LoanView, error)
	GetWaitlist(ctx context.Context, bookID uuid.UUID) ([]*WaitlistEntryView, error)
}

type loanQueriesImpl struct {
	repo LoanViewRepo
}

func NewLoanQueries(repo LoanViewRepo) LoanQueries {
	return &loanQueriesImpl{repo: repo}
}

func (q *loanQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*LoanView, error) {
	return q.repo.FindByID(ctx, id)
}

func (q *loanQueriesImpl) List(ctx context.Context, limit int) ([]*LoanView, error) {
	if limit <= 0 {
		limit = 50
	}
	return q.repo.FindAll(ctx, int32(limit), 0)
}

func (q *loanQueriesImpl) ListByUser(ctx context.Context, userID uuid.UUID) ([]*LoanView, error) {
	return q.repo.FindByUserID(ctx, userID)
}

func (q *loanQueriesImpl) ListOverdue(ctx context.Context) ([]*LoanView, error) {
	return q.repo.FindOverdue(ctx)
}

func (q *loanQueriesImpl) GetWaitlist(ctx context.Context, bookID uuid.UUID) ([]*WaitlistEntryView, error) {
	return q.repo.FindWaitlistByBookID(ctx, bookID)
}
