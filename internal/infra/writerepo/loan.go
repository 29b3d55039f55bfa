package writerepo

import (
	"context"
	"time"

	"library-reserve/internal/domain/loan"
	"library-reserve/internal/infra"
	"library-reserve/internal/infra/db"

	"github.com/google/uuid"
)

type LoanRepository struct {
	db db.DBTX
}

func NewLoanRepository(dbtx db.DBTX) *LoanRepository {
	return &LoanRepository{db: dbtx}
}

func (r *LoanRepository) Create(ctx context.Context, l *loan.Loan) (uuid.UUID, error) {
	_, err := r.db.Exec(ctx,
		`INSERT INTO loans (id, user_id, book_id, due_date, status, extension_count, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		l.ID(), l.UserID(), l.BookID(), l.DueDate(), string(l.Status()), l.ExtensionCount(), l.CreatedAt(),
	)
	if err != nil {
		return uuid.Nil, wrapWriteErr("failed to create loan", err)
	}
	return l.ID(), nil
}

func (r *LoanRepository) MarkReturned(ctx context.Context, id uuid.UUID, returnedAt time.Time) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE loans
		 SET status = $2, returned_date = $3, updated_at = now()
		 WHERE id = $1 AND status = $4`,
		id, string(loan.StatusReturned), returnedAt, string(loan.StatusBorrowed),
	)
	if err != nil {
		return wrapWriteErr("failed to mark loan returned", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("loan is not in borrowed status", nil, infra.KindConflict)
	}
	return nil
}

// ExtendCAS only succeeds if extension_count still matches what the caller
// read, so two concurrent extends cannot both consume the same slot.
func (r *LoanRepository) ExtendCAS(ctx context.Context, id uuid.UUID, newDueDate time.Time, expectedCount int) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE loans
		 SET due_date = $2, extension_count = extension_count + 1, updated_at = now()
		 WHERE id = $1 AND extension_count = $3 AND status = $4`,
		id, newDueDate, expectedCount, string(loan.StatusBorrowed),
	)
	if err != nil {
		return wrapWriteErr("failed to extend loan", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("loan was modified concurrently", nil, infra.KindConflict)
	}
	return nil
}
