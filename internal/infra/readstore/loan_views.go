package readstore

import (
	"context"

	"library-reserve/internal/infra"
	"library-reserve/internal/infra/db"
	"library-reserve/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type LoanReadStore struct {
	db db.DBTX
}

func NewLoanReadStore(dbtx db.DBTX) *LoanReadStore {
	return &LoanReadStore{db: dbtx}
}

const loanViewQuery = `
	SELECT l.id, l.user_id, u.name, u.email,
	       l.book_id, b.title, b.isbn,
	       l.status, l.due_date, l.returned_date, l.extension_count, l.created_at
	FROM loans l
	JOIN users u ON u.id = l.user_id
	JOIN books b ON b.id = l.book_id`

func scanLoanView(row pgx.Row) (*queries.LoanView, error) {
	var v queries.LoanView
	err := row.Scan(&v.ID, &v.UserID, &v.UserName, &v.UserEmail,
		&v.BookID, &v.BookTitle, &v.BookISBN,
		&v.Status, &v.DueDate, &v.ReturnedDate, &v.ExtensionCount, &v.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *LoanReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.LoanView, error) {
	v, err := scanLoanView(r.db.QueryRow(ctx, loanViewQuery+` WHERE l.id = $1`, id))
	if err != nil {
		return nil, notFoundOr(err, "failed to find loan view")
	}
	return v, nil
}

func (r *LoanReadStore) FindAll(ctx context.Context, limit, offset int32) ([]*queries.LoanView, error) {
	return r.queryViews(ctx,
		loanViewQuery+` ORDER BY l.created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
}

func (r *LoanReadStore) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*queries.LoanView, error) {
	return r.queryViews(ctx,
		loanViewQuery+` WHERE l.user_id = $1 ORDER BY l.created_at DESC`, userID)
}

func (r *LoanReadStore) FindOverdue(ctx context.Context) ([]*queries.LoanView, error) {
	return r.queryViews(ctx,
		loanViewQuery+` WHERE l.status = 'BORROWED' AND l.due_date < now() ORDER BY l.due_date ASC`)
}

func (r *LoanReadStore) FindWaitlistByBookID(ctx context.Context, bookID uuid.UUID) ([]*queries.WaitlistEntryView, error) {
	rows, err := r.db.Query(ctx,
		`SELECT w.id, w.user_id, u.name, w.book_id, b.title, w.notified, w.notified_at, w.created_at
		 FROM waitlist_entries w
		 JOIN users u ON u.id = w.user_id
		 JOIN books b ON b.id = w.book_id
		 WHERE w.book_id = $1
		 ORDER BY w.created_at ASC`, bookID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query waitlist", err)
	}
	defer rows.Close()

	var out []*queries.WaitlistEntryView
	for rows.Next() {
		var v queries.WaitlistEntryView
		if err := rows.Scan(&v.ID, &v.UserID, &v.UserName, &v.BookID, &v.BookTitle,
			&v.Notified, &v.NotifiedAt, &v.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan waitlist entry", err)
		}
		out = append(out, &v)
	}
	return out, rows.Err()
}

func (r *LoanReadStore) queryViews(ctx context.Context, sql string, args ...any) ([]*queries.LoanView, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query loan views", err)
	}
	defer rows.Close()

	var out []*queries.LoanView
	for rows.Next() {
		v, err := scanLoanView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan loan view", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
