package writerepo

import (
	"context"

	"library-reserve/internal/domain/book"
	"library-reserve/internal/infra"
	"library-reserve/internal/infra/db"

	"github.com/google/uuid"
)

type BookRepository struct {
	db db.DBTX
}

func NewBookRepository(dbtx db.DBTX) *BookRepository {
	return &BookRepository{db: dbtx}
}

func (r *BookRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status book.Status) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE books SET status = $2, updated_at = now() WHERE id = $1`,
		id, string(status),
	)
	if err != nil {
		return wrapWriteErr("failed to update book status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("book not found", nil, infra.KindNotFound)
	}
	return nil
}
