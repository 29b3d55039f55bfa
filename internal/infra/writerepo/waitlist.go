package writerepo

import (
	"context"
	"time"

	"library-reserve/internal/domain/waitlist"
	"library-reserve/internal/infra"
	"library-reserve/internal/infra/db"

	"github.com/google/uuid"
)

type WaitlistRepository struct {
	db db.DBTX
}

func NewWaitlistRepository(dbtx db.DBTX) *WaitlistRepository {
	return &WaitlistRepository{db: dbtx}
}

func (r *WaitlistRepository) Create(ctx context.Context, e *waitlist.Entry) (uuid.UUID, error) {
	_, err := r.db.Exec(ctx,
		`INSERT INTO waitlist_entries (id, user_id, book_id, notified, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		e.ID(), e.UserID(), e.BookID(), e.Notified(), e.CreatedAt(),
	)
	if err != nil {
		return uuid.Nil, wrapWriteErr("failed to create waitlist entry", err)
	}
	return e.ID(), nil
}

func (r *WaitlistRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM waitlist_entries WHERE id = $1`, id)
	if err != nil {
		return wrapWriteErr("failed to delete waitlist entry", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("waitlist entry not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *WaitlistRepository) MarkNotified(ctx context.Context, id uuid.UUID, at time.Time) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE waitlist_entries
		 SET notified = true, notified_at = $2
		 WHERE id = $1 AND notified = false`,
		id, at,
	)
	if err != nil {
		return wrapWriteErr("failed to mark waitlist entry notified", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("waitlist entry already notified", nil, infra.KindConflict)
	}
	return nil
}
