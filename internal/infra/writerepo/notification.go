package writerepo

import (
	"context"
	"encoding/json"
	"time"

	"library-reserve/internal/infra"
	"library-reserve/internal/infra/db"
	"library-reserve/internal/notify"

	"github.com/google/uuid"
)

// NotificationRepository writes outbox jobs. The job row commits with the
// operation that produced it; the dispatcher picks up queued rows afterwards.
type NotificationRepository struct {
	db db.DBTX
}

func NewNotificationRepository(dbtx db.DBTX) *NotificationRepository {
	return &NotificationRepository{db: dbtx}
}

func (r *NotificationRepository) CreateJob(ctx context.Context, n notify.Notification, runAt time.Time) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return infra.WrapRepoErr("failed to marshal notification payload", err)
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO notification_jobs (id, user_id, kind, payload, run_at, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, 'queued', now())`,
		uuid.New(), n.UserID, string(n.Type), payload, runAt,
	)
	if err != nil {
		return wrapWriteErr("failed to create notification job", err)
	}
	return nil
}
