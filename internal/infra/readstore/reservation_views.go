package readstore

import (
	"context"

	"library-reserve/internal/infra"
	"library-reserve/internal/infra/db"
	"library-reserve/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ReservationReadStore struct {
	db db.DBTX
}

func NewReservationReadStore(dbtx db.DBTX) *ReservationReadStore {
	return &ReservationReadStore{db: dbtx}
}

const reservationViewQuery = `
	SELECT r.id, r.user_id, u.name,
	       r.room_id, rm.name, r.seat_id, s.label,
	       r.timeslot_id, r.start_time, r.end_time,
	       r.status, r.check_in_code, r.note, r.created_at, r.updated_at
	FROM reservations r
	JOIN users u ON u.id = r.user_id
	LEFT JOIN rooms rm ON rm.id = r.room_id
	LEFT JOIN seats s ON s.id = r.seat_id`

func scanReservationView(row pgx.Row) (*queries.ReservationView, error) {
	var v queries.ReservationView
	err := row.Scan(&v.ID, &v.UserID, &v.UserName,
		&v.RoomID, &v.RoomName, &v.SeatID, &v.SeatLabel,
		&v.TimeslotID, &v.StartTime, &v.EndTime,
		&v.Status, &v.CheckInCode, &v.Note, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	v, err := scanReservationView(r.db.QueryRow(ctx, reservationViewQuery+` WHERE r.id = $1`, id))
	if err != nil {
		return nil, notFoundOr(err, "failed to find reservation view")
	}
	return v, nil
}

func (r *ReservationReadStore) FindAll(ctx context.Context, limit, offset int32) ([]*queries.ReservationView, error) {
	return r.queryViews(ctx,
		reservationViewQuery+` ORDER BY r.start_time DESC LIMIT $1 OFFSET $2`, limit, offset)
}

func (r *ReservationReadStore) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*queries.ReservationView, error) {
	return r.queryViews(ctx,
		reservationViewQuery+` WHERE r.user_id = $1 ORDER BY r.start_time DESC`, userID)
}

func (r *ReservationReadStore) queryViews(ctx context.Context, sql string, args ...any) ([]*queries.ReservationView, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query reservation views", err)
	}
	defer rows.Close()

	var out []*queries.ReservationView
	for rows.Next() {
		v, err := scanReservationView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation view", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
