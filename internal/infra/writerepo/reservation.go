package writerepo

import (
	"context"

	"library-reserve/internal/domain/reservation"
	"library-reserve/internal/infra"
	"library-reserve/internal/infra/db"

	"github.com/google/uuid"
)

type ReservationRepository struct {
	db db.DBTX
}

func NewReservationRepository(dbtx db.DBTX) *ReservationRepository {
	return &ReservationRepository{db: dbtx}
}

// Create relies on the partial unique indexes over active reservations: a
// concurrent insert for the same resource and timeslot surfaces here as a
// KindConflict error.
func (r *ReservationRepository) Create(ctx context.Context, res *reservation.Reservation) (uuid.UUID, error) {
	var note *string
	if !res.Note().IsEmpty() {
		s := res.Note().String()
		note = &s
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO reservations
		   (id, user_id, room_id, seat_id, timeslot_id, start_time, end_time,
		    status, check_in_code, note, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11)`,
		res.ID(), res.UserID(), res.RoomID(), res.SeatID(), res.TimeslotID(),
		res.Slot().Start(), res.Slot().End(),
		string(res.Status()), res.CheckInCode(), note, res.CreatedAt(),
	)
	if err != nil {
		return uuid.Nil, wrapWriteErr("failed to create reservation", err)
	}
	return res.ID(), nil
}

// AcquireRoomLock serializes every booking that touches the room, whether it
// reserves the room itself or a seat inside it. pg_advisory_xact_lock releases
// with the transaction, so the conflict EXISTS checks that follow see any
// committed competitor.
func (r *ReservationRepository) AcquireRoomLock(ctx context.Context, roomID uuid.UUID) error {
	_, err := r.db.Exec(ctx,
		`SELECT pg_advisory_xact_lock(hashtextextended($1::text, 0))`,
		roomID,
	)
	if err != nil {
		return wrapWriteErr("failed to lock room", err)
	}
	return nil
}

func (r *ReservationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status reservation.Status, note string) error {
	var notePtr *string
	if note != "" {
		notePtr = &note
	}

	tag, err := r.db.Exec(ctx,
		`UPDATE reservations
		 SET status = $2, note = $3, updated_at = now()
		 WHERE id = $1`,
		id, string(status), notePtr,
	)
	if err != nil {
		return wrapWriteErr("failed to update reservation status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return nil
}
