//go:build unit || e2e

package builder

import (
	"time"

	domreservation "library-reserve/internal/domain/reservation"
	reqdto "library-reserve/internal/handler/dto/request"
	"library-reserve/internal/usecase/queries"
	"library-reserve/internal/usecase/shared"

	"github.com/google/uuid"
)

type ReservationBuilder struct {
	UserID      uuid.UUID
	UserName    string
	RoomID      *uuid.UUID
	SeatID      *uuid.UUID
	TimeslotID  uuid.UUID
	StartTime   time.Time
	EndTime     time.Time
	Status      domreservation.Status
	CheckInCode string
	Note        string
	CreatedAt   time.Time
}

// NewReservationBuilder defaults to a room reservation starting two hours from
// now, so the slot is in the future but the check-in window is not yet open.
func NewReservationBuilder() *ReservationBuilder {
	now := time.Now()
	roomID := uuid.New()
	return &ReservationBuilder{
		UserID:      uuid.New(),
		UserName:    "Test Student",
		RoomID:      &roomID,
		TimeslotID:  uuid.New(),
		StartTime:   now.Add(2 * time.Hour),
		EndTime:     now.Add(4 * time.Hour),
		Status:      domreservation.StatusPending,
		CheckInCode: uuid.NewString(),
		CreatedAt:   now,
	}
}

func (b *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(b)
	return b
}

func (b *ReservationBuilder) BuildDomain() (*domreservation.Reservation, error) {
	slot, err := domreservation.NewTimeSlot(b.StartTime, b.EndTime)
	if err != nil {
		return nil, err
	}
	return domreservation.NewReservation(
		b.UserID, b.RoomID, b.SeatID, b.TimeslotID,
		slot, domreservation.NewNote(b.Note), b.CreatedAt,
	)
}

// BuildReconstructed bypasses creation-time validation so tests can start from
// any status.
func (b *ReservationBuilder) BuildReconstructed() *domreservation.Reservation {
	return domreservation.ReconstructReservation(
		uuid.New(), b.UserID, b.RoomID, b.SeatID, b.TimeslotID,
		domreservation.ReconstructTimeSlot(b.StartTime, b.EndTime),
		b.Status, b.CheckInCode, domreservation.NewNote(b.Note),
		b.CreatedAt, b.CreatedAt,
	)
}

func (b *ReservationBuilder) BuildSnapshot() *shared.ReservationSnapshot {
	return &shared.ReservationSnapshot{
		ID:          uuid.New(),
		UserID:      b.UserID,
		RoomID:      b.RoomID,
		SeatID:      b.SeatID,
		TimeslotID:  b.TimeslotID,
		StartTime:   b.StartTime,
		EndTime:     b.EndTime,
		Status:      b.Status,
		CheckInCode: b.CheckInCode,
		Note:        b.Note,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.CreatedAt,
	}
}

func (b *ReservationBuilder) BuildView() *queries.ReservationView {
	var note *string
	if b.Note != "" {
		n := b.Note
		note = &n
	}
	return &queries.ReservationView{
		ID:          uuid.New(),
		UserID:      b.UserID,
		UserName:    b.UserName,
		RoomID:      b.RoomID,
		SeatID:      b.SeatID,
		TimeslotID:  b.TimeslotID,
		StartTime:   b.StartTime,
		EndTime:     b.EndTime,
		Status:      string(b.Status),
		CheckInCode: b.CheckInCode,
		Note:        note,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.CreatedAt,
	}
}

func (b *ReservationBuilder) BuildCreateRequestDTO() reqdto.CreateReservationRequest {
	var note *string
	if b.Note != "" {
		n := b.Note
		note = &n
	}
	return reqdto.CreateReservationRequest{
		RoomID:     b.RoomID,
		SeatID:     b.SeatID,
		TimeslotID: b.TimeslotID,
		Note:       note,
	}
}

func (b *ReservationBuilder) WithUserID(userID uuid.UUID) *ReservationBuilder {
	b.UserID = userID
	return b
}

func (b *ReservationBuilder) WithSeat(seatID uuid.UUID) *ReservationBuilder {
	b.RoomID = nil
	b.SeatID = &seatID
	return b
}

func (b *ReservationBuilder) WithRoom(roomID uuid.UUID) *ReservationBuilder {
	b.RoomID = &roomID
	b.SeatID = nil
	return b
}

func (b *ReservationBuilder) WithSlot(start, end time.Time) *ReservationBuilder {
	b.StartTime = start
	b.EndTime = end
	return b
}

func (b *ReservationBuilder) WithStatus(status domreservation.Status) *ReservationBuilder {
	b.Status = status
	return b
}

func (b *ReservationBuilder) WithNote(note string) *ReservationBuilder {
	b.Note = note
	return b
}

func (b *ReservationBuilder) AsConfirmed() *ReservationBuilder {
	b.Status = domreservation.StatusConfirmed
	return b
}
