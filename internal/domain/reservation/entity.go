package reservation

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	// EarlyCheckInWindow is how long before the slot start check-in opens.
	EarlyCheckInWindow = 15 * time.Minute
	// LateCheckInGrace is how long after the slot start check-in is still
	// honored; beyond it the reservation is forfeited.
	LateCheckInGrace = 15 * time.Minute
)

var (
	ErrExactlyOneResource = errors.New("exactly one of room or seat must be set")
	ErrSlotInPast         = errors.New("cannot reserve a timeslot in the past")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrNotOwner           = errors.New("reservation belongs to another user")
	ErrAlreadyStarted     = errors.New("reservation has already started")
	ErrCheckInNotOpen     = errors.New("check-in is not yet available")
)

// Reservation binds a user to exactly one room or seat for one timeslot. The
// slot bounds are denormalized at creation time so window arithmetic never
// depends on later calendar edits.
type Reservation struct {
	id          uuid.UUID
	userID      uuid.UUID
	roomID      *uuid.UUID
	seatID      *uuid.UUID
	timeslotID  uuid.UUID
	slot        TimeSlot
	status      Status
	checkInCode string
	note        Note
	createdAt   time.Time
	updatedAt   time.Time
}

func NewReservation(
	userID uuid.UUID,
	roomID, seatID *uuid.UUID,
	timeslotID uuid.UUID,
	slot TimeSlot,
	note Note,
	now time.Time,
) (*Reservation, error) {
	if (roomID == nil) == (seatID == nil) {
		return nil, ErrExactlyOneResource
	}
	if slot.StartsBefore(now) {
		return nil, ErrSlotInPast
	}

	return &Reservation{
		id:          uuid.New(),
		userID:      userID,
		roomID:      roomID,
		seatID:      seatID,
		timeslotID:  timeslotID,
		slot:        slot,
		status:      StatusPending,
		checkInCode: uuid.NewString(),
		note:        note,
		createdAt:   now,
	}, nil
}

func ReconstructReservation(
	id, userID uuid.UUID,
	roomID, seatID *uuid.UUID,
	timeslotID uuid.UUID,
	slot TimeSlot,
	status Status,
	checkInCode string,
	note Note,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:          id,
		userID:      userID,
		roomID:      roomID,
		seatID:      seatID,
		timeslotID:  timeslotID,
		slot:        slot,
		status:      status,
		checkInCode: checkInCode,
		note:        note,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (r *Reservation) Approve() error {
	return r.apply(OpApprove)
}

// Reject moves a pending reservation to CANCELLED with the reason recorded in
// the note. No dedicated REJECTED status exists; a rejection is a cancellation
// initiated by staff.
func (r *Reservation) Reject(reason string) error {
	if err := r.apply(OpReject); err != nil {
		return err
	}
	if reason != "" {
		r.note = r.note.Append("Rejected: " + reason)
	} else {
		r.note = r.note.Append("Rejected by staff")
	}
	return nil
}

func (r *Reservation) Cancel(requesterID uuid.UUID, now time.Time) error {
	if r.userID != requesterID {
		return ErrNotOwner
	}
	// A closed reservation reports the status problem even when the slot is
	// also in the past.
	if r.status.IsTerminal() {
		return ErrInvalidTransition
	}
	if r.slot.StartsBefore(now) {
		return ErrAlreadyStarted
	}
	return r.apply(OpCancel)
}

// CheckInResult reports which side of the window a check-in landed on.
type CheckInResult struct {
	Forfeited   bool
	LateMinutes int
}

// CheckIn evaluates the three time regions around the slot start: before
// start-15m the attempt is rejected, up to start+15m it succeeds (late within
// grace included), beyond that the reservation is forfeited. Forfeiture is
// lazy: it happens on the check-in attempt, not on a background timer.
func (r *Reservation) CheckIn(now time.Time) (CheckInResult, error) {
	if _, ok := nextStatus(r.status, OpCheckIn); !ok {
		return CheckInResult{}, ErrInvalidTransition
	}

	windowStart := r.slot.Start().Add(-EarlyCheckInWindow)
	if now.Before(windowStart) {
		return CheckInResult{}, ErrCheckInNotOpen
	}

	if now.After(r.slot.Start()) {
		lateMinutes := int(now.Sub(r.slot.Start()).Minutes())
		if time.Duration(lateMinutes)*time.Minute > LateCheckInGrace {
			if err := r.apply(OpForfeit); err != nil {
				return CheckInResult{}, err
			}
			r.note = r.note.Append(fmt.Sprintf("Forfeited due to late check-in (%d minutes late)", lateMinutes))
			return CheckInResult{Forfeited: true, LateMinutes: lateMinutes}, nil
		}

		if err := r.apply(OpCheckIn); err != nil {
			return CheckInResult{}, err
		}
		return CheckInResult{LateMinutes: lateMinutes}, nil
	}

	if err := r.apply(OpCheckIn); err != nil {
		return CheckInResult{}, err
	}
	return CheckInResult{}, nil
}

func (r *Reservation) CheckOut() error {
	return r.apply(OpCheckOut)
}

func (r *Reservation) apply(op Operation) error {
	to, ok := nextStatus(r.status, op)
	if !ok {
		return ErrInvalidTransition
	}
	r.status = to
	return nil
}

func (r *Reservation) IsActive() bool {
	return r.status.IsActive()
}

func (r *Reservation) ID() uuid.UUID         { return r.id }
func (r *Reservation) UserID() uuid.UUID     { return r.userID }
func (r *Reservation) RoomID() *uuid.UUID    { return r.roomID }
func (r *Reservation) SeatID() *uuid.UUID    { return r.seatID }
func (r *Reservation) TimeslotID() uuid.UUID { return r.timeslotID }
func (r *Reservation) Slot() TimeSlot        { return r.slot }
func (r *Reservation) Status() Status        { return r.status }
func (r *Reservation) CheckInCode() string   { return r.checkInCode }
func (r *Reservation) Note() Note            { return r.note }
func (r *Reservation) CreatedAt() time.Time  { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time  { return r.updatedAt }
