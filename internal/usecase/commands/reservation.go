package commands

import (
	"context"
	"errors"
	"fmt"

	"library-reserve/internal/domain/reservation"
	"library-reserve/internal/domain/timeslot"
	"library-reserve/internal/infra"
	"library-reserve/internal/notify"
	"library-reserve/internal/pkg/clock"
	"library-reserve/internal/pkg/config"
	"library-reserve/internal/pkg/errs"
	"library-reserve/internal/usecase/queries"
	"library-reserve/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrExactlyOneResource   = errs.New("exactly one of roomId or seatId must be provided")
	ErrRoomNotFound         = errs.New("room not found")
	ErrSeatNotFound         = errs.New("seat not found")
	ErrTimeslotNotFound     = errs.New("timeslot not found")
	ErrTimeslotBlocked      = errs.New("timeslot is blocked")
	ErrTimeslotInPast       = errs.New("cannot reserve a past timeslot")
	ErrDuplicateTimeslot    = errs.New("user already has a reservation for this timeslot")
	ErrDailyLimitExceeded   = errs.New("daily reservation limit exceeded")
	ErrResourceConflict     = errs.New("resource is already reserved for this timeslot")
	ErrReservationNotFound  = errs.New("reservation not found")
	ErrReservationNotOwned  = errs.New("reservation belongs to another user")
	ErrReservationStarted   = errs.New("reservation has already started")
	ErrInvalidStatus        = errs.New("operation not allowed in current status")
	ErrCheckInNotOpen       = errs.New("check-in window is not open yet")
	ErrCheckInCodeNotFound  = errs.New("invalid check-in code")
)

type CreateReservationParams struct {
	UserID     uuid.UUID
	RoomID     *uuid.UUID
	SeatID     *uuid.UUID
	TimeslotID uuid.UUID
	Note       string
}

// CheckInOutcome reports what the check-in attempt did: a successful check-in,
// possibly late within grace, or a forfeiture past the grace period.
type CheckInOutcome struct {
	ReservationID uuid.UUID
	Status        reservation.Status
	Forfeited     bool
	LateMinutes   int
}

type ReservationCommands interface {
	CreateReservation(ctx context.Context, p CreateReservationParams) (*queries.ReservationView, error)
	Approve(ctx context.Context, id uuid.UUID) error
	Reject(ctx context.Context, id uuid.UUID, reason string) error
	Cancel(ctx context.Context, id, requesterID uuid.UUID) error
	CheckIn(ctx context.Context, code string) (*CheckInOutcome, error)
	CheckOut(ctx context.Context, id uuid.UUID) error
}

type reservationUseCaseImpl struct {
	uow                shared.UnitOfWork
	reservationQueries queries.ReservationQueries
	policy             config.PolicyConfig
	clock              clock.Clock
}

func NewReservationUseCase(
	uow shared.UnitOfWork,
	reservationQueries queries.ReservationQueries,
	policy config.PolicyConfig,
	clock clock.Clock,
) ReservationCommands {
	return &reservationUseCaseImpl{
		uow:                uow,
		reservationQueries: reservationQueries,
		policy:             policy,
		clock:              clock,
	}
}

// CreateReservation validates in order: resource shape, user, timeslot, slot in
// the future, per-timeslot uniqueness, daily quota, resource existence,
// resource conflict. All checks run inside the transaction that inserts the
// row. An advisory lock on the room serializes concurrent bookings that touch
// it (room or seat-in-room); the partial unique indexes additionally reject
// duplicate inserts for the identical resource.
func (u *reservationUseCaseImpl) CreateReservation(
	ctx context.Context,
	p CreateReservationParams,
) (*queries.ReservationView, error) {
	now := u.clock.Now()

	if (p.RoomID == nil) == (p.SeatID == nil) {
		return nil, ErrExactlyOneResource
	}

	var reservationID uuid.UUID
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		reads := tx.Reads()

		if _, err := reads.UserByID(ctx, p.UserID); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrUserNotFound)
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		tsSnap, err := reads.TimeslotByID(ctx, p.TimeslotID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrTimeslotNotFound)
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if tsSnap.Blocked {
			return errs.Mark(errs.New("timeslot is blocked for maintenance"), ErrTimeslotBlocked)
		}

		ts := timeslot.ReconstructTimeslot(tsSnap.ID, tsSnap.RoomID, tsSnap.StartTime, tsSnap.EndTime, tsSnap.Blocked)
		if !ts.StartsInFuture(now) {
			return errs.Mark(errs.New("timeslot has already started"), ErrTimeslotInPast)
		}

		taken, err := reads.HasActiveUserReservation(ctx, p.UserID, p.TimeslotID)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if taken {
			return errs.Mark(errs.New("duplicate reservation for timeslot"), ErrDuplicateTimeslot)
		}

		if err := u.checkDailyQuota(ctx, reads, p.UserID, ts); err != nil {
			return err
		}
		if err := u.checkResource(ctx, tx, p); err != nil {
			return err
		}

		slot, err := reservation.NewTimeSlot(tsSnap.StartTime, tsSnap.EndTime)
		if err != nil {
			return errs.Mark(err, ErrTimeslotNotFound)
		}
		res, err := reservation.NewReservation(
			p.UserID, p.RoomID, p.SeatID, p.TimeslotID,
			slot, reservation.NewNote(p.Note), now,
		)
		if err != nil {
			if errors.Is(err, reservation.ErrExactlyOneResource) {
				return errs.Mark(err, ErrExactlyOneResource)
			}
			return errs.Mark(err, ErrTimeslotInPast)
		}

		reservationID, err = tx.Reservations().Create(ctx, res)
		if err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return errs.Mark(err, ErrResourceConflict)
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		admins, err := reads.AdminUsers(ctx)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		for _, a := range admins {
			n := notify.PendingApproval(a.ID, reservationID, p.UserID)
			if err := tx.Notifications().CreateJob(ctx, n, now); err != nil {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	view, err := u.reservationQueries.GetByID(ctx, reservationID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

// checkDailyQuota sums the user's active reservations on the slot's calendar
// day. A day totalling exactly the limit is fine; only exceeding it fails.
func (u *reservationUseCaseImpl) checkDailyQuota(
	ctx context.Context,
	reads shared.CommandReads,
	userID uuid.UUID,
	ts *timeslot.Timeslot,
) error {
	dayStart, dayEnd := ts.DayBounds()
	existing, err := reads.ActiveReservationsOnDay(ctx, userID, dayStart, dayEnd)
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	total := reservation.ReconstructTimeSlot(ts.Start(), ts.End()).Hours()
	for _, r := range existing {
		total += reservation.ReconstructTimeSlot(r.StartTime, r.EndTime).Hours()
	}
	if total > u.policy.DailyReservationLimit.Hours() {
		return errs.Mark(
			errs.New(fmt.Sprintf("daily total would be %.1fh (limit %s)", total, u.policy.DailyReservationLimit)),
			ErrDailyLimitExceeded,
		)
	}
	return nil
}

// checkResource verifies the requested room or seat exists and is free for the
// timeslot. A room conflict includes seats inside that room and vice versa.
// Before the conflict reads it takes the advisory lock on the room (a seat's
// parent room for seat bookings), so a concurrent room-vs-seat pair cannot
// both pass their EXISTS checks.
func (u *reservationUseCaseImpl) checkResource(
	ctx context.Context,
	tx shared.Tx,
	p CreateReservationParams,
) error {
	reads := tx.Reads()

	if p.RoomID != nil {
		if _, err := reads.RoomByID(ctx, *p.RoomID); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrRoomNotFound)
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if err := tx.Reservations().AcquireRoomLock(ctx, *p.RoomID); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		busy, err := reads.HasActiveRoomReservation(ctx, *p.RoomID, p.TimeslotID)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if busy {
			return errs.Mark(errs.New("room is already reserved"), ErrResourceConflict)
		}
		return nil
	}

	seatSnap, err := reads.SeatByID(ctx, *p.SeatID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, ErrSeatNotFound)
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if err := tx.Reservations().AcquireRoomLock(ctx, seatSnap.RoomID); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	busy, err := reads.HasActiveSeatReservation(ctx, *p.SeatID, p.TimeslotID)
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if busy {
		return errs.Mark(errs.New("seat is already reserved"), ErrResourceConflict)
	}
	return nil
}

func (u *reservationUseCaseImpl) Approve(ctx context.Context, id uuid.UUID) error {
	now := u.clock.Now()

	return u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, res, err := loadReservation(ctx, tx, id)
		if err != nil {
			return err
		}

		if err := res.Approve(); err != nil {
			return markInvalidStatus(snap.Status)
		}
		if err := tx.Reservations().UpdateStatus(ctx, id, res.Status(), res.Note().String()); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		n := notify.ReservationConfirmed(snap.UserID, id, snap.StartTime, snap.EndTime)
		if err := tx.Notifications().CreateJob(ctx, n, now); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
}

func (u *reservationUseCaseImpl) Reject(ctx context.Context, id uuid.UUID, reason string) error {
	now := u.clock.Now()

	return u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, res, err := loadReservation(ctx, tx, id)
		if err != nil {
			return err
		}

		if err := res.Reject(reason); err != nil {
			return markInvalidStatus(snap.Status)
		}
		if err := tx.Reservations().UpdateStatus(ctx, id, res.Status(), res.Note().String()); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		n := notify.ReservationRejected(snap.UserID, id, reason)
		if err := tx.Notifications().CreateJob(ctx, n, now); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
}

func (u *reservationUseCaseImpl) Cancel(ctx context.Context, id, requesterID uuid.UUID) error {
	now := u.clock.Now()

	return u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, res, err := loadReservation(ctx, tx, id)
		if err != nil {
			return err
		}

		if err := res.Cancel(requesterID, now); err != nil {
			switch {
			case errors.Is(err, reservation.ErrNotOwner):
				return errs.Mark(err, ErrReservationNotOwned)
			case errors.Is(err, reservation.ErrAlreadyStarted):
				return errs.Mark(err, ErrReservationStarted)
			default:
				return markInvalidStatus(snap.Status)
			}
		}
		if err := tx.Reservations().UpdateStatus(ctx, id, res.Status(), res.Note().String()); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		n := notify.ReservationCanceled(snap.UserID, id, false)
		if err := tx.Notifications().CreateJob(ctx, n, now); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
}

// CheckIn resolves the reservation by its check-in code. Attempts more than 15
// minutes past the slot start forfeit the reservation instead of checking in;
// the forfeiture is still reported as a successful state change.
func (u *reservationUseCaseImpl) CheckIn(ctx context.Context, code string) (*CheckInOutcome, error) {
	now := u.clock.Now()

	var outcome *CheckInOutcome
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().ReservationByCheckInCode(ctx, code)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrCheckInCodeNotFound)
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		res := reservationFromSnapshot(snap)

		result, err := res.CheckIn(now)
		if err != nil {
			switch {
			case errors.Is(err, reservation.ErrCheckInNotOpen):
				return errs.Mark(err, ErrCheckInNotOpen)
			default:
				return markInvalidStatus(snap.Status)
			}
		}

		if err := tx.Reservations().UpdateStatus(ctx, snap.ID, res.Status(), res.Note().String()); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		outcome = &CheckInOutcome{
			ReservationID: snap.ID,
			Status:        res.Status(),
			Forfeited:     result.Forfeited,
			LateMinutes:   result.LateMinutes,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return outcome, nil
}

func (u *reservationUseCaseImpl) CheckOut(ctx context.Context, id uuid.UUID) error {
	return u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, res, err := loadReservation(ctx, tx, id)
		if err != nil {
			return err
		}

		if err := res.CheckOut(); err != nil {
			return markInvalidStatus(snap.Status)
		}
		if err := tx.Reservations().UpdateStatus(ctx, id, res.Status(), res.Note().String()); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
}

func loadReservation(ctx context.Context, tx shared.Tx, id uuid.UUID) (*shared.ReservationSnapshot, *reservation.Reservation, error) {
	snap, err := tx.Reads().ReservationByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, nil, errs.Mark(err, ErrReservationNotFound)
		}
		return nil, nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return snap, reservationFromSnapshot(snap), nil
}

func markInvalidStatus(current reservation.Status) error {
	return errs.Mark(
		errs.New(fmt.Sprintf("operation not allowed in status %s", current)),
		ErrInvalidStatus,
	)
}

func reservationFromSnapshot(s *shared.ReservationSnapshot) *reservation.Reservation {
	return reservation.ReconstructReservation(
		s.ID, s.UserID, s.RoomID, s.SeatID, s.TimeslotID,
		reservation.ReconstructTimeSlot(s.StartTime, s.EndTime),
		s.Status, s.CheckInCode, reservation.NewNote(s.Note),
		s.CreatedAt, s.UpdatedAt,
	)
}
