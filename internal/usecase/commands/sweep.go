package commands

import (
	"context"
	"time"

	"library-reserve/internal/domain/waitlist"
	"library-reserve/internal/infra"
	"library-reserve/internal/notify"
	"library-reserve/internal/pkg/clock"
	"library-reserve/internal/pkg/config"
	"library-reserve/internal/pkg/errs"
	"library-reserve/internal/usecase/shared"
)

// SweepCommands are the periodic passes the scheduler drives. Each sweep runs
// in its own transaction and returns how many notifications it enqueued, so
// the scheduler can log a per-run count.
type SweepCommands interface {
	// ReservationReminders notifies holders of confirmed reservations that
	// start roughly a day from now. Runs hourly; the one-hour window keeps
	// consecutive runs from overlapping.
	ReservationReminders(ctx context.Context) (int, error)
	// CheckInReminders notifies holders whose check-in window is about to
	// open. Runs every five minutes.
	CheckInReminders(ctx context.Context) (int, error)
	// DueSoonReminders notifies borrowers whose loans fall due in a few days.
	// Runs once a day at midnight.
	DueSoonReminders(ctx context.Context) (int, error)
	// OverdueReminders nags borrowers with overdue loans. Runs daily and
	// repeats until the book comes back; duplicates are intended.
	OverdueReminders(ctx context.Context) (int, error)
	// PromoteWaitlist offers each available book to the earliest un-notified
	// waiter. The offer is advisory: the book stays AVAILABLE and the first
	// user to borrow wins.
	PromoteWaitlist(ctx context.Context) (int, error)
}

type sweepUseCaseImpl struct {
	uow   shared.UnitOfWork
	sweep config.SweepConfig
	clock clock.Clock
}

func NewSweepUseCase(uow shared.UnitOfWork, sweep config.SweepConfig, clock clock.Clock) SweepCommands {
	return &sweepUseCaseImpl{uow: uow, sweep: sweep, clock: clock}
}

func (u *sweepUseCaseImpl) ReservationReminders(ctx context.Context) (int, error) {
	now := u.clock.Now()
	from := now.Add(u.sweep.ReservationReminderLead)
	to := from.Add(time.Hour)

	var sent int
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		upcoming, err := tx.Reads().ConfirmedReservationsStartingBetween(ctx, from, to)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		for _, r := range upcoming {
			n := notify.ReservationReminder(r.UserID, r.ID, r.StartTime)
			if err := tx.Notifications().CreateJob(ctx, n, now); err != nil {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
			sent++
		}
		return nil
	})
	return sent, err
}

func (u *sweepUseCaseImpl) CheckInReminders(ctx context.Context) (int, error) {
	now := u.clock.Now()
	from := now.Add(u.sweep.CheckInReminderLead)
	to := from.Add(5 * time.Minute)

	var sent int
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		upcoming, err := tx.Reads().ConfirmedReservationsStartingBetween(ctx, from, to)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		for _, r := range upcoming {
			n := notify.CheckInReminder(r.UserID, r.ID, r.StartTime)
			if err := tx.Notifications().CreateJob(ctx, n, now); err != nil {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
			sent++
		}
		return nil
	})
	return sent, err
}

func (u *sweepUseCaseImpl) DueSoonReminders(ctx context.Context) (int, error) {
	now := u.clock.Now()
	y, m, d := now.Date()
	dayStart := time.Date(y, m, d, 0, 0, 0, 0, now.Location()).AddDate(0, 0, u.sweep.DueSoonLeadDays)
	dayEnd := dayStart.Add(24 * time.Hour)

	var sent int
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		due, err := tx.Reads().BorrowedLoansDueBetween(ctx, dayStart, dayEnd)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		for _, l := range due {
			n := notify.BookDueSoon(l.UserID, l.ID, l.BookTitle, l.DueDate)
			if err := tx.Notifications().CreateJob(ctx, n, now); err != nil {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
			sent++
		}
		return nil
	})
	return sent, err
}

func (u *sweepUseCaseImpl) OverdueReminders(ctx context.Context) (int, error) {
	now := u.clock.Now()

	var sent int
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		overdue, err := tx.Reads().BorrowedLoansOverdue(ctx, now)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		for _, l := range overdue {
			n := notify.BookOverdue(l.UserID, l.ID, l.BookTitle, l.DueDate)
			if err := tx.Notifications().CreateJob(ctx, n, now); err != nil {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
			sent++
		}
		return nil
	})
	return sent, err
}

func (u *sweepUseCaseImpl) PromoteWaitlist(ctx context.Context) (int, error) {
	now := u.clock.Now()

	var promoted int
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		reads := tx.Reads()

		books, err := reads.BooksWithUnnotifiedWaiters(ctx)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		for _, b := range books {
			entry, err := reads.NextUnnotifiedWaiter(ctx, b.ID)
			if err != nil {
				if infra.IsKind(err, infra.KindNotFound) {
					continue
				}
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}

			e := waitlist.ReconstructEntry(entry.ID, entry.UserID, entry.BookID, entry.Notified, entry.NotifiedAt, entry.CreatedAt)
			if err := e.MarkNotified(now); err != nil {
				// Another run got here first; leave the entry alone.
				continue
			}
			if err := tx.Waitlist().MarkNotified(ctx, e.ID(), now); err != nil {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
			n := notify.WaitlistAvailable(e.UserID(), b.ID, b.Title, b.Author, now)
			if err := tx.Notifications().CreateJob(ctx, n, now); err != nil {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
			promoted++
		}
		return nil
	})
	return promoted, err
}
