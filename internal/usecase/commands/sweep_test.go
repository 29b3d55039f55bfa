//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"library-reserve/internal/domain/book"
	"library-reserve/internal/domain/loan"
	"library-reserve/internal/domain/reservation"
	"library-reserve/internal/domain/user"
	"library-reserve/internal/notify"
	"library-reserve/internal/pkg/clock"
	"library-reserve/internal/pkg/config"
	"library-reserve/internal/usecase/commands"
	"library-reserve/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type SweepCommandsTestSuite struct {
	suite.Suite
	store *fakeStore
	clock *clock.MockClock
	cmds  commands.SweepCommands

	now    time.Time
	userID uuid.UUID
}

func (s *SweepCommandsTestSuite) SetupTest() {
	s.store = newFakeStore()
	s.now = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	s.clock = clock.NewMockClock(s.now)
	s.cmds = commands.NewSweepUseCase(&fakeUoW{store: s.store}, config.NewTestConfig().Sweep, s.clock)

	s.userID = uuid.New()
	s.store.users[s.userID] = shared.UserSnapshot{
		ID: s.userID, Name: "Test Student", Email: "student@example.edu", Role: user.RoleStudent,
	}
}

func TestSweepCommandsSuite(t *testing.T) {
	suite.Run(t, new(SweepCommandsTestSuite))
}

func (s *SweepCommandsTestSuite) seedReservationAt(start time.Time, status reservation.Status) uuid.UUID {
	id := uuid.New()
	s.store.reservations[id] = &shared.ReservationSnapshot{
		ID:          id,
		UserID:      s.userID,
		TimeslotID:  uuid.New(),
		StartTime:   start,
		EndTime:     start.Add(2 * time.Hour),
		Status:      status,
		CheckInCode: uuid.NewString(),
		CreatedAt:   s.now,
		UpdatedAt:   s.now,
	}
	return id
}

func (s *SweepCommandsTestSuite) seedLoanDue(due time.Time, status loan.Status) uuid.UUID {
	id := uuid.New()
	s.store.loans[id] = &shared.LoanSnapshot{
		ID:        id,
		UserID:    s.userID,
		BookID:    uuid.New(),
		BookTitle: "The Go Programming Language",
		DueDate:   due,
		Status:    status,
		CreatedAt: s.now.AddDate(0, 0, -7),
	}
	return id
}

func (s *SweepCommandsTestSuite) notificationTypes() []notify.Type {
	var out []notify.Type
	for _, n := range s.store.notifications {
		out = append(out, n.Type)
	}
	return out
}

func (s *SweepCommandsTestSuite) TestReservationReminders() {
	ctx := context.Background()

	// Lead is 24h, window is one hour wide and half-open.
	windowStart := s.now.Add(24 * time.Hour)

	s.seedReservationAt(windowStart, reservation.StatusConfirmed)
	s.seedReservationAt(windowStart.Add(59*time.Minute), reservation.StatusConfirmed)
	s.seedReservationAt(windowStart.Add(-time.Minute), reservation.StatusConfirmed)  // before window
	s.seedReservationAt(windowStart.Add(time.Hour), reservation.StatusConfirmed)     // at exclusive end
	s.seedReservationAt(windowStart.Add(30*time.Minute), reservation.StatusPending)  // not confirmed
	s.seedReservationAt(windowStart.Add(30*time.Minute), reservation.StatusCancelled)

	sent, err := s.cmds.ReservationReminders(ctx)
	s.Require().NoError(err)
	s.Equal(2, sent)
	s.Len(s.store.notifications, 2)
	for _, n := range s.store.notifications {
		s.Equal(notify.TypeReservationReminder, n.Type)
	}
}

func (s *SweepCommandsTestSuite) TestCheckInReminders() {
	ctx := context.Background()

	// Lead is 15m, window is five minutes wide.
	windowStart := s.now.Add(15 * time.Minute)

	s.seedReservationAt(windowStart, reservation.StatusConfirmed)
	s.seedReservationAt(windowStart.Add(4*time.Minute), reservation.StatusConfirmed)
	s.seedReservationAt(windowStart.Add(5*time.Minute), reservation.StatusConfirmed) // at exclusive end
	s.seedReservationAt(windowStart, reservation.StatusPending)

	sent, err := s.cmds.CheckInReminders(ctx)
	s.Require().NoError(err)
	s.Equal(2, sent)
	s.Equal([]notify.Type{notify.TypeCheckInReminder, notify.TypeCheckInReminder}, s.notificationTypes())
}

func (s *SweepCommandsTestSuite) TestDueSoonReminders() {
	ctx := context.Background()

	// Lead is 3 days; the sweep covers that whole calendar day.
	targetDay := time.Date(2026, 3, 13, 0, 0, 0, 0, time.UTC)

	s.seedLoanDue(targetDay, loan.StatusBorrowed)
	s.seedLoanDue(targetDay.Add(23*time.Hour+59*time.Minute), loan.StatusBorrowed)
	s.seedLoanDue(targetDay.Add(-time.Second), loan.StatusBorrowed)  // previous day
	s.seedLoanDue(targetDay.Add(24*time.Hour), loan.StatusBorrowed)  // next day
	s.seedLoanDue(targetDay.Add(time.Hour), loan.StatusReturned)     // closed loan

	sent, err := s.cmds.DueSoonReminders(ctx)
	s.Require().NoError(err)
	s.Equal(2, sent)
	for _, n := range s.store.notifications {
		s.Equal(notify.TypeBookDueReminder, n.Type)
	}
}

func (s *SweepCommandsTestSuite) TestOverdueReminders() {
	ctx := context.Background()

	s.seedLoanDue(s.now.Add(-time.Hour), loan.StatusBorrowed)
	s.seedLoanDue(s.now.AddDate(0, 0, -5), loan.StatusBorrowed)
	s.seedLoanDue(s.now, loan.StatusBorrowed)                   // due right now, not overdue yet
	s.seedLoanDue(s.now.Add(time.Hour), loan.StatusBorrowed)    // still on time
	s.seedLoanDue(s.now.Add(-time.Hour), loan.StatusReturned)   // already returned

	sent, err := s.cmds.OverdueReminders(ctx)
	s.Require().NoError(err)
	s.Equal(2, sent)
	for _, n := range s.store.notifications {
		s.Equal(notify.TypeBookOverdue, n.Type)
	}
}

func (s *SweepCommandsTestSuite) TestPromoteWaitlist() {
	ctx := context.Background()

	seedBook := func(status book.Status) uuid.UUID {
		id := uuid.New()
		s.store.books[id] = &shared.BookSnapshot{
			ID: id, ISBN: "978-0134190440", Title: "The Go Programming Language",
			Author: "Donovan & Kernighan", Year: 2015, Status: status,
		}
		return id
	}
	seedWaiter := func(bookID uuid.UUID, createdAt time.Time, notified bool) uuid.UUID {
		id := uuid.New()
		s.store.waitlist[id] = &shared.WaitlistSnapshot{
			ID: id, UserID: uuid.New(), BookID: bookID, Notified: notified, CreatedAt: createdAt,
		}
		return id
	}

	s.Run("success: earliest waiter per available book gets the offer", func() {
		bookID := seedBook(book.StatusAvailable)
		first := seedWaiter(bookID, s.now.Add(-2*time.Hour), false)
		second := seedWaiter(bookID, s.now.Add(-time.Hour), false)

		promoted, err := s.cmds.PromoteWaitlist(ctx)
		s.Require().NoError(err)
		s.Equal(1, promoted)

		s.True(s.store.waitlist[first].Notified)
		s.Require().NotNil(s.store.waitlist[first].NotifiedAt)
		s.False(s.store.waitlist[second].Notified)

		s.Require().Len(s.store.notifications, 1)
		s.Equal(notify.TypeWaitlistAvailable, s.store.notifications[0].Type)
		s.Equal(s.store.waitlist[first].UserID, s.store.notifications[0].UserID)
	})

	s.Run("borrowed books are skipped", func() {
		s.SetupTest()
		bookID := seedBook(book.StatusOnLoan)
		seedWaiter(bookID, s.now.Add(-time.Hour), false)

		promoted, err := s.cmds.PromoteWaitlist(ctx)
		s.Require().NoError(err)
		s.Equal(0, promoted)
		s.Empty(s.store.notifications)
	})

	s.Run("an already-notified head does not get a second offer", func() {
		s.SetupTest()
		bookID := seedBook(book.StatusAvailable)
		seedWaiter(bookID, s.now.Add(-2*time.Hour), true)
		next := seedWaiter(bookID, s.now.Add(-time.Hour), false)

		promoted, err := s.cmds.PromoteWaitlist(ctx)
		s.Require().NoError(err)
		s.Equal(1, promoted)
		s.True(s.store.waitlist[next].Notified)
	})

	s.Run("no waiters means nothing to do", func() {
		s.SetupTest()
		seedBook(book.StatusAvailable)

		promoted, err := s.cmds.PromoteWaitlist(ctx)
		s.Require().NoError(err)
		s.Equal(0, promoted)
	})
}
