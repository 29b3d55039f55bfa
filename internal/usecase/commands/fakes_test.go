//go:build unit

package commands_test

import (
	"context"
	"sort"
	"time"

	"library-reserve/internal/domain/book"
	"library-reserve/internal/domain/loan"
	"library-reserve/internal/domain/reservation"
	"library-reserve/internal/domain/waitlist"
	"library-reserve/internal/infra"
	"library-reserve/internal/infra/db"
	"library-reserve/internal/notify"
	"library-reserve/internal/usecase/queries"
	"library-reserve/internal/usecase/shared"

	"github.com/google/uuid"
)

// fakeStore is an in-memory stand-in for the persistence layer. Every fake
// repository and read store operates on the same maps, so a command's writes
// are visible to its later reads the way they would be inside a transaction.
type fakeStore struct {
	users        map[uuid.UUID]shared.UserSnapshot
	books        map[uuid.UUID]*shared.BookSnapshot
	rooms        map[uuid.UUID]shared.RoomSnapshot
	seats        map[uuid.UUID]shared.SeatSnapshot
	timeslots    map[uuid.UUID]shared.TimeslotSnapshot
	loans        map[uuid.UUID]*shared.LoanSnapshot
	waitlist     map[uuid.UUID]*shared.WaitlistSnapshot
	reservations map[uuid.UUID]*shared.ReservationSnapshot

	notifications []notify.Notification
	// lockedRooms records AcquireRoomLock calls in order.
	lockedRooms []uuid.UUID
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:        make(map[uuid.UUID]shared.UserSnapshot),
		books:        make(map[uuid.UUID]*shared.BookSnapshot),
		rooms:        make(map[uuid.UUID]shared.RoomSnapshot),
		seats:        make(map[uuid.UUID]shared.SeatSnapshot),
		timeslots:    make(map[uuid.UUID]shared.TimeslotSnapshot),
		loans:        make(map[uuid.UUID]*shared.LoanSnapshot),
		waitlist:     make(map[uuid.UUID]*shared.WaitlistSnapshot),
		reservations: make(map[uuid.UUID]*shared.ReservationSnapshot),
	}
}

func notFound(msg string) error {
	return infra.WrapRepoErr(msg, nil, infra.KindNotFound)
}

type fakeUoW struct {
	store *fakeStore
}

func (u *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, &fakeTx{store: u.store})
}

func (u *fakeUoW) WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	return fn(ctx, nil)
}

func (u *fakeUoW) CommandReads() shared.CommandReads {
	return &fakeReads{store: u.store}
}

type fakeTx struct {
	store *fakeStore
}

func (t *fakeTx) Books() shared.BookRepository                 { return &fakeBookRepo{t.store} }
func (t *fakeTx) Loans() shared.LoanRepository                 { return &fakeLoanRepo{t.store} }
func (t *fakeTx) Waitlist() shared.WaitlistRepository          { return &fakeWaitlistRepo{t.store} }
func (t *fakeTx) Reservations() shared.ReservationRepository   { return &fakeReservationRepo{t.store} }
func (t *fakeTx) Notifications() shared.NotificationRepository { return &fakeNotificationRepo{t.store} }
func (t *fakeTx) Reads() shared.CommandReads                   { return &fakeReads{store: t.store} }
func (t *fakeTx) DB() db.DBTX                                  { return nil }

type fakeReads struct {
	store *fakeStore
}

func (r *fakeReads) UserByID(_ context.Context, id uuid.UUID) (*shared.UserSnapshot, error) {
	u, ok := r.store.users[id]
	if !ok {
		return nil, notFound("user not found")
	}
	return &u, nil
}

func (r *fakeReads) AdminUsers(_ context.Context) ([]shared.UserSnapshot, error) {
	var out []shared.UserSnapshot
	for _, u := range r.store.users {
		if u.Role.CanModerate() {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeReads) BookByID(_ context.Context, id uuid.UUID) (*shared.BookSnapshot, error) {
	b, ok := r.store.books[id]
	if !ok {
		return nil, notFound("book not found")
	}
	cp := *b
	return &cp, nil
}

func (r *fakeReads) RoomByID(_ context.Context, id uuid.UUID) (*shared.RoomSnapshot, error) {
	rm, ok := r.store.rooms[id]
	if !ok {
		return nil, notFound("room not found")
	}
	return &rm, nil
}

func (r *fakeReads) SeatByID(_ context.Context, id uuid.UUID) (*shared.SeatSnapshot, error) {
	s, ok := r.store.seats[id]
	if !ok {
		return nil, notFound("seat not found")
	}
	return &s, nil
}

func (r *fakeReads) TimeslotByID(_ context.Context, id uuid.UUID) (*shared.TimeslotSnapshot, error) {
	ts, ok := r.store.timeslots[id]
	if !ok {
		return nil, notFound("timeslot not found")
	}
	return &ts, nil
}

func (r *fakeReads) LoanByID(_ context.Context, id uuid.UUID) (*shared.LoanSnapshot, error) {
	l, ok := r.store.loans[id]
	if !ok {
		return nil, notFound("loan not found")
	}
	cp := *l
	return &cp, nil
}

func (r *fakeReads) CountActiveLoans(_ context.Context, userID uuid.UUID) (int, error) {
	n := 0
	for _, l := range r.store.loans {
		if l.UserID == userID && l.Status == loan.StatusBorrowed {
			n++
		}
	}
	return n, nil
}

func (r *fakeReads) CountOverdueLoans(_ context.Context, userID uuid.UUID, asOf time.Time) (int, error) {
	n := 0
	for _, l := range r.store.loans {
		if l.UserID == userID && l.Status == loan.StatusBorrowed && l.DueDate.Before(asOf) {
			n++
		}
	}
	return n, nil
}

func (r *fakeReads) WaitlistEntryByUserAndBook(_ context.Context, userID, bookID uuid.UUID) (*shared.WaitlistSnapshot, error) {
	for _, e := range r.store.waitlist {
		if e.UserID == userID && e.BookID == bookID {
			cp := *e
			return &cp, nil
		}
	}
	return nil, notFound("waitlist entry not found")
}

func (r *fakeReads) NextUnnotifiedWaiter(_ context.Context, bookID uuid.UUID) (*shared.WaitlistSnapshot, error) {
	var candidates []*shared.WaitlistSnapshot
	for _, e := range r.store.waitlist {
		if e.BookID == bookID && !e.Notified {
			candidates = append(candidates, e)
		}
	}
	if len(candidates) == 0 {
		return nil, notFound("no unnotified waiter")
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].CreatedAt.Before(candidates[j].CreatedAt)
	})
	cp := *candidates[0]
	return &cp, nil
}

func (r *fakeReads) BooksWithUnnotifiedWaiters(_ context.Context) ([]shared.BookSnapshot, error) {
	seen := make(map[uuid.UUID]bool)
	var out []shared.BookSnapshot
	for _, e := range r.store.waitlist {
		if e.Notified || seen[e.BookID] {
			continue
		}
		b, ok := r.store.books[e.BookID]
		if !ok || b.Status != book.StatusAvailable {
			continue
		}
		seen[e.BookID] = true
		out = append(out, *b)
	}
	return out, nil
}

func (r *fakeReads) ReservationByID(_ context.Context, id uuid.UUID) (*shared.ReservationSnapshot, error) {
	res, ok := r.store.reservations[id]
	if !ok {
		return nil, notFound("reservation not found")
	}
	cp := *res
	return &cp, nil
}

func (r *fakeReads) ReservationByCheckInCode(_ context.Context, code string) (*shared.ReservationSnapshot, error) {
	for _, res := range r.store.reservations {
		if res.CheckInCode == code {
			cp := *res
			return &cp, nil
		}
	}
	return nil, notFound("reservation not found")
}

func (r *fakeReads) HasActiveUserReservation(_ context.Context, userID, timeslotID uuid.UUID) (bool, error) {
	for _, res := range r.store.reservations {
		if res.UserID == userID && res.TimeslotID == timeslotID && res.Status.IsActive() {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeReads) HasActiveRoomReservation(_ context.Context, roomID, timeslotID uuid.UUID) (bool, error) {
	for _, res := range r.store.reservations {
		if res.TimeslotID != timeslotID || !res.Status.IsActive() {
			continue
		}
		if res.RoomID != nil && *res.RoomID == roomID {
			return true, nil
		}
		if res.SeatID != nil {
			if seat, ok := r.store.seats[*res.SeatID]; ok && seat.RoomID == roomID {
				return true, nil
			}
		}
	}
	return false, nil
}

func (r *fakeReads) HasActiveSeatReservation(_ context.Context, seatID, timeslotID uuid.UUID) (bool, error) {
	seat, ok := r.store.seats[seatID]
	for _, res := range r.store.reservations {
		if res.TimeslotID != timeslotID || !res.Status.IsActive() {
			continue
		}
		if res.SeatID != nil && *res.SeatID == seatID {
			return true, nil
		}
		if ok && res.RoomID != nil && *res.RoomID == seat.RoomID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeReads) ActiveReservationsOnDay(_ context.Context, userID uuid.UUID, dayStart, dayEnd time.Time) ([]shared.ReservationSnapshot, error) {
	var out []shared.ReservationSnapshot
	for _, res := range r.store.reservations {
		if res.UserID != userID || !res.Status.IsActive() {
			continue
		}
		if res.StartTime.Before(dayStart) || !res.StartTime.Before(dayEnd) {
			continue
		}
		out = append(out, *res)
	}
	return out, nil
}

func (r *fakeReads) ConfirmedReservationsStartingBetween(_ context.Context, from, to time.Time) ([]shared.ReservationSnapshot, error) {
	var out []shared.ReservationSnapshot
	for _, res := range r.store.reservations {
		if res.Status != reservation.StatusConfirmed {
			continue
		}
		if res.StartTime.Before(from) || !res.StartTime.Before(to) {
			continue
		}
		out = append(out, *res)
	}
	return out, nil
}

func (r *fakeReads) BorrowedLoansDueBetween(_ context.Context, from, to time.Time) ([]shared.LoanSnapshot, error) {
	var out []shared.LoanSnapshot
	for _, l := range r.store.loans {
		if l.Status != loan.StatusBorrowed {
			continue
		}
		if l.DueDate.Before(from) || !l.DueDate.Before(to) {
			continue
		}
		out = append(out, *l)
	}
	return out, nil
}

func (r *fakeReads) BorrowedLoansOverdue(_ context.Context, asOf time.Time) ([]shared.LoanSnapshot, error) {
	var out []shared.LoanSnapshot
	for _, l := range r.store.loans {
		if l.Status == loan.StatusBorrowed && l.DueDate.Before(asOf) {
			out = append(out, *l)
		}
	}
	return out, nil
}

type fakeBookRepo struct {
	store *fakeStore
}

func (r *fakeBookRepo) UpdateStatus(_ context.Context, id uuid.UUID, status book.Status) error {
	b, ok := r.store.books[id]
	if !ok {
		return notFound("book not found")
	}
	b.Status = status
	return nil
}

type fakeLoanRepo struct {
	store *fakeStore
}

func (r *fakeLoanRepo) Create(_ context.Context, l *loan.Loan) (uuid.UUID, error) {
	title := ""
	if b, ok := r.store.books[l.BookID()]; ok {
		title = b.Title
	}
	r.store.loans[l.ID()] = &shared.LoanSnapshot{
		ID:             l.ID(),
		UserID:         l.UserID(),
		BookID:         l.BookID(),
		BookTitle:      title,
		DueDate:        l.DueDate(),
		Status:         l.Status(),
		ExtensionCount: l.ExtensionCount(),
		CreatedAt:      l.CreatedAt(),
	}
	return l.ID(), nil
}

func (r *fakeLoanRepo) MarkReturned(_ context.Context, id uuid.UUID, returnedAt time.Time) error {
	l, ok := r.store.loans[id]
	if !ok {
		return notFound("loan not found")
	}
	l.Status = loan.StatusReturned
	l.ReturnedDate = &returnedAt
	return nil
}

func (r *fakeLoanRepo) ExtendCAS(_ context.Context, id uuid.UUID, newDueDate time.Time, expectedCount int) error {
	l, ok := r.store.loans[id]
	if !ok {
		return notFound("loan not found")
	}
	if l.ExtensionCount != expectedCount || l.Status != loan.StatusBorrowed {
		return infra.WrapRepoErr("loan was modified concurrently", nil, infra.KindConflict)
	}
	l.DueDate = newDueDate
	l.ExtensionCount++
	return nil
}

type fakeWaitlistRepo struct {
	store *fakeStore
}

func (r *fakeWaitlistRepo) Create(_ context.Context, e *waitlist.Entry) (uuid.UUID, error) {
	r.store.waitlist[e.ID()] = &shared.WaitlistSnapshot{
		ID:        e.ID(),
		UserID:    e.UserID(),
		BookID:    e.BookID(),
		Notified:  e.Notified(),
		CreatedAt: e.CreatedAt(),
	}
	return e.ID(), nil
}

func (r *fakeWaitlistRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.store.waitlist[id]; !ok {
		return notFound("waitlist entry not found")
	}
	delete(r.store.waitlist, id)
	return nil
}

func (r *fakeWaitlistRepo) MarkNotified(_ context.Context, id uuid.UUID, at time.Time) error {
	e, ok := r.store.waitlist[id]
	if !ok {
		return notFound("waitlist entry not found")
	}
	if e.Notified {
		return infra.WrapRepoErr("already notified", nil, infra.KindConflict)
	}
	e.Notified = true
	e.NotifiedAt = &at
	return nil
}

type fakeReservationRepo struct {
	store *fakeStore
}

func (r *fakeReservationRepo) Create(_ context.Context, res *reservation.Reservation) (uuid.UUID, error) {
	var note string
	if !res.Note().IsEmpty() {
		note = res.Note().String()
	}
	r.store.reservations[res.ID()] = &shared.ReservationSnapshot{
		ID:          res.ID(),
		UserID:      res.UserID(),
		RoomID:      res.RoomID(),
		SeatID:      res.SeatID(),
		TimeslotID:  res.TimeslotID(),
		StartTime:   res.Slot().Start(),
		EndTime:     res.Slot().End(),
		Status:      res.Status(),
		CheckInCode: res.CheckInCode(),
		Note:        note,
		CreatedAt:   res.CreatedAt(),
		UpdatedAt:   res.CreatedAt(),
	}
	return res.ID(), nil
}

func (r *fakeReservationRepo) AcquireRoomLock(_ context.Context, roomID uuid.UUID) error {
	r.store.lockedRooms = append(r.store.lockedRooms, roomID)
	return nil
}

func (r *fakeReservationRepo) UpdateStatus(_ context.Context, id uuid.UUID, status reservation.Status, note string) error {
	res, ok := r.store.reservations[id]
	if !ok {
		return notFound("reservation not found")
	}
	res.Status = status
	res.Note = note
	return nil
}

type fakeNotificationRepo struct {
	store *fakeStore
}

func (r *fakeNotificationRepo) CreateJob(_ context.Context, n notify.Notification, _ time.Time) error {
	r.store.notifications = append(r.store.notifications, n)
	return nil
}

// fakeLoanViewRepo backs the read-after-write query the loan commands do.
type fakeLoanViewRepo struct {
	store *fakeStore
}

func (r *fakeLoanViewRepo) FindByID(_ context.Context, id uuid.UUID) (*queries.LoanView, error) {
	l, ok := r.store.loans[id]
	if !ok {
		return nil, notFound("loan not found")
	}
	return &queries.LoanView{
		ID:             l.ID,
		UserID:         l.UserID,
		BookID:         l.BookID,
		BookTitle:      l.BookTitle,
		Status:         string(l.Status),
		DueDate:        l.DueDate,
		ReturnedDate:   l.ReturnedDate,
		ExtensionCount: l.ExtensionCount,
		CreatedAt:      l.CreatedAt,
	}, nil
}

func (r *fakeLoanViewRepo) FindAll(_ context.Context, _, _ int32) ([]*queries.LoanView, error) {
	return nil, nil
}

func (r *fakeLoanViewRepo) FindByUserID(_ context.Context, _ uuid.UUID) ([]*queries.LoanView, error) {
	return nil, nil
}

func (r *fakeLoanViewRepo) FindOverdue(_ context.Context) ([]*queries.LoanView, error) {
	return nil, nil
}

func (r *fakeLoanViewRepo) FindWaitlistByBookID(_ context.Context, _ uuid.UUID) ([]*queries.WaitlistEntryView, error) {
	return nil, nil
}

type fakeReservationViewRepo struct {
	store *fakeStore
}

func (r *fakeReservationViewRepo) FindByID(_ context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	res, ok := r.store.reservations[id]
	if !ok {
		return nil, notFound("reservation not found")
	}
	var note *string
	if res.Note != "" {
		n := res.Note
		note = &n
	}
	return &queries.ReservationView{
		ID:          res.ID,
		UserID:      res.UserID,
		RoomID:      res.RoomID,
		SeatID:      res.SeatID,
		TimeslotID:  res.TimeslotID,
		StartTime:   res.StartTime,
		EndTime:     res.EndTime,
		Status:      string(res.Status),
		CheckInCode: res.CheckInCode,
		Note:        note,
		CreatedAt:   res.CreatedAt,
		UpdatedAt:   res.UpdatedAt,
	}, nil
}

func (r *fakeReservationViewRepo) FindAll(_ context.Context, _, _ int32) ([]*queries.ReservationView, error) {
	return nil, nil
}

func (r *fakeReservationViewRepo) FindByUserID(_ context.Context, _ uuid.UUID) ([]*queries.ReservationView, error) {
	return nil, nil
}
