// Package readstore holds the query-side stores: snapshot reads for the
// command engines and joined view reads for the HTTP read endpoints.
package readstore

import (
	"context"
	"errors"
	"time"

	"library-reserve/internal/domain/book"
	"library-reserve/internal/domain/loan"
	"library-reserve/internal/domain/reservation"
	"library-reserve/internal/domain/user"
	"library-reserve/internal/infra"
	"library-reserve/internal/infra/db"
	"library-reserve/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CommandReads runs the snapshot queries the booking engines use for their
// precondition checks. Constructed over a transaction handle it reads the
// transaction's view; over the pool it reads committed state.
type CommandReads struct {
	db db.DBTX
}

func NewCommandReads(dbtx db.DBTX) *CommandReads {
	return &CommandReads{db: dbtx}
}

func notFoundOr(err error, msg string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return infra.WrapRepoErr(msg, err, infra.KindNotFound)
	}
	return infra.WrapRepoErr(msg, err)
}

func (r *CommandReads) UserByID(ctx context.Context, id uuid.UUID) (*shared.UserSnapshot, error) {
	var s shared.UserSnapshot
	var role string
	err := r.db.QueryRow(ctx,
		`SELECT id, name, email, role FROM users WHERE id = $1`, id,
	).Scan(&s.ID, &s.Name, &s.Email, &role)
	if err != nil {
		return nil, notFoundOr(err, "failed to find user")
	}
	s.Role = user.Role(role)
	return &s, nil
}

// AdminUsers returns the staff accounts that moderate reservations.
func (r *CommandReads) AdminUsers(ctx context.Context) ([]shared.UserSnapshot, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, email, role FROM users WHERE role IN ('librarian', 'admin') ORDER BY created_at`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list staff users", err)
	}
	defer rows.Close()

	var out []shared.UserSnapshot
	for rows.Next() {
		var s shared.UserSnapshot
		var role string
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &role); err != nil {
			return nil, infra.WrapRepoErr("failed to scan staff user", err)
		}
		s.Role = user.Role(role)
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *CommandReads) BookByID(ctx context.Context, id uuid.UUID) (*shared.BookSnapshot, error) {
	var s shared.BookSnapshot
	var status string
	err := r.db.QueryRow(ctx,
		`SELECT id, isbn, title, author, published_year, status FROM books WHERE id = $1`, id,
	).Scan(&s.ID, &s.ISBN, &s.Title, &s.Author, &s.Year, &status)
	if err != nil {
		return nil, notFoundOr(err, "failed to find book")
	}
	s.Status = book.Status(status)
	return &s, nil
}

func (r *CommandReads) RoomByID(ctx context.Context, id uuid.UUID) (*shared.RoomSnapshot, error) {
	var s shared.RoomSnapshot
	err := r.db.QueryRow(ctx,
		`SELECT id, name, capacity FROM rooms WHERE id = $1`, id,
	).Scan(&s.ID, &s.Name, &s.Capacity)
	if err != nil {
		return nil, notFoundOr(err, "failed to find room")
	}
	return &s, nil
}

func (r *CommandReads) SeatByID(ctx context.Context, id uuid.UUID) (*shared.SeatSnapshot, error) {
	var s shared.SeatSnapshot
	err := r.db.QueryRow(ctx,
		`SELECT id, room_id, label FROM seats WHERE id = $1`, id,
	).Scan(&s.ID, &s.RoomID, &s.Label)
	if err != nil {
		return nil, notFoundOr(err, "failed to find seat")
	}
	return &s, nil
}

func (r *CommandReads) TimeslotByID(ctx context.Context, id uuid.UUID) (*shared.TimeslotSnapshot, error) {
	var s shared.TimeslotSnapshot
	err := r.db.QueryRow(ctx,
		`SELECT id, room_id, start_time, end_time, blocked FROM timeslots WHERE id = $1`, id,
	).Scan(&s.ID, &s.RoomID, &s.StartTime, &s.EndTime, &s.Blocked)
	if err != nil {
		return nil, notFoundOr(err, "failed to find timeslot")
	}
	return &s, nil
}

const loanSnapshotQuery = `
	SELECT l.id, l.user_id, l.book_id, b.title, l.due_date, l.returned_date,
	       l.status, l.extension_count, l.created_at
	FROM loans l
	JOIN books b ON b.id = l.book_id`

func scanLoanSnapshot(row pgx.Row) (*shared.LoanSnapshot, error) {
	var s shared.LoanSnapshot
	var status string
	err := row.Scan(&s.ID, &s.UserID, &s.BookID, &s.BookTitle, &s.DueDate,
		&s.ReturnedDate, &status, &s.ExtensionCount, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	s.Status = loan.Status(status)
	return &s, nil
}

func (r *CommandReads) LoanByID(ctx context.Context, id uuid.UUID) (*shared.LoanSnapshot, error) {
	s, err := scanLoanSnapshot(r.db.QueryRow(ctx, loanSnapshotQuery+` WHERE l.id = $1`, id))
	if err != nil {
		return nil, notFoundOr(err, "failed to find loan")
	}
	return s, nil
}

func (r *CommandReads) CountActiveLoans(ctx context.Context, userID uuid.UUID) (int, error) {
	var n int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM loans WHERE user_id = $1 AND status = 'BORROWED'`, userID,
	).Scan(&n)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count active loans", err)
	}
	return n, nil
}

func (r *CommandReads) CountOverdueLoans(ctx context.Context, userID uuid.UUID, asOf time.Time) (int, error) {
	var n int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM loans WHERE user_id = $1 AND status = 'BORROWED' AND due_date < $2`,
		userID, asOf,
	).Scan(&n)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count overdue loans", err)
	}
	return n, nil
}

func scanWaitlistSnapshot(row pgx.Row) (*shared.WaitlistSnapshot, error) {
	var s shared.WaitlistSnapshot
	err := row.Scan(&s.ID, &s.UserID, &s.BookID, &s.Notified, &s.NotifiedAt, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

const waitlistSnapshotQuery = `
	SELECT id, user_id, book_id, notified, notified_at, created_at FROM waitlist_entries`

func (r *CommandReads) WaitlistEntryByUserAndBook(ctx context.Context, userID, bookID uuid.UUID) (*shared.WaitlistSnapshot, error) {
	s, err := scanWaitlistSnapshot(r.db.QueryRow(ctx,
		waitlistSnapshotQuery+` WHERE user_id = $1 AND book_id = $2`, userID, bookID))
	if err != nil {
		return nil, notFoundOr(err, "failed to find waitlist entry")
	}
	return s, nil
}

func (r *CommandReads) NextUnnotifiedWaiter(ctx context.Context, bookID uuid.UUID) (*shared.WaitlistSnapshot, error) {
	s, err := scanWaitlistSnapshot(r.db.QueryRow(ctx,
		waitlistSnapshotQuery+` WHERE book_id = $1 AND notified = false ORDER BY created_at ASC LIMIT 1`,
		bookID))
	if err != nil {
		return nil, notFoundOr(err, "failed to find next waiter")
	}
	return s, nil
}

func (r *CommandReads) BooksWithUnnotifiedWaiters(ctx context.Context) ([]shared.BookSnapshot, error) {
	rows, err := r.db.Query(ctx,
		`SELECT DISTINCT b.id, b.isbn, b.title, b.author, b.published_year, b.status
		 FROM books b
		 JOIN waitlist_entries w ON w.book_id = b.id AND w.notified = false
		 WHERE b.status = 'AVAILABLE'`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list books with waiters", err)
	}
	defer rows.Close()

	var out []shared.BookSnapshot
	for rows.Next() {
		var s shared.BookSnapshot
		var status string
		if err := rows.Scan(&s.ID, &s.ISBN, &s.Title, &s.Author, &s.Year, &status); err != nil {
			return nil, infra.WrapRepoErr("failed to scan book", err)
		}
		s.Status = book.Status(status)
		out = append(out, s)
	}
	return out, rows.Err()
}

const reservationSnapshotQuery = `
	SELECT id, user_id, room_id, seat_id, timeslot_id, start_time, end_time,
	       status, check_in_code, COALESCE(note, ''), created_at, updated_at
	FROM reservations`

func scanReservationSnapshot(row pgx.Row) (*shared.ReservationSnapshot, error) {
	var s shared.ReservationSnapshot
	var status string
	err := row.Scan(&s.ID, &s.UserID, &s.RoomID, &s.SeatID, &s.TimeslotID,
		&s.StartTime, &s.EndTime, &status, &s.CheckInCode, &s.Note, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	s.Status = reservation.Status(status)
	return &s, nil
}

func (r *CommandReads) ReservationByID(ctx context.Context, id uuid.UUID) (*shared.ReservationSnapshot, error) {
	s, err := scanReservationSnapshot(r.db.QueryRow(ctx, reservationSnapshotQuery+` WHERE id = $1`, id))
	if err != nil {
		return nil, notFoundOr(err, "failed to find reservation")
	}
	return s, nil
}

func (r *CommandReads) ReservationByCheckInCode(ctx context.Context, code string) (*shared.ReservationSnapshot, error) {
	s, err := scanReservationSnapshot(r.db.QueryRow(ctx, reservationSnapshotQuery+` WHERE check_in_code = $1`, code))
	if err != nil {
		return nil, notFoundOr(err, "failed to find reservation by code")
	}
	return s, nil
}

func (r *CommandReads) HasActiveUserReservation(ctx context.Context, userID, timeslotID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(
		   SELECT 1 FROM reservations
		   WHERE user_id = $1 AND timeslot_id = $2 AND status IN ('PENDING', 'CONFIRMED'))`,
		userID, timeslotID,
	).Scan(&exists)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check user reservation", err)
	}
	return exists, nil
}

// HasActiveRoomReservation treats a booked seat inside the room as a conflict
// for the whole room.
func (r *CommandReads) HasActiveRoomReservation(ctx context.Context, roomID, timeslotID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(
		   SELECT 1 FROM reservations
		   WHERE timeslot_id = $2 AND status IN ('PENDING', 'CONFIRMED')
		     AND (room_id = $1 OR seat_id IN (SELECT id FROM seats WHERE room_id = $1)))`,
		roomID, timeslotID,
	).Scan(&exists)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check room reservation", err)
	}
	return exists, nil
}

// HasActiveSeatReservation treats a booking of the seat's whole room as a
// conflict for the seat.
func (r *CommandReads) HasActiveSeatReservation(ctx context.Context, seatID, timeslotID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(
		   SELECT 1 FROM reservations
		   WHERE timeslot_id = $2 AND status IN ('PENDING', 'CONFIRMED')
		     AND (seat_id = $1 OR room_id = (SELECT room_id FROM seats WHERE id = $1)))`,
		seatID, timeslotID,
	).Scan(&exists)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check seat reservation", err)
	}
	return exists, nil
}

func (r *CommandReads) ActiveReservationsOnDay(ctx context.Context, userID uuid.UUID, dayStart, dayEnd time.Time) ([]shared.ReservationSnapshot, error) {
	return r.queryReservations(ctx,
		reservationSnapshotQuery+`
		 WHERE user_id = $1 AND status IN ('PENDING', 'CONFIRMED')
		   AND start_time >= $2 AND start_time < $3`,
		userID, dayStart, dayEnd)
}

func (r *CommandReads) ConfirmedReservationsStartingBetween(ctx context.Context, from, to time.Time) ([]shared.ReservationSnapshot, error) {
	return r.queryReservations(ctx,
		reservationSnapshotQuery+`
		 WHERE status = 'CONFIRMED' AND start_time >= $1 AND start_time < $2`,
		from, to)
}

func (r *CommandReads) queryReservations(ctx context.Context, sql string, args ...any) ([]shared.ReservationSnapshot, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query reservations", err)
	}
	defer rows.Close()

	var out []shared.ReservationSnapshot
	for rows.Next() {
		s, err := scanReservationSnapshot(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation", err)
		}
		out = append(out, *s)
	}
	return out, rows.Err()
}

func (r *CommandReads) BorrowedLoansDueBetween(ctx context.Context, from, to time.Time) ([]shared.LoanSnapshot, error) {
	return r.queryLoans(ctx,
		loanSnapshotQuery+` WHERE l.status = 'BORROWED' AND l.due_date >= $1 AND l.due_date < $2`,
		from, to)
}

func (r *CommandReads) BorrowedLoansOverdue(ctx context.Context, asOf time.Time) ([]shared.LoanSnapshot, error) {
	return r.queryLoans(ctx,
		loanSnapshotQuery+` WHERE l.status = 'BORROWED' AND l.due_date < $1`, asOf)
}

func (r *CommandReads) queryLoans(ctx context.Context, sql string, args ...any) ([]shared.LoanSnapshot, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query loans", err)
	}
	defer rows.Close()

	var out []shared.LoanSnapshot
	for rows.Next() {
		s, err := scanLoanSnapshot(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan loan", err)
		}
		out = append(out, *s)
	}
	return out, rows.Err()
}
