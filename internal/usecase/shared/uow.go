package shared

import (
	"context"
	"time"

	"library-reserve/internal/domain/book"
	"library-reserve/internal/domain/loan"
	"library-reserve/internal/domain/reservation"
	"library-reserve/internal/domain/user"
	"library-reserve/internal/domain/waitlist"
	"library-reserve/internal/infra/db"
	"library-reserve/internal/notify"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: full transaction for write operations with retry logic. Every
	// precondition-check-then-write that bears an invariant runs here.
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithDB: single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error
	// CommandReads: command-side reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Books() BookRepository
	Loans() LoanRepository
	Waitlist() WaitlistRepository
	Reservations() ReservationRepository
	Notifications() NotificationRepository
	Reads() CommandReads
	DB() db.DBTX
}

// CommandReads are the minimal snapshot reads the engines need for their
// precondition checks. Inside Within they observe the transaction.
type CommandReads interface {
	UserByID(ctx context.Context, id uuid.UUID) (*UserSnapshot, error)
	AdminUsers(ctx context.Context) ([]UserSnapshot, error)

	BookByID(ctx context.Context, id uuid.UUID) (*BookSnapshot, error)
	RoomByID(ctx context.Context, id uuid.UUID) (*RoomSnapshot, error)
	SeatByID(ctx context.Context, id uuid.UUID) (*SeatSnapshot, error)
	TimeslotByID(ctx context.Context, id uuid.UUID) (*TimeslotSnapshot, error)

	LoanByID(ctx context.Context, id uuid.UUID) (*LoanSnapshot, error)
	CountActiveLoans(ctx context.Context, userID uuid.UUID) (int, error)
	CountOverdueLoans(ctx context.Context, userID uuid.UUID, asOf time.Time) (int, error)

	WaitlistEntryByUserAndBook(ctx context.Context, userID, bookID uuid.UUID) (*WaitlistSnapshot, error)
	NextUnnotifiedWaiter(ctx context.Context, bookID uuid.UUID) (*WaitlistSnapshot, error)
	BooksWithUnnotifiedWaiters(ctx context.Context) ([]BookSnapshot, error)

	ReservationByID(ctx context.Context, id uuid.UUID) (*ReservationSnapshot, error)
	ReservationByCheckInCode(ctx context.Context, code string) (*ReservationSnapshot, error)
	HasActiveUserReservation(ctx context.Context, userID, timeslotID uuid.UUID) (bool, error)
	HasActiveRoomReservation(ctx context.Context, roomID, timeslotID uuid.UUID) (bool, error)
	HasActiveSeatReservation(ctx context.Context, seatID, timeslotID uuid.UUID) (bool, error)
	ActiveReservationsOnDay(ctx context.Context, userID uuid.UUID, dayStart, dayEnd time.Time) ([]ReservationSnapshot, error)

	ConfirmedReservationsStartingBetween(ctx context.Context, from, to time.Time) ([]ReservationSnapshot, error)
	BorrowedLoansDueBetween(ctx context.Context, from, to time.Time) ([]LoanSnapshot, error)
	BorrowedLoansOverdue(ctx context.Context, asOf time.Time) ([]LoanSnapshot, error)
}

type UserSnapshot struct {
	ID    uuid.UUID
	Name  string
	Email string
	Role  user.Role
}

type BookSnapshot struct {
	ID     uuid.UUID
	ISBN   string
	Title  string
	Author string
	Year   int
	Status book.Status
}

type RoomSnapshot struct {
	ID       uuid.UUID
	Name     string
	Capacity int
}

type SeatSnapshot struct {
	ID     uuid.UUID
	RoomID uuid.UUID
	Label  string
}

type TimeslotSnapshot struct {
	ID        uuid.UUID
	RoomID    uuid.UUID
	StartTime time.Time
	EndTime   time.Time
	Blocked   bool
}

type LoanSnapshot struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	BookID         uuid.UUID
	BookTitle      string
	DueDate        time.Time
	ReturnedDate   *time.Time
	Status         loan.Status
	ExtensionCount int
	CreatedAt      time.Time
}

type WaitlistSnapshot struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	BookID     uuid.UUID
	Notified   bool
	NotifiedAt *time.Time
	CreatedAt  time.Time
}

type ReservationSnapshot struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	RoomID      *uuid.UUID
	SeatID      *uuid.UUID
	TimeslotID  uuid.UUID
	StartTime   time.Time
	EndTime     time.Time
	Status      reservation.Status
	CheckInCode string
	Note        string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type BookRepository interface {
	UpdateStatus(ctx context.Context, id uuid.UUID, status book.Status) error
}

type LoanRepository interface {
	Create(ctx context.Context, l *loan.Loan) (uuid.UUID, error)
	MarkReturned(ctx context.Context, id uuid.UUID, returnedAt time.Time) error
	// ExtendCAS is a compare-and-set on extension_count so concurrent extends
	// cannot both succeed against the same starting count.
	ExtendCAS(ctx context.Context, id uuid.UUID, newDueDate time.Time, expectedCount int) error
}

type WaitlistRepository interface {
	Create(ctx context.Context, e *waitlist.Entry) (uuid.UUID, error)
	Delete(ctx context.Context, id uuid.UUID) error
	MarkNotified(ctx context.Context, id uuid.UUID, at time.Time) error
}

type ReservationRepository interface {
	Create(ctx context.Context, r *reservation.Reservation) (uuid.UUID, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status reservation.Status, note string) error
	// AcquireRoomLock takes a transaction-scoped advisory lock on the room so
	// that all bookings touching it (the room itself or any seat inside it)
	// serialize. The partial unique indexes only catch two identical resources;
	// a room booked concurrently with one of its seats needs the lock.
	AcquireRoomLock(ctx context.Context, roomID uuid.UUID) error
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, n notify.Notification, runAt time.Time) error
}
