package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type LoanView struct {
	ID             uuid.UUID  `json:"id"`
	UserID         uuid.UUID  `json:"user_id"`
	UserName       string     `json:"user_name"`
	UserEmail      string     `json:"user_email"`
	BookID         uuid.UUID  `json:"book_id"`
	BookTitle      string     `json:"book_title"`
	BookISBN       string     `json:"book_isbn"`
	Status         string     `json:"status"`
	DueDate        time.Time  `json:"due_date"`
	ReturnedDate   *time.Time `json:"returned_date,omitempty"`
	ExtensionCount int        `json:"extension_count"`
	CreatedAt      time.Time  `json:"created_at"`
}

type WaitlistEntryView struct {
	ID         uuid.UUID  `json:"id"`
	UserID     uuid.UUID  `json:"user_id"`
	UserName   string     `json:"user_name"`
	BookID     uuid.UUID  `json:"book_id"`
	BookTitle  string     `json:"book_title"`
	Notified   bool       `json:"notified"`
	NotifiedAt *time.Time `json:"notified_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

type ReservationView struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	UserName    string     `json:"user_name"`
	RoomID      *uuid.UUID `json:"room_id,omitempty"`
	RoomName    *string    `json:"room_name,omitempty"`
	SeatID      *uuid.UUID `json:"seat_id,omitempty"`
	SeatLabel   *string    `json:"seat_label,omitempty"`
	TimeslotID  uuid.UUID  `json:"timeslot_id"`
	StartTime   time.Time  `json:"start_time"`
	EndTime     time.Time  `json:"end_time"`
	Status      string     `json:"status"`
	CheckInCode string     `json:"check_in_code"`
	Note        *string    `json:"note,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type AuthorizedUserView struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"-"`
}
