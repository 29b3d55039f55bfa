// Package notify builds the notification payloads the booking engines hand to
// the external dispatcher. Payloads are written as outbox jobs in the same
// transaction as the primary write; delivery happens elsewhere and its failure
// never affects the operation that produced the event.
package notify

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeBookBorrowed            Type = "BOOK_BORROWED"
	TypeBookReturned            Type = "BOOK_RETURNED"
	TypeLoanExtended            Type = "LOAN_EXTENDED"
	TypeBookDueReminder         Type = "BOOK_DUE_REMINDER"
	TypeBookOverdue             Type = "BOOK_OVERDUE"
	TypeWaitlistAvailable       Type = "WAITLIST_AVAILABLE"
	TypeReservationConfirmation Type = "RESERVATION_CONFIRMATION"
	TypeReservationReminder     Type = "RESERVATION_REMINDER"
	TypeCheckInReminder         Type = "CHECK_IN_REMINDER"
	TypePendingApproval         Type = "PENDING_APPROVAL"
	TypeReservationRejected     Type = "RESERVATION_REJECTED"
	TypeReservationCanceled     Type = "RESERVATION_CANCELED"
)

const (
	ResourceBook        = "BOOK"
	ResourceLoan        = "LOAN"
	ResourceReservation = "RESERVATION"
)

type Notification struct {
	UserID       uuid.UUID      `json:"userId"`
	Type         Type           `json:"type"`
	Title        string         `json:"title"`
	Message      string         `json:"message"`
	ResourceID   uuid.UUID      `json:"resourceId"`
	ResourceType string         `json:"resourceType"`
	Metadata     map[string]any `json:"metadata,omitempty"`
}

func BookBorrowed(userID, loanID uuid.UUID, title string, dueDate time.Time) Notification {
	return Notification{
		UserID:       userID,
		Type:         TypeBookBorrowed,
		Title:        "Book Borrowed",
		Message:      fmt.Sprintf("You have borrowed %q. It is due on %s.", title, dueDate.Format("January 2, 2006")),
		ResourceID:   loanID,
		ResourceType: ResourceLoan,
		Metadata:     map[string]any{"dueDate": dueDate},
	}
}

func BookReturned(userID, loanID uuid.UUID, title string) Notification {
	return Notification{
		UserID:       userID,
		Type:         TypeBookReturned,
		Title:        "Book Returned",
		Message:      fmt.Sprintf("You have returned %q. Thank you!", title),
		ResourceID:   loanID,
		ResourceType: ResourceLoan,
	}
}

func LoanExtended(userID, loanID uuid.UUID, title string, newDueDate time.Time, extensionsLeft int) Notification {
	return Notification{
		UserID:       userID,
		Type:         TypeLoanExtended,
		Title:        "Loan Extended",
		Message:      fmt.Sprintf("Your loan of %q has been extended. The new due date is %s.", title, newDueDate.Format("January 2, 2006")),
		ResourceID:   loanID,
		ResourceType: ResourceLoan,
		Metadata:     map[string]any{"newDueDate": newDueDate, "extensionsLeft": extensionsLeft},
	}
}

func BookDueSoon(userID, loanID uuid.UUID, title string, dueDate time.Time) Notification {
	return Notification{
		UserID:       userID,
		Type:         TypeBookDueReminder,
		Title:        "Book Due Soon",
		Message:      fmt.Sprintf("%q is due on %s. Return or extend it to avoid overdue restrictions.", title, dueDate.Format("January 2, 2006")),
		ResourceID:   loanID,
		ResourceType: ResourceLoan,
		Metadata:     map[string]any{"dueDate": dueDate},
	}
}

func BookOverdue(userID, loanID uuid.UUID, title string, dueDate time.Time) Notification {
	return Notification{
		UserID:       userID,
		Type:         TypeBookOverdue,
		Title:        "Book Overdue",
		Message:      fmt.Sprintf("%q was due on %s. Borrowing is blocked until it is returned.", title, dueDate.Format("January 2, 2006")),
		ResourceID:   loanID,
		ResourceType: ResourceLoan,
		Metadata:     map[string]any{"dueDate": dueDate},
	}
}

// WaitlistAvailable promises a 24-hour soft hold. The hold is advisory only:
// the book is not locked, and the first user to borrow wins.
func WaitlistAvailable(userID, bookID uuid.UUID, title, author string, now time.Time) Notification {
	return Notification{
		UserID:       userID,
		Type:         TypeWaitlistAvailable,
		Title:        "Book Available",
		Message:      fmt.Sprintf("Good news! %q by %s is now available. You have 24 hours to borrow it before it's offered to the next person in line.", title, author),
		ResourceID:   bookID,
		ResourceType: ResourceBook,
		Metadata:     map[string]any{"availableUntil": now.Add(24 * time.Hour)},
	}
}

func ReservationConfirmed(userID, reservationID uuid.UUID, start, end time.Time) Notification {
	return Notification{
		UserID:       userID,
		Type:         TypeReservationConfirmation,
		Title:        "Reservation Confirmed",
		Message:      fmt.Sprintf("Your reservation on %s from %s to %s is confirmed.", start.Format("January 2, 2006"), start.Format("15:04"), end.Format("15:04")),
		ResourceID:   reservationID,
		ResourceType: ResourceReservation,
	}
}

func ReservationReminder(userID, reservationID uuid.UUID, start time.Time) Notification {
	return Notification{
		UserID:       userID,
		Type:         TypeReservationReminder,
		Title:        "Reservation Tomorrow",
		Message:      fmt.Sprintf("Reminder: your reservation starts %s at %s.", start.Format("January 2, 2006"), start.Format("15:04")),
		ResourceID:   reservationID,
		ResourceType: ResourceReservation,
	}
}

func CheckInReminder(userID, reservationID uuid.UUID, start time.Time) Notification {
	return Notification{
		UserID:       userID,
		Type:         TypeCheckInReminder,
		Title:        "Check-In Open",
		Message:      fmt.Sprintf("Your reservation starts at %s. Check in now; it is forfeited 15 minutes after the start.", start.Format("15:04")),
		ResourceID:   reservationID,
		ResourceType: ResourceReservation,
	}
}

func PendingApproval(adminID, reservationID, requesterID uuid.UUID) Notification {
	return Notification{
		UserID:       adminID,
		Type:         TypePendingApproval,
		Title:        "Reservation Awaiting Approval",
		Message:      "A new reservation request is waiting for approval.",
		ResourceID:   reservationID,
		ResourceType: ResourceReservation,
		Metadata:     map[string]any{"requesterId": requesterID},
	}
}

func ReservationRejected(userID, reservationID uuid.UUID, reason string) Notification {
	msg := "Your reservation request has been rejected."
	if reason != "" {
		msg += " Reason: " + reason
	}
	return Notification{
		UserID:       userID,
		Type:         TypeReservationRejected,
		Title:        "Reservation Rejected",
		Message:      msg,
		ResourceID:   reservationID,
		ResourceType: ResourceReservation,
		Metadata:     map[string]any{"reason": reason},
	}
}

func ReservationCanceled(userID, reservationID uuid.UUID, byStaff bool) Notification {
	msg := "Your reservation has been canceled successfully."
	if byStaff {
		msg = "Your reservation has been canceled by library staff."
	}
	return Notification{
		UserID:       userID,
		Type:         TypeReservationCanceled,
		Title:        "Reservation Canceled",
		Message:      msg,
		ResourceID:   reservationID,
		ResourceType: ResourceReservation,
		Metadata:     map[string]any{"canceledByStaff": byStaff},
	}
}
