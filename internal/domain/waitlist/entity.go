package waitlist

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrAlreadyNotified = errors.New("waitlist entry already notified")

// Entry is one user's place in a book's FIFO waitlist. Ordering is by
// createdAt; promotion marks the entry notified but does not hold the book.
type Entry struct {
	id         uuid.UUID
	userID     uuid.UUID
	bookID     uuid.UUID
	notified   bool
	notifiedAt *time.Time
	createdAt  time.Time
}

func NewEntry(userID, bookID uuid.UUID, now time.Time) *Entry {
	return &Entry{
		id:        uuid.New(),
		userID:    userID,
		bookID:    bookID,
		createdAt: now,
	}
}

func ReconstructEntry(id, userID, bookID uuid.UUID, notified bool, notifiedAt *time.Time, createdAt time.Time) *Entry {
	return &Entry{
		id:         id,
		userID:     userID,
		bookID:     bookID,
		notified:   notified,
		notifiedAt: notifiedAt,
		createdAt:  createdAt,
	}
}

func (e *Entry) MarkNotified(now time.Time) error {
	if e.notified {
		return ErrAlreadyNotified
	}
	e.notified = true
	e.notifiedAt = &now
	return nil
}

func (e *Entry) ID() uuid.UUID          { return e.id }
func (e *Entry) UserID() uuid.UUID      { return e.userID }
func (e *Entry) BookID() uuid.UUID      { return e.bookID }
func (e *Entry) Notified() bool         { return e.notified }
func (e *Entry) NotifiedAt() *time.Time { return e.notifiedAt }
func (e *Entry) CreatedAt() time.Time   { return e.createdAt }
