package book

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotAvailable = errors.New("book is not available")
	ErrNotOnLoan    = errors.New("book is not on loan")
)

type Book struct {
	id     uuid.UUID
	isbn   string
	title  string
	author string
	year   int
	status Status
}

// ReconstructBook rebuilds a book from persisted state. The catalog is seeded
// by migration; books are never created through the API.
func ReconstructBook(id uuid.UUID, isbn, title, author string, year int, status Status) *Book {
	return &Book{
		id:     id,
		isbn:   isbn,
		title:  title,
		author: author,
		year:   year,
		status: status,
	}
}

// Lend flips the book to ON_LOAN. Only the loan engine calls this; general
// book edits never touch status while a loan is active.
func (b *Book) Lend() error {
	if b.status != StatusAvailable {
		return ErrNotAvailable
	}
	b.status = StatusOnLoan
	return nil
}

func (b *Book) Return() error {
	if b.status != StatusOnLoan {
		return ErrNotOnLoan
	}
	b.status = StatusAvailable
	return nil
}

func (b *Book) IsAvailable() bool {
	return b.status == StatusAvailable
}

func (b *Book) ID() uuid.UUID  { return b.id }
func (b *Book) ISBN() string   { return b.isbn }
func (b *Book) Title() string  { return b.title }
func (b *Book) Author() string { return b.author }
func (b *Book) Year() int      { return b.year }
func (b *Book) Status() Status { return b.status }
