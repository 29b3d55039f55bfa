//go:build unit

package book_test

import (
	"testing"

	"library-reserve/internal/domain/book"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBook(status book.Status) *book.Book {
	return book.ReconstructBook(
		uuid.New(), "9780134190440", "The Go Programming Language", "Donovan & Kernighan", 2015, status,
	)
}

func TestBookLend(t *testing.T) {
	t.Run("available book goes on loan", func(t *testing.T) {
		b := newBook(book.StatusAvailable)
		require.NoError(t, b.Lend())
		assert.Equal(t, book.StatusOnLoan, b.Status())
		assert.False(t, b.IsAvailable())
	})

	t.Run("book already on loan cannot be lent again", func(t *testing.T) {
		b := newBook(book.StatusOnLoan)
		require.ErrorIs(t, b.Lend(), book.ErrNotAvailable)
		assert.Equal(t, book.StatusOnLoan, b.Status())
	})

	t.Run("reserved book cannot be lent", func(t *testing.T) {
		b := newBook(book.StatusReserved)
		require.ErrorIs(t, b.Lend(), book.ErrNotAvailable)
	})
}

func TestBookReturn(t *testing.T) {
	t.Run("return puts the book back on the shelf", func(t *testing.T) {
		b := newBook(book.StatusOnLoan)
		require.NoError(t, b.Return())
		assert.Equal(t, book.StatusAvailable, b.Status())
		assert.True(t, b.IsAvailable())
	})

	t.Run("available book cannot be returned", func(t *testing.T) {
		b := newBook(book.StatusAvailable)
		require.ErrorIs(t, b.Return(), book.ErrNotOnLoan)
	})

	t.Run("lend then return round-trips the status", func(t *testing.T) {
		b := newBook(book.StatusAvailable)
		require.NoError(t, b.Lend())
		require.NoError(t, b.Return())
		assert.True(t, b.IsAvailable())
	})
}
