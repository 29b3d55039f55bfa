//go:build unit

package reservation_test

import (
	"testing"
	"time"

	"library-reserve/internal/domain/reservation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeSlot(t *testing.T) {
	start := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

	t.Run("valid slot", func(t *testing.T) {
		slot, err := reservation.NewTimeSlot(start, start.Add(2*time.Hour))
		require.NoError(t, err)
		assert.Equal(t, 2*time.Hour, slot.Duration())
		assert.Equal(t, 2.0, slot.Hours())
	})

	t.Run("zero-length slot is rejected", func(t *testing.T) {
		_, err := reservation.NewTimeSlot(start, start)
		require.Error(t, err)
	})

	t.Run("inverted slot is rejected", func(t *testing.T) {
		_, err := reservation.NewTimeSlot(start, start.Add(-time.Hour))
		require.Error(t, err)
	})
}

func TestNote(t *testing.T) {
	t.Run("append to empty note", func(t *testing.T) {
		n := reservation.NewNote("").Append("Rejected by staff")
		assert.Equal(t, "Rejected by staff", n.String())
	})

	t.Run("append separates from existing text", func(t *testing.T) {
		n := reservation.NewNote("near the window").Append("Rejected: overbooked")
		assert.Equal(t, "near the window. Rejected: overbooked", n.String())
	})

	t.Run("empty check", func(t *testing.T) {
		assert.True(t, reservation.NewNote("").IsEmpty())
		assert.False(t, reservation.NewNote("x").IsEmpty())
	})
}
