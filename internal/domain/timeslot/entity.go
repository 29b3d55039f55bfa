package timeslot

import (
	"time"

	"github.com/google/uuid"
)

// Timeslot is a fixed, pre-generated bookable window on a room. Slots are
// created by the calendar generator and are read-only to the booking engines.
type Timeslot struct {
	id      uuid.UUID
	roomID  uuid.UUID
	start   time.Time
	end     time.Time
	blocked bool
}

func ReconstructTimeslot(id, roomID uuid.UUID, start, end time.Time, blocked bool) *Timeslot {
	return &Timeslot{
		id:      id,
		roomID:  roomID,
		start:   start,
		end:     end,
		blocked: blocked,
	}
}

func (t *Timeslot) ID() uuid.UUID     { return t.id }
func (t *Timeslot) RoomID() uuid.UUID { return t.roomID }
func (t *Timeslot) Start() time.Time  { return t.start }
func (t *Timeslot) End() time.Time    { return t.end }
func (t *Timeslot) Blocked() bool     { return t.blocked }

func (t *Timeslot) Duration() time.Duration {
	return t.end.Sub(t.start)
}

func (t *Timeslot) StartsInFuture(now time.Time) bool {
	return !t.start.Before(now)
}

// DayBounds returns the midnight-to-midnight window of the slot's local date,
// used for the daily reservation quota.
func (t *Timeslot) DayBounds() (time.Time, time.Time) {
	y, m, d := t.start.Date()
	dayStart := time.Date(y, m, d, 0, 0, 0, 0, t.start.Location())
	return dayStart, dayStart.Add(24 * time.Hour)
}
