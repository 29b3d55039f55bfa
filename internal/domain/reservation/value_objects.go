package reservation

import (
	"errors"
	"time"
)

type TimeSlot struct {
	start time.Time
	end   time.Time
}

func NewTimeSlot(start, end time.Time) (TimeSlot, error) {
	if start.After(end) || start.Equal(end) {
		return TimeSlot{}, errors.New("start time must be before end time")
	}

	return TimeSlot{
		start: start,
		end:   end,
	}, nil
}

// ReconstructTimeSlot rebuilds a slot from storage without validation.
func ReconstructTimeSlot(start, end time.Time) TimeSlot {
	return TimeSlot{start: start, end: end}
}

func (ts TimeSlot) Start() time.Time {
	return ts.start
}

func (ts TimeSlot) End() time.Time {
	return ts.end
}

func (ts TimeSlot) Duration() time.Duration {
	return ts.end.Sub(ts.start)
}

func (ts TimeSlot) Hours() float64 {
	return ts.Duration().Hours()
}

func (ts TimeSlot) StartsBefore(t time.Time) bool {
	return ts.start.Before(t)
}

type Note struct {
	value string
}

func NewNote(value string) Note {
	return Note{value: value}
}

func (n Note) String() string {
	return n.value
}

func (n Note) IsEmpty() bool {
	return n.value == ""
}

// Append joins an annotation onto the note, separating from any existing text.
func (n Note) Append(text string) Note {
	if n.value == "" {
		return Note{value: text}
	}
	return Note{value: n.value + ". " + text}
}
