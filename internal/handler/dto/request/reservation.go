package request

import (
	"strings"

	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	RoomID     *uuid.UUID `json:"room_id,omitempty"`
	SeatID     *uuid.UUID `json:"seat_id,omitempty"`
	TimeslotID uuid.UUID  `json:"timeslot_id" binding:"required"`
	Note       *string    `json:"note,omitempty"`
}

func (r CreateReservationRequest) GetNote() string {
	if r.Note == nil {
		return ""
	}
	return strings.TrimSpace(*r.Note)
}

type RejectReservationRequest struct {
	Reason string `json:"reason,omitempty" binding:"omitempty,max=500"`
}

type CheckInRequest struct {
	Code string `json:"code" binding:"required,uuid"`
}
