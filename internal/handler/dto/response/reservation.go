package response

import (
	"time"

	"library-reserve/internal/usecase/commands"
	"library-reserve/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type ReservationResponse struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"userId"`
	UserName    string     `json:"userName"`
	RoomID      *uuid.UUID `json:"roomId,omitempty"`
	RoomName    *string    `json:"roomName,omitempty"`
	SeatID      *uuid.UUID `json:"seatId,omitempty"`
	SeatLabel   *string    `json:"seatLabel,omitempty"`
	TimeslotID  uuid.UUID  `json:"timeslotId"`
	StartTime   time.Time  `json:"startTime"`
	EndTime     time.Time  `json:"endTime"`
	Status      string     `json:"status"`
	CheckInCode string     `json:"checkInCode"`
	Note        *string    `json:"note,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type CheckInResponse struct {
	ReservationID uuid.UUID `json:"reservationId"`
	Status        string    `json:"status"`
	Forfeited     bool      `json:"forfeited"`
	LateMinutes   int       `json:"lateMinutes"`
}

func FromReservationView(v *queries.ReservationView) *ReservationResponse {
	var resp ReservationResponse
	_ = copier.Copy(&resp, v)
	return &resp
}

func FromReservationViews(vs []*queries.ReservationView) []*ReservationResponse {
	out := make([]*ReservationResponse, 0, len(vs))
	for _, v := range vs {
		out = append(out, FromReservationView(v))
	}
	return out
}

func FromCheckInOutcome(o *commands.CheckInOutcome) *CheckInResponse {
	return &CheckInResponse{
		ReservationID: o.ReservationID,
		Status:        string(o.Status),
		Forfeited:     o.Forfeited,
		LateMinutes:   o.LateMinutes,
	}
}
