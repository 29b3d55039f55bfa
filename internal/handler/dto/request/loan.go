package request

import (
	"time"

	"github.com/google/uuid"
)

type CreateLoanRequest struct {
	UserID  uuid.UUID  `json:"user_id" binding:"required"`
	BookID  uuid.UUID  `json:"book_id" binding:"required"`
	DueDate *time.Time `json:"due_date,omitempty"`
}

type ExtendLoanRequest struct {
	// Days defaults to the house extension period when omitted.
	Days int `json:"days,omitempty" binding:"omitempty,min=1,max=30"`
}

type JoinWaitlistRequest struct {
	UserID uuid.UUID `json:"user_id" binding:"required"`
	BookID uuid.UUID `json:"book_id" binding:"required"`
}
