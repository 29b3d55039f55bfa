package response

import (
	"time"

	"library-reserve/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type LoanResponse struct {
	ID             uuid.UUID  `json:"id"`
	UserID         uuid.UUID  `json:"userId"`
	UserName       string     `json:"userName"`
	UserEmail      string     `json:"userEmail"`
	BookID         uuid.UUID  `json:"bookId"`
	BookTitle      string     `json:"bookTitle"`
	BookISBN       string     `json:"bookIsbn"`
	Status         string     `json:"status"`
	DueDate        time.Time  `json:"dueDate"`
	ReturnedDate   *time.Time `json:"returnedDate,omitempty"`
	ExtensionCount int        `json:"extensionCount"`
	CreatedAt      time.Time  `json:"createdAt"`
}

type WaitlistEntryResponse struct {
	ID         uuid.UUID  `json:"id"`
	UserID     uuid.UUID  `json:"userId"`
	UserName   string     `json:"userName"`
	BookID     uuid.UUID  `json:"bookId"`
	BookTitle  string     `json:"bookTitle"`
	Notified   bool       `json:"notified"`
	NotifiedAt *time.Time `json:"notifiedAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

func FromLoanView(v *queries.LoanView) *LoanResponse {
	var resp LoanResponse
	_ = copier.Copy(&resp, v)
	return &resp
}

func FromLoanViews(vs []*queries.LoanView) []*LoanResponse {
	out := make([]*LoanResponse, 0, len(vs))
	for _, v := range vs {
		out = append(out, FromLoanView(v))
	}
	return out
}

func FromWaitlistEntryView(v *queries.WaitlistEntryView) *WaitlistEntryResponse {
	var resp WaitlistEntryResponse
	_ = copier.Copy(&resp, v)
	return &resp
}

func FromWaitlistEntryViews(vs []*queries.WaitlistEntryView) []*WaitlistEntryResponse {
	out := make([]*WaitlistEntryResponse, 0, len(vs))
	for _, v := range vs {
		out = append(out, FromWaitlistEntryView(v))
	}
	return out
}
