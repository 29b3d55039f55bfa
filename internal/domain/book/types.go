package book

type Status string

const (
	StatusAvailable Status = "AVAILABLE"
	StatusOnLoan    Status = "ON_LOAN"
	StatusReserved  Status = "RESERVED"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusAvailable, StatusOnLoan, StatusReserved:
		return true
	default:
		return false
	}
}
