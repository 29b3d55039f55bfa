package loan

type Status string

const (
	StatusBorrowed Status = "BORROWED"
	StatusReturned Status = "RETURNED"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusBorrowed, StatusReturned:
		return true
	default:
		return false
	}
}
