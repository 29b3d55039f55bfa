package reservation

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCheckedIn Status = "CHECKED_IN"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
	StatusForfeited Status = "FORFEITED"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCheckedIn, StatusCompleted, StatusCancelled, StatusForfeited:
		return true
	default:
		return false
	}
}

// IsActive reports whether the reservation still occupies its (resource,
// timeslot) pair. Only active reservations count for conflict checks and the
// daily quota.
func (s Status) IsActive() bool {
	return s == StatusPending || s == StatusConfirmed
}

func (s Status) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusCancelled, StatusForfeited:
		return true
	default:
		return false
	}
}

type Operation string

const (
	OpApprove  Operation = "approve"
	OpReject   Operation = "reject"
	OpCancel   Operation = "cancel"
	OpCheckIn  Operation = "check_in"
	OpForfeit  Operation = "forfeit"
	OpCheckOut Operation = "check_out"
)

// transitions is the single source of truth for legal status changes. Every
// operation consults this table, so adding a status cannot silently skip a
// guard.
var transitions = map[Status]map[Operation]Status{
	StatusPending: {
		OpApprove: StatusConfirmed,
		OpReject:  StatusCancelled,
		OpCancel:  StatusCancelled,
	},
	StatusConfirmed: {
		OpCancel:  StatusCancelled,
		OpCheckIn: StatusCheckedIn,
		OpForfeit: StatusForfeited,
	},
	StatusCheckedIn: {
		OpCheckOut: StatusCompleted,
	},
}

func nextStatus(from Status, op Operation) (Status, bool) {
	ops, ok := transitions[from]
	if !ok {
		return "", false
	}
	to, ok := ops[op]
	return to, ok
}
