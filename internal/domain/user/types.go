package user

type Role string

const (
	RoleStudent   Role = "student"
	RoleLibrarian Role = "librarian"
	RoleAdmin     Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleStudent, RoleLibrarian, RoleAdmin:
		return true
	default:
		return false
	}
}

// CanModerate reports whether the role may approve or reject reservations.
func (r Role) CanModerate() bool {
	return r == RoleLibrarian || r == RoleAdmin
}
