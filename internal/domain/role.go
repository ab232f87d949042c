package domain

// Role is closed: anything the server sends outside the known set becomes RoleUnknown.
type Role string

const (
	RoleUnknown       Role = ""
	RoleAdmin         Role = "ADMIN"
	RoleCinemaManager Role = "CINEMA_MANAGER"
	RoleCustomer      Role = "CUSTOMER"
)

func ParseRole(s string) Role {
	switch Role(s) {
	case RoleAdmin, RoleCinemaManager, RoleCustomer:
		return Role(s)
	default:
		return RoleUnknown
	}
}

func (r Role) String() string {
	if r == RoleUnknown {
		return "UNKNOWN"
	}
	return string(r)
}

func (r *Role) UnmarshalText(b []byte) error {
	*r = ParseRole(string(b))
	return nil
}
