package domain

import "time"

// Role is the coarse access level of a user. Authentication itself is
// handled outside this service; only the identity and role live here.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

type User struct {
	ID        string
	Username  string
	Role      Role
	CreatedAt time.Time
}
