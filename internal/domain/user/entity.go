package user

import "fmt"

type Role string

const (
	RoleAdmin   Role = "admin"   // Center administrator - full access
	RoleTutor   Role = "tutor"   // Can run classes and mark attendance
	RoleStudent Role = "student" // Read-only on own data
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleTutor, RoleStudent:
		return true
	default:
		return false
	}
}

// Actor identifies who performs an operation. It is passed explicitly to every
// mutating service call and recorded in audit columns (created_by, paid_by, ...).
type Actor struct {
	UserID string
	Role   Role
}

// System is the actor used by scheduled jobs.
var System = Actor{UserID: "system", Role: RoleAdmin}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

func (a Actor) String() string {
	return fmt.Sprintf("%s(%s)", a.UserID, a.Role)
}

// Validate rejects an anonymous actor or one with an unknown role.
func (a Actor) Validate() error {
	if a.UserID == "" {
		return ErrActorRequired
	}
	if !a.Role.Valid() {
		return ErrInvalidRole
	}
	return nil
}
