package core

// Roles as issued by the identity directory.
const (
	RoleTeacher = "TEACHER"
	RoleDean    = "DEAN"
	RoleAdmin   = "ADMIN"
	RoleStudent = "STUDENT"
)

var AllRoles = []string{RoleTeacher, RoleDean, RoleAdmin, RoleStudent}

// ValidRole reports whether role is one of the known directory roles.
func ValidRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}

// Principal is the authenticated caller of an operation. The numeric id and
// role set are resolved once at authentication time and embedded in the
// token claims; authorization decisions never require a directory round trip.
type Principal struct {
	ID       int      `json:"id"`
	Username string   `json:"username"`
	Roles    []string `json:"roles"`

	// Token is the raw bearer token the caller authenticated with;
	// forwarded on directory calls made on the caller's behalf.
	Token string `json:"-"`
}

func (p Principal) hasRole(role string) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

func (p Principal) IsTeacher() bool { return p.hasRole(RoleTeacher) }
func (p Principal) IsDean() bool    { return p.hasRole(RoleDean) }
func (p Principal) IsAdmin() bool   { return p.hasRole(RoleAdmin) }
func (p Principal) IsStudent() bool { return p.hasRole(RoleStudent) }
