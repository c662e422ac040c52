package model

// Role is an authorization role carried in the bearer token.
type Role string

const (
	// RoleAdmin may read and modify every resource.
	RoleAdmin Role = "ADMIN"

	// RoleUser may read every resource.
	RoleUser Role = "USER"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// Principal is the authenticated caller of a service operation.
type Principal struct {
	Username string
	Roles    []Role
}

// HasAnyRole reports whether p carries at least one of roles.
func (p Principal) HasAnyRole(roles ...Role) bool {
	for _, have := range p.Roles {
		for _, want := range roles {
			if have == want {
				return true
			}
		}
	}
	return false
}

// SystemPrincipal is used by command-line tools that act without a token.
var SystemPrincipal = Principal{Username: "system", Roles: []Role{RoleAdmin}}
