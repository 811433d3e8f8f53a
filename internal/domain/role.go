package domain

import "fmt"

// Role is the fixed role a user is created with.
type Role string

const (
	RoleAdmin      Role = "Admin"
	RoleUser       Role = "User"
	RoleStoreOwner Role = "StoreOwner"
)

// Roles returns every valid role.
func Roles() []Role {
	return []Role{RoleAdmin, RoleUser, RoleStoreOwner}
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleUser, RoleStoreOwner:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }

// ParseRole converts s to a Role. Matching is exact.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}
