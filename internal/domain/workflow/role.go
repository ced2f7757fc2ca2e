package workflow

import "strings"

// OwnerRole is the party currently responsible for moving a PO forward
type OwnerRole string

const (
	RoleIntern  OwnerRole = "INTERN"
	RoleAdmin   OwnerRole = "ADMIN"
	RoleManager OwnerRole = "MANAGER"
	RoleVendor  OwnerRole = "VENDOR"
)

var validRoles = map[OwnerRole]bool{
	RoleIntern:  true,
	RoleAdmin:   true,
	RoleManager: true,
	RoleVendor:  true,
}

// ParseOwnerRole accepts a role name in any case
func ParseOwnerRole(s string) (OwnerRole, error) {
	role := OwnerRole(strings.ToUpper(strings.TrimSpace(s)))
	if !validRoles[role] {
		return "", ErrInvalidRole
	}
	return role, nil
}

// String returns the string representation of the role
func (r OwnerRole) String() string {
	return string(r)
}

// IsValid returns true if the role is one of the known owner roles
func (r OwnerRole) IsValid() bool {
	return validRoles[r]
}
