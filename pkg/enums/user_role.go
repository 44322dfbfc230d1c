package enums

import "fmt"

// UserRole is the platform-level permissions role carried in access tokens.
type UserRole string

const (
	UserRoleCliente  UserRole = "cliente"
	UserRoleOperador UserRole = "operador"
	UserRoleAdmin    UserRole = "admin"
)

var validUserRoles = []UserRole{
	UserRoleCliente,
	UserRoleOperador,
	UserRoleAdmin,
}

// String implements fmt.Stringer.
func (r UserRole) String() string {
	return string(r)
}

// IsValid reports whether the value is a known UserRole.
func (r UserRole) IsValid() bool {
	for _, candidate := range validUserRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// CanManageLogistics reports whether the role may read or mutate shipments.
func (r UserRole) CanManageLogistics() bool {
	return r == UserRoleOperador || r == UserRoleAdmin
}

// ParseUserRole converts raw input into a UserRole.
func ParseUserRole(value string) (UserRole, error) {
	for _, candidate := range validUserRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid user role %q", value)
}
