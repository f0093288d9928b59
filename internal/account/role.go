package account

import (
	"fmt"
	"strings"
)

// Role is the kind of account a user signed in with.
type Role int

const (
	RoleUnknown Role = iota
	RoleCustomer
	RoleEmployee
	RoleManager
)

// ParseRole accepts the role names case-insensitively. An empty string yields
// RoleUnknown without error.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return RoleUnknown, nil
	case "customer":
		return RoleCustomer, nil
	case "employee":
		return RoleEmployee, nil
	case "manager":
		return RoleManager, nil
	default:
		return RoleUnknown, fmt.Errorf("unknown role %q", s)
	}
}

func (r Role) String() string {
	switch r {
	case RoleCustomer:
		return "Customer"
	case RoleEmployee:
		return "Employee"
	case RoleManager:
		return "Manager"
	default:
		return ""
	}
}

// ProfileType is the value sent as the profile service's type parameter.
// Managers are employees as far as profile records go.
func (r Role) ProfileType() string {
	switch r {
	case RoleCustomer:
		return "Customer"
	case RoleEmployee, RoleManager:
		return "Employee"
	default:
		return "Employee"
	}
}

// Dashboard is a navigation link shown on the account page.
type Dashboard struct {
	Label string
	Path  string
}

// Dashboard returns the dashboard link for the role, if it has one.
func (r Role) Dashboard() (Dashboard, bool) {
	switch r {
	case RoleEmployee:
		return Dashboard{Label: "Employee Dashboard", Path: "/employee-dashboard"}, true
	case RoleManager:
		return Dashboard{Label: "Manager Dashboard", Path: "/manager-dashboard"}, true
	case RoleCustomer, RoleUnknown:
		return Dashboard{}, false
	default:
		return Dashboard{}, false
	}
}
