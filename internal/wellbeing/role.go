package wellbeing

import (
	"encoding/json"
	"strings"
)

// Role identifies which dashboard a user gets. It is a closed enum so view
// dispatch can switch exhaustively instead of comparing strings; anything the
// wire sends that we do not recognize parses to RoleUnknown and renders a
// placeholder view instead of crashing.
type Role int

const (
	RoleUnknown Role = iota
	RoleEmployee
	RoleManager
	RoleHR
)

// ParseRole maps a wire value to a Role. "individual" is accepted as an alias
// of employee: the original dashboard and its backend disagreed on the value.
func ParseRole(s string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "employee", "individual":
		return RoleEmployee, true
	case "manager":
		return RoleManager, true
	case "hr":
		return RoleHR, true
	default:
		return RoleUnknown, false
	}
}

// String returns the canonical wire value.
func (r Role) String() string {
	switch r {
	case RoleEmployee:
		return "employee"
	case RoleManager:
		return "manager"
	case RoleHR:
		return "hr"
	default:
		return "unknown"
	}
}

// MarshalJSON writes the canonical wire value.
func (r Role) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// UnmarshalJSON parses a wire value, keeping RoleUnknown for values we do not
// recognize so callers can decide whether that is an error.
func (r *Role) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, _ := ParseRole(s)
	*r = parsed
	return nil
}
