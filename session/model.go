package session

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Role is the closed set of account roles a session can carry. Changing role
// requires a new session; the field is immutable for the session's lifetime.
type Role uint8

const (
	// RoleSeeker is an exported constant or variable used by the client session engine.
	RoleSeeker Role = iota
	// RoleEmployer is an exported constant or variable used by the client session engine.
	RoleEmployer
)

const (
	roleSeekerName   = "job_seeker"
	roleEmployerName = "employer"
)

// Valid reports whether r is one of the declared roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSeeker, RoleEmployer:
		return true
	default:
		return false
	}
}

// String describes the string operation and its observable behavior.
func (r Role) String() string {
	switch r {
	case RoleSeeker:
		return roleSeekerName
	case RoleEmployer:
		return roleEmployerName
	default:
		return fmt.Sprintf("role(%d)", uint8(r))
	}
}

// ParseRole maps a stored role name back onto the closed enumeration.
func ParseRole(name string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case roleSeekerName:
		return RoleSeeker, nil
	case roleEmployerName:
		return RoleEmployer, nil
	default:
		return 0, fmt.Errorf("unknown role %q", name)
	}
}

// MarshalJSON describes the marshaljson operation and its observable behavior.
func (r Role) MarshalJSON() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("cannot encode invalid role %d", uint8(r))
	}
	return json.Marshal(r.String())
}

// UnmarshalJSON describes the unmarshaljson operation and its observable behavior.
func (r *Role) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	parsed, err := ParseRole(name)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Session defines a public type used by clientcore APIs.
//
// A Session exists if and only if the user is authenticated; its absence is
// the sole logged-out signal. ID, Email, and Role are immutable once set.
type Session struct {
	ID          string
	Email       string
	DisplayName string
	Role        Role
	CreatedAt   int64
}

// Clone returns a copy so callers can hand sessions out without sharing the
// store's cell.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	out := *s
	return &out
}
