package authz

import (
	"strings"

	"github.com/hirewire/clientcore/session"
)

// RoleSet is a bitmask over the closed role enumeration. The zero value is
// the empty set, which means "any authenticated role".
type RoleSet uint8

// Roles builds a [RoleSet] from the given roles. Invalid role values are
// ignored rather than widening the set.
func Roles(roles ...session.Role) RoleSet {
	var set RoleSet
	for _, role := range roles {
		set = set.With(role)
	}
	return set
}

// With returns the set including role.
func (rs RoleSet) With(role session.Role) RoleSet {
	if !role.Valid() {
		return rs
	}
	return rs | 1<<uint8(role)
}

// Has describes the has operation and its observable behavior.
func (rs RoleSet) Has(role session.Role) bool {
	if !role.Valid() {
		return false
	}
	return rs&(1<<uint8(role)) != 0
}

// Empty describes the empty operation and its observable behavior.
func (rs RoleSet) Empty() bool {
	return rs == 0
}

// String describes the string operation and its observable behavior.
func (rs RoleSet) String() string {
	if rs.Empty() {
		return "any"
	}

	var names []string
	for _, role := range []session.Role{session.RoleSeeker, session.RoleEmployer} {
		if rs.Has(role) {
			names = append(names, role.String())
		}
	}
	return strings.Join(names, "|")
}
