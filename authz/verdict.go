package authz

import "github.com/hirewire/clientcore/session"

// VerdictKind defines a public type used by clientcore APIs.
//
// VerdictKind instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type VerdictKind uint8

const (
	// VerdictPending is an exported constant or variable used by the client session engine.
	VerdictPending VerdictKind = iota
	// VerdictAllow is an exported constant or variable used by the client session engine.
	VerdictAllow
	// VerdictRedirectToLogin is an exported constant or variable used by the client session engine.
	VerdictRedirectToLogin
	// VerdictRedirectToRoleHome is an exported constant or variable used by the client session engine.
	VerdictRedirectToRoleHome
	// VerdictRedirectToUnauthorized is an exported constant or variable used by the client session engine.
	VerdictRedirectToUnauthorized
)

// String describes the string operation and its observable behavior.
func (k VerdictKind) String() string {
	switch k {
	case VerdictPending:
		return "pending"
	case VerdictAllow:
		return "allow"
	case VerdictRedirectToLogin:
		return "redirect_to_login"
	case VerdictRedirectToRoleHome:
		return "redirect_to_role_home"
	case VerdictRedirectToUnauthorized:
		return "redirect_to_unauthorized"
	default:
		return "unknown"
	}
}

// Verdict is the guard's decision for one protected-view entry. Role is
// meaningful only for [VerdictRedirectToRoleHome], where it names the
// session's own role so the caller can pick the matching landing view.
type Verdict struct {
	Kind VerdictKind
	Role session.Role
}

// Decide maps (loading, session, required role set) to a [Verdict].
//
// While the restore is still loading the verdict is always pending: the
// caller shows a neutral waiting indicator, never content. Once settled, no
// session redirects to login; a session whose role is in the required set
// (or an empty set) renders; any other valid role is sent to its own home
// view. A role outside the closed enumeration cannot occur through the
// authenticator, and degrades to the unauthorized redirect.
func Decide(loading bool, sess *session.Session, required RoleSet) Verdict {
	if loading {
		return Verdict{Kind: VerdictPending}
	}
	if sess == nil {
		return Verdict{Kind: VerdictRedirectToLogin}
	}
	if required.Empty() || required.Has(sess.Role) {
		return Verdict{Kind: VerdictAllow}
	}

	switch sess.Role {
	case session.RoleSeeker, session.RoleEmployer:
		return Verdict{Kind: VerdictRedirectToRoleHome, Role: sess.Role}
	default:
		return Verdict{Kind: VerdictRedirectToUnauthorized}
	}
}
