package authz

import (
	"errors"
	"fmt"
	"sync"

	"github.com/hirewire/clientcore/session"
)

// ErrRouteUnknown is returned by Check for a view that was never registered.
var ErrRouteUnknown = errors.New("route not registered")

// RouteTable holds the required role set each protected view declares at
// registration time. Registration happens during client startup; Freeze
// locks the table before the first Check.
type RouteTable struct {
	mu     sync.RWMutex
	routes map[string]RoleSet
	frozen bool
}

// NewRouteTable describes the newroutetable operation and its observable behavior.
func NewRouteTable() *RouteTable {
	return &RouteTable{
		routes: make(map[string]RoleSet),
	}
}

// Register declares a protected view and its required role set. An empty set
// admits any authenticated role. Registering after Freeze or registering the
// same view twice is a wiring error.
func (t *RouteTable) Register(view string, required RoleSet) error {
	if view == "" {
		return errors.New("route name must not be empty")
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.frozen {
		return fmt.Errorf("route table frozen, cannot register %q", view)
	}
	if _, exists := t.routes[view]; exists {
		return fmt.Errorf("route %q already registered", view)
	}

	t.routes[view] = required
	return nil
}

// Freeze describes the freeze operation and its observable behavior.
func (t *RouteTable) Freeze() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.frozen = true
}

// Required returns the declared role set for a view.
func (t *RouteTable) Required(view string) (RoleSet, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	required, ok := t.routes[view]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrRouteUnknown, view)
	}
	return required, nil
}

// Check runs [Decide] against the role set the view declared. An unknown
// view is treated like a view requiring authentication with no role match,
// so a logged-in user is bounced to their own home rather than rendered
// content they never declared access to.
func (t *RouteTable) Check(view string, loading bool, sess *session.Session) Verdict {
	required, err := t.Required(view)
	if err != nil {
		if loading {
			return Verdict{Kind: VerdictPending}
		}
		if sess == nil {
			return Verdict{Kind: VerdictRedirectToLogin}
		}
		return Verdict{Kind: VerdictRedirectToUnauthorized}
	}
	return Decide(loading, sess, required)
}
