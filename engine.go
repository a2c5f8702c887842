package clientcore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hirewire/clientcore/authz"
	"github.com/hirewire/clientcore/internal/events"
	"github.com/hirewire/clientcore/notify"
	"github.com/hirewire/clientcore/session"
)

// Engine defines a public type used by clientcore APIs.
//
// Engine instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Engine struct {
	config        Config
	sessions      *session.Store
	verifier      Verifier
	events        *events.Dispatcher
	metrics       *Metrics
	notifications *notify.Queue
	ownsQueue     bool
}

// Close describes the close operation and its observable behavior.
//
// Close may return an error when input validation, dependency calls, or security checks fail.
// Close does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	if e.events != nil {
		e.events.Close()
	}
	if e.ownsQueue && e.notifications != nil {
		e.notifications.Close()
	}
}

// Notifications returns the queue authentication outcomes surface into: the
// queue wired via [Builder.WithNotifications], or the engine-owned queue
// Build constructed from the notification config. Nil when outcome surfacing
// is disabled and no queue was supplied.
func (e *Engine) Notifications() *notify.Queue {
	if e == nil {
		return nil
	}
	return e.notifications
}

// EventsDropped describes the eventsdropped operation and its observable behavior.
//
// EventsDropped may return an error when input validation, dependency calls, or security checks fail.
// EventsDropped does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) EventsDropped() uint64 {
	if e == nil || e.events == nil {
		return 0
	}
	return e.events.Dropped()
}

// MetricsSnapshot describes the metricssnapshot operation and its observable behavior.
//
// MetricsSnapshot may return an error when input validation, dependency calls, or security checks fail.
// MetricsSnapshot does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil || e.metrics == nil {
		return MetricsSnapshot{Counters: map[MetricID]uint64{}}
	}
	return e.metrics.Snapshot()
}

func (e *Engine) metricInc(id MetricID) {
	if e == nil || e.metrics == nil {
		return
	}
	e.metrics.Inc(id)
}

// Restore loads the persisted session once at process start. It never fails:
// a missing, unreadable, or corrupt entry resolves to logged-out, and a
// corrupt entry is cleared on the way. Calls after the first return the
// current session unchanged.
func (e *Engine) Restore(ctx context.Context) *session.Session {
	if e == nil || e.sessions == nil {
		return nil
	}

	sess, outcome := e.sessions.Restore(ctx)
	switch outcome {
	case session.RestoreSession:
		e.metricInc(MetricSessionRestored)
		e.emitEvent(ctx, eventSessionRestored, true, sess.Email, sess.ID, nil, nil)
	case session.RestoreCorrupt:
		e.metricInc(MetricRestoreCorrupt)
		e.emitEvent(ctx, eventRestoreCorrupt, false, "", "", session.ErrCorruptRecord, func() map[string]string {
			return map[string]string{
				"recovery": "entry_cleared",
			}
		})
	case session.RestoreEmpty, session.RestoreUnavailable:
		e.metricInc(MetricRestoreEmpty)
		e.emitEvent(ctx, eventRestoreEmpty, true, "", "", nil, nil)
	}

	return sess
}

// Login authenticates against the external verifier and installs the
// resulting session. Empty email or password fails with
// [ErrInvalidCredentials] before the verifier is consulted, and a failed
// login never touches the session store.
//
// Login is not single-flight: a second call started before the first
// resolves races it, and the last one to complete determines the stored
// session. Disabling re-entrant submission while a call is outstanding is
// the caller's obligation.
func (e *Engine) Login(ctx context.Context, email, password string, role session.Role) (*session.Session, error) {
	if e == nil || e.verifier == nil || e.sessions == nil {
		return nil, ErrEngineNotReady
	}

	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		e.metricInc(MetricLoginFailure)
		e.emitEvent(ctx, eventLoginFailure, false, email, "", ErrInvalidCredentials, func() map[string]string {
			return map[string]string{
				"reason": "empty_credentials",
			}
		})
		return nil, ErrInvalidCredentials
	}
	if !role.Valid() {
		e.metricInc(MetricLoginFailure)
		e.emitEvent(ctx, eventLoginFailure, false, email, "", ErrInvalidRole, func() map[string]string {
			return map[string]string{
				"reason": "invalid_role",
			}
		})
		return nil, ErrInvalidRole
	}

	ok, err := e.verifier.Verify(ctx, email, password)
	if err != nil {
		e.metricInc(MetricLoginFailure)
		e.emitEvent(ctx, eventLoginFailure, false, email, "", err, func() map[string]string {
			return map[string]string{
				"reason": "verifier_failed",
			}
		})
		return nil, fmt.Errorf("%w: %v", ErrVerifierUnavailable, err)
	}
	if !ok {
		e.metricInc(MetricLoginFailure)
		e.emitEvent(ctx, eventLoginFailure, false, email, "", ErrInvalidCredentials, func() map[string]string {
			return map[string]string{
				"reason": "rejected",
			}
		})
		return nil, ErrInvalidCredentials
	}
	password = ""

	// Past this point the login is committed: the result is applied even if
	// the caller has cancelled and moved on.
	ctx = context.WithoutCancel(ctx)

	sess := &session.Session{
		ID:          uuid.NewString(),
		Email:       email,
		DisplayName: displayNameFromEmail(email),
		Role:        role,
		CreatedAt:   time.Now().Unix(),
	}

	if err := e.sessions.Set(ctx, sess); err != nil {
		e.metricInc(MetricLoginFailure)
		e.emitEvent(ctx, eventLoginFailure, false, email, sess.ID, err, func() map[string]string {
			return map[string]string{
				"reason": "session_persist_failed",
			}
		})
		return nil, fmt.Errorf("%w: %v", ErrSessionPersistFailed, err)
	}

	e.metricInc(MetricSessionCreated)
	e.metricInc(MetricLoginSuccess)
	e.emitEvent(ctx, eventLoginSuccess, true, email, sess.ID, nil, nil)

	return sess.Clone(), nil
}

// Register creates an account through the external verifier's registration
// contract and logs the new identity in. Any absent field fails with
// [ErrMissingFields]. The display name is the supplied name verbatim, not
// derived from the email.
//
// The same last-write-wins and caller re-entrancy obligations as [Engine.Login]
// apply.
func (e *Engine) Register(ctx context.Context, email, password, name string, role session.Role) (*session.Session, error) {
	if e == nil || e.verifier == nil || e.sessions == nil {
		return nil, ErrEngineNotReady
	}

	email = strings.TrimSpace(email)
	name = strings.TrimSpace(name)
	if email == "" || password == "" || name == "" || !role.Valid() {
		e.metricInc(MetricRegisterFailure)
		e.emitEvent(ctx, eventRegisterFailure, false, email, "", ErrMissingFields, func() map[string]string {
			return map[string]string{
				"reason": "missing_fields",
			}
		})
		return nil, ErrMissingFields
	}

	ok, err := e.verifier.Verify(ctx, email, password)
	if err != nil {
		e.metricInc(MetricRegisterFailure)
		e.emitEvent(ctx, eventRegisterFailure, false, email, "", err, func() map[string]string {
			return map[string]string{
				"reason": "verifier_failed",
			}
		})
		return nil, fmt.Errorf("%w: %v", ErrVerifierUnavailable, err)
	}
	if !ok {
		e.metricInc(MetricRegisterFailure)
		e.emitEvent(ctx, eventRegisterFailure, false, email, "", ErrInvalidCredentials, func() map[string]string {
			return map[string]string{
				"reason": "rejected",
			}
		})
		return nil, ErrInvalidCredentials
	}
	password = ""

	// Same commit point as Login: once the verifier accepted, the new
	// identity is installed regardless of caller cancellation.
	ctx = context.WithoutCancel(ctx)

	sess := &session.Session{
		ID:          uuid.NewString(),
		Email:       email,
		DisplayName: name,
		Role:        role,
		CreatedAt:   time.Now().Unix(),
	}

	if err := e.sessions.Set(ctx, sess); err != nil {
		e.metricInc(MetricRegisterFailure)
		e.emitEvent(ctx, eventRegisterFailure, false, email, sess.ID, err, func() map[string]string {
			return map[string]string{
				"reason": "session_persist_failed",
			}
		})
		return nil, fmt.Errorf("%w: %v", ErrSessionPersistFailed, err)
	}

	e.metricInc(MetricSessionCreated)
	e.metricInc(MetricRegisterSuccess)
	e.emitEvent(ctx, eventRegisterSuccess, true, email, sess.ID, nil, nil)

	return sess.Clone(), nil
}

// Logout clears the current session and its persisted entry. Logging out
// with no active session is not an error.
func (e *Engine) Logout(ctx context.Context) error {
	if e == nil || e.sessions == nil {
		return ErrEngineNotReady
	}

	err := e.sessions.Clear(ctx)
	if err == nil {
		e.metricInc(MetricLogout)
		e.metricInc(MetricSessionCleared)
	}
	e.emitEvent(ctx, eventLogout, err == nil, "", "", err, nil)
	return err
}

// Current returns the current session, or nil when logged out.
func (e *Engine) Current() *session.Session {
	if e == nil || e.sessions == nil {
		return nil
	}
	return e.sessions.Current()
}

// Loading reports whether the one-shot restore has yet to complete.
func (e *Engine) Loading() bool {
	if e == nil || e.sessions == nil {
		return false
	}
	return e.sessions.Loading()
}

// Authorize runs the authorization guard against the engine's current state
// for a view requiring the given role set.
func (e *Engine) Authorize(required authz.RoleSet) authz.Verdict {
	return authz.Decide(e.Loading(), e.Current(), required)
}

func displayNameFromEmail(email string) string {
	if at := strings.IndexByte(email, '@'); at >= 0 {
		return email[:at]
	}
	return email
}
