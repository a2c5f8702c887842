package clientcore

import "errors"

var (
	// ErrInvalidCredentials is an exported constant or variable used by the client session engine.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrMissingFields is an exported constant or variable used by the client session engine.
	ErrMissingFields = errors.New("missing required registration fields")
	// ErrInvalidRole is an exported constant or variable used by the client session engine.
	ErrInvalidRole = errors.New("invalid account role")
	// ErrSessionPersistFailed is an exported constant or variable used by the client session engine.
	ErrSessionPersistFailed = errors.New("session persist failed")
	// ErrVerifierUnavailable is an exported constant or variable used by the client session engine.
	ErrVerifierUnavailable = errors.New("credential verifier unavailable")
	// ErrEngineNotReady is an exported constant or variable used by the client session engine.
	ErrEngineNotReady = errors.New("engine not initialized")
)
