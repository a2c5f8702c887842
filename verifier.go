package clientcore

import (
	"context"
	"strings"
	"time"
)

// Verifier is the external credential-verification collaborator. The engine
// hands it a non-empty email/password pair and expects accept or reject;
// how it decides is its own business.
//
// Verify returning (false, nil) means the credentials were rejected and maps
// to [ErrInvalidCredentials]. A non-nil error means the verifier itself
// failed and maps to [ErrVerifierUnavailable].
type Verifier interface {
	Verify(ctx context.Context, email, password string) (bool, error)
}

// VerifierFunc adapts a function to the [Verifier] interface.
type VerifierFunc func(ctx context.Context, email, password string) (bool, error)

// Verify describes the verify operation and its observable behavior.
func (f VerifierFunc) Verify(ctx context.Context, email, password string) (bool, error) {
	return f(ctx, email, password)
}

// StaticVerifier accepts any non-empty email and password after an optional
// artificial delay, standing in for a real backend during development. The
// delay is a suspension point: control returns to the scheduler and other
// engine operations may interleave with the in-flight call.
type StaticVerifier struct {
	Delay time.Duration
}

// Verify describes the verify operation and its observable behavior.
func (v StaticVerifier) Verify(ctx context.Context, email, password string) (bool, error) {
	if v.Delay > 0 {
		timer := time.NewTimer(v.Delay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return false, ctx.Err()
		}
	}

	return strings.TrimSpace(email) != "" && password != "", nil
}
