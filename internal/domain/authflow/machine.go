// Package authflow models one submit-to-resolution cycle of the auth form
// as a guarded state machine. The flow is exclusive: while an attempt is in
// flight no second submit may start, and every failure lands in a state the
// user can recover from by acting again. Nothing here performs I/O.
package authflow

import (
	"time"

	"portal/internal/errors"
)

// Mode distinguishes the two submit paths of the auth form.
type Mode string

const (
	ModeSignIn Mode = "signIn"
	ModeSignUp Mode = "signUp"
)

// State is the current position of the flow.
type State string

const (
	// StateIdle means no attempt is in flight.
	StateIdle State = "idle"
	// StateSubmitting means a sign-up or sign-in call is in flight.
	StateSubmitting State = "submitting"
	// StateValidationError means the local gate rejected the form; no
	// network call was made.
	StateValidationError State = "validationError"
	// StateDuplicateEmail means the email is already registered.
	StateDuplicateEmail State = "duplicateEmail"
	// StateProviderError means the provider failed in a non-recoverable,
	// unclassified way.
	StateProviderError State = "providerError"
	// StatePendingVerification means the identity was created and the
	// passcode challenge is open.
	StatePendingVerification State = "pendingVerification"
	// StateVerifying means a passcode check is in flight.
	StateVerifying State = "verifying"
	// StateInvalidOtp means the passcode was rejected; the challenge stays
	// open for retry or resend.
	StateInvalidOtp State = "invalidOtp"
	// StateVerified is terminal for sign-up: the account is confirmed and
	// the user is redirected.
	StateVerified State = "verified"
	// StateInvalidCredentials means sign-in failed on password or on a
	// missing account.
	StateInvalidCredentials State = "invalidCredentials"
	// StateUnverified means sign-in hit an account that never finished the
	// passcode challenge; the flow routes back to verification.
	StateUnverified State = "unverified"
	// StateSignedIn is terminal for sign-in: a session was materialized.
	StateSignedIn State = "signedIn"
)

// ErrAttemptInFlight is returned when a submit arrives while another
// attempt is still unresolved.
var ErrAttemptInFlight = errors.New("an attempt is already in flight")

// ErrInvalidTransition is returned when an event arrives in a state that
// does not accept it.
var ErrInvalidTransition = errors.New("invalid auth flow transition")

// Flow is the serializable state of one auth attempt, kept alongside the
// registration session.
type Flow struct {
	Mode      Mode      `json:"mode,omitempty"`
	State     State     `json:"state"`
	Message   string    `json:"message,omitempty"`
	Email     string    `json:"email,omitempty"` // Email awaiting verification.
	StartedAt time.Time `json:"startedAt,omitempty"`
}

// NewFlow returns a flow at rest.
func NewFlow() Flow {
	return Flow{State: StateIdle}
}

// InFlight reports whether a call is unresolved. A new submit is refused
// while this holds.
func (f Flow) InFlight() bool {
	return f.State == StateSubmitting || f.State == StateVerifying
}

// Terminal reports whether the flow reached a redirect state.
func (f Flow) Terminal() bool {
	return f.State == StateVerified || f.State == StateSignedIn
}

// Begin starts a new attempt. Allowed from idle and from any resolved
// failure state; refused while another attempt is in flight or after a
// terminal state.
func (f Flow) Begin(mode Mode, now time.Time) (Flow, error) {
	if f.InFlight() {
		return f, errors.WithStack(ErrAttemptInFlight)
	}
	if f.Terminal() {
		return f, errors.Wrapf(ErrInvalidTransition, "begin from %s", f.State)
	}

	return Flow{Mode: mode, State: StateSubmitting, StartedAt: now}, nil
}

// FailValidation resolves a submit that never reached the network.
func (f Flow) FailValidation(message string) (Flow, error) {
	return f.resolveSubmit(StateValidationError, message)
}

// FailDuplicate resolves a sign-up against an already-registered email.
func (f Flow) FailDuplicate(message string) (Flow, error) {
	return f.resolveSubmit(StateDuplicateEmail, message)
}

// FailProvider resolves a submit the provider rejected for an unclassified
// reason.
func (f Flow) FailProvider(message string) (Flow, error) {
	return f.resolveSubmit(StateProviderError, message)
}

// FailCredentials resolves a sign-in on a bad password or missing account.
func (f Flow) FailCredentials(message string) (Flow, error) {
	return f.resolveSubmit(StateInvalidCredentials, message)
}

// PendVerification resolves a successful sign-up: the passcode challenge
// for email is now open.
func (f Flow) PendVerification(email string) (Flow, error) {
	next, err := f.resolveSubmit(StatePendingVerification, "")
	if err != nil {
		return f, err
	}
	next.Email = email

	return next, nil
}

// RequireVerification resolves a sign-in against an unverified account by
// reopening the passcode challenge.
func (f Flow) RequireVerification(email string) (Flow, error) {
	next, err := f.resolveSubmit(StateUnverified, "")
	if err != nil {
		return f, err
	}
	next.Email = email

	return next, nil
}

// CompleteSignIn resolves a fully successful sign-in.
func (f Flow) CompleteSignIn() (Flow, error) {
	return f.resolveSubmit(StateSignedIn, "")
}

func (f Flow) resolveSubmit(to State, message string) (Flow, error) {
	if f.State != StateSubmitting {
		return f, errors.Wrapf(ErrInvalidTransition, "%s from %s", to, f.State)
	}
	f.State = to
	f.Message = message

	return f, nil
}

// BeginVerify starts a passcode check. Allowed while the challenge is open,
// including after a failed attempt.
func (f Flow) BeginVerify() (Flow, error) {
	if f.State != StatePendingVerification && f.State != StateInvalidOtp && f.State != StateUnverified {
		return f, errors.Wrapf(ErrInvalidTransition, "verify from %s", f.State)
	}
	f.State = StateVerifying
	f.Message = ""

	return f, nil
}

// FailOtp resolves a rejected passcode. The challenge stays open so the
// user can retry or resend without limit.
func (f Flow) FailOtp(message string) (Flow, error) {
	if f.State != StateVerifying {
		return f, errors.Wrapf(ErrInvalidTransition, "invalidOtp from %s", f.State)
	}
	f.State = StateInvalidOtp
	f.Message = message

	return f, nil
}

// CompleteVerify resolves a successful passcode check.
func (f Flow) CompleteVerify() (Flow, error) {
	if f.State != StateVerifying {
		return f, errors.Wrapf(ErrInvalidTransition, "verified from %s", f.State)
	}
	f.State = StateVerified
	f.Message = ""

	return f, nil
}

// CanResend reports whether a resend request makes sense right now. Resends
// are unlimited but only while a challenge is open.
func (f Flow) CanResend() bool {
	return f.State == StatePendingVerification || f.State == StateInvalidOtp || f.State == StateUnverified
}
