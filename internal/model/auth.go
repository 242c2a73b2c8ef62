package model

import "context"

// EventKind identifies an auth-state-change notification.
type EventKind string

const (
	// EventSignedIn fires after a successful credential sign-in.
	EventSignedIn EventKind = "SIGNED_IN"
	// EventSignedOut fires after the session is terminated.
	EventSignedOut EventKind = "SIGNED_OUT"
	// EventPasswordRecovery fires when a recovery link is consumed.
	// The navigation layer must force the reset-password page.
	EventPasswordRecovery EventKind = "PASSWORD_RECOVERY"
	// EventPasswordUpdated fires after a successful password update,
	// at which point the recovery session is gone.
	EventPasswordUpdated EventKind = "PASSWORD_UPDATED"
)

// AuthEvent is an asynchronous auth-state-change notification.
type AuthEvent struct {
	Kind EventKind
	// Email of the affected account when known, empty otherwise.
	Email string
}

// Account is the gateway's stored view of a user row, returned by
// lookups and inserts against the data API.
type Account struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// AuthGateway wraps the remote managed authentication service. All
// methods are blocking network calls; callers run them off the UI
// loop and must tolerate cancellation via ctx.
type AuthGateway interface {
	// SignIn verifies credentials and returns the stored identity.
	// Fails with ErrInvalidCredentials, ErrEmailNotConfirmed, or
	// ErrUnexpected; raw gateway error text never escapes.
	SignIn(ctx context.Context, email, password string) (User, error)

	// LookupAccount returns the account matching email, or
	// ErrNotFound when no row matches.
	LookupAccount(ctx context.Context, email string) (Account, error)

	// CreateAccount inserts a new account row. The password digest is
	// a client-side secondary credential artifact, not the credential
	// the gateway itself verifies. Fails with ErrCreationFailed.
	CreateAccount(ctx context.Context, email, name, passwordDigest string) (Account, error)

	// RequestPasswordReset triggers out-of-band delivery of a
	// recovery link to email. Success carries no payload.
	RequestPasswordReset(ctx context.Context, email string) error

	// UpdatePassword sets a new password for the account behind the
	// active recovery session. Fails with ErrNoRecoverySession when
	// no recovery link has been consumed.
	UpdatePassword(ctx context.Context, newPassword string) error

	// SignOut drops any held credential and emits EventSignedOut.
	SignOut()

	// ConsumeRecoveryLink parses an emailed recovery link, installs
	// the recovery session, and emits EventPasswordRecovery. The
	// token is single-use: the gateway invalidates it after a
	// successful password update.
	ConsumeRecoveryLink(link string) error

	// HasRecoverySession reports whether a consumed recovery link is
	// currently held.
	HasRecoverySession() bool

	// Subscribe registers for auth-state-change events. The returned
	// cancel function is idempotent and must be called before the
	// subscriber goes away so no event is acted on after teardown.
	Subscribe() (<-chan AuthEvent, func())
}
