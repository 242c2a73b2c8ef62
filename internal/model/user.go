package model

// User represents the authenticated identity held by the session store.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// SessionStore holds at most one identity for the lifetime of the
// client process. Setting a new identity fully replaces any prior one.
// Storage failures degrade to "no session" and are never surfaced as
// errors to the caller.
type SessionStore interface {
	Set(user User)
	Get() *User
	Clear()
	IsAuthenticated() bool
}
