package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/demandvibes/taskdesk/internal/model"
)

// loginModel is the login page. It has two sub-views: the credential
// form, and the reset-request form reached with ctrl+r.
type loginModel struct {
	email    textinput.Model
	password textinput.Model
	focus    int
	busy     bool
	errMsg   string

	resetMode  bool
	resetEmail textinput.Model
	resetSent  bool
}

func newLoginModel() loginModel {
	email := textinput.New()
	email.Placeholder = "you@demandvibes.com"
	email.CharLimit = 128
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.CharLimit = 128

	resetEmail := textinput.New()
	resetEmail.Placeholder = "you@demandvibes.com"
	resetEmail.CharLimit = 128

	return loginModel{
		email:      email,
		password:   password,
		resetEmail: resetEmail,
	}
}

func (m *loginModel) typing() bool {
	return m.email.Focused() || m.password.Focused() || m.resetEmail.Focused()
}

func (m *loginModel) enterResetMode() {
	m.resetMode = true
	m.resetSent = false
	m.errMsg = ""
	m.resetEmail.SetValue(m.email.Value())
	m.email.Blur()
	m.password.Blur()
	m.resetEmail.Focus()
}

// leaveResetMode returns to the credential form. The reset email field
// is cleared so a later visit starts fresh.
func (m *loginModel) leaveResetMode() {
	m.resetMode = false
	m.resetSent = false
	m.errMsg = ""
	m.resetEmail.SetValue("")
	m.resetEmail.Blur()
	m.focus = 0
	m.email.Focus()
}

func (m *loginModel) nextField() {
	if m.resetMode {
		return
	}
	m.focus = (m.focus + 1) % 2
	if m.focus == 0 {
		m.email.Focus()
		m.password.Blur()
	} else {
		m.email.Blur()
		m.password.Focus()
	}
}

func loginErrorMessage(err error) string {
	var verr *model.ValidationError
	switch {
	case errors.As(err, &verr):
		return verr.Message
	case errors.Is(err, model.ErrInvalidCredentials):
		return "Invalid email or password."
	case errors.Is(err, model.ErrEmailNotConfirmed):
		return "Please confirm your email before signing in."
	default:
		return "Something went wrong. Please try again."
	}
}

func (m loginModel) view(t Theme) string {
	var b strings.Builder

	if m.resetMode {
		b.WriteString(t.Title.Render("Reset your password"))
		b.WriteString("\n")
		if m.resetSent {
			b.WriteString(t.Success.Render("Check your email for a reset link."))
			b.WriteString("\n")
			b.WriteString(t.Muted.Render("Returning to sign-in…"))
		} else {
			b.WriteString(t.Label.Render("Email") + "\n" + m.resetEmail.View() + "\n\n")
			if m.errMsg != "" {
				b.WriteString(t.Error.Render(m.errMsg) + "\n")
			}
			b.WriteString(t.Muted.Render("enter send link · esc back"))
		}
		return t.Card.Render(b.String())
	}

	b.WriteString(t.Title.Render("Sign in to TaskDesk"))
	b.WriteString("\n")
	b.WriteString(t.Label.Render("Email") + "\n" + m.email.View() + "\n")
	b.WriteString(t.Label.Render("Password") + "\n" + m.password.View() + "\n\n")
	if m.errMsg != "" {
		b.WriteString(t.Error.Render(m.errMsg) + "\n")
	}
	if m.busy {
		b.WriteString(t.Muted.Render("Signing in…") + "\n")
	}
	b.WriteString(t.Muted.Render("enter sign in · tab next · ctrl+r forgot password · esc back"))

	return t.Card.Render(b.String())
}

// signupModel is the account-creation page.
type signupModel struct {
	name     textinput.Model
	email    textinput.Model
	password textinput.Model
	focus    int
	busy     bool
	errMsg   string
}

func newSignupModel() signupModel {
	name := textinput.New()
	name.Placeholder = "Full name"
	name.CharLimit = 128
	name.Focus()

	email := textinput.New()
	email.Placeholder = "you@demandvibes.com"
	email.CharLimit = 128

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.CharLimit = 128

	return signupModel{name: name, email: email, password: password}
}

func (m *signupModel) typing() bool {
	return m.name.Focused() || m.email.Focused() || m.password.Focused()
}

func (m *signupModel) nextField() {
	m.focus = (m.focus + 1) % 3
	m.name.Blur()
	m.email.Blur()
	m.password.Blur()
	switch m.focus {
	case 0:
		m.name.Focus()
	case 1:
		m.email.Focus()
	case 2:
		m.password.Focus()
	}
}

func signupErrorMessage(err error) string {
	var verr *model.ValidationError
	switch {
	case errors.As(err, &verr):
		return verr.Message
	case errors.Is(err, model.ErrAccountExists):
		return "An account with this email already exists."
	case errors.Is(err, model.ErrCreationFailed):
		return "Could not create your account. Please try again."
	default:
		return "Something went wrong. Please try again."
	}
}

func (m signupModel) view(t Theme) string {
	var b strings.Builder

	b.WriteString(t.Title.Render("Create your TaskDesk account"))
	b.WriteString("\n")
	b.WriteString(t.Label.Render("Name") + "\n" + m.name.View() + "\n")
	b.WriteString(t.Label.Render("Email") + "\n" + m.email.View() + "\n")
	b.WriteString(t.Label.Render("Password") + "\n" + m.password.View() + "\n\n")
	if m.errMsg != "" {
		b.WriteString(t.Error.Render(m.errMsg) + "\n")
	}
	if m.busy {
		b.WriteString(t.Muted.Render("Creating account…") + "\n")
	}
	b.WriteString(t.Muted.Render("enter create · tab next · esc back"))

	return t.Card.Render(b.String())
}

// resetModel is the reset-password page reached through a recovery
// link. Without an active recovery session it only shows an error.
type resetModel struct {
	password textinput.Model
	confirm  textinput.Model
	focus    int
	busy     bool
	errMsg   string

	sessionValid bool
	done         bool
}

func newResetModel(sessionValid bool) resetModel {
	password := textinput.New()
	password.Placeholder = "new password"
	password.EchoMode = textinput.EchoPassword
	password.CharLimit = 128

	confirm := textinput.New()
	confirm.Placeholder = "confirm password"
	confirm.EchoMode = textinput.EchoPassword
	confirm.CharLimit = 128

	m := resetModel{
		password:     password,
		confirm:      confirm,
		sessionValid: sessionValid,
	}
	if sessionValid {
		m.password.Focus()
	} else {
		m.errMsg = "Invalid or expired reset link. Please request a new one."
	}
	return m
}

func (m *resetModel) typing() bool {
	return m.password.Focused() || m.confirm.Focused()
}

func (m *resetModel) nextField() {
	m.focus = (m.focus + 1) % 2
	if m.focus == 0 {
		m.password.Focus()
		m.confirm.Blur()
	} else {
		m.password.Blur()
		m.confirm.Focus()
	}
}

func resetErrorMessage(err error) string {
	var verr *model.ValidationError
	switch {
	case errors.As(err, &verr):
		return verr.Message
	case errors.Is(err, model.ErrWeakPassword):
		return fmt.Sprintf("Password must be at least %d characters.", minPasswordHint)
	case errors.Is(err, model.ErrPasswordMismatch):
		return "Passwords do not match."
	case errors.Is(err, model.ErrNoRecoverySession):
		return "Invalid or expired reset link. Please request a new one."
	default:
		return "Something went wrong. Please try again."
	}
}

// minPasswordHint mirrors the service-side minimum for display only.
const minPasswordHint = 6

func (m resetModel) view(t Theme) string {
	var b strings.Builder

	b.WriteString(t.Title.Render("Choose a new password"))
	b.WriteString("\n")

	if m.done {
		b.WriteString(t.Success.Render("Password updated."))
		b.WriteString("\n")
		b.WriteString(t.Muted.Render("Taking you to the dashboard…"))
		return t.Card.Render(b.String())
	}

	if !m.sessionValid {
		b.WriteString(t.Error.Render(m.errMsg))
		b.WriteString("\n")
		b.WriteString(t.Muted.Render("esc back to sign-in"))
		return t.Card.Render(b.String())
	}

	b.WriteString(t.Label.Render("New password") + "\n" + m.password.View() + "\n")
	b.WriteString(t.Label.Render("Confirm password") + "\n" + m.confirm.View() + "\n\n")
	if m.errMsg != "" {
		b.WriteString(t.Error.Render(m.errMsg) + "\n")
	}
	if m.busy {
		b.WriteString(t.Muted.Render("Updating…") + "\n")
	}
	b.WriteString(t.Muted.Render("enter update · tab next"))

	return t.Card.Render(b.String())
}
