package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/demandvibes/taskdesk/internal/logger"
	"github.com/demandvibes/taskdesk/internal/model"
	"github.com/demandvibes/taskdesk/internal/policy"
)

// MinPasswordLength is the weakest password the client will send.
const MinPasswordLength = 6

// Auth orchestrates the sign-in, sign-up, and password-reset flows:
// local validation first, then the gateway, then the session store.
type Auth struct {
	gateway model.AuthGateway
	session model.SessionStore
	logger  *logger.Logger
}

// NewAuth creates a new Auth service.
func NewAuth(gateway model.AuthGateway, session model.SessionStore, logger *logger.Logger) *Auth {
	return &Auth{
		gateway: gateway,
		session: session,
		logger:  logger,
	}
}

// SignIn verifies credentials and installs the returned identity in
// the session store.
func (a *Auth) SignIn(ctx context.Context, email, password string) (model.User, error) {
	if strings.TrimSpace(email) == "" || strings.TrimSpace(password) == "" {
		return model.User{}, model.NewValidationError("", "Email and password are required.")
	}

	a.logger.Debug("Auth service: signing in", "email", email)

	user, err := a.gateway.SignIn(ctx, email, password)
	if err != nil {
		a.logger.Info("Auth service: sign-in failed",
			"email", email,
			"error", err.Error())
		return model.User{}, err
	}

	a.session.Set(user)

	a.logger.Info("Auth service: sign-in completed", "email", user.Email)

	return user, nil
}

// SignUp creates an account. The email-domain policy and the
// duplicate pre-check run before anything is inserted; a rejected
// domain never reaches the gateway at all.
func (a *Auth) SignUp(ctx context.Context, email, password, name string) (model.User, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" || strings.TrimSpace(password) == "" {
		return model.User{}, model.NewValidationError("", "Name, email and password are required.")
	}

	if !policy.IsAllowedDomain(email) {
		return model.User{}, model.NewValidationError("email", policy.DomainRejectionMessage())
	}

	a.logger.Debug("Auth service: starting sign-up", "email", email)

	_, err := a.gateway.LookupAccount(ctx, email)
	switch {
	case err == nil:
		a.logger.Info("Auth service: account already exists", "email", email)
		return model.User{}, model.ErrAccountExists
	case !errors.Is(err, model.ErrNotFound):
		a.logger.Error("Auth service: duplicate pre-check failed",
			"email", email,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to check for existing account: %w", err)
	}

	account, err := a.gateway.CreateAccount(ctx, email, name, digestPassword(password))
	if err != nil {
		a.logger.Error("Auth service: account creation failed",
			"email", email,
			"error", err.Error())
		return model.User{}, err
	}

	user := model.User{ID: account.ID, Email: account.Email, Name: account.Name}
	a.session.Set(user)

	a.logger.Info("Auth service: sign-up completed", "email", user.Email)

	return user, nil
}

// RequestReset asks the gateway to email a recovery link.
func (a *Auth) RequestReset(ctx context.Context, email string) error {
	if strings.TrimSpace(email) == "" {
		return model.NewValidationError("email", "Email is required.")
	}

	a.logger.Debug("Auth service: requesting password reset", "email", email)

	return a.gateway.RequestPasswordReset(ctx, email)
}

// UpdatePassword validates the new password locally, then updates it
// through the active recovery session. A too-short or mismatched
// password never reaches the gateway.
func (a *Auth) UpdatePassword(ctx context.Context, newPassword, confirmPassword string) error {
	if newPassword == "" || confirmPassword == "" {
		return model.NewValidationError("", "Both fields are required.")
	}
	if len(newPassword) < MinPasswordLength {
		return model.ErrWeakPassword
	}
	if newPassword != confirmPassword {
		return model.ErrPasswordMismatch
	}

	if err := a.gateway.UpdatePassword(ctx, newPassword); err != nil {
		a.logger.Info("Auth service: password update failed", "error", err.Error())
		return err
	}

	a.logger.Info("Auth service: password updated")

	return nil
}

// SignOut clears the session and notifies the gateway adapter.
func (a *Auth) SignOut() {
	a.session.Clear()
	a.gateway.SignOut()
	a.logger.Info("Auth service: signed out")
}

// digestPassword produces the client-side SHA-256 hex digest stored
// as a secondary credential artifact alongside the gateway's own
// server-side hash. It is never used for gateway authentication.
func digestPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}
