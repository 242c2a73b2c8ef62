package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/demandvibes/taskdesk/internal/model"
	"github.com/demandvibes/taskdesk/internal/token"
)

// signInResponse is the data payload of a successful sign-in.
type signInResponse struct {
	AccessToken string        `json:"access_token"`
	User        model.Account `json:"user"`
}

// SignIn verifies credentials against the gateway and returns the
// stored identity.
func (c *Client) SignIn(ctx context.Context, email, password string) (model.User, error) {
	if err := c.authLimit.Wait(ctx); err != nil {
		return model.User{}, fmt.Errorf("sign-in rate wait: %w", err)
	}

	c.logger.Debug("gateway: signing in", "email", email)

	var data signInResponse
	err := c.do(ctx, http.MethodPost, "/auth/v1/token?grant_type=password", nil,
		map[string]string{"email": email, "password": password}, &data)
	if err != nil {
		return model.User{}, mapAuthError(err)
	}

	c.setAccessToken(data.AccessToken)
	c.emit(model.AuthEvent{Kind: model.EventSignedIn, Email: data.User.Email})

	c.logger.Info("gateway: sign-in completed", "email", data.User.Email)

	return model.User{ID: data.User.ID, Email: data.User.Email, Name: data.User.Name}, nil
}

// LookupAccount returns the account row matching email, or
// model.ErrNotFound when no row matches. Used by the signup
// duplicate pre-check.
func (c *Client) LookupAccount(ctx context.Context, email string) (model.Account, error) {
	var rows []model.Account
	path := "/rest/v1/users?select=id,email,name&email=eq." + url.QueryEscape(strings.ToLower(email))
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &rows); err != nil {
		return model.Account{}, mapAuthError(err)
	}
	if len(rows) == 0 {
		return model.Account{}, model.ErrNotFound
	}
	return rows[0], nil
}

// CreateAccount inserts a new account row and returns the stored
// representation. The digest is kept as a secondary credential
// artifact alongside whatever the gateway hashes server-side.
func (c *Client) CreateAccount(ctx context.Context, email, name, passwordDigest string) (model.Account, error) {
	if err := c.authLimit.Wait(ctx); err != nil {
		return model.Account{}, fmt.Errorf("sign-up rate wait: %w", err)
	}

	c.logger.Debug("gateway: creating account", "email", email)

	header := http.Header{"Prefer": []string{"return=representation"}}
	body := map[string]string{
		"email":         strings.ToLower(email),
		"name":          strings.TrimSpace(name),
		"password_hash": passwordDigest,
	}

	var rows []model.Account
	if err := c.do(ctx, http.MethodPost, "/rest/v1/users", header, body, &rows); err != nil {
		c.logger.Error("gateway: account insert failed", "email", email, "error", err.Error())
		if isTransport(err) {
			return model.Account{}, fmt.Errorf("%w: %w", model.ErrUnexpected, err)
		}
		return model.Account{}, fmt.Errorf("%w: %w", model.ErrCreationFailed, err)
	}
	if len(rows) == 0 {
		return model.Account{}, model.ErrCreationFailed
	}

	c.emit(model.AuthEvent{Kind: model.EventSignedIn, Email: rows[0].Email})

	c.logger.Info("gateway: account created", "email", rows[0].Email)

	return rows[0], nil
}

// RequestPasswordReset asks the gateway to email a recovery link.
// Success carries no payload.
func (c *Client) RequestPasswordReset(ctx context.Context, email string) error {
	if err := c.authLimit.Wait(ctx); err != nil {
		return fmt.Errorf("reset rate wait: %w", err)
	}

	c.logger.Debug("gateway: requesting password reset", "email", email)

	if err := c.do(ctx, http.MethodPost, "/auth/v1/recover", nil,
		map[string]string{"email": email}, nil); err != nil {
		return mapAuthError(err)
	}
	return nil
}

// UpdatePassword sets a new password for the account behind the
// active recovery session. Length and confirmation checks happen in
// the service layer before this call.
func (c *Client) UpdatePassword(ctx context.Context, newPassword string) error {
	c.mu.Lock()
	recovery := c.recoveryToken
	email := c.recoveryEmail
	c.mu.Unlock()

	if recovery == "" {
		return model.ErrNoRecoverySession
	}

	if err := c.authLimit.Wait(ctx); err != nil {
		return fmt.Errorf("update rate wait: %w", err)
	}

	if err := c.do(ctx, http.MethodPut, "/auth/v1/user", nil,
		map[string]string{"password": newPassword}, nil); err != nil {
		return mapAuthError(err)
	}

	// The gateway invalidates the recovery token after a successful
	// update; drop the local half so a second attempt fails cleanly.
	c.mu.Lock()
	c.recoveryToken = ""
	c.recoveryEmail = ""
	c.mu.Unlock()

	c.emit(model.AuthEvent{Kind: model.EventPasswordUpdated, Email: email})

	c.logger.Info("gateway: password updated", "email", email)

	return nil
}

// SignOut drops the bearer credential and notifies subscribers. The
// gateway keeps no server-side session for this client, so no network
// call is involved.
func (c *Client) SignOut() {
	c.mu.Lock()
	c.accessToken = ""
	c.mu.Unlock()

	c.emit(model.AuthEvent{Kind: model.EventSignedOut})
}

// ConsumeRecoveryLink parses an emailed recovery link, installs the
// recovery session, and emits EventPasswordRecovery. Tokens ride in
// the URL fragment (never the query string — fragments are not sent
// to servers, which is why the gateway embeds them there), so the
// fragment is parsed by hand.
func (c *Client) ConsumeRecoveryLink(link string) error {
	accessToken, err := parseRecoveryFragment(link)
	if err != nil {
		return err
	}

	claims, err := token.ParseRecovery(accessToken)
	if err != nil {
		return fmt.Errorf("recovery link rejected: %w", err)
	}

	c.mu.Lock()
	c.recoveryToken = accessToken
	c.recoveryEmail = claims.Email
	c.mu.Unlock()

	c.logger.Info("gateway: recovery session installed", "email", claims.Email)

	c.emit(model.AuthEvent{Kind: model.EventPasswordRecovery, Email: claims.Email})

	return nil
}

// HasRecoverySession reports whether a recovery token is held.
func (c *Client) HasRecoverySession() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.recoveryToken != ""
}

// ErrNotRecoveryLink is returned when a pasted URL carries no
// recovery token fragment.
var ErrNotRecoveryLink = errors.New("not a recovery link")

// parseRecoveryFragment extracts access_token from a link of the form
// https://host/#access_token=…&type=recovery.
func parseRecoveryFragment(link string) (string, error) {
	_, fragment, ok := strings.Cut(link, "#")
	if !ok {
		return "", ErrNotRecoveryLink
	}

	values, err := url.ParseQuery(fragment)
	if err != nil {
		return "", fmt.Errorf("%w: bad fragment: %w", ErrNotRecoveryLink, err)
	}
	if values.Get("type") != "recovery" {
		return "", ErrNotRecoveryLink
	}
	accessToken := values.Get("access_token")
	if accessToken == "" {
		return "", ErrNotRecoveryLink
	}
	return accessToken, nil
}

// mapAuthError converts a raw gateway failure into one of the typed
// model errors. The substring checks against the service's message
// format live here and nowhere else.
func mapAuthError(err error) error {
	var ge *gatewayError
	if !errors.As(err, &ge) {
		return fmt.Errorf("%w: %w", model.ErrUnexpected, err)
	}

	msg := strings.ToLower(ge.message)
	switch {
	case strings.Contains(msg, "not confirmed"):
		return model.ErrEmailNotConfirmed
	case strings.Contains(msg, "invalid login credentials"),
		strings.Contains(msg, "invalid grant"):
		return model.ErrInvalidCredentials
	case strings.Contains(msg, "recovery"):
		return model.ErrNoRecoverySession
	case ge.status == http.StatusBadRequest, ge.status == http.StatusUnauthorized:
		return model.ErrInvalidCredentials
	default:
		return fmt.Errorf("%w: %s", model.ErrUnexpected, ge.message)
	}
}

// isTransport reports whether err happened below the wire contract
// (network failure, malformed response) rather than as a gateway
// {data, error} rejection.
func isTransport(err error) bool {
	var ge *gatewayError
	return !errors.As(err, &ge)
}
