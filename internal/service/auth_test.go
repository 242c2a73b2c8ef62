package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/demandvibes/taskdesk/internal/mocks"
	"github.com/demandvibes/taskdesk/internal/model"
	"github.com/demandvibes/taskdesk/internal/testutil"
)

func newAuthService() (*Auth, *mocks.AuthGateway, *mocks.SessionStore) {
	gateway := &mocks.AuthGateway{}
	session := &mocks.SessionStore{}
	return NewAuth(gateway, session, testutil.MakeNoopLogger()), gateway, session
}

func TestSignIn_Success(t *testing.T) {
	ctx := context.Background()
	svc, gateway, session := newAuthService()

	want := model.User{ID: "u-1", Email: "a@demandvibes.com", Name: "A B"}
	gateway.On("SignIn", ctx, "a@demandvibes.com", "secret1").Return(want, nil).Once()
	session.On("Set", want).Once()

	user, err := svc.SignIn(ctx, "a@demandvibes.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, want, user)

	gateway.AssertExpectations(t)
	session.AssertExpectations(t)
}

func TestSignIn_EmptyFields(t *testing.T) {
	ctx := context.Background()
	svc, gateway, _ := newAuthService()

	_, err := svc.SignIn(ctx, "", "secret1")
	assert.True(t, model.IsValidation(err))

	_, err = svc.SignIn(ctx, "a@demandvibes.com", "  ")
	assert.True(t, model.IsValidation(err))

	gateway.AssertNotCalled(t, "SignIn", mock.Anything, mock.Anything, mock.Anything)
}

func TestSignIn_InvalidCredentialsNotStored(t *testing.T) {
	ctx := context.Background()
	svc, gateway, session := newAuthService()

	gateway.On("SignIn", ctx, "a@demandvibes.com", "wrong").
		Return(model.User{}, model.ErrInvalidCredentials).Once()

	_, err := svc.SignIn(ctx, "a@demandvibes.com", "wrong")
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)

	session.AssertNotCalled(t, "Set", mock.Anything)
}

func TestSignUp_DomainMismatchShortCircuits(t *testing.T) {
	ctx := context.Background()
	svc, gateway, session := newAuthService()

	_, err := svc.SignUp(ctx, "a@example.com", "secret1", "A B")
	assert.True(t, model.IsValidation(err))
	assert.Contains(t, err.Error(), "DemandVibes")

	// Validation short-circuits: the gateway is never reached.
	gateway.AssertNotCalled(t, "LookupAccount", mock.Anything, mock.Anything)
	gateway.AssertNotCalled(t, "CreateAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	session.AssertNotCalled(t, "Set", mock.Anything)
}

func TestSignUp_Success(t *testing.T) {
	ctx := context.Background()
	svc, gateway, session := newAuthService()

	digest := sha256.Sum256([]byte("secret1"))
	wantDigest := hex.EncodeToString(digest[:])

	gateway.On("LookupAccount", ctx, "a@demandvibes.com").
		Return(model.Account{}, model.ErrNotFound).Once()
	gateway.On("CreateAccount", ctx, "a@demandvibes.com", "A B", wantDigest).
		Return(model.Account{ID: "u-7", Email: "a@demandvibes.com", Name: "A B"}, nil).Once()
	session.On("Set", model.User{ID: "u-7", Email: "a@demandvibes.com", Name: "A B"}).Once()

	user, err := svc.SignUp(ctx, "a@demandvibes.com", "secret1", "A B")
	require.NoError(t, err)
	assert.Equal(t, "u-7", user.ID)

	gateway.AssertExpectations(t)
	session.AssertExpectations(t)
}

func TestSignUp_Duplicate(t *testing.T) {
	ctx := context.Background()
	svc, gateway, session := newAuthService()

	gateway.On("LookupAccount", ctx, "taken@demandvibes.com").
		Return(model.Account{ID: "u-9", Email: "taken@demandvibes.com"}, nil).Once()

	_, err := svc.SignUp(ctx, "taken@demandvibes.com", "secret1", "T")
	assert.ErrorIs(t, err, model.ErrAccountExists)

	gateway.AssertNotCalled(t, "CreateAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	session.AssertNotCalled(t, "Set", mock.Anything)
}

func TestRequestReset(t *testing.T) {
	ctx := context.Background()
	svc, gateway, _ := newAuthService()

	gateway.On("RequestPasswordReset", ctx, "a@x.com").Return(nil).Once()

	require.NoError(t, svc.RequestReset(ctx, "a@x.com"))
	assert.True(t, model.IsValidation(svc.RequestReset(ctx, "   ")))

	gateway.AssertExpectations(t)
}

func TestUpdatePassword_WeakPasswordSkipsGateway(t *testing.T) {
	ctx := context.Background()
	svc, gateway, _ := newAuthService()

	err := svc.UpdatePassword(ctx, "abc", "abc")
	assert.ErrorIs(t, err, model.ErrWeakPassword)

	gateway.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything)
}

func TestUpdatePassword_MismatchSkipsGateway(t *testing.T) {
	ctx := context.Background()
	svc, gateway, _ := newAuthService()

	err := svc.UpdatePassword(ctx, "secret1", "secret2")
	assert.ErrorIs(t, err, model.ErrPasswordMismatch)

	gateway.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything)
}

func TestUpdatePassword_EmptyFields(t *testing.T) {
	ctx := context.Background()
	svc, gateway, _ := newAuthService()

	assert.True(t, model.IsValidation(svc.UpdatePassword(ctx, "", "")))
	gateway.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything)
}

func TestUpdatePassword_Success(t *testing.T) {
	ctx := context.Background()
	svc, gateway, _ := newAuthService()

	gateway.On("UpdatePassword", ctx, "longenough").Return(nil).Once()

	require.NoError(t, svc.UpdatePassword(ctx, "longenough", "longenough"))
	gateway.AssertExpectations(t)
}

func TestSignOut(t *testing.T) {
	svc, gateway, session := newAuthService()

	session.On("Clear").Once()
	gateway.On("SignOut").Once()

	svc.SignOut()

	gateway.AssertExpectations(t)
	session.AssertExpectations(t)
}
