package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/demandvibes/taskdesk/internal/model"
	"github.com/demandvibes/taskdesk/internal/testutil"
	"github.com/demandvibes/taskdesk/internal/token"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, "test-anon-key", server.Client(), testutil.MakeNoopLogger(), 1000)
}

func signedRecoveryToken(t *testing.T, email string, expiresAt time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, token.RecoveryClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u-1",
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Email: email,
	})
	signed, err := tok.SignedString([]byte("secret"))
	require.NoError(t, err)
	return signed
}

func recoveryLink(t *testing.T, email string) string {
	t.Helper()
	return "https://app.demandvibes.com/#access_token=" +
		signedRecoveryToken(t, email, time.Now().Add(time.Hour)) + "&type=recovery"
}

func TestSignIn_Success(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/v1/token", r.URL.Path)
		assert.Equal(t, "password", r.URL.Query().Get("grant_type"))
		assert.Equal(t, "test-anon-key", r.Header.Get("apikey"))
		fmt.Fprint(w, `{"data":{"access_token":"tok-1","user":{"id":"u-1","email":"a@demandvibes.com","name":"A B"}}}`)
	}))

	user, err := client.SignIn(context.Background(), "a@demandvibes.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, model.User{ID: "u-1", Email: "a@demandvibes.com", Name: "A B"}, user)
}

func TestSignIn_InvalidCredentials(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error":{"message":"Invalid login credentials"}}`)
	}))

	_, err := client.SignIn(context.Background(), "a@demandvibes.com", "wrong")
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestSignIn_EmailNotConfirmed(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error":{"message":"Email not confirmed"}}`)
	}))

	_, err := client.SignIn(context.Background(), "a@demandvibes.com", "secret1")
	assert.ErrorIs(t, err, model.ErrEmailNotConfirmed)
}

func TestSignIn_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close() // connection refused from here on
	client := NewClient(server.URL, "k", http.DefaultClient, testutil.MakeNoopLogger(), 1000)

	_, err := client.SignIn(context.Background(), "a@demandvibes.com", "secret1")
	assert.ErrorIs(t, err, model.ErrUnexpected)
}

func TestSignIn_EmitsSignedInEvent(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":{"access_token":"tok-1","user":{"id":"u-1","email":"a@demandvibes.com","name":"A"}}}`)
	}))

	events, cancel := client.Subscribe()
	defer cancel()

	_, err := client.SignIn(context.Background(), "a@demandvibes.com", "secret1")
	require.NoError(t, err)

	select {
	case event := <-events:
		assert.Equal(t, model.EventSignedIn, event.Kind)
		assert.Equal(t, "a@demandvibes.com", event.Email)
	case <-time.After(time.Second):
		t.Fatal("no event received")
	}
}

func TestLookupAccount(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1/users", r.URL.Path)
		if r.URL.Query().Get("email") == "eq.taken@demandvibes.com" {
			fmt.Fprint(w, `{"data":[{"id":"u-9","email":"taken@demandvibes.com","name":"T"}]}`)
			return
		}
		fmt.Fprint(w, `{"data":[]}`)
	}))

	account, err := client.LookupAccount(context.Background(), "Taken@demandvibes.com")
	require.NoError(t, err)
	assert.Equal(t, "u-9", account.ID)

	_, err = client.LookupAccount(context.Background(), "free@demandvibes.com")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestCreateAccount_Success(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/rest/v1/users", r.URL.Path)
		assert.Equal(t, "return=representation", r.Header.Get("Prefer"))
		fmt.Fprint(w, `{"data":[{"id":"u-2","email":"a@demandvibes.com","name":"A B"}]}`)
	}))

	account, err := client.CreateAccount(context.Background(), "A@demandvibes.com", " A B ", "digest")
	require.NoError(t, err)
	assert.Equal(t, model.Account{ID: "u-2", Email: "a@demandvibes.com", Name: "A B"}, account)
}

func TestCreateAccount_InsertFailure(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		fmt.Fprint(w, `{"error":{"message":"duplicate key value violates unique constraint"}}`)
	}))

	_, err := client.CreateAccount(context.Background(), "a@demandvibes.com", "A", "digest")
	assert.ErrorIs(t, err, model.ErrCreationFailed)
}

func TestRequestPasswordReset(t *testing.T) {
	var gotPath string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		fmt.Fprint(w, `{"data":{}}`)
	}))

	require.NoError(t, client.RequestPasswordReset(context.Background(), "a@x.com"))
	assert.Equal(t, "/auth/v1/recover", gotPath)
}

func TestUpdatePassword_NoRecoverySession(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("gateway must not be called without a recovery session")
	}))

	err := client.UpdatePassword(context.Background(), "secret1")
	assert.ErrorIs(t, err, model.ErrNoRecoverySession)
}

func TestUpdatePassword_Success(t *testing.T) {
	var gotAuth string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/auth/v1/user", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		fmt.Fprint(w, `{"data":{}}`)
	}))

	require.NoError(t, client.ConsumeRecoveryLink(recoveryLink(t, "a@demandvibes.com")))
	require.True(t, client.HasRecoverySession())

	events, cancel := client.Subscribe()
	defer cancel()

	require.NoError(t, client.UpdatePassword(context.Background(), "longenough"))
	assert.Contains(t, gotAuth, "Bearer ")

	// Token is single-use: the local half is dropped after success.
	assert.False(t, client.HasRecoverySession())
	assert.ErrorIs(t, client.UpdatePassword(context.Background(), "longenough"), model.ErrNoRecoverySession)

	select {
	case event := <-events:
		assert.Equal(t, model.EventPasswordUpdated, event.Kind)
	case <-time.After(time.Second):
		t.Fatal("no event received")
	}
}

func TestConsumeRecoveryLink_EmitsRecoveryEvent(t *testing.T) {
	client := newTestClient(t, http.NotFoundHandler())

	events, cancel := client.Subscribe()
	defer cancel()

	require.NoError(t, client.ConsumeRecoveryLink(recoveryLink(t, "a@demandvibes.com")))

	select {
	case event := <-events:
		assert.Equal(t, model.EventPasswordRecovery, event.Kind)
		assert.Equal(t, "a@demandvibes.com", event.Email)
	case <-time.After(time.Second):
		t.Fatal("no event received")
	}
}

func TestConsumeRecoveryLink_Expired(t *testing.T) {
	client := newTestClient(t, http.NotFoundHandler())

	link := "https://app.demandvibes.com/#access_token=" +
		signedRecoveryToken(t, "a@demandvibes.com", time.Now().Add(-time.Minute)) + "&type=recovery"

	err := client.ConsumeRecoveryLink(link)
	assert.ErrorIs(t, err, token.ErrExpired)
	assert.False(t, client.HasRecoverySession())
}

func TestParseRecoveryFragment(t *testing.T) {
	tests := []struct {
		name    string
		link    string
		wantErr bool
	}{
		{"valid", "https://x/#access_token=abc&type=recovery", false},
		{"no fragment", "https://x/?access_token=abc&type=recovery", true},
		{"wrong type", "https://x/#access_token=abc&type=magiclink", true},
		{"missing token", "https://x/#type=recovery", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseRecoveryFragment(tt.link)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrNotRecoveryLink)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "abc", got)
		})
	}
}
