package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAccountConflictMapsToEmailExists(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/accounts", r.URL.Path)
		w.WriteHeader(http.StatusConflict)
	}))
	defer srv.Close()

	provider := NewHTTPProvider(srv.URL, "key", time.Second)
	_, err := provider.CreateAccount(context.Background(), "a@x.com", "secret")
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestCreateAccountSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer key", r.Header.Get("Authorization"))
		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		require.Equal(t, "a@x.com", payload["email"])
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(Account{UID: "uid-1", Email: "a@x.com"})
	}))
	defer srv.Close()

	provider := NewHTTPProvider(srv.URL, "key", time.Second)
	account, err := provider.CreateAccount(context.Background(), "a@x.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "uid-1", account.UID)
}

func TestAccountByEmailNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/accounts/lookup", r.URL.Path)
		require.Equal(t, "a@x.com", r.URL.Query().Get("email"))
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	provider := NewHTTPProvider(srv.URL, "", time.Second)
	_, err := provider.AccountByEmail(context.Background(), "a@x.com")
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestVerifyTokenInvalid(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	provider := NewHTTPProvider(srv.URL, "", time.Second)
	_, err := provider.VerifyToken(context.Background(), "bogus")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestMintCustomToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/token:mint", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]string{"token": "custom-token"})
	}))
	defer srv.Close()

	provider := NewHTTPProvider(srv.URL, "", time.Second)
	token, err := provider.MintCustomToken(context.Background(), "uid-1", map[string]interface{}{"role": "customer"})
	require.NoError(t, err)
	assert.Equal(t, "custom-token", token)
}
