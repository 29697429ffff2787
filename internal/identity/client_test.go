package identity_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobfolio/profile-intake/internal/identity"
)

const testTimeout = 2 * time.Second

func TestLookupResolvesUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/user", r.URL.Path)
		assert.Equal(t, "Bearer token-abc", r.Header.Get("Authorization"))
		assert.Equal(t, "service-key", r.Header.Get("apikey"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"user-1","email":"mod@example.com"}`))
	}))
	defer srv.Close()

	client := identity.New(srv.URL, "service-key", testTimeout)
	user, err := client.Lookup(context.Background(), "token-abc")

	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
	assert.Equal(t, "mod@example.com", user.Email)
}

func TestLookupRejectsNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := identity.New(srv.URL, "service-key", testTimeout)
	_, err := client.Lookup(context.Background(), "expired-token")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestLookupRejectsEmptyUserID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"email":"mod@example.com"}`))
	}))
	defer srv.Close()

	client := identity.New(srv.URL, "service-key", testTimeout)
	_, err := client.Lookup(context.Background(), "token-abc")

	require.Error(t, err)
}
