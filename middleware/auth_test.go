package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"greengallery/identity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func identityEcho(t *testing.T, captured *identity.Identity, found *bool) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := IdentityFrom(r.Context())
		*captured = id
		*found = ok
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthJWTRejectsMissingHeader(t *testing.T) {
	tokens := identity.NewTokenIssuer([]byte("secret"))
	var id identity.Identity
	var ok bool
	h := AuthJWT(tokens)(identityEcho(t, &id, &ok))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, ok)
}

func TestAuthJWTRejectsBadToken(t *testing.T) {
	tokens := identity.NewTokenIssuer([]byte("secret"))
	var id identity.Identity
	var ok bool
	h := AuthJWT(tokens)(identityEcho(t, &id, &ok))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthJWTAttachesIdentity(t *testing.T) {
	tokens := identity.NewTokenIssuer([]byte("secret"))
	token, err := tokens.Issue(identity.Identity{ID: "user-1", Email: "someone@example.com"})
	require.NoError(t, err)

	var id identity.Identity
	var ok bool
	h := AuthJWT(tokens)(identityEcho(t, &id, &ok))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, ok)
	assert.Equal(t, "user-1", id.ID)
}

func TestOptionalAuthPassesGuestThrough(t *testing.T) {
	tokens := identity.NewTokenIssuer([]byte("secret"))
	var id identity.Identity
	var ok bool
	h := OptionalAuth(tokens)(identityEcho(t, &id, &ok))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, ok)
	assert.Empty(t, id.ID)
}

func TestOptionalAuthAttachesValidIdentity(t *testing.T) {
	tokens := identity.NewTokenIssuer([]byte("secret"))
	token, err := tokens.Issue(identity.Identity{ID: "user-1"})
	require.NoError(t, err)

	var id identity.Identity
	var ok bool
	h := OptionalAuth(tokens)(identityEcho(t, &id, &ok))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	require.True(t, ok)
	assert.Equal(t, "user-1", id.ID)
}
