package identity

import (
	"context"
	"path/filepath"
	"testing"

	"greengallery/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProvider(t *testing.T) *LocalProvider {
	t.Helper()
	return NewLocalProvider(filepath.Join(t.TempDir(), "users.db"))
}

func TestSignUpThenSignIn(t *testing.T) {
	p := newTestProvider(t)
	ctx := context.Background()

	created, err := p.SignUp(ctx, "Someone@Example.com", "hunter22")
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "someone@example.com", created.Email)

	signedIn, err := p.SignIn(ctx, "someone@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, created.ID, signedIn.ID)
}

func TestSignInWrongPassword(t *testing.T) {
	p := newTestProvider(t)
	ctx := context.Background()

	_, err := p.SignUp(ctx, "someone@example.com", "hunter22")
	require.NoError(t, err)

	_, err = p.SignIn(ctx, "someone@example.com", "wrong")
	assert.ErrorIs(t, err, core.ErrInvalidCredentials)
}

func TestSignInUnknownEmail(t *testing.T) {
	p := newTestProvider(t)
	_, err := p.SignIn(context.Background(), "nobody@example.com", "whatever")
	assert.ErrorIs(t, err, core.ErrInvalidCredentials)
}

func TestSignUpDuplicateEmail(t *testing.T) {
	p := newTestProvider(t)
	ctx := context.Background()

	_, err := p.SignUp(ctx, "someone@example.com", "hunter22")
	require.NoError(t, err)

	_, err = p.SignUp(ctx, "someone@example.com", "other")
	assert.ErrorIs(t, err, core.ErrEmailTaken)
}

func TestSignUpRequiresEmailAndPassword(t *testing.T) {
	p := newTestProvider(t)
	ctx := context.Background()

	var verr *core.ValidationError
	_, err := p.SignUp(ctx, "", "pw")
	assert.ErrorAs(t, err, &verr)
	_, err = p.SignUp(ctx, "a@b.c", "")
	assert.ErrorAs(t, err, &verr)
}

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer([]byte("test-secret"))

	token, err := issuer.Issue(Identity{ID: "user-1", Email: "someone@example.com"})
	require.NoError(t, err)

	id, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", id.ID)
	assert.Equal(t, "someone@example.com", id.Email)
}

func TestTokenWrongSecretRejected(t *testing.T) {
	token, err := NewTokenIssuer([]byte("secret-a")).Issue(Identity{ID: "user-1"})
	require.NoError(t, err)

	_, err = NewTokenIssuer([]byte("secret-b")).Parse(token)
	assert.Error(t, err)
}
