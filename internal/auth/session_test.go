package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRoundTrip(t *testing.T) {
	issuer := NewSessionIssuer("test-secret", time.Hour)

	token, err := issuer.Issue(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	id, err := issuer.Resolve(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
}

func TestSessionTamperedTokenRejected(t *testing.T) {
	issuer := NewSessionIssuer("test-secret", time.Hour)

	token, err := issuer.Issue(42)
	require.NoError(t, err)

	// Flip a single byte anywhere in the token; no position may yield a
	// different valid identity.
	for i := 0; i < len(token); i++ {
		tampered := []byte(token)
		tampered[i] ^= 0x01
		id, err := issuer.Resolve(string(tampered))
		if err == nil {
			assert.Equal(t, int64(42), id, "byte %d resolved to a different user", i)
		}
	}
}

func TestSessionWrongSecretRejected(t *testing.T) {
	token, err := NewSessionIssuer("secret-a", time.Hour).Issue(7)
	require.NoError(t, err)

	_, err = NewSessionIssuer("secret-b", time.Hour).Resolve(token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestSessionGarbageRejected(t *testing.T) {
	issuer := NewSessionIssuer("test-secret", time.Hour)
	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		_, err := issuer.Resolve(tok)
		assert.ErrorIs(t, err, ErrInvalidSession, "token %q", tok)
	}
}

func TestSessionExpiredRejected(t *testing.T) {
	issuer := &SessionIssuer{secret: []byte("test-secret"), ttl: -time.Hour}
	token, err := issuer.Issue(42)
	require.NoError(t, err)

	_, err = issuer.Resolve(token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestPasswordHashAndVerify(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)
	require.NotEqual(t, "hunter22", hash)

	ok, err := VerifyPassword("hunter22", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("wrong", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPasswordHashesAreSalted(t *testing.T) {
	h1, err := HashPassword("same-password")
	require.NoError(t, err)
	h2, err := HashPassword("same-password")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}

func TestVerifyMalformedHashIsError(t *testing.T) {
	_, err := VerifyPassword("whatever", "not-a-bcrypt-hash")
	assert.Error(t, err)
}
