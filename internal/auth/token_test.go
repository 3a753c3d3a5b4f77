package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_IssueParse(t *testing.T) {
	m := NewTokenManager("secret")

	token, err := m.Issue("user-1", "sess-1", time.Now().Add(time.Hour))
	require.NoError(t, err)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID())
	assert.Equal(t, "sess-1", claims.SessionID)
}

func TestTokenManager_RejectsWrongSecretAndExpired(t *testing.T) {
	m := NewTokenManager("secret")

	token, err := m.Issue("user-1", "sess-1", time.Now().Add(time.Hour))
	require.NoError(t, err)

	_, err = NewTokenManager("other").Parse(token)
	assert.Error(t, err)

	expired, err := m.Issue("user-1", "sess-1", time.Now().Add(-time.Minute))
	require.NoError(t, err)
	_, err = m.Parse(expired)
	assert.Error(t, err)

	_, err = m.Parse("not-a-token")
	assert.Error(t, err)
}

func TestPassword(t *testing.T) {
	assert.ErrorIs(t, ValidatePassword("12345"), ErrWeakPassword)
	assert.NoError(t, ValidatePassword("123456"))

	hash, err := HashPassword("secret123")
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("secret123", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
	assert.False(t, CheckPasswordHash("secret123", ""))
}

func TestOpaqueToken(t *testing.T) {
	a, err := NewOpaqueToken()
	require.NoError(t, err)
	b, err := NewOpaqueToken()
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.Len(t, HashToken(a), 64)
	assert.Equal(t, HashToken(a), HashToken(a))
}
