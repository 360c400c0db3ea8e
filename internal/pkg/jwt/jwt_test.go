package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAndParse(t *testing.T) {
	m := New("test-secret", time.Hour)

	token, err := m.Sign("user-1", "traveller@example.com", "customer")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "traveller@example.com", claims.Email)
	assert.Equal(t, "customer", claims.Role)
}

func TestParseWrongSecret(t *testing.T) {
	token, err := New("secret-a", time.Hour).Sign("u", "e", "admin")
	require.NoError(t, err)

	_, err = New("secret-b", time.Hour).Parse(token)
	assert.Error(t, err)
}

func TestParseExpired(t *testing.T) {
	m := New("test-secret", -time.Minute)
	token, err := m.Sign("u", "e", "customer")
	require.NoError(t, err)

	_, err = m.Parse(token)
	assert.Error(t, err)
}

func TestParseGarbage(t *testing.T) {
	_, err := New("test-secret", time.Hour).Parse("not.a.token")
	assert.Error(t, err)
}

func TestNewDefaults(t *testing.T) {
	m := New("", 0)
	require.NotNil(t, m)
	assert.Equal(t, DefaultTTL, m.ttl)

	token, err := m.Sign("u", "e", "customer")
	require.NoError(t, err)
	_, err = m.Parse(token)
	assert.NoError(t, err)
}
