package jwtinfra

import (
	"testing"
	"time"

	"github.com/journal-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProvider(t *testing.T, secret string) *Provider {
	t.Helper()
	p, err := NewProvider(&config.Config{JWTSecret: secret, JWTExpiryDays: 30})
	require.NoError(t, err)
	return p
}

func TestNewProvider_MissingSecret(t *testing.T) {
	_, err := NewProvider(&config.Config{JWTExpiryDays: 30})
	require.Error(t, err)
}

func TestSignVerify_RoundTrip(t *testing.T) {
	p := newTestProvider(t, "test-secret")

	tok, err := p.Sign("507f1f77bcf86cd799439011")
	require.NoError(t, err)

	claims, err := p.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "507f1f77bcf86cd799439011", claims.UserID)
	assert.WithinDuration(t, time.Now().Add(30*24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestVerify_WrongSecret(t *testing.T) {
	p1 := newTestProvider(t, "secret-one")
	p2 := newTestProvider(t, "secret-two")

	tok, err := p1.Sign("507f1f77bcf86cd799439011")
	require.NoError(t, err)

	_, err = p2.Verify(tok)
	assert.Error(t, err)
}

func TestVerify_Expired(t *testing.T) {
	p, err := NewProvider(&config.Config{JWTSecret: "s", JWTExpiryDays: -1})
	require.NoError(t, err)

	tok, err := p.Sign("507f1f77bcf86cd799439011")
	require.NoError(t, err)

	_, err = p.Verify(tok)
	assert.Error(t, err)
}

func TestVerify_Garbage(t *testing.T) {
	p := newTestProvider(t, "s")
	_, err := p.Verify("not.a.token")
	assert.Error(t, err)
}
