package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/city-tourism-backend/internal/config"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()

	m, err := NewManager(&config.JWTConfig{
		Secret:     "test-secret",
		AccessTTL:  30 * time.Minute,
		RefreshTTL: 7 * 24 * time.Hour,
	})
	require.NoError(t, err)
	return m
}

func TestNewManager_RequiresSecret(t *testing.T) {
	_, err := NewManager(&config.JWTConfig{})
	assert.Error(t, err)
}

func TestManager_AccessTokenRoundTrip(t *testing.T) {
	m := newTestManager(t)

	signed, err := m.GenerateAccessToken(42, "maria", []string{"ADMIN", "USER"})
	require.NoError(t, err)

	claims, err := m.ValidateToken(signed)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "maria", claims.Username)
	assert.Equal(t, []string{"ADMIN", "USER"}, claims.Roles)
}

func TestManager_RejectsForeignSignature(t *testing.T) {
	m := newTestManager(t)

	other, err := NewManager(&config.JWTConfig{
		Secret:     "another-secret",
		AccessTTL:  30 * time.Minute,
		RefreshTTL: time.Hour,
	})
	require.NoError(t, err)

	signed, err := other.GenerateAccessToken(1, "x", nil)
	require.NoError(t, err)

	_, err = m.ValidateToken(signed)
	assert.Error(t, err)
}

func TestManager_RejectsExpiredToken(t *testing.T) {
	m, err := NewManager(&config.JWTConfig{
		Secret:     "test-secret",
		AccessTTL:  -time.Minute,
		RefreshTTL: time.Hour,
	})
	require.NoError(t, err)

	signed, err := m.GenerateAccessToken(1, "x", nil)
	require.NoError(t, err)

	_, err = m.ValidateToken(signed)
	assert.Error(t, err)
}

func TestManager_RejectsGarbage(t *testing.T) {
	m := newTestManager(t)

	_, err := m.ValidateToken("not-a-token")
	assert.Error(t, err)
}
