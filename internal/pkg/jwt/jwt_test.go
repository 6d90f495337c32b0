package jwt

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/timesheet-payroll-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccessToken(t *testing.T) {
	svc := NewJWTService("test-secret", "1h")

	token, expiresAt, err := svc.GenerateAccessToken("u-1", "ops", user.RolePayroll)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.InDelta(t, time.Now().Add(time.Hour).Unix(), expiresAt, 5)

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)
	role, ok := decoded.Get("role")
	require.True(t, ok)
	assert.Equal(t, "payroll", role)
	tokenType, _ := decoded.Get("type")
	assert.Equal(t, "access", tokenType)
	subject, _ := decoded.Get("user_id")
	assert.Equal(t, "u-1", subject)
}

func TestGenerateAccessToken_BadExpiration(t *testing.T) {
	svc := NewJWTService("test-secret", "forever")
	_, _, err := svc.GenerateAccessToken("u-1", "ops", user.RoleAdmin)
	assert.Error(t, err)
}

func TestRevokeToken(t *testing.T) {
	svc := NewJWTService("test-secret", "1h").(*JWTService)
	now := time.Unix(1_700_000_000, 0)
	svc.now = func() time.Time { return now }

	svc.RevokeToken("old", now.Add(-time.Minute).Unix())
	svc.RevokeToken("live", now.Add(time.Hour).Unix())
	assert.True(t, svc.IsTokenRevoked("live"))
	assert.False(t, svc.IsTokenRevoked("other"))

	svc.RevokeToken("another", now.Add(time.Hour).Unix())
	assert.False(t, svc.IsTokenRevoked("old"), "expired entries are pruned")
	assert.True(t, svc.IsTokenRevoked("live"))
}
