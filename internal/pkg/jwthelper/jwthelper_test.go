package jwthelper

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderspot/connecthost-api/internal/domain"
)

var testKey = []byte("test-signing-key")

func TestGenerateAndParseToken(t *testing.T) {
	hostID := uint(3)
	user := domain.User{ID: 12, Role: domain.RoleHost, HostID: &hostID}

	token, err := GenerateToken(testKey, user, "curl/8", time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(testKey, token)
	require.NoError(t, err)
	assert.Equal(t, uint(12), claims.UserID)
	assert.Equal(t, domain.RoleHost, claims.Role)
	require.NotNil(t, claims.HostID)
	assert.Equal(t, hostID, *claims.HostID)
	assert.Equal(t, "12", claims.Subject)
}

func TestParseToken_Rejects(t *testing.T) {
	user := domain.User{ID: 1, Role: domain.RoleClient}

	expired, err := GenerateToken(testKey, user, "", -time.Minute)
	require.NoError(t, err)

	otherKey, err := GenerateToken([]byte("other"), user, "", time.Hour)
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: 1}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	for name, token := range map[string]string{
		"expired":   expired,
		"wrong key": otherKey,
		"alg none":  none,
		"garbage":   "not.a.token",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ParseToken(testKey, token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
