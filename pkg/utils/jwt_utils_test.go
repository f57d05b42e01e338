package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	ConfigureJWT("test-secret", time.Hour)

	token, expiresAt, err := GenerateAccessToken(7, "hanako", "Manager")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.StaffID)
	assert.Equal(t, "hanako", claims.Username)
	assert.Equal(t, "Manager", claims.Role)
}

func TestValidateTokenRejectsOtherSecret(t *testing.T) {
	ConfigureJWT("first-secret", time.Hour)
	token, _, err := GenerateAccessToken(1, "taro", "Staff")
	require.NoError(t, err)

	ConfigureJWT("second-secret", time.Hour)
	_, err = ValidateToken(token)

	assert.Error(t, err)
}
