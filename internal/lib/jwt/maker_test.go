package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaker_GenerateAndParseToken_ValidCases(t *testing.T) {
	secretKey := "test_secret_key_1234567890"
	maker := NewMaker(secretKey)

	tests := []struct {
		name    string
		userUID string
	}{
		{
			name:    "plain uuid",
			userUID: "8b2f2a1e-8a74-4a5e-9c1d-2f62b1d6a111",
		},
		{
			name:    "another uuid",
			userUID: "0e6f3c44-1111-4222-8333-944445555666",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := maker.GenerateToken(tt.userUID)
			require.NoError(t, err)
			assert.NotEmpty(t, token)

			claims, err := maker.ParseToken(token)
			require.NoError(t, err)

			assert.Equal(t, tt.userUID, claims.UserUID)
			assert.WithinDuration(t, time.Now(), claims.IssuedAt.Time, time.Second)
			// У токена нет срока действия: возрастом сессии управляет cookie.
			assert.Nil(t, claims.ExpiresAt)
		})
	}
}

func TestMaker_ParseToken_InvalidTokens(t *testing.T) {
	secretKey := "test_secret_key_1234567890"
	maker := NewMaker(secretKey)

	validToken, err := maker.GenerateToken("8b2f2a1e-8a74-4a5e-9c1d-2f62b1d6a111")
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{
			name:  "empty token",
			token: "",
		},
		{
			name:  "malformed token",
			token: "invalid.token.here",
		},
		{
			name:  "wrong secret key",
			token: createTokenWithWrongSecret(t),
		},
		{
			name:  "tampered token",
			token: validToken + "tampered",
		},
		{
			name:  "token without user uid",
			token: createTokenWithoutUserUID(t, secretKey),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := maker.ParseToken(tt.token)
			assert.Error(t, err)
			assert.Nil(t, claims)
		})
	}
}

func TestMaker_DifferentSecretKeys(t *testing.T) {
	maker1 := NewMaker("first_secret_key")
	maker2 := NewMaker("different_secret_key")

	token, err := maker1.GenerateToken("8b2f2a1e-8a74-4a5e-9c1d-2f62b1d6a111")
	require.NoError(t, err)

	claims, err := maker2.ParseToken(token)
	assert.Error(t, err)
	assert.Nil(t, claims)

	claims, err = maker1.ParseToken(token)
	assert.NoError(t, err)
	assert.NotNil(t, claims)
}

func createTokenWithWrongSecret(t *testing.T) string {
	wrongMaker := NewMaker("wrong_secret_key")
	token, err := wrongMaker.GenerateToken("8b2f2a1e-8a74-4a5e-9c1d-2f62b1d6a111")
	require.NoError(t, err)
	return token
}

func createTokenWithoutUserUID(t *testing.T, secretKey string) string {
	maker := NewMaker(secretKey)
	token, err := maker.GenerateToken("")
	require.NoError(t, err)
	return token
}
