package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTMaker_GenerateAndParseToken_ValidCases(t *testing.T) {
	tokenTTL := 15 * time.Minute
	maker := NewJWTMaker("test_secret_key_1234567890", tokenTTL)

	tests := []struct {
		name    string
		userUID string
		email   string
	}{
		{name: "gym owner", userUID: "0b9c6f2e-1d0a-4c47-9f51-0f6f4fbd1a01", email: "owner@gym.com"},
		{name: "member", userUID: "8a1f2c33-5e7d-4d1b-9a3c-2b1e0c9d8f77", email: "jane@x.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, issued, err := maker.GenerateToken(tt.userUID, tt.email)
			require.NoError(t, err)
			assert.NotEmpty(t, token)
			assert.NotEmpty(t, issued.ID)

			claims, err := maker.ParseToken(token)
			require.NoError(t, err)

			assert.Equal(t, tt.userUID, claims.UserUID)
			assert.Equal(t, tt.email, claims.Email)
			assert.Equal(t, issued.ID, claims.ID)
			assert.WithinDuration(t, time.Now(), claims.IssuedAt.Time, time.Second)
			assert.WithinDuration(t, time.Now().Add(tokenTTL), claims.ExpiresAt.Time, time.Second)
		})
	}
}

func TestJWTMaker_ParseToken_InvalidTokens(t *testing.T) {
	secretKey := "test_secret_key_1234567890"
	maker := NewJWTMaker(secretKey, 15*time.Minute)

	validToken, _, err := maker.GenerateToken("uid", "user@gym.com")
	require.NoError(t, err)

	expired, _, err := NewJWTMaker(secretKey, -time.Hour).GenerateToken("uid", "user@gym.com")
	require.NoError(t, err)

	wrongSecret, _, err := NewJWTMaker("wrong_secret_key", 15*time.Minute).GenerateToken("uid", "user@gym.com")
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty token", token: ""},
		{name: "malformed token", token: "invalid.token.here"},
		{name: "expired token", token: expired},
		{name: "wrong secret key", token: wrongSecret},
		{name: "tampered token", token: validToken + "tampered"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := maker.ParseToken(tt.token)
			assert.Error(t, err)
			assert.Nil(t, claims)
		})
	}
}

func TestCustomClaims_TTL(t *testing.T) {
	maker := NewJWTMaker("secret", time.Hour)
	fixed := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	maker.now = func() time.Time { return fixed }

	_, claims, err := maker.GenerateToken("uid", "a@b.c")
	require.NoError(t, err)

	assert.Equal(t, 30*time.Minute, claims.TTL(fixed.Add(30*time.Minute)))
	assert.Equal(t, time.Duration(0), claims.TTL(fixed.Add(2*time.Hour)))
}
