package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTMaker_GenerateAndParseToken(t *testing.T) {
	maker := NewJWTMaker("test_secret_key_1234567890", 15*time.Minute)

	tests := []struct {
		name      string
		accountID string
		email     string
		role      string
	}{
		{name: "admin", accountID: "admin", email: "admin@vtv.com", role: "ADMIN"},
		{name: "client", accountID: "8c5b1d7e", email: "client@vtv.com", role: "CLIENT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := maker.GenerateToken(tt.accountID, tt.email, tt.role)
			require.NoError(t, err)
			require.NotEmpty(t, token)

			claims, err := maker.ParseToken(token)
			require.NoError(t, err)
			assert.Equal(t, tt.accountID, claims.AccountID)
			assert.Equal(t, tt.email, claims.Email)
			assert.Equal(t, tt.role, claims.Role)
			assert.Equal(t, tt.accountID, claims.Subject)
			assert.WithinDuration(t, time.Now().Add(15*time.Minute), claims.ExpiresAt.Time, time.Second)
		})
	}
}

func TestJWTMaker_ParseToken_InvalidTokens(t *testing.T) {
	secret := "test_secret_key_1234567890"
	maker := NewJWTMaker(secret, 15*time.Minute)

	valid, err := maker.GenerateToken("id", "client@vtv.com", "CLIENT")
	require.NoError(t, err)

	expired, err := NewJWTMaker(secret, -time.Hour).GenerateToken("id", "client@vtv.com", "CLIENT")
	require.NoError(t, err)

	wrongSecret, err := NewJWTMaker("other_secret", time.Hour).GenerateToken("id", "client@vtv.com", "CLIENT")
	require.NoError(t, err)

	noAccount, err := maker.GenerateToken("", "client@vtv.com", "CLIENT")
	require.NoError(t, err)

	noneAlg, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{AccountID: "id"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "malformed", token: "invalid.token.here"},
		{name: "expired", token: expired},
		{name: "wrong secret", token: wrongSecret},
		{name: "tampered", token: valid + "tampered"},
		{name: "missing account id", token: noAccount},
		{name: "none algorithm", token: noneAlg},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := maker.ParseToken(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
			assert.Nil(t, claims)
		})
	}
}
