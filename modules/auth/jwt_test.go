package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() JWTConfig {
	return JWTConfig{
		SecretKey:           "test-secret-key",
		AccessTokenDuration: 15 * time.Minute,
	}
}

func signClaims(t *testing.T, secret string, claims jwt.Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestJWTManager_GenerateAndValidateAccessToken(t *testing.T) {
	manager := NewJWTManager(testConfig())

	token, err := manager.GenerateAccessToken("user-123", "test@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, ClaimUserID("user-123"), claims.UserID)
	assert.Equal(t, "test@example.com", claims.Email)
	assert.Equal(t, "access", claims.TokenType)
}

func TestJWTManager_AcceptsExternallyIssuedToken(t *testing.T) {
	manager := NewJWTManager(testConfig())

	// user service tokens carry only user_id and exp
	token := signClaims(t, "test-secret-key", jwt.MapClaims{
		"user_id": "42",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	claims, err := manager.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, ClaimUserID("42"), claims.UserID)
}

func TestJWTManager_NumericUserIDClaim(t *testing.T) {
	manager := NewJWTManager(testConfig())

	tests := []struct {
		name   string
		userID any
		want   ClaimUserID
	}{
		{"small number", 42, "42"},
		{"large number", int64(12345678901234567), "12345678901234567"},
		{"string", "42", "42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := signClaims(t, "test-secret-key", jwt.MapClaims{
				"user_id": tt.userID,
				"exp":     time.Now().Add(time.Hour).Unix(),
			})

			claims, err := manager.ValidateAccessToken(token)
			require.NoError(t, err)
			assert.Equal(t, tt.want, claims.UserID)
		})
	}

	t.Run("non-scalar user id", func(t *testing.T) {
		token := signClaims(t, "test-secret-key", jwt.MapClaims{"user_id": map[string]any{"id": 1}})
		_, err := manager.ValidateAccessToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("null user id", func(t *testing.T) {
		token := signClaims(t, "test-secret-key", jwt.MapClaims{"user_id": nil})
		_, err := manager.ValidateAccessToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestJWTManager_RejectsInvalidTokens(t *testing.T) {
	manager := NewJWTManager(testConfig())

	tests := []struct {
		name  string
		token string
		want  error
	}{
		{
			name:  "empty token",
			token: "",
			want:  ErrInvalidToken,
		},
		{
			name:  "random string",
			token: "not.a.valid.token",
			want:  ErrInvalidToken,
		},
		{
			name:  "malformed jwt",
			token: "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.invalid",
			want:  ErrInvalidToken,
		},
		{
			name:  "wrong secret",
			token: signClaims(t, "another-secret", jwt.MapClaims{"user_id": "u1"}),
			want:  ErrInvalidToken,
		},
		{
			name:  "missing user_id",
			token: signClaims(t, "test-secret-key", jwt.MapClaims{"email": "x@example.com"}),
			want:  ErrInvalidToken,
		},
		{
			name:  "refresh token",
			token: signClaims(t, "test-secret-key", jwt.MapClaims{"user_id": "u1", "token_type": "refresh"}),
			want:  ErrInvalidToken,
		},
		{
			name: "expired",
			token: signClaims(t, "test-secret-key", jwt.MapClaims{
				"user_id": "u1",
				"exp":     time.Now().Add(-time.Minute).Unix(),
			}),
			want: ErrExpiredToken,
		},
		{
			name:  "unsigned",
			token: unsignedToken(t),
			want:  ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := manager.ValidateAccessToken(tt.token)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestJWTManager_IssuerEnforcedWhenConfigured(t *testing.T) {
	cfg := testConfig()
	cfg.Issuer = "user-service"
	manager := NewJWTManager(cfg)

	good := signClaims(t, cfg.SecretKey, jwt.MapClaims{"user_id": "u1", "iss": "user-service"})
	bad := signClaims(t, cfg.SecretKey, jwt.MapClaims{"user_id": "u1", "iss": "someone-else"})

	_, err := manager.ValidateAccessToken(good)
	assert.NoError(t, err)

	_, err = manager.ValidateAccessToken(bad)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTManager_ExpiredToken(t *testing.T) {
	cfg := testConfig()
	cfg.AccessTokenDuration = time.Millisecond
	manager := NewJWTManager(cfg)

	token, err := manager.GenerateAccessToken("user-123", "test@example.com")
	require.NoError(t, err)

	time.Sleep(1100 * time.Millisecond)

	_, err = manager.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func unsignedToken(t *testing.T) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"user_id": "u1"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	return token
}
