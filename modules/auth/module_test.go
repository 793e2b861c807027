package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startedModule(t *testing.T) *AuthModule {
	t.Helper()
	m := NewModule(testConfig())
	require.NoError(t, m.Start(context.Background()))
	return m
}

func TestAuthModule_StartRequiresSecret(t *testing.T) {
	m := NewModule(JWTConfig{})
	assert.Error(t, m.Start(context.Background()))
	assert.False(t, m.Health(context.Background()).Healthy)
}

func TestAuthModule_HandleValidateToken(t *testing.T) {
	m := startedModule(t)
	manager := NewJWTManager(testConfig())

	valid, err := manager.GenerateAccessToken("user-1", "one@example.com")
	require.NoError(t, err)

	expired := signClaims(t, testConfig().SecretKey, jwt.MapClaims{
		"user_id": "user-1",
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})
	numeric := signClaims(t, testConfig().SecretKey, jwt.MapClaims{
		"user_id": 42,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	tests := []struct {
		name      string
		token     string
		wantValid bool
		wantUser  string
		wantError string
	}{
		{"valid token", valid, true, "user-1", ""},
		{"padded token", "  " + valid + " ", true, "user-1", ""},
		{"numeric user id", numeric, true, "42", ""},
		{"expired token", expired, false, "", "token expired"},
		{"garbage", "abc", false, "", "invalid token"},
		{"empty", "", false, "", "invalid token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := m.handleValidateToken(context.Background(), ValidateTokenRequest{Token: tt.token}, nil)
			require.NoError(t, err)

			assert.Equal(t, tt.wantValid, resp.Valid)
			assert.Equal(t, tt.wantUser, resp.UserID)
			assert.Equal(t, tt.wantError, resp.Error)
		})
	}
}

func TestAuthModule_HandleValidateTokenBeforeStart(t *testing.T) {
	m := NewModule(testConfig())

	resp, err := m.handleValidateToken(context.Background(), ValidateTokenRequest{Token: "anything"}, nil)
	require.NoError(t, err)
	assert.False(t, resp.Valid)
}
