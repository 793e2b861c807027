package auth

import (
	"bytes"
	"encoding/json"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken is returned when the token is invalid.
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredToken is returned when the token has expired.
	ErrExpiredToken = errors.New("token has expired")
)

const accessTokenType = "access"

// JWTConfig holds JWT configuration.
type JWTConfig struct {
	SecretKey string
	// Issuer is enforced on validation only when non-empty.
	Issuer string
	// AccessTokenDuration is used when issuing tokens.
	AccessTokenDuration time.Duration
}

// ClaimUserID is the user_id claim. The user service issues it as a JSON
// string or number; both decode to the same string form.
type ClaimUserID string

// UnmarshalJSON accepts a string, a number or null.
func (id *ClaimUserID) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return err
	}

	switch raw := v.(type) {
	case nil:
		*id = ""
	case string:
		*id = ClaimUserID(raw)
	case json.Number:
		*id = ClaimUserID(raw.String())
	default:
		return ErrInvalidToken
	}
	return nil
}

// JWTClaims represents the claims carried by bearer tokens.
// TokenType is optional; when present it must be "access".
type JWTClaims struct {
	UserID    ClaimUserID `json:"user_id"`
	Email     string      `json:"email,omitempty"`
	TokenType string      `json:"token_type,omitempty"`
	jwt.RegisteredClaims
}

// JWTManager handles JWT token operations.
type JWTManager struct {
	config JWTConfig
	parser *jwt.Parser
}

// NewJWTManager creates a new JWTManager with the given configuration.
func NewJWTManager(config JWTConfig) *JWTManager {
	opts := []jwt.ParserOption{jwt.WithIssuedAt()}
	if config.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(config.Issuer))
	}
	if config.AccessTokenDuration <= 0 {
		config.AccessTokenDuration = 15 * time.Minute
	}
	return &JWTManager{
		config: config,
		parser: jwt.NewParser(opts...),
	}
}

// GenerateAccessToken issues an access token for userID. Credentials are
// normally minted by the user service; this is used by tooling and tests.
func (m *JWTManager) GenerateAccessToken(userID, email string) (string, error) {
	now := time.Now()
	claims := JWTClaims{
		UserID:    ClaimUserID(userID),
		Email:     email,
		TokenType: accessTokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.config.Issuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.config.AccessTokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.config.SecretKey))
}

// ValidateToken validates the token and returns the claims if valid.
func (m *JWTManager) ValidateToken(tokenString string) (*JWTClaims, error) {
	token, err := m.parser.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(m.config.SecretKey), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// ValidateAccessToken validates a token presented on a protected route.
// The token must identify a user and must not be of another type.
func (m *JWTManager) ValidateAccessToken(tokenString string) (*JWTClaims, error) {
	claims, err := m.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	if claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != "" && claims.TokenType != accessTokenType {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
