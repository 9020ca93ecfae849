package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"vesseltrack/internal/model"
)

func testUser() *model.User {
	return &model.User{
		ID:       42,
		Username: "alice",
		Email:    "a@x.com",
		Role:     model.RoleOperator,
	}
}

func TestGenerateTokenPair_AccessClaimsSnapshot(t *testing.T) {
	svc := NewJWTService("test-secret", 15*time.Minute, 7*24*time.Hour)
	user := testUser()

	pair, err := svc.GenerateTokenPair(user)
	assert.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	claims, err := svc.ValidateAccessToken(pair.AccessToken)
	assert.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "operator", claims.Role)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)

	id, ok := claims.UserID()
	assert.True(t, ok)
	assert.Equal(t, uint(42), id)

	// The claims are a snapshot: changing the user afterwards does not
	// change what an already-issued token decodes to.
	user.Role = model.RoleAdmin
	claims, err = svc.ValidateAccessToken(pair.AccessToken)
	assert.NoError(t, err)
	assert.Equal(t, "operator", claims.Role)
}

func TestGenerateRefreshToken_NoCustomClaims(t *testing.T) {
	svc := NewJWTService("test-secret", 15*time.Minute, 7*24*time.Hour)

	refresh, err := svc.GenerateRefreshToken(42)
	assert.NoError(t, err)

	claims, err := svc.ValidateRefreshToken(refresh)
	assert.NoError(t, err)
	assert.Equal(t, TokenTypeRefresh, claims.TokenType)
	assert.Empty(t, claims.Username)
	assert.Empty(t, claims.Role)
	assert.NotEmpty(t, claims.ID) // jti

	id, ok := claims.UserID()
	assert.True(t, ok)
	assert.Equal(t, uint(42), id)
}

func TestValidate_RejectsWrongTokenType(t *testing.T) {
	svc := NewJWTService("test-secret", 15*time.Minute, 7*24*time.Hour)
	user := testUser()

	pair, err := svc.GenerateTokenPair(user)
	assert.NoError(t, err)

	// Access token where a refresh token is required, and vice versa.
	_, err = svc.ValidateRefreshToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.ValidateAccessToken(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidate_RejectsExpiredToken(t *testing.T) {
	svc := NewJWTService("test-secret", -time.Minute, -time.Minute)

	access, err := svc.GenerateAccessToken(testUser())
	assert.NoError(t, err)

	_, err = svc.ValidateAccessToken(access)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestValidate_RejectsWrongSecret(t *testing.T) {
	issuer := NewJWTService("secret-a", 15*time.Minute, time.Hour)
	verifier := NewJWTService("secret-b", 15*time.Minute, time.Hour)

	access, err := issuer.GenerateAccessToken(testUser())
	assert.NoError(t, err)

	_, err = verifier.ValidateAccessToken(access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidate_RejectsGarbage(t *testing.T) {
	svc := NewJWTService("test-secret", 15*time.Minute, time.Hour)

	_, err := svc.ValidateAccessToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.ValidateAccessToken("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
