package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/quiz-channels-api/internal/config"
	"github.com/yourusername/quiz-channels-api/internal/domain/entity"
)

func newTestJWTService(t *testing.T) *JWTService {
	t.Helper()
	svc, err := NewJWTService(config.JWTConfig{Secret: "test-secret", ExpirationHrs: 1, Issuer: "quiz-test"})
	require.NoError(t, err)
	return svc
}

func TestNewJWTService_RequiresSecret(t *testing.T) {
	_, err := NewJWTService(config.JWTConfig{})
	assert.Error(t, err)
}

func TestGenerateAndParseToken(t *testing.T) {
	// Arrange
	svc := newTestJWTService(t)
	admin := &entity.User{ID: 7, Username: "admin", IsAdmin: true}

	// Act
	token, expiresAt, err := svc.GenerateToken(admin)
	require.NoError(t, err)
	claims, err := svc.ParseToken(token)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, "7", claims.Subject)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)
}

func TestGenerateToken_RejectsNonAdmin(t *testing.T) {
	svc := newTestJWTService(t)

	_, _, err := svc.GenerateToken(&entity.User{ID: 1, Username: "alice"})

	assert.ErrorIs(t, err, ErrNotAdmin)
}

func TestParseToken_Expired(t *testing.T) {
	// Arrange
	svc := newTestJWTService(t)
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, _, err := svc.GenerateToken(&entity.User{ID: 1, Username: "admin", IsAdmin: true})
	require.NoError(t, err)

	// Act
	_, err = svc.ParseToken(token)

	// Assert
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestParseToken_WrongSecretOrIssuer(t *testing.T) {
	svc := newTestJWTService(t)
	admin := &entity.User{ID: 1, Username: "admin", IsAdmin: true}

	other, err := NewJWTService(config.JWTConfig{Secret: "other-secret", Issuer: "quiz-test"})
	require.NoError(t, err)
	foreign, _, err := other.GenerateToken(admin)
	require.NoError(t, err)
	_, err = svc.ParseToken(foreign)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	otherIssuer, err := NewJWTService(config.JWTConfig{Secret: "test-secret", Issuer: "someone-else"})
	require.NoError(t, err)
	foreign, _, err = otherIssuer.GenerateToken(admin)
	require.NoError(t, err)
	_, err = svc.ParseToken(foreign)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParseToken_Malformed(t *testing.T) {
	svc := newTestJWTService(t)

	_, err := svc.ParseToken("not-a-token")

	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestParseToken_RequiresAdminClaim(t *testing.T) {
	// Arrange
	svc := newTestJWTService(t)
	claims := &AdminClaims{
		UserID:   3,
		Username: "alice",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "quiz-test",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	// Act
	_, err = svc.ParseToken(token)

	// Assert
	assert.ErrorIs(t, err, ErrNotAdmin)
}
