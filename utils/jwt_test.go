package utils

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateJWT(12, "host@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, uint(12), claims.UserID)
	assert.Equal(t, "host@example.com", claims.Email)
}

func TestValidateJWT_WrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "first-secret")
	token, err := GenerateJWT(12, "host@example.com")
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "other-secret")
	_, err = ValidateJWT(token)
	assert.Error(t, err)
}

func TestValidateJWT_RejectsUnexpectedSigningMethod(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	// Same secret, different algorithm: must not validate.
	claims := JWTClaims{UserID: 12, Email: "host@example.com"}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = ValidateJWT(token)
	assert.Error(t, err)
}

func TestGenerateJWT_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := GenerateJWT(12, "host@example.com")
	assert.Error(t, err)
}

func TestGenerateQueryCacheKey_Stable(t *testing.T) {
	a := GenerateQueryCacheKey("listings:search", map[string]string{"category": "beach", "minPrice": "50"})
	b := GenerateQueryCacheKey("listings:search", map[string]string{"minPrice": "50", "category": "beach"})
	assert.Equal(t, a, b)

	c := GenerateQueryCacheKey("listings:search", map[string]string{"category": "cabin", "minPrice": "50"})
	assert.NotEqual(t, a, c)
}
