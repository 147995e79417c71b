package auth

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestInitSecretWinsOverEnvironment(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-from-env")
	Init("secret-from-config")
	t.Cleanup(func() { jwtSecret = nil })

	token, err := GenerateJWT(uuid.New(), "carol@example.com")
	require.NoError(t, err)

	// The configured secret must be the one that signed it.
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(*jwt.Token) (interface{}, error) {
		return []byte("secret-from-config"), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	// Neither the env value nor the insecure fallback may validate it.
	_, err = jwt.ParseWithClaims(token, &Claims{}, func(*jwt.Token) (interface{}, error) {
		return []byte("secret-from-env"), nil
	})
	require.Error(t, err)

	_, err = jwt.ParseWithClaims(token, &Claims{}, func(*jwt.Token) (interface{}, error) {
		return []byte(insecureDefaultSecret), nil
	})
	require.Error(t, err)
}

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret-password")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret-password", hash)

	require.True(t, CheckPasswordHash("s3cret-password", hash))
	require.False(t, CheckPasswordHash("wrong-password", hash))
}

func TestJWTRoundTrip(t *testing.T) {
	userID := uuid.New()

	token, err := GenerateJWT(userID, "alice@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateJWT(token)
	require.NoError(t, err)
	require.Equal(t, userID, claims.UserID)
	require.Equal(t, "alice@example.com", claims.Email)
	require.Equal(t, "nairaswap", claims.Issuer)
}

func TestValidateJWTRejectsTampered(t *testing.T) {
	token, err := GenerateJWT(uuid.New(), "bob@example.com")
	require.NoError(t, err)

	// Flip the last character of the signature
	tampered := token[:len(token)-1]
	if token[len(token)-1] == 'a' {
		tampered += "b"
	} else {
		tampered += "a"
	}

	_, err = ValidateJWT(tampered)
	require.Error(t, err)
}

func TestValidateJWTRejectsGarbage(t *testing.T) {
	_, err := ValidateJWT("not.a.token")
	require.Error(t, err)
}
