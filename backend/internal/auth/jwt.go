package auth

import (
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const insecureDefaultSecret = "!!REPLACE_THIS_WITH_A_STRONG_SECRET_KEY!!"

var jwtSecret []byte

// Claims defines the structure of the JWT payload
type Claims struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	jwt.RegisteredClaims
}

// Init sets the token signing secret. main calls this once at startup, after
// the environment has been loaded, so a secret supplied via .env is honored.
func Init(secret string) {
	if secret == "" {
		log.Warn("JWT_SECRET not set. Using default insecure secret.")
		secret = insecureDefaultSecret
	}
	jwtSecret = []byte(secret)
}

// signingKey returns the configured secret, falling back to the environment
// if Init was never called.
func signingKey() []byte {
	if len(jwtSecret) == 0 {
		Init(os.Getenv("JWT_SECRET"))
	}
	return jwtSecret
}

// GenerateJWT creates a new JWT for a given user ID and email.
func GenerateJWT(userID uuid.UUID, email string) (string, error) {
	// Token expires in 24 hours
	expirationTime := time.Now().Add(24 * time.Hour)

	claims := &Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "nairaswap",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(signingKey())

	return tokenString, err
}

// ValidateJWT validates a JWT string and returns the claims if valid.
func ValidateJWT(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Ensure the signing method is HMAC
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return signingKey(), nil
	})

	if err != nil {
		return nil, err // Handles expiration, invalid signature, etc.
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}
