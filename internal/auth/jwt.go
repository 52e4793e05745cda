package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for every verification failure. Callers
// must not be able to tell a bad signature from an expired token.
var ErrInvalidToken = errors.New("invalid token")

// Claims carried by every issued token. The subject holds the numeric
// user id as a string.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

var (
	jwtSecret []byte
	tokenTTL  = time.Hour
)

// Init configures the signing secret and token lifetime. Must be called
// before issuing or verifying tokens.
func Init(secret string, ttl time.Duration) error {
	if secret == "" {
		return fmt.Errorf("jwt secret is empty")
	}
	if ttl <= 0 {
		return fmt.Errorf("token ttl must be positive")
	}
	jwtSecret = []byte(secret)
	tokenTTL = ttl
	return nil
}

// TokenTTL reports the configured token lifetime.
func TokenTTL() time.Duration {
	return tokenTTL
}

func GenerateToken(userID uint, username string) (string, error) {
	now := time.Now()
	claims := Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

// ParseUserID verifies the token and returns its subject as the numeric
// user id. Any failure surfaces as ErrInvalidToken.
func ParseUserID(tokenString string) (uint, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return jwtSecret, nil
	})

	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)

	if !ok {
		return 0, ErrInvalidToken
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 64)

	if err != nil {
		return 0, ErrInvalidToken
	}

	return uint(userID), nil
}
