package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/hanulsoft/board-server/internal/model"
)

// Claims represents session token claims carrying the user ID.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64 `json:"id"`
}

// JWT implements TokenManager backed by symmetric HMAC.
type JWT struct {
	secretKey string
}

// NewJWT creates a new JWT token manager with the provided secret key.
func NewJWT(secretKey string) model.TokenManager {
	return &JWT{secretKey: secretKey}
}

// sessionTTL is the fixed validity window of a session token. There is
// no server-side revocation list; expiry is the only natural death.
const sessionTTL = 12 * time.Hour

// Issue creates a signed session token for the given user ID.
func (j *JWT) Issue(userID int64) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(sessionTTL)),
		},
		UserID: userID,
	})

	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	return tokenString, nil
}

// Parse validates a session token and extracts the user ID. An expired
// token fails with model.ErrTokenExpired; every other verification
// failure is model.ErrTokenMalformed so that callers can tell the two
// apart.
func (j *JWT) Parse(tokenString string) (int64, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return []byte(j.secretKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, model.ErrTokenExpired
		}
		return 0, model.ErrTokenMalformed
	}
	if !token.Valid {
		return 0, model.ErrTokenMalformed
	}
	if claims.UserID == 0 {
		return 0, model.ErrTokenMalformed
	}
	return claims.UserID, nil
}
