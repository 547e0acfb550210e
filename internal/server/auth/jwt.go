// Package auth is the token issuer: it creates and verifies the signed,
// expiring tokens the orchestrator hands out. Claims carry the subject
// (username), the role, the expiry and a unique token id.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/travelguru/travelguru/internal/common"
)

// Claims is the wire shape {sub, role, exp, jti}. The jti makes every
// issued token distinct, so replacing a session always changes the stored
// refresh-token value even within one clock second.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// Identity is the verified subject of a token.
type Identity struct {
	UserName string
	Role     string
}

// GenerateToken signs a {sub, role, exp, jti} token with HS256.
func GenerateToken(username, role string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
			ID:        uuid.NewString(),
		},
		Role: role,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken verifies signature and expiry and returns the embedded
// identity. Expired tokens yield common.ErrTokenExpired; signature
// mismatches, malformed payloads and a missing subject all yield
// common.ErrInvalidToken.
func ParseToken(tokenString string, secretKey []byte) (*Identity, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, common.ErrInvalidToken
			}
			return secretKey, nil
		})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid || claims.Subject == "" {
		return nil, common.ErrInvalidToken
	}

	return &Identity{UserName: claims.Subject, Role: claims.Role}, nil
}
