// Package auth implements the identity shim: Google OAuth 2.0 for login and
// a signed cookie session for everything after. The application never stores
// credentials; only the provider-supplied name and email live in the session.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionCookie is the name of the cookie carrying the session token.
const SessionCookie = "vq_session"

// sessionTTL bounds how long a login lasts before the user must
// re-authenticate with Google.
const sessionTTL = 24 * time.Hour

// Claims is the session token payload. Email doubles as the user_id
// attached to submissions.
type Claims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// NewSessionToken mints a signed HS256 session token for the given identity.
func NewSessionToken(secret, name, email string) (string, error) {
	claims := Claims{
		Name:  name,
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(sessionTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("auth.NewSessionToken: %w", err)
	}
	return signed, nil
}

// ParseSessionToken validates a session token and returns its claims.
// Expired or tampered tokens return an error.
func ParseSessionToken(secret, tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("auth.ParseSessionToken: %w", err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("auth.ParseSessionToken: %w", jwt.ErrSignatureInvalid)
	}
	return claims, nil
}
