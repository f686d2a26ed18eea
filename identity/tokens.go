package identity

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenTTL = 7 * 24 * time.Hour

// AppClaims are the custom claims carried by a session token.
type AppClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// TokenIssuer signs and verifies session tokens. Parsing a previously
// issued token is how a returning client restores its session.
type TokenIssuer struct {
	secret []byte
}

// NewTokenIssuer creates an issuer with the given HMAC secret.
func NewTokenIssuer(secret []byte) *TokenIssuer {
	return &TokenIssuer{secret: secret}
}

// Issue signs a session token for the identity.
func (t *TokenIssuer) Issue(id Identity) (string, error) {
	claims := AppClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.ID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		Email: id.Email,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Parse verifies a session token and returns the identity it carries.
func (t *TokenIssuer) Parse(tokenString string) (Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AppClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil {
		return Identity{}, err
	}

	claims, ok := token.Claims.(*AppClaims)
	if !ok || !token.Valid {
		return Identity{}, fmt.Errorf("invalid token")
	}
	return Identity{ID: claims.Subject, Email: claims.Email}, nil
}
