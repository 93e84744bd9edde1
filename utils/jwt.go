package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"
)

// TokenClaims holds the identity attributes carried in a provider token.
type TokenClaims struct {
	ID    string
	Name  string
	Phone string
	Raw   map[string]interface{}
}

// DecodeToken parses a JWT without verifying its signature. The client never
// holds the server's signing secret; it only needs the claims to derive the
// session identity. Structure and expiry are still enforced: a malformed or
// expired token returns an error and the caller must fail closed.
func DecodeToken(tokenString string) (*TokenClaims, error) {
	parser := &jwt.Parser{}
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return nil, err
	}

	if exp, ok := claims["exp"].(float64); ok {
		if time.Now().After(time.Unix(int64(exp), 0)) {
			return nil, errors.New("token expired")
		}
	}

	id := stringClaim(claims, "id")
	if id == "" {
		id = stringClaim(claims, "sub")
	}
	if id == "" {
		return nil, errors.New("token does not contain a valid id claim")
	}

	return &TokenClaims{
		ID:    id,
		Name:  stringClaim(claims, "name"),
		Phone: stringClaim(claims, "phone"),
		Raw:   claims,
	}, nil
}

func stringClaim(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}
