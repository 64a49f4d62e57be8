package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenCodec issues and verifies the HS256 bearer tokens that stand in for
// sessions. A token carries only the user id; everything else is re-read from
// the store on each request.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

const DefaultTokenTTL = 7 * 24 * time.Hour

func NewTokenCodec(secret []byte, ttl time.Duration) TokenCodec {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	secretCopy := make([]byte, len(secret))
	copy(secretCopy, secret)
	return TokenCodec{secret: secretCopy, ttl: ttl, now: time.Now}
}

// WithNow returns a copy using the given clock. Tests only.
func (c TokenCodec) WithNow(now func() time.Time) TokenCodec {
	c.now = now
	return c
}

func (c TokenCodec) Issue(userID string) (string, error) {
	if len(c.secret) == 0 {
		return "", errors.New("token codec: empty secret")
	}
	now := c.now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and expiry and returns the embedded user id.
func (c TokenCodec) Verify(tokenString string) (string, bool) {
	if len(c.secret) == 0 || tokenString == "" {
		return "", false
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.now),
	)
	var claims jwt.RegisteredClaims
	token, err := parser.ParseWithClaims(tokenString, &claims, func(*jwt.Token) (any, error) {
		return c.secret, nil
	})
	if err != nil || !token.Valid || claims.Subject == "" {
		return "", false
	}
	return claims.Subject, true
}
