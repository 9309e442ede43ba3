package jwtutil

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SignAccess returns (tokenString, jti).
func (c Config) SignAccess(subject, role string, ttl time.Duration) (string, string, error) {
	if len(c.Secret) == 0 {
		return "", "", ErrNoSecret
	}
	jti, err := randJTI()
	if err != nil {
		return "", "", err
	}
	claims := NewAccessClaims(subject, role, jti, ttl)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(c.Secret)
	return s, jti, err
}

// ParseAccess verifies HS256 signature, issuer and leeway, returning claims.
func (c Config) ParseAccess(tokenStr string) (*AccessClaims, error) {
	if len(c.Secret) == 0 {
		return nil, ErrNoSecret
	}
	parser := jwt.NewParser(
		jwt.WithLeeway(c.ClockSkew),
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(Issuer),
		jwt.WithExpirationRequired(),
	)
	token, err := parser.ParseWithClaims(tokenStr, &AccessClaims{}, func(t *jwt.Token) (interface{}, error) {
		return c.Secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*AccessClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

func randJTI() (string, error) {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	return hex.EncodeToString(b[:]), nil
}
