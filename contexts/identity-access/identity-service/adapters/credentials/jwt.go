package credentials

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTIssuer signs HS256 bearer tokens carrying the username as subject.
type JWTIssuer struct {
	secret []byte
}

func NewJWTIssuer(secret string) (JWTIssuer, error) {
	if strings.TrimSpace(secret) == "" {
		return JWTIssuer{}, errors.New("jwt secret is required")
	}
	return JWTIssuer{secret: []byte(secret)}, nil
}

func (i JWTIssuer) Issue(subject string, ttl time.Duration, now time.Time) (string, time.Time, error) {
	if strings.TrimSpace(subject) == "" {
		return "", time.Time{}, errors.New("token subject is required")
	}
	expiresAt := now.Add(ttl).UTC()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

// Verify checks signature, algorithm and expiry against now.
func (i JWTIssuer) Verify(token string, now time.Time) (string, bool) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil || !parsed.Valid {
		return "", false
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return "", false
	}
	return claims.Subject, true
}
