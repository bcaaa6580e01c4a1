package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/Pavithra-p25/ecommerce-catalog/internal/core/port"
	"github.com/golang-jwt/jwt/v5"
)

var _ port.TokenIssuer = (*JWTManager)(nil)
var _ port.TokenVerifier = (*JWTManager)(nil)

var ErrInvalidToken = errors.New("invalid token")

// JWTManager signs and verifies HS256 admin tokens.
type JWTManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewJWTManager(secret string, ttl time.Duration) JWTManager {
	return JWTManager{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

func (m JWTManager) Issue(username string) (string, int64, error) {
	const op = "JWTManager.Issue"

	now := m.now()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", 0, fmt.Errorf("%s: %w", op, err)
	}
	return signed, int64(m.ttl / time.Millisecond), nil
}

func (m JWTManager) Verify(tokenStr string) (string, error) {
	const op = "JWTManager.Verify"

	var claims jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(
		tokenStr, &claims,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf(
					"unexpected signing method: %v", t.Header["alg"],
				)
			}
			return m.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil || !token.Valid {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}
	return claims.Subject, nil
}
