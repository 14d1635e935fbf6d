package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers a bad signature, a malformed token and an expired
// token. It is distinct from a token that verifies but has no stored record.
var ErrInvalidToken = errors.New("invalid or expired token")

// TokenIssuer mints and verifies the signed access/refresh token pair. The
// access token is verified without a database round trip; the refresh
// token's signature is a secondary check on top of its stored record.
type TokenIssuer interface {
	CreateAccessToken(userID uint) (string, error)
	CreateRefreshToken(userID uint) (string, error)
	DecodeRefreshToken(token string) (uint, error)
	DecodeAccessToken(token string) (uint, error)
}

type JWTIssuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewJWTIssuer(secret string, accessTTL, refreshTTL time.Duration) *JWTIssuer {
	return &JWTIssuer{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

func (i *JWTIssuer) CreateAccessToken(userID uint) (string, error) {
	return i.sign(userID, i.accessTTL)
}

func (i *JWTIssuer) CreateRefreshToken(userID uint) (string, error) {
	return i.sign(userID, i.refreshTTL)
}

func (i *JWTIssuer) DecodeAccessToken(token string) (uint, error) {
	return i.parse(token)
}

func (i *JWTIssuer) DecodeRefreshToken(token string) (uint, error) {
	return i.parse(token)
}

func (i *JWTIssuer) sign(userID uint, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := &jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(userID), 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

func (i *JWTIssuer) parse(tokenString string) (uint, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil {
		return 0, ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return 0, ErrInvalidToken
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}
	return uint(userID), nil
}
