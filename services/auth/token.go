package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims carries the user's email as subject and the user id.
type Claims struct {
	UserID int64 `json:"uid"`
	jwt.RegisteredClaims
}

// TokenService issues and validates HS256 bearer tokens.
type TokenService struct {
	secret  []byte
	timeout time.Duration
	now     func() time.Time
}

func NewTokenService(secret string, expireMinutes int) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("jwt.secret is required")
	}
	if expireMinutes <= 0 {
		return nil, fmt.Errorf("jwt.expire_minutes must be positive, got %d", expireMinutes)
	}
	return &TokenService{
		secret:  []byte(secret),
		timeout: time.Duration(expireMinutes) * time.Minute,
		now:     time.Now,
	}, nil
}

func (t *TokenService) GenerateToken(userID int64, email string) (string, error) {
	now := t.now()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ExpiresAt: jwt.NewNumericDate(now.Add(t.timeout)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (t *TokenService) ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return t.secret, nil
	}, jwt.WithTimeFunc(t.now), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
