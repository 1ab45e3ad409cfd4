package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrExpired   = errors.New("token expired")
	ErrMalformed = errors.New("malformed token")
)

// TokenService выпускает и проверяет токены сессий (HS256, без отзыва на сервере).
type TokenService struct {
	secret []byte
}

func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret)}
}

type sessionClaims struct {
	UserID uint `json:"user_id"`
	jwt.RegisteredClaims
}

// Issue выпускает токен на пользователя.
// Срок: текущий момент + 8 часов (пекинское смещение) + 1 час действия.
func (s *TokenService) Issue(userID uint) (string, error) {
	claims := &sessionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(8*time.Hour + 1*time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Validate возвращает user_id из токена.
// Просроченный токен — ErrExpired, всё остальное (кривая структура,
// чужой ключ, не-HMAC алгоритм) — ErrMalformed.
func (s *TokenService) Validate(tokenStr string) (uint, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrMalformed
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, ErrExpired
		}
		return 0, ErrMalformed
	}
	if !token.Valid {
		return 0, ErrMalformed
	}
	return claims.UserID, nil
}
