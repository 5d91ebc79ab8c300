package auth

import (
	"time"

	"carpool/internal/domain"
	"carpool/internal/domain/models"

	"github.com/golang-jwt/jwt/v5"
)

// TokenManager issues and verifies the HS256 session tokens the guard runs on.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

func (m *TokenManager) Issue(user models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"role":    user.Role,
		"exp":     time.Now().Add(m.ttl).Unix(),
	})
	return token.SignedString(m.secret)
}

// Verify parses a token and returns the caller's user id and role.
func (m *TokenManager) Verify(tokenString string) (int64, string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, "", domain.UnauthorizedError{Msg: "invalid or expired token"}
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", domain.UnauthorizedError{Msg: "invalid token claims"}
	}

	uid, ok := claims["user_id"].(float64)
	if !ok || uid <= 0 {
		return 0, "", domain.UnauthorizedError{Msg: "invalid token claims"}
	}
	role, _ := claims["role"].(string)

	return int64(uid), role, nil
}
