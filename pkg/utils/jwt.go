package utils

import (
	"time"

	"blog_api/internal/pkg/config"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims 会话令牌 Claims
// 令牌本身只是会话的载体，有效性以 Redis 中的会话记录为准
type SessionClaims struct {
	SessionID string `json:"session_id"`
	UserID    uint   `json:"user_id"`
	jwt.RegisteredClaims
}

// GenerateSessionToken 签发会话令牌
func GenerateSessionToken(sessionID string, userID uint) (string, *time.Time, error) {
	now := time.Now()
	expireTime := now.Add(time.Duration(config.GlobalConfig.Session.Expire) * time.Hour)

	claims := SessionClaims{
		SessionID: sessionID,
		UserID:    userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expireTime),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "blog-api",
		},
	}

	tokenClaims := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token, err := tokenClaims.SignedString([]byte(config.GlobalConfig.Session.Secret))
	if err != nil {
		return "", nil, err
	}
	return token, &expireTime, nil
}

// ParseSessionToken 验证并解析会话令牌
func ParseSessionToken(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(config.GlobalConfig.Session.Secret), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*SessionClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, jwt.ErrTokenInvalidClaims
}
