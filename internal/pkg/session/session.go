package session

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"blog_api/internal/pkg/config"
	"blog_api/pkg/apperr"
	"blog_api/pkg/utils"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Store 会话存储接口
type Store interface {
	// Create 为用户创建会话，返回可下发给客户端的令牌
	Create(ctx context.Context, userID uint) (string, error)
	// Resolve 校验令牌并返回其对应的用户 ID
	Resolve(ctx context.Context, token string) (uint, error)
	// Destroy 注销令牌对应的会话
	Destroy(ctx context.Context, token string) error
}

// manager Redis 实现
// 令牌为签名 JWT，内含会话 ID；会话记录写入 Redis 并带 TTL，
// 注销删除记录后令牌立即失效
type manager struct {
	rdb *redis.Client
}

// NewManager 创建会话存储
func NewManager(rdb *redis.Client) Store {
	return &manager{rdb: rdb}
}

func sessionKey(id string) string {
	return fmt.Sprintf("session:%s", id)
}

func (m *manager) Create(ctx context.Context, userID uint) (string, error) {
	sessionID := uuid.New().String()

	token, expireAt, err := utils.GenerateSessionToken(sessionID, userID)
	if err != nil {
		return "", err
	}

	ttl := time.Until(*expireAt)
	if err := m.rdb.Set(ctx, sessionKey(sessionID), userID, ttl).Err(); err != nil {
		return "", err
	}
	return token, nil
}

func (m *manager) Resolve(ctx context.Context, token string) (uint, error) {
	claims, err := utils.ParseSessionToken(token)
	if err != nil {
		return 0, apperr.Authentication("invalid or expired session")
	}

	val, err := m.rdb.Get(ctx, sessionKey(claims.SessionID)).Result()
	if err == redis.Nil {
		// 会话已注销或过期
		return 0, apperr.Authentication("invalid or expired session")
	}
	if err != nil {
		return 0, err
	}

	userID, err := strconv.ParseUint(val, 10, 64)
	if err != nil || uint(userID) != claims.UserID {
		return 0, apperr.Authentication("invalid or expired session")
	}
	return claims.UserID, nil
}

func (m *manager) Destroy(ctx context.Context, token string) error {
	claims, err := utils.ParseSessionToken(token)
	if err != nil {
		// 令牌无法解析时视为已注销
		return nil
	}
	return m.rdb.Del(ctx, sessionKey(claims.SessionID)).Err()
}

// CookieName 会话 Cookie 名称
func CookieName() string {
	return config.GlobalConfig.Session.CookieName
}

// CookieMaxAge 会话 Cookie 有效期（秒）
func CookieMaxAge() int {
	return int(time.Duration(config.GlobalConfig.Session.Expire) * time.Hour / time.Second)
}
