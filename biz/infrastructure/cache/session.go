package cache

import (
	"classroom/biz/infrastructure/config"
	"classroom/biz/infrastructure/redis"
	"context"
	"fmt"
	"strconv"
	"time"

	gozero_redis "github.com/zeromicro/go-zero/core/stores/redis"
)

const sessionRevokedCachePrefix = "session_revoked"

// ISessionCacheMapper 记录用户登出时间, 之前签发的访问令牌一律失效
type ISessionCacheMapper interface {
	Revoke(ctx context.Context, userID string, at time.Time) error
	RevokedAt(ctx context.Context, userID string) (time.Time, bool, error)
}

type SessionCacheMapper struct {
	rds    *gozero_redis.Redis
	expire int
}

func NewSessionCacheMapper(config *config.Config) *SessionCacheMapper {
	return NewSessionCacheMapperWithRedis(redis.GetRedis(config), config.Auth.AccessExpire)
}

func NewSessionCacheMapperWithRedis(rds *gozero_redis.Redis, accessExpire int64) *SessionCacheMapper {
	return &SessionCacheMapper{
		rds:    rds,
		expire: int(accessExpire),
	}
}

// Revoke 写入登出时间, 访问令牌过期后记录也随之失效
func (m *SessionCacheMapper) Revoke(ctx context.Context, userID string, at time.Time) error {
	return m.rds.SetexCtx(ctx, m.buildCacheKey(userID), strconv.FormatInt(at.UnixMilli(), 10), m.expire)
}

// RevokedAt 获取登出时间, 未登出时第二个返回值为 false
func (m *SessionCacheMapper) RevokedAt(ctx context.Context, userID string) (time.Time, bool, error) {
	val, err := m.rds.GetCtx(ctx, m.buildCacheKey(userID))
	if err != nil {
		return time.Time{}, false, err
	}
	if val == "" {
		return time.Time{}, false, nil
	}
	unix, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parse revoked time failed: %w", err)
	}
	return time.UnixMilli(unix), true, nil
}

func (m *SessionCacheMapper) buildCacheKey(userID string) string {
	return fmt.Sprintf("%s:%s", sessionRevokedCachePrefix, userID)
}
