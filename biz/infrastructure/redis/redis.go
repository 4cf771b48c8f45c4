package redis

import (
	"classroom/biz/infrastructure/config"
	"sync"

	"github.com/zeromicro/go-zero/core/stores/redis"
)

var (
	instance *redis.Redis
	once     sync.Once
)

// GetRedis 返回进程内共享的 Redis 客户端, 会话吊销记录依赖它
func GetRedis(config *config.Config) *redis.Redis {
	once.Do(func() {
		if config.Redis == nil {
			panic("redis config is required for session revocation")
		}
		instance = redis.MustNewRedis(*config.Redis)
	})
	return instance
}
