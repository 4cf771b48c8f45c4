package config

import (
	"classroom/biz/infrastructure/util/log"
	"os"

	"github.com/zeromicro/go-zero/core/conf"
	"github.com/zeromicro/go-zero/core/service"
	"github.com/zeromicro/go-zero/core/stores/cache"
	"github.com/zeromicro/go-zero/core/stores/redis"
)

var config *Config

type Auth struct {
	SecretKey     string
	PublicKey     string
	AccessExpire  int64  `json:",default=900"`
	RefreshExpire int64  `json:",default=604800"`
	Credential    string `json:",default=local,options=local|platform"`
	BcryptCost    int    `json:",default=10"`
}

type Mongo struct {
	URL string
	DB  string
	// 单节点部署时无法开启事务, 关闭后成员关系的双写退化为顺序写
	Transactional bool `json:",default=true"`
}

type Policy struct {
	OwnerOnlyModeration bool `json:",default=false"`
}

type Prometheus struct {
	ListenOn string `json:",default=:9091"`
	Path     string `json:",default=/metrics"`
}

type Config struct {
	service.ServiceConf
	ListenOn string
	State    string `json:",default=prod"`
	Auth     Auth
	Mongo    Mongo
	MySQL    struct {
		DSN string
	}
	Cache      cache.CacheConf
	Redis      *redis.RedisConf
	Api        API        `json:",optional"`
	Policy     Policy     `json:",optional"`
	Prometheus Prometheus `json:",optional"`
}

type API struct {
	PlatformURL string `json:",optional"`
}

func NewConfig() (*Config, error) {
	c := new(Config)
	path := os.Getenv("CONFIG_PATH")
	log.Info("NewConfig load config from path: %s", path)
	if err := conf.Load(path, c); err != nil {
		return nil, err
	}
	if err := c.SetUp(); err != nil {
		return nil, err
	}
	config = c
	return c, nil
}

func GetConfig() *Config {
	return config
}
