package redis

import (
	"strings"

	rd "github.com/go-redis/redis/v9"
)

type Config struct {
	Addrs     []string
	Namespace string
	PoolSize  int
	Password  string
}

type baseDao struct {
	redisClient rd.UniversalClient
	config      Config
}

func newBaseDao(conf Config) *baseDao {
	client := rd.NewUniversalClient(&rd.UniversalOptions{
		Addrs:    conf.Addrs,
		PoolSize: conf.PoolSize,
		Password: conf.Password,
	})
	return &baseDao{
		redisClient: client,
		config:      conf,
	}
}

func (d *baseDao) getNamespaceKey(parts ...string) string {
	if d.config.Namespace != "" {
		parts = append([]string{d.config.Namespace}, parts...)
	}
	return strings.Join(parts, ":")
}
