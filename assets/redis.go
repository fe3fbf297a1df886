package assets

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisTimeout 是单次读取资源的超时时间。
const DefaultRedisTimeout = 3 * time.Second

// Getter 是 RedisStore 需要的最小客户端能力，*redis.Client 与 *redis.ClusterClient 均满足。
type Getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

// RedisStore 从 Redis 读取资源，key 为 Prefix+name，值为资源原始字节。
// 适用于多个打印终端共享同一批字体与底图。
type RedisStore struct {
	Client  Getter
	Prefix  string
	Timeout time.Duration
}

// RedisConf 描述 Redis 连接参数。
type RedisConf struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// NewRedisStore 创建连接到 conf.Addr 的存储，返回的 close 函数用于释放连接。
func NewRedisStore(conf RedisConf) (*RedisStore, func() error) {
	client := redis.NewClient(&redis.Options{
		Addr:     conf.Addr,
		Password: conf.Password,
		DB:       conf.DB,
	})
	log.Printf("[INFO] redis asset store initialized (%s)", conf.Addr)
	return &RedisStore{Client: client, Prefix: conf.Prefix}, client.Close
}

func (s *RedisStore) Load(ctx context.Context, name string) ([]byte, error) {
	if s == nil || s.Client == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = DefaultRedisTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	data, err := s.Client.Get(ctx, s.Prefix+name).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("从 redis 读取资源 %s 失败: %w", name, err)
	}
	return data, nil
}
