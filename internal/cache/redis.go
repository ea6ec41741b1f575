package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/LJTian/NoticeHub/internal/collector"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "notice:list:"

// Redis 多实例部署时共享的结果缓存，依赖 Redis 的 TTL 自然过期。
// Redis 不可用时只记录日志：读按未命中处理，写直接丢弃。
type Redis struct {
	client *redis.Client
}

func NewRedis(addr string) *Redis {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("warn: redis ping failed: %v", err)
	}

	return &Redis{client: rdb}
}

func redisKey(url string) string {
	return redisKeyPrefix + url
}

func (r *Redis) Get(ctx context.Context, url string) ([]collector.Notice, bool) {
	bs, err := r.client.Get(ctx, redisKey(url)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("cache: redis get %s: %v", url, err)
		}
		return nil, false
	}
	var items []collector.Notice
	if err := json.Unmarshal(bs, &items); err != nil {
		log.Printf("cache: decode %s: %v", url, err)
		return nil, false
	}
	return items, true
}

func (r *Redis) Put(ctx context.Context, url string, items []collector.Notice, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	if items == nil {
		items = []collector.Notice{}
	}
	bs, err := json.Marshal(items)
	if err != nil {
		log.Printf("cache: encode %s: %v", url, err)
		return
	}
	if err := r.client.Set(ctx, redisKey(url), bs, ttl).Err(); err != nil {
		log.Printf("cache: redis set %s: %v", url, err)
	}
}

func (r *Redis) Close() error {
	return r.client.Close()
}
