package cache

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/LJTian/NoticeHub/internal/collector"
)

// Store 结果缓存 + 生命周期管理
type Store interface {
	collector.ResultCache
	Close() error
}

// New 按配置选择缓存后端：memory（默认）或 redis
func New(backend, redisAddr string) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", "memory":
		return NewMemory(), nil
	case "redis":
		return NewRedis(redisAddr), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q (want memory or redis)", backend)
	}
}

type entry struct {
	items     []collector.Notice
	expiresAt time.Time
}

// Memory 进程内结果缓存。过期条目不会被主动清理，只在读取时视为不存在，
// 下一次抓取时被覆盖；数据源数量固定且很少，这里不做淘汰。
type Memory struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

func (m *Memory) Get(_ context.Context, url string) ([]collector.Notice, bool) {
	m.mu.RLock()
	e, ok := m.entries[url]
	m.mu.RUnlock()
	if !ok || !m.now().Before(e.expiresAt) {
		return nil, false
	}
	return append([]collector.Notice{}, e.items...), true
}

// Put ttl <= 0 时不写入
func (m *Memory) Put(_ context.Context, url string, items []collector.Notice, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	e := entry{
		items:     append([]collector.Notice{}, items...),
		expiresAt: m.now().Add(ttl),
	}
	m.mu.Lock()
	m.entries[url] = e
	m.mu.Unlock()
}

func (m *Memory) Close() error { return nil }
