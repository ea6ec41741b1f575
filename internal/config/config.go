package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	AppPort string

	// 全站 Basic Auth，两者都配置时启用
	BasicAuthUser string
	BasicAuthPass string

	CacheBackend string
	RedisAddr    string
	CacheTTL     time.Duration

	GroupDeadline time.Duration
	FetchWorkers  int

	StandardTimeout time.Duration
	LibraryTimeout  time.Duration
	LibraryRetries  int

	// SourcesFile 为空时使用内置分组表
	SourcesFile string
	// PrewarmCron 为空时不启用缓存预热
	PrewarmCron string
}

func Load() *Config {
	cfg := &Config{
		AppPort:         getEnv("APP_PORT", "5000"),
		BasicAuthUser:   getEnv("APP_BASIC_USER", ""),
		BasicAuthPass:   getEnv("APP_BASIC_PASS", ""),
		CacheBackend:    getEnv("CACHE_BACKEND", "memory"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6380"),
		CacheTTL:        getDuration("CACHE_TTL", 5*time.Minute),
		GroupDeadline:   getDuration("GROUP_DEADLINE", 10*time.Second),
		FetchWorkers:    getInt("FETCH_WORKERS", 10),
		StandardTimeout: getDuration("STANDARD_TIMEOUT", 7*time.Second),
		LibraryTimeout:  getDuration("LIBRARY_TIMEOUT", 15*time.Second),
		LibraryRetries:  getInt("LIBRARY_RETRIES", 1),
		SourcesFile:     getEnv("SOURCES_FILE", ""),
		PrewarmCron:     getEnv("PREWARM_CRON", ""),
	}

	log.Printf("config loaded: port=%s cache=%s ttl=%s deadline=%s workers=%d prewarm=%q",
		cfg.AppPort, cfg.CacheBackend, cfg.CacheTTL, cfg.GroupDeadline, cfg.FetchWorkers, cfg.PrewarmCron)
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		log.Printf("warn: invalid %s=%q, using default %s", key, v, def)
		return def
	}
	return d
}

func getInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		log.Printf("warn: invalid %s=%q, using default %d", key, v, def)
		return def
	}
	return n
}
