package app

import (
	"fmt"
	"log"
	"time"

	"github.com/LJTian/NoticeHub/internal/aggregator"
	"github.com/LJTian/NoticeHub/internal/cache"
	"github.com/LJTian/NoticeHub/internal/collector"
	"github.com/LJTian/NoticeHub/internal/config"
	"github.com/LJTian/NoticeHub/internal/sources"
)

// App 按配置组装好的核心组件，cmd/api 和 cmd/collect 共用
type App struct {
	Catalog    *sources.Catalog
	Cache      cache.Store
	Fetcher    *collector.BoardFetcher
	Aggregator *aggregator.Aggregator
	Deadline   time.Duration
}

func Build(cfg *config.Config) (*App, error) {
	catalog := sources.Default()
	if cfg.SourcesFile != "" {
		c, err := sources.LoadFile(cfg.SourcesFile)
		if err != nil {
			return nil, fmt.Errorf("load sources: %w", err)
		}
		catalog = c
		log.Printf("sources loaded from %s: %d groups", cfg.SourcesFile, len(c.Groups()))
	}

	store, err := cache.New(cfg.CacheBackend, cfg.RedisAddr)
	if err != nil {
		return nil, fmt.Errorf("init cache: %w", err)
	}

	fetcher := collector.NewBoardFetcher(store, cfg.CacheTTL,
		collector.StandardPolicy(cfg.StandardTimeout),
		collector.LibraryPolicy(cfg.LibraryTimeout, cfg.LibraryRetries),
	)

	return &App{
		Catalog:    catalog,
		Cache:      store,
		Fetcher:    fetcher,
		Aggregator: aggregator.New(fetcher, cfg.FetchWorkers),
		Deadline:   cfg.GroupDeadline,
	}, nil
}

func (a *App) Close() error {
	return a.Cache.Close()
}
