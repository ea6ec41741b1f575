package scheduler

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/LJTian/NoticeHub/internal/collector"
	"github.com/LJTian/NoticeHub/internal/sources"
	"github.com/robfig/cron/v3"
)

// GroupFetcher 与 aggregator.Aggregator 的 FetchGroup 一致
type GroupFetcher interface {
	FetchGroup(ctx context.Context, srcs []collector.Source, deadline time.Duration) []collector.Notice
}

// Scheduler 定时预热缓存：逐个分组调用 FetchGroup，让用户请求尽量命中缓存
type Scheduler struct {
	cron     *cron.Cron
	groups   []sources.Group
	fetcher  GroupFetcher
	deadline time.Duration
	// StartupDelay 启动后首轮预热的延迟，<= 0 表示不做首轮预热
	StartupDelay time.Duration

	mu      sync.Mutex
	startup *time.Timer
}

func New(spec string, catalog *sources.Catalog, fetcher GroupFetcher, deadline time.Duration) (*Scheduler, error) {
	c := cron.New()

	s := &Scheduler{
		cron:         c,
		groups:       catalog.All(),
		fetcher:      fetcher,
		deadline:     deadline,
		StartupDelay: 15 * time.Second,
	}

	if _, err := c.AddFunc(spec, func() { s.RunOnce() }); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	// 延迟执行首轮预热，避免与服务启动后的首批用户请求争抢连接
	if s.StartupDelay > 0 {
		s.mu.Lock()
		s.startup = time.AfterFunc(s.StartupDelay, func() { s.RunOnce() })
		s.mu.Unlock()
	}
}

// Stop 取消尚未触发的首轮预热，停止调度并等待正在执行的 cron 任务结束
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if s.startup != nil {
		s.startup.Stop()
	}
	s.mu.Unlock()
	<-s.cron.Stop().Done()
}

// RunOnce 同步执行一轮预热，返回抓到的记录总数
func (s *Scheduler) RunOnce() int {
	log.Println("prewarm: start")
	total := 0
	for _, g := range s.groups {
		items := s.fetcher.FetchGroup(context.Background(), g.Sources(), s.deadline)
		log.Printf("prewarm: %s done, sources=%d items=%d", g.Name, len(g.Sources()), len(items))
		total += len(items)
	}
	log.Printf("prewarm: done, groups=%d items=%d", len(s.groups), total)
	return total
}
