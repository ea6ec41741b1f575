package aggregator

import (
	"context"
	"log"
	"time"

	"github.com/LJTian/NoticeHub/internal/collector"
	"golang.org/x/sync/errgroup"
)

// DefaultWorkers 同时在途的抓取请求上限
const DefaultWorkers = 10

// Aggregator 并发抓取一个分组下的所有公告板，并在总时限内返回已完成的结果
type Aggregator struct {
	fetcher collector.Fetcher
	workers int
}

func New(fetcher collector.Fetcher, workers int) *Aggregator {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Aggregator{fetcher: fetcher, workers: workers}
}

// FetchGroup 每个数据源一个任务，按完成顺序拼接结果。
// 到达 deadline 时立即返回已完成的部分；仍在进行的任务不再等待，
// 它们的结果被丢弃（写缓存照常进行）。deadline <= 0 表示只受 ctx 约束。
func (a *Aggregator) FetchGroup(ctx context.Context, sources []collector.Source, deadline time.Duration) []collector.Notice {
	out := make([]collector.Notice, 0)
	if len(sources) == 0 {
		return out
	}

	var cancel context.CancelFunc
	if deadline > 0 {
		ctx, cancel = context.WithTimeout(ctx, deadline)
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}
	defer cancel()

	// 带缓冲：超时后被放弃的任务写入结果时不会阻塞
	results := make(chan []collector.Notice, len(sources))

	go func() {
		var g errgroup.Group
		g.SetLimit(a.workers)
		for _, src := range sources {
			if ctx.Err() != nil {
				break
			}
			src := src
			g.Go(func() error {
				results <- a.fetcher.FetchOne(ctx, src)
				return nil
			})
		}
		_ = g.Wait()
		close(results)
	}()

	done := 0
	for {
		select {
		case items, ok := <-results:
			if !ok {
				return out
			}
			done++
			out = append(out, items...)
		case <-ctx.Done():
			log.Printf("group fetch stopped: %d/%d sources completed (%v)", done, len(sources), ctx.Err())
			return out
		}
	}
}
