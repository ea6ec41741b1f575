package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/LJTian/NoticeHub/internal/collector"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newMemoryWithClock() (*Memory, *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
	m := NewMemory()
	m.now = clock.Now
	return m, clock
}

var sample = []collector.Notice{
	{Title: "수강신청 안내", Link: "https://a.test/view.do?id=1", Author: "학사팀", Date: "2024-03-01"},
	{Title: "장학금 공지", Link: "https://a.test/view.do?id=2"},
}

func TestMemoryGetPut(t *testing.T) {
	m, _ := newMemoryWithClock()
	ctx := context.Background()

	if _, ok := m.Get(ctx, "https://a.test/notice.do"); ok {
		t.Fatal("expected miss on empty cache")
	}

	m.Put(ctx, "https://a.test/notice.do", sample, time.Minute)
	got, ok := m.Get(ctx, "https://a.test/notice.do")
	if !ok {
		t.Fatal("expected hit after Put")
	}
	if len(got) != 2 || got[0] != sample[0] || got[1] != sample[1] {
		t.Fatalf("unexpected cached items: %+v", got)
	}
}

func TestMemoryLogicalExpiry(t *testing.T) {
	m, clock := newMemoryWithClock()
	ctx := context.Background()
	url := "https://a.test/notice.do"

	m.Put(ctx, url, sample, 30*time.Second)
	clock.Advance(29 * time.Second)
	if _, ok := m.Get(ctx, url); !ok {
		t.Fatal("entry should still be valid before TTL")
	}

	clock.Advance(time.Second)
	if _, ok := m.Get(ctx, url); ok {
		t.Fatal("entry should be treated as absent once TTL elapsed")
	}

	// 过期条目仍在 map 中，只是不可见
	m.mu.RLock()
	_, stored := m.entries[url]
	m.mu.RUnlock()
	if !stored {
		t.Fatal("expired entry should not be purged")
	}

	m.Put(ctx, url, sample[:1], 30*time.Second)
	got, ok := m.Get(ctx, url)
	if !ok || len(got) != 1 {
		t.Fatalf("expected overwritten entry with 1 item, got %v (ok=%v)", got, ok)
	}
}

func TestMemoryEmptyResultIsCached(t *testing.T) {
	m, _ := newMemoryWithClock()
	m.Put(context.Background(), "https://a.test/empty", nil, time.Minute)
	got, ok := m.Get(context.Background(), "https://a.test/empty")
	if !ok {
		t.Fatal("empty extraction should still be a cache hit")
	}
	if len(got) != 0 {
		t.Fatalf("expected no items, got %d", len(got))
	}
}

func TestMemoryNonPositiveTTLDisablesWrite(t *testing.T) {
	m, _ := newMemoryWithClock()
	m.Put(context.Background(), "https://a.test/notice.do", sample, 0)
	if _, ok := m.Get(context.Background(), "https://a.test/notice.do"); ok {
		t.Fatal("ttl 0 should not store anything")
	}
}

func TestMemoryReturnsCopies(t *testing.T) {
	m, _ := newMemoryWithClock()
	ctx := context.Background()
	m.Put(ctx, "u", sample, time.Minute)

	got, _ := m.Get(ctx, "u")
	got[0].Title = "changed"

	again, _ := m.Get(ctx, "u")
	if again[0].Title != sample[0].Title {
		t.Fatalf("cached entry mutated through returned slice: %q", again[0].Title)
	}
}

func TestMemoryConcurrentAccess(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			url := fmt.Sprintf("https://a.test/%d", i%5)
			m.Put(ctx, url, sample, time.Minute)
			if _, ok := m.Get(ctx, url); !ok {
				t.Errorf("expected hit for %s", url)
			}
		}(i)
	}
	wg.Wait()
}

func TestNewSelectsBackend(t *testing.T) {
	s, err := New("memory", "")
	if err != nil {
		t.Fatalf("New(memory) error: %v", err)
	}
	if _, ok := s.(*Memory); !ok {
		t.Fatalf("New(memory) = %T, want *Memory", s)
	}
	if _, err := New("memcached", ""); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}
