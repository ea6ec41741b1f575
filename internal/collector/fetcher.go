package collector

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Notice 单条公告。JSON 字段名是对外契约：title / link / author / date，全部为字符串
type Notice struct {
	Title  string `json:"title"`
	Link   string `json:"link"`
	Author string `json:"author"`
	Date   string `json:"date"`
}

// SourceClass 决定抓取某个公告板时使用的请求头、超时与重试策略
type SourceClass string

const (
	ClassStandard SourceClass = "standard"
	// ClassLibrary 学术情报馆一类的站点：对简陋请求头不友好、响应慢，需要更宽松的策略
	ClassLibrary SourceClass = "library"
)

// ParseSourceClass 空字符串视为 standard
func ParseSourceClass(s string) (SourceClass, error) {
	switch SourceClass(strings.ToLower(strings.TrimSpace(s))) {
	case "", ClassStandard:
		return ClassStandard, nil
	case ClassLibrary:
		return ClassLibrary, nil
	default:
		return "", fmt.Errorf("unknown source class %q (want standard or library)", s)
	}
}

// Source 描述一个公告板页面，进程生命周期内只读
type Source struct {
	URL   string
	Class SourceClass
}

// Fetcher 抽象单个公告板的抓取。
// 实现不向调用方返回错误：任何失败都退化为空列表。
type Fetcher interface {
	FetchOne(ctx context.Context, src Source) []Notice
}

// ResultCache 以页面 URL 为键的短期结果缓存，必须支持并发读写
type ResultCache interface {
	Get(ctx context.Context, url string) ([]Notice, bool)
	Put(ctx context.Context, url string, items []Notice, ttl time.Duration)
}
