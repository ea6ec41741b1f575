package collector

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"log"
	"net"
	"syscall"
	"time"

	"github.com/gocolly/colly/v2"
)

const (
	boardMaxBodyBytes = 4 << 20 // 4MB，公告列表页通常不超过几百 KB

	standardUserAgent = "Mozilla/5.0"
	browserUserAgent  = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Policy 某一类数据源的请求策略
type Policy struct {
	UserAgent string
	Headers   map[string]string
	Timeout   time.Duration
	// Retries 首次失败后额外尝试的次数
	Retries int
}

// StandardPolicy 普通学院公告板：最简请求头、短超时、不重试
func StandardPolicy(timeout time.Duration) Policy {
	return Policy{
		UserAgent: standardUserAgent,
		Timeout:   timeout,
	}
}

// LibraryPolicy 学术情报馆：模拟浏览器请求头、较长超时、额外重试
func LibraryPolicy(timeout time.Duration, retries int) Policy {
	return Policy{
		UserAgent: browserUserAgent,
		Headers: map[string]string{
			"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
			"Accept-Language": "ko-KR,ko;q=0.9,en-US;q=0.8,en;q=0.7",
			"Cache-Control":   "no-cache",
			"Connection":      "keep-alive",
		},
		Timeout: timeout,
		Retries: retries,
	}
}

// classCollector 每类数据源一个基础 collector，共享同一个 HTTP 连接池；
// 每次请求 Clone 出独立回调，避免并发请求互相覆盖结果。
type classCollector struct {
	base   *colly.Collector
	policy Policy
}

func newClassCollector(p Policy) *classCollector {
	c := colly.NewCollector(
		colly.UserAgent(p.UserAgent),
		colly.AllowURLRevisit(),
		colly.MaxBodySize(boardMaxBodyBytes),
		colly.DetectCharset(),
		colly.ParseHTTPErrorResponse(),
	)
	c.SetRequestTimeout(p.Timeout)
	return &classCollector{base: c, policy: p}
}

func (cc *classCollector) get(rawURL string) (string, int, error) {
	c := cc.base.Clone()
	c.AllowURLRevisit = true
	c.ParseHTTPErrorResponse = true

	var (
		body   []byte
		status int
	)
	c.OnRequest(func(r *colly.Request) {
		for k, v := range cc.policy.Headers {
			r.Headers.Set(k, v)
		}
	})
	c.OnResponse(func(r *colly.Response) {
		body = r.Body
		status = r.StatusCode
	})

	if err := c.Visit(rawURL); err != nil {
		return "", 0, err
	}
	return string(body), status, nil
}

// BoardFetcher 抓取单个公告板页面并解析，结果写入 ResultCache
type BoardFetcher struct {
	cache      ResultCache
	ttl        time.Duration
	extractor  *Extractor
	collectors map[SourceClass]*classCollector
}

func NewBoardFetcher(cache ResultCache, ttl time.Duration, standard, library Policy) *BoardFetcher {
	return &BoardFetcher{
		cache:     cache,
		ttl:       ttl,
		extractor: NewExtractor(),
		collectors: map[SourceClass]*classCollector{
			ClassStandard: newClassCollector(standard),
			ClassLibrary:  newClassCollector(library),
		},
	}
}

// FetchOne 先查缓存，未命中再请求页面。任何失败都只记录日志并返回空列表。
// 非 2xx 响应照常解析：部分学院站点会用 404 返回正常的列表页。
func (f *BoardFetcher) FetchOne(ctx context.Context, src Source) []Notice {
	if src.URL == "" {
		return []Notice{}
	}
	if items, ok := f.cache.Get(ctx, src.URL); ok {
		return items
	}

	body, status, err := f.fetchPage(ctx, src)
	if err != nil {
		log.Printf("fetch %s failed (%s): %v", src.URL, errorKind(err), err)
		return []Notice{}
	}
	if status < 200 || status >= 300 {
		log.Printf("fetch %s: status %d, parsing body anyway", src.URL, status)
	}

	items, matcher := f.extractor.extract(body, src.URL)
	if matcher == "" {
		log.Printf("fetch %s: no board layout matched", src.URL)
	} else {
		log.Printf("fetch %s done, matcher=%s items=%d", src.URL, matcher, len(items))
	}

	// 调用方可能已经超时返回，写缓存不跟随其取消
	f.cache.Put(context.WithoutCancel(ctx), src.URL, items, f.ttl)
	return items
}

func (f *BoardFetcher) fetchPage(ctx context.Context, src Source) (string, int, error) {
	cc, ok := f.collectors[src.Class]
	if !ok {
		cc = f.collectors[ClassStandard]
	}

	var lastErr error
	for attempt := 0; attempt <= cc.policy.Retries; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", 0, err
		}
		body, status, err := cc.get(src.URL)
		if err == nil {
			return body, status, nil
		}
		lastErr = err
		if attempt < cc.policy.Retries {
			log.Printf("fetch %s attempt %d failed (%s), retrying: %v", src.URL, attempt+1, errorKind(err), err)
		}
	}
	return "", 0, lastErr
}

// errorKind 把传输层错误归类，仅用于日志
func errorKind(err error) string {
	var (
		dnsErr     *net.DNSError
		certErr    *tls.CertificateVerificationError
		recordErr  tls.RecordHeaderError
		unknownCA  x509.UnknownAuthorityError
		hostErr    x509.HostnameError
		invalidErr x509.CertificateInvalidError
		netErr     net.Error
	)
	switch {
	case errors.As(err, &dnsErr):
		return "dns"
	case errors.Is(err, syscall.ECONNREFUSED):
		return "refused"
	case errors.As(err, &certErr), errors.As(err, &recordErr),
		errors.As(err, &unknownCA), errors.As(err, &hostErr), errors.As(err, &invalidErr):
		return "tls"
	case errors.As(err, &netErr) && netErr.Timeout():
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return "transport"
	}
}
