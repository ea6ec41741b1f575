package collector

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// MaxNoticesPerSource 每个页面最多处理的候选元素数量
const MaxNoticesPerSource = 60

const (
	writerSelector = ".writer, [data-role=writer]"
	dateSelector   = ".date, [data-role=date]"
	// 部分公告板在标题前放一个“공지”之类的小标签
	badgeSelector = "span.badge, span.label, span.cate, span.category, span.notice, em.cate, strong.notice"
	maxBadgeRunes = 10
)

// DocumentMatcher 在解析后的文档里定位候选公告元素
type DocumentMatcher interface {
	Name() string
	Match(doc *goquery.Document) *goquery.Selection
}

type selectorMatcher struct {
	name     string
	selector string
}

// SelectorMatcher 基于 CSS 选择器的 DocumentMatcher
func SelectorMatcher(name, selector string) DocumentMatcher {
	return selectorMatcher{name: name, selector: selector}
}

func (m selectorMatcher) Name() string { return m.name }

func (m selectorMatcher) Match(doc *goquery.Document) *goquery.Selection {
	return doc.Find(m.selector)
}

// DefaultMatchers 返回默认的匹配顺序：越具体越靠前，通用的 tbody tr 放在最后兜底，
// 以免误匹配到页面里与公告无关的表格。
func DefaultMatchers() []DocumentMatcher {
	return []DocumentMatcher{
		SelectorMatcher("board_list", "table.board_list tbody tr"),
		SelectorMatcher("boardList", "table.boardList tbody tr"),
		SelectorMatcher("board-table", "table.board-table tbody tr"), // 学术情报馆
		SelectorMatcher("board-list", "ul.board-list li"),
		SelectorMatcher("board-thumb", "ul.board-thumb-wrap li"),
		SelectorMatcher("board-dl", "div.board-list dl"), // 学术情报馆卡片式列表
		SelectorMatcher("tbody", "tbody tr"),
	}
}

// Extractor 把公告板 HTML 转成统一的 Notice 列表
type Extractor struct {
	matchers []DocumentMatcher
}

// NewExtractor 未传 matcher 时使用 DefaultMatchers
func NewExtractor(matchers ...DocumentMatcher) *Extractor {
	if len(matchers) == 0 {
		matchers = DefaultMatchers()
	}
	return &Extractor{matchers: matchers}
}

var defaultExtractor = NewExtractor()

// Extract 使用默认 matcher 解析页面
func Extract(markup, baseURL string) []Notice {
	return defaultExtractor.Extract(markup, baseURL)
}

// Extract 解析页面并返回公告列表（文档顺序）。无法识别的结构返回空列表，不会报错。
func (e *Extractor) Extract(markup, baseURL string) []Notice {
	items, _ := e.extract(markup, baseURL)
	return items
}

// extract 额外返回命中的 matcher 名称，便于日志排查
func (e *Extractor) extract(markup, baseURL string) ([]Notice, string) {
	items := make([]Notice, 0)
	if strings.TrimSpace(markup) == "" {
		return items, ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return items, ""
	}

	var (
		candidates *goquery.Selection
		matched    string
	)
	for _, m := range e.matchers {
		sel := m.Match(doc)
		if sel != nil && sel.Length() > 0 {
			candidates, matched = sel, m.Name()
			break
		}
	}
	if candidates == nil {
		return items, ""
	}

	if candidates.Length() > MaxNoticesPerSource {
		candidates = candidates.Slice(0, MaxNoticesPerSource)
	}

	candidates.Each(func(_ int, el *goquery.Selection) {
		if n, ok := extractNotice(el, baseURL); ok {
			items = append(items, n)
		}
	})
	return items, matched
}

func extractNotice(el *goquery.Selection, baseURL string) (Notice, bool) {
	a := el.Find("a").First()
	if a.Length() == 0 {
		return Notice{}, false
	}

	href, _ := a.Attr("href")
	text := normalizeText(el.Text())

	return Notice{
		Title:  stripBadge(a, normalizeText(a.Text())),
		Link:   resolveURL(baseURL, href),
		Author: extractAuthor(el, text),
		Date:   extractDate(el, text),
	}, true
}

// stripBadge 去掉链接文本开头的小标签，标签必须在 <a> 内部且后面紧跟空白或标题结束
func stripBadge(a *goquery.Selection, title string) string {
	badge := normalizeText(a.Find(badgeSelector).First().Text())
	if badge == "" || utf8.RuneCountInString(badge) > maxBadgeRunes {
		return title
	}
	rest, ok := strings.CutPrefix(title, badge)
	if !ok {
		return title
	}
	if rest != "" && !strings.HasPrefix(rest, " ") {
		return title
	}
	return strings.TrimSpace(rest)
}

func extractAuthor(el *goquery.Selection, text string) string {
	if w := el.Find(writerSelector).First(); w.Length() > 0 {
		if author := normalizeText(w.Text()); author != "" {
			return author
		}
	}
	return authorFromText(text)
}

func extractDate(el *goquery.Selection, text string) string {
	if d := el.Find(dateSelector).First(); d.Length() > 0 {
		if raw := normalizeText(d.Text()); raw != "" {
			return normalizeDateText(raw)
		}
	}
	return dateFromText(text)
}

// resolveURL 按标准相对 URL 规则解析 href；缺失、空或 javascript: 链接一律回退到页面地址
func resolveURL(baseURL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(strings.ToLower(href), "javascript:") {
		return baseURL
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return baseURL
	}
	u, err := url.Parse(href)
	if err != nil {
		return baseURL
	}
	return base.ResolveReference(u).String()
}
