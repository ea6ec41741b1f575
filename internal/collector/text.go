package collector

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	// 글쓴이 홍길동 / 작성자: 홍길동，取标签后的第一个词
	authorLabelRe = regexp.MustCompile(`(?:글쓴이|작성자)\s*[:：]?\s*(\S+)`)

	// 按优先级：작성일 > 게시일/등록일 > 裸日期
	writtenDateRe   = regexp.MustCompile(`작성일\s*[:：]?\s*(\d{4})\s*[./-]\s*(\d{1,2})\s*[./-]\s*(\d{1,2})`)
	publishedDateRe = regexp.MustCompile(`(?:게시일|등록일)\s*[:：]?\s*(\d{4})\s*[./-]\s*(\d{1,2})\s*[./-]\s*(\d{1,2})`)
	bareDateRe      = regexp.MustCompile(`\b(\d{4})[./-](\d{1,2})[./-](\d{1,2})\b`)
)

// normalizeText 折叠空白并规范为合法 UTF-8（部分学院页面混有 EUC-KR 残片）
func normalizeText(s string) string {
	s = strings.ToValidUTF8(s, "\uFFFD")
	return strings.Join(strings.Fields(s), " ")
}

// fieldLabels 同一行里其他字段的标签；作者为空时正则会把它们当成作者
var fieldLabels = []string{"조회", "작성일", "등록일", "게시일", "첨부", "글쓴이", "작성자"}

func authorFromText(text string) string {
	m := authorLabelRe.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	for _, label := range fieldLabels {
		if strings.HasPrefix(m[1], label) {
			return ""
		}
	}
	return m[1]
}

func dateFromText(text string) string {
	for _, re := range []*regexp.Regexp{writtenDateRe, publishedDateRe, bareDateRe} {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			if d, ok := formatDate(m[1], m[2], m[3]); ok {
				return d
			}
		}
	}
	return ""
}

// normalizeDateText 识别出日期时规范为 YYYY-MM-DD，否则原样返回
func normalizeDateText(raw string) string {
	for _, m := range bareDateRe.FindAllStringSubmatch(raw, -1) {
		if d, ok := formatDate(m[1], m[2], m[3]); ok {
			return d
		}
	}
	return raw
}

func formatDate(y, m, d string) (string, bool) {
	month, err := strconv.Atoi(m)
	if err != nil || month < 1 || month > 12 {
		return "", false
	}
	day, err := strconv.Atoi(d)
	if err != nil || day < 1 || day > 31 {
		return "", false
	}
	return fmt.Sprintf("%s-%02d-%02d", y, month, day), true
}
