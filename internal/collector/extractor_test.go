package collector

import (
	"fmt"
	"strings"
	"testing"
)

const testBase = "https://a.test/x/notice.do"

func TestExtractUnrecognizedMarkupIsEmpty(t *testing.T) {
	cases := []string{
		"",
		"   ",
		"<html><body><p>점검 중입니다</p></body></html>",
		"<div><a href=\"view.do\">not a board</a>",
		"<<<>>> 깨진 </td></tr> 마크업",
	}
	for _, markup := range cases {
		items := Extract(markup, testBase)
		if items == nil {
			t.Fatalf("Extract(%q) returned nil, want empty slice", markup)
		}
		if len(items) != 0 {
			t.Fatalf("Extract(%q) = %v, want empty", markup, items)
		}
	}
}

func TestExtractBoardTable(t *testing.T) {
	markup := `<table class="board_list"><tbody>
<tr><td>1</td><td class="title"><a href="view.do?id=5">  2024학년도   수강신청 안내 </a></td><td class="writer">학사팀</td><td class="date">2024.03.01</td></tr>
<tr><td>2</td><td class="title">링크 없는 행</td><td class="writer">총무팀</td><td class="date">2024.03.02</td></tr>
<tr><td>3</td><td class="title"><a href="/kor/life/notice.do?mode=view&amp;id=7">장학금 신청</a></td><td data-role="writer">장학팀</td><td data-role="date">24.03.05</td></tr>
</tbody></table>`

	items := Extract(markup, testBase)
	if len(items) != 2 {
		t.Fatalf("expected 2 items (row without link skipped), got %d: %+v", len(items), items)
	}

	want := []Notice{
		{Title: "2024학년도 수강신청 안내", Link: "https://a.test/x/view.do?id=5", Author: "학사팀", Date: "2024-03-01"},
		{Title: "장학금 신청", Link: "https://a.test/kor/life/notice.do?mode=view&id=7", Author: "장학팀", Date: "24.03.05"},
	}
	for i := range want {
		if items[i] != want[i] {
			t.Fatalf("item %d = %+v, want %+v", i, items[i], want[i])
		}
	}
}

func TestExtractCapsCandidatesAt60(t *testing.T) {
	var b strings.Builder
	b.WriteString(`<table class="boardList"><tbody>`)
	for i := 0; i < 75; i++ {
		if i%10 == 0 {
			fmt.Fprintf(&b, `<tr><td>%d</td><td>링크 없음</td></tr>`, i)
			continue
		}
		fmt.Fprintf(&b, `<tr><td>%d</td><td><a href="view.do?id=%d">공지 %d</a></td></tr>`, i, i, i)
	}
	b.WriteString(`</tbody></table>`)

	items := Extract(b.String(), testBase)
	// 前 60 个候选中有 6 行缺少链接
	if len(items) != 54 {
		t.Fatalf("expected 54 items, got %d", len(items))
	}
	if items[0].Title != "공지 1" || items[len(items)-1].Title != "공지 59" {
		t.Fatalf("document order not preserved: first=%q last=%q", items[0].Title, items[len(items)-1].Title)
	}
}

func TestExtractFirstMatchingMatcherWins(t *testing.T) {
	// 页面同时存在无关的布局表格和 ul.board-list，应优先使用 ul.board-list，且不合并
	markup := `<table><tbody><tr><td><a href="/menu">메뉴</a></td></tr></tbody></table>
<ul class="board-list">
  <li><a href="view.do?id=1">첫 번째 공지</a><span class="date">2023/11/02</span></li>
  <li><a href="view.do?id=2">두 번째 공지</a></li>
</ul>`

	items := Extract(markup, testBase)
	if len(items) != 2 {
		t.Fatalf("expected 2 items from ul.board-list, got %d: %+v", len(items), items)
	}
	if items[0].Title != "첫 번째 공지" || items[0].Date != "2023-11-02" {
		t.Fatalf("unexpected first item: %+v", items[0])
	}
}

func TestExtractGenericTbodyFallback(t *testing.T) {
	markup := `<div id="bo_list"><table><tbody>
<tr><td class="td_subject"><a href="./board.php?bo_table=07_01&amp;wr_id=3">SW 특강 안내</a></td><td class="td_datetime">2024-05-10</td></tr>
</tbody></table></div>`

	items := Extract(markup, "https://swai.smu.ac.kr/bbs/board.php?bo_table=07_01")
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].Link != "https://swai.smu.ac.kr/bbs/board.php?bo_table=07_01&wr_id=3" {
		t.Fatalf("unexpected link: %q", items[0].Link)
	}
	if items[0].Date != "2024-05-10" {
		t.Fatalf("unexpected date from text fallback: %q", items[0].Date)
	}
}

func TestExtractStripsLeadingBadge(t *testing.T) {
	markup := `<ul class="board-thumb-wrap">
  <li><a href="view.do?id=1"><span class="badge">공지</span> 기숙사 입사 안내</a></li>
  <li><a href="view.do?id=2"><span class="badge">아주 긴 배지 텍스트는 제거 대상 아님</span> 제목</a></li>
  <li><span class="badge">행사</span><a href="view.do?id=3">제목에 접두어 없음</a></li>
  <li><span class="cate">공지</span><a href="view.do?id=4">공지사항 점검 안내</a></li>
  <li><a href="view.do?id=5"><span class="badge">공지</span>공지사항 게시판 이전</a></li>
</ul>`

	items := Extract(markup, testBase)
	if len(items) != 5 {
		t.Fatalf("expected 5 items, got %d", len(items))
	}
	if items[0].Title != "기숙사 입사 안내" {
		t.Fatalf("badge not stripped: %q", items[0].Title)
	}
	if items[1].Title != "아주 긴 배지 텍스트는 제거 대상 아님 제목" {
		t.Fatalf("long badge should be kept: %q", items[1].Title)
	}
	if items[2].Title != "제목에 접두어 없음" {
		t.Fatalf("title without badge prefix changed: %q", items[2].Title)
	}
	// 链接外部的标签与标题开头文字相同，标题不能被截断
	if items[3].Title != "공지사항 점검 안내" {
		t.Fatalf("badge outside the link must not cut the title: %q", items[3].Title)
	}
	// 标签后没有空白分隔时不视为前缀
	if items[4].Title != "공지공지사항 게시판 이전" {
		t.Fatalf("badge without word boundary should be kept: %q", items[4].Title)
	}
}

func TestExtractTextFallbacks(t *testing.T) {
	markup := `<div class="board-list">
  <dl><dt><a href="view.do?id=9">도서관 휴관 안내</a></dt><dd>글쓴이 학술정보팀 작성일: 2024.03.01 조회 12</dd></dl>
  <dl><dt><a href="view.do?id=10">전자저널 구독</a></dt><dd>등록일 2024.2.7</dd></dl>
  <dl><dt><a href="view.do?id=11">날짜 없음</a></dt><dd>조회 3</dd></dl>
</div>`

	items := Extract(markup, testBase)
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	if items[0].Author != "학술정보팀" || items[0].Date != "2024-03-01" {
		t.Fatalf("unexpected fallback fields: %+v", items[0])
	}
	if items[1].Author != "" || items[1].Date != "2024-02-07" {
		t.Fatalf("unexpected fallback fields: %+v", items[1])
	}
	if items[2].Date != "" {
		t.Fatalf("expected empty date, got %q", items[2].Date)
	}
}

func TestExtractMissingHrefResolvesToBase(t *testing.T) {
	markup := `<ul class="board-list"><li><a>제목만 있는 항목</a></li><li><a href="javascript:fnView('12')">스크립트 링크</a></li></ul>`
	items := Extract(markup, testBase)
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	for _, it := range items {
		if it.Link != testBase {
			t.Fatalf("link = %q, want base %q", it.Link, testBase)
		}
	}
}

func TestCustomMatchers(t *testing.T) {
	e := NewExtractor(SelectorMatcher("news", "div.news-item"))
	markup := `<div class="news-item"><a href="a.do">A</a></div><table class="board_list"><tbody><tr><td><a href="b.do">B</a></td></tr></tbody></table>`
	items := e.Extract(markup, testBase)
	if len(items) != 1 || items[0].Title != "A" {
		t.Fatalf("custom matcher not used: %+v", items)
	}
}

func TestResolveURL(t *testing.T) {
	tests := []struct {
		name string
		href string
		want string
	}{
		{"relative", "view.do?id=5", "https://a.test/x/view.do?id=5"},
		{"empty", "", testBase},
		{"blank", "   ", testBase},
		{"root relative", "/kor/view.do", "https://a.test/kor/view.do"},
		{"parent", "../y/view.do", "https://a.test/y/view.do"},
		{"absolute", "https://b.test/z", "https://b.test/z"},
		{"query only", "?mode=view&id=3", "https://a.test/x/notice.do?mode=view&id=3"},
		{"javascript", "javascript:void(0)", testBase},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolveURL(testBase, tt.href); got != tt.want {
				t.Errorf("resolveURL(%q) = %q, want %q", tt.href, got, tt.want)
			}
		})
	}
}
