package sources

import "github.com/LJTian/NoticeHub/internal/collector"

func std(url string) collector.Source {
	return collector.Source{URL: url, Class: collector.ClassStandard}
}

func single(name, url string) Group {
	src := std(url)
	return Group{Name: name, Single: &src}
}

// defaultGroups 상명대학교 各公告板
var defaultGroups = []Group{
	single("전체", "https://www.smu.ac.kr/kor/life/notice.do"),
	{Name: "메인공지", Subs: []Entry{
		{"글로벌", std("https://www.smu.ac.kr/kor/life/notice.do?mode=list&srCategoryId1=190")},
		{"진로취업", std("https://www.smu.ac.kr/kor/life/notice.do?mode=list&srCategoryId1=162")},
		{"등록/장학", std("https://www.smu.ac.kr/kor/life/notice.do?mode=list&srCategoryId1=22")},
		{"비교과 일반", std("https://www.smu.ac.kr/kor/life/notice.do?mode=list&srCategoryId1=420")},
	}},
	{Name: "학부(과)/전공", Subs: []Entry{
		{"컴퓨터과학전공", std("https://cs.smu.ac.kr/cs/community/notice.do")},
		{"자유전공학부대학", std("https://sls.smu.ac.kr/sls/community/notice.do")},
		{"역사콘텐츠전공", std("https://www.smu.ac.kr/history/community/notice.do")},
		{"영어교육과", std("https://www.smu.ac.kr/engedu/community/notice.do")},
		{"게임전공", std("https://www.smu.ac.kr/game01/community/notice.do")},
		{"애니메이션전공", std("https://animation.smu.ac.kr/animation/community/notice.do")},
		{"스포츠건강관리전공", std("https://sports.smu.ac.kr/smpe/admission/notice.do")},
		{"경영학부", std("https://smubiz.smu.ac.kr/smubiz/community/notice.do")},
		{"휴먼AI공학전공", std("https://hi.smu.ac.kr/hi/community/notice.do")},
		{"식품영양학전공", std("https://food.smu.ac.kr/foodnutrition/community/notice.do")},
		{"국가안보학과", std("https://ns.smu.ac.kr/sdms/community/notice.do")},
		{"글로벌경영학과", std("https://gbiz.smu.ac.kr/newmajoritb/board/notice.do")},
	}},
	single("SW중심 사업단", "https://swai.smu.ac.kr/bbs/board.php?bo_table=07_01"),
	{Name: "기숙사", Subs: []Entry{
		{"상명 행복생활관", std("https://dormitory.smu.ac.kr/dormi/happy/happy_notice.do")},
		{"스뮤하우스", std("https://dormitory.smu.ac.kr/dormi/smu/smu_notice.do")},
	}},
	single("대학원", "https://grad.smu.ac.kr/grad/board/notice.do"),
	single("공학교육인증센터", "https://icee.smu.ac.kr/icee/community/notice.do"),
	{Name: "학술정보관", Single: &collector.Source{
		URL:   "https://lib.smu.ac.kr/Board?n=notice",
		Class: collector.ClassLibrary,
	}},
}

// Default 内置分组表
func Default() *Catalog {
	c, err := New(defaultGroups)
	if err != nil {
		panic("sources: invalid built-in table: " + err.Error())
	}
	return c
}
