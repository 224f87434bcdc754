package ai

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// IntentSynthesizer assembles a GROUP BY query from three independent
// keyword axes: what to group by, which period to filter, and what to
// measure. It only produces a candidate when a grouping dimension is
// recognized; a measure or period alone is not enough to guess intent.
type IntentSynthesizer struct{}

func NewIntentSynthesizer() *IntentSynthesizer { return &IntentSynthesizer{} }

type measureRule struct {
	keywords []string
	expr     string
	label    string
}

var measureRules = []measureRule{
	{[]string{"재료비", "자재비"}, "SUM(R7_재료비_금액)", "재료비"},
	{[]string{"노무비", "인건비"}, "SUM(R8_노무비_금액)", "노무비"},
	{[]string{"경비"}, "SUM(R9_경비_금액)", "경비"},
	{[]string{"작업수", "작업 수", "항목수"}, "COUNT(*)", "작업수"},
}

var yearPattern = regexp.MustCompile(`20\d{2}`)
var monthPattern = regexp.MustCompile(`(\d{1,2})월`)

func containsAny(s string, keys ...string) bool {
	for _, k := range keys {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

// detectGroup resolves the grouping axis. "층" alone is ambiguous
// ("3층" names a place, not a grouping), so bare 층 needs an
// accompanying 별 to count.
func detectGroup(q string) (expr, label, filterCol string, ok bool) {
	switch {
	case containsAny(q, "업체", "하도급", "협력사"):
		return "WHO1_하도급업체", "업체", "WHO1_하도급업체", true
	case containsAny(q, "공종", "공사"):
		return "HOW2_대공종", "공종", "HOW2_대공종", true
	case containsAny(q, "동별", "건물"):
		return "WHERE2_동", "동", "WHERE2_동", true
	case strings.Contains(q, "층별"),
		strings.Contains(q, "층") && strings.Contains(q, "별"):
		return "WHERE3_층", "층", "WHERE3_층", true
	case strings.Contains(q, "월별"):
		return "SUBSTR(WHEN2종료일,1,7)", "월", "WHEN2종료일", true
	}
	return "", "", "", false
}

// detectPeriod resolves the period axis to an inclusive YYYY-MM range
// on the end-date column, or ok=false when the question names no
// period at all.
func detectPeriod(q string, now time.Time) (r monthRange, desc string, ok bool) {
	year := thisYear(now)
	if m := yearPattern.FindString(q); m != "" {
		year = m
	}

	switch {
	case containsAny(q, "상반기", "전반기") || (strings.Contains(q, "1월") && strings.Contains(q, "6월")):
		return monthRange{year + "-01", year + "-06"}, year + "년 상반기", true
	case containsAny(q, "하반기", "후반기") || (strings.Contains(q, "7월") && strings.Contains(q, "12월")):
		return monthRange{year + "-07", year + "-12"}, year + "년 하반기", true
	case containsAny(q, "1분기", "1사분기"):
		return monthRange{year + "-01", year + "-03"}, year + "년 1분기", true
	case containsAny(q, "2분기", "2사분기"):
		return monthRange{year + "-04", year + "-06"}, year + "년 2분기", true
	case containsAny(q, "3분기", "3사분기"):
		return monthRange{year + "-07", year + "-09"}, year + "년 3분기", true
	case containsAny(q, "4분기", "4사분기"):
		return monthRange{year + "-10", year + "-12"}, year + "년 4분기", true
	}

	if m := monthPattern.FindStringSubmatch(q); m != nil {
		mm := m[1]
		if len(mm) == 1 {
			mm = "0" + mm
		}
		return monthRange{year + "-" + mm, year + "-" + mm}, fmt.Sprintf("%s년 %s월", year, m[1]), true
	}
	return monthRange{}, "", false
}

func detectMeasure(q string) (expr, label string) {
	for _, rule := range measureRules {
		for _, k := range rule.keywords {
			if strings.Contains(q, k) {
				return rule.expr, rule.label
			}
		}
	}
	return "SUM(R10_합계_금액)", "합계금액"
}

// Synthesize builds a grouped aggregation candidate from the normalized
// question, or returns nil when no grouping dimension is recognized.
func (s *IntentSynthesizer) Synthesize(question string, now time.Time) *Candidate {
	groupExpr, groupLabel, filterCol, ok := detectGroup(question)
	if !ok {
		return nil
	}

	measureExpr, measureLabel := detectMeasure(question)

	var conds []string
	if filterCol != "" {
		conds = append(conds, fmt.Sprintf("%s IS NOT NULL AND %s != ''", filterCol, filterCol))
	}
	periodDesc := ""
	if r, desc, ok := detectPeriod(question, now); ok {
		conds = append(conds, fmt.Sprintf("SUBSTR(WHEN2종료일,1,7) >= '%s' AND SUBSTR(WHEN2종료일,1,7) <= '%s'", r.Start, r.End))
		periodDesc = desc + " "
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	sql := fmt.Sprintf(
		"SELECT %s AS %s, COUNT(*) AS 작업수, %s AS %s FROM evms%s GROUP BY %s ORDER BY %s DESC LIMIT 20",
		groupExpr, groupLabel, measureExpr, measureLabel, where, groupExpr, measureLabel)

	summaryPrefix := ""
	if periodDesc != "" {
		summaryPrefix = periodDesc + "기간 동안 "
	}

	return &Candidate{
		SQL:   sql,
		Title: fmt.Sprintf("%s%s별 %s 현황", periodDesc, groupLabel, measureLabel),
		Summary: fmt.Sprintf("%s%s별로 %s을 집계한 결과입니다. 금액이 큰 순서로 정렬되어 있습니다.",
			summaryPrefix, groupLabel, measureLabel),
		ChartType:   ChartHorizontalBar,
		ChartConfig: &ChartConfig{LabelColumn: 0, DataColumns: []int{2}, DataLabels: []string{measureLabel}},
		QueryType:   QueryTypeData,
		Provenance:  ProvenanceSynthesized,
	}
}

// DefaultCandidate is the last-resort project summary used when no
// tier produced anything for the question.
func DefaultCandidate() *Candidate {
	return &Candidate{
		SQL: `SELECT '총 항목 수' AS 항목, COUNT(*) AS 값 FROM evms UNION ALL SELECT '총 예산(BAC)', SUM(R10_합계_금액) FROM evms UNION ALL SELECT '투입 업체 수', COUNT(DISTINCT WHO1_하도급업체) FROM evms UNION ALL SELECT '평균 실행률(%)', ROUND(AVG("WHEN4_실행률(%)") * 100, 1) FROM evms WHERE "WHEN4_실행률(%)" IS NOT NULL`,
		Title:      "프로젝트 전체 요약",
		Summary:    "질문에 정확히 매칭되는 프리셋이 없어 프로젝트 전체 요약을 제공합니다. API 키를 입력하면 자유로운 질문이 가능합니다.",
		ChartType:  ChartNone,
		QueryType:  QueryTypeData,
		Provenance: ProvenanceDefault,
	}
}
