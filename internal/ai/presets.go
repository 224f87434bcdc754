package ai

import (
	"fmt"
	"time"
)

// PresetEntry is one curated (question, query, metadata) tuple. Query is
// a pure function of "now" with no other state, so relative-date phrases
// in the catalog resolve at match time.
type PresetEntry struct {
	ID          string                    `json:"id"`
	CategoryID  string                    `json:"categoryId"`
	Text        string                    `json:"text"`
	Tag         string                    `json:"tag"`
	Query       func(now time.Time) string `json:"-"`
	Title       string                    `json:"title"`
	Summary     string                    `json:"summary"`
	ChartType   ChartType                 `json:"chartType"`
	ChartConfig *ChartConfig              `json:"chartConfig,omitempty"`
	Kpis        []KpiSpec                 `json:"kpis,omitempty"`
}

// PresetCategory groups curated questions for the caller's UI.
type PresetCategory struct {
	ID      string        `json:"id"`
	Label   string        `json:"label"`
	Icon    string        `json:"icon"`
	Color   string        `json:"color"`
	Desc    string        `json:"desc"`
	Entries []PresetEntry `json:"questions"`
}

func staticQuery(sql string) func(time.Time) string {
	return func(time.Time) string { return sql }
}

// PresetCategories returns the curated question catalog. The catalog is
// immutable after startup; iteration order is declaration order, which
// the matcher relies on for a stable tie-break.
func PresetCategories() []PresetCategory {
	return []PresetCategory{
		{
			ID: "cost", Label: "원가/기성 관리", Icon: "fa-coins", Color: "#3B82F6",
			Desc: "돈의 흐름과 관련된 질문",
			Entries: []PresetEntry{
				{
					ID: "cost-billing-total", CategoryID: "cost",
					Text: "이번 달(금월) 청구될 예상 기성 총액은 얼마인가?", Tag: "단기 자금",
					Query: staticQuery(`SELECT '예상 기성액' AS 구분, SUM(R10_합계_금액 * COALESCE("WHEN4_실행률(%)", 0)) AS 금액 FROM evms`),
					Title: "금월 예상 기성 총액",
					Summary: "실행률 기반으로 계산한 현재까지의 누적 기성액입니다. 실행률이 입력된 항목의 합계금액 × 실행률로 산출합니다.",
					ChartType: ChartNone,
					Kpis: []KpiSpec{{Label: "예상 기성액", Column: 1, Unit: "원", Icon: "fa-coins"}},
				},
				{
					ID: "cost-vendor-quarter", CategoryID: "cost",
					Text: "금빛건설㈜의 이번 분기 기성 예정 금액을 알려줘.", Tag: "업체별 기성",
					Query: func(now time.Time) string {
						q := thisQuarterRange(now)
						return fmt.Sprintf("SELECT WHO1_하도급업체 AS 업체, SUM(R10_합계_금액) AS 기성예정액 FROM evms WHERE WHO1_하도급업체 LIKE '%%금빛건설%%' AND SUBSTR(WHEN2종료일,1,7) >= '%s' AND SUBSTR(WHEN2종료일,1,7) <= '%s' GROUP BY WHO1_하도급업체", q.Start, q.End)
					},
					Title: "금빛건설㈜ 분기 기성 예정 금액",
					Summary: "금빛건설㈜의 이번 분기 종료 예정 작업에 대한 합계금액입니다.",
					ChartType: ChartNone,
					Kpis: []KpiSpec{{Label: "기성 예정액", Column: 1, Unit: "원", Icon: "fa-building"}},
				},
				{
					ID: "cost-frame-budget", CategoryID: "cost",
					Text: "본관동 골조공사의 총 예정 원가는 얼마인가?", Tag: "공종별 원가",
					Query: staticQuery("SELECT WHERE2_동 AS 동, HOW2_대공종 AS 공종, SUM(R10_합계_금액) AS 총원가, SUM(R7_재료비_금액) AS 재료비, SUM(R8_노무비_금액) AS 노무비, SUM(R9_경비_금액) AS 경비 FROM evms WHERE WHERE2_동 LIKE '%본관%' AND HOW2_대공종 LIKE '%골조%' GROUP BY WHERE2_동, HOW2_대공종"),
					Title: "본관동 골조공사 예정 원가",
					Summary: "본관동 골조공사의 비목별 원가 내역입니다. 재료비, 노무비, 경비로 구분됩니다.",
					ChartType: ChartPie,
					ChartConfig: &ChartConfig{LabelColumn: -1, DataColumns: []int{3, 4, 5}, DataLabels: []string{"재료비", "노무비", "경비"}},
				},
				{
					ID: "cost-labor-share", CategoryID: "cost",
					Text: "전체 공사비 중 노무비가 차지하는 비중은 몇 %인가?", Tag: "비목별 분석",
					Query: staticQuery("SELECT '재료비' AS 비목, SUM(R7_재료비_금액) AS 금액 FROM evms UNION ALL SELECT '노무비', SUM(R8_노무비_금액) FROM evms UNION ALL SELECT '경비', SUM(R9_경비_금액) FROM evms"),
					Title: "비목별 공사비 비중 분석",
					Summary: "전체 공사비를 재료비, 노무비, 경비로 분류한 비중입니다. 건설 프로젝트에서 노무비 비중은 통상 30~40%입니다.",
					ChartType: ChartDoughnut,
					ChartConfig: &ChartConfig{LabelColumn: 0, DataColumns: []int{1}, DataLabels: []string{"금액"}},
				},
				{
					ID: "cost-remaining-budget", CategoryID: "cost",
					Text: "현재까지 집행된 금액을 제외한 잔여 공사비는 얼마인가?", Tag: "잔여 예산",
					Query: staticQuery(`SELECT SUM(R10_합계_금액) AS 총예산, SUM(R10_합계_금액 * COALESCE("WHEN4_실행률(%)", 0)) AS 집행액, SUM(R10_합계_금액) - SUM(R10_합계_금액 * COALESCE("WHEN4_실행률(%)", 0)) AS 잔여액 FROM evms`),
					Title: "잔여 공사비 현황",
					Summary: "전체 예산(BAC)에서 실행률 기반 집행액을 차감한 잔여 공사비입니다.",
					ChartType: ChartNone,
					Kpis: []KpiSpec{
						{Label: "총 예산", Column: 0, Unit: "원", Icon: "fa-wallet"},
						{Label: "집행액", Column: 1, Unit: "원", Icon: "fa-money-bill-transfer"},
						{Label: "잔여액", Column: 2, Unit: "원", Icon: "fa-piggy-bank"},
					},
				},
				{
					ID: "cost-next-half-monthly", CategoryID: "cost",
					Text: "내년 상반기(1월~6월)에 투입될 예산 계획을 월별로 보여줘.", Tag: "특정 기간",
					Query: func(now time.Time) string {
						ny := now.Year() + 1
						return fmt.Sprintf("SELECT SUBSTR(WHEN2종료일,1,7) AS 월, SUM(R10_합계_금액) AS 계획예산 FROM evms WHERE SUBSTR(WHEN2종료일,1,7) >= '%d-01' AND SUBSTR(WHEN2종료일,1,7) <= '%d-06' GROUP BY SUBSTR(WHEN2종료일,1,7) ORDER BY 월", ny, ny)
					},
					Title: "내년 상반기 월별 예산 계획",
					Summary: "내년 1~6월까지의 월별 예산 투입 계획입니다. 각 월의 종료 예정 작업 비용을 합산했습니다.",
					ChartType: ChartBar,
					ChartConfig: &ChartConfig{LabelColumn: 0, DataColumns: []int{1}, DataLabels: []string{"계획 예산"}},
				},
			},
		},
		{
			ID: "schedule", Label: "공정/일정 관리", Icon: "fa-calendar-days", Color: "#8B5CF6",
			Desc: "시간 준수와 관련된 질문",
			Entries: []PresetEntry{
				{
					ID: "sched-this-week", CategoryID: "schedule",
					Text: "이번 주에 진행 예정인 주요 작업 리스트를 보여줘.", Tag: "금주 작업",
					Query: func(now time.Time) string {
						w := weekRange(now)
						return fmt.Sprintf("SELECT WHERE2_동 AS 동, HOW2_대공종 AS 공종, HOW3_작업명 AS 작업명, WHEN1_시작일, WHEN2종료일, WHO1_하도급업체 AS 업체, R10_합계_금액 AS 금액 FROM evms WHERE WHEN1_시작일 <= '%s' AND WHEN2종료일 >= '%s' ORDER BY R10_합계_금액 DESC LIMIT 30", w.End, w.Start)
					},
					Title: "금주 진행 예정 주요 작업",
					Summary: "이번 주에 진행 중이거나 시작/종료 예정인 작업 리스트입니다.",
					ChartType: ChartNone,
				},
				{
					ID: "sched-successors", CategoryID: "schedule",
					Text: "지하층 골조공사가 끝나고 바로 시작돼야 할 후속 공종은 무엇인가?", Tag: "선/후행",
					Query: staticQuery("SELECT DISTINCT HOW2_대공종 AS 후속공종, HOW3_작업명 AS 작업명, WHEN1_시작일, WHEN2종료일, WHO1_하도급업체 AS 업체 FROM evms WHERE WHERE3_층 LIKE '%B%' AND WHEN1_시작일 > (SELECT MAX(WHEN2종료일) FROM evms WHERE WHERE3_층 LIKE '%B%' AND HOW2_대공종 LIKE '%골조%') ORDER BY WHEN1_시작일 LIMIT 20"),
					Title: "지하층 골조공사 후속 공종",
					Summary: "지하층 골조공사 종료 이후 시작되는 후속 공종 리스트입니다.",
					ChartType: ChartNone,
				},
				{
					ID: "sched-milestone", CategoryID: "schedule",
					Text: "본관동의 골조공사 완료 예정일(Milestone)은 언제인가?", Tag: "마일스톤",
					Query: staticQuery("SELECT WHERE2_동 AS 동, HOW2_대공종 AS 공종, MIN(WHEN1_시작일) AS 시작일, MAX(WHEN2종료일) AS 완료예정일, COUNT(*) AS 작업수, SUM(R10_합계_금액) AS 총금액 FROM evms WHERE WHERE2_동 LIKE '%본관%' AND HOW2_대공종 LIKE '%골조%' GROUP BY WHERE2_동, HOW2_대공종"),
					Title: "본관동 골조공사 마일스톤",
					Summary: "본관동 골조공사의 시작일과 완료 예정일입니다.",
					ChartType: ChartNone,
					Kpis: []KpiSpec{{Label: "완료 예정일", Column: 3, Unit: "", Icon: "fa-flag-checkered"}},
				},
				{
					ID: "sched-vendor-window", CategoryID: "schedule",
					Text: "태양토건㈜은 언제 현장에 투입되어 언제 철수하는가?", Tag: "업체 일정",
					Query: staticQuery("SELECT WHO1_하도급업체 AS 업체, MIN(WHEN1_시작일) AS 투입일, MAX(WHEN2종료일) AS 철수일, COUNT(*) AS 작업수, SUM(R10_합계_금액) AS 계약금액 FROM evms WHERE WHO1_하도급업체 LIKE '%태양토건%' GROUP BY WHO1_하도급업체"),
					Title: "태양토건㈜ 현장 투입 기간",
					Summary: "태양토건㈜의 현장 투입일과 철수일, 담당 작업 수 및 계약 금액입니다.",
					ChartType: ChartNone,
					Kpis: []KpiSpec{
						{Label: "투입일", Column: 1, Unit: "", Icon: "fa-right-to-bracket"},
						{Label: "철수일", Column: 2, Unit: "", Icon: "fa-right-from-bracket"},
						{Label: "계약금액", Column: 4, Unit: "원", Icon: "fa-coins"},
					},
				},
				{
					ID: "sched-delayed", CategoryID: "schedule",
					Text: "현재 계획 대비 공정이 지연되고 있는 작업이 있는가?", Tag: "공기 지연",
					Query: func(now time.Time) string {
						return fmt.Sprintf(`SELECT WHERE2_동 AS 동, HOW2_대공종 AS 공종, HOW3_작업명 AS 작업명, WHEN2종료일 AS 종료예정, "WHEN4_실행률(%%)" AS 실행률, WHO1_하도급업체 AS 업체, R10_합계_금액 AS 금액 FROM evms WHERE WHEN2종료일 < '%s' AND ("WHEN4_실행률(%%)" IS NULL OR "WHEN4_실행률(%%)" < 1) AND WHEN2종료일 IS NOT NULL AND WHEN2종료일 != '' ORDER BY R10_합계_금액 DESC LIMIT 30`, today(now))
					},
					Title: "공정 지연 작업 리스트",
					Summary: "종료 예정일이 지났으나 실행률이 100% 미만인 작업입니다. 금액 순으로 정렬되어 중요도가 높은 작업이 상위에 표시됩니다.",
					ChartType: ChartNone,
				},
				{
					ID: "sched-busiest-march", CategoryID: "schedule",
					Text: "2026년 3월 기준으로 가장 바쁠 것으로 예상되는 공종은?", Tag: "특정 시점",
					Query: staticQuery("SELECT HOW2_대공종 AS 공종, COUNT(*) AS 작업수, SUM(R10_합계_금액) AS 총금액 FROM evms WHERE WHEN1_시작일 <= '2026-03-31' AND WHEN2종료일 >= '2026-03-01' GROUP BY HOW2_대공종 ORDER BY 작업수 DESC LIMIT 10"),
					Title: "2026년 3월 최다 작업 공종",
					Summary: "2026년 3월에 진행 중인 작업이 가장 많은 공종입니다.",
					ChartType: ChartHorizontalBar,
					ChartConfig: &ChartConfig{LabelColumn: 0, DataColumns: []int{1}, DataLabels: []string{"작업 수"}},
				},
			},
		},
		{
			ID: "material", Label: "자재/물량 관리", Icon: "fa-boxes-stacked", Color: "#F59E0B",
			Desc: "자원 조달과 관련된 질문",
			Entries: []PresetEntry{
				{
					ID: "mat-next-month", CategoryID: "material",
					Text: "다음 달에 필요한 레미콘과 철근의 총 소요량은?", Tag: "주요 자재",
					Query: func(now time.Time) string {
						nm := nextMonth(now)
						return fmt.Sprintf("SELECT HOW4_품명 AS 품명, R1_단위 AS 단위, SUM(R2_수량) AS 소요량, SUM(R10_합계_금액) AS 금액 FROM evms WHERE (HOW4_품명 LIKE '%%레미콘%%' OR HOW4_품명 LIKE '%%콘크리트%%' OR HOW4_품명 LIKE '%%철근%%') AND SUBSTR(WHEN1_시작일,1,7) <= '%s' AND SUBSTR(WHEN2종료일,1,7) >= '%s' GROUP BY HOW4_품명, R1_단위 ORDER BY 금액 DESC", nm, nm)
					},
					Title: "다음 달 레미콘/철근 소요량",
					Summary: "다음 달 시공 예정인 레미콘과 철근의 총 소요량 및 예상 금액입니다.",
					ChartType: ChartBar,
					ChartConfig: &ChartConfig{LabelColumn: 0, DataColumns: []int{3}, DataLabels: []string{"금액"}},
				},
				{
					ID: "mat-rebar-peak", CategoryID: "material",
					Text: "철근(SD500, D22)이 가장 많이 들어가는 시기는 언제인가?", Tag: "투입 시기",
					Query: staticQuery("SELECT SUBSTR(WHEN1_시작일,1,7) AS 월, SUM(R2_수량) AS 물량, SUM(R10_합계_금액) AS 금액 FROM evms WHERE HOW4_품명 LIKE '%철근%' GROUP BY SUBSTR(WHEN1_시작일,1,7) ORDER BY 물량 DESC LIMIT 12"),
					Title: "월별 철근 투입량 현황",
					Summary: "철근 물량이 가장 많이 투입되는 월을 기준으로 정렬했습니다.",
					ChartType: ChartBar,
					ChartConfig: &ChartConfig{LabelColumn: 0, DataColumns: []int{1}, DataLabels: []string{"물량"}},
				},
				{
					ID: "mat-floor-concrete", CategoryID: "material",
					Text: "본관동 3층 바닥 타설에 필요한 콘크리트 물량은 얼마인가?", Tag: "공간별 물량",
					Query: staticQuery("SELECT WHERE2_동 AS 동, WHERE3_층 AS 층, HOW4_품명 AS 품명, R1_단위 AS 단위, SUM(R2_수량) AS 물량, SUM(R10_합계_금액) AS 금액 FROM evms WHERE WHERE2_동 LIKE '%본관%' AND WHERE3_층 LIKE '%3%' AND (HOW4_품명 LIKE '%콘크리트%' OR HOW4_품명 LIKE '%레미콘%') GROUP BY WHERE2_동, WHERE3_층, HOW4_품명, R1_단위"),
					Title: "본관동 3층 콘크리트 물량",
					Summary: "본관동 3층에 필요한 콘크리트 관련 자재 물량입니다.",
					ChartType: ChartNone,
				},
				{
					ID: "mat-top5", CategoryID: "material",
					Text: "전체 자재 중 금액 비중이 가장 높은 상위 5개 품목은?", Tag: "고가 자재",
					Query: staticQuery("SELECT HOW4_품명 AS 품명, SUM(R10_합계_금액) AS 총금액, ROUND(SUM(R10_합계_금액) * 100.0 / (SELECT SUM(R10_합계_금액) FROM evms), 2) AS 비중 FROM evms GROUP BY HOW4_품명 ORDER BY 총금액 DESC LIMIT 5"),
					Title: "금액 상위 5대 자재",
					Summary: "전체 공사비에서 금액 비중이 가장 높은 상위 5개 품목입니다. ABC 분석의 A 그룹에 해당합니다.",
					ChartType: ChartHorizontalBar,
					ChartConfig: &ChartConfig{LabelColumn: 0, DataColumns: []int{1}, DataLabels: []string{"총 금액"}},
				},
				{
					ID: "mat-vendor-materials", CategoryID: "material",
					Text: "금빛건설㈜이 사용하는 주요 자재 내역을 보여줘.", Tag: "업체별 자재",
					Query: staticQuery("SELECT HOW4_품명 AS 품명, R1_단위 AS 단위, SUM(R2_수량) AS 물량, SUM(R10_합계_금액) AS 금액 FROM evms WHERE WHO1_하도급업체 LIKE '%금빛건설%' GROUP BY HOW4_품명, R1_단위 ORDER BY 금액 DESC LIMIT 15"),
					Title: "금빛건설㈜ 주요 자재",
					Summary: "금빛건설㈜이 사용하는 자재를 금액 순으로 정렬한 내역입니다.",
					ChartType: ChartBar,
					ChartConfig: &ChartConfig{LabelColumn: 0, DataColumns: []int{3}, DataLabels: []string{"금액"}},
				},
				{
					ID: "mat-next-quarter-cost", CategoryID: "material",
					Text: "다음 분기에 자재비 지출이 가장 큰 달은 언제인가?", Tag: "자재비",
					Query: func(now time.Time) string {
						nq := nextQuarterRange(now)
						return fmt.Sprintf("SELECT SUBSTR(WHEN2종료일,1,7) AS 월, SUM(R7_재료비_금액) AS 자재비 FROM evms WHERE SUBSTR(WHEN2종료일,1,7) >= '%s' AND SUBSTR(WHEN2종료일,1,7) <= '%s' GROUP BY SUBSTR(WHEN2종료일,1,7) ORDER BY 월", nq.Start, nq.End)
					},
					Title: "다음 분기 월별 자재비",
					Summary: "다음 분기의 월별 자재비 지출 계획입니다.",
					ChartType: ChartBar,
					ChartConfig: &ChartConfig{LabelColumn: 0, DataColumns: []int{1}, DataLabels: []string{"자재비"}},
				},
			},
		},
		{
			ID: "org", Label: "조직/업체 관리", Icon: "fa-building-user", Color: "#10B981",
			Desc: "업체 관리 및 인력 투입 관련 질문",
			Entries: []PresetEntry{
				{
					ID: "org-active-today", CategoryID: "org",
					Text: "현재(오늘) 현장에 투입되어 있는 모든 하도급 업체 리스트는?", Tag: "투입 현황",
					Query: func(now time.Time) string {
						t := today(now)
						return fmt.Sprintf("SELECT WHO1_하도급업체 AS 업체, COUNT(*) AS 작업수, SUM(R10_합계_금액) AS 계약규모 FROM evms WHERE WHEN1_시작일 <= '%s' AND WHEN2종료일 >= '%s' AND WHO1_하도급업체 IS NOT NULL AND WHO1_하도급업체 != '' GROUP BY WHO1_하도급업체 ORDER BY 계약규모 DESC", t, t)
					},
					Title: "현재 투입 하도급 업체",
					Summary: "오늘 기준으로 현장에서 작업 중인 하도급 업체 리스트입니다.",
					ChartType: ChartHorizontalBar,
					ChartConfig: &ChartConfig{LabelColumn: 0, DataColumns: []int{2}, DataLabels: []string{"계약 규모"}},
				},
				{
					ID: "org-top3", CategoryID: "org",
					Text: "전체 공사비 중 계약 금액이 가장 큰 업체 Top 3는?", Tag: "계약 비중",
					Query: staticQuery("SELECT WHO1_하도급업체 AS 업체, SUM(R10_합계_금액) AS 계약금액, ROUND(SUM(R10_합계_금액) * 100.0 / (SELECT SUM(R10_합계_금액) FROM evms), 1) AS 비중 FROM evms WHERE WHO1_하도급업체 IS NOT NULL AND WHO1_하도급업체 != '' GROUP BY WHO1_하도급업체 ORDER BY 계약금액 DESC LIMIT 3"),
					Title: "계약금액 상위 3개 업체",
					Summary: "전체 공사비 기준 계약 금액이 가장 큰 상위 3개 업체입니다.",
					ChartType: ChartDoughnut,
					ChartConfig: &ChartConfig{LabelColumn: 0, DataColumns: []int{1}, DataLabels: []string{"계약 금액"}},
				},
				{
					ID: "org-mechanical", CategoryID: "org",
					Text: "기계설비 공사를 담당하는 업체들은 어디인가?", Tag: "공종별 업체",
					Query: staticQuery("SELECT WHO1_하도급업체 AS 업체, HOW2_대공종 AS 담당공종, COUNT(*) AS 작업수, SUM(R10_합계_금액) AS 금액 FROM evms WHERE HOW1_공사 LIKE '%기계%' AND WHO1_하도급업체 IS NOT NULL GROUP BY WHO1_하도급업체, HOW2_대공종 ORDER BY 금액 DESC"),
					Title: "기계설비 공사 담당 업체",
					Summary: "기계설비 공사를 수행하는 업체별 담당 공종과 계약 규모입니다.",
					ChartType: ChartBar,
					ChartConfig: &ChartConfig{LabelColumn: 0, DataColumns: []int{3}, DataLabels: []string{"금액"}},
				},
				{
					ID: "org-labor-next-month", CategoryID: "org",
					Text: "다음 달에 노무비(출력 인원) 투입이 가장 많은 업체는 어디인가?", Tag: "노무비/출력",
					Query: func(now time.Time) string {
						nm := nextMonth(now)
						return fmt.Sprintf("SELECT WHO1_하도급업체 AS 업체, SUM(R8_노무비_금액) AS 노무비 FROM evms WHERE SUBSTR(WHEN1_시작일,1,7) <= '%s' AND SUBSTR(WHEN2종료일,1,7) >= '%s' AND WHO1_하도급업체 IS NOT NULL GROUP BY WHO1_하도급업체 ORDER BY 노무비 DESC LIMIT 10", nm, nm)
					},
					Title: "다음 달 노무비 상위 업체",
					Summary: "다음 달에 노무비 투입이 많은 업체 순위입니다.",
					ChartType: ChartHorizontalBar,
					ChartConfig: &ChartConfig{LabelColumn: 0, DataColumns: []int{1}, DataLabels: []string{"노무비"}},
				},
				{
					ID: "org-first-floor", CategoryID: "org",
					Text: "현재 지상 1층에서 작업 중인 업체는 누구인가?", Tag: "작업 구역",
					Query: func(now time.Time) string {
						t := today(now)
						return fmt.Sprintf("SELECT WHO1_하도급업체 AS 업체, HOW2_대공종 AS 공종, HOW3_작업명 AS 작업명, WHEN1_시작일, WHEN2종료일, R10_합계_금액 AS 금액 FROM evms WHERE WHERE3_층 LIKE '%%1F%%' AND WHERE3_층 NOT LIKE '%%B1F%%' AND WHEN1_시작일 <= '%s' AND WHEN2종료일 >= '%s' ORDER BY 금액 DESC", t, t)
					},
					Title: "지상 1층 작업 중 업체",
					Summary: "현재 지상 1층에서 작업 중인 업체와 수행 작업 리스트입니다. 안전관리에 활용됩니다.",
					ChartType: ChartNone,
				},
			},
		},
		{
			ID: "insight", Label: "생산성/복합 분석", Icon: "fa-wand-magic-sparkles", Color: "#EC4899",
			Desc: "6W1H 조합 의사결정 분석 (CUBE Insight)",
			Entries: []PresetEntry{
				{
					ID: "ins-floor-cost", CategoryID: "insight",
					Text: "단위 면적당 공사비가 가장 많이 투입되는 층(Floor)은 어디인가?", Tag: "공간 × 비용",
					Query: staticQuery("SELECT WHERE3_층 AS 층, COUNT(*) AS 항목수, SUM(R10_합계_금액) AS 총공사비, SUM(R2_수량) AS 총물량 FROM evms WHERE WHERE3_층 IS NOT NULL AND WHERE3_층 != '' GROUP BY WHERE3_층 ORDER BY 총공사비 DESC"),
					Title: "층별 공사비 분석",
					Summary: "각 층별 총 공사비를 비교한 결과입니다. 공사비가 높은 층은 복잡도가 높거나 마감 수준이 높은 구역입니다.",
					ChartType: ChartBar,
					ChartConfig: &ChartConfig{LabelColumn: 0, DataColumns: []int{2}, DataLabels: []string{"총 공사비"}},
				},
				{
					ID: "ins-longest-vendor", CategoryID: "insight",
					Text: "공사 기간이 가장 길게 잡혀 있는 하도급 업체는 어디인가?", Tag: "시간 × 조직",
					Query: staticQuery("SELECT WHO1_하도급업체 AS 업체, MIN(WHEN1_시작일) AS 최초투입, MAX(WHEN2종료일) AS 최종철수, CAST(JULIANDAY(MAX(WHEN2종료일)) - JULIANDAY(MIN(WHEN1_시작일)) AS INTEGER) AS 투입기간일, SUM(R10_합계_금액) AS 계약금액 FROM evms WHERE WHO1_하도급업체 IS NOT NULL AND WHO1_하도급업체 != '' GROUP BY WHO1_하도급업체 ORDER BY 투입기간일 DESC LIMIT 10"),
					Title: "업체별 현장 투입 기간",
					Summary: "현장 투입 기간이 가장 긴 업체 순위입니다. 장기 투입 업체는 프로젝트 핵심 파트너입니다.",
					ChartType: ChartHorizontalBar,
					ChartConfig: &ChartConfig{LabelColumn: 0, DataColumns: []int{3}, DataLabels: []string{"투입 기간(일)"}},
				},
				{
					ID: "ins-rc-ratio", CategoryID: "insight",
					Text: "철근콘크리트 공사에서 재료비와 노무비의 비율은 어떻게 되는가?", Tag: "공종 × 자원",
					Query: staticQuery("SELECT '재료비' AS 비목, SUM(R7_재료비_금액) AS 금액 FROM evms WHERE HOW2_대공종 LIKE '%골조%' OR HOW2_대공종 LIKE '%콘크리트%' UNION ALL SELECT '노무비', SUM(R8_노무비_금액) FROM evms WHERE HOW2_대공종 LIKE '%골조%' OR HOW2_대공종 LIKE '%콘크리트%' UNION ALL SELECT '경비', SUM(R9_경비_금액) FROM evms WHERE HOW2_대공종 LIKE '%골조%' OR HOW2_대공종 LIKE '%콘크리트%'"),
					Title: "철근콘크리트 비목별 비율",
					Summary: "골조/콘크리트 공사의 재료비, 노무비, 경비 비율입니다.",
					ChartType: ChartDoughnut,
					ChartConfig: &ChartConfig{LabelColumn: 0, DataColumns: []int{1}, DataLabels: []string{"금액"}},
				},
				{
					ID: "ins-congestion", CategoryID: "insight",
					Text: "특정 기간(예: 8월)에 작업이 집중되어 혼잡이 예상되는 구역은?", Tag: "리스크 예측",
					Query: func(now time.Time) string {
						y := thisYear(now)
						return fmt.Sprintf("SELECT WHERE2_동 AS 동, WHERE3_층 AS 층, COUNT(*) AS 동시작업수, COUNT(DISTINCT WHO1_하도급업체) AS 업체수, SUM(R10_합계_금액) AS 총금액 FROM evms WHERE WHEN1_시작일 <= '%s-08-31' AND WHEN2종료일 >= '%s-08-01' GROUP BY WHERE2_동, WHERE3_층 ORDER BY 동시작업수 DESC LIMIT 15", y, y)
					},
					Title: "8월 작업 혼잡 예상 구역",
					Summary: "8월에 동시 진행되는 작업이 가장 많은 구역(동/층)입니다. 안전 및 공정 관리에 주의가 필요합니다.",
					ChartType: ChartBar,
					ChartConfig: &ChartConfig{LabelColumn: 0, DataColumns: []int{2}, DataLabels: []string{"동시 작업 수"}},
				},
				{
					ID: "ins-main-summary", CategoryID: "insight",
					Text: "본관동 프로젝트의 현재 핵심 이슈를 요약해줘.", Tag: "종합 요약",
					Query: func(now time.Time) string {
						return fmt.Sprintf(`SELECT '총 예산' AS 항목, SUM(R10_합계_금액) AS 값 FROM evms WHERE WHERE2_동 LIKE '%%본관%%' UNION ALL SELECT '진행률(EV/BAC)', ROUND(SUM(R10_합계_금액 * COALESCE("WHEN4_실행률(%%)", 0)) * 100.0 / SUM(R10_합계_금액), 1) FROM evms WHERE WHERE2_동 LIKE '%%본관%%' UNION ALL SELECT '작업 항목 수', COUNT(*) FROM evms WHERE WHERE2_동 LIKE '%%본관%%' UNION ALL SELECT '투입 업체 수', COUNT(DISTINCT WHO1_하도급업체) FROM evms WHERE WHERE2_동 LIKE '%%본관%%' UNION ALL SELECT '지연 작업 수', COUNT(*) FROM evms WHERE WHERE2_동 LIKE '%%본관%%' AND WHEN2종료일 < '%s' AND ("WHEN4_실행률(%%)" IS NULL OR "WHEN4_실행률(%%)" < 1)`, today(now))
					},
					Title: "본관동 프로젝트 현황 요약",
					Summary: "본관동의 핵심 지표를 요약한 결과입니다.",
					ChartType: ChartNone,
				},
			},
		},
	}
}

// FlattenPresets returns every entry across all categories in stable
// declaration order.
func FlattenPresets(categories []PresetCategory) []PresetEntry {
	var all []PresetEntry
	for _, cat := range categories {
		all = append(all, cat.Entries...)
	}
	return all
}
