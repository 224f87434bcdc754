package ai

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// buildAnalysisPrompt is the system instruction for the second pass:
// a six-stage consulting framework over the already-executed data.
func buildAnalysisPrompt() string {
	return "# 역할\n" +
		"당신은 건설현장 프로젝트 매니저(PM)를 보좌하는 건설사업관리(CM) 전문 컨설턴트입니다.\n" +
		"단순 데이터 나열이 아닌, **실제 현장 보고서 수준의 상세한 분석 리포트**를 작성합니다.\n" +
		"보고 대상은 현장소장 또는 PM이며, 의사결정에 직접 활용할 수 있는 수준이어야 합니다.\n\n" +

		"# 핵심 원칙\n" +
		"1. **정량적 분석**: 반드시 조회 데이터의 실제 업체명, 금액, 비율을 인용하세요.\n" +
		"2. **계산 수행**: SPI, CPI, EAC, Cost Slope 등을 직접 계산하여 수치로 제시하세요.\n" +
		"3. **실행 중심**: \"열심히 한다\"가 아니라, 구체적 대상/방법/투입량/비용을 정량적으로 제시하세요.\n" +
		"4. **비용-일정 트레이드오프**: 대책의 추가 비용과 지연 시 손실을 비교 분석하세요.\n" +
		"5. **데이터 근거**: 모든 주장에 데이터 출처(업체명, 금액, %)를 명시하세요.\n\n" +

		"# 분석 프레임워크 (6단계)\n\n" +

		"## 1단계: 현황 진단 (situation) — 10문장 이상\n" +
		"- 조회된 데이터에서 핵심 수치를 인용하여 현재 상황을 진단합니다.\n" +
		"- 상위/하위 3개 항목(업체/공종)을 구체적으로 언급합니다.\n" +
		"- 가능하면 SPI, CPI를 계산합니다: SPI = EV/PV, CPI = EV/AC\n" +
		"- 지연 일수, 초과 비용 등을 추정합니다.\n" +
		"- 원인을 다각도로 분석합니다 (자원, 환경, 설계, 하도급 등).\n\n" +

		"## 2단계: 전략별 대책 (strategies) — 3개 이상의 전략\n" +
		"각 전략에 대해 다음을 모두 포함합니다:\n" +
		"- **전략 제목**: [전략 1] 작업시간 연장, [전략 2] 공법변경 등\n" +
		"- **대상**: 구체적 업체명, 공종명, 자재명\n" +
		"- **실행 방안**: 무엇을 어떻게 할 것인지 구체적으로\n" +
		"- **기대 효과**: 정량적 효과 (일일 시공량 X→Y, 공기 Z일 단축 등)\n" +
		"- **추가 비용**: 원 단위로 추정 (야간수당 X원/주, 재료비 차액 등)\n\n" +

		"## 3단계: 비용-일정 트레이드오프 (tradeoff)\n" +
		"- 1일 단축 비용(Cost Slope) 산출\n" +
		"- 만회에 필요한 총 추가 비용 산출\n" +
		"- 지체상금(LD) 또는 간접비와의 비교 분석\n" +
		"- 경제성 판단 결론 (투입 vs 미투입)\n\n" +

		"## 4단계: 최종 의사결정 제안 (recommendation)\n" +
		"- 즉시 실행 사항 (이번 주)\n" +
		"- 단기 조치 (2주 내)\n" +
		"- 모니터링 계획 (일일/주간 보고 체계)\n" +
		"- 승인 요청 사항 (계약 변경, 자재 발주 등)\n\n" +

		"## 5단계: 리스크 경고 (risk)\n" +
		"- 만회 실패 시 연쇄 영향 (후속 공종, 준공일)\n" +
		"- 비용 초과 리스크\n" +
		"- 품질 저하 리스크\n\n" +

		"## 6단계: 시뮬레이션 결과 (simulation)\n" +
		"- 만회 대책 미적용 시 예상 결과\n" +
		"- 만회 대책 적용 시 예상 결과\n" +
		"- 핵심 지표 변화 예측\n\n" +

		"# CM 이론 참조\n" +
		"- EVM: BAC = 총예산, EV = 획득가치, PV = 계획가치, AC = 실투입비\n" +
		"  SPI = EV/PV (1.0 미만 = 지연), CPI = EV/AC (1.0 미만 = 초과)\n" +
		"  EAC = BAC/CPI, ETC = EAC - AC, TCPI = (BAC-EV)/(BAC-AC)\n" +
		"- CPM: 주공정 = 여유일(Float) 0인 경로, Crashing = 비용 투입으로 기간 단축\n" +
		"  Fast Tracking = 선후행 작업 병행, Cost Slope = (Crash Cost - Normal Cost)/(Normal Duration - Crash Duration)\n" +
		"- VE: Value = Function/Cost, 동일 기능 저비용 대안 검토\n" +
		"- 원가: 도급액 = 계약금, 실행액 = 실투입비, 실행율 = 실행/도급×100\n" +
		"- 지체상금: 일반적으로 계약금의 0.05~0.1%/일\n\n" +

		"# 응답 형식 (JSON)\n" +
		"반드시 아래 JSON 형식으로만 응답하세요. 각 필드를 최대한 상세하게 작성합니다.\n" +
		"```json\n" +
		"{\n" +
		"  \"reportTitle\": \"[보고서] 분석 제목 (예: 골조공사 공기만회 대책)\",\n" +
		"  \"situation\": \"현황 진단 — 10문장 이상, 구체적 업체명/수치 인용, SPI/CPI 계산 포함\",\n" +
		"  \"strategies\": [\n" +
		"    {\n" +
		"      \"title\": \"[전략 1] 전략 제목\",\n" +
		"      \"target\": \"대상 업체/공종/자재\",\n" +
		"      \"action\": \"실행 방안 상세 설명\",\n" +
		"      \"effect\": \"기대 효과 (정량적)\",\n" +
		"      \"cost\": \"추가 비용 추정\"\n" +
		"    }\n" +
		"  ],\n" +
		"  \"tradeoff\": \"비용-일정 트레이드오프 분석 (Cost Slope, 총 추가비용 vs 지체상금 비교)\",\n" +
		"  \"recommendation\": \"최종 의사결정 제안 — 즉시/단기/모니터링/승인 사항\",\n" +
		"  \"risk\": \"리스크 경고 — 연쇄 영향, 비용/품질 리스크\",\n" +
		"  \"simulation\": \"만회 전/후 비교 시뮬레이션 결과\"\n" +
		"}\n" +
		"```\n" +
		"⚠ strategies 배열은 반드시 3개 이상의 전략을 포함하세요.\n" +
		"⚠ 모든 수치는 데이터에서 직접 인용하고, 계산 과정을 명시하세요.\n"
}

const maxContextRows = 25

// formatResultAsText renders a result as a pipe-separated table capped
// at maxContextRows.
func formatResultAsText(result QueryResult) string {
	if len(result.Rows) == 0 {
		return "(데이터 없음)"
	}
	var sb strings.Builder
	sb.WriteString(strings.Join(result.Columns, " | ") + "\n")
	limit := len(result.Rows)
	if limit > maxContextRows {
		limit = maxContextRows
	}
	for _, row := range result.Rows[:limit] {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = formatCell(v)
		}
		sb.WriteString(strings.Join(cells, " | ") + "\n")
	}
	if len(result.Rows) > limit {
		sb.WriteString(fmt.Sprintf("... 외 %d건", len(result.Rows)-limit))
	}
	return sb.String()
}

// columnStats summarizes every numeric column as sum/avg/min/max lines.
func columnStats(result QueryResult) string {
	var sb strings.Builder
	for ci, col := range result.Columns {
		var vals []float64
		for _, row := range result.Rows {
			if ci < len(row) {
				if v, ok := cellNumber(row[ci]); ok {
					vals = append(vals, v)
				}
			}
		}
		if len(vals) == 0 {
			continue
		}
		total, minV, maxV := 0.0, vals[0], vals[0]
		for _, v := range vals {
			total += v
			minV = math.Min(minV, v)
			maxV = math.Max(maxV, v)
		}
		avg := total / float64(len(vals))
		sb.WriteString(fmt.Sprintf("%s: 합계=%s, 평균=%s, 최소=%s, 최대=%s\n",
			col, FormatNumber(math.Round(total)), FormatNumber(math.Round(avg)),
			FormatNumber(math.Round(minV)), FormatNumber(math.Round(maxV))))
	}
	return sb.String()
}

// BuildDataContext assembles the user message for the analysis pass:
// the question, the executed data with stats, the first-pass framing,
// and optional agenda support data.
func BuildDataContext(question string, result QueryResult, pass1 *Candidate, support *QueryResult, now time.Time) string {
	var sb strings.Builder
	sb.WriteString("■ 사용자 질문: " + question + "\n\n")
	sb.WriteString(fmt.Sprintf("■ 조회된 데이터 (%d건):\n%s\n\n", len(result.Rows), formatResultAsText(result)))

	stats := columnStats(result)
	if stats == "" {
		stats = "(수치 컬럼 없음)"
	}
	sb.WriteString("■ 데이터 통계 요약:\n" + stats + "\n")
	sb.WriteString("■ 실행된 SQL: " + pass1.SQL)

	if pass1.Title != "" {
		sb.WriteString("\n■ Pass 1 분석 제목: " + pass1.Title)
	}
	if pass1.Summary != "" {
		sb.WriteString("\n■ Pass 1 요약: " + pass1.Summary)
	}

	if support != nil && len(support.Rows) > 0 {
		sb.WriteString(fmt.Sprintf("\n\n■ 보조 데이터 (%d건):\n%s", len(support.Rows), formatResultAsText(*support)))
	}

	sb.WriteString("\n\n■ 프로젝트 기본정보: 건설현장 EVMS 데이터, " +
		"컬럼: WHO(업체), WHAT(용도), WHERE(위치), WHEN(일정), HOW(공종), R(비용)\n" +
		"■ 오늘 날짜: " + today(now))
	return sb.String()
}
