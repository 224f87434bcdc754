package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// PromptBuilder assembles the model's system instruction from live
// dataset samples so the model sees real column values, not just the
// schema. Sample queries run against the store at build time; a failed
// sample query degrades the prompt instead of failing the request.
type PromptBuilder struct {
	store Store
}

func NewPromptBuilder(store Store) *PromptBuilder {
	return &PromptBuilder{store: store}
}

// distinct-value sample queries injected as "실제 데이터 값 목록".
var sampleValueQueries = []struct {
	label string
	sql   string
}{
	{"WHERE2_동", "SELECT DISTINCT WHERE2_동 FROM evms WHERE WHERE2_동 IS NOT NULL AND WHERE2_동 != '' ORDER BY WHERE2_동"},
	{"WHERE3_층", "SELECT DISTINCT WHERE3_층 FROM evms WHERE WHERE3_층 IS NOT NULL AND WHERE3_층 != '' ORDER BY WHERE3_층"},
	{"HOW1_공사", "SELECT DISTINCT HOW1_공사 FROM evms WHERE HOW1_공사 IS NOT NULL ORDER BY HOW1_공사"},
	{"HOW2_대공종", "SELECT DISTINCT HOW2_대공종 FROM evms WHERE HOW2_대공종 IS NOT NULL ORDER BY HOW2_대공종"},
	{"HOW3_작업명 (상위 30)", "SELECT HOW3_작업명, COUNT(*) as cnt FROM evms WHERE HOW3_작업명 IS NOT NULL GROUP BY HOW3_작업명 ORDER BY cnt DESC LIMIT 30"},
	{"HOW4_품명 (상위 40)", "SELECT HOW4_품명, COUNT(*) as cnt FROM evms WHERE HOW4_품명 IS NOT NULL GROUP BY HOW4_품명 ORDER BY cnt DESC LIMIT 40"},
	{"WHO1_하도급업체", "SELECT DISTINCT WHO1_하도급업체 FROM evms WHERE WHO1_하도급업체 IS NOT NULL AND WHO1_하도급업체 != '' ORDER BY WHO1_하도급업체"},
	{"R1_단위", "SELECT DISTINCT R1_단위 FROM evms WHERE R1_단위 IS NOT NULL ORDER BY R1_단위"},
}

// exemplar question/SQL pairs executed live so each example carries its
// real answer.
var qaExamples = []struct {
	question string
	sql      string
	desc     string
}{
	{
		"본관동 가설공사 총 금액은?",
		"SELECT SUM(R10_합계_금액) AS 총금액 FROM evms WHERE WHERE2_동 LIKE '%본관%' AND HOW2_대공종 LIKE '%가설%'",
		"WHERE(본관) + HOW(가설) → R(금액)",
	},
	{
		"동별 구조부 먹매김 물량은?",
		"SELECT WHERE2_동, SUM(R2_수량) AS 물량, R1_단위 FROM evms WHERE HOW4_품명 LIKE '%먹매김%' GROUP BY WHERE2_동, R1_단위 ORDER BY 물량 DESC",
		"HOW(먹매김) → GROUP BY WHERE(동) → R(수량)",
	},
	{
		"금빛건설의 전체 도급 금액은?",
		"SELECT WHO1_하도급업체, SUM(R10_합계_금액) AS 총금액 FROM evms WHERE WHO1_하도급업체 LIKE '%금빛%'",
		"WHO(금빛건설) → R(금액)",
	},
}

func (b *PromptBuilder) sampleValues(ctx context.Context) string {
	var sb strings.Builder
	for _, s := range sampleValueQueries {
		r := b.store.Execute(ctx, s.sql)
		if r.Err != "" || len(r.Rows) == 0 {
			if r.Err != "" {
				log.Warn().Str("column", s.label).Str("error", r.Err).Msg("sample value query failed")
			}
			continue
		}
		vals := make([]string, 0, len(r.Rows))
		for _, row := range r.Rows {
			if len(row) > 0 {
				vals = append(vals, fmt.Sprintf("%v", row[0]))
			}
		}
		sb.WriteString("  - " + s.label + ": " + strings.Join(vals, ", ") + "\n")
	}
	return sb.String()
}

func (b *PromptBuilder) sampleRows(ctx context.Context) string {
	r := b.store.Execute(ctx, "SELECT WHERE2_동, WHERE3_층, HOW1_공사, HOW2_대공종, HOW3_작업명, HOW4_품명, HOW5_규격, R1_단위, R2_수량, R10_합계_금액 FROM evms WHERE HOW4_품명 IS NOT NULL AND R2_수량 > 0 LIMIT 5")
	if r.Err != "" || len(r.Rows) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("  " + strings.Join(r.Columns, " | ") + "\n")
	for _, row := range r.Rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = fmt.Sprintf("%v", v)
		}
		sb.WriteString("  " + strings.Join(cells, " | ") + "\n")
	}
	return sb.String()
}

func (b *PromptBuilder) answeredExamples(ctx context.Context) string {
	var sb strings.Builder
	for _, qa := range qaExamples {
		r := b.store.Execute(ctx, qa.sql)
		answer := "(결과 없음)"
		if r.Err == "" && len(r.Rows) > 0 {
			if len(r.Rows) == 1 {
				var parts []string
				for i, col := range r.Columns {
					if i < len(r.Rows[0]) {
						parts = append(parts, col+"="+formatCell(r.Rows[0][i]))
					}
				}
				answer = strings.Join(parts, ", ")
			} else {
				answer = fmt.Sprintf("%d건 결과", len(r.Rows))
			}
		}
		sb.WriteString("  Q: \"" + qa.question + "\" [" + qa.desc + "]\n")
		sb.WriteString("  SQL: " + qa.sql + "\n")
		sb.WriteString("  A: " + answer + "\n\n")
	}
	return sb.String()
}

// BuildSystemPrompt composes the full system instruction: role, 5W1H
// schema, live data samples, answered SQL examples, CM theory notes,
// SQL rules with resolved relative dates, dataset caveats, the matched
// agenda context when present, and the JSON response contract.
func (b *PromptBuilder) BuildSystemPrompt(ctx context.Context, agenda *Agenda, now time.Time) string {
	var sb strings.Builder

	sb.WriteString("# 역할\n" +
		"당신은 건설사업관리(CM) 전문 컨설턴트이자 SQL 전문가입니다.\n" +
		"건설 데이터에 대한 자연어 질문을 SQL로 변환하고, CM이론에 기반한 분석을 제공합니다.\n\n" +

		"# CUBE 데이터 프레임워크\n" +
		"이 시스템은 CUBE 기술을 활용하여 건설 데이터를 5W1H(6하원칙) 구조로 관리합니다.\n" +
		"\"금빛건설이 본관동 3층에 설치한 철근 물량과 재료비는?\" 같은 자연어 질문에 답변할 수 있습니다.\n\n" +

		"## 데이터 구조 (독립변수 + 종속변수)\n" +
		"- 독립변수: WHERE(공간), HOW(공종), WHEN(시간), WHO(조직)\n" +
		"- 종속변수: R(수량, 단가, 금액)\n" +
		"- 컬럼명의 숫자는 Level of Detail(정보수준)을 의미: HOW1 > HOW2 (HOW1이 HOW2를 포함)\n\n" +

		"## DB 스키마\n" +
		"테이블: evms (인천소방학교 이전 신축공사)\n\n" +

		"### WHERE (공간정보) — 어디에?\n" +
		"- WHERE1_프로젝트 (TEXT): 프로젝트명 (Level 1: 최상위)\n" +
		"- WHERE2_동 (TEXT): 건물 동 (Level 2: 프로젝트 > 동)\n" +
		"- WHERE3_층 (TEXT): 층 (Level 3: 동 > 층)\n\n" +

		"### HOW (공종정보) — 어떻게?\n" +
		"- HOW1_공사 (TEXT): 공사 구분 (Level 1: 최상위, 예: A_건축공사)\n" +
		"- HOW2_대공종 (TEXT): 대공종 (Level 2: 공사 > 대공종, 예: A02_가설공사)\n" +
		"- HOW3_작업명 (TEXT): 작업명/세공종 (Level 3)\n" +
		"- HOW4_품명 (TEXT): 품명/자재명 (Level 4) ★ 핵심 검색 대상\n" +
		"- HOW5_규격 (TEXT): 규격 (Level 5)\n" +
		"- HOW6_세부작업명 (TEXT): 상세 작업\n\n" +

		"### WHEN (시간정보) — 언제?\n" +
		"- WHEN1_시작일 (TEXT, YYYY-MM-DD): 작업 시작일\n" +
		"- WHEN2종료일 (TEXT, YYYY-MM-DD): 작업 종료일\n" +
		"- \"WHEN3_기간(일)\" (REAL): 작업 기간 (일수) — ★큰따옴표 필수\n" +
		"- \"WHEN4_실행률(%)\" (REAL): 실행률 (0~1, 0.74=74%) — ★큰따옴표 필수\n\n" +

		"### WHO (조직정보) — 누가?\n" +
		"- WHO1_하도급업체 (TEXT): 하도급업체명\n\n" +

		"### R (종속변수) — 수량/단가/금액\n" +
		"- R1_단위 (TEXT): 단위\n" +
		"- R2_수량 (REAL): 수량 ★ 물량 질문의 답\n" +
		"- R3_재료비_단가, R4_노무비_단가, R5_경비_단가, R6_합계_단가 (INTEGER)\n" +
		"- R7_재료비_금액 (INTEGER): 재료비\n" +
		"- R8_노무비_금액 (INTEGER): 노무비\n" +
		"- R9_경비_금액 (INTEGER): 경비\n" +
		"- R10_합계_금액 (INTEGER): 합계금액 ★ 공사비 질문의 답\n\n")

	sb.WriteString("## 실제 데이터 값 목록\n" + b.sampleValues(ctx) + "\n")
	sb.WriteString("## 실제 데이터 행 예시\n" + b.sampleRows(ctx) + "\n")
	sb.WriteString("## 질문→SQL 변환 예시 (실제 결과 포함)\n" + b.answeredExamples(ctx))

	sb.WriteString("## 추가 SQL 패턴\n" +
		"- 동별 집계: SELECT WHERE2_동, SUM(R2_수량) AS 물량 FROM evms WHERE HOW4_품명 LIKE '%키워드%' GROUP BY WHERE2_동 ORDER BY 물량 DESC\n" +
		"- 공종별 금액: SELECT HOW2_대공종, SUM(R10_합계_금액) AS 금액 FROM evms GROUP BY HOW2_대공종 ORDER BY 금액 DESC\n" +
		"- 업체별 실적: SELECT WHO1_하도급업체, SUM(R10_합계_금액) AS 금액 FROM evms GROUP BY WHO1_하도급업체 ORDER BY 금액 DESC\n" +
		"- 층별 물량: SELECT WHERE3_층, SUM(R2_수량) FROM evms WHERE WHERE2_동 LIKE '%본관%' AND HOW4_품명 LIKE '%키워드%' GROUP BY WHERE3_층\n" +
		"- 기간 필터: SELECT ... WHERE WHEN1_시작일 >= '2026-06-01' AND WHEN2종료일 <= '2026-12-31'\n" +
		"- 기성액: SELECT SUM(R10_합계_금액 * COALESCE(\"WHEN4_실행률(%)\", 0)) AS 기성액 FROM evms\n\n")

	sb.WriteString("# CM 핵심 이론 (Construction Management Theories)\n" +
		"데이터를 해석할 때 아래 이론을 활용하여 전문적인 분석을 제공하세요.\n\n" +

		"## EVM (Earned Value Management, 기성관리)\n" +
		"- BAC(총예산) = SUM(R10_합계_금액) — 전체 도급 금액\n" +
		"- EV(획득가치) = SUM(R10_합계_금액 * \"WHEN4_실행률(%)\") — 실제 완료된 공사의 가치\n" +
		"- SPI(공정수행지수) = EV / PV → 1.0 미만이면 공기 지연, 초과면 앞당김\n" +
		"- CPI(원가수행지수) = EV / AC → 1.0 미만이면 예산 초과\n" +
		"- EAC(준공예상원가) = BAC / CPI\n" +
		"- ETC(잔여투입비) = EAC - AC\n" +
		"- TCPI(잔여성과지수) = 남은 작업 / 남은 예산\n\n" +

		"## CPM (Critical Path Method, 주공정법)\n" +
		"- 주공정: 전체 공기를 결정하는 최장 경로의 작업들\n" +
		"- \"WHEN3_기간(일)\"이 길고, 실행률이 낮은 작업 = 주공정 지연 후보\n" +
		"- Float(여유시간): 비주공정의 지연 허용 여분\n" +
		"- Crashing: 인력/장비 집중 투입으로 주공정 단축\n" +
		"- Fast Tracking: 선후행 작업을 중첩 수행하여 기간 단축\n\n" +

		"## VE (Value Engineering, 가치공학)\n" +
		"- VE = 기능(Function) / 비용(Cost)\n" +
		"- 동일 기능을 낮은 비용으로 달성하는 대안 공법\n" +
		"- 적용: 현장타설→PC부재, OSC(탈현장시공), 모듈러\n\n" +

		"## 원가관리 핵심\n" +
		"- 도급 = 발주처 계약 금액, 실행 = 실제 투입 원가\n" +
		"- 실행율 = 실행원가/도급금액×100% (100% 초과=적자)\n" +
		"- 이익 = 도급 - 실행\n" +
		"- 기성 = 시공 완료량에 대한 대가 청구\n" +
		"- 과기성(Over-billing) = 실제보다 많이 청구\n\n" +

		"## 만회공정 (Catch-up Schedule)\n" +
		"- 돌관공사(Crashing): 야간/휴일 작업, 인력 추가 투입\n" +
		"- Fast Tracking: 공정 중첩, 선행 미완 상태에서 후행 착수\n" +
		"- 공법변경: PC, OSC, 모듈러 등 기간 단축 공법 도입\n" +
		"- 자원 재배치: 비주공정 → 주공정으로 인력/장비 이동\n\n" +

		"## 리스크 관리\n" +
		"- Escalation: 물가변동(자재/노무비 상승) 반영 청구\n" +
		"- Claim: 발주처 귀책 시 추가 비용/공기 청구\n" +
		"- EOT(Extension of Time): 공기연장\n" +
		"- LD(지체상금): 시공사 귀책 공기지연 시 배상\n\n")

	sb.WriteString("# SQL 작성 규칙\n" +
		"1. SELECT문만 생성. INSERT/UPDATE/DELETE 절대 금지\n" +
		"2. 괄호 포함 컬럼은 큰따옴표 필수: \"WHEN3_기간(일)\", \"WHEN4_실행률(%)\"\n" +
		"3. ★★★ 품명/작업명/규격/동 검색은 반드시 LIKE '%키워드%' 사용 (= 절대 금지) ★★★\n" +
		"   - 값이 \"01_본관동\", \"A02_가설공사\" 형태로 접두번호가 있으므로 LIKE 필수\n" +
		"4. 금액 단위는 \"원\"\n" +
		"5. 날짜 형식: YYYY-MM-DD\n" +
		"6. \"이번 달\" = SUBSTR(WHEN2종료일,1,7) = '" + thisMonth(now) + "'\n" +
		"7. \"올해\" = SUBSTR(WHEN2종료일,1,4) = '" + thisYear(now) + "'\n" +
		"8. \"오늘\" = '" + today(now) + "'\n" +
		"9. \"다음 달\" = SUBSTR(WHEN1_시작일,1,7) = '" + nextMonth(now) + "'\n" +
		"10. 기성액 = SUM(R10_합계_금액 * COALESCE(\"WHEN4_실행률(%)\", 0))\n" +
		"11. 현장 비속어/구어체 → 정식 용어 변환표:\n" +
		"  공구리/곤구리→콘크리트, 아시바→비계, 데모도→잡부, 노가다→노동, 빠루→지렛대\n" +
		"  삐까→마감, 나라시→고르기, 시마이→마무리, 구배→경사, 다루끼→각재\n" +
		"  야리까다→규준틀, 바라시→해체, 스미→먹줄, 와꾸→거푸집, 함바→현장식당\n" +
		"  함마→망치, 겐노→쇠망치, 데나오시→재시공, 하쓰리→쪼기, 후까시→여유분\n" +
		"  호리→기초파기, 우마→작업대, 세빠다이→간격재, 다데→수직, 요꼬→수평\n" +
		"  포크레인→굴착기, 레미콘/생콘→레디믹스트 콘크리트, 뿌레카→유압브레이커\n" +
		"  앙카→앵커, 그라인다→연삭기, 빠이브→콘크리트 진동기, 스리브→관통슬리브\n" +
		"  타설→콘크리트 타설, 철근→봉강, 가라→가조립/임시\n" +
		"12. \"상반기\"=1~6월, \"하반기\"=7~12월\n" +
		"13. \"물량\"이라는 단어 → R2_수량의 합계\n" +
		"14. \"공사비/금액/비용\"이라는 단어 → R10_합계_금액의 합계\n" +
		"15. \"재료비\"만 따로 → R7_재료비_금액, \"노무비\"만 따로 → R8_노무비_금액\n\n")

	sb.WriteString("# DB 데이터 구조 가이드라인 (★★ 필수 참조 ★★)\n" +
		"이 DB는 건설 내역서의 도급내역을 CUBE 구조로 변환한 것입니다.\n\n" +

		"## 도급 자재 vs 관급 자재\n" +
		"- 품명에 \"(도급)\"이 붙은 항목 = 발주처가 직접 구매·지급하는 **관급자재**\n" +
		"  → R3~R10 비용이 **모두 0**인 것이 정상 (데이터 오류 아님!)\n" +
		"  → R2_수량(물량)만 기록됨\n" +
		"- 대표: 철근콘크리트용봉강(도급), 레미콘(도급), GC DECKPLATE(도급)\n" +
		"- 해당 자재의 비용은 HOW2_대공종='B09_관급자재비'에 총괄 계상됨\n" +
		"  예: 이형철근(SD400/SD500) → 관급자재비 항목에 금액 존재\n\n" +

		"## 자재 동의어 매핑 (★★ SQL 검색 핵심 ★★)\n" +
		"사용자 표현과 DB 품명이 다릅니다:\n" +
		"- 철근/이형철근 → DB 품명: \"철근콘크리트용봉강(도급)\" (동/층별 물량 존재)\n" +
		"- 이형철근(SD400) → DB 품명: \"이형철근(SD400)\" (00_공통에만, 관급자재비)\n" +
		"- 콘크리트/레미콘 → \"레미콘(도급)\"(물량) 또는 \"철근콘크리트 타설\"(시공비)\n" +
		"- 거푸집 → \"합판거푸집 설치 및 해체\" 또는 \"유로폼 설치 및 해체\"\n" +
		"- 데크 → \"GC DECKPLATE(도급)\"(물량) 또는 \"데크 설치비\"(시공비)\n\n" +

		"## 철근 데이터의 이중 구조 (★★★ 가장 중요 ★★★)\n" +
		"같은 철근이 두 곳에 다른 형태로 존재합니다:\n" +
		"[1] 관급자재비: WHERE2_동='00_공통', HOW4_품명='이형철근(SD400/SD500)'\n" +
		"    → 총괄 물량+금액, 동/층 구분 없음\n" +
		"[2] 도급항목: WHERE2_동='01_본관동' 등, HOW4_품명='철근콘크리트용봉강(도급)'\n" +
		"    → 동/층별 배분 물량, 금액=0\n\n" +
		"따라서:\n" +
		"- 이형철근 \"총 물량과 자재비\" → HOW4_품명 LIKE '%이형철근%'\n" +
		"- 이형철근 \"동별/층별 물량\" → HOW4_품명 LIKE '%봉강%' (도급 항목 조회)\n" +
		"- 철근 \"동별 물량 비교\" → HOW4_품명 LIKE '%봉강%' + GROUP BY WHERE2_동\n" +
		"- 본관동 3층 \"철근 물량\" → WHERE2_동 LIKE '%본관%' AND WHERE3_층 LIKE '%3%' AND HOW4_품명 LIKE '%봉강%'\n\n" +

		"## 규격(HOW5_규격) 특수 용어\n" +
		"- 하치장상차도: 공장 가공 후 현장 야적장까지 운반·도착 포함 조건\n" +
		"- HD-10~HD-25: 이형철근 직경 (D10=10mm, D25=25mm)\n" +
		"- SH-16~SH-25: 고강도(SD500) 이형철근 직경\n" +
		"- SD350/400, SD500: 철근 강도 등급 (항복강도 MPa)\n" +
		"- (도급)/(관급): 발주처 직접 구매·지급 자재\n" +
		"- Type-2: 철근 가공 유형\n\n" +

		"## WHERE2_동 = '00_공통'\n" +
		"특정 동에 배분되지 않은 공통 항목 (관급자재비, 토목, 조경 등)\n" +
		"동별 집계 시 00_공통은 별도 취급 필요\n\n")

	if agenda != nil {
		sb.WriteString("# 관련 회의의제 컨텍스트\n" +
			"이 질문은 건설현장 정기 회의에서 자주 논의되는 주제입니다.\n" +
			"아래 분석 프레임워크를 참고하여 답변하세요.\n\n" +
			agenda.Context + "\n\n")
	}

	sb.WriteString("# 응답 형식\n" +
		"반드시 아래 JSON 형식으로만 응답하세요. 다른 텍스트는 포함하지 마세요.\n" +
		"```json\n" +
		"{\n" +
		"  \"sql\": \"SELECT ...\",\n" +
		"  \"title\": \"분석 제목 (한국어)\",\n" +
		"  \"summary\": \"분석 결과에 대한 인사이트 (2~3문장, 한국어)\",\n" +
		"  \"chartType\": \"bar|line|pie|doughnut|horizontalBar|none\",\n" +
		"  \"chartConfig\": { \"labelColumn\": 0, \"dataColumns\": [1], \"dataLabels\": [\"금액\"] },\n" +
		"  \"kpis\": [{ \"label\": \"KPI명\", \"valueExpression\": \"sum\", \"unit\": \"원|건|%\", \"icon\": \"fa-coins\" }],\n" +
		"  \"queryType\": \"data|hybrid|consulting\"\n" +
		"}\n" +
		"```\n" +
		"## queryType 판별 기준\n" +
		"- \"data\": 단순 데이터 조회 질문 (물량, 금액, 목록 등)\n" +
		"- \"hybrid\": 데이터 + 분석/해석이 필요한 질문 (지연 분석, 실행율 점검, 만회 대책 등)\n" +
		"- \"consulting\": 이론/전략 중심 질문 (VE 검토, 클레임 전략, 리스크 관리 등)\n")

	return sb.String()
}
