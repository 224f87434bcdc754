package ai

import "strings"

// Agenda is one recurring site-meeting topic. Context is injected into
// the model prompt when the agenda matches, and SupportSQL provides the
// numeric backdrop for the second-pass consulting report.
type Agenda struct {
	ID         string   `json:"id"`
	Label      string   `json:"label"`
	Keywords   []string `json:"keywords"`
	Context    string   `json:"-"`
	SupportSQL string   `json:"-"`
}

// meetingAgendas covers the twelve standing topics of a construction
// site cost/schedule meeting.
var meetingAgendas = []Agenda{
	{
		ID: "execution_rate", Label: "실행율 점검",
		Keywords: []string{"실행율", "실행률", "원가율", "도급대비", "투입원가", "실행예산"},
		Context: "회의의제: 도급 대비 실행율 점검\n분석 포인트:\n1. 공종별 실행율 편차 확인 (계획 vs 실제)\n2. 항목별 원가 분석 (노무비, 재료비, 경비)\n3. 재시공(데나오시) 비용 별도 집계\n4. ETC/EAC 예측 및 만회 대책",
		SupportSQL: `SELECT HOW2_대공종, SUM(R10_합계_금액) AS 도급금액, SUM(R10_합계_금액 * COALESCE("WHEN4_실행률(%)", 0)) AS 기성액, ROUND(SUM(R10_합계_금액 * COALESCE("WHEN4_실행률(%)", 0)) * 100.0 / NULLIF(SUM(R10_합계_금액), 0), 1) AS 진행률 FROM evms GROUP BY HOW2_대공종 ORDER BY 도급금액 DESC`,
	},
	{
		ID: "cost_analysis", Label: "투입비 분석",
		Keywords: []string{"인건비", "자재비", "외주비", "장비비", "투입비", "비목별", "노무비 초과", "재료비 초과"},
		Context: "회의의제: 투입비(Cost) 항목별 상세 분석\n분석 포인트:\n1. 재료비/노무비/경비 비율 분석\n2. 공종별 비목 구성비 비교\n3. 이상 비목 식별 및 원인 분석\n4. BIM 기반 물량 산출 및 재고 관리 강화",
		SupportSQL: "SELECT '재료비' AS 비목, SUM(R7_재료비_금액) AS 금액 FROM evms UNION ALL SELECT '노무비', SUM(R8_노무비_금액) FROM evms UNION ALL SELECT '경비', SUM(R9_경비_금액) FROM evms",
	},
	{
		ID: "loss_analysis", Label: "적자 공종 분석",
		Keywords: []string{"적자", "빨간현장", "원가초과", "손실", "적자공종", "실행온"},
		Context: "회의의제: 적자 공종(빨간현장 요인) 집중 관리\n분석 포인트:\n1. 원가율 100% 초과 공종 식별\n2. 손실 유형: 설계누락, 시공효율저하, 자재가폭등, 하도급 역량부족\n3. VE(가치공학) 적용 대안 공법 검토\n4. 하도급 재협상 및 직영 전환 가능성",
		SupportSQL: "SELECT HOW2_대공종, SUM(R10_합계_금액) AS 도급, SUM(R7_재료비_금액) + SUM(R8_노무비_금액) + SUM(R9_경비_금액) AS 실행 FROM evms GROUP BY HOW2_대공종 ORDER BY 도급 DESC",
	},
	{
		ID: "profit_forecast", Label: "이익 산출",
		Keywords: []string{"이익", "손익", "EAC", "ETC", "준공원가", "잔여", "예상이익"},
		Context: "회의의제: 확정 이익 및 예상 이익 산출\n분석 포인트:\n1. 현재 시점 확정 이익 (기성수익 - 투입원가)\n2. 잔여 공사 투입비(ETC) 정밀 추산\n3. 준공 시점 최종 원가율(EAC) 도출\n4. 낙관적/비관적 시나리오 분석",
		SupportSQL: `SELECT '총예산(BAC)' AS 항목, SUM(R10_합계_금액) AS 값 FROM evms UNION ALL SELECT '기성액(EV)', SUM(R10_합계_금액 * COALESCE("WHEN4_실행률(%)", 0)) FROM evms UNION ALL SELECT '잔여예산', SUM(R10_합계_금액) - SUM(R10_합계_금액 * COALESCE("WHEN4_실행률(%)", 0)) FROM evms`,
	},
	{
		ID: "billing", Label: "기성 산출",
		Keywords: []string{"기성", "검측", "진도율", "청구", "과기성", "승인"},
		Context: "회의의제: 매월 검측 기반 기성 산출 및 확정\n분석 포인트:\n1. 공종별 진도율 산정 (전체 계획 대비 실적)\n2. 과기성(Over-billing) 차단\n3. 하도급 청구액 적정성 검토\n4. 차월 기성 목표 설정",
		SupportSQL: `SELECT WHO1_하도급업체, SUM(R10_합계_금액) AS 도급액, SUM(R10_합계_금액 * COALESCE("WHEN4_실행률(%)", 0)) AS 기성액 FROM evms WHERE WHO1_하도급업체 IS NOT NULL AND WHO1_하도급업체 != '' GROUP BY WHO1_하도급업체 ORDER BY 도급액 DESC`,
	},
	{
		ID: "cash_flow", Label: "수금 관리",
		Keywords: []string{"수금", "미수금", "자금", "현금흐름", "입금", "지급"},
		Context: "회의의제: 발주처 청구 및 수금 현황 관리\n분석 포인트:\n1. 수금 예정일 확정 및 입금 관리\n2. 하도급 기성 지급 연계\n3. 노무비 우선 배정\n4. 미청구 기성 발굴 및 조기 청구",
		SupportSQL: `SELECT WHERE2_동, SUM(R10_합계_금액) AS 도급액, SUM(R10_합계_금액 * COALESCE("WHEN4_실행률(%)", 0)) AS 기성액 FROM evms GROUP BY WHERE2_동 ORDER BY 도급액 DESC`,
	},
	{
		ID: "escalation", Label: "물가 변동",
		Keywords: []string{"물가", "에스컬레이션", "단가상승", "물가변동", "증액"},
		Context: "회의의제: 물가 변동(Escalation) 반영 및 증액 요청\n분석 포인트:\n1. 계약 조건 및 법적 근거 검토\n2. 비목별 가격 상승률 데이터 산출\n3. 증액 요청 논리 및 증빙 자료 준비\n4. 하도급사 물가 연동제 적용",
		SupportSQL: "SELECT HOW2_대공종, SUM(R7_재료비_금액) AS 재료비, SUM(R8_노무비_금액) AS 노무비, SUM(R9_경비_금액) AS 경비 FROM evms GROUP BY HOW2_대공종 ORDER BY 재료비 DESC",
	},
	{
		ID: "design_change", Label: "설계변경",
		Keywords: []string{"설변", "설계변경", "추가물량", "누락", "정산", "신규단가"},
		Context: "회의의제: 추가/누락 물량 정산 및 설계변경\n분석 포인트:\n1. 도면 누락 및 오류 식별\n2. 현장 여건 변화(연약지반, 암반 등) 확인\n3. 물량 산출서 재검증\n4. 클레임 방어 및 정산 합의서 작성",
		SupportSQL: "SELECT HOW3_작업명, SUM(R2_수량) AS 총수량, SUM(R10_합계_금액) AS 금액, COUNT(*) AS 항목수 FROM evms GROUP BY HOW3_작업명 ORDER BY 금액 DESC LIMIT 15",
	},
	{
		ID: "eot", Label: "공기 연장",
		Keywords: []string{"EOT", "공기지연", "간접비", "보상", "연장", "지체상금"},
		Context: "회의의제: 공기 연장에 따른 비용(EOT) 산출\n분석 포인트:\n1. 지연 사유 규명 및 책임 소재\n2. 간접비 증가분 실비 산출\n3. 증빙 자료(RFI, 공문) 구축\n4. 만회공정 비용 vs 공기연장 간접비 비교",
		SupportSQL: "SELECT WHO1_하도급업체, MIN(WHEN1_시작일) AS 최초투입, MAX(WHEN2종료일) AS 최종철수, CAST(JULIANDAY(MAX(WHEN2종료일))-JULIANDAY(MIN(WHEN1_시작일)) AS INTEGER) AS 투입기간일 FROM evms WHERE WHO1_하도급업체 IS NOT NULL GROUP BY WHO1_하도급업체 ORDER BY 투입기간일 DESC",
	},
	{
		ID: "cpm_delay", Label: "CPM/공정 지연",
		Keywords: []string{"지연", "공기", "만회", "돌관", "CPM", "주공정", "공정지연", "Float"},
		Context: "회의의제: CPM 지연 분석 및 만회 공정\n분석 포인트:\n1. 실행률이 낮은 작업 식별 (지연 후보)\n2. 기간이 긴 작업 = 주공정 후보\n3. 만회 대책: Crashing, Fast Tracking, 공법변경\n4. SPI 기반 공기 예측",
		SupportSQL: `SELECT HOW3_작업명, SUM("WHEN3_기간(일)") AS 총기간, AVG("WHEN4_실행률(%)") AS 평균실행률, SUM(R10_합계_금액) AS 금액 FROM evms WHERE "WHEN4_실행률(%)" < 1 AND "WHEN4_실행률(%)" IS NOT NULL GROUP BY HOW3_작업명 ORDER BY 총기간 DESC LIMIT 10`,
	},
	{
		ID: "evm_spi", Label: "S-Curve/EVM",
		Keywords: []string{"SPI", "CPI", "S커브", "진도율", "EVM", "기성관리", "공정수행지수", "BCWP"},
		Context: "회의의제: EVM 지수 점검 및 지연 진단\n분석 포인트:\n1. PV/AC/EV 현황 분석\n2. SPI(공정수행지수) 점검 — 1.0 미만 시 심각도 평가\n3. CPI(원가수행지수) 복합 진단\n4. TCPI 검토 및 만회 자원 투입 계획",
		SupportSQL: `SELECT '총예산(BAC)' AS 지표, SUM(R10_합계_금액) AS 값 FROM evms UNION ALL SELECT '획득가치(EV)', SUM(R10_합계_금액 * COALESCE("WHEN4_실행률(%)", 0)) FROM evms`,
	},
	{
		ID: "productivity", Label: "생산성",
		Keywords: []string{"생산성", "공수", "인력", "효율", "유휴", "가동률", "장비"},
		Context: "회의의제: 공종별 일일 생산성 측정\n분석 포인트:\n1. 투입 자원 대비 산출물 정량화\n2. 작업 대기/유휴 시간 분석\n3. 간섭 공종 조정 및 자원 최적화\n4. 스마트 기술 활용 전략",
		SupportSQL: `SELECT WHO1_하도급업체, COUNT(*) AS 작업항목수, SUM(R2_수량) AS 총수량, SUM(R10_합계_금액) AS 금액, ROUND(AVG("WHEN4_실행률(%)") * 100, 1) AS 평균진행률 FROM evms WHERE WHO1_하도급업체 IS NOT NULL AND WHO1_하도급업체 != '' GROUP BY WHO1_하도급업체 ORDER BY 금액 DESC`,
	},
}

// MatchAgenda returns the meeting agenda whose keywords appear most
// often in the question, or nil when none appear. Each keyword counts
// once; ties keep the earliest agenda.
func MatchAgenda(question string) *Agenda {
	var best *Agenda
	bestScore := 0
	for i := range meetingAgendas {
		score := 0
		for _, kw := range meetingAgendas[i].Keywords {
			if strings.Contains(question, kw) {
				score++
			}
		}
		if score > bestScore {
			best, bestScore = &meetingAgendas[i], score
		}
	}
	return best
}
