package ai

import "strings"

// synonymRule rewrites one colloquial site term to canonical vocabulary.
type synonymRule struct {
	Colloquial string
	Canonical  string
}

// synonymRules is the ordered colloquial→canonical table. Rules are
// applied in a single fixed pass over this list, in order; a rule whose
// two sides are equal is a deliberate no-op kept for catalog completeness.
// Order matters: a canonical term produced by an earlier rule must never
// be re-matched by a later one, so the pass never rescans its own output.
var synonymRules = []synonymRule{
	{"공구리", "콘크리트"}, {"곤구리", "콘크리트"}, {"꽁구리", "콘크리트"},
	{"레미콘", "레미콘"}, {"생콘", "레미콘"},
	{"빠루", "바"}, {"몽키", "렌치"},
	{"비게", "비계"}, {"아시바", "비계"},
	{"뿌리방", "기초공사"}, {"뿌림방", "기초공사"},
	{"타설", "콘크리트"}, {"물량", "수량"},
	{"대금", "합계_금액"}, {"공사비", "합계_금액"}, {"돈", "금액"},
	{"비용", "금액"}, {"지급", "금액"}, {"청구", "기성"},
	{"자재", "재료"}, {"인부", "노무"},
	{"콘크리트", "콘크리트"},
}

// NormalizeQuestion rewrites colloquial construction slang in a question
// to the canonical vocabulary the preset catalog and synthesizer match
// against. Substitution is global and idempotent; the input is never
// mutated in place.
func NormalizeQuestion(text string) string {
	result := text
	for _, rule := range synonymRules {
		if rule.Colloquial == rule.Canonical {
			continue
		}
		if strings.Contains(result, rule.Colloquial) {
			result = strings.ReplaceAll(result, rule.Colloquial, rule.Canonical)
		}
	}
	return result
}
