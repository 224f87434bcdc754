package ai

import (
	"strings"
	"time"
)

// PresetMatcher scores a normalized question against the curated
// catalog by token overlap. Longer shared tokens weigh more, so a
// question sharing a long domain phrase with a preset outranks one
// sharing only short particles.
type PresetMatcher struct {
	entries []PresetEntry
}

// NewPresetMatcher builds a matcher over the given catalog.
func NewPresetMatcher(categories []PresetCategory) *PresetMatcher {
	return &PresetMatcher{entries: FlattenPresets(categories)}
}

const presetScoreThreshold = 4

// presetTokens splits a preset question into scoring tokens. Question
// marks are stripped, and tokens shorter than two runes are dropped so
// single particles never contribute.
func presetTokens(text string) []string {
	cleaned := strings.NewReplacer("?", "", "？", "").Replace(strings.ToLower(text))
	fields := strings.FieldsFunc(cleaned, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == ','
	})
	var tokens []string
	for _, f := range fields {
		if len([]rune(f)) >= 2 {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// Match returns the best-scoring preset for the question, materialized
// against now, or nil when no preset clears the threshold. Ties keep
// the earliest catalog entry.
func (m *PresetMatcher) Match(question string, now time.Time) *Candidate {
	lowered := strings.ToLower(question)

	var best *PresetEntry
	bestScore := 0
	for i := range m.entries {
		entry := &m.entries[i]
		score := 0
		for _, tok := range presetTokens(entry.Text) {
			if strings.Contains(lowered, tok) {
				score += len([]rune(tok))
			}
		}
		if score > bestScore {
			best, bestScore = entry, score
		}
	}
	if best == nil || bestScore < presetScoreThreshold {
		return nil
	}

	return &Candidate{
		SQL:         best.Query(now),
		Title:       best.Title,
		Summary:     best.Summary,
		ChartType:   best.ChartType,
		ChartConfig: best.ChartConfig,
		Kpis:        best.Kpis,
		QueryType:   QueryTypeData,
		Provenance:  ProvenancePreset,
	}
}
