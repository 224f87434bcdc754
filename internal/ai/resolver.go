package ai

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/cubeworks/cubeinsight/internal/logutil"
)

// Resolver runs the full question pipeline: agenda matching, the
// tiered external/preset/synthesized/default resolution, safety
// validation, execution, presentation enrichment, and the optional
// second consulting pass. Resolve always returns a usable Result; a
// broken tier degrades the answer, never the call.
type Resolver struct {
	store   Store
	client  *Client
	matcher *PresetMatcher
	synth   *IntentSynthesizer
	prompts *PromptBuilder

	// now is swappable for deterministic relative-date tests.
	now func() time.Time
}

func NewResolver(store Store, client *Client) *Resolver {
	return &Resolver{
		store:   store,
		client:  client,
		matcher: NewPresetMatcher(PresetCategories()),
		synth:   NewIntentSynthesizer(),
		prompts: NewPromptBuilder(store),
		now:     time.Now,
	}
}

// fallback resolves a question without the external model: preset
// catalog first, then keyword synthesis, then the static project
// summary.
func (r *Resolver) fallback(question string, now time.Time) *Candidate {
	normalized := NormalizeQuestion(question)
	if c := r.matcher.Match(normalized, now); c != nil {
		return c
	}
	if c := r.synth.Synthesize(normalized, now); c != nil {
		return c
	}
	return DefaultCandidate()
}

// Resolve answers one natural-language question.
func (r *Resolver) Resolve(ctx context.Context, question string) *Result {
	start := r.now()
	now := start

	agenda := MatchAgenda(question)
	if agenda != nil {
		log.Info().Str("agenda", agenda.Label).Msg("meeting agenda matched")
	}

	var candidate *Candidate
	apiError := ""
	if r.client.HasCredential() {
		systemPrompt := r.prompts.BuildSystemPrompt(ctx, agenda, now)
		c, err := r.client.GenerateQuery(ctx, question, systemPrompt)
		if err != nil {
			apiError = err.Error()
			log.Warn().Str("error", apiError).Msg("external model failed, using fallback")
			candidate = r.fallback(question, now)
		} else {
			candidate = c
		}
	} else {
		candidate = r.fallback(question, now)
	}

	result := Result{
		ID:            uuid.NewString(),
		SQL:           candidate.SQL,
		Title:         candidate.Title,
		Summary:       candidate.Summary,
		ChartConfig:   candidate.ChartConfig,
		Kpis:          candidate.Kpis,
		QueryType:     candidate.QueryType,
		Provenance:    candidate.Provenance,
		APIError:      apiError,
		MatchedAgenda: "",
	}
	if result.Title == "" {
		result.Title = "분석 결과"
	}
	if result.QueryType == "" {
		result.QueryType = QueryTypeData
	}
	if agenda != nil {
		result.MatchedAgenda = agenda.Label
	}

	// Every candidate passes the safety gate before execution, even the
	// ones this package built itself.
	var queryResult QueryResult
	if err := ValidateSQL(candidate.SQL); err != nil {
		queryResult = QueryResult{Columns: []string{}, Rows: [][]any{}, Err: err.Error()}
	} else {
		queryResult = r.store.Execute(ctx, candidate.SQL)
	}
	result.QueryResult = queryResult

	if queryResult.Err != "" {
		result.SQLError = queryResult.Err
		result.Summary = candidate.Summary + "\n⚠ SQL 실행 오류: " + queryResult.Err
		log.Error().Str("error", queryResult.Err).Str("sql", logutil.SanitizeSQL(candidate.SQL)).Msg("query execution failed")
	} else if len(queryResult.Rows) > 0 {
		// Summaries are rewritten from the actual rows so the text can
		// never contradict the data.
		result.Summary = SummarizeResult(queryResult)
	}

	result.ChartType = RecommendChart(queryResult, candidate.ChartType)

	if len(result.Kpis) == 0 && len(queryResult.Rows) > 0 {
		result.Kpis = AutoKpis(queryResult)
	}

	if r.client.HasCredential() &&
		(result.QueryType == QueryTypeHybrid || result.QueryType == QueryTypeConsulting) &&
		len(queryResult.Rows) > 0 && queryResult.Err == "" {
		result.Report = r.runAnalysisPass(ctx, question, queryResult, candidate, agenda, now)
	}

	elapsed := r.now().Sub(start)
	result.ElapsedMs = elapsed.Milliseconds()

	resolutionsTotal.WithLabelValues(string(result.Provenance)).Inc()
	resolveDuration.Observe(elapsed.Seconds())
	log.Info().
		Str("id", result.ID).
		Str("provenance", string(result.Provenance)).
		Str("queryType", string(result.QueryType)).
		Int("rows", len(queryResult.Rows)).
		Int64("elapsedMs", result.ElapsedMs).
		Msg("question resolved")
	return &result
}

// runAnalysisPass executes the agenda support query and asks the model
// for the consulting report. Returns nil on any failure.
func (r *Resolver) runAnalysisPass(ctx context.Context, question string, queryResult QueryResult, candidate *Candidate, agenda *Agenda, now time.Time) *Report {
	var support *QueryResult
	if agenda != nil && agenda.SupportSQL != "" {
		s := r.store.Execute(ctx, agenda.SupportSQL)
		if s.Err != "" {
			log.Warn().Str("error", s.Err).Msg("support query failed")
		} else {
			support = &s
		}
	}

	report, err := r.client.GenerateAnalysis(ctx, BuildDataContext(question, queryResult, candidate, support, now))
	if err != nil {
		log.Warn().Str("error", err.Error()).Msg("analysis pass failed, returning data only")
		return nil
	}
	return report
}
