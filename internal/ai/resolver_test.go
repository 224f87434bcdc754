package ai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubStore routes every query through a single function so tests can
// script execution outcomes per statement.
type stubStore struct {
	fn func(sql string) QueryResult
}

func (s stubStore) Execute(_ context.Context, sql string) QueryResult {
	return s.fn(sql)
}

func newTestResolver(store Store, client *Client) *Resolver {
	r := NewResolver(store, client)
	r.now = func() time.Time { return fixedNow }
	return r
}

func noCredentialClient() *Client {
	return NewClient(DefaultClientConfig())
}

func TestResolve_PresetTier(t *testing.T) {
	store := stubStore{fn: func(sql string) QueryResult {
		return QueryResult{
			Columns: []string{"기준월", "예상기성액"},
			Rows:    [][]any{{"2026-08", float64(1250000000)}},
		}
	}}
	r := newTestResolver(store, noCredentialClient())

	res := r.Resolve(context.Background(), "이번 달 청구될 예상 기성 총액은 얼마인가?")
	assert.Equal(t, ProvenancePreset, res.Provenance)
	assert.Equal(t, "금월 예상 기성 총액", res.Title)
	assert.Empty(t, res.APIError)
	assert.Empty(t, res.SQLError)
	// Single aggregate row renders as KPI cards, not a chart.
	assert.Equal(t, ChartNone, res.ChartType)
	require.Len(t, res.Kpis, 1)
	assert.Equal(t, 1, res.Kpis[0].Column)
	// The summary is recomposed from the executed rows.
	assert.Contains(t, res.Summary, "1,250,000,000")
	assert.NotEmpty(t, res.ID)
}

func TestResolve_SynthesizedTier(t *testing.T) {
	var gotSQL string
	store := stubStore{fn: func(sql string) QueryResult {
		gotSQL = sql
		return QueryResult{
			Columns: []string{"동", "작업수", "경비"},
			Rows: [][]any{
				{"본관동", int64(40), float64(90000000)},
				{"별관동", int64(25), float64(45000000)},
			},
		}
	}}
	r := newTestResolver(store, noCredentialClient())

	res := r.Resolve(context.Background(), "동별 경비 집계")
	assert.Equal(t, ProvenanceSynthesized, res.Provenance)
	assert.Contains(t, gotSQL, "GROUP BY WHERE2_동")
	assert.Equal(t, ChartHorizontalBar, res.ChartType)
	// The synthesizer carries no KPI specs, so they come from the rows.
	require.NotEmpty(t, res.Kpis)
	assert.Equal(t, "조회 결과", res.Kpis[0].Label)
}

func TestResolve_DefaultTier(t *testing.T) {
	store := stubStore{fn: func(sql string) QueryResult {
		return QueryResult{
			Columns: []string{"구분", "값"},
			Rows: [][]any{
				{"총 작업 수", float64(1824)},
				{"참여 업체 수", float64(37)},
			},
		}
	}}
	r := newTestResolver(store, noCredentialClient())

	res := r.Resolve(context.Background(), "안녕하세요")
	assert.Equal(t, ProvenanceDefault, res.Provenance)
	assert.Contains(t, res.SQL, "UNION")
}

func TestResolve_SQLErrorKeepsAnswerUsable(t *testing.T) {
	store := stubStore{fn: func(sql string) QueryResult {
		return QueryResult{Columns: []string{}, Rows: [][]any{}, Err: "SQL 실행 오류: no such column: 없는컬럼"}
	}}
	r := newTestResolver(store, noCredentialClient())

	res := r.Resolve(context.Background(), "이번 달 청구될 예상 기성 총액은 얼마인가?")
	assert.NotEmpty(t, res.SQLError)
	assert.Contains(t, res.Summary, "⚠ SQL 실행 오류: ")
	assert.Equal(t, ChartNone, res.ChartType)
	assert.Empty(t, res.QueryResult.Rows)
}

func TestResolve_ExternalFailureFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": {"details": "API_KEY_INVALID"}}`))
	}))
	defer srv.Close()

	store := stubStore{fn: func(sql string) QueryResult {
		return QueryResult{
			Columns: []string{"기준월", "예상기성액"},
			Rows:    [][]any{{"2026-08", float64(500)}},
		}
	}}
	r := newTestResolver(store, testClient(srv))

	res := r.Resolve(context.Background(), "이번 달 청구될 예상 기성 총액은 얼마인가?")
	// The external error is advisory; the preset still answers.
	assert.Equal(t, ProvenancePreset, res.Provenance)
	assert.Contains(t, res.APIError, "API 키가 유효하지 않습니다")
	assert.Empty(t, res.SQLError)
}

func TestResolve_ExternalCandidateIsValidated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(candidateBody(t, `{"sql": "DELETE FROM evms", "queryType": "data"}`))
	}))
	defer srv.Close()

	executed := false
	store := stubStore{fn: func(sql string) QueryResult {
		if strings.Contains(sql, "DELETE") {
			executed = true
		}
		return QueryResult{Columns: []string{"구분"}, Rows: [][]any{{"x"}}}
	}}
	r := newTestResolver(store, testClient(srv))

	res := r.Resolve(context.Background(), "전체 데이터 지워줘")
	// The unsafe reply never reaches the store; the fallback answers.
	assert.False(t, executed)
	assert.NotEmpty(t, res.APIError)
	assert.NotEqual(t, ProvenanceExternal, res.Provenance)
}

func TestResolve_HybridRunsAnalysisPass(t *testing.T) {
	report := `{"reportTitle": "기성 청구 전략", "situation": "s", "strategies": [], "tradeoff": "t", "recommendation": "r", "risk": "", "simulation": ""}`
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.Write(candidateBody(t, `{"sql": "SELECT HOW2_대공종, SUM(R10_합계_금액) FROM evms GROUP BY HOW2_대공종", "title": "공종별 기성", "summary": "s", "chartType": "bar", "queryType": "hybrid"}`))
			return
		}
		w.Write(candidateBody(t, "```json\n"+report+"\n```"))
	}))
	defer srv.Close()

	supportRan := false
	store := stubStore{fn: func(sql string) QueryResult {
		if strings.Contains(sql, "WHEN4_실행률") {
			supportRan = true
		}
		return QueryResult{
			Columns: []string{"공종", "금액"},
			Rows:    [][]any{{"철근콘크리트", float64(100)}, {"마감", float64(50)}},
		}
	}}
	r := newTestResolver(store, testClient(srv))

	res := r.Resolve(context.Background(), "이번 달 기성 청구 전략을 분석해줘")
	assert.Equal(t, ProvenanceExternal, res.Provenance)
	assert.Equal(t, QueryTypeHybrid, res.QueryType)
	assert.Equal(t, "기성 산출", res.MatchedAgenda)
	assert.True(t, supportRan)
	require.NotNil(t, res.Report)
	assert.Equal(t, "기성 청구 전략", res.Report.ReportTitle)
	assert.Equal(t, 2, calls)
}

func TestResolve_DataQuestionSkipsAnalysisPass(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write(candidateBody(t, `{"sql": "SELECT 1", "title": "t", "summary": "s", "queryType": "data"}`))
	}))
	defer srv.Close()

	store := stubStore{fn: func(sql string) QueryResult {
		return QueryResult{Columns: []string{"v"}, Rows: [][]any{{int64(1)}}}
	}}
	r := newTestResolver(store, testClient(srv))

	res := r.Resolve(context.Background(), "본관동 작업 수는?")
	assert.Nil(t, res.Report)
	assert.Equal(t, 1, calls)
}

func TestResolve_EmptyTitleGetsDefault(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(candidateBody(t, `{"sql": "SELECT COUNT(*) FROM evms"}`))
	}))
	defer srv.Close()

	store := stubStore{fn: func(sql string) QueryResult {
		return QueryResult{Columns: []string{"COUNT(*)"}, Rows: [][]any{{int64(1824)}}}
	}}
	r := newTestResolver(store, testClient(srv))

	res := r.Resolve(context.Background(), "작업 건수 알려줘")
	assert.Equal(t, ProvenanceExternal, res.Provenance)
	assert.Equal(t, "분석 결과", res.Title)
	assert.Equal(t, QueryTypeData, res.QueryType)
}
