package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"fenced block", "설명입니다.\n```json\n{\"sql\": \"SELECT 1\"}\n```\n끝.", `{"sql": "SELECT 1"}`},
		{"bare braces", "앞말 {\"sql\": \"SELECT 1\"} 뒷말", `{"sql": "SELECT 1"}`},
		{"already clean", "  {\"sql\": \"SELECT 1\"}  ", `{"sql": "SELECT 1"}`},
		{"no json at all", "  그냥 텍스트  ", "그냥 텍스트"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractJSON(tt.in))
		})
	}
}

// modelFromPath pulls the model name out of /{model}:generateContent.
func modelFromPath(path string) string {
	name := strings.TrimPrefix(path, "/")
	return strings.TrimSuffix(name, ":generateContent")
}

func candidateBody(t *testing.T, text string) []byte {
	t.Helper()
	body, err := json.Marshal(map[string]any{
		"candidates": []any{map[string]any{
			"content":      map[string]any{"parts": []any{map[string]any{"text": text}}},
			"finishReason": "STOP",
		}},
	})
	require.NoError(t, err)
	return body
}

func testClient(srv *httptest.Server) *Client {
	cfg := DefaultClientConfig()
	cfg.Credential = "test-key"
	cfg.BaseURL = srv.URL + "/"
	cfg.Timeout = 5 * time.Second
	return NewClient(cfg)
}

func TestGenerateQuery_NoCredential(t *testing.T) {
	c := NewClient(DefaultClientConfig())
	_, err := c.GenerateQuery(context.Background(), "질문", "프롬프트")
	assert.ErrorIs(t, err, ErrNoCredential)
}

func TestGenerateQuery_Success(t *testing.T) {
	reply := "```json\n" + `{
		"sql": "SELECT HOW2_대공종, SUM(R10_합계_금액) FROM evms GROUP BY HOW2_대공종",
		"title": "공종별 합계",
		"summary": "공종별 합계 금액입니다.",
		"chartType": "bar",
		"chartConfig": {"labelColumn": 0, "dataColumns": [1]},
		"queryType": "data"
	}` + "\n```"

	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.URL.Query().Get("key")
		w.Write(candidateBody(t, reply))
	}))
	defer srv.Close()

	c := testClient(srv)
	cand, err := c.GenerateQuery(context.Background(), "공종별 합계", "프롬프트")
	require.NoError(t, err)
	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, ProvenanceExternal, cand.Provenance)
	assert.Equal(t, "공종별 합계", cand.Title)
	assert.Equal(t, ChartBar, cand.ChartType)
	assert.Equal(t, QueryTypeData, cand.QueryType)
	require.NotNil(t, cand.ChartConfig)
	assert.Equal(t, []int{1}, cand.ChartConfig.DataColumns)
}

func TestGenerateQuery_UnknownQueryTypeDefaultsToData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(candidateBody(t, `{"sql": "SELECT 1", "queryType": "whatever"}`))
	}))
	defer srv.Close()

	cand, err := testClient(srv).GenerateQuery(context.Background(), "질문", "프롬프트")
	require.NoError(t, err)
	assert.Equal(t, QueryTypeData, cand.QueryType)
}

func TestGenerateQuery_ChainAdvancesOnRetryable(t *testing.T) {
	var attempts []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		model := modelFromPath(r.URL.Path)
		attempts = append(attempts, model)
		if len(attempts) <= 2 {
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"error": {"message": "quota exceeded"}}`))
			return
		}
		w.Write(candidateBody(t, `{"sql": "SELECT 1", "title": "t", "summary": "s"}`))
	}))
	defer srv.Close()

	c := testClient(srv)
	cand, err := c.GenerateQuery(context.Background(), "질문", "프롬프트")
	require.NoError(t, err)
	assert.Equal(t, ProvenanceExternal, cand.Provenance)
	assert.Equal(t, []string{"gemini-2.5-flash-lite", "gemini-2.0-flash", "gemini-2.0-flash-lite"}, attempts)
	// The model that answered leads the chain from now on.
	assert.Equal(t, "gemini-2.0-flash-lite", c.PreferredModel())
}

func TestGenerateQuery_ExhaustedChain(t *testing.T) {
	var attempts int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error": {"message": "model not found"}}`))
	}))
	defer srv.Close()

	_, err := testClient(srv).GenerateQuery(context.Background(), "질문", "프롬프트")
	require.Error(t, err)
	assert.Equal(t, 4, attempts)

	var me *ModelError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, http.StatusNotFound, me.Status)
}

func TestGenerateQuery_InvalidKeyStopsChain(t *testing.T) {
	var attempts int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": {"status": "INVALID_ARGUMENT", "details": "API_KEY_INVALID"}}`))
	}))
	defer srv.Close()

	_, err := testClient(srv).GenerateQuery(context.Background(), "질문", "프롬프트")
	require.Error(t, err)
	// A bad key fails identically everywhere; only one attempt is made.
	assert.Equal(t, 1, attempts)
	assert.Contains(t, err.Error(), "API 키가 유효하지 않습니다")
}

func TestGenerateQuery_UnsafeSQLIsTerminal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(candidateBody(t, `{"sql": "DROP TABLE evms"}`))
	}))
	defer srv.Close()

	_, err := testClient(srv).GenerateQuery(context.Background(), "질문", "프롬프트")
	require.Error(t, err)
	assert.True(t, IsUnsafeQuery(err))
}

func TestGenerateQuery_ProseReplyIsTerminal(t *testing.T) {
	var attempts int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.Write(candidateBody(t, "죄송하지만 SQL을 만들 수 없습니다."))
	}))
	defer srv.Close()

	_, err := testClient(srv).GenerateQuery(context.Background(), "질문", "프롬프트")
	require.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestGenerateQuery_EmptyCandidateRetries(t *testing.T) {
	var attempts int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.Write([]byte(`{"candidates": [{"content": {"parts": []}, "finishReason": "SAFETY"}]}`))
			return
		}
		w.Write(candidateBody(t, `{"sql": "SELECT 1"}`))
	}))
	defer srv.Close()

	cand, err := testClient(srv).GenerateQuery(context.Background(), "질문", "프롬프트")
	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
	assert.Equal(t, "SELECT 1", cand.SQL)
}

func TestGenerateAnalysis(t *testing.T) {
	reply := "```json\n" + `{
		"reportTitle": "실행률 부진 공종 만회 전략",
		"situation": "철근콘크리트 공종의 실행률이 목표 대비 12%p 낮습니다.",
		"strategies": [
			{"title": "돌관 투입", "target": "철근콘크리트", "action": "야간조 편성", "effect": "공기 2주 단축", "cost": "노무비 8% 증가"}
		],
		"tradeoff": "돌관 투입은 노무비 상승을 수반합니다.",
		"recommendation": "주간 공정회의에서 만회 계획을 확정하십시오.",
		"risk": "우천 시 야간 작업 중단 가능성",
		"simulation": "야간조 2개 편성 시 9월 말 만회 완료"
	}` + "\n```"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(candidateBody(t, reply))
	}))
	defer srv.Close()

	report, err := testClient(srv).GenerateAnalysis(context.Background(), "데이터 컨텍스트")
	require.NoError(t, err)
	assert.Equal(t, "실행률 부진 공종 만회 전략", report.ReportTitle)
	require.Len(t, report.Strategies, 1)
	assert.Equal(t, "돌관 투입", report.Strategies[0].Title)
	assert.NotEmpty(t, report.Recommendation)
}

func TestGenerateAnalysis_FailureIsReported(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": {"message": "quota exceeded"}}`))
	}))
	defer srv.Close()

	_, err := testClient(srv).GenerateAnalysis(context.Background(), "데이터 컨텍스트")
	require.Error(t, err)
}
