package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "0", FormatNumber(0))
	assert.Equal(t, "1,234", FormatNumber(1234))
	assert.Equal(t, "1,234,567", FormatNumber(1234567))
	assert.Equal(t, "-12,345", FormatNumber(-12345))
	assert.Equal(t, "100", FormatNumber(99.6))
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "1.5억원", FormatCurrency(150000000))
	assert.Equal(t, "3500만원", FormatCurrency(35000000))
	assert.Equal(t, "9,999원", FormatCurrency(9999))
	assert.Equal(t, "-2.0억원", FormatCurrency(-200000000))
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "74.0%", FormatPercent(0.74))
	assert.Equal(t, "100.0%", FormatPercent(1))
}

func TestSummarizeResult(t *testing.T) {
	t.Run("single row lists every column", func(t *testing.T) {
		r := QueryResult{
			Columns: []string{"총예산", "집행액"},
			Rows:    [][]any{{float64(1000000), float64(740000)}},
		}
		got := SummarizeResult(r)
		assert.Equal(t, "조회 결과 — 총예산: 1,000,000 | 집행액: 740,000", got)
	})

	t.Run("single row skips nil cells", func(t *testing.T) {
		r := QueryResult{
			Columns: []string{"업체", "금액"},
			Rows:    [][]any{{"금빛건설", nil}},
		}
		assert.Equal(t, "조회 결과 — 업체: 금빛건설", SummarizeResult(r))
	})

	t.Run("small result names the top item", func(t *testing.T) {
		r := QueryResult{
			Columns: []string{"업체", "금액"},
			Rows: [][]any{
				{"금빛건설", float64(500)},
				{"태양토건", float64(300)},
				{"한길전기", float64(100)},
			},
		}
		got := SummarizeResult(r)
		assert.Equal(t, "프로젝트 데이터에서 3건의 결과를 찾았습니다. 상위 항목: 금빛건설 (금액 500)", got)
	})

	t.Run("large result reports the count", func(t *testing.T) {
		r := QueryResult{Columns: []string{"a"}}
		for i := 0; i < 1500; i++ {
			r.Rows = append(r.Rows, []any{int64(i)})
		}
		assert.Equal(t, "총 1,500건의 데이터가 조회되었습니다.", SummarizeResult(r))
	})
}

func TestAutoKpis(t *testing.T) {
	t.Run("empty result yields nothing", func(t *testing.T) {
		assert.Nil(t, AutoKpis(QueryResult{Columns: []string{"a"}}))
	})

	t.Run("single row becomes one KPI per column", func(t *testing.T) {
		r := QueryResult{
			Columns: []string{"총예산", "실행률", "작업수"},
			Rows:    [][]any{{float64(9000000), float64(0.74), int64(120)}},
		}
		kpis := AutoKpis(r)
		require.Len(t, kpis, 3)
		assert.Equal(t, "총예산", kpis[0].Label)
		assert.Equal(t, 0, kpis[0].Column)
		assert.Equal(t, "원", kpis[0].Unit)
		assert.Equal(t, "%", kpis[1].Unit)
		assert.Equal(t, "", kpis[2].Unit)
	})

	t.Run("single row skips nil cells", func(t *testing.T) {
		r := QueryResult{
			Columns: []string{"업체", "금액"},
			Rows:    [][]any{{"금빛건설", nil}},
		}
		kpis := AutoKpis(r)
		require.Len(t, kpis, 1)
		assert.Equal(t, "업체", kpis[0].Label)
	})

	t.Run("multi row gets count plus numeric totals", func(t *testing.T) {
		r := QueryResult{
			Columns: []string{"업체", "금액"},
			Rows: [][]any{
				{"금빛건설", float64(500)},
				{"태양토건", float64(300)},
			},
		}
		kpis := AutoKpis(r)
		require.Len(t, kpis, 2)

		assert.Equal(t, "조회 결과", kpis[0].Label)
		assert.Equal(t, "건", kpis[0].Unit)
		require.NotNil(t, kpis[0].Value)
		assert.Equal(t, float64(2), *kpis[0].Value)

		assert.Equal(t, "금액 합계", kpis[1].Label)
		assert.Equal(t, "원", kpis[1].Unit)
		require.NotNil(t, kpis[1].Value)
		assert.Equal(t, float64(800), *kpis[1].Value)
	})

	t.Run("totals are capped at four cards", func(t *testing.T) {
		r := QueryResult{
			Columns: []string{"g", "a", "b", "c", "d", "e"},
			Rows: [][]any{
				{"x", float64(1), float64(1), float64(1), float64(1), float64(1)},
				{"y", float64(1), float64(1), float64(1), float64(1), float64(1)},
			},
		}
		assert.Len(t, AutoKpis(r), 4)
	})
}
