package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func makeResult(rows, cols int) QueryResult {
	r := QueryResult{}
	for i := 0; i < cols; i++ {
		r.Columns = append(r.Columns, "c")
	}
	for i := 0; i < rows; i++ {
		row := make([]any, cols)
		r.Rows = append(r.Rows, row)
	}
	return r
}

func TestRecommendChart(t *testing.T) {
	tests := []struct {
		name string
		rows int
		cols int
		hint ChartType
		want ChartType
	}{
		{"hint always wins", 30, 3, ChartPie, ChartPie},
		{"none hint is ignored", 3, 2, ChartNone, ChartDoughnut},
		{"empty result", 0, 2, "", ChartNone},
		{"single row few columns renders as KPIs", 1, 4, "", ChartNone},
		{"single row many columns falls through", 1, 5, "", ChartBar},
		{"small two-column result", 5, 2, "", ChartDoughnut},
		{"medium result", 12, 3, "", ChartBar},
		{"large result", 13, 2, "", ChartLine},
		{"six rows two columns", 6, 2, "", ChartBar},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RecommendChart(makeResult(tt.rows, tt.cols), tt.hint)
			assert.Equal(t, tt.want, got)
		})
	}
}
