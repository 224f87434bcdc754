package ai

import (
	"fmt"
	"strings"
)

var kpiIcons = []string{"fa-chart-simple", "fa-coins", "fa-layer-group", "fa-percent", "fa-building"}

// FormatNumber renders a number with thousands separators.
func FormatNumber(n float64) string {
	neg := n < 0
	if neg {
		n = -n
	}
	whole := fmt.Sprintf("%.0f", n)
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, d := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	return b.String()
}

// FormatCurrency renders an amount in won, scaling to 억원/만원 for
// readability the way site reports are written.
func FormatCurrency(n float64) string {
	abs := n
	if abs < 0 {
		abs = -abs
	}
	switch {
	case abs >= 1e8:
		return fmt.Sprintf("%.1f억원", n/1e8)
	case abs >= 1e4:
		return fmt.Sprintf("%.0f만원", n/1e4)
	default:
		return FormatNumber(n) + "원"
	}
}

// FormatPercent renders a 0..1 ratio as a percentage.
func FormatPercent(n float64) string {
	return fmt.Sprintf("%.1f%%", n*100)
}

func formatCell(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case float64:
		return FormatNumber(t)
	case int64:
		return FormatNumber(float64(t))
	default:
		return fmt.Sprintf("%v", t)
	}
}

func cellNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int64:
		return float64(t), true
	default:
		return 0, false
	}
}

// SummarizeResult composes a summary sentence from the actual execution
// output, so the text the caller shows can never contradict the data.
// Single-row results list every column; small results name the top item;
// anything larger reports the row count.
func SummarizeResult(result QueryResult) string {
	cols := result.Columns
	rows := result.Rows

	if len(rows) == 1 && len(cols) <= 5 {
		var parts []string
		for i, col := range cols {
			if i < len(rows[0]) && rows[0][i] != nil {
				parts = append(parts, col+": "+formatCell(rows[0][i]))
			}
		}
		return "조회 결과 — " + strings.Join(parts, " | ")
	}

	if len(rows) <= 10 {
		lastCol := ""
		if len(cols) > 0 {
			lastCol = cols[len(cols)-1]
		}
		topItem := formatCell(rows[0][0])
		topVal := formatCell(rows[0][len(cols)-1])
		return fmt.Sprintf("프로젝트 데이터에서 %d건의 결과를 찾았습니다. 상위 항목: %s (%s %s)",
			len(rows), topItem, lastCol, topVal)
	}

	return fmt.Sprintf("총 %s건의 데이터가 조회되었습니다.", FormatNumber(float64(len(rows))))
}

// unitForColumn infers a KPI unit from a Korean column name.
func unitForColumn(col string) string {
	lower := strings.ToLower(col)
	switch {
	case strings.Contains(lower, "금액"), strings.Contains(lower, "공사비"),
		strings.Contains(lower, "예산"), strings.Contains(lower, "노무비"),
		strings.Contains(lower, "재료비"):
		return "원"
	case strings.Contains(lower, "%"), strings.Contains(lower, "비율"),
		strings.Contains(lower, "실행률"):
		return "%"
	default:
		return ""
	}
}

// AutoKpis derives KPI specs from a result when the chosen candidate
// carried none. A single row becomes one KPI per column; multi-row
// results get the row count plus numeric column totals, capped at four.
func AutoKpis(result QueryResult) []KpiSpec {
	var kpis []KpiSpec
	cols := result.Columns
	rows := result.Rows
	if len(rows) == 0 {
		return nil
	}

	if len(rows) == 1 && len(cols) <= 6 {
		for i, col := range cols {
			if i >= len(rows[0]) || rows[0][i] == nil {
				continue
			}
			kpis = append(kpis, KpiSpec{
				Label:  col,
				Column: i,
				Icon:   kpiIcons[i%len(kpiIcons)],
				Unit:   unitForColumn(col),
			})
		}
		return kpis
	}

	count := float64(len(rows))
	kpis = append(kpis, KpiSpec{Label: "조회 결과", Column: -1, Icon: "fa-list", Unit: "건", Value: &count})
	for i, col := range cols {
		if i == 0 || len(kpis) >= 4 {
			continue
		}
		if _, ok := cellNumber(rows[0][i]); !ok {
			continue
		}
		sum := 0.0
		for _, row := range rows {
			if i < len(row) {
				if v, ok := cellNumber(row[i]); ok {
					sum += v
				}
			}
		}
		unit := ""
		if u := unitForColumn(col); u == "원" {
			unit = "원"
		}
		total := sum
		kpis = append(kpis, KpiSpec{
			Label:  col + " 합계",
			Column: -1,
			Icon:   kpiIcons[len(kpis)%len(kpiIcons)],
			Unit:   unit,
			Value:  &total,
		})
	}
	return kpis
}
