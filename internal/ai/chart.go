package ai

// RecommendChart maps a result shape to a chart type. A non-none hint
// from a preset, the model, or the synthesizer always wins. Rules are
// evaluated in order; the first match applies:
// no rows → none; single row up to 4 columns → none (rendered as KPIs);
// ≤5 rows × 2 columns → doughnut; ≤12 rows → bar; >12 rows → line.
func RecommendChart(result QueryResult, hint ChartType) ChartType {
	if hint != "" && hint != ChartNone {
		return hint
	}
	rows := len(result.Rows)
	cols := len(result.Columns)

	switch {
	case rows == 0:
		return ChartNone
	case rows == 1 && cols <= 4:
		return ChartNone
	case rows <= 5 && cols == 2:
		return ChartDoughnut
	case rows <= 12 && cols >= 2:
		return ChartBar
	case rows > 12:
		return ChartLine
	default:
		return ChartBar
	}
}
