package ai

import "context"

// ChartType is the chart the caller should render for a result.
type ChartType string

const (
	ChartNone          ChartType = "none"
	ChartBar           ChartType = "bar"
	ChartHorizontalBar ChartType = "horizontalBar"
	ChartLine          ChartType = "line"
	ChartPie           ChartType = "pie"
	ChartDoughnut      ChartType = "doughnut"
)

// Provenance records which resolution tier produced a candidate.
type Provenance string

const (
	ProvenanceExternal    Provenance = "external"
	ProvenancePreset      Provenance = "preset"
	ProvenanceSynthesized Provenance = "synthesized"
	ProvenanceDefault     Provenance = "default"
)

// QueryType classifies a question as plain data lookup, data plus
// interpretation, or theory-centric consulting. Only the external model
// tier produces anything other than QueryTypeData; hybrid and consulting
// questions trigger the second analysis pass.
type QueryType string

const (
	QueryTypeData       QueryType = "data"
	QueryTypeHybrid     QueryType = "hybrid"
	QueryTypeConsulting QueryType = "consulting"
)

// ChartConfig maps result columns onto a chart.
type ChartConfig struct {
	LabelColumn int      `json:"labelColumn"`
	DataColumns []int    `json:"dataColumns"`
	DataLabels  []string `json:"dataLabels"`
}

// KpiSpec describes one KPI card extracted from a result.
// Column -1 means the value is precomputed and carried in Value.
// ValueExpression is only set on model-produced KPIs.
type KpiSpec struct {
	Label           string   `json:"label"`
	Column          int      `json:"col"`
	Unit            string   `json:"unit"`
	Icon            string   `json:"icon"`
	Value           *float64 `json:"value,omitempty"`
	ValueExpression string   `json:"valueExpression,omitempty"`
}

// Candidate is a not-yet-executed proposed answer: a query plus
// presentation metadata. If Err is set the SQL must be ignored.
type Candidate struct {
	SQL         string       `json:"sql"`
	Title       string       `json:"title"`
	Summary     string       `json:"summary"`
	ChartType   ChartType    `json:"chartType"`
	ChartConfig *ChartConfig `json:"chartConfig,omitempty"`
	Kpis        []KpiSpec    `json:"kpis,omitempty"`
	QueryType   QueryType    `json:"queryType,omitempty"`
	Provenance  Provenance   `json:"provenance"`
	Err         string       `json:"error,omitempty"`
}

// QueryResult is the execution output of the data store. Err is in-band:
// the store never panics or returns a Go error for a failed query, so the
// resolver has a single error-handling path.
type QueryResult struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
	Err     string   `json:"error,omitempty"`
}

// Store is the external tabular data-store collaborator. Implementations
// must be read-only; the pipeline never issues a write.
type Store interface {
	Execute(ctx context.Context, sql string) QueryResult
}

// Strategy is one actionable recommendation inside an analysis report.
type Strategy struct {
	Title  string `json:"title"`
	Target string `json:"target"`
	Action string `json:"action"`
	Effect string `json:"effect"`
	Cost   string `json:"cost"`
}

// Report is the second-pass consulting analysis for hybrid/consulting
// questions. All fields are free text produced by the model.
type Report struct {
	ReportTitle    string     `json:"reportTitle"`
	Situation      string     `json:"situation"`
	Strategies     []Strategy `json:"strategies"`
	Tradeoff       string     `json:"tradeoff"`
	Recommendation string     `json:"recommendation"`
	Risk           string     `json:"risk"`
	Simulation     string     `json:"simulation"`
}

// Result is the value returned to the caller: the chosen candidate merged
// with its execution output. Never mutated after return.
type Result struct {
	ID            string       `json:"id"`
	SQL           string       `json:"sql"`
	Title         string       `json:"title"`
	Summary       string       `json:"summary"`
	QueryResult   QueryResult  `json:"result"`
	ChartType     ChartType    `json:"chartType"`
	ChartConfig   *ChartConfig `json:"chartConfig,omitempty"`
	Kpis          []KpiSpec    `json:"kpis"`
	QueryType     QueryType    `json:"queryType"`
	Provenance    Provenance   `json:"provenance"`
	APIError      string       `json:"apiError,omitempty"`
	SQLError      string       `json:"sqlError,omitempty"`
	MatchedAgenda string       `json:"matchedAgenda,omitempty"`
	Report        *Report      `json:"analysis,omitempty"`
	ElapsedMs     int64        `json:"elapsedMs"`
}
