package entity

// AnalyticsPoint is one stored metric observation.
type AnalyticsPoint struct {
	ID     int64   `json:"id"`
	Metric string  `json:"metric"`
	Value  float64 `json:"value"`
	Period string  `json:"period"`
}

// Metric names with chart meaning.
const (
	MetricSales            = "sales"
	MetricLeadSourcePrefix = "lead_source:"
)

// ChartDataset matches the dataset shape the dashboard charts consume.
type ChartDataset struct {
	Label string    `json:"label"`
	Data  []float64 `json:"data"`
}

type ChartSeries struct {
	Labels   []string       `json:"labels"`
	Datasets []ChartDataset `json:"datasets"`
}
