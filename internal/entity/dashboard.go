package entity

// KPI is the headline block of the dashboard.
type KPI struct {
	Revenue             float64 `json:"revenue"`
	Leads               int64   `json:"leads"`
	Conversion          float64 `json:"conversion"` // percent of leads in a won stage
	Companies           int64   `json:"companies"`
	OutstandingPayments float64 `json:"outstandingPayments"`
}

// DashboardMetrics is the secondary metric block.
type DashboardMetrics struct {
	ESG        float64 `json:"esg"`        // average ESG score across reports
	Tasks      int64   `json:"tasks"`      // open reminders
	Compliance float64 `json:"compliance"` // percent of compliances in compliant status
	Tickets    int64   `json:"tickets"`    // unread notifications
}

// ESGBreakdownItem aggregates report scores for one company.
type ESGBreakdownItem struct {
	Company      string  `json:"company"`
	AverageScore float64 `json:"average_score"`
	Reports      int64   `json:"reports"`
}

// DashboardSummary combines both blocks with a one-line narrative.
type DashboardSummary struct {
	KPI           KPI              `json:"kpi"`
	Metrics       DashboardMetrics `json:"metrics"`
	SummaryReport string           `json:"summaryReport"`
}
