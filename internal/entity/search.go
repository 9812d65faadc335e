package entity

// Search result types.
const (
	SearchTypeCompany    = "company"
	SearchTypeContact    = "contact"
	SearchTypeLead       = "lead"
	SearchTypeReport     = "report"
	SearchTypeCompliance = "compliance"
)

// SearchResult is one hit from the global search.
type SearchResult struct {
	Type     string `json:"type"`
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
}
