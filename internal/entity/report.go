package entity

import "time"

// ReportMetadata is the best-effort record recovered from a report's text.
// Every field is independently absent (nil) when nothing matched.
type ReportMetadata struct {
	Company  *string  `json:"company"`
	Year     *int     `json:"year"`
	ESGScore *float64 `json:"esg_score"`
	Metrics  *string  `json:"metrics"`
	Summary  *string  `json:"summary"`
}

// Empty reports whether no field was extracted.
func (m ReportMetadata) Empty() bool {
	return m.Company == nil && m.Year == nil && m.ESGScore == nil && m.Metrics == nil && m.Summary == nil
}

// Report mirrors the `reports` table. Uploaded documents carry Filename and
// OriginalName; manually registered reports carry Name and URL.
type Report struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name,omitempty"`
	URL          string    `json:"url,omitempty"`
	Filename     string    `json:"filename,omitempty"`
	OriginalName string    `json:"originalname,omitempty"`
	Status       string    `json:"status,omitempty"` // "Submitted", "Draft"
	Standard     string    `json:"standard,omitempty"`
	UploadedAt   time.Time `json:"uploaded_at"`
	ReportMetadata
}

// ReportPatch holds editable report fields; nil means unchanged.
type ReportPatch struct {
	Company  *string  `json:"company"`
	Year     *int     `json:"year"`
	ESGScore *float64 `json:"esg_score"`
	Metrics  *string  `json:"metrics"`
	Summary  *string  `json:"summary"`
	Status   *string  `json:"status"`
	Standard *string  `json:"standard"`
}
