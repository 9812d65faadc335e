package entity

import "time"

// Compliance tracks one regulatory obligation.
type Compliance struct {
	ID      int64      `json:"id"`
	Name    string     `json:"name"`
	Status  string     `json:"status"`
	DueDate *time.Time `json:"due_date"`
	Notes   string     `json:"notes"`
}

// ComplianceStatusCompliant is the status counted as satisfied on the dashboard.
const ComplianceStatusCompliant = "Compliant"
