package entity

import "time"

type Lead struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Company   string    `json:"company"`
	Stage     string    `json:"stage"`
	Status    string    `json:"status"` // pipeline column, e.g. "Marketing", "Sales"
	Value     float64   `json:"value"`
	Contact   string    `json:"contact"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}

// Pipeline stages with dashboard meaning, matched case-insensitively.
const (
	LeadStageWon      = "won"
	LeadStageInvoiced = "invoiced"
)
