package entity

import "time"

// Company mirrors the `companies` table.
type Company struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Industry  string    `json:"industry"`
	Contact   string    `json:"contact"`
	ESGScore  *float64  `json:"esg_score"`
	CreatedAt time.Time `json:"created_at"`
}
