package entity

import "time"

// Contact mirrors the `contacts` table. Company holds the company name, not an id.
type Contact struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Company     string    `json:"company"`
	Role        string    `json:"role"`
	Designation string    `json:"designation"`
	LinkedIn    string    `json:"linkedin"`
	CreatedAt   time.Time `json:"created_at"`
}
