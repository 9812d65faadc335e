package entity

type Reminder struct {
	ID   int64  `json:"id"`
	Task string `json:"task"`
	Due  string `json:"due"` // free text, e.g. "Tomorrow"
	Done bool   `json:"done"`
}
