package entity

// Activity is a logged interaction (meeting, call, email).
type Activity struct {
	ID        int64  `json:"id"`
	Type      string `json:"type"`
	Title     string `json:"title"`
	Notes     string `json:"notes"`
	Outcome   string `json:"outcome"`
	Timestamp string `json:"timestamp"` // "2006-01-02 15:04"
}

// ActivityTimestampLayout is the minute-resolution layout stored with activities.
const ActivityTimestampLayout = "2006-01-02 15:04"
