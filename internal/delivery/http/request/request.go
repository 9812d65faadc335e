package request

import (
	"fmt"
	"time"

	"github.com/user/crm-service/internal/entity"
)

type Company struct {
	Name     string   `json:"name"`
	Industry string   `json:"industry"`
	Contact  string   `json:"contact"`
	ESGScore *float64 `json:"esg_score"`
}

func (c Company) Entity(id int64) *entity.Company {
	return &entity.Company{ID: id, Name: c.Name, Industry: c.Industry, Contact: c.Contact, ESGScore: c.ESGScore}
}

type Contact struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Company     string `json:"company"`
	Role        string `json:"role"`
	Designation string `json:"designation"`
	LinkedIn    string `json:"linkedin"`
}

func (c Contact) Entity(id int64) *entity.Contact {
	return &entity.Contact{
		ID: id, Name: c.Name, Email: c.Email, Phone: c.Phone, Company: c.Company,
		Role: c.Role, Designation: c.Designation, LinkedIn: c.LinkedIn,
	}
}

type Lead struct {
	Name    string   `json:"name"`
	Email   string   `json:"email"`
	Company string   `json:"company"`
	Stage   string   `json:"stage"`
	Status  string   `json:"status"`
	Value   *float64 `json:"value"`
	Contact string   `json:"contact"`
	Notes   string   `json:"notes"`
}

func (l Lead) Entity() *entity.Lead {
	out := &entity.Lead{
		Name: l.Name, Email: l.Email, Company: l.Company, Stage: l.Stage,
		Status: l.Status, Contact: l.Contact, Notes: l.Notes,
	}
	if l.Value != nil {
		out.Value = *l.Value
	}
	return out
}

type LeadStatus struct {
	Status string `json:"status"`
}

// Activity has no timestamp; the server assigns it.
type Activity struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Notes   string `json:"notes"`
	Outcome string `json:"outcome"`
}

func (a Activity) Entity() *entity.Activity {
	return &entity.Activity{Type: a.Type, Title: a.Title, Notes: a.Notes, Outcome: a.Outcome}
}

type Reminder struct {
	Task string `json:"task"`
	Due  string `json:"due"`
}

type ReminderDone struct {
	Done bool `json:"done"`
}

type Notification struct {
	Type      string     `json:"type"`
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	Timestamp *time.Time `json:"timestamp"`
	Read      bool       `json:"read"`
}

func (n Notification) Entity() *entity.Notification {
	out := &entity.Notification{Type: n.Type, Title: n.Title, Message: n.Message, Read: n.Read}
	if n.Timestamp != nil {
		out.Timestamp = *n.Timestamp
	}
	return out
}

type NotificationRead struct {
	Read bool `json:"read"`
}

type Compliance struct {
	Name    string  `json:"name"`
	Status  string  `json:"status"`
	DueDate *string `json:"due_date"`
	Notes   string  `json:"notes"`
}

// Entity parses due_date as YYYY-MM-DD.
func (c Compliance) Entity() (*entity.Compliance, error) {
	out := &entity.Compliance{Name: c.Name, Status: c.Status, Notes: c.Notes}
	if c.DueDate != nil && *c.DueDate != "" {
		d, err := time.Parse(time.DateOnly, *c.DueDate)
		if err != nil {
			return nil, fmt.Errorf("%w: due_date: %v", ErrInvalidBody, err)
		}
		out.DueDate = &d
	}
	return out, nil
}

type Analytics struct {
	Metric string  `json:"metric"`
	Value  float64 `json:"value"`
	Period string  `json:"period"`
}

func (a Analytics) Entity() *entity.AnalyticsPoint {
	return &entity.AnalyticsPoint{Metric: a.Metric, Value: a.Value, Period: a.Period}
}

type Report struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type Signup struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Login struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserID addresses a pending signup in approve/reject calls.
type UserID struct {
	ID int64 `json:"id"`
}
