package response

import (
	"github.com/user/crm-service/internal/entity"
)

// UploadResponse keeps the flat shape the reports page reads after an upload.
type UploadResponse struct {
	OK           bool     `json:"ok"`
	ID           int64    `json:"id"`
	Filename     string   `json:"filename"`
	OriginalName string   `json:"originalname"`
	Company      *string  `json:"company"`
	Year         *int     `json:"year"`
	Metrics      *string  `json:"metrics"`
	Summary      *string  `json:"summary"`
	ESGScore     *float64 `json:"esg_score"`
}

func NewUploadResponse(r *entity.Report) UploadResponse {
	return UploadResponse{
		OK:           true,
		ID:           r.ID,
		Filename:     r.Filename,
		OriginalName: r.OriginalName,
		Company:      r.Company,
		Year:         r.Year,
		Metrics:      r.Metrics,
		Summary:      r.Summary,
		ESGScore:     r.ESGScore,
	}
}

// Result is the {ok, message, error} envelope used by upload and account endpoints.
type Result struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

type SearchResponse struct {
	Results []entity.SearchResult `json:"results"`
}

type LoginResponse struct {
	OK        bool   `json:"ok"`
	Token     string `json:"token"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	ExpiresAt string `json:"expires_at"`
}

type Success struct {
	Success bool `json:"success"`
}

type Health struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services"`
}
