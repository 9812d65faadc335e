package repository

import (
	"context"

	"github.com/user/crm-service/internal/entity"
)

// ReportRepository defines persistence for report records.
type ReportRepository interface {
	List(ctx context.Context) ([]*entity.Report, error)
	Get(ctx context.Context, id int64) (*entity.Report, error)
	Create(ctx context.Context, r *entity.Report) (*entity.Report, error)
	Update(ctx context.Context, id int64, patch entity.ReportPatch) (*entity.Report, error)
	Delete(ctx context.Context, id int64) error
	// ESGBreakdown averages extracted ESG scores per company.
	ESGBreakdown(ctx context.Context) ([]*entity.ESGBreakdownItem, error)
}
