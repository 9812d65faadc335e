package repository

import (
	"context"

	"github.com/user/crm-service/internal/entity"
)

// AnalyticsRepository stores raw metric points and the aggregates the dashboard reads.
type AnalyticsRepository interface {
	List(ctx context.Context) ([]*entity.AnalyticsPoint, error)
	Create(ctx context.Context, p *entity.AnalyticsPoint) (*entity.AnalyticsPoint, error)
	// ListByMetricPrefix returns points whose metric starts with prefix, oldest first.
	ListByMetricPrefix(ctx context.Context, prefix string) ([]*entity.AnalyticsPoint, error)
	KPI(ctx context.Context) (*entity.KPI, error)
	Metrics(ctx context.Context) (*entity.DashboardMetrics, error)
}
