package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/user/crm-service/internal/entity"
)

// AnalyticsRepoImpl implements repository.AnalyticsRepository on PostgreSQL.
type AnalyticsRepoImpl struct {
	db *pgxpool.Pool
}

func NewAnalyticsRepo(db *pgxpool.Pool) *AnalyticsRepoImpl {
	return &AnalyticsRepoImpl{db: db}
}

func (r *AnalyticsRepoImpl) query(ctx context.Context, sql string, args ...any) ([]*entity.AnalyticsPoint, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	points := []*entity.AnalyticsPoint{}
	for rows.Next() {
		var p entity.AnalyticsPoint
		if err := rows.Scan(&p.ID, &p.Metric, &p.Value, &p.Period); err != nil {
			return nil, err
		}
		points = append(points, &p)
	}
	return points, rows.Err()
}

func (r *AnalyticsRepoImpl) List(ctx context.Context) ([]*entity.AnalyticsPoint, error) {
	return r.query(ctx, `SELECT id, metric, value, period FROM analytics ORDER BY id DESC`)
}

func (r *AnalyticsRepoImpl) ListByMetricPrefix(ctx context.Context, prefix string) ([]*entity.AnalyticsPoint, error) {
	return r.query(ctx,
		`SELECT id, metric, value, period FROM analytics WHERE starts_with(metric, $1) ORDER BY id ASC`,
		prefix,
	)
}

func (r *AnalyticsRepoImpl) Create(ctx context.Context, p *entity.AnalyticsPoint) (*entity.AnalyticsPoint, error) {
	var out entity.AnalyticsPoint
	err := r.db.QueryRow(ctx,
		`INSERT INTO analytics (metric, value, period) VALUES ($1, $2, $3) RETURNING id, metric, value, period`,
		p.Metric, p.Value, p.Period,
	).Scan(&out.ID, &out.Metric, &out.Value, &out.Period)
	if err != nil {
		return nil, translateErr(err)
	}
	return &out, nil
}

// KPI aggregates lead and company counts in a single round trip.
func (r *AnalyticsRepoImpl) KPI(ctx context.Context) (*entity.KPI, error) {
	var (
		kpi entity.KPI
		won int64
	)
	err := r.db.QueryRow(ctx,
		`SELECT
			(SELECT COALESCE(SUM(value), 0) FROM leads WHERE lower(stage) = $1 OR lower(status) = $1),
			(SELECT COUNT(*) FROM leads),
			(SELECT COUNT(*) FROM leads WHERE lower(stage) = $1 OR lower(status) = $1),
			(SELECT COUNT(*) FROM companies),
			(SELECT COALESCE(SUM(value), 0) FROM leads WHERE lower(stage) = $2 OR lower(status) = $2)`,
		entity.LeadStageWon, entity.LeadStageInvoiced,
	).Scan(&kpi.Revenue, &kpi.Leads, &won, &kpi.Companies, &kpi.OutstandingPayments)
	if err != nil {
		return nil, fmt.Errorf("query kpi: %w", err)
	}
	if kpi.Leads > 0 {
		kpi.Conversion = float64(won) / float64(kpi.Leads) * 100
	}
	return &kpi, nil
}

// Metrics aggregates report, reminder, compliance and notification state.
func (r *AnalyticsRepoImpl) Metrics(ctx context.Context) (*entity.DashboardMetrics, error) {
	var (
		m                    entity.DashboardMetrics
		complianceTotal, met int64
	)
	err := r.db.QueryRow(ctx,
		`SELECT
			(SELECT COALESCE(AVG(esg_score), 0) FROM reports WHERE esg_score IS NOT NULL),
			(SELECT COUNT(*) FROM reminders WHERE NOT done),
			(SELECT COUNT(*) FROM compliances),
			(SELECT COUNT(*) FROM compliances WHERE status = $1),
			(SELECT COUNT(*) FROM notifications WHERE NOT read)`,
		entity.ComplianceStatusCompliant,
	).Scan(&m.ESG, &m.Tasks, &complianceTotal, &met, &m.Tickets)
	if err != nil {
		return nil, fmt.Errorf("query dashboard metrics: %w", err)
	}
	if complianceTotal > 0 {
		m.Compliance = float64(met) / float64(complianceTotal) * 100
	}
	return &m, nil
}
