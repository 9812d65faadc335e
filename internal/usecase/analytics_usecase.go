package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/user/crm-service/internal/entity"
	"github.com/user/crm-service/internal/repository"
	"golang.org/x/sync/errgroup"
)

const (
	salesChartLabel  = "Sales Trend"
	eventsChartLabel = "Leads by Source"
)

// AnalyticsService stores metric points and derives the dashboard views from them.
type AnalyticsService interface {
	List(ctx context.Context) ([]*entity.AnalyticsPoint, error)
	Create(ctx context.Context, p *entity.AnalyticsPoint) (*entity.AnalyticsPoint, error)
	SalesChart(ctx context.Context) (*entity.ChartSeries, error)
	EventsChart(ctx context.Context) (*entity.ChartSeries, error)
	KPI(ctx context.Context) (*entity.KPI, error)
	Metrics(ctx context.Context) (*entity.DashboardMetrics, error)
	Summary(ctx context.Context) (*entity.DashboardSummary, error)
}

type analyticsUseCase struct {
	repo repository.AnalyticsRepository
}

func NewAnalyticsUseCase(repo repository.AnalyticsRepository) AnalyticsService {
	return &analyticsUseCase{repo: repo}
}

func (uc *analyticsUseCase) List(ctx context.Context) ([]*entity.AnalyticsPoint, error) {
	return uc.repo.List(ctx)
}

func (uc *analyticsUseCase) Create(ctx context.Context, p *entity.AnalyticsPoint) (*entity.AnalyticsPoint, error) {
	if err := required("metric", p.Metric); err != nil {
		return nil, err
	}
	return uc.repo.Create(ctx, p)
}

// SalesChart sums the "sales" metric per period, in the order periods first appear.
func (uc *analyticsUseCase) SalesChart(ctx context.Context) (*entity.ChartSeries, error) {
	points, err := uc.repo.ListByMetricPrefix(ctx, entity.MetricSales)
	if err != nil {
		return nil, err
	}
	return buildSeries(salesChartLabel, points, func(p *entity.AnalyticsPoint) (string, bool) {
		return p.Period, p.Metric == entity.MetricSales
	}), nil
}

// EventsChart sums "lead_source:<source>" metrics per source.
func (uc *analyticsUseCase) EventsChart(ctx context.Context) (*entity.ChartSeries, error) {
	points, err := uc.repo.ListByMetricPrefix(ctx, entity.MetricLeadSourcePrefix)
	if err != nil {
		return nil, err
	}
	return buildSeries(eventsChartLabel, points, func(p *entity.AnalyticsPoint) (string, bool) {
		source := strings.TrimPrefix(p.Metric, entity.MetricLeadSourcePrefix)
		return source, source != ""
	}), nil
}

func buildSeries(label string, points []*entity.AnalyticsPoint, key func(*entity.AnalyticsPoint) (string, bool)) *entity.ChartSeries {
	series := &entity.ChartSeries{
		Labels:   []string{},
		Datasets: []entity.ChartDataset{{Label: label, Data: []float64{}}},
	}
	index := map[string]int{}
	for _, p := range points {
		k, ok := key(p)
		if !ok {
			continue
		}
		i, seen := index[k]
		if !seen {
			i = len(series.Labels)
			index[k] = i
			series.Labels = append(series.Labels, k)
			series.Datasets[0].Data = append(series.Datasets[0].Data, 0)
		}
		series.Datasets[0].Data[i] += p.Value
	}
	return series
}

func (uc *analyticsUseCase) KPI(ctx context.Context) (*entity.KPI, error) {
	return uc.repo.KPI(ctx)
}

func (uc *analyticsUseCase) Metrics(ctx context.Context) (*entity.DashboardMetrics, error) {
	return uc.repo.Metrics(ctx)
}

// Summary loads both dashboard blocks concurrently.
func (uc *analyticsUseCase) Summary(ctx context.Context) (*entity.DashboardSummary, error) {
	var (
		kpi *entity.KPI
		m   *entity.DashboardMetrics
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		kpi, err = uc.repo.KPI(gctx)
		return err
	})
	g.Go(func() (err error) {
		m, err = uc.repo.Metrics(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &entity.DashboardSummary{
		KPI:           *kpi,
		Metrics:       *m,
		SummaryReport: summaryReport(kpi, m),
	}, nil
}

func summaryReport(kpi *entity.KPI, m *entity.DashboardMetrics) string {
	if kpi.Leads == 0 && kpi.Companies == 0 {
		return "No pipeline data yet. Add companies and leads to see performance."
	}
	return fmt.Sprintf(
		"%d leads across %d companies with %.0f%% converted. Average ESG score is %.1f and %.0f%% of compliance items are met. %d open tasks.",
		kpi.Leads, kpi.Companies, kpi.Conversion, m.ESG, m.Compliance, m.Tasks,
	)
}
