package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/genxsop/genxsop/internal/application/dto"
	"github.com/genxsop/genxsop/internal/domain"
	"github.com/genxsop/genxsop/internal/domain/entity"
	"github.com/genxsop/genxsop/internal/domain/repository"
)

// KPI alert thresholds: variance past the target beyond these percents raises
// a warning or critical alert.
var (
	kpiWarnPct     = decimal.NewFromInt(10)
	kpiCriticalPct = decimal.NewFromInt(20)
)

// KPIUseCase records metric measurements and derives variance, trend, alerts
// and time series from them.
type KPIUseCase struct {
	metrics repository.KPIRepository
}

func NewKPIUseCase(metrics repository.KPIRepository) *KPIUseCase {
	return &KPIUseCase{metrics: metrics}
}

// Create records a measurement. Variance against target and trend against the
// previous value are derived here, never accepted from the caller.
func (uc *KPIUseCase) Create(ctx context.Context, in dto.CreateKPIMetricRequest) (*dto.KPIMetricResponse, error) {
	if !validCategory(in.MetricCategory) {
		return nil, fmt.Errorf("%w: unknown KPI category %q", domain.ErrInvalidInput, in.MetricCategory)
	}

	m := &entity.KPIMetric{
		MetricName:     in.MetricName,
		MetricCategory: in.MetricCategory,
		Period:         in.Period,
		Value:          in.Value,
		Target:         in.Target,
		PreviousValue:  in.PreviousValue,
		Unit:           in.Unit,
		CreatedAt:      time.Now(),
	}
	m.Variance, m.VariancePct = deriveVariance(in.Value, in.Target)
	if in.PreviousValue != nil && !in.PreviousValue.IsZero() {
		change := in.Value.Sub(*in.PreviousValue)
		switch {
		case change.IsPositive():
			m.Trend = entity.TrendImproving
		case change.IsNegative():
			m.Trend = entity.TrendDeclining
		default:
			m.Trend = entity.TrendStable
		}
	}

	if err := uc.metrics.Create(ctx, m); err != nil {
		return nil, err
	}
	resp := dto.KPIMetricToResponse(m)
	return &resp, nil
}

// Get fetches one measurement.
func (uc *KPIUseCase) Get(ctx context.Context, id int64) (*dto.KPIMetricResponse, error) {
	m, err := uc.metrics.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	resp := dto.KPIMetricToResponse(m)
	return &resp, nil
}

// List returns a filtered page of measurements.
func (uc *KPIUseCase) List(ctx context.Context, category, name string, period *time.Time, page dto.PageRequest) (*dto.ListResponse[dto.KPIMetricResponse], error) {
	page.Normalize()
	items, total, err := uc.metrics.List(ctx, repository.KPIFilter{
		Category: category,
		Name:     name,
		Period:   period,
	}, page.Page, page.PageSize)
	if err != nil {
		return nil, err
	}
	out := make([]dto.KPIMetricResponse, 0, len(items))
	for _, m := range items {
		out = append(out, dto.KPIMetricToResponse(m))
	}
	resp := dto.NewListResponse(out, total, page.Page, page.PageSize)
	return &resp, nil
}

// Dashboard groups the last year of measurements by category.
func (uc *KPIUseCase) Dashboard(ctx context.Context) (*dto.KPIDashboardResponse, error) {
	since := time.Now().AddDate(-1, 0, 0)
	all, err := uc.metrics.ListSince(ctx, "", since)
	if err != nil {
		return nil, err
	}

	resp := &dto.KPIDashboardResponse{
		DemandKPIs:    []dto.KPIMetricResponse{},
		SupplyKPIs:    []dto.KPIMetricResponse{},
		InventoryKPIs: []dto.KPIMetricResponse{},
		ServiceKPIs:   []dto.KPIMetricResponse{},
		FinancialKPIs: []dto.KPIMetricResponse{},
	}
	for _, m := range all {
		item := dto.KPIMetricToResponse(m)
		switch m.MetricCategory {
		case entity.KPIDemand:
			resp.DemandKPIs = append(resp.DemandKPIs, item)
		case entity.KPISupply:
			resp.SupplyKPIs = append(resp.SupplyKPIs, item)
		case entity.KPIInventory:
			resp.InventoryKPIs = append(resp.InventoryKPIs, item)
		case entity.KPIService:
			resp.ServiceKPIs = append(resp.ServiceKPIs, item)
		case entity.KPIFinancial:
			resp.FinancialKPIs = append(resp.FinancialKPIs, item)
		}
	}
	return resp, nil
}

// Trends builds per-metric time series for a category (all when empty) over
// the trailing number of months.
func (uc *KPIUseCase) Trends(ctx context.Context, category string, months int) ([]dto.KPITrendResponse, error) {
	if months <= 0 {
		months = 12
	}
	since := time.Now().AddDate(0, -months, 0)
	all, err := uc.metrics.ListSince(ctx, category, since)
	if err != nil {
		return nil, err
	}

	byName := map[string]*dto.KPITrendResponse{}
	order := []string{}
	for _, m := range all {
		series, ok := byName[m.MetricName]
		if !ok {
			series = &dto.KPITrendResponse{
				MetricName: m.MetricName,
				Category:   m.MetricCategory,
				Unit:       m.Unit,
			}
			byName[m.MetricName] = series
			order = append(order, m.MetricName)
		}
		series.Points = append(series.Points, dto.KPITrendPoint{Period: m.Period, Value: m.Value, Target: m.Target})
	}

	out := make([]dto.KPITrendResponse, 0, len(order))
	for _, name := range order {
		out = append(out, *byName[name])
	}
	return out, nil
}

// Alerts lists the latest measurement per metric that is breaching its target.
func (uc *KPIUseCase) Alerts(ctx context.Context) ([]dto.KPIAlertResponse, error) {
	metrics, err := uc.metrics.ListLatestWithTargets(ctx)
	if err != nil {
		return nil, err
	}

	out := []dto.KPIAlertResponse{}
	for _, m := range metrics {
		if m.Target == nil || m.Target.IsZero() {
			continue
		}
		variancePct := m.Value.Sub(*m.Target).Div(*m.Target).Mul(decimal.NewFromInt(100)).Round(2)
		if variancePct.Abs().LessThanOrEqual(kpiWarnPct) {
			continue
		}
		severity := "warning"
		if variancePct.Abs().GreaterThan(kpiCriticalPct) {
			severity = "critical"
		}
		out = append(out, dto.KPIAlertResponse{
			MetricName:  m.MetricName,
			Category:    m.MetricCategory,
			Value:       m.Value,
			Target:      *m.Target,
			VariancePct: variancePct,
			Severity:    severity,
			Period:      m.Period,
		})
	}
	return out, nil
}

// SetTarget re-targets the most recent measurement of a metric and rederives
// its variance.
func (uc *KPIUseCase) SetTarget(ctx context.Context, in dto.SetKPITargetRequest) (*dto.KPIMetricResponse, error) {
	m, err := uc.metrics.GetLatestByName(ctx, in.MetricName)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}

	m.Target = &in.Target
	m.Variance, m.VariancePct = deriveVariance(m.Value, &in.Target)

	// Targets are corrections of the latest row, not new measurements.
	if err := uc.metrics.Update(ctx, m); err != nil {
		return nil, err
	}
	resp := dto.KPIMetricToResponse(m)
	return &resp, nil
}

func deriveVariance(value decimal.Decimal, target *decimal.Decimal) (*decimal.Decimal, *decimal.Decimal) {
	if target == nil {
		return nil, nil
	}
	variance := value.Sub(*target)
	var pct *decimal.Decimal
	if !target.IsZero() {
		v := variance.Div(*target).Mul(decimal.NewFromInt(100)).Round(2)
		pct = &v
	}
	return &variance, pct
}

func validCategory(category string) bool {
	switch category {
	case entity.KPIDemand, entity.KPISupply, entity.KPIInventory, entity.KPIFinancial, entity.KPIService:
		return true
	}
	return false
}
