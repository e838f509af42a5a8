package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/genxsop/genxsop/internal/domain/entity"
)

// CreateKPIMetricRequest records a measured metric value. Variance and trend
// are derived server-side, never accepted from the caller.
type CreateKPIMetricRequest struct {
	MetricName     string           `json:"metric_name" validate:"required,min=1,max=200"`
	MetricCategory string           `json:"metric_category" validate:"required"`
	Period         time.Time        `json:"period" validate:"required"`
	Value          decimal.Decimal  `json:"value"`
	Target         *decimal.Decimal `json:"target"`
	PreviousValue  *decimal.Decimal `json:"previous_value"`
	Unit           string           `json:"unit"`
}

// SetKPITargetRequest re-targets the latest metric with that name.
type SetKPITargetRequest struct {
	MetricName string          `json:"metric_name" validate:"required"`
	Target     decimal.Decimal `json:"target"`
}

// KPIMetricResponse is the public view of a metric.
type KPIMetricResponse struct {
	ID             int64            `json:"id"`
	MetricName     string           `json:"metric_name"`
	MetricCategory string           `json:"metric_category"`
	Period         time.Time        `json:"period"`
	Value          decimal.Decimal  `json:"value"`
	Target         *decimal.Decimal `json:"target"`
	PreviousValue  *decimal.Decimal `json:"previous_value"`
	Variance       *decimal.Decimal `json:"variance"`
	VariancePct    *decimal.Decimal `json:"variance_pct"`
	Trend          string           `json:"trend"`
	Unit           string           `json:"unit"`
	CreatedAt      time.Time        `json:"created_at"`
}

func KPIMetricToResponse(m *entity.KPIMetric) KPIMetricResponse {
	return KPIMetricResponse{
		ID:             m.ID,
		MetricName:     m.MetricName,
		MetricCategory: m.MetricCategory,
		Period:         m.Period,
		Value:          m.Value,
		Target:         m.Target,
		PreviousValue:  m.PreviousValue,
		Variance:       m.Variance,
		VariancePct:    m.VariancePct,
		Trend:          m.Trend,
		Unit:           m.Unit,
		CreatedAt:      m.CreatedAt,
	}
}

// KPIDashboardResponse groups current metrics by category.
type KPIDashboardResponse struct {
	DemandKPIs    []KPIMetricResponse `json:"demand_kpis"`
	SupplyKPIs    []KPIMetricResponse `json:"supply_kpis"`
	InventoryKPIs []KPIMetricResponse `json:"inventory_kpis"`
	ServiceKPIs   []KPIMetricResponse `json:"service_kpis"`
	FinancialKPIs []KPIMetricResponse `json:"financial_kpis"`
}

// KPIAlertResponse is one metric breaching its target.
type KPIAlertResponse struct {
	MetricName  string          `json:"metric_name"`
	Category    string          `json:"category"`
	Value       decimal.Decimal `json:"value"`
	Target      decimal.Decimal `json:"target"`
	VariancePct decimal.Decimal `json:"variance_pct"`
	Severity    string          `json:"severity"`
	Period      time.Time       `json:"period"`
}

// KPITrendPoint is one period's value within a metric's series.
type KPITrendPoint struct {
	Period time.Time        `json:"period"`
	Value  decimal.Decimal  `json:"value"`
	Target *decimal.Decimal `json:"target"`
}

// KPITrendResponse is the time series of one metric.
type KPITrendResponse struct {
	MetricName string          `json:"metric_name"`
	Category   string          `json:"category"`
	Unit       string          `json:"unit"`
	Points     []KPITrendPoint `json:"points"`
}
