package sopclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// KPIMetric is one recorded measurement. Variance fields are derived by the
// server and may be absent when the metric has no target.
type KPIMetric struct {
	ID             int64  `json:"id"`
	MetricName     string `json:"metric_name"`
	MetricCategory string `json:"metric_category"`
	Period         string `json:"period"`
	Value          Number `json:"value"`
	Target         Number `json:"target"`
	PreviousValue  Number `json:"previous_value"`
	Variance       Number `json:"variance"`
	VariancePct    Number `json:"variance_pct"`
	Trend          string `json:"trend"`
	Unit           string `json:"unit,omitempty"`
	CreatedAt      string `json:"created_at,omitempty"`
}

// KPIDashboard groups the latest metrics by category.
type KPIDashboard struct {
	Demand    []KPIMetric `json:"demand_kpis"`
	Supply    []KPIMetric `json:"supply_kpis"`
	Inventory []KPIMetric `json:"inventory_kpis"`
	Financial []KPIMetric `json:"financial_kpis"`
	Service   []KPIMetric `json:"service_kpis"`
}

// KPITrend is one metric's series over the lookback window.
type KPITrend struct {
	MetricName string          `json:"metric_name"`
	Category   string          `json:"category"`
	Points     []KPITrendPoint `json:"points"`
}

// KPITrendPoint is one period within a trend series.
type KPITrendPoint struct {
	Period string `json:"period"`
	Value  Number `json:"value"`
	Target Number `json:"target"`
}

// KPIAlert is one metric off target beyond the alert thresholds.
type KPIAlert struct {
	MetricName  string `json:"metric_name"`
	Category    string `json:"category"`
	Value       Number `json:"value"`
	Target      Number `json:"target"`
	VariancePct Number `json:"variance_pct"`
	Severity    string `json:"severity"`
	Period      string `json:"period"`
}

// CreateKPIRequest records a new measurement.
type CreateKPIRequest struct {
	MetricName     string  `json:"metric_name"`
	MetricCategory string  `json:"metric_category"`
	Period         string  `json:"period"`
	Value          Number  `json:"value"`
	Target         *Number `json:"target,omitempty"`
	PreviousValue  *Number `json:"previous_value,omitempty"`
	Unit           string  `json:"unit,omitempty"`
}

// KPIListOptions filter the measurement listing.
type KPIListOptions struct {
	ListOptions
	Category string
	Name     string
	Period   string
}

// KPIService covers the KPI endpoints.
type KPIService struct {
	c *Client
}

func NewKPIService(c *Client) *KPIService {
	return &KPIService{c: c}
}

// List fetches measurements, accepting either collection shape.
func (s *KPIService) List(ctx context.Context, opts KPIListOptions) (*Page[KPIMetric], error) {
	q := url.Values{}
	addPageParams(q, opts.ListOptions)
	if opts.Category != "" {
		q.Set("category", opts.Category)
	}
	if opts.Name != "" {
		q.Set("name", opts.Name)
	}
	if opts.Period != "" {
		q.Set("period", opts.Period)
	}
	raw, err := s.c.do(ctx, http.MethodGet, "/kpis", q, nil)
	if err != nil {
		return nil, err
	}
	return decodePage[KPIMetric](raw, opts.PageSize)
}

// Get fetches one measurement.
func (s *KPIService) Get(ctx context.Context, id int64) (*KPIMetric, error) {
	var m KPIMetric
	if err := s.c.getJSON(ctx, "/kpis/"+strconv.FormatInt(id, 10), nil, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Create records a measurement. Variance and trend come back derived.
func (s *KPIService) Create(ctx context.Context, in CreateKPIRequest) (*KPIMetric, error) {
	var m KPIMetric
	if err := s.c.postJSON(ctx, "/kpis", nil, in, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Dashboard fetches the latest metrics grouped by category.
func (s *KPIService) Dashboard(ctx context.Context) (*KPIDashboard, error) {
	var d KPIDashboard
	if err := s.c.getJSON(ctx, "/kpis/dashboard", nil, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// Summary is the legacy alias for Dashboard kept for older callers.
func (s *KPIService) Summary(ctx context.Context) (*KPIDashboard, error) {
	var d KPIDashboard
	if err := s.c.getJSON(ctx, "/kpis/summary", nil, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// Trends fetches per-metric series. months <= 0 uses the server default.
func (s *KPIService) Trends(ctx context.Context, category string, months int) ([]KPITrend, error) {
	q := url.Values{}
	if category != "" {
		q.Set("category", category)
	}
	if months > 0 {
		q.Set("months", strconv.Itoa(months))
	}
	var trends []KPITrend
	if err := s.c.getJSON(ctx, "/kpis/trends", q, &trends); err != nil {
		return nil, err
	}
	return trends, nil
}

// Alerts fetches metrics breaching their targets.
func (s *KPIService) Alerts(ctx context.Context) ([]KPIAlert, error) {
	var alerts []KPIAlert
	if err := s.c.getJSON(ctx, "/kpis/alerts", nil, &alerts); err != nil {
		return nil, err
	}
	return alerts, nil
}

// SetTarget re-targets the latest measurement of a metric.
func (s *KPIService) SetTarget(ctx context.Context, metricName string, target float64) (*KPIMetric, error) {
	body := map[string]any{
		"metric_name": metricName,
		"target":      target,
	}
	var m KPIMetric
	if err := s.c.putJSON(ctx, "/kpis/targets", body, &m); err != nil {
		return nil, err
	}
	return &m, nil
}
