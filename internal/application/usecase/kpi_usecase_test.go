package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genxsop/genxsop/internal/application/dto"
	"github.com/genxsop/genxsop/internal/application/usecase"
	"github.com/genxsop/genxsop/internal/domain"
	"github.com/genxsop/genxsop/internal/domain/entity"
	"github.com/genxsop/genxsop/internal/domain/repository"
)

type fakeKPIRepo struct {
	metrics []*entity.KPIMetric
	nextID  int64
}

func newFakeKPIRepo() *fakeKPIRepo {
	return &fakeKPIRepo{nextID: 1}
}

func (r *fakeKPIRepo) Create(_ context.Context, m *entity.KPIMetric) error {
	m.ID = r.nextID
	r.nextID++
	cp := *m
	r.metrics = append(r.metrics, &cp)
	return nil
}

func (r *fakeKPIRepo) Update(_ context.Context, m *entity.KPIMetric) error {
	for i, existing := range r.metrics {
		if existing.ID == m.ID {
			cp := *m
			r.metrics[i] = &cp
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeKPIRepo) GetByID(_ context.Context, id int64) (*entity.KPIMetric, error) {
	for _, m := range r.metrics {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeKPIRepo) List(_ context.Context, f repository.KPIFilter, _, _ int) ([]*entity.KPIMetric, int, error) {
	out := []*entity.KPIMetric{}
	for _, m := range r.metrics {
		if f.Category != "" && m.MetricCategory != f.Category {
			continue
		}
		if f.Name != "" && m.MetricName != f.Name {
			continue
		}
		cp := *m
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (r *fakeKPIRepo) GetLatestByName(_ context.Context, name string) (*entity.KPIMetric, error) {
	var latest *entity.KPIMetric
	for _, m := range r.metrics {
		if m.MetricName != name {
			continue
		}
		if latest == nil || m.Period.After(latest.Period) {
			latest = m
		}
	}
	if latest == nil {
		return nil, nil
	}
	cp := *latest
	return &cp, nil
}

func (r *fakeKPIRepo) ListSince(_ context.Context, category string, since time.Time) ([]*entity.KPIMetric, error) {
	out := []*entity.KPIMetric{}
	for _, m := range r.metrics {
		if category != "" && m.MetricCategory != category {
			continue
		}
		if m.Period.Before(since) {
			continue
		}
		cp := *m
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeKPIRepo) ListLatestWithTargets(_ context.Context) ([]*entity.KPIMetric, error) {
	latest := map[string]*entity.KPIMetric{}
	names := []string{}
	for _, m := range r.metrics {
		if m.Target == nil {
			continue
		}
		if prev, ok := latest[m.MetricName]; !ok || m.Period.After(prev.Period) {
			if !ok {
				names = append(names, m.MetricName)
			}
			latest[m.MetricName] = m
		}
	}
	out := make([]*entity.KPIMetric, 0, len(names))
	for _, name := range names {
		cp := *latest[name]
		out = append(out, &cp)
	}
	return out, nil
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func kpiPeriod(month time.Month) time.Time {
	return time.Date(time.Now().Year(), month, 1, 0, 0, 0, 0, time.UTC)
}

func TestKPICreate_DerivesVarianceAndTrend(t *testing.T) {
	uc := usecase.NewKPIUseCase(newFakeKPIRepo())

	resp, err := uc.Create(context.Background(), dto.CreateKPIMetricRequest{
		MetricName:     "forecast_accuracy",
		MetricCategory: entity.KPIDemand,
		Period:         kpiPeriod(time.June),
		Value:          dec("88"),
		Target:         decPtr("80"),
		PreviousValue:  decPtr("85"),
		Unit:           "%",
	})
	require.NoError(t, err)

	require.NotNil(t, resp.Variance)
	assert.True(t, resp.Variance.Equal(dec("8")), "variance %s", resp.Variance)
	require.NotNil(t, resp.VariancePct)
	assert.True(t, resp.VariancePct.Equal(dec("10")), "variance pct %s", resp.VariancePct)
	assert.Equal(t, entity.TrendImproving, resp.Trend)
}

func TestKPICreate_NoTargetNoVariance(t *testing.T) {
	uc := usecase.NewKPIUseCase(newFakeKPIRepo())

	resp, err := uc.Create(context.Background(), dto.CreateKPIMetricRequest{
		MetricName:     "otif",
		MetricCategory: entity.KPIService,
		Period:         kpiPeriod(time.June),
		Value:          dec("93.5"),
		PreviousValue:  decPtr("95"),
	})
	require.NoError(t, err)
	assert.Nil(t, resp.Variance)
	assert.Nil(t, resp.VariancePct)
	assert.Equal(t, entity.TrendDeclining, resp.Trend)
}

func TestKPICreate_UnknownCategoryRejected(t *testing.T) {
	uc := usecase.NewKPIUseCase(newFakeKPIRepo())

	_, err := uc.Create(context.Background(), dto.CreateKPIMetricRequest{
		MetricName:     "x",
		MetricCategory: "weather",
		Period:         kpiPeriod(time.June),
		Value:          dec("1"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestKPIAlerts_SeverityByVariance(t *testing.T) {
	repo := newFakeKPIRepo()
	uc := usecase.NewKPIUseCase(repo)

	cases := []struct {
		name  string
		value string
	}{
		{"on_target", "100"},    // 0% off, no alert
		{"slightly_off", "92"},  // -8%, inside the 10% band
		{"warning_level", "85"}, // -15%, warning
		{"critical_level", "75"}, // -25%, critical
	}
	for _, tc := range cases {
		_, err := uc.Create(context.Background(), dto.CreateKPIMetricRequest{
			MetricName:     tc.name,
			MetricCategory: entity.KPISupply,
			Period:         kpiPeriod(time.June),
			Value:          dec(tc.value),
			Target:         decPtr("100"),
		})
		require.NoError(t, err)
	}

	alerts, err := uc.Alerts(context.Background())
	require.NoError(t, err)
	require.Len(t, alerts, 2)

	bySeverity := map[string]string{}
	for _, a := range alerts {
		bySeverity[a.MetricName] = a.Severity
	}
	assert.Equal(t, "warning", bySeverity["warning_level"])
	assert.Equal(t, "critical", bySeverity["critical_level"])
}

func TestKPISetTarget_RederivesVarianceOnLatest(t *testing.T) {
	repo := newFakeKPIRepo()
	uc := usecase.NewKPIUseCase(repo)

	for _, p := range []time.Month{time.May, time.June} {
		_, err := uc.Create(context.Background(), dto.CreateKPIMetricRequest{
			MetricName:     "inventory_turns",
			MetricCategory: entity.KPIInventory,
			Period:         kpiPeriod(p),
			Value:          dec("6"),
		})
		require.NoError(t, err)
	}

	resp, err := uc.SetTarget(context.Background(), dto.SetKPITargetRequest{
		MetricName: "inventory_turns",
		Target:     dec("8"),
	})
	require.NoError(t, err)
	assert.Equal(t, kpiPeriod(time.June), resp.Period)
	require.NotNil(t, resp.Variance)
	assert.True(t, resp.Variance.Equal(dec("-2")), "variance %s", resp.Variance)
	require.NotNil(t, resp.VariancePct)
	assert.True(t, resp.VariancePct.Equal(dec("-25")), "variance pct %s", resp.VariancePct)
}

func TestKPITrends_GroupsByMetricName(t *testing.T) {
	repo := newFakeKPIRepo()
	uc := usecase.NewKPIUseCase(repo)

	for _, tc := range []struct {
		name   string
		month  time.Month
		value  string
		target *decimal.Decimal
	}{
		{"mape", time.April, "14", decPtr("10")},
		{"mape", time.May, "12", decPtr("10")},
		{"bias", time.May, "2", nil},
	} {
		_, err := uc.Create(context.Background(), dto.CreateKPIMetricRequest{
			MetricName:     tc.name,
			MetricCategory: entity.KPIDemand,
			Period:         kpiPeriod(tc.month),
			Value:          dec(tc.value),
			Target:         tc.target,
		})
		require.NoError(t, err)
	}

	trends, err := uc.Trends(context.Background(), entity.KPIDemand, 12)
	require.NoError(t, err)
	require.Len(t, trends, 2)
	assert.Equal(t, "mape", trends[0].MetricName)
	assert.Len(t, trends[0].Points, 2)
	assert.Len(t, trends[1].Points, 1)

	// each point carries the target recorded with its measurement
	require.NotNil(t, trends[0].Points[0].Target)
	assert.True(t, trends[0].Points[0].Target.Equal(dec("10")))
	assert.Nil(t, trends[1].Points[0].Target)
}
