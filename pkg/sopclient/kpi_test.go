package sopclient_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genxsop/genxsop/pkg/sopclient"
)

func TestKPIDashboard_DecodesCategoryGroups(t *testing.T) {
	// shape as emitted by the API's dashboard endpoint
	c, _ := newTestClient(t, jsonHandler(http.StatusOK, `{
		"demand_kpis": [
			{"id":1,"metric_name":"forecast_accuracy","metric_category":"demand",
			 "period":"2026-06-01T00:00:00Z","value":"87.4","target":"80",
			 "variance":"7.4","variance_pct":"9.25","trend":"improving","unit":"%"}
		],
		"supply_kpis": [
			{"id":2,"metric_name":"capacity_utilization","metric_category":"supply",
			 "period":"2026-06-01T00:00:00Z","value":"92","target":null,
			 "variance":null,"variance_pct":null,"trend":""}
		],
		"inventory_kpis": [],
		"service_kpis": [],
		"financial_kpis": []
	}`))

	d, err := sopclient.NewKPIService(c).Dashboard(context.Background())
	require.NoError(t, err)

	require.Len(t, d.Demand, 1)
	assert.Equal(t, "forecast_accuracy", d.Demand[0].MetricName)
	assert.Equal(t, 87.4, d.Demand[0].Value.Value)
	assert.Equal(t, 80.0, d.Demand[0].Target.Value)
	assert.Equal(t, "improving", d.Demand[0].Trend)

	require.Len(t, d.Supply, 1)
	assert.Equal(t, 92.0, d.Supply[0].Value.Value)
	assert.False(t, d.Supply[0].Target.Set)
	assert.Equal(t, "-", d.Supply[0].Variance.String())

	assert.Empty(t, d.Inventory)
	assert.Empty(t, d.Financial)
	assert.Empty(t, d.Service)
}

func TestKPITrends_DecodesPointTargets(t *testing.T) {
	c, _ := newTestClient(t, jsonHandler(http.StatusOK, `[
		{"metric_name":"mape","category":"demand","unit":"%","points":[
			{"period":"2026-04-01T00:00:00Z","value":"14","target":"10"},
			{"period":"2026-05-01T00:00:00Z","value":"12","target":null}
		]}
	]`))

	trends, err := sopclient.NewKPIService(c).Trends(context.Background(), "demand", 12)
	require.NoError(t, err)
	require.Len(t, trends, 1)
	require.Len(t, trends[0].Points, 2)
	assert.Equal(t, 10.0, trends[0].Points[0].Target.Value)
	assert.False(t, trends[0].Points[1].Target.Set)
	assert.Equal(t, "-", trends[0].Points[1].Target.String())
}

func TestKPICreate_SendsRequestAndDecodesDerivedFields(t *testing.T) {
	var gotBody map[string]any
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &gotBody))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{
			"id":7,"metric_name":"otif","metric_category":"service",
			"period":"2026-06-01T00:00:00Z","value":"93.5","target":"95",
			"variance":"-1.5","variance_pct":"-1.58","trend":"declining","unit":"%"
		}`))
	}))

	target := sopclient.Num(95)
	m, err := sopclient.NewKPIService(c).Create(context.Background(), sopclient.CreateKPIRequest{
		MetricName:     "otif",
		MetricCategory: "service",
		Period:         "2026-06-01T00:00:00Z",
		Value:          sopclient.Num(93.5),
		Target:         &target,
	})
	require.NoError(t, err)

	assert.Equal(t, "otif", gotBody["metric_name"])
	assert.Equal(t, "2026-06-01T00:00:00Z", gotBody["period"])

	assert.Equal(t, "declining", m.Trend)
	assert.Equal(t, -1.5, m.Variance.Value)
	assert.Equal(t, -1.58, m.VariancePct.Value)
}

func TestKPIAlerts_DecodesServerShape(t *testing.T) {
	c, _ := newTestClient(t, jsonHandler(http.StatusOK, `[
		{"metric_name":"inventory_turns","category":"inventory","value":"6","target":"8",
		 "variance_pct":"-25","severity":"critical","period":"2026-06-01T00:00:00Z"}
	]`))

	alerts, err := sopclient.NewKPIService(c).Alerts(context.Background())
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, "critical", alerts[0].Severity)
	assert.Equal(t, -25.0, alerts[0].VariancePct.Value)
}

func TestKPISetTarget_SendsNameAndTarget(t *testing.T) {
	var gotBody map[string]any
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &gotBody))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":3,"metric_name":"inventory_turns","metric_category":"inventory","period":"2026-06-01T00:00:00Z","value":"6","target":"8","variance":"-2","variance_pct":"-25","trend":""}`))
	}))

	m, err := sopclient.NewKPIService(c).SetTarget(context.Background(), "inventory_turns", 8)
	require.NoError(t, err)
	assert.Equal(t, "inventory_turns", gotBody["metric_name"])
	assert.Equal(t, 8.0, gotBody["target"])
	assert.Equal(t, 8.0, m.Target.Value)
}
