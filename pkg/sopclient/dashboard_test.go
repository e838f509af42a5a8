package sopclient_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genxsop/genxsop/pkg/sopclient"
)

func TestDashboardSummary_FlattensBackendShape(t *testing.T) {
	c, _ := newTestClient(t, jsonHandler(http.StatusOK, `{
		"demand_plans": {"draft": 4, "submitted": 3, "approved": 12, "total": 19},
		"inventory_health": {"total_positions": 120, "normal": 100, "low": 15, "critical": 5, "excess": 0, "total_valuation": "250000.50"},
		"kpis": {"forecast_accuracy": "87.5", "otif": "94.2"},
		"sop_cycle": {"id": 7, "name": "September 2026", "current_step": 2, "status": "in_progress"}
	}`))

	sum, err := sopclient.NewDashboardService(c).Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 19, sum.DemandPlansCount)
	assert.Equal(t, 3, sum.PendingApprovals)
	assert.Equal(t, 20, sum.InventoryAlerts) // low + critical
	assert.Equal(t, 15, sum.LowStockCount)
	assert.Equal(t, 250000.50, sum.TotalInventoryValue)
	assert.Equal(t, 87.5, sum.ForecastAccuracy)
	assert.Equal(t, 94.2, sum.OTIFRate)
	assert.Equal(t, "September 2026", sum.ActiveSOPCycle)
	assert.Equal(t, "Demand Review", sum.SOPCycleStage)
	assert.Equal(t, int64(7), sum.SOPCycleID)
}

func TestDashboardSummary_NoActiveCycle(t *testing.T) {
	c, _ := newTestClient(t, jsonHandler(http.StatusOK, `{
		"demand_plans": {"total": 0},
		"inventory_health": {"total_positions": 0},
		"kpis": {},
		"sop_cycle": null
	}`))

	sum, err := sopclient.NewDashboardService(c).Summary(context.Background())
	require.NoError(t, err)
	assert.Empty(t, sum.ActiveSOPCycle)
	assert.Empty(t, sum.SOPCycleStage)
	assert.Zero(t, sum.SOPCycleID)
}

func TestDashboardAlerts_FlattensAndSynthesizesIDs(t *testing.T) {
	c, _ := newTestClient(t, jsonHandler(http.StatusOK, `{
		"inventory_critical": [{"product_id": 10, "location": "MAIN", "on_hand": "2"}],
		"inventory_low": [{"product_id": 11, "location": "EAST", "on_hand": "8.5"}],
		"kpi_alerts": [
			{"severity": "critical", "message": "OTIF below target", "metric": "otif", "value": "82", "target": "95"},
			{"severity": "strange", "message": "check this", "metric": "mape", "value": "30", "target": "20"}
		],
		"total_alerts": 4
	}`))

	alerts, err := sopclient.NewDashboardService(c).Alerts(context.Background())
	require.NoError(t, err)
	require.Len(t, alerts, 4)

	assert.Equal(t, "inv-critical-10-MAIN", alerts[0].ID)
	assert.Equal(t, "critical", alerts[0].Severity)
	assert.Equal(t, "inventory", alerts[0].EntityType)
	assert.Equal(t, int64(10), alerts[0].EntityID)
	assert.Contains(t, alerts[0].Message, "Product #10 at MAIN")
	assert.NotEmpty(t, alerts[0].CreatedAt)

	assert.Equal(t, "inv-low-11-EAST", alerts[1].ID)
	assert.Equal(t, "warning", alerts[1].Severity)

	assert.Equal(t, "kpi-otif", alerts[2].ID)
	assert.Equal(t, "critical", alerts[2].Severity)
	assert.Equal(t, "KPI: otif", alerts[2].Title)

	// unknown severities normalize to info
	assert.Equal(t, "info", alerts[3].Severity)
}

func TestDashboardSOPStatus(t *testing.T) {
	c, _ := newTestClient(t, jsonHandler(http.StatusOK, `{
		"active": true,
		"id": 7,
		"name": "September 2026",
		"current_step": 3,
		"overall_status": "in_progress",
		"steps": [
			{"step": 1, "name": "Data Gathering", "status": "completed"},
			{"step": 2, "name": "Demand Review", "status": "completed"},
			{"step": 3, "name": "Supply Review", "status": "in_progress"},
			{"step": 4, "name": "Pre-S&OP", "status": "pending"},
			{"step": 5, "name": "Executive S&OP", "status": "pending"}
		]
	}`))

	st, err := sopclient.NewDashboardService(c).SOPStatus(context.Background())
	require.NoError(t, err)
	assert.True(t, st.Active)
	assert.Equal(t, 3, st.CurrentStep)
	require.Len(t, st.Steps, 5)
	assert.Equal(t, "Supply Review", st.Steps[2].Name)
	assert.Equal(t, "in_progress", st.Steps[2].Status)
}
