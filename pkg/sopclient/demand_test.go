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

func TestDemandAdjust_SendsQuantityAndNotes(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":5,"product_id":10,"period":"2026-09-01","forecast_qty":"100","adjusted_qty":"115","status":"draft","version":2}`))
	}))

	plan, err := sopclient.NewDemandService(c).Adjust(context.Background(), 5, 115, "promo uplift")
	require.NoError(t, err)
	assert.Equal(t, "/demand-plans/5/adjust", gotPath)
	assert.Equal(t, 115.0, gotBody["adjusted_qty"])
	assert.Equal(t, "promo uplift", gotBody["notes"])
	assert.Equal(t, 115.0, plan.AdjustedQty.Value)
	assert.Equal(t, 2, plan.Version)
}

func TestDemandCreate_ServerShapeRoundTrip(t *testing.T) {
	var gotBody map[string]any
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &gotBody))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{
			"id":12,"product_id":10,"period":"2026-01-15T00:00:00Z","region":"Global","channel":"All",
			"forecast_qty":"120.5","adjusted_qty":null,"actual_qty":null,"consensus_qty":null,
			"confidence":null,"notes":"","status":"draft","created_by":7,"approved_by":null,
			"version":1,"created_at":"2026-06-01T10:00:00Z","updated_at":"2026-06-01T10:00:00Z"
		}`))
	}))

	plan, err := sopclient.NewDemandService(c).Create(context.Background(), sopclient.CreateDemandPlanRequest{
		ProductID:   10,
		Period:      "2026-01-15T00:00:00Z",
		ForecastQty: sopclient.Num(120.5),
	})
	require.NoError(t, err)

	// the period travels as the RFC 3339 instant the server's DTO requires
	assert.Equal(t, "2026-01-15T00:00:00Z", gotBody["period"])

	assert.Equal(t, int64(12), plan.ID)
	assert.Equal(t, "Global", plan.Region)
	assert.Equal(t, 120.5, plan.ForecastQty.Value)
	assert.False(t, plan.AdjustedQty.Set)
	assert.Equal(t, "-", plan.AdjustedQty.String())
	assert.Equal(t, "draft", plan.Status)
}

func TestDemandApprove_EmptyCommentsSendsNoBody(t *testing.T) {
	var gotLen int64
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLen = r.ContentLength
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":5,"status":"approved"}`))
	}))

	plan, err := sopclient.NewDemandService(c).Approve(context.Background(), 5, "")
	require.NoError(t, err)
	assert.LessOrEqual(t, gotLen, int64(0))
	assert.Equal(t, "approved", plan.Status)
}

func TestDemandList_FilterQuery(t *testing.T) {
	var gotQuery string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[],"total":0,"page":1,"page_size":20,"total_pages":1}`))
	}))

	_, err := sopclient.NewDemandService(c).List(context.Background(), sopclient.PlanListOptions{
		ProductID:  10,
		Status:     "submitted",
		Region:     "EMEA",
		PeriodFrom: "2026-01-01",
	})
	require.NoError(t, err)
	assert.Contains(t, gotQuery, "product_id=10")
	assert.Contains(t, gotQuery, "status=submitted")
	assert.Contains(t, gotQuery, "region=EMEA")
	assert.Contains(t, gotQuery, "period_from=2026-01-01")
}

func TestSOPCycleReport_ReturnsRawPDF(t *testing.T) {
	pdf := []byte("%PDF-1.7 fake")
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sop-cycles/7/report", r.URL.Path)
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write(pdf)
	}))

	raw, err := sopclient.NewSOPCycleService(c).Report(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, pdf, raw)
}

func TestScenarioCompare_SendsIDs(t *testing.T) {
	var gotBody map[string]any
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id":1,"name":"Base","scenario_type":"demand","revenue_impact":"0","status":"completed"},
			{"id":2,"name":"Uplift","scenario_type":"demand","revenue_impact":"50000","status":"completed"}
		]`))
	}))

	rows, err := sopclient.NewScenarioService(c).Compare(context.Background(), []int64{1, 2})
	require.NoError(t, err)
	assert.Equal(t, []any{float64(1), float64(2)}, gotBody["scenario_ids"])
	require.Len(t, rows, 2)
	assert.Equal(t, 50000.0, rows[1].RevenueImpact.Value)
}
