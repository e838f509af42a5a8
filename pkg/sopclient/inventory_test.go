package sopclient_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genxsop/genxsop/pkg/sopclient"
)

func TestInventoryList_PaginationEnvelope(t *testing.T) {
	c, _ := newTestClient(t, jsonHandler(http.StatusOK, `{
		"items": [
			{"id":1,"product_id":10,"location":"MAIN","on_hand_qty":"100.5","status":"normal"},
			{"id":2,"product_id":11,"location":"EAST","on_hand_qty":25,"status":"low"}
		],
		"total": 57, "page": 2, "page_size": 2, "total_pages": 29
	}`))

	page, err := sopclient.NewInventoryService(c).List(context.Background(), sopclient.InventoryListOptions{})
	require.NoError(t, err)
	assert.Equal(t, 57, page.Total)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 29, page.TotalPages)
	require.Len(t, page.Items, 2)

	// decimal string and plain number both land as floats
	assert.True(t, page.Items[0].OnHandQty.Set)
	assert.Equal(t, 100.5, page.Items[0].OnHandQty.Value)
	assert.Equal(t, 25.0, page.Items[1].OnHandQty.Value)
}

func TestInventoryList_BareArrayNormalized(t *testing.T) {
	c, _ := newTestClient(t, jsonHandler(http.StatusOK, `[
		{"id":1,"product_id":10,"location":"MAIN","on_hand_qty":"12","status":"normal"},
		{"id":2,"product_id":11,"location":"MAIN","on_hand_qty":"0","status":"critical"},
		{"id":3,"product_id":12,"location":"EAST","on_hand_qty":"8.25","status":"low"}
	]`))

	page, err := sopclient.NewInventoryService(c).List(context.Background(), sopclient.InventoryListOptions{})
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 1, page.TotalPages)
	assert.Equal(t, 3, page.PageSize)
	assert.Len(t, page.Items, 3)
}

func TestInventoryList_EnvelopeWithoutTotalPages(t *testing.T) {
	c, _ := newTestClient(t, jsonHandler(http.StatusOK, `{
		"items": [{"id":1,"product_id":10,"location":"MAIN","status":"normal"}],
		"total": 1, "page": 1, "page_size": 20
	}`))

	page, err := sopclient.NewInventoryService(c).List(context.Background(), sopclient.InventoryListOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, page.TotalPages)
}

func TestInventoryGet_NullDaysOfSupplyStaysUnset(t *testing.T) {
	c, _ := newTestClient(t, jsonHandler(http.StatusOK, `{
		"id":1,"product_id":10,"location":"MAIN",
		"on_hand_qty":"100.5","days_of_supply":null,"valuation":"1250.75","status":"normal"
	}`))

	item, err := sopclient.NewInventoryService(c).Get(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, item.DaysOfSupply.Set)
	assert.Equal(t, "-", item.DaysOfSupply.String())
	assert.Equal(t, 1250.75, item.Valuation.Value)
}

func TestInventoryList_SendsFilterParams(t *testing.T) {
	var gotQuery string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))

	_, err := sopclient.NewInventoryService(c).List(context.Background(), sopclient.InventoryListOptions{
		ListOptions: sopclient.ListOptions{Page: 3, PageSize: 50},
		Status:      "low",
		ProductID:   42,
		Location:    "MAIN",
	})
	require.NoError(t, err)
	assert.Contains(t, gotQuery, "page=3")
	assert.Contains(t, gotQuery, "page_size=50")
	assert.Contains(t, gotQuery, "status=low")
	assert.Contains(t, gotQuery, "product_id=42")
	assert.Contains(t, gotQuery, "location=MAIN")
}

func TestInventoryHealth(t *testing.T) {
	c, _ := newTestClient(t, jsonHandler(http.StatusOK, `{
		"total_positions": 120, "normal": 90, "low": 18, "critical": 4, "excess": 8,
		"total_valuation": "250000.50"
	}`))

	h, err := sopclient.NewInventoryService(c).Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 120, h.TotalPositions)
	assert.Equal(t, 4, h.Critical)
	assert.Equal(t, 250000.50, h.TotalValuation.Value)
}
