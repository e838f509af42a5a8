package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardSummaryResponse is the executive dashboard aggregate.
type DashboardSummaryResponse struct {
	DemandPlans     DemandPlanCounts        `json:"demand_plans"`
	InventoryHealth InventoryHealthResponse `json:"inventory_health"`
	KPIs            DashboardKPIs           `json:"kpis"`
	SOPCycle        *DashboardCycle         `json:"sop_cycle"`
}

// DemandPlanCounts breaks the demand plan book down by status.
type DemandPlanCounts struct {
	Draft     int `json:"draft"`
	Submitted int `json:"submitted"`
	Approved  int `json:"approved"`
	Total     int `json:"total"`
}

// DashboardKPIs carries the two headline metrics; nil when never recorded.
type DashboardKPIs struct {
	ForecastAccuracy *decimal.Decimal `json:"forecast_accuracy"`
	OTIF             *decimal.Decimal `json:"otif"`
}

// DashboardCycle is the active cycle widget; the summary omits it when no
// cycle is running.
type DashboardCycle struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	CurrentStep int    `json:"current_step"`
	Status      string `json:"status"`
}

// DashboardAlertsResponse gathers active alerts across modules.
type DashboardAlertsResponse struct {
	InventoryCritical []DashboardInventoryAlert `json:"inventory_critical"`
	InventoryLow      []DashboardInventoryAlert `json:"inventory_low"`
	KPIAlerts         []DashboardKPIAlert       `json:"kpi_alerts"`
	TotalAlerts       int                       `json:"total_alerts"`
}

// DashboardInventoryAlert is one stocking position below threshold.
type DashboardInventoryAlert struct {
	ProductID int64           `json:"product_id"`
	Location  string          `json:"location"`
	OnHand    decimal.Decimal `json:"on_hand"`
}

// DashboardKPIAlert is one metric far enough off target to surface.
type DashboardKPIAlert struct {
	Type     string          `json:"type"`
	Severity string          `json:"severity"`
	Message  string          `json:"message"`
	Metric   string          `json:"metric"`
	Value    decimal.Decimal `json:"value"`
	Target   decimal.Decimal `json:"target"`
}

// SOPStatusResponse is the dashboard's cycle widget with per-step detail.
type SOPStatusResponse struct {
	Active        bool              `json:"active"`
	Message       string            `json:"message,omitempty"`
	ID            int64             `json:"id,omitempty"`
	Name          string            `json:"name,omitempty"`
	Period        *time.Time        `json:"period,omitempty"`
	CurrentStep   int               `json:"current_step,omitempty"`
	Steps         []SOPStepResponse `json:"steps,omitempty"`
	OverallStatus string            `json:"overall_status,omitempty"`
}
