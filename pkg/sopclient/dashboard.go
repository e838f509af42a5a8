package sopclient

import (
	"context"
	"fmt"
	"time"
)

// DashboardSummary is the client-side flattened summary. The backend groups
// its figures by module; this shape is what display code consumes.
type DashboardSummary struct {
	TotalProducts       int     `json:"total_products"`
	DemandPlansCount    int     `json:"demand_plans_count"`
	PendingApprovals    int     `json:"pending_approvals"`
	InventoryAlerts     int     `json:"inventory_alerts"`
	LowStockCount       int     `json:"low_stock_count"`
	TotalInventoryValue float64 `json:"total_inventory_value"`
	ForecastAccuracy    float64 `json:"forecast_accuracy"`
	OTIFRate            float64 `json:"otif_rate"`
	ActiveSOPCycle      string  `json:"active_sop_cycle,omitempty"`
	SOPCycleStage       string  `json:"sop_cycle_stage,omitempty"`
	SOPCycleID          int64   `json:"sop_cycle_id,omitempty"`
}

// DashboardAlert is one flattened alert row. The backend returns three
// separate lists; they are merged here with synthesized ids and severities.
type DashboardAlert struct {
	ID         string `json:"id"`
	Severity   string `json:"severity"`
	Title      string `json:"title"`
	Message    string `json:"message"`
	EntityType string `json:"entity_type"`
	EntityID   int64  `json:"entity_id,omitempty"`
	CreatedAt  string `json:"created_at"`
}

// SOPStatus is the dashboard's cycle widget.
type SOPStatus struct {
	Active        bool      `json:"active"`
	Message       string    `json:"message,omitempty"`
	ID            int64     `json:"id,omitempty"`
	Name          string    `json:"name,omitempty"`
	CurrentStep   int       `json:"current_step,omitempty"`
	OverallStatus string    `json:"overall_status,omitempty"`
	Steps         []SOPStep `json:"steps,omitempty"`
}

// backend wire shapes for the dashboard endpoints.
type backendSummary struct {
	DemandPlans struct {
		Draft     int `json:"draft"`
		Submitted int `json:"submitted"`
		Approved  int `json:"approved"`
		Total     int `json:"total"`
	} `json:"demand_plans"`
	InventoryHealth struct {
		TotalPositions int    `json:"total_positions"`
		Normal         int    `json:"normal"`
		Low            int    `json:"low"`
		Critical       int    `json:"critical"`
		Excess         int    `json:"excess"`
		TotalValuation Number `json:"total_valuation"`
	} `json:"inventory_health"`
	KPIs struct {
		ForecastAccuracy Number `json:"forecast_accuracy"`
		OTIF             Number `json:"otif"`
	} `json:"kpis"`
	SOPCycle *struct {
		ID          int64  `json:"id"`
		Name        string `json:"name"`
		CurrentStep int    `json:"current_step"`
		Status      string `json:"status"`
	} `json:"sop_cycle"`
}

type backendInventoryAlert struct {
	ProductID int64  `json:"product_id"`
	Location  string `json:"location"`
	OnHand    Number `json:"on_hand"`
}

type backendAlerts struct {
	InventoryCritical []backendInventoryAlert `json:"inventory_critical"`
	InventoryLow      []backendInventoryAlert `json:"inventory_low"`
	KPIAlerts         []struct {
		Severity string `json:"severity"`
		Message  string `json:"message"`
		Metric   string `json:"metric"`
		Value    Number `json:"value"`
		Target   Number `json:"target"`
	} `json:"kpi_alerts"`
	TotalAlerts int `json:"total_alerts"`
}

// sopStepLabel renders the human-readable stage name for a step number.
func sopStepLabel(step int) string {
	switch step {
	case 1:
		return "Data Gathering"
	case 2:
		return "Demand Review"
	case 3:
		return "Supply Review"
	case 4:
		return "Pre-S&OP"
	case 5:
		return "Executive S&OP"
	default:
		if step <= 0 {
			return ""
		}
		return fmt.Sprintf("Step %d", step)
	}
}

// DashboardService covers the dashboard aggregates.
type DashboardService struct {
	c *Client
}

func NewDashboardService(c *Client) *DashboardService {
	return &DashboardService{c: c}
}

// Summary fetches and flattens the executive summary, synthesizing the
// display-only stage label from the numeric step.
func (s *DashboardService) Summary(ctx context.Context) (*DashboardSummary, error) {
	var raw backendSummary
	if err := s.c.getJSON(ctx, "/dashboard/summary", nil, &raw); err != nil {
		return nil, err
	}

	out := &DashboardSummary{
		TotalProducts:       raw.InventoryHealth.TotalPositions,
		DemandPlansCount:    raw.DemandPlans.Total,
		PendingApprovals:    raw.DemandPlans.Submitted,
		InventoryAlerts:     raw.InventoryHealth.Low + raw.InventoryHealth.Critical,
		LowStockCount:       raw.InventoryHealth.Low,
		TotalInventoryValue: raw.InventoryHealth.TotalValuation.Or(0),
		ForecastAccuracy:    raw.KPIs.ForecastAccuracy.Or(0),
		OTIFRate:            raw.KPIs.OTIF.Or(0),
	}
	if c := raw.SOPCycle; c != nil {
		out.ActiveSOPCycle = c.Name
		out.SOPCycleStage = sopStepLabel(c.CurrentStep)
		out.SOPCycleID = c.ID
	}
	return out, nil
}

// Alerts fetches and flattens the combined alert feed. Ids are synthesized
// from the alert source since the backend does not assign them.
func (s *DashboardService) Alerts(ctx context.Context) ([]DashboardAlert, error) {
	var raw backendAlerts
	if err := s.c.getJSON(ctx, "/dashboard/alerts", nil, &raw); err != nil {
		return nil, err
	}

	now := time.Now().Format(time.RFC3339)
	out := make([]DashboardAlert, 0, len(raw.InventoryCritical)+len(raw.InventoryLow)+len(raw.KPIAlerts))

	for _, a := range raw.InventoryCritical {
		out = append(out, DashboardAlert{
			ID:         fmt.Sprintf("inv-critical-%d-%s", a.ProductID, a.Location),
			Severity:   "critical",
			Title:      "Critical inventory",
			Message:    fmt.Sprintf("Product #%d at %s has %s on hand", a.ProductID, a.Location, a.OnHand),
			EntityType: "inventory",
			EntityID:   a.ProductID,
			CreatedAt:  now,
		})
	}
	for _, a := range raw.InventoryLow {
		out = append(out, DashboardAlert{
			ID:         fmt.Sprintf("inv-low-%d-%s", a.ProductID, a.Location),
			Severity:   "warning",
			Title:      "Low inventory",
			Message:    fmt.Sprintf("Product #%d at %s has %s on hand", a.ProductID, a.Location, a.OnHand),
			EntityType: "inventory",
			EntityID:   a.ProductID,
			CreatedAt:  now,
		})
	}
	for _, k := range raw.KPIAlerts {
		severity := k.Severity
		if severity != "critical" && severity != "warning" {
			severity = "info"
		}
		title := "KPI alert"
		if k.Metric != "" {
			title = "KPI: " + k.Metric
		}
		out = append(out, DashboardAlert{
			ID:         "kpi-" + k.Metric,
			Severity:   severity,
			Title:      title,
			Message:    k.Message,
			EntityType: "kpi",
			CreatedAt:  now,
		})
	}
	return out, nil
}

// SOPStatus fetches the cycle widget.
func (s *DashboardService) SOPStatus(ctx context.Context) (*SOPStatus, error) {
	var st SOPStatus
	if err := s.c.getJSON(ctx, "/dashboard/sop-status", nil, &st); err != nil {
		return nil, err
	}
	return &st, nil
}
