package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/genxsop/genxsop/internal/domain/entity"
)

// ScenarioParameters are the planning levers a what-if run accepts. Percent
// fields are whole percents (10 means +10%).
type ScenarioParameters struct {
	DemandChangePct   decimal.Decimal `json:"demand_change_pct"`
	SupplyCapacityPct decimal.Decimal `json:"supply_capacity_pct"`
	PriceChangePct    decimal.Decimal `json:"price_change_pct"`
}

// CreateScenarioRequest registers a what-if simulation.
type CreateScenarioRequest struct {
	Name         string             `json:"name" validate:"required,min=1,max=200"`
	Description  string             `json:"description"`
	ScenarioType string             `json:"scenario_type"`
	Parameters   ScenarioParameters `json:"parameters"`
}

// UpdateScenarioRequest edits a scenario before it is run.
type UpdateScenarioRequest struct {
	Name        *string             `json:"name"`
	Description *string             `json:"description"`
	Parameters  *ScenarioParameters `json:"parameters"`
}

// ScenarioResponse is the public view of a scenario.
type ScenarioResponse struct {
	ID                 int64            `json:"id"`
	Name               string           `json:"name"`
	Description        string           `json:"description"`
	ScenarioType       string           `json:"scenario_type"`
	Parameters         json.RawMessage  `json:"parameters"`
	Results            json.RawMessage  `json:"results"`
	RevenueImpact      *decimal.Decimal `json:"revenue_impact"`
	MarginImpact       *decimal.Decimal `json:"margin_impact"`
	InventoryImpact    *decimal.Decimal `json:"inventory_impact"`
	ServiceLevelImpact *decimal.Decimal `json:"service_level_impact"`
	Status             string           `json:"status"`
	CreatedBy          *int64           `json:"created_by"`
	ApprovedBy         *int64           `json:"approved_by"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

func ScenarioToResponse(s *entity.Scenario) ScenarioResponse {
	return ScenarioResponse{
		ID:                 s.ID,
		Name:               s.Name,
		Description:        s.Description,
		ScenarioType:       s.ScenarioType,
		Parameters:         s.Parameters,
		Results:            s.Results,
		RevenueImpact:      s.RevenueImpact,
		MarginImpact:       s.MarginImpact,
		InventoryImpact:    s.InventoryImpact,
		ServiceLevelImpact: s.ServiceLevelImpact,
		Status:             s.Status,
		CreatedBy:          s.CreatedBy,
		ApprovedBy:         s.ApprovedBy,
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}
}

// ScenarioRunResults is the Results document a run writes.
type ScenarioRunResults struct {
	RevenueImpact             decimal.Decimal `json:"revenue_impact"`
	MarginImpact              decimal.Decimal `json:"margin_impact"`
	InventoryImpact           decimal.Decimal `json:"inventory_impact"`
	ServiceLevelImpact        decimal.Decimal `json:"service_level_impact"`
	CapacityUtilizationChange decimal.Decimal `json:"capacity_utilization_change"`
}

// ScenarioComparisonItem is one row of a side-by-side comparison.
type ScenarioComparisonItem struct {
	ID                 int64           `json:"id"`
	Name               string          `json:"name"`
	ScenarioType       string          `json:"scenario_type"`
	RevenueImpact      decimal.Decimal `json:"revenue_impact"`
	MarginImpact       decimal.Decimal `json:"margin_impact"`
	InventoryImpact    decimal.Decimal `json:"inventory_impact"`
	ServiceLevelImpact decimal.Decimal `json:"service_level_impact"`
	Status             string          `json:"status"`
}

// CompareScenariosRequest selects the scenarios to put side by side.
type CompareScenariosRequest struct {
	ScenarioIDs []int64 `json:"scenario_ids" validate:"required,min=2"`
}
