package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/genxsop/genxsop/internal/domain/entity"
)

// CreateDemandPlanRequest adds a demand line. Period is the planning month.
type CreateDemandPlanRequest struct {
	ProductID   int64            `json:"product_id" validate:"required"`
	Period      time.Time        `json:"period" validate:"required"`
	Region      string           `json:"region"`
	Channel     string           `json:"channel"`
	ForecastQty decimal.Decimal  `json:"forecast_qty" validate:"required"`
	AdjustedQty *decimal.Decimal `json:"adjusted_qty"`
	Confidence  *decimal.Decimal `json:"confidence"`
	Notes       string           `json:"notes"`
}

// UpdateDemandPlanRequest edits a demand line; nil fields are left unchanged.
type UpdateDemandPlanRequest struct {
	ForecastQty  *decimal.Decimal `json:"forecast_qty"`
	AdjustedQty  *decimal.Decimal `json:"adjusted_qty"`
	ActualQty    *decimal.Decimal `json:"actual_qty"`
	ConsensusQty *decimal.Decimal `json:"consensus_qty"`
	Confidence   *decimal.Decimal `json:"confidence"`
	Notes        *string          `json:"notes"`
}

// DemandPlanResponse is the public view of a demand line.
type DemandPlanResponse struct {
	ID           int64            `json:"id"`
	ProductID    int64            `json:"product_id"`
	Period       time.Time        `json:"period"`
	Region       string           `json:"region"`
	Channel      string           `json:"channel"`
	ForecastQty  decimal.Decimal  `json:"forecast_qty"`
	AdjustedQty  *decimal.Decimal `json:"adjusted_qty"`
	ActualQty    *decimal.Decimal `json:"actual_qty"`
	ConsensusQty *decimal.Decimal `json:"consensus_qty"`
	Confidence   *decimal.Decimal `json:"confidence"`
	Notes        string           `json:"notes"`
	Status       string           `json:"status"`
	CreatedBy    *int64           `json:"created_by"`
	ApprovedBy   *int64           `json:"approved_by"`
	Version      int              `json:"version"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

func DemandPlanToResponse(p *entity.DemandPlan) DemandPlanResponse {
	return DemandPlanResponse{
		ID:           p.ID,
		ProductID:    p.ProductID,
		Period:       p.Period,
		Region:       p.Region,
		Channel:      p.Channel,
		ForecastQty:  p.ForecastQty,
		AdjustedQty:  p.AdjustedQty,
		ActualQty:    p.ActualQty,
		ConsensusQty: p.ConsensusQty,
		Confidence:   p.Confidence,
		Notes:        p.Notes,
		Status:       p.Status,
		CreatedBy:    p.CreatedBy,
		ApprovedBy:   p.ApprovedBy,
		Version:      p.Version,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// CreateSupplyPlanRequest adds a supply commitment line.
type CreateSupplyPlanRequest struct {
	ProductID      int64            `json:"product_id" validate:"required"`
	Period         time.Time        `json:"period" validate:"required"`
	Location       string           `json:"location"`
	PlannedProdQty *decimal.Decimal `json:"planned_prod_qty"`
	CapacityMax    *decimal.Decimal `json:"capacity_max"`
	CapacityUsed   *decimal.Decimal `json:"capacity_used"`
	SupplierName   string           `json:"supplier_name"`
	LeadTimeDays   *int             `json:"lead_time_days"`
	CostPerUnit    *decimal.Decimal `json:"cost_per_unit"`
	Constraints    string           `json:"constraints"`
}

// UpdateSupplyPlanRequest edits a supply line; nil fields are left unchanged.
type UpdateSupplyPlanRequest struct {
	PlannedProdQty *decimal.Decimal `json:"planned_prod_qty"`
	ActualProdQty  *decimal.Decimal `json:"actual_prod_qty"`
	CapacityMax    *decimal.Decimal `json:"capacity_max"`
	CapacityUsed   *decimal.Decimal `json:"capacity_used"`
	SupplierName   *string          `json:"supplier_name"`
	LeadTimeDays   *int             `json:"lead_time_days"`
	CostPerUnit    *decimal.Decimal `json:"cost_per_unit"`
	Constraints    *string          `json:"constraints"`
}

// SupplyPlanResponse is the public view of a supply line.
type SupplyPlanResponse struct {
	ID             int64            `json:"id"`
	ProductID      int64            `json:"product_id"`
	Period         time.Time        `json:"period"`
	Location       string           `json:"location"`
	PlannedProdQty *decimal.Decimal `json:"planned_prod_qty"`
	ActualProdQty  *decimal.Decimal `json:"actual_prod_qty"`
	CapacityMax    *decimal.Decimal `json:"capacity_max"`
	CapacityUsed   *decimal.Decimal `json:"capacity_used"`
	SupplierName   string           `json:"supplier_name"`
	LeadTimeDays   *int             `json:"lead_time_days"`
	CostPerUnit    *decimal.Decimal `json:"cost_per_unit"`
	Constraints    string           `json:"constraints"`
	Status         string           `json:"status"`
	CreatedBy      *int64           `json:"created_by"`
	ApprovedBy     *int64           `json:"approved_by"`
	Version        int              `json:"version"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

func SupplyPlanToResponse(p *entity.SupplyPlan) SupplyPlanResponse {
	return SupplyPlanResponse{
		ID:             p.ID,
		ProductID:      p.ProductID,
		Period:         p.Period,
		Location:       p.Location,
		PlannedProdQty: p.PlannedProdQty,
		ActualProdQty:  p.ActualProdQty,
		CapacityMax:    p.CapacityMax,
		CapacityUsed:   p.CapacityUsed,
		SupplierName:   p.SupplierName,
		LeadTimeDays:   p.LeadTimeDays,
		CostPerUnit:    p.CostPerUnit,
		Constraints:    p.Constraints,
		Status:         p.Status,
		CreatedBy:      p.CreatedBy,
		ApprovedBy:     p.ApprovedBy,
		Version:        p.Version,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

// GapAnalysisItem compares demand against supply for one product in a period.
type GapAnalysisItem struct {
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	SKU         string          `json:"sku"`
	Period      time.Time       `json:"period"`
	DemandQty   decimal.Decimal `json:"demand_qty"`
	SupplyQty   decimal.Decimal `json:"supply_qty"`
	Gap         decimal.Decimal `json:"gap"`
	GapPct      decimal.Decimal `json:"gap_pct"`
	Status      string          `json:"status"`
}

// PlanFilterRequest narrows demand/supply plan listings.
type PlanFilterRequest struct {
	ProductID  *int64     `query:"product_id"`
	Status     string     `query:"status"`
	Region     string     `query:"region"`
	Channel    string     `query:"channel"`
	Location   string     `query:"location"`
	PeriodFrom *time.Time `query:"period_from"`
	PeriodTo   *time.Time `query:"period_to"`
}

// AdjustDemandPlanRequest records a manual override of the forecast quantity.
type AdjustDemandPlanRequest struct {
	AdjustedQty decimal.Decimal `json:"adjusted_qty" validate:"required"`
	Notes       string          `json:"notes"`
}

// PlanDecisionRequest carries the optional comment attached to an
// approve or reject decision.
type PlanDecisionRequest struct {
	Comments string `json:"comments"`
}
