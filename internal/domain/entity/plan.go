package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Plan statuses shared by demand plans, supply plans and scenarios.
const (
	PlanDraft     = "draft"
	PlanSubmitted = "submitted"
	PlanApproved  = "approved"
	PlanRejected  = "rejected"
	PlanLocked    = "locked"
)

// DemandPlan is one product/period/region demand line in the consensus plan.
type DemandPlan struct {
	ID          int64
	ProductID   int64
	Period      time.Time // first day of the planning month
	Region      string
	Channel     string
	ForecastQty decimal.Decimal
	AdjustedQty *decimal.Decimal
	ActualQty   *decimal.Decimal
	ConsensusQty *decimal.Decimal
	Confidence  *decimal.Decimal // percent
	Notes       string
	Status      string
	CreatedBy   *int64
	ApprovedBy  *int64
	Version     int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SupplyPlan is one product/period/location supply commitment.
type SupplyPlan struct {
	ID             int64
	ProductID      int64
	Period         time.Time
	Location       string
	PlannedProdQty *decimal.Decimal
	ActualProdQty  *decimal.Decimal
	CapacityMax    *decimal.Decimal
	CapacityUsed   *decimal.Decimal
	SupplierName   string
	LeadTimeDays   *int
	CostPerUnit    *decimal.Decimal
	Constraints    string
	Status         string
	CreatedBy      *int64
	ApprovedBy     *int64
	Version        int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
