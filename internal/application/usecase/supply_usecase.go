package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/genxsop/genxsop/internal/application/dto"
	"github.com/genxsop/genxsop/internal/domain"
	"github.com/genxsop/genxsop/internal/domain/entity"
	"github.com/genxsop/genxsop/internal/domain/repository"
)

// SupplyUseCase manages supply commitments and the demand/supply gap analysis.
type SupplyUseCase struct {
	plans    repository.SupplyPlanRepository
	demand   repository.DemandPlanRepository
	products repository.ProductRepository
}

func NewSupplyUseCase(
	plans repository.SupplyPlanRepository,
	demand repository.DemandPlanRepository,
	products repository.ProductRepository,
) *SupplyUseCase {
	return &SupplyUseCase{plans: plans, demand: demand, products: products}
}

// Create adds a supply line in draft.
func (uc *SupplyUseCase) Create(ctx context.Context, in dto.CreateSupplyPlanRequest, userID int64) (*dto.SupplyPlanResponse, error) {
	location := in.Location
	if location == "" {
		location = "Main"
	}

	now := time.Now()
	plan := &entity.SupplyPlan{
		ProductID:      in.ProductID,
		Period:         in.Period,
		Location:       location,
		PlannedProdQty: in.PlannedProdQty,
		CapacityMax:    in.CapacityMax,
		CapacityUsed:   in.CapacityUsed,
		SupplierName:   in.SupplierName,
		LeadTimeDays:   in.LeadTimeDays,
		CostPerUnit:    in.CostPerUnit,
		Constraints:    in.Constraints,
		Status:         entity.PlanDraft,
		CreatedBy:      &userID,
		Version:        1,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.plans.Create(ctx, plan); err != nil {
		return nil, err
	}
	resp := dto.SupplyPlanToResponse(plan)
	return &resp, nil
}

// Get fetches one supply line.
func (uc *SupplyUseCase) Get(ctx context.Context, id int64) (*dto.SupplyPlanResponse, error) {
	plan, err := uc.getPlan(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.SupplyPlanToResponse(plan)
	return &resp, nil
}

// Update edits a supply line and bumps its version.
func (uc *SupplyUseCase) Update(ctx context.Context, id int64, in dto.UpdateSupplyPlanRequest) (*dto.SupplyPlanResponse, error) {
	plan, err := uc.getPlan(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.PlannedProdQty != nil {
		plan.PlannedProdQty = in.PlannedProdQty
	}
	if in.ActualProdQty != nil {
		plan.ActualProdQty = in.ActualProdQty
	}
	if in.CapacityMax != nil {
		plan.CapacityMax = in.CapacityMax
	}
	if in.CapacityUsed != nil {
		plan.CapacityUsed = in.CapacityUsed
	}
	if in.SupplierName != nil {
		plan.SupplierName = *in.SupplierName
	}
	if in.LeadTimeDays != nil {
		plan.LeadTimeDays = in.LeadTimeDays
	}
	if in.CostPerUnit != nil {
		plan.CostPerUnit = in.CostPerUnit
	}
	if in.Constraints != nil {
		plan.Constraints = *in.Constraints
	}
	plan.Version++
	plan.UpdatedAt = time.Now()

	if err := uc.plans.Update(ctx, plan); err != nil {
		return nil, err
	}
	resp := dto.SupplyPlanToResponse(plan)
	return &resp, nil
}

// Submit moves a supply line into review.
func (uc *SupplyUseCase) Submit(ctx context.Context, id int64) (*dto.SupplyPlanResponse, error) {
	return uc.setStatus(ctx, id, entity.PlanSubmitted, nil)
}

// Approve accepts a supply line.
func (uc *SupplyUseCase) Approve(ctx context.Context, id int64, approverID int64) (*dto.SupplyPlanResponse, error) {
	return uc.setStatus(ctx, id, entity.PlanApproved, &approverID)
}

// Delete removes a supply line.
func (uc *SupplyUseCase) Delete(ctx context.Context, id int64) error {
	if _, err := uc.getPlan(ctx, id); err != nil {
		return err
	}
	return uc.plans.Delete(ctx, id)
}

// List returns a filtered page of supply lines.
func (uc *SupplyUseCase) List(ctx context.Context, f dto.PlanFilterRequest, page dto.PageRequest) (*dto.ListResponse[dto.SupplyPlanResponse], error) {
	page.Normalize()
	items, total, err := uc.plans.List(ctx, repository.PlanFilter{
		ProductID:  f.ProductID,
		Status:     f.Status,
		Location:   f.Location,
		PeriodFrom: f.PeriodFrom,
		PeriodTo:   f.PeriodTo,
	}, page.Page, page.PageSize)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SupplyPlanResponse, 0, len(items))
	for _, p := range items {
		out = append(out, dto.SupplyPlanToResponse(p))
	}
	resp := dto.NewListResponse(out, total, page.Page, page.PageSize)
	return &resp, nil
}

// Gap analysis thresholds as percent of demand.
var (
	gapCriticalPct = decimal.NewFromInt(-20)
	gapExcessPct   = decimal.NewFromInt(20)
)

// GapAnalysis compares demand against committed supply for one planning month.
// Demand per product takes consensus over adjusted over forecast quantity.
func (uc *SupplyUseCase) GapAnalysis(ctx context.Context, period *time.Time) ([]dto.GapAnalysisItem, error) {
	target := firstOfMonth(time.Now().UTC())
	if period != nil {
		target = *period
	}

	demandPlans, err := uc.demand.ListByPeriod(ctx, target)
	if err != nil {
		return nil, err
	}
	supplyPlans, err := uc.plans.ListByPeriod(ctx, target)
	if err != nil {
		return nil, err
	}

	supplyByProduct := map[int64]decimal.Decimal{}
	for _, sp := range supplyPlans {
		qty := decimal.Zero
		if sp.PlannedProdQty != nil {
			qty = *sp.PlannedProdQty
		}
		supplyByProduct[sp.ProductID] = supplyByProduct[sp.ProductID].Add(qty)
	}

	out := make([]dto.GapAnalysisItem, 0, len(demandPlans))
	hundred := decimal.NewFromInt(100)
	for _, dp := range demandPlans {
		demand := dp.ForecastQty
		if dp.AdjustedQty != nil {
			demand = *dp.AdjustedQty
		}
		if dp.ConsensusQty != nil {
			demand = *dp.ConsensusQty
		}

		supply := supplyByProduct[dp.ProductID]
		gap := supply.Sub(demand)
		gapPct := decimal.Zero
		if !demand.IsZero() {
			gapPct = gap.Div(demand).Mul(hundred).Round(2)
		}

		status := "balanced"
		switch {
		case gapPct.LessThan(gapCriticalPct):
			status = "critical"
		case gapPct.IsNegative():
			status = "shortage"
		case gapPct.GreaterThan(gapExcessPct):
			status = "excess"
		}

		name, sku := "Unknown", "N/A"
		if product, err := uc.products.GetByID(ctx, dp.ProductID); err == nil && product != nil {
			name, sku = product.Name, product.SKU
		}

		out = append(out, dto.GapAnalysisItem{
			ProductID:   dp.ProductID,
			ProductName: name,
			SKU:         sku,
			Period:      target,
			DemandQty:   demand,
			SupplyQty:   supply,
			Gap:         gap,
			GapPct:      gapPct,
			Status:      status,
		})
	}
	return out, nil
}

func (uc *SupplyUseCase) setStatus(ctx context.Context, id int64, status string, approverID *int64) (*dto.SupplyPlanResponse, error) {
	plan, err := uc.getPlan(ctx, id)
	if err != nil {
		return nil, err
	}
	plan.Status = status
	if approverID != nil {
		plan.ApprovedBy = approverID
	}
	plan.UpdatedAt = time.Now()
	if err := uc.plans.Update(ctx, plan); err != nil {
		return nil, err
	}
	resp := dto.SupplyPlanToResponse(plan)
	return &resp, nil
}

func (uc *SupplyUseCase) getPlan(ctx context.Context, id int64) (*entity.SupplyPlan, error) {
	plan, err := uc.plans.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, domain.ErrNotFound
	}
	return plan, nil
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
