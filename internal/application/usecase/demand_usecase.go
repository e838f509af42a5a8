package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/genxsop/genxsop/internal/application/dto"
	"github.com/genxsop/genxsop/internal/domain"
	"github.com/genxsop/genxsop/internal/domain/entity"
	"github.com/genxsop/genxsop/internal/domain/repository"
)

// DemandUseCase manages the consensus demand plan and its approval workflow.
// Transitions: draft -> submitted -> approved; rejection returns to draft.
// Locked plans are immutable.
type DemandUseCase struct {
	plans repository.DemandPlanRepository
}

func NewDemandUseCase(plans repository.DemandPlanRepository) *DemandUseCase {
	return &DemandUseCase{plans: plans}
}

// Create adds a demand line in draft.
func (uc *DemandUseCase) Create(ctx context.Context, in dto.CreateDemandPlanRequest, userID int64) (*dto.DemandPlanResponse, error) {
	region := in.Region
	if region == "" {
		region = "Global"
	}
	channel := in.Channel
	if channel == "" {
		channel = "All"
	}

	now := time.Now()
	plan := &entity.DemandPlan{
		ProductID:   in.ProductID,
		Period:      in.Period,
		Region:      region,
		Channel:     channel,
		ForecastQty: in.ForecastQty,
		AdjustedQty: in.AdjustedQty,
		Confidence:  in.Confidence,
		Notes:       in.Notes,
		Status:      entity.PlanDraft,
		CreatedBy:   &userID,
		Version:     1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.plans.Create(ctx, plan); err != nil {
		return nil, err
	}
	resp := dto.DemandPlanToResponse(plan)
	return &resp, nil
}

// Get fetches one demand line.
func (uc *DemandUseCase) Get(ctx context.Context, id int64) (*dto.DemandPlanResponse, error) {
	plan, err := uc.getPlan(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.DemandPlanToResponse(plan)
	return &resp, nil
}

// Update edits a demand line and bumps its version. Locked plans reject edits.
func (uc *DemandUseCase) Update(ctx context.Context, id int64, in dto.UpdateDemandPlanRequest) (*dto.DemandPlanResponse, error) {
	plan, err := uc.getPlan(ctx, id)
	if err != nil {
		return nil, err
	}
	if plan.Status == entity.PlanLocked {
		return nil, domain.ErrPlanLocked
	}

	if in.ForecastQty != nil {
		plan.ForecastQty = *in.ForecastQty
	}
	if in.AdjustedQty != nil {
		plan.AdjustedQty = in.AdjustedQty
	}
	if in.ActualQty != nil {
		plan.ActualQty = in.ActualQty
	}
	if in.ConsensusQty != nil {
		plan.ConsensusQty = in.ConsensusQty
	}
	if in.Confidence != nil {
		plan.Confidence = in.Confidence
	}
	if in.Notes != nil {
		plan.Notes = *in.Notes
	}
	plan.Version++
	plan.UpdatedAt = time.Now()

	if err := uc.plans.Update(ctx, plan); err != nil {
		return nil, err
	}
	resp := dto.DemandPlanToResponse(plan)
	return &resp, nil
}

// Adjust records a planner override of the statistical forecast.
func (uc *DemandUseCase) Adjust(ctx context.Context, id int64, adjustedQty decimal.Decimal, notes string) (*dto.DemandPlanResponse, error) {
	plan, err := uc.getPlan(ctx, id)
	if err != nil {
		return nil, err
	}
	if plan.Status == entity.PlanLocked {
		return nil, domain.ErrPlanLocked
	}

	plan.AdjustedQty = &adjustedQty
	if notes != "" {
		plan.Notes = notes
	}
	plan.Version++
	plan.UpdatedAt = time.Now()

	if err := uc.plans.Update(ctx, plan); err != nil {
		return nil, err
	}
	resp := dto.DemandPlanToResponse(plan)
	return &resp, nil
}

// Submit moves a draft into review. Any other starting status is rejected.
func (uc *DemandUseCase) Submit(ctx context.Context, id int64) (*dto.DemandPlanResponse, error) {
	plan, err := uc.getPlan(ctx, id)
	if err != nil {
		return nil, err
	}
	if plan.Status != entity.PlanDraft {
		return nil, fmt.Errorf("%w: cannot submit a %s demand plan", domain.ErrInvalidTransition, plan.Status)
	}
	plan.Status = entity.PlanSubmitted
	plan.UpdatedAt = time.Now()
	if err := uc.plans.Update(ctx, plan); err != nil {
		return nil, err
	}
	resp := dto.DemandPlanToResponse(plan)
	return &resp, nil
}

// Approve accepts a plan, recording the approver and an optional comment in
// the notes trail.
func (uc *DemandUseCase) Approve(ctx context.Context, id int64, approverID int64, comments string) (*dto.DemandPlanResponse, error) {
	plan, err := uc.getPlan(ctx, id)
	if err != nil {
		return nil, err
	}
	if plan.Status != entity.PlanSubmitted {
		return nil, fmt.Errorf("%w: cannot approve a %s demand plan", domain.ErrInvalidTransition, plan.Status)
	}
	plan.Status = entity.PlanApproved
	plan.ApprovedBy = &approverID
	if comments != "" {
		plan.Notes = plan.Notes + "\n[Approved] " + comments
	}
	plan.UpdatedAt = time.Now()
	if err := uc.plans.Update(ctx, plan); err != nil {
		return nil, err
	}
	resp := dto.DemandPlanToResponse(plan)
	return &resp, nil
}

// Reject returns a plan to draft so the planner can rework it.
func (uc *DemandUseCase) Reject(ctx context.Context, id int64, comments string) (*dto.DemandPlanResponse, error) {
	plan, err := uc.getPlan(ctx, id)
	if err != nil {
		return nil, err
	}
	if plan.Status != entity.PlanSubmitted {
		return nil, fmt.Errorf("%w: cannot reject a %s demand plan", domain.ErrInvalidTransition, plan.Status)
	}
	plan.Status = entity.PlanDraft
	if comments != "" {
		plan.Notes = plan.Notes + "\n[Rejected] " + comments
	}
	plan.UpdatedAt = time.Now()
	if err := uc.plans.Update(ctx, plan); err != nil {
		return nil, err
	}
	resp := dto.DemandPlanToResponse(plan)
	return &resp, nil
}

// Delete removes a plan unless it has been approved or locked.
func (uc *DemandUseCase) Delete(ctx context.Context, id int64) error {
	plan, err := uc.getPlan(ctx, id)
	if err != nil {
		return err
	}
	if plan.Status == entity.PlanApproved || plan.Status == entity.PlanLocked {
		return fmt.Errorf("%w: cannot delete %s demand plans", domain.ErrConflict, plan.Status)
	}
	return uc.plans.Delete(ctx, id)
}

// List returns a filtered page of demand lines.
func (uc *DemandUseCase) List(ctx context.Context, f dto.PlanFilterRequest, page dto.PageRequest) (*dto.ListResponse[dto.DemandPlanResponse], error) {
	page.Normalize()
	items, total, err := uc.plans.List(ctx, repository.PlanFilter{
		ProductID:  f.ProductID,
		Status:     f.Status,
		Region:     f.Region,
		Channel:    f.Channel,
		PeriodFrom: f.PeriodFrom,
		PeriodTo:   f.PeriodTo,
	}, page.Page, page.PageSize)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DemandPlanResponse, 0, len(items))
	for _, p := range items {
		out = append(out, dto.DemandPlanToResponse(p))
	}
	resp := dto.NewListResponse(out, total, page.Page, page.PageSize)
	return &resp, nil
}

func (uc *DemandUseCase) getPlan(ctx context.Context, id int64) (*entity.DemandPlan, error) {
	plan, err := uc.plans.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, domain.ErrNotFound
	}
	return plan, nil
}
