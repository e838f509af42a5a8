package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/genxsop/genxsop/internal/application/dto"
	"github.com/genxsop/genxsop/internal/domain"
	"github.com/genxsop/genxsop/internal/domain/entity"
	"github.com/genxsop/genxsop/internal/domain/repository"
)

// Simulation baselines. The model projects impacts against a fixed book of
// business rather than live plan data.
var (
	baseRevenue      = decimal.NewFromInt(12500000)
	baseMargin       = decimal.NewFromInt(3800000)
	baseInventory    = decimal.NewFromInt(2100000)
	baseServiceLevel = decimal.RequireFromString("94.2")
)

// ScenarioUseCase manages what-if simulations and their approval flow.
type ScenarioUseCase struct {
	scenarios repository.ScenarioRepository
}

func NewScenarioUseCase(scenarios repository.ScenarioRepository) *ScenarioUseCase {
	return &ScenarioUseCase{scenarios: scenarios}
}

// Create registers a scenario in draft.
func (uc *ScenarioUseCase) Create(ctx context.Context, in dto.CreateScenarioRequest, userID int64) (*dto.ScenarioResponse, error) {
	scenarioType := in.ScenarioType
	if scenarioType == "" {
		scenarioType = entity.ScenarioWhatIf
	}
	params, err := json.Marshal(in.Parameters)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	s := &entity.Scenario{
		Name:         in.Name,
		Description:  in.Description,
		ScenarioType: scenarioType,
		Parameters:   params,
		Status:       entity.PlanDraft,
		CreatedBy:    &userID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.scenarios.Create(ctx, s); err != nil {
		return nil, err
	}
	resp := dto.ScenarioToResponse(s)
	return &resp, nil
}

// Get fetches one scenario.
func (uc *ScenarioUseCase) Get(ctx context.Context, id int64) (*dto.ScenarioResponse, error) {
	s, err := uc.getScenario(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.ScenarioToResponse(s)
	return &resp, nil
}

// Update edits name, description or parameters.
func (uc *ScenarioUseCase) Update(ctx context.Context, id int64, in dto.UpdateScenarioRequest) (*dto.ScenarioResponse, error) {
	s, err := uc.getScenario(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		s.Name = *in.Name
	}
	if in.Description != nil {
		s.Description = *in.Description
	}
	if in.Parameters != nil {
		params, err := json.Marshal(in.Parameters)
		if err != nil {
			return nil, err
		}
		s.Parameters = params
	}
	s.UpdatedAt = time.Now()
	if err := uc.scenarios.Update(ctx, s); err != nil {
		return nil, err
	}
	resp := dto.ScenarioToResponse(s)
	return &resp, nil
}

// Delete removes a scenario.
func (uc *ScenarioUseCase) Delete(ctx context.Context, id int64) error {
	if _, err := uc.getScenario(ctx, id); err != nil {
		return err
	}
	return uc.scenarios.Delete(ctx, id)
}

// List returns a page of scenarios, newest first.
func (uc *ScenarioUseCase) List(ctx context.Context, status string, page dto.PageRequest) (*dto.ListResponse[dto.ScenarioResponse], error) {
	page.Normalize()
	items, total, err := uc.scenarios.List(ctx, status, page.Page, page.PageSize)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ScenarioResponse, 0, len(items))
	for _, s := range items {
		out = append(out, dto.ScenarioToResponse(s))
	}
	resp := dto.NewListResponse(out, total, page.Page, page.PageSize)
	return &resp, nil
}

// Run executes the simulation, stores the results document and denormalizes
// the headline impacts. Percent levers are fractions of the baselines:
//
//	revenue   = base * (demand + price)
//	margin    = base * (demand*0.8 + price)
//	inventory = base * (demand*0.5)
//	service   = base - demand*5 + supply*3
func (uc *ScenarioUseCase) Run(ctx context.Context, id int64) (*dto.ScenarioResponse, error) {
	s, err := uc.getScenario(ctx, id)
	if err != nil {
		return nil, err
	}

	var params dto.ScenarioParameters
	if len(s.Parameters) > 0 {
		if err := json.Unmarshal(s.Parameters, &params); err != nil {
			return nil, err
		}
	}

	hundred := decimal.NewFromInt(100)
	demand := params.DemandChangePct.Div(hundred)
	supply := params.SupplyCapacityPct.Div(hundred)
	price := params.PriceChangePct.Div(hundred)

	results := dto.ScenarioRunResults{
		RevenueImpact: baseRevenue.Mul(demand.Add(price)).Round(2),
		MarginImpact: baseMargin.Mul(
			demand.Mul(decimal.RequireFromString("0.8")).Add(price)).Round(2),
		InventoryImpact: baseInventory.Mul(
			demand.Mul(decimal.RequireFromString("0.5"))).Round(2),
		ServiceLevelImpact: baseServiceLevel.
			Sub(demand.Mul(decimal.NewFromInt(5))).
			Add(supply.Mul(decimal.NewFromInt(3))).Round(2),
		CapacityUtilizationChange: supply.Mul(hundred).Round(2),
	}
	raw, err := json.Marshal(results)
	if err != nil {
		return nil, err
	}

	s.Status = entity.ScenarioCompleted
	s.Results = raw
	s.RevenueImpact = &results.RevenueImpact
	s.MarginImpact = &results.MarginImpact
	s.InventoryImpact = &results.InventoryImpact
	s.ServiceLevelImpact = &results.ServiceLevelImpact
	s.UpdatedAt = time.Now()

	if err := uc.scenarios.Update(ctx, s); err != nil {
		return nil, err
	}
	resp := dto.ScenarioToResponse(s)
	return &resp, nil
}

// Submit moves a scenario into review.
func (uc *ScenarioUseCase) Submit(ctx context.Context, id int64) (*dto.ScenarioResponse, error) {
	return uc.setStatus(ctx, id, entity.PlanSubmitted, nil)
}

// Approve accepts a scenario, recording the approver.
func (uc *ScenarioUseCase) Approve(ctx context.Context, id int64, approverID int64) (*dto.ScenarioResponse, error) {
	return uc.setStatus(ctx, id, entity.PlanApproved, &approverID)
}

// Reject declines a scenario.
func (uc *ScenarioUseCase) Reject(ctx context.Context, id int64) (*dto.ScenarioResponse, error) {
	return uc.setStatus(ctx, id, entity.PlanRejected, nil)
}

// Compare returns the headline impacts of several scenarios side by side.
func (uc *ScenarioUseCase) Compare(ctx context.Context, ids []int64) ([]dto.ScenarioComparisonItem, error) {
	scenarios, err := uc.scenarios.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ScenarioComparisonItem, 0, len(scenarios))
	for _, s := range scenarios {
		out = append(out, dto.ScenarioComparisonItem{
			ID:                 s.ID,
			Name:               s.Name,
			ScenarioType:       s.ScenarioType,
			RevenueImpact:      orZero(s.RevenueImpact),
			MarginImpact:       orZero(s.MarginImpact),
			InventoryImpact:    orZero(s.InventoryImpact),
			ServiceLevelImpact: orZero(s.ServiceLevelImpact),
			Status:             s.Status,
		})
	}
	return out, nil
}

func (uc *ScenarioUseCase) setStatus(ctx context.Context, id int64, status string, approverID *int64) (*dto.ScenarioResponse, error) {
	s, err := uc.getScenario(ctx, id)
	if err != nil {
		return nil, err
	}
	s.Status = status
	if approverID != nil {
		s.ApprovedBy = approverID
	}
	s.UpdatedAt = time.Now()
	if err := uc.scenarios.Update(ctx, s); err != nil {
		return nil, err
	}
	resp := dto.ScenarioToResponse(s)
	return &resp, nil
}

func (uc *ScenarioUseCase) getScenario(ctx context.Context, id int64) (*entity.Scenario, error) {
	s, err := uc.scenarios.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

func orZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}
