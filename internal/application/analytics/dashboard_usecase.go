// Package analytics contains the cross-module aggregations behind the
// executive dashboard.
package analytics

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/genxsop/genxsop/internal/application/dto"
	"github.com/genxsop/genxsop/internal/domain/entity"
	"github.com/genxsop/genxsop/internal/domain/repository"
)

// Headline metric names the summary widget looks up.
const (
	metricForecastAccuracy = "Forecast Accuracy"
	metricOTIF             = "OTIF"
)

// Dashboard KPI alert thresholds, looser than the KPI module's own so only
// the worst breaches surface on the landing page.
var (
	dashWarnPct     = decimal.NewFromInt(15)
	dashCriticalPct = decimal.NewFromInt(25)
)

// DashboardUseCase joins demand, inventory, KPI and cycle state into the
// executive summary and the alert feed.
type DashboardUseCase struct {
	demand    repository.DemandPlanRepository
	inventory repository.InventoryRepository
	metrics   repository.KPIRepository
	cycles    repository.SOPCycleRepository
}

func NewDashboardUseCase(
	demand repository.DemandPlanRepository,
	inventory repository.InventoryRepository,
	metrics repository.KPIRepository,
	cycles repository.SOPCycleRepository,
) *DashboardUseCase {
	return &DashboardUseCase{demand: demand, inventory: inventory, metrics: metrics, cycles: cycles}
}

// GetSummary builds the executive summary. The four sources are independent,
// so they are queried in parallel and joined at the end.
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryResponse, error) {
	type demandResult struct {
		counts dto.DemandPlanCounts
		err    error
	}
	type inventoryResult struct {
		health dto.InventoryHealthResponse
		err    error
	}
	type kpiResult struct {
		kpis dto.DashboardKPIs
		err  error
	}
	type cycleResult struct {
		cycle *dto.DashboardCycle
		err   error
	}

	demandCh := make(chan demandResult, 1)
	invCh := make(chan inventoryResult, 1)
	kpiCh := make(chan kpiResult, 1)
	cycleCh := make(chan cycleResult, 1)

	go func() {
		counts, err := uc.demandCounts(ctx)
		demandCh <- demandResult{counts, err}
	}()
	go func() {
		health, err := uc.inventoryHealth(ctx)
		invCh <- inventoryResult{health, err}
	}()
	go func() {
		kpis, err := uc.headlineKPIs(ctx)
		kpiCh <- kpiResult{kpis, err}
	}()
	go func() {
		cycle, err := uc.activeCycle(ctx)
		cycleCh <- cycleResult{cycle, err}
	}()

	demand := <-demandCh
	inv := <-invCh
	kpi := <-kpiCh
	cycle := <-cycleCh

	if demand.err != nil {
		return nil, fmt.Errorf("dashboard: demand counts: %w", demand.err)
	}
	if inv.err != nil {
		return nil, fmt.Errorf("dashboard: inventory health: %w", inv.err)
	}
	if kpi.err != nil {
		return nil, fmt.Errorf("dashboard: headline KPIs: %w", kpi.err)
	}
	if cycle.err != nil {
		return nil, fmt.Errorf("dashboard: active cycle: %w", cycle.err)
	}

	return &dto.DashboardSummaryResponse{
		DemandPlans:     demand.counts,
		InventoryHealth: inv.health,
		KPIs:            kpi.kpis,
		SOPCycle:        cycle.cycle,
	}, nil
}

// GetAlerts gathers inventory threshold breaches and off-target KPIs.
func (uc *DashboardUseCase) GetAlerts(ctx context.Context) (*dto.DashboardAlertsResponse, error) {
	positions, err := uc.inventory.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: inventory alerts: %w", err)
	}

	resp := &dto.DashboardAlertsResponse{
		InventoryCritical: []dto.DashboardInventoryAlert{},
		InventoryLow:      []dto.DashboardInventoryAlert{},
		KPIAlerts:         []dto.DashboardKPIAlert{},
	}
	for _, inv := range positions {
		alert := dto.DashboardInventoryAlert{
			ProductID: inv.ProductID,
			Location:  inv.Location,
			OnHand:    inv.OnHandQty,
		}
		switch inv.Status {
		case entity.InventoryCritical:
			resp.InventoryCritical = append(resp.InventoryCritical, alert)
		case entity.InventoryLow:
			resp.InventoryLow = append(resp.InventoryLow, alert)
		}
	}

	metrics, err := uc.metrics.ListLatestWithTargets(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: kpi alerts: %w", err)
	}
	hundred := decimal.NewFromInt(100)
	for _, m := range metrics {
		if m.Target == nil || m.Target.IsZero() {
			continue
		}
		variancePct := m.Value.Sub(*m.Target).Div(*m.Target).Mul(hundred)
		if variancePct.Abs().LessThanOrEqual(dashWarnPct) {
			continue
		}
		severity := "warning"
		if variancePct.Abs().GreaterThan(dashCriticalPct) {
			severity = "critical"
		}
		resp.KPIAlerts = append(resp.KPIAlerts, dto.DashboardKPIAlert{
			Type:     "kpi",
			Severity: severity,
			Message:  fmt.Sprintf("%s is %s%% off target", m.MetricName, variancePct.Abs().Round(1)),
			Metric:   m.MetricName,
			Value:    m.Value,
			Target:   *m.Target,
		})
	}

	resp.TotalAlerts = len(resp.InventoryCritical) + len(resp.InventoryLow) + len(resp.KPIAlerts)
	return resp, nil
}

// GetSOPStatus builds the cycle widget with per-step detail.
func (uc *DashboardUseCase) GetSOPStatus(ctx context.Context) (*dto.SOPStatusResponse, error) {
	cycle, err := uc.cycles.GetActive(ctx)
	if err != nil {
		return nil, err
	}
	if cycle == nil {
		return &dto.SOPStatusResponse{Active: false, Message: "No active S&OP cycle"}, nil
	}

	steps := make([]dto.SOPStepResponse, entity.NumSteps)
	for i := range cycle.Steps {
		steps[i] = dto.SOPStepResponse{
			Step:    i + 1,
			Name:    entity.StepName(i + 1),
			Status:  cycle.Steps[i].Status,
			DueDate: cycle.Steps[i].DueDate,
			OwnerID: cycle.Steps[i].OwnerID,
		}
	}
	period := cycle.Period
	return &dto.SOPStatusResponse{
		Active:        true,
		ID:            cycle.ID,
		Name:          cycle.CycleName,
		Period:        &period,
		CurrentStep:   cycle.CurrentStep,
		Steps:         steps,
		OverallStatus: cycle.OverallStatus,
	}, nil
}

func (uc *DashboardUseCase) demandCounts(ctx context.Context) (dto.DemandPlanCounts, error) {
	var counts dto.DemandPlanCounts
	statuses := []struct {
		status string
		dest   *int
	}{
		{entity.PlanDraft, &counts.Draft},
		{entity.PlanSubmitted, &counts.Submitted},
		{entity.PlanApproved, &counts.Approved},
	}
	for _, s := range statuses {
		n, err := uc.demand.CountByStatus(ctx, s.status)
		if err != nil {
			return counts, err
		}
		*s.dest = n
	}
	counts.Total = counts.Draft + counts.Submitted + counts.Approved
	return counts, nil
}

func (uc *DashboardUseCase) inventoryHealth(ctx context.Context) (dto.InventoryHealthResponse, error) {
	all, err := uc.inventory.ListAll(ctx)
	if err != nil {
		return dto.InventoryHealthResponse{}, err
	}
	health := dto.InventoryHealthResponse{TotalPositions: len(all), TotalValuation: decimal.Zero}
	for _, inv := range all {
		switch inv.Status {
		case entity.InventoryNormal:
			health.Normal++
		case entity.InventoryLow:
			health.Low++
		case entity.InventoryCritical:
			health.Critical++
		case entity.InventoryExcess:
			health.Excess++
		}
		if inv.Valuation != nil {
			health.TotalValuation = health.TotalValuation.Add(*inv.Valuation)
		}
	}
	return health, nil
}

func (uc *DashboardUseCase) headlineKPIs(ctx context.Context) (dto.DashboardKPIs, error) {
	var kpis dto.DashboardKPIs
	if m, err := uc.metrics.GetLatestByName(ctx, metricForecastAccuracy); err != nil {
		return kpis, err
	} else if m != nil {
		v := m.Value
		kpis.ForecastAccuracy = &v
	}
	if m, err := uc.metrics.GetLatestByName(ctx, metricOTIF); err != nil {
		return kpis, err
	} else if m != nil {
		v := m.Value
		kpis.OTIF = &v
	}
	return kpis, nil
}

func (uc *DashboardUseCase) activeCycle(ctx context.Context) (*dto.DashboardCycle, error) {
	cycle, err := uc.cycles.GetActive(ctx)
	if err != nil {
		return nil, err
	}
	if cycle == nil {
		return nil, nil
	}
	return &dto.DashboardCycle{
		ID:          cycle.ID,
		Name:        cycle.CycleName,
		CurrentStep: cycle.CurrentStep,
		Status:      cycle.OverallStatus,
	}, nil
}
