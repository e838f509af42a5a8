package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/genxsop/genxsop/internal/application/dto"
	"github.com/genxsop/genxsop/internal/domain"
	"github.com/genxsop/genxsop/internal/domain/entity"
	"github.com/genxsop/genxsop/internal/domain/repository"
)

// CycleReporter renders a cycle summary document.
type CycleReporter interface {
	GenerateCycleReport(ctx context.Context, cycle *entity.SOPCycle) ([]byte, error)
}

// SOPCycleUseCase runs the monthly five-step S&OP process.
type SOPCycleUseCase struct {
	cycles   repository.SOPCycleRepository
	reporter CycleReporter
}

func NewSOPCycleUseCase(cycles repository.SOPCycleRepository, reporter CycleReporter) *SOPCycleUseCase {
	return &SOPCycleUseCase{cycles: cycles, reporter: reporter}
}

// Report renders the cycle as a PDF.
func (uc *SOPCycleUseCase) Report(ctx context.Context, id int64) ([]byte, error) {
	c, err := uc.getCycle(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.reporter.GenerateCycleReport(ctx, c)
}

// Create opens a cycle at step 1 (Data Gathering, in progress).
func (uc *SOPCycleUseCase) Create(ctx context.Context, in dto.CreateSOPCycleRequest) (*dto.SOPCycleResponse, error) {
	now := time.Now()
	c := &entity.SOPCycle{
		CycleName:     in.CycleName,
		Period:        in.Period,
		CurrentStep:   1,
		Notes:         in.Notes,
		OverallStatus: entity.CycleActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for i := range c.Steps {
		c.Steps[i] = entity.CycleStep{
			Status:  entity.StepPending,
			DueDate: in.Steps[i].DueDate,
			OwnerID: in.Steps[i].OwnerID,
		}
	}
	c.Steps[0].Status = entity.StepInProgress

	if err := uc.cycles.Create(ctx, c); err != nil {
		return nil, err
	}
	resp := dto.SOPCycleToResponse(c)
	return &resp, nil
}

// Get fetches one cycle.
func (uc *SOPCycleUseCase) Get(ctx context.Context, id int64) (*dto.SOPCycleResponse, error) {
	c, err := uc.getCycle(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.SOPCycleToResponse(c)
	return &resp, nil
}

// GetActive returns the running cycle, or nil when none is.
func (uc *SOPCycleUseCase) GetActive(ctx context.Context) (*dto.SOPCycleResponse, error) {
	c, err := uc.cycles.GetActive(ctx)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, nil
	}
	resp := dto.SOPCycleToResponse(c)
	return &resp, nil
}

// Update edits the cycle narrative fields.
func (uc *SOPCycleUseCase) Update(ctx context.Context, id int64, in dto.UpdateSOPCycleRequest) (*dto.SOPCycleResponse, error) {
	c, err := uc.getCycle(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Decisions != nil {
		c.Decisions = *in.Decisions
	}
	if in.ActionItems != nil {
		c.ActionItems = *in.ActionItems
	}
	if in.Notes != nil {
		c.Notes = *in.Notes
	}
	c.UpdatedAt = time.Now()
	if err := uc.cycles.Update(ctx, c); err != nil {
		return nil, err
	}
	resp := dto.SOPCycleToResponse(c)
	return &resp, nil
}

// AdvanceStep completes the current step and moves to the next one. Only an
// active cycle can advance, and never past Executive S&OP.
func (uc *SOPCycleUseCase) AdvanceStep(ctx context.Context, id int64) (*dto.SOPCycleResponse, error) {
	c, err := uc.getCycle(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.OverallStatus != entity.CycleActive {
		return nil, fmt.Errorf("%w: can only advance an active cycle", domain.ErrConflict)
	}
	if c.CurrentStep >= entity.NumSteps {
		return nil, fmt.Errorf("%w: cycle is already at %s", domain.ErrConflict, entity.StepName(entity.NumSteps))
	}

	c.Steps[c.CurrentStep-1].Status = entity.StepCompleted
	c.CurrentStep++
	c.Steps[c.CurrentStep-1].Status = entity.StepInProgress
	c.UpdatedAt = time.Now()

	if err := uc.cycles.Update(ctx, c); err != nil {
		return nil, err
	}
	resp := dto.SOPCycleToResponse(c)
	return &resp, nil
}

// Complete finishes the whole cycle regardless of the current step.
func (uc *SOPCycleUseCase) Complete(ctx context.Context, id int64) (*dto.SOPCycleResponse, error) {
	c, err := uc.getCycle(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Steps[entity.NumSteps-1].Status = entity.StepCompleted
	c.OverallStatus = entity.CycleCompleted
	c.UpdatedAt = time.Now()

	if err := uc.cycles.Update(ctx, c); err != nil {
		return nil, err
	}
	resp := dto.SOPCycleToResponse(c)
	return &resp, nil
}

// List returns a page of cycles, most recent period first.
func (uc *SOPCycleUseCase) List(ctx context.Context, status string, page dto.PageRequest) (*dto.ListResponse[dto.SOPCycleResponse], error) {
	page.Normalize()
	items, total, err := uc.cycles.List(ctx, status, page.Page, page.PageSize)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SOPCycleResponse, 0, len(items))
	for _, c := range items {
		out = append(out, dto.SOPCycleToResponse(c))
	}
	resp := dto.NewListResponse(out, total, page.Page, page.PageSize)
	return &resp, nil
}

func (uc *SOPCycleUseCase) getCycle(ctx context.Context, id int64) (*entity.SOPCycle, error) {
	c, err := uc.cycles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return c, nil
}
