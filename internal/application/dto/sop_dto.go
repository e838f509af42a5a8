package dto

import (
	"time"

	"github.com/genxsop/genxsop/internal/domain/entity"
)

// CreateSOPCycleRequest opens a monthly cycle. Step due dates and owners are
// optional; index 0 is Data Gathering.
type CreateSOPCycleRequest struct {
	CycleName string                          `json:"cycle_name" validate:"required,min=1,max=200"`
	Period    time.Time                       `json:"period" validate:"required"`
	Steps     [entity.NumSteps]SOPStepRequest `json:"steps"`
	Notes     string                          `json:"notes"`
}

// SOPStepRequest seeds one step's schedule.
type SOPStepRequest struct {
	DueDate *time.Time `json:"due_date"`
	OwnerID *int64     `json:"owner_id"`
}

// UpdateSOPCycleRequest edits cycle narrative fields.
type UpdateSOPCycleRequest struct {
	Decisions   *string `json:"decisions"`
	ActionItems *string `json:"action_items"`
	Notes       *string `json:"notes"`
}

// SOPStepResponse is one of the five steps with its display name.
type SOPStepResponse struct {
	Step     int        `json:"step"`
	Name     string     `json:"name"`
	Status   string     `json:"status"`
	DueDate  *time.Time `json:"due_date"`
	OwnerID  *int64     `json:"owner_id"`
}

// SOPCycleResponse is the public view of a cycle.
type SOPCycleResponse struct {
	ID            int64             `json:"id"`
	CycleName     string            `json:"cycle_name"`
	Period        time.Time         `json:"period"`
	CurrentStep   int               `json:"current_step"`
	CurrentStepName string          `json:"current_step_name"`
	Steps         []SOPStepResponse `json:"steps"`
	Decisions     string            `json:"decisions"`
	ActionItems   string            `json:"action_items"`
	Notes         string            `json:"notes"`
	OverallStatus string            `json:"overall_status"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

func SOPCycleToResponse(c *entity.SOPCycle) SOPCycleResponse {
	steps := make([]SOPStepResponse, entity.NumSteps)
	for i := range c.Steps {
		steps[i] = SOPStepResponse{
			Step:    i + 1,
			Name:    entity.StepName(i + 1),
			Status:  c.Steps[i].Status,
			DueDate: c.Steps[i].DueDate,
			OwnerID: c.Steps[i].OwnerID,
		}
	}
	return SOPCycleResponse{
		ID:              c.ID,
		CycleName:       c.CycleName,
		Period:          c.Period,
		CurrentStep:     c.CurrentStep,
		CurrentStepName: entity.StepName(c.CurrentStep),
		Steps:           steps,
		Decisions:       c.Decisions,
		ActionItems:     c.ActionItems,
		Notes:           c.Notes,
		OverallStatus:   c.OverallStatus,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}
