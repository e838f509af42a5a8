package entity

import "time"

// S&OP cycle step statuses.
const (
	StepPending    = "pending"
	StepInProgress = "in_progress"
	StepCompleted  = "completed"
	StepSkipped    = "skipped"
)

// S&OP cycle overall statuses.
const (
	CycleActive    = "active"
	CycleCompleted = "completed"
	CycleCancelled = "cancelled"
)

// NumSteps is the fixed length of the monthly S&OP process.
const NumSteps = 5

// stepNames indexed by step-1.
var stepNames = [NumSteps]string{
	"Data Gathering",
	"Demand Review",
	"Supply Review",
	"Pre-S&OP",
	"Executive S&OP",
}

// StepName returns the display name for a 1-based step, or "" when out of range.
func StepName(step int) string {
	if step < 1 || step > NumSteps {
		return ""
	}
	return stepNames[step-1]
}

// CycleStep is the state of one of the five steps.
type CycleStep struct {
	Status  string
	DueDate *time.Time
	OwnerID *int64
}

// SOPCycle is one monthly run of the five-step S&OP process.
type SOPCycle struct {
	ID            int64
	CycleName     string
	Period        time.Time
	CurrentStep   int // 1..5
	Steps         [NumSteps]CycleStep
	Decisions     string
	ActionItems   string
	Notes         string
	OverallStatus string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
