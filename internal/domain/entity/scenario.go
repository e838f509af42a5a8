package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Scenario types.
const (
	ScenarioWhatIf    = "what_if"
	ScenarioBestCase  = "best_case"
	ScenarioWorstCase = "worst_case"
	ScenarioBaseline  = "baseline"
)

// Scenario is a what-if simulation. Parameters and Results are free-form JSON;
// the headline impacts are denormalized for listing without parsing Results.
type Scenario struct {
	ID                 int64
	Name               string
	Description        string
	ScenarioType       string
	Parameters         json.RawMessage
	Results            json.RawMessage
	RevenueImpact      *decimal.Decimal
	MarginImpact       *decimal.Decimal
	InventoryImpact    *decimal.Decimal
	ServiceLevelImpact *decimal.Decimal
	Status             string // plan statuses, plus "completed" after a run
	CreatedBy          *int64
	ApprovedBy         *int64
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// ScenarioCompleted is set by a run; approval flow still uses the plan statuses.
const ScenarioCompleted = "completed"
