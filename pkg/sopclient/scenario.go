package sopclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// Scenario is the client-side what-if scenario.
type Scenario struct {
	ID                 int64              `json:"id"`
	Name               string             `json:"name"`
	Description        string             `json:"description,omitempty"`
	ScenarioType       string             `json:"scenario_type"`
	Parameters         ScenarioParameters `json:"parameters"`
	RevenueImpact      Number             `json:"revenue_impact"`
	MarginImpact       Number             `json:"margin_impact"`
	InventoryImpact    Number             `json:"inventory_impact"`
	ServiceLevelImpact Number             `json:"service_level_impact"`
	Status             string             `json:"status"`
	CreatedAt          string             `json:"created_at,omitempty"`
	UpdatedAt          string             `json:"updated_at,omitempty"`
}

// ScenarioParameters are the whole-percent simulation inputs.
type ScenarioParameters struct {
	DemandChangePct   Number `json:"demand_change_pct"`
	SupplyCapacityPct Number `json:"supply_capacity_pct"`
	PriceChangePct    Number `json:"price_change_pct"`
}

// CreateScenarioRequest opens a draft scenario.
type CreateScenarioRequest struct {
	Name         string             `json:"name"`
	Description  string             `json:"description,omitempty"`
	ScenarioType string             `json:"scenario_type,omitempty"`
	Parameters   ScenarioParameters `json:"parameters"`
}

// UpdateScenarioRequest edits a scenario; nil fields are unchanged.
type UpdateScenarioRequest struct {
	Name        *string             `json:"name,omitempty"`
	Description *string             `json:"description,omitempty"`
	Parameters  *ScenarioParameters `json:"parameters,omitempty"`
}

// ScenarioComparison is one row of a side-by-side comparison.
type ScenarioComparison struct {
	ID                 int64  `json:"id"`
	Name               string `json:"name"`
	ScenarioType       string `json:"scenario_type"`
	RevenueImpact      Number `json:"revenue_impact"`
	MarginImpact       Number `json:"margin_impact"`
	InventoryImpact    Number `json:"inventory_impact"`
	ServiceLevelImpact Number `json:"service_level_impact"`
	Status             string `json:"status"`
}

// ScenarioService covers the scenario endpoints.
type ScenarioService struct {
	c *Client
}

func NewScenarioService(c *Client) *ScenarioService {
	return &ScenarioService{c: c}
}

// List fetches a page of scenarios, optionally filtered by status.
func (s *ScenarioService) List(ctx context.Context, status string, opts ListOptions) (*Page[Scenario], error) {
	q := url.Values{}
	addPageParams(q, opts)
	if status != "" {
		q.Set("status", status)
	}
	raw, err := s.c.do(ctx, http.MethodGet, "/scenarios", q, nil)
	if err != nil {
		return nil, err
	}
	return decodePage[Scenario](raw, opts.PageSize)
}

// Get fetches one scenario.
func (s *ScenarioService) Get(ctx context.Context, id int64) (*Scenario, error) {
	var sc Scenario
	if err := s.c.getJSON(ctx, scenarioPath(id), nil, &sc); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Create opens a draft scenario.
func (s *ScenarioService) Create(ctx context.Context, in CreateScenarioRequest) (*Scenario, error) {
	var sc Scenario
	if err := s.c.postJSON(ctx, "/scenarios", nil, in, &sc); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Update edits a scenario.
func (s *ScenarioService) Update(ctx context.Context, id int64, in UpdateScenarioRequest) (*Scenario, error) {
	var sc Scenario
	if err := s.c.putJSON(ctx, scenarioPath(id), in, &sc); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Delete removes a scenario.
func (s *ScenarioService) Delete(ctx context.Context, id int64) error {
	return s.c.delete(ctx, scenarioPath(id))
}

// Run executes the simulation and returns the scenario with impacts filled.
func (s *ScenarioService) Run(ctx context.Context, id int64) (*Scenario, error) {
	var sc Scenario
	if err := s.c.postJSON(ctx, scenarioPath(id)+"/run", nil, nil, &sc); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Submit moves a scenario into review.
func (s *ScenarioService) Submit(ctx context.Context, id int64) (*Scenario, error) {
	var sc Scenario
	if err := s.c.postJSON(ctx, scenarioPath(id)+"/submit", nil, nil, &sc); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Approve accepts a submitted scenario.
func (s *ScenarioService) Approve(ctx context.Context, id int64) (*Scenario, error) {
	var sc Scenario
	if err := s.c.postJSON(ctx, scenarioPath(id)+"/approve", nil, nil, &sc); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Reject declines a submitted scenario.
func (s *ScenarioService) Reject(ctx context.Context, id int64) (*Scenario, error) {
	var sc Scenario
	if err := s.c.postJSON(ctx, scenarioPath(id)+"/reject", nil, nil, &sc); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Compare fetches a side-by-side comparison of the given scenarios.
func (s *ScenarioService) Compare(ctx context.Context, ids []int64) ([]ScenarioComparison, error) {
	body := map[string]any{"scenario_ids": ids}
	var out []ScenarioComparison
	if err := s.c.postJSON(ctx, "/scenarios/compare", nil, body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func scenarioPath(id int64) string {
	return "/scenarios/" + strconv.FormatInt(id, 10)
}
