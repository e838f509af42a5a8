package sopclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// SupplyPlan is the client-side supply commitment line.
type SupplyPlan struct {
	ID             int64  `json:"id"`
	ProductID      int64  `json:"product_id"`
	Period         string `json:"period"`
	Location       string `json:"location"`
	PlannedProdQty Number `json:"planned_prod_qty"`
	ActualProdQty  Number `json:"actual_prod_qty"`
	CapacityMax    Number `json:"capacity_max"`
	CapacityUsed   Number `json:"capacity_used"`
	SupplierName   string `json:"supplier_name,omitempty"`
	LeadTimeDays   *int   `json:"lead_time_days,omitempty"`
	CostPerUnit    Number `json:"cost_per_unit"`
	Constraints    string `json:"constraints,omitempty"`
	Status         string `json:"status"`
	Version        int    `json:"version"`
	CreatedAt      string `json:"created_at,omitempty"`
	UpdatedAt      string `json:"updated_at,omitempty"`
}

// CreateSupplyPlanRequest adds a commitment line.
type CreateSupplyPlanRequest struct {
	ProductID      int64   `json:"product_id"`
	Period         string  `json:"period"`
	Location       string  `json:"location,omitempty"`
	PlannedProdQty *Number `json:"planned_prod_qty,omitempty"`
	CapacityMax    *Number `json:"capacity_max,omitempty"`
	SupplierName   string  `json:"supplier_name,omitempty"`
	LeadTimeDays   *int    `json:"lead_time_days,omitempty"`
	CostPerUnit    *Number `json:"cost_per_unit,omitempty"`
	Constraints    string  `json:"constraints,omitempty"`
}

// UpdateSupplyPlanRequest edits a line; nil fields are unchanged.
type UpdateSupplyPlanRequest struct {
	PlannedProdQty *Number `json:"planned_prod_qty,omitempty"`
	ActualProdQty  *Number `json:"actual_prod_qty,omitempty"`
	CapacityMax    *Number `json:"capacity_max,omitempty"`
	CapacityUsed   *Number `json:"capacity_used,omitempty"`
	SupplierName   *string `json:"supplier_name,omitempty"`
	LeadTimeDays   *int    `json:"lead_time_days,omitempty"`
	CostPerUnit    *Number `json:"cost_per_unit,omitempty"`
	Constraints    *string `json:"constraints,omitempty"`
}

// GapItem is one row of the demand/supply gap analysis.
type GapItem struct {
	ProductID   int64  `json:"product_id"`
	ProductName string `json:"product_name"`
	SKU         string `json:"sku"`
	Period      string `json:"period"`
	DemandQty   Number `json:"demand_qty"`
	SupplyQty   Number `json:"supply_qty"`
	Gap         Number `json:"gap"`
	GapPct      Number `json:"gap_pct"`
	Status      string `json:"status"`
}

// SupplyService covers the supply plan endpoints.
type SupplyService struct {
	c *Client
}

func NewSupplyService(c *Client) *SupplyService {
	return &SupplyService{c: c}
}

// List fetches a filtered page of plans.
func (s *SupplyService) List(ctx context.Context, opts PlanListOptions) (*Page[SupplyPlan], error) {
	raw, err := s.c.do(ctx, http.MethodGet, "/supply-plans", opts.query(), nil)
	if err != nil {
		return nil, err
	}
	return decodePage[SupplyPlan](raw, opts.PageSize)
}

// Get fetches one plan.
func (s *SupplyService) Get(ctx context.Context, id int64) (*SupplyPlan, error) {
	var p SupplyPlan
	if err := s.c.getJSON(ctx, supplyPath(id), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create adds a commitment line in draft.
func (s *SupplyService) Create(ctx context.Context, in CreateSupplyPlanRequest) (*SupplyPlan, error) {
	var p SupplyPlan
	if err := s.c.postJSON(ctx, "/supply-plans", nil, in, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Update edits a line.
func (s *SupplyService) Update(ctx context.Context, id int64, in UpdateSupplyPlanRequest) (*SupplyPlan, error) {
	var p SupplyPlan
	if err := s.c.putJSON(ctx, supplyPath(id), in, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Delete removes a line.
func (s *SupplyService) Delete(ctx context.Context, id int64) error {
	return s.c.delete(ctx, supplyPath(id))
}

// Submit moves a plan into review.
func (s *SupplyService) Submit(ctx context.Context, id int64) (*SupplyPlan, error) {
	var p SupplyPlan
	if err := s.c.postJSON(ctx, supplyPath(id)+"/submit", nil, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Approve accepts a submitted plan.
func (s *SupplyService) Approve(ctx context.Context, id int64) (*SupplyPlan, error) {
	var p SupplyPlan
	if err := s.c.postJSON(ctx, supplyPath(id)+"/approve", nil, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// GapAnalysis fetches the per-product demand/supply gap for a period.
// An empty period means the current month.
func (s *SupplyService) GapAnalysis(ctx context.Context, period string) ([]GapItem, error) {
	q := url.Values{}
	if period != "" {
		q.Set("period", period)
	}
	var items []GapItem
	if err := s.c.getJSON(ctx, "/supply-plans/gap-analysis", q, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func supplyPath(id int64) string {
	return "/supply-plans/" + strconv.FormatInt(id, 10)
}
