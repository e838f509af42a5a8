package sopclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// DemandPlan is the client-side demand line.
type DemandPlan struct {
	ID           int64  `json:"id"`
	ProductID    int64  `json:"product_id"`
	Period       string `json:"period"`
	Region       string `json:"region"`
	Channel      string `json:"channel"`
	ForecastQty  Number `json:"forecast_qty"`
	AdjustedQty  Number `json:"adjusted_qty"`
	ActualQty    Number `json:"actual_qty"`
	ConsensusQty Number `json:"consensus_qty"`
	Confidence   Number `json:"confidence"`
	Notes        string `json:"notes"`
	Status       string `json:"status"`
	Version      int    `json:"version"`
	CreatedAt    string `json:"created_at,omitempty"`
	UpdatedAt    string `json:"updated_at,omitempty"`
}

// CreateDemandPlanRequest opens a draft line.
type CreateDemandPlanRequest struct {
	ProductID   int64   `json:"product_id"`
	Period      string  `json:"period"`
	Region      string  `json:"region,omitempty"`
	Channel     string  `json:"channel,omitempty"`
	ForecastQty Number  `json:"forecast_qty"`
	Confidence  *Number `json:"confidence,omitempty"`
	Notes       string  `json:"notes,omitempty"`
}

// UpdateDemandPlanRequest edits a line; nil fields are unchanged.
type UpdateDemandPlanRequest struct {
	ForecastQty  *Number `json:"forecast_qty,omitempty"`
	AdjustedQty  *Number `json:"adjusted_qty,omitempty"`
	ActualQty    *Number `json:"actual_qty,omitempty"`
	ConsensusQty *Number `json:"consensus_qty,omitempty"`
	Confidence   *Number `json:"confidence,omitempty"`
	Notes        *string `json:"notes,omitempty"`
}

// PlanListOptions filter plan listings.
type PlanListOptions struct {
	ListOptions
	ProductID  int64
	Status     string
	Region     string
	Channel    string
	Location   string
	PeriodFrom string
	PeriodTo   string
}

func (o PlanListOptions) query() url.Values {
	q := url.Values{}
	addPageParams(q, o.ListOptions)
	if o.ProductID > 0 {
		q.Set("product_id", strconv.FormatInt(o.ProductID, 10))
	}
	if o.Status != "" {
		q.Set("status", o.Status)
	}
	if o.Region != "" {
		q.Set("region", o.Region)
	}
	if o.Channel != "" {
		q.Set("channel", o.Channel)
	}
	if o.Location != "" {
		q.Set("location", o.Location)
	}
	if o.PeriodFrom != "" {
		q.Set("period_from", o.PeriodFrom)
	}
	if o.PeriodTo != "" {
		q.Set("period_to", o.PeriodTo)
	}
	return q
}

// DemandService covers the demand plan endpoints.
type DemandService struct {
	c *Client
}

func NewDemandService(c *Client) *DemandService {
	return &DemandService{c: c}
}

// List fetches a filtered page of plans.
func (s *DemandService) List(ctx context.Context, opts PlanListOptions) (*Page[DemandPlan], error) {
	raw, err := s.c.do(ctx, http.MethodGet, "/demand-plans", opts.query(), nil)
	if err != nil {
		return nil, err
	}
	return decodePage[DemandPlan](raw, opts.PageSize)
}

// Get fetches one plan.
func (s *DemandService) Get(ctx context.Context, id int64) (*DemandPlan, error) {
	var p DemandPlan
	if err := s.c.getJSON(ctx, demandPath(id), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create opens a draft line.
func (s *DemandService) Create(ctx context.Context, in CreateDemandPlanRequest) (*DemandPlan, error) {
	var p DemandPlan
	if err := s.c.postJSON(ctx, "/demand-plans", nil, in, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Update edits a line. Locked plans are rejected server-side.
func (s *DemandService) Update(ctx context.Context, id int64, in UpdateDemandPlanRequest) (*DemandPlan, error) {
	var p DemandPlan
	if err := s.c.putJSON(ctx, demandPath(id), in, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Delete removes a line. Approved or locked plans are rejected server-side.
func (s *DemandService) Delete(ctx context.Context, id int64) error {
	return s.c.delete(ctx, demandPath(id))
}

// Adjust records a manual override of the forecast quantity.
func (s *DemandService) Adjust(ctx context.Context, id int64, adjustedQty float64, notes string) (*DemandPlan, error) {
	body := map[string]any{"adjusted_qty": adjustedQty, "notes": notes}
	var p DemandPlan
	if err := s.c.postJSON(ctx, demandPath(id)+"/adjust", nil, body, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Submit moves a draft into review.
func (s *DemandService) Submit(ctx context.Context, id int64) (*DemandPlan, error) {
	var p DemandPlan
	if err := s.c.postJSON(ctx, demandPath(id)+"/submit", nil, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Approve accepts a submitted plan, with optional comments.
func (s *DemandService) Approve(ctx context.Context, id int64, comments string) (*DemandPlan, error) {
	var p DemandPlan
	if err := s.c.postJSON(ctx, demandPath(id)+"/approve", nil, decisionBody(comments), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Reject sends a submitted plan back to draft, with optional comments.
func (s *DemandService) Reject(ctx context.Context, id int64, comments string) (*DemandPlan, error) {
	var p DemandPlan
	if err := s.c.postJSON(ctx, demandPath(id)+"/reject", nil, decisionBody(comments), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func demandPath(id int64) string {
	return "/demand-plans/" + strconv.FormatInt(id, 10)
}

func decisionBody(comments string) any {
	if comments == "" {
		return nil
	}
	return map[string]string{"comments": comments}
}
