package sopclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// SOPStep is one of the five steps of a cycle with its display name.
type SOPStep struct {
	Step    int        `json:"step"`
	Name    string     `json:"name"`
	Status  string     `json:"status"`
	DueDate *time.Time `json:"due_date,omitempty"`
	OwnerID *int64     `json:"owner_id,omitempty"`
}

// SOPCycle is the client-side monthly S&OP cycle.
type SOPCycle struct {
	ID              int64     `json:"id"`
	CycleName       string    `json:"cycle_name"`
	Period          time.Time `json:"period"`
	CurrentStep     int       `json:"current_step"`
	CurrentStepName string    `json:"current_step_name"`
	Steps           []SOPStep `json:"steps"`
	Decisions       string    `json:"decisions,omitempty"`
	ActionItems     string    `json:"action_items,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	OverallStatus   string    `json:"overall_status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// SOPStepSeed schedules one step when opening a cycle.
type SOPStepSeed struct {
	DueDate *time.Time `json:"due_date,omitempty"`
	OwnerID *int64     `json:"owner_id,omitempty"`
}

// CreateSOPCycleRequest opens a monthly cycle.
type CreateSOPCycleRequest struct {
	CycleName string        `json:"cycle_name"`
	Period    time.Time     `json:"period"`
	Steps     []SOPStepSeed `json:"steps,omitempty"`
	Notes     string        `json:"notes,omitempty"`
}

// UpdateSOPCycleRequest edits cycle narrative fields; nil fields are unchanged.
type UpdateSOPCycleRequest struct {
	Decisions   *string `json:"decisions,omitempty"`
	ActionItems *string `json:"action_items,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

// SOPCycleService covers the cycle endpoints.
type SOPCycleService struct {
	c *Client
}

func NewSOPCycleService(c *Client) *SOPCycleService {
	return &SOPCycleService{c: c}
}

// List fetches a page of cycles, optionally filtered by overall status.
func (s *SOPCycleService) List(ctx context.Context, status string, opts ListOptions) (*Page[SOPCycle], error) {
	q := url.Values{}
	addPageParams(q, opts)
	if status != "" {
		q.Set("status", status)
	}
	raw, err := s.c.do(ctx, http.MethodGet, "/sop-cycles", q, nil)
	if err != nil {
		return nil, err
	}
	return decodePage[SOPCycle](raw, opts.PageSize)
}

// Get fetches one cycle.
func (s *SOPCycleService) Get(ctx context.Context, id int64) (*SOPCycle, error) {
	var c SOPCycle
	if err := s.c.getJSON(ctx, cyclePath(id), nil, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// GetActive fetches the cycle currently in progress. ErrNotFound means no
// cycle is open.
func (s *SOPCycleService) GetActive(ctx context.Context) (*SOPCycle, error) {
	var c SOPCycle
	if err := s.c.getJSON(ctx, "/sop-cycles/active", nil, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create opens a monthly cycle.
func (s *SOPCycleService) Create(ctx context.Context, in CreateSOPCycleRequest) (*SOPCycle, error) {
	var c SOPCycle
	if err := s.c.postJSON(ctx, "/sop-cycles", nil, in, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Update edits cycle narrative fields.
func (s *SOPCycleService) Update(ctx context.Context, id int64, in UpdateSOPCycleRequest) (*SOPCycle, error) {
	var c SOPCycle
	if err := s.c.putJSON(ctx, cyclePath(id), in, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Advance completes the current step and moves the cycle to the next one.
func (s *SOPCycleService) Advance(ctx context.Context, id int64) (*SOPCycle, error) {
	var c SOPCycle
	if err := s.c.postJSON(ctx, cyclePath(id)+"/advance", nil, nil, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Complete closes the cycle after the last step.
func (s *SOPCycleService) Complete(ctx context.Context, id int64) (*SOPCycle, error) {
	var c SOPCycle
	if err := s.c.postJSON(ctx, cyclePath(id)+"/complete", nil, nil, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Report downloads the cycle summary PDF.
func (s *SOPCycleService) Report(ctx context.Context, id int64) ([]byte, error) {
	return s.c.do(ctx, http.MethodGet, cyclePath(id)+"/report", nil, nil)
}

func cyclePath(id int64) string {
	return "/sop-cycles/" + strconv.FormatInt(id, 10)
}
