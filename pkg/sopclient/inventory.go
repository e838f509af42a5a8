package sopclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// InventoryItem is the client-side stocking position. Quantities arrive from
// the backend as decimal strings and are coerced to Number on decode.
type InventoryItem struct {
	ID           int64  `json:"id"`
	ProductID    int64  `json:"product_id"`
	ProductName  string `json:"product_name,omitempty"`
	SKU          string `json:"sku,omitempty"`
	Location     string `json:"location"`
	OnHandQty    Number `json:"on_hand_qty"`
	AllocatedQty Number `json:"allocated_qty"`
	InTransitQty Number `json:"in_transit_qty"`
	AvailableQty Number `json:"available_qty"`
	SafetyStock  Number `json:"safety_stock"`
	ReorderPoint Number `json:"reorder_point"`
	MaxStock     Number `json:"max_stock"`
	DaysOfSupply Number `json:"days_of_supply"`
	Valuation    Number `json:"valuation"`
	Status       string `json:"status"`
	UpdatedAt    string `json:"updated_at,omitempty"`
}

// InventoryHealth is the aggregate health summary.
type InventoryHealth struct {
	TotalPositions int    `json:"total_positions"`
	Normal         int    `json:"normal"`
	Low            int    `json:"low"`
	Critical       int    `json:"critical"`
	Excess         int    `json:"excess"`
	TotalValuation Number `json:"total_valuation"`
}

// InventoryAlert is one position at or below its thresholds.
type InventoryAlert struct {
	InventoryID int64  `json:"inventory_id"`
	ProductID   int64  `json:"product_id"`
	Location    string `json:"location"`
	Status      string `json:"status"`
	OnHandQty   Number `json:"on_hand_qty"`
	Threshold   Number `json:"threshold"`
	Message     string `json:"message"`
}

// UpdateInventoryRequest edits a position; unset Numbers are omitted.
type UpdateInventoryRequest struct {
	OnHandQty    *Number `json:"on_hand_qty,omitempty"`
	AllocatedQty *Number `json:"allocated_qty,omitempty"`
	InTransitQty *Number `json:"in_transit_qty,omitempty"`
	SafetyStock  *Number `json:"safety_stock,omitempty"`
	ReorderPoint *Number `json:"reorder_point,omitempty"`
	MaxStock     *Number `json:"max_stock,omitempty"`
	Valuation    *Number `json:"valuation,omitempty"`
}

// InventoryListOptions filter the inventory listing.
type InventoryListOptions struct {
	ListOptions
	Status    string
	ProductID int64
	Location  string
}

// InventoryService covers the inventory endpoints.
type InventoryService struct {
	c *Client
}

func NewInventoryService(c *Client) *InventoryService {
	return &InventoryService{c: c}
}

// List fetches positions. Historically some deployments returned a bare array
// here, so both shapes are accepted.
func (s *InventoryService) List(ctx context.Context, opts InventoryListOptions) (*Page[InventoryItem], error) {
	q := url.Values{}
	addPageParams(q, opts.ListOptions)
	if opts.Status != "" {
		q.Set("status", opts.Status)
	}
	if opts.ProductID > 0 {
		q.Set("product_id", strconv.FormatInt(opts.ProductID, 10))
	}
	if opts.Location != "" {
		q.Set("location", opts.Location)
	}
	raw, err := s.c.do(ctx, http.MethodGet, "/inventory", q, nil)
	if err != nil {
		return nil, err
	}
	return decodePage[InventoryItem](raw, opts.PageSize)
}

// Get fetches one position.
func (s *InventoryService) Get(ctx context.Context, id int64) (*InventoryItem, error) {
	var item InventoryItem
	if err := s.c.getJSON(ctx, fmt.Sprintf("/inventory/%d", id), nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Update edits a position; the server recalculates its status.
func (s *InventoryService) Update(ctx context.Context, id int64, in UpdateInventoryRequest) (*InventoryItem, error) {
	var item InventoryItem
	if err := s.c.putJSON(ctx, fmt.Sprintf("/inventory/%d", id), in, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Health fetches the aggregate summary.
func (s *InventoryService) Health(ctx context.Context) (*InventoryHealth, error) {
	var h InventoryHealth
	if err := s.c.getJSON(ctx, "/inventory/health", nil, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

// Alerts fetches positions needing attention.
func (s *InventoryService) Alerts(ctx context.Context) ([]InventoryAlert, error) {
	var alerts []InventoryAlert
	if err := s.c.getJSON(ctx, "/inventory/alerts", nil, &alerts); err != nil {
		return nil, err
	}
	return alerts, nil
}

func addPageParams(q url.Values, opts ListOptions) {
	if opts.Page > 0 {
		q.Set("page", strconv.Itoa(opts.Page))
	}
	if opts.PageSize > 0 {
		q.Set("page_size", strconv.Itoa(opts.PageSize))
	}
}
