package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/genxsop/genxsop/internal/domain/entity"
)

// CreateInventoryRequest opens a stocking position for a product at a location.
type CreateInventoryRequest struct {
	ProductID    int64            `json:"product_id" validate:"required"`
	Location     string           `json:"location"`
	OnHandQty    decimal.Decimal  `json:"on_hand_qty"`
	AllocatedQty decimal.Decimal  `json:"allocated_qty"`
	InTransitQty decimal.Decimal  `json:"in_transit_qty"`
	SafetyStock  decimal.Decimal  `json:"safety_stock"`
	ReorderPoint decimal.Decimal  `json:"reorder_point"`
	MaxStock     *decimal.Decimal `json:"max_stock"`
	Valuation    *decimal.Decimal `json:"valuation"`
}

// UpdateInventoryRequest edits a position; nil fields are left unchanged.
// Status is never accepted from the caller, it is recalculated.
type UpdateInventoryRequest struct {
	OnHandQty       *decimal.Decimal `json:"on_hand_qty"`
	AllocatedQty    *decimal.Decimal `json:"allocated_qty"`
	InTransitQty    *decimal.Decimal `json:"in_transit_qty"`
	SafetyStock     *decimal.Decimal `json:"safety_stock"`
	ReorderPoint    *decimal.Decimal `json:"reorder_point"`
	MaxStock        *decimal.Decimal `json:"max_stock"`
	DaysOfSupply    *decimal.Decimal `json:"days_of_supply"`
	LastReceiptDate *time.Time       `json:"last_receipt_date"`
	LastIssueDate   *time.Time       `json:"last_issue_date"`
	Valuation       *decimal.Decimal `json:"valuation"`
}

// InventoryResponse is the public view of a stocking position.
type InventoryResponse struct {
	ID              int64            `json:"id"`
	ProductID       int64            `json:"product_id"`
	Location        string           `json:"location"`
	OnHandQty       decimal.Decimal  `json:"on_hand_qty"`
	AllocatedQty    decimal.Decimal  `json:"allocated_qty"`
	InTransitQty    decimal.Decimal  `json:"in_transit_qty"`
	AvailableQty    decimal.Decimal  `json:"available_qty"`
	SafetyStock     decimal.Decimal  `json:"safety_stock"`
	ReorderPoint    decimal.Decimal  `json:"reorder_point"`
	MaxStock        *decimal.Decimal `json:"max_stock"`
	DaysOfSupply    *decimal.Decimal `json:"days_of_supply"`
	LastReceiptDate *time.Time       `json:"last_receipt_date"`
	LastIssueDate   *time.Time       `json:"last_issue_date"`
	Valuation       *decimal.Decimal `json:"valuation"`
	Status          string           `json:"status"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

func InventoryToResponse(inv *entity.Inventory) InventoryResponse {
	return InventoryResponse{
		ID:              inv.ID,
		ProductID:       inv.ProductID,
		Location:        inv.Location,
		OnHandQty:       inv.OnHandQty,
		AllocatedQty:    inv.AllocatedQty,
		InTransitQty:    inv.InTransitQty,
		AvailableQty:    inv.OnHandQty.Sub(inv.AllocatedQty),
		SafetyStock:     inv.SafetyStock,
		ReorderPoint:    inv.ReorderPoint,
		MaxStock:        inv.MaxStock,
		DaysOfSupply:    inv.DaysOfSupply,
		LastReceiptDate: inv.LastReceiptDate,
		LastIssueDate:   inv.LastIssueDate,
		Valuation:       inv.Valuation,
		Status:          inv.Status,
		UpdatedAt:       inv.UpdatedAt,
	}
}

// InventoryHealthResponse aggregates position counts by status.
type InventoryHealthResponse struct {
	TotalPositions int             `json:"total_positions"`
	Normal         int             `json:"normal"`
	Low            int             `json:"low"`
	Critical       int             `json:"critical"`
	Excess         int             `json:"excess"`
	TotalValuation decimal.Decimal `json:"total_valuation"`
}

// InventoryAlertResponse is one position needing attention.
type InventoryAlertResponse struct {
	InventoryID int64           `json:"inventory_id"`
	ProductID   int64           `json:"product_id"`
	Location    string          `json:"location"`
	Status      string          `json:"status"`
	OnHandQty   decimal.Decimal `json:"on_hand_qty"`
	Threshold   decimal.Decimal `json:"threshold"`
	Message     string          `json:"message"`
}
