package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Inventory statuses, recalculated from on-hand vs thresholds on every update.
const (
	InventoryNormal   = "normal"
	InventoryLow      = "low"
	InventoryCritical = "critical"
	InventoryExcess   = "excess"
)

// Inventory is the stocking position of a product at one location.
type Inventory struct {
	ID              int64
	ProductID       int64
	Location        string
	OnHandQty       decimal.Decimal
	AllocatedQty    decimal.Decimal
	InTransitQty    decimal.Decimal
	SafetyStock     decimal.Decimal
	ReorderPoint    decimal.Decimal
	MaxStock        *decimal.Decimal
	DaysOfSupply    *decimal.Decimal
	LastReceiptDate *time.Time
	LastIssueDate   *time.Time
	Valuation       *decimal.Decimal
	Status          string
	UpdatedAt       time.Time
}

// RecalcStatus applies the stocking rule: below reorder point -> critical, below
// safety stock -> low, above max stock -> excess, otherwise normal.
func (i *Inventory) RecalcStatus() {
	onHand := i.OnHandQty
	switch {
	case onHand.LessThan(i.ReorderPoint):
		i.Status = InventoryCritical
	case onHand.LessThan(i.SafetyStock):
		i.Status = InventoryLow
	case i.MaxStock != nil && onHand.GreaterThan(*i.MaxStock):
		i.Status = InventoryExcess
	default:
		i.Status = InventoryNormal
	}
}
