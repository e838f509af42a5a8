package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product statuses.
const (
	ProductActive       = "active"
	ProductDiscontinued = "discontinued"
	ProductNew          = "new"
)

// Product is a planned SKU. Costs and prices are NUMERIC in the DB and may be absent.
type Product struct {
	ID            int64
	SKU           string // unique
	Name          string
	Description   string
	CategoryID    *int64
	ProductFamily string
	UnitOfMeasure string
	UnitCost      *decimal.Decimal
	SellingPrice  *decimal.Decimal
	LeadTimeDays  int
	MinOrderQty   int
	Status        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Category groups products into a shallow hierarchy.
type Category struct {
	ID          int64
	Name        string
	ParentID    *int64
	Level       int
	Description string
	CreatedAt   time.Time
}
