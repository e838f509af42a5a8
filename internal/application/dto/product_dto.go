package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/genxsop/genxsop/internal/domain/entity"
)

// CreateProductRequest adds a SKU to the planning catalog.
type CreateProductRequest struct {
	SKU           string           `json:"sku" validate:"required,min=1,max=100"`
	Name          string           `json:"name" validate:"required,min=1,max=200"`
	Description   string           `json:"description"`
	CategoryID    *int64           `json:"category_id"`
	ProductFamily string           `json:"product_family"`
	UnitOfMeasure string           `json:"unit_of_measure"`
	UnitCost      *decimal.Decimal `json:"unit_cost"`
	SellingPrice  *decimal.Decimal `json:"selling_price"`
	LeadTimeDays  int              `json:"lead_time_days"`
	MinOrderQty   int              `json:"min_order_qty"`
	Status        string           `json:"status"`
}

// UpdateProductRequest edits a product; nil fields are left unchanged. SKU is immutable.
type UpdateProductRequest struct {
	Name          *string          `json:"name"`
	Description   *string          `json:"description"`
	CategoryID    *int64           `json:"category_id"`
	ProductFamily *string          `json:"product_family"`
	UnitOfMeasure *string          `json:"unit_of_measure"`
	UnitCost      *decimal.Decimal `json:"unit_cost"`
	SellingPrice  *decimal.Decimal `json:"selling_price"`
	LeadTimeDays  *int             `json:"lead_time_days"`
	MinOrderQty   *int             `json:"min_order_qty"`
	Status        *string          `json:"status"`
}

// ProductFilterRequest narrows product listings.
type ProductFilterRequest struct {
	Status     string `query:"status"`
	CategoryID *int64 `query:"category_id"`
	Search     string `query:"search"`
}

// ProductResponse is the public view of a product.
type ProductResponse struct {
	ID            int64            `json:"id"`
	SKU           string           `json:"sku"`
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	CategoryID    *int64           `json:"category_id"`
	ProductFamily string           `json:"product_family"`
	UnitOfMeasure string           `json:"unit_of_measure"`
	UnitCost      *decimal.Decimal `json:"unit_cost"`
	SellingPrice  *decimal.Decimal `json:"selling_price"`
	LeadTimeDays  int              `json:"lead_time_days"`
	MinOrderQty   int              `json:"min_order_qty"`
	Status        string           `json:"status"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

func ProductToResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:            p.ID,
		SKU:           p.SKU,
		Name:          p.Name,
		Description:   p.Description,
		CategoryID:    p.CategoryID,
		ProductFamily: p.ProductFamily,
		UnitOfMeasure: p.UnitOfMeasure,
		UnitCost:      p.UnitCost,
		SellingPrice:  p.SellingPrice,
		LeadTimeDays:  p.LeadTimeDays,
		MinOrderQty:   p.MinOrderQty,
		Status:        p.Status,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// CreateCategoryRequest adds a category node.
type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	ParentID    *int64 `json:"parent_id"`
	Level       int    `json:"level"`
	Description string `json:"description"`
}

// CategoryResponse is the public view of a category.
type CategoryResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	ParentID    *int64    `json:"parent_id"`
	Level       int       `json:"level"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

func CategoryToResponse(c *entity.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		ParentID:    c.ParentID,
		Level:       c.Level,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
	}
}
