package repository

import (
	"context"

	"github.com/genxsop/genxsop/internal/domain/entity"
)

// InventoryFilter narrows inventory listings.
type InventoryFilter struct {
	Status    string
	ProductID *int64
	Location  string
}

// InventoryRepository is the persistence port for Inventory.
type InventoryRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Inventory, error)
	GetByProduct(ctx context.Context, productID int64) (*entity.Inventory, error)
	Create(ctx context.Context, inv *entity.Inventory) error
	Update(ctx context.Context, inv *entity.Inventory) error
	List(ctx context.Context, f InventoryFilter, page, pageSize int) ([]*entity.Inventory, int, error)
	// ListAll returns every position; used by health/alert aggregation.
	ListAll(ctx context.Context) ([]*entity.Inventory, error)
}
