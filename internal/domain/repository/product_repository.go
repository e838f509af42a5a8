package repository

import (
	"context"

	"github.com/genxsop/genxsop/internal/domain/entity"
)

// ProductFilter narrows product listings.
type ProductFilter struct {
	Status     string
	CategoryID *int64
	Search     string // matches sku or name
}

// ProductRepository is the persistence port for Product.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, f ProductFilter, page, pageSize int) ([]*entity.Product, int, error)
	Count(ctx context.Context) (int, error)
}

// CategoryRepository is the persistence port for Category.
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id int64) (*entity.Category, error)
	List(ctx context.Context) ([]*entity.Category, error)
}
