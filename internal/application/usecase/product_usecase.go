package usecase

import (
	"context"
	"time"

	"github.com/genxsop/genxsop/internal/application/dto"
	"github.com/genxsop/genxsop/internal/domain"
	"github.com/genxsop/genxsop/internal/domain/entity"
	"github.com/genxsop/genxsop/internal/domain/repository"
)

// ProductUseCase is the catalog CRUD behind planning. SKUs are unique and
// immutable once created.
type ProductUseCase struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
}

func NewProductUseCase(products repository.ProductRepository, categories repository.CategoryRepository) *ProductUseCase {
	return &ProductUseCase{products: products, categories: categories}
}

// Create adds a product to the catalog.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	existing, err := uc.products.GetBySKU(ctx, in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	status := in.Status
	if status == "" {
		status = entity.ProductActive
	}
	uom := in.UnitOfMeasure
	if uom == "" {
		uom = "EA"
	}
	minQty := in.MinOrderQty
	if minQty <= 0 {
		minQty = 1
	}

	now := time.Now()
	product := &entity.Product{
		SKU:           in.SKU,
		Name:          in.Name,
		Description:   in.Description,
		CategoryID:    in.CategoryID,
		ProductFamily: in.ProductFamily,
		UnitOfMeasure: uom,
		UnitCost:      in.UnitCost,
		SellingPrice:  in.SellingPrice,
		LeadTimeDays:  in.LeadTimeDays,
		MinOrderQty:   minQty,
		Status:        status,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.products.Create(ctx, product); err != nil {
		return nil, err
	}
	resp := dto.ProductToResponse(product)
	return &resp, nil
}

// Get fetches one product.
func (uc *ProductUseCase) Get(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	product, err := uc.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	resp := dto.ProductToResponse(product)
	return &resp, nil
}

// Update edits a product; nil request fields are left unchanged.
func (uc *ProductUseCase) Update(ctx context.Context, id int64, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.CategoryID != nil {
		product.CategoryID = in.CategoryID
	}
	if in.ProductFamily != nil {
		product.ProductFamily = *in.ProductFamily
	}
	if in.UnitOfMeasure != nil {
		product.UnitOfMeasure = *in.UnitOfMeasure
	}
	if in.UnitCost != nil {
		product.UnitCost = in.UnitCost
	}
	if in.SellingPrice != nil {
		product.SellingPrice = in.SellingPrice
	}
	if in.LeadTimeDays != nil {
		product.LeadTimeDays = *in.LeadTimeDays
	}
	if in.MinOrderQty != nil {
		product.MinOrderQty = *in.MinOrderQty
	}
	if in.Status != nil {
		product.Status = *in.Status
	}
	product.UpdatedAt = time.Now()

	if err := uc.products.Update(ctx, product); err != nil {
		return nil, err
	}
	resp := dto.ProductToResponse(product)
	return &resp, nil
}

// Delete removes a product from the catalog.
func (uc *ProductUseCase) Delete(ctx context.Context, id int64) error {
	return uc.products.Delete(ctx, id)
}

// List returns a filtered page of products.
func (uc *ProductUseCase) List(ctx context.Context, f dto.ProductFilterRequest, page dto.PageRequest) (*dto.ListResponse[dto.ProductResponse], error) {
	page.Normalize()
	items, total, err := uc.products.List(ctx, repository.ProductFilter{
		Status:     f.Status,
		CategoryID: f.CategoryID,
		Search:     f.Search,
	}, page.Page, page.PageSize)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(items))
	for _, p := range items {
		out = append(out, dto.ProductToResponse(p))
	}
	resp := dto.NewListResponse(out, total, page.Page, page.PageSize)
	return &resp, nil
}

// CreateCategory adds a category node.
func (uc *ProductUseCase) CreateCategory(ctx context.Context, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	level := in.Level
	if level <= 0 {
		level = 1
	}
	category := &entity.Category{
		Name:        in.Name,
		ParentID:    in.ParentID,
		Level:       level,
		Description: in.Description,
		CreatedAt:   time.Now(),
	}
	if err := uc.categories.Create(ctx, category); err != nil {
		return nil, err
	}
	resp := dto.CategoryToResponse(category)
	return &resp, nil
}

// ListCategories returns the whole category tree, shallowest first.
func (uc *ProductUseCase) ListCategories(ctx context.Context) ([]dto.CategoryResponse, error) {
	list, err := uc.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.CategoryToResponse(c))
	}
	return out, nil
}
