package sopclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Product is the client-side catalog entry. Money and quantity fields come
// back as strings or numbers depending on the backend build, so they decode
// through Number.
type Product struct {
	ID            int64     `json:"id"`
	SKU           string    `json:"sku"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	CategoryID    *int64    `json:"category_id,omitempty"`
	ProductFamily string    `json:"product_family,omitempty"`
	UnitOfMeasure string    `json:"unit_of_measure,omitempty"`
	UnitCost      Number    `json:"unit_cost"`
	SellingPrice  Number    `json:"selling_price"`
	LeadTimeDays  int       `json:"lead_time_days"`
	MinOrderQty   int       `json:"min_order_qty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Category is one node of the product category tree.
type Category struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	ParentID    *int64    `json:"parent_id,omitempty"`
	Level       int       `json:"level"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateProductRequest adds a SKU to the catalog.
type CreateProductRequest struct {
	SKU           string  `json:"sku"`
	Name          string  `json:"name"`
	Description   string  `json:"description,omitempty"`
	CategoryID    *int64  `json:"category_id,omitempty"`
	ProductFamily string  `json:"product_family,omitempty"`
	UnitOfMeasure string  `json:"unit_of_measure,omitempty"`
	UnitCost      *Number `json:"unit_cost,omitempty"`
	SellingPrice  *Number `json:"selling_price,omitempty"`
	LeadTimeDays  int     `json:"lead_time_days,omitempty"`
	MinOrderQty   int     `json:"min_order_qty,omitempty"`
	Status        string  `json:"status,omitempty"`
}

// UpdateProductRequest edits a product; nil fields are unchanged. SKU is
// immutable.
type UpdateProductRequest struct {
	Name          *string `json:"name,omitempty"`
	Description   *string `json:"description,omitempty"`
	CategoryID    *int64  `json:"category_id,omitempty"`
	ProductFamily *string `json:"product_family,omitempty"`
	UnitOfMeasure *string `json:"unit_of_measure,omitempty"`
	UnitCost      *Number `json:"unit_cost,omitempty"`
	SellingPrice  *Number `json:"selling_price,omitempty"`
	LeadTimeDays  *int    `json:"lead_time_days,omitempty"`
	MinOrderQty   *int    `json:"min_order_qty,omitempty"`
	Status        *string `json:"status,omitempty"`
}

// CreateCategoryRequest adds a category node.
type CreateCategoryRequest struct {
	Name        string `json:"name"`
	ParentID    *int64 `json:"parent_id,omitempty"`
	Level       int    `json:"level,omitempty"`
	Description string `json:"description,omitempty"`
}

// ProductListOptions narrow a product listing.
type ProductListOptions struct {
	ListOptions
	Status     string
	CategoryID int64
	Search     string
}

// ProductService covers the catalog endpoints.
type ProductService struct {
	c *Client
}

func NewProductService(c *Client) *ProductService {
	return &ProductService{c: c}
}

// List fetches a page of products.
func (s *ProductService) List(ctx context.Context, opts ProductListOptions) (*Page[Product], error) {
	q := url.Values{}
	addPageParams(q, opts.ListOptions)
	if opts.Status != "" {
		q.Set("status", opts.Status)
	}
	if opts.CategoryID > 0 {
		q.Set("category_id", strconv.FormatInt(opts.CategoryID, 10))
	}
	if opts.Search != "" {
		q.Set("search", opts.Search)
	}
	raw, err := s.c.do(ctx, http.MethodGet, "/products", q, nil)
	if err != nil {
		return nil, err
	}
	return decodePage[Product](raw, opts.PageSize)
}

// Get fetches one product.
func (s *ProductService) Get(ctx context.Context, id int64) (*Product, error) {
	var p Product
	if err := s.c.getJSON(ctx, productPath(id), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create adds a SKU to the catalog.
func (s *ProductService) Create(ctx context.Context, in CreateProductRequest) (*Product, error) {
	var p Product
	if err := s.c.postJSON(ctx, "/products", nil, in, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Update edits a product.
func (s *ProductService) Update(ctx context.Context, id int64, in UpdateProductRequest) (*Product, error) {
	var p Product
	if err := s.c.putJSON(ctx, productPath(id), in, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Delete discontinues a product.
func (s *ProductService) Delete(ctx context.Context, id int64) error {
	return s.c.delete(ctx, productPath(id))
}

// CreateCategory adds a category node.
func (s *ProductService) CreateCategory(ctx context.Context, in CreateCategoryRequest) (*Category, error) {
	var c Category
	if err := s.c.postJSON(ctx, "/products/categories", nil, in, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Categories lists the full category tree.
func (s *ProductService) Categories(ctx context.Context) ([]Category, error) {
	var out []Category
	if err := s.c.getJSON(ctx, "/products/categories", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func productPath(id int64) string {
	return "/products/" + strconv.FormatInt(id, 10)
}
