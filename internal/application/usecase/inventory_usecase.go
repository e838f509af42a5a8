package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/genxsop/genxsop/internal/application/dto"
	"github.com/genxsop/genxsop/internal/domain"
	"github.com/genxsop/genxsop/internal/domain/entity"
	"github.com/genxsop/genxsop/internal/domain/repository"
)

// InventoryUseCase manages stocking positions. Status is never set by callers;
// it is recalculated from quantities on every write.
type InventoryUseCase struct {
	inventory repository.InventoryRepository
}

func NewInventoryUseCase(inventory repository.InventoryRepository) *InventoryUseCase {
	return &InventoryUseCase{inventory: inventory}
}

// Create opens a position for a product at a location.
func (uc *InventoryUseCase) Create(ctx context.Context, in dto.CreateInventoryRequest) (*dto.InventoryResponse, error) {
	location := in.Location
	if location == "" {
		location = "Main"
	}
	inv := &entity.Inventory{
		ProductID:    in.ProductID,
		Location:     location,
		OnHandQty:    in.OnHandQty,
		AllocatedQty: in.AllocatedQty,
		InTransitQty: in.InTransitQty,
		SafetyStock:  in.SafetyStock,
		ReorderPoint: in.ReorderPoint,
		MaxStock:     in.MaxStock,
		Valuation:    in.Valuation,
		UpdatedAt:    time.Now(),
	}
	inv.RecalcStatus()
	if err := uc.inventory.Create(ctx, inv); err != nil {
		return nil, err
	}
	resp := dto.InventoryToResponse(inv)
	return &resp, nil
}

// Get fetches one position.
func (uc *InventoryUseCase) Get(ctx context.Context, id int64) (*dto.InventoryResponse, error) {
	inv, err := uc.inventory.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	resp := dto.InventoryToResponse(inv)
	return &resp, nil
}

// Update edits a position and recalculates its status from the new quantities.
func (uc *InventoryUseCase) Update(ctx context.Context, id int64, in dto.UpdateInventoryRequest) (*dto.InventoryResponse, error) {
	inv, err := uc.inventory.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}

	if in.OnHandQty != nil {
		inv.OnHandQty = *in.OnHandQty
	}
	if in.AllocatedQty != nil {
		inv.AllocatedQty = *in.AllocatedQty
	}
	if in.InTransitQty != nil {
		inv.InTransitQty = *in.InTransitQty
	}
	if in.SafetyStock != nil {
		inv.SafetyStock = *in.SafetyStock
	}
	if in.ReorderPoint != nil {
		inv.ReorderPoint = *in.ReorderPoint
	}
	if in.MaxStock != nil {
		inv.MaxStock = in.MaxStock
	}
	if in.DaysOfSupply != nil {
		inv.DaysOfSupply = in.DaysOfSupply
	}
	if in.LastReceiptDate != nil {
		inv.LastReceiptDate = in.LastReceiptDate
	}
	if in.LastIssueDate != nil {
		inv.LastIssueDate = in.LastIssueDate
	}
	if in.Valuation != nil {
		inv.Valuation = in.Valuation
	}
	inv.RecalcStatus()
	inv.UpdatedAt = time.Now()

	if err := uc.inventory.Update(ctx, inv); err != nil {
		return nil, err
	}
	resp := dto.InventoryToResponse(inv)
	return &resp, nil
}

// List returns a filtered page of positions.
func (uc *InventoryUseCase) List(ctx context.Context, status string, productID *int64, location string, page dto.PageRequest) (*dto.ListResponse[dto.InventoryResponse], error) {
	page.Normalize()
	items, total, err := uc.inventory.List(ctx, repository.InventoryFilter{
		Status:    status,
		ProductID: productID,
		Location:  location,
	}, page.Page, page.PageSize)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InventoryResponse, 0, len(items))
	for _, inv := range items {
		out = append(out, dto.InventoryToResponse(inv))
	}
	resp := dto.NewListResponse(out, total, page.Page, page.PageSize)
	return &resp, nil
}

// Health aggregates position counts and valuation by status.
func (uc *InventoryUseCase) Health(ctx context.Context) (*dto.InventoryHealthResponse, error) {
	all, err := uc.inventory.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	resp := dto.InventoryHealthResponse{TotalPositions: len(all), TotalValuation: decimal.Zero}
	for _, inv := range all {
		switch inv.Status {
		case entity.InventoryNormal:
			resp.Normal++
		case entity.InventoryLow:
			resp.Low++
		case entity.InventoryCritical:
			resp.Critical++
		case entity.InventoryExcess:
			resp.Excess++
		}
		if inv.Valuation != nil {
			resp.TotalValuation = resp.TotalValuation.Add(*inv.Valuation)
		}
	}
	return &resp, nil
}

// Alerts lists every position below a threshold or over max stock.
func (uc *InventoryUseCase) Alerts(ctx context.Context) ([]dto.InventoryAlertResponse, error) {
	all, err := uc.inventory.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	out := []dto.InventoryAlertResponse{}
	for _, inv := range all {
		var threshold decimal.Decimal
		var message string
		switch inv.Status {
		case entity.InventoryCritical:
			threshold = inv.ReorderPoint
			message = fmt.Sprintf("On hand %s below reorder point %s", inv.OnHandQty, inv.ReorderPoint)
		case entity.InventoryLow:
			threshold = inv.SafetyStock
			message = fmt.Sprintf("On hand %s below safety stock %s", inv.OnHandQty, inv.SafetyStock)
		case entity.InventoryExcess:
			if inv.MaxStock != nil {
				threshold = *inv.MaxStock
			}
			message = fmt.Sprintf("On hand %s above max stock %s", inv.OnHandQty, threshold)
		default:
			continue
		}
		out = append(out, dto.InventoryAlertResponse{
			InventoryID: inv.ID,
			ProductID:   inv.ProductID,
			Location:    inv.Location,
			Status:      inv.Status,
			OnHandQty:   inv.OnHandQty,
			Threshold:   threshold,
			Message:     message,
		})
	}
	return out, nil
}
