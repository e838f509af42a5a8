package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/genxsop/genxsop/internal/domain"
	"github.com/genxsop/genxsop/internal/domain/entity"
	"github.com/genxsop/genxsop/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo implements InventoryRepository over PostgreSQL.
type InventoryRepo struct {
	q Querier
}

func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

const inventoryColumns = `id, product_id, location, on_hand_qty, allocated_qty, in_transit_qty,
	safety_stock, reorder_point, max_stock, days_of_supply, last_receipt_date, last_issue_date,
	valuation, status, updated_at`

func scanInventory(row pgx.Row) (*entity.Inventory, error) {
	var inv entity.Inventory
	err := row.Scan(&inv.ID, &inv.ProductID, &inv.Location, &inv.OnHandQty, &inv.AllocatedQty,
		&inv.InTransitQty, &inv.SafetyStock, &inv.ReorderPoint, &inv.MaxStock, &inv.DaysOfSupply,
		&inv.LastReceiptDate, &inv.LastIssueDate, &inv.Valuation, &inv.Status, &inv.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan inventory: %w", err)
	}
	return &inv, nil
}

func (r *InventoryRepo) GetByID(ctx context.Context, id int64) (*entity.Inventory, error) {
	return scanInventory(r.q.QueryRow(ctx, `SELECT `+inventoryColumns+` FROM inventory WHERE id = $1`, id))
}

func (r *InventoryRepo) GetByProduct(ctx context.Context, productID int64) (*entity.Inventory, error) {
	return scanInventory(r.q.QueryRow(ctx,
		`SELECT `+inventoryColumns+` FROM inventory WHERE product_id = $1 ORDER BY location LIMIT 1`, productID))
}

func (r *InventoryRepo) Create(ctx context.Context, inv *entity.Inventory) error {
	query := `
		INSERT INTO inventory (product_id, location, on_hand_qty, allocated_qty, in_transit_qty,
			safety_stock, reorder_point, max_stock, days_of_supply, last_receipt_date,
			last_issue_date, valuation, status, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		inv.ProductID, inv.Location, inv.OnHandQty, inv.AllocatedQty, inv.InTransitQty,
		inv.SafetyStock, inv.ReorderPoint, inv.MaxStock, inv.DaysOfSupply, inv.LastReceiptDate,
		inv.LastIssueDate, inv.Valuation, inv.Status, inv.UpdatedAt,
	).Scan(&inv.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert inventory: %w", err)
	}
	return nil
}

func (r *InventoryRepo) Update(ctx context.Context, inv *entity.Inventory) error {
	query := `
		UPDATE inventory SET on_hand_qty = $2, allocated_qty = $3, in_transit_qty = $4,
			safety_stock = $5, reorder_point = $6, max_stock = $7, days_of_supply = $8,
			last_receipt_date = $9, last_issue_date = $10, valuation = $11, status = $12,
			updated_at = $13
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		inv.ID, inv.OnHandQty, inv.AllocatedQty, inv.InTransitQty, inv.SafetyStock,
		inv.ReorderPoint, inv.MaxStock, inv.DaysOfSupply, inv.LastReceiptDate,
		inv.LastIssueDate, inv.Valuation, inv.Status, inv.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update inventory: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *InventoryRepo) List(ctx context.Context, f repository.InventoryFilter, page, pageSize int) ([]*entity.Inventory, int, error) {
	where := []string{"1=1"}
	args := []any{}
	if f.Status != "" {
		args = append(args, f.Status)
		where = append(where, "status = $"+strconv.Itoa(len(args)))
	}
	if f.ProductID != nil {
		args = append(args, *f.ProductID)
		where = append(where, "product_id = $"+strconv.Itoa(len(args)))
	}
	if f.Location != "" {
		args = append(args, f.Location)
		where = append(where, "location = $"+strconv.Itoa(len(args)))
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM inventory WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count inventory: %w", err)
	}

	args = append(args, pageSize, (page-1)*pageSize)
	query := fmt.Sprintf(`SELECT %s FROM inventory WHERE %s ORDER BY product_id, location LIMIT $%d OFFSET $%d`,
		inventoryColumns, cond, len(args)-1, len(args))
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()

	list, err := collectInventory(rows)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *InventoryRepo) ListAll(ctx context.Context) ([]*entity.Inventory, error) {
	rows, err := r.q.Query(ctx, `SELECT `+inventoryColumns+` FROM inventory ORDER BY product_id, location`)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()
	return collectInventory(rows)
}

func collectInventory(rows pgx.Rows) ([]*entity.Inventory, error) {
	var list []*entity.Inventory
	for rows.Next() {
		var inv entity.Inventory
		if err := rows.Scan(&inv.ID, &inv.ProductID, &inv.Location, &inv.OnHandQty, &inv.AllocatedQty,
			&inv.InTransitQty, &inv.SafetyStock, &inv.ReorderPoint, &inv.MaxStock, &inv.DaysOfSupply,
			&inv.LastReceiptDate, &inv.LastIssueDate, &inv.Valuation, &inv.Status, &inv.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan inventory: %w", err)
		}
		list = append(list, &inv)
	}
	return list, rows.Err()
}
