package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/genxsop/genxsop/internal/domain"
	"github.com/genxsop/genxsop/internal/domain/entity"
	"github.com/genxsop/genxsop/internal/domain/repository"
)

var _ repository.SupplyPlanRepository = (*SupplyPlanRepo)(nil)

// SupplyPlanRepo implements SupplyPlanRepository over PostgreSQL.
type SupplyPlanRepo struct {
	q Querier
}

func NewSupplyPlanRepository(q Querier) *SupplyPlanRepo {
	return &SupplyPlanRepo{q: q}
}

const supplyPlanColumns = `id, product_id, period, location, planned_prod_qty, actual_prod_qty,
	capacity_max, capacity_used, supplier_name, lead_time_days, cost_per_unit, constraints,
	status, created_by, approved_by, version, created_at, updated_at`

func (r *SupplyPlanRepo) Create(ctx context.Context, p *entity.SupplyPlan) error {
	query := `
		INSERT INTO supply_plans (product_id, period, location, planned_prod_qty, actual_prod_qty,
			capacity_max, capacity_used, supplier_name, lead_time_days, cost_per_unit, constraints,
			status, created_by, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		p.ProductID, p.Period, p.Location, p.PlannedProdQty, p.ActualProdQty,
		p.CapacityMax, p.CapacityUsed, p.SupplierName, p.LeadTimeDays, p.CostPerUnit,
		p.Constraints, p.Status, p.CreatedBy, p.Version, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert supply plan: %w", err)
	}
	return nil
}

func (r *SupplyPlanRepo) GetByID(ctx context.Context, id int64) (*entity.SupplyPlan, error) {
	var p entity.SupplyPlan
	err := r.q.QueryRow(ctx, `SELECT `+supplyPlanColumns+` FROM supply_plans WHERE id = $1`, id).
		Scan(&p.ID, &p.ProductID, &p.Period, &p.Location, &p.PlannedProdQty, &p.ActualProdQty,
			&p.CapacityMax, &p.CapacityUsed, &p.SupplierName, &p.LeadTimeDays, &p.CostPerUnit,
			&p.Constraints, &p.Status, &p.CreatedBy, &p.ApprovedBy, &p.Version, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan supply plan: %w", err)
	}
	return &p, nil
}

func (r *SupplyPlanRepo) Update(ctx context.Context, p *entity.SupplyPlan) error {
	query := `
		UPDATE supply_plans SET planned_prod_qty = $2, actual_prod_qty = $3, capacity_max = $4,
			capacity_used = $5, supplier_name = $6, lead_time_days = $7, cost_per_unit = $8,
			constraints = $9, status = $10, approved_by = $11, version = $12, updated_at = $13
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		p.ID, p.PlannedProdQty, p.ActualProdQty, p.CapacityMax, p.CapacityUsed,
		p.SupplierName, p.LeadTimeDays, p.CostPerUnit, p.Constraints, p.Status,
		p.ApprovedBy, p.Version, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update supply plan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *SupplyPlanRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM supply_plans WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete supply plan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *SupplyPlanRepo) List(ctx context.Context, f repository.PlanFilter, page, pageSize int) ([]*entity.SupplyPlan, int, error) {
	where := []string{"1=1"}
	args := []any{}
	if f.ProductID != nil {
		args = append(args, *f.ProductID)
		where = append(where, "product_id = $"+strconv.Itoa(len(args)))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		where = append(where, "status = $"+strconv.Itoa(len(args)))
	}
	if f.Location != "" {
		args = append(args, f.Location)
		where = append(where, "location = $"+strconv.Itoa(len(args)))
	}
	if f.PeriodFrom != nil {
		args = append(args, *f.PeriodFrom)
		where = append(where, "period >= $"+strconv.Itoa(len(args)))
	}
	if f.PeriodTo != nil {
		args = append(args, *f.PeriodTo)
		where = append(where, "period <= $"+strconv.Itoa(len(args)))
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM supply_plans WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count supply plans: %w", err)
	}

	args = append(args, pageSize, (page-1)*pageSize)
	query := fmt.Sprintf(`SELECT %s FROM supply_plans WHERE %s ORDER BY period DESC, id DESC LIMIT $%d OFFSET $%d`,
		supplyPlanColumns, cond, len(args)-1, len(args))
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list supply plans: %w", err)
	}
	defer rows.Close()

	var list []*entity.SupplyPlan
	for rows.Next() {
		var p entity.SupplyPlan
		if err := rows.Scan(&p.ID, &p.ProductID, &p.Period, &p.Location, &p.PlannedProdQty, &p.ActualProdQty,
			&p.CapacityMax, &p.CapacityUsed, &p.SupplierName, &p.LeadTimeDays, &p.CostPerUnit,
			&p.Constraints, &p.Status, &p.CreatedBy, &p.ApprovedBy, &p.Version, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan supply plan: %w", err)
		}
		list = append(list, &p)
	}
	return list, total, rows.Err()
}

func (r *SupplyPlanRepo) ListByPeriod(ctx context.Context, period time.Time) ([]*entity.SupplyPlan, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+supplyPlanColumns+` FROM supply_plans WHERE period = $1 ORDER BY product_id`, period)
	if err != nil {
		return nil, fmt.Errorf("list supply plans by period: %w", err)
	}
	defer rows.Close()

	var list []*entity.SupplyPlan
	for rows.Next() {
		var p entity.SupplyPlan
		if err := rows.Scan(&p.ID, &p.ProductID, &p.Period, &p.Location, &p.PlannedProdQty, &p.ActualProdQty,
			&p.CapacityMax, &p.CapacityUsed, &p.SupplierName, &p.LeadTimeDays, &p.CostPerUnit,
			&p.Constraints, &p.Status, &p.CreatedBy, &p.ApprovedBy, &p.Version, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan supply plan: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

func (r *SupplyPlanRepo) CountByStatus(ctx context.Context, status string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM supply_plans WHERE status = $1`, status).Scan(&n); err != nil {
		return 0, fmt.Errorf("count supply plans: %w", err)
	}
	return n, nil
}
