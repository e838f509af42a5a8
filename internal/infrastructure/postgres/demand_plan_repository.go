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

var _ repository.DemandPlanRepository = (*DemandPlanRepo)(nil)

// DemandPlanRepo implements DemandPlanRepository over PostgreSQL.
type DemandPlanRepo struct {
	q Querier
}

func NewDemandPlanRepository(q Querier) *DemandPlanRepo {
	return &DemandPlanRepo{q: q}
}

const demandPlanColumns = `id, product_id, period, region, channel, forecast_qty, adjusted_qty,
	actual_qty, consensus_qty, confidence, notes, status, created_by, approved_by, version,
	created_at, updated_at`

func scanDemandPlan(row pgx.Row) (*entity.DemandPlan, error) {
	var p entity.DemandPlan
	err := row.Scan(&p.ID, &p.ProductID, &p.Period, &p.Region, &p.Channel, &p.ForecastQty,
		&p.AdjustedQty, &p.ActualQty, &p.ConsensusQty, &p.Confidence, &p.Notes, &p.Status,
		&p.CreatedBy, &p.ApprovedBy, &p.Version, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan demand plan: %w", err)
	}
	return &p, nil
}

func (r *DemandPlanRepo) Create(ctx context.Context, p *entity.DemandPlan) error {
	query := `
		INSERT INTO demand_plans (product_id, period, region, channel, forecast_qty, adjusted_qty,
			actual_qty, consensus_qty, confidence, notes, status, created_by, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		p.ProductID, p.Period, p.Region, p.Channel, p.ForecastQty, p.AdjustedQty,
		p.ActualQty, p.ConsensusQty, p.Confidence, p.Notes, p.Status, p.CreatedBy,
		p.Version, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert demand plan: %w", err)
	}
	return nil
}

func (r *DemandPlanRepo) GetByID(ctx context.Context, id int64) (*entity.DemandPlan, error) {
	return scanDemandPlan(r.q.QueryRow(ctx,
		`SELECT `+demandPlanColumns+` FROM demand_plans WHERE id = $1`, id))
}

func (r *DemandPlanRepo) Update(ctx context.Context, p *entity.DemandPlan) error {
	query := `
		UPDATE demand_plans SET forecast_qty = $2, adjusted_qty = $3, actual_qty = $4,
			consensus_qty = $5, confidence = $6, notes = $7, status = $8, approved_by = $9,
			version = $10, updated_at = $11
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		p.ID, p.ForecastQty, p.AdjustedQty, p.ActualQty, p.ConsensusQty, p.Confidence,
		p.Notes, p.Status, p.ApprovedBy, p.Version, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update demand plan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *DemandPlanRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM demand_plans WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete demand plan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *DemandPlanRepo) List(ctx context.Context, f repository.PlanFilter, page, pageSize int) ([]*entity.DemandPlan, int, error) {
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
	if f.Region != "" {
		args = append(args, f.Region)
		where = append(where, "region = $"+strconv.Itoa(len(args)))
	}
	if f.Channel != "" {
		args = append(args, f.Channel)
		where = append(where, "channel = $"+strconv.Itoa(len(args)))
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
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM demand_plans WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count demand plans: %w", err)
	}

	args = append(args, pageSize, (page-1)*pageSize)
	query := fmt.Sprintf(`SELECT %s FROM demand_plans WHERE %s ORDER BY period DESC, id DESC LIMIT $%d OFFSET $%d`,
		demandPlanColumns, cond, len(args)-1, len(args))
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list demand plans: %w", err)
	}
	defer rows.Close()

	list, err := collectDemandPlans(rows)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *DemandPlanRepo) CountByStatus(ctx context.Context, status string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM demand_plans WHERE status = $1`, status).Scan(&n); err != nil {
		return 0, fmt.Errorf("count demand plans: %w", err)
	}
	return n, nil
}

func (r *DemandPlanRepo) ListByPeriod(ctx context.Context, period time.Time) ([]*entity.DemandPlan, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+demandPlanColumns+` FROM demand_plans WHERE period = $1 ORDER BY product_id`, period)
	if err != nil {
		return nil, fmt.Errorf("list demand plans by period: %w", err)
	}
	defer rows.Close()
	return collectDemandPlans(rows)
}

// ListWithActuals returns the plans that carry an actual quantity for one
// product, oldest period first. This is the history the forecasting engine
// trains on.
func (r *DemandPlanRepo) ListWithActuals(ctx context.Context, productID int64) ([]*entity.DemandPlan, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+demandPlanColumns+` FROM demand_plans
		 WHERE product_id = $1 AND actual_qty IS NOT NULL
		 ORDER BY period ASC`, productID)
	if err != nil {
		return nil, fmt.Errorf("list demand history: %w", err)
	}
	defer rows.Close()
	return collectDemandPlans(rows)
}

func collectDemandPlans(rows pgx.Rows) ([]*entity.DemandPlan, error) {
	var list []*entity.DemandPlan
	for rows.Next() {
		var p entity.DemandPlan
		if err := rows.Scan(&p.ID, &p.ProductID, &p.Period, &p.Region, &p.Channel, &p.ForecastQty,
			&p.AdjustedQty, &p.ActualQty, &p.ConsensusQty, &p.Confidence, &p.Notes, &p.Status,
			&p.CreatedBy, &p.ApprovedBy, &p.Version, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan demand plan: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
