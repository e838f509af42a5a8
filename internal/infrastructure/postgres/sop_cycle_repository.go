package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/genxsop/genxsop/internal/domain"
	"github.com/genxsop/genxsop/internal/domain/entity"
	"github.com/genxsop/genxsop/internal/domain/repository"
)

var _ repository.SOPCycleRepository = (*SOPCycleRepo)(nil)

// SOPCycleRepo implements SOPCycleRepository over PostgreSQL. The five steps
// are flattened into step_N_* columns rather than a child table; a cycle is
// always read and written whole.
type SOPCycleRepo struct {
	q Querier
}

func NewSOPCycleRepository(q Querier) *SOPCycleRepo {
	return &SOPCycleRepo{q: q}
}

const sopCycleColumns = `id, cycle_name, period, current_step,
	step_1_status, step_1_due_date, step_1_owner_id,
	step_2_status, step_2_due_date, step_2_owner_id,
	step_3_status, step_3_due_date, step_3_owner_id,
	step_4_status, step_4_due_date, step_4_owner_id,
	step_5_status, step_5_due_date, step_5_owner_id,
	decisions, action_items, notes, overall_status, created_at, updated_at`

func scanSOPCycle(row pgx.Row) (*entity.SOPCycle, error) {
	var c entity.SOPCycle
	err := row.Scan(&c.ID, &c.CycleName, &c.Period, &c.CurrentStep,
		&c.Steps[0].Status, &c.Steps[0].DueDate, &c.Steps[0].OwnerID,
		&c.Steps[1].Status, &c.Steps[1].DueDate, &c.Steps[1].OwnerID,
		&c.Steps[2].Status, &c.Steps[2].DueDate, &c.Steps[2].OwnerID,
		&c.Steps[3].Status, &c.Steps[3].DueDate, &c.Steps[3].OwnerID,
		&c.Steps[4].Status, &c.Steps[4].DueDate, &c.Steps[4].OwnerID,
		&c.Decisions, &c.ActionItems, &c.Notes, &c.OverallStatus, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan sop cycle: %w", err)
	}
	return &c, nil
}

func (r *SOPCycleRepo) Create(ctx context.Context, c *entity.SOPCycle) error {
	query := `
		INSERT INTO sop_cycles (cycle_name, period, current_step,
			step_1_status, step_1_due_date, step_1_owner_id,
			step_2_status, step_2_due_date, step_2_owner_id,
			step_3_status, step_3_due_date, step_3_owner_id,
			step_4_status, step_4_due_date, step_4_owner_id,
			step_5_status, step_5_due_date, step_5_owner_id,
			decisions, action_items, notes, overall_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19, $20, $21, $22, $23, $24)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		c.CycleName, c.Period, c.CurrentStep,
		c.Steps[0].Status, c.Steps[0].DueDate, c.Steps[0].OwnerID,
		c.Steps[1].Status, c.Steps[1].DueDate, c.Steps[1].OwnerID,
		c.Steps[2].Status, c.Steps[2].DueDate, c.Steps[2].OwnerID,
		c.Steps[3].Status, c.Steps[3].DueDate, c.Steps[3].OwnerID,
		c.Steps[4].Status, c.Steps[4].DueDate, c.Steps[4].OwnerID,
		c.Decisions, c.ActionItems, c.Notes, c.OverallStatus, c.CreatedAt, c.UpdatedAt,
	).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("insert sop cycle: %w", err)
	}
	return nil
}

func (r *SOPCycleRepo) GetByID(ctx context.Context, id int64) (*entity.SOPCycle, error) {
	return scanSOPCycle(r.q.QueryRow(ctx, `SELECT `+sopCycleColumns+` FROM sop_cycles WHERE id = $1`, id))
}

func (r *SOPCycleRepo) Update(ctx context.Context, c *entity.SOPCycle) error {
	query := `
		UPDATE sop_cycles SET current_step = $2,
			step_1_status = $3, step_1_due_date = $4, step_1_owner_id = $5,
			step_2_status = $6, step_2_due_date = $7, step_2_owner_id = $8,
			step_3_status = $9, step_3_due_date = $10, step_3_owner_id = $11,
			step_4_status = $12, step_4_due_date = $13, step_4_owner_id = $14,
			step_5_status = $15, step_5_due_date = $16, step_5_owner_id = $17,
			decisions = $18, action_items = $19, notes = $20, overall_status = $21, updated_at = $22
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		c.ID, c.CurrentStep,
		c.Steps[0].Status, c.Steps[0].DueDate, c.Steps[0].OwnerID,
		c.Steps[1].Status, c.Steps[1].DueDate, c.Steps[1].OwnerID,
		c.Steps[2].Status, c.Steps[2].DueDate, c.Steps[2].OwnerID,
		c.Steps[3].Status, c.Steps[3].DueDate, c.Steps[3].OwnerID,
		c.Steps[4].Status, c.Steps[4].DueDate, c.Steps[4].OwnerID,
		c.Decisions, c.ActionItems, c.Notes, c.OverallStatus, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update sop cycle: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *SOPCycleRepo) List(ctx context.Context, status string, page, pageSize int) ([]*entity.SOPCycle, int, error) {
	cond := `1=1`
	args := []any{}
	if status != "" {
		args = append(args, status)
		cond = `overall_status = $1`
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM sop_cycles WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count sop cycles: %w", err)
	}

	args = append(args, pageSize, (page-1)*pageSize)
	query := fmt.Sprintf(`SELECT %s FROM sop_cycles WHERE %s ORDER BY period DESC LIMIT $%d OFFSET $%d`,
		sopCycleColumns, cond, len(args)-1, len(args))
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list sop cycles: %w", err)
	}
	defer rows.Close()

	var list []*entity.SOPCycle
	for rows.Next() {
		var c entity.SOPCycle
		if err := rows.Scan(&c.ID, &c.CycleName, &c.Period, &c.CurrentStep,
			&c.Steps[0].Status, &c.Steps[0].DueDate, &c.Steps[0].OwnerID,
			&c.Steps[1].Status, &c.Steps[1].DueDate, &c.Steps[1].OwnerID,
			&c.Steps[2].Status, &c.Steps[2].DueDate, &c.Steps[2].OwnerID,
			&c.Steps[3].Status, &c.Steps[3].DueDate, &c.Steps[3].OwnerID,
			&c.Steps[4].Status, &c.Steps[4].DueDate, &c.Steps[4].OwnerID,
			&c.Decisions, &c.ActionItems, &c.Notes, &c.OverallStatus, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan sop cycle: %w", err)
		}
		list = append(list, &c)
	}
	return list, total, rows.Err()
}

func (r *SOPCycleRepo) GetActive(ctx context.Context) (*entity.SOPCycle, error) {
	return scanSOPCycle(r.q.QueryRow(ctx,
		`SELECT `+sopCycleColumns+` FROM sop_cycles WHERE overall_status = $1 ORDER BY period DESC LIMIT 1`,
		entity.CycleActive))
}
