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

var _ repository.ScenarioRepository = (*ScenarioRepo)(nil)

// ScenarioRepo implements ScenarioRepository over PostgreSQL.
type ScenarioRepo struct {
	q Querier
}

func NewScenarioRepository(q Querier) *ScenarioRepo {
	return &ScenarioRepo{q: q}
}

const scenarioColumns = `id, name, description, scenario_type, parameters, results,
	revenue_impact, margin_impact, inventory_impact, service_level_impact, status,
	created_by, approved_by, created_at, updated_at`

func scanScenario(row pgx.Row) (*entity.Scenario, error) {
	var s entity.Scenario
	err := row.Scan(&s.ID, &s.Name, &s.Description, &s.ScenarioType, &s.Parameters, &s.Results,
		&s.RevenueImpact, &s.MarginImpact, &s.InventoryImpact, &s.ServiceLevelImpact, &s.Status,
		&s.CreatedBy, &s.ApprovedBy, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan scenario: %w", err)
	}
	return &s, nil
}

func (r *ScenarioRepo) Create(ctx context.Context, s *entity.Scenario) error {
	query := `
		INSERT INTO scenarios (name, description, scenario_type, parameters, results,
			revenue_impact, margin_impact, inventory_impact, service_level_impact, status,
			created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		s.Name, s.Description, s.ScenarioType, s.Parameters, s.Results,
		s.RevenueImpact, s.MarginImpact, s.InventoryImpact, s.ServiceLevelImpact, s.Status,
		s.CreatedBy, s.CreatedAt, s.UpdatedAt,
	).Scan(&s.ID)
	if err != nil {
		return fmt.Errorf("insert scenario: %w", err)
	}
	return nil
}

func (r *ScenarioRepo) GetByID(ctx context.Context, id int64) (*entity.Scenario, error) {
	return scanScenario(r.q.QueryRow(ctx, `SELECT `+scenarioColumns+` FROM scenarios WHERE id = $1`, id))
}

func (r *ScenarioRepo) Update(ctx context.Context, s *entity.Scenario) error {
	query := `
		UPDATE scenarios SET name = $2, description = $3, scenario_type = $4, parameters = $5,
			results = $6, revenue_impact = $7, margin_impact = $8, inventory_impact = $9,
			service_level_impact = $10, status = $11, approved_by = $12, updated_at = $13
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		s.ID, s.Name, s.Description, s.ScenarioType, s.Parameters, s.Results,
		s.RevenueImpact, s.MarginImpact, s.InventoryImpact, s.ServiceLevelImpact,
		s.Status, s.ApprovedBy, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update scenario: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ScenarioRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM scenarios WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete scenario: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ScenarioRepo) List(ctx context.Context, status string, page, pageSize int) ([]*entity.Scenario, int, error) {
	cond := `1=1`
	args := []any{}
	if status != "" {
		args = append(args, status)
		cond = `status = $1`
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM scenarios WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count scenarios: %w", err)
	}

	args = append(args, pageSize, (page-1)*pageSize)
	query := fmt.Sprintf(`SELECT %s FROM scenarios WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		scenarioColumns, cond, len(args)-1, len(args))
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list scenarios: %w", err)
	}
	defer rows.Close()

	var list []*entity.Scenario
	for rows.Next() {
		var s entity.Scenario
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.ScenarioType, &s.Parameters, &s.Results,
			&s.RevenueImpact, &s.MarginImpact, &s.InventoryImpact, &s.ServiceLevelImpact, &s.Status,
			&s.CreatedBy, &s.ApprovedBy, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan scenario: %w", err)
		}
		list = append(list, &s)
	}
	return list, total, rows.Err()
}

func (r *ScenarioRepo) GetByIDs(ctx context.Context, ids []int64) ([]*entity.Scenario, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+scenarioColumns+` FROM scenarios WHERE id = ANY($1) ORDER BY id`, ids)
	if err != nil {
		return nil, fmt.Errorf("list scenarios by id: %w", err)
	}
	defer rows.Close()

	var list []*entity.Scenario
	for rows.Next() {
		var s entity.Scenario
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.ScenarioType, &s.Parameters, &s.Results,
			&s.RevenueImpact, &s.MarginImpact, &s.InventoryImpact, &s.ServiceLevelImpact, &s.Status,
			&s.CreatedBy, &s.ApprovedBy, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan scenario: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// CountOpen counts scenarios not yet run, used by the dashboard summary.
func (r *ScenarioRepo) CountOpen(ctx context.Context) (int, error) {
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT count(*) FROM scenarios WHERE status NOT IN ($1, $2)`,
		entity.ScenarioCompleted, entity.PlanRejected).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count open scenarios: %w", err)
	}
	return n, nil
}
