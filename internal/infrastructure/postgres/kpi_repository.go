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

var _ repository.KPIRepository = (*KPIRepo)(nil)

// KPIRepo implements KPIRepository over PostgreSQL.
type KPIRepo struct {
	q Querier
}

func NewKPIRepository(q Querier) *KPIRepo {
	return &KPIRepo{q: q}
}

const kpiColumns = `id, metric_name, metric_category, period, value, target, previous_value,
	variance, variance_pct, trend, unit, created_at`

func scanKPI(row pgx.Row) (*entity.KPIMetric, error) {
	var m entity.KPIMetric
	err := row.Scan(&m.ID, &m.MetricName, &m.MetricCategory, &m.Period, &m.Value, &m.Target,
		&m.PreviousValue, &m.Variance, &m.VariancePct, &m.Trend, &m.Unit, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan kpi metric: %w", err)
	}
	return &m, nil
}

func (r *KPIRepo) Create(ctx context.Context, m *entity.KPIMetric) error {
	query := `
		INSERT INTO kpi_metrics (metric_name, metric_category, period, value, target,
			previous_value, variance, variance_pct, trend, unit, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		m.MetricName, m.MetricCategory, m.Period, m.Value, m.Target,
		m.PreviousValue, m.Variance, m.VariancePct, m.Trend, m.Unit, m.CreatedAt,
	).Scan(&m.ID)
	if err != nil {
		return fmt.Errorf("insert kpi metric: %w", err)
	}
	return nil
}

func (r *KPIRepo) Update(ctx context.Context, m *entity.KPIMetric) error {
	query := `
		UPDATE kpi_metrics SET value = $2, target = $3, previous_value = $4,
			variance = $5, variance_pct = $6, trend = $7
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		m.ID, m.Value, m.Target, m.PreviousValue, m.Variance, m.VariancePct, m.Trend)
	if err != nil {
		return fmt.Errorf("update kpi metric: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *KPIRepo) GetByID(ctx context.Context, id int64) (*entity.KPIMetric, error) {
	return scanKPI(r.q.QueryRow(ctx, `SELECT `+kpiColumns+` FROM kpi_metrics WHERE id = $1`, id))
}

func (r *KPIRepo) List(ctx context.Context, f repository.KPIFilter, page, pageSize int) ([]*entity.KPIMetric, int, error) {
	where := []string{"1=1"}
	args := []any{}
	if f.Category != "" {
		args = append(args, f.Category)
		where = append(where, "metric_category = $"+strconv.Itoa(len(args)))
	}
	if f.Name != "" {
		args = append(args, f.Name)
		where = append(where, "metric_name = $"+strconv.Itoa(len(args)))
	}
	if f.Period != nil {
		args = append(args, *f.Period)
		where = append(where, "period = $"+strconv.Itoa(len(args)))
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM kpi_metrics WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count kpi metrics: %w", err)
	}

	args = append(args, pageSize, (page-1)*pageSize)
	query := fmt.Sprintf(`SELECT %s FROM kpi_metrics WHERE %s ORDER BY period DESC, metric_name LIMIT $%d OFFSET $%d`,
		kpiColumns, cond, len(args)-1, len(args))
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list kpi metrics: %w", err)
	}
	defer rows.Close()

	list, err := collectKPIs(rows)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *KPIRepo) GetLatestByName(ctx context.Context, name string) (*entity.KPIMetric, error) {
	return scanKPI(r.q.QueryRow(ctx,
		`SELECT `+kpiColumns+` FROM kpi_metrics WHERE metric_name = $1 ORDER BY period DESC, created_at DESC LIMIT 1`,
		name))
}

func (r *KPIRepo) ListSince(ctx context.Context, category string, since time.Time) ([]*entity.KPIMetric, error) {
	cond := `period >= $1`
	args := []any{since}
	if category != "" {
		cond += ` AND metric_category = $2`
		args = append(args, category)
	}
	rows, err := r.q.Query(ctx,
		`SELECT `+kpiColumns+` FROM kpi_metrics WHERE `+cond+` ORDER BY metric_name, period ASC`, args...)
	if err != nil {
		return nil, fmt.Errorf("list kpi metrics since: %w", err)
	}
	defer rows.Close()
	return collectKPIs(rows)
}

// ListLatestWithTargets picks the newest row per metric name among rows that
// carry a target; the alerting pass compares each against its target.
func (r *KPIRepo) ListLatestWithTargets(ctx context.Context) ([]*entity.KPIMetric, error) {
	query := `
		SELECT DISTINCT ON (metric_name) ` + kpiColumns + `
		FROM kpi_metrics
		WHERE target IS NOT NULL
		ORDER BY metric_name, period DESC, created_at DESC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list kpi metrics with targets: %w", err)
	}
	defer rows.Close()
	return collectKPIs(rows)
}

func collectKPIs(rows pgx.Rows) ([]*entity.KPIMetric, error) {
	var list []*entity.KPIMetric
	for rows.Next() {
		var m entity.KPIMetric
		if err := rows.Scan(&m.ID, &m.MetricName, &m.MetricCategory, &m.Period, &m.Value, &m.Target,
			&m.PreviousValue, &m.Variance, &m.VariancePct, &m.Trend, &m.Unit, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan kpi metric: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
