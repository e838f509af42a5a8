package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/genxsop/genxsop/internal/domain/entity"
	"github.com/genxsop/genxsop/internal/domain/repository"
)

var _ repository.ForecastRepository = (*ForecastRepo)(nil)

// ForecastRepo implements ForecastRepository over PostgreSQL.
type ForecastRepo struct {
	q Querier
}

func NewForecastRepository(q Querier) *ForecastRepo {
	return &ForecastRepo{q: q}
}

const forecastColumns = `id, product_id, model_type, period, predicted_qty, lower_bound,
	upper_bound, confidence, mape, rmse, model_version, training_date, created_at`

func (r *ForecastRepo) Create(ctx context.Context, f *entity.Forecast) error {
	query := `
		INSERT INTO forecasts (product_id, model_type, period, predicted_qty, lower_bound,
			upper_bound, confidence, mape, rmse, model_version, training_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		f.ProductID, f.ModelType, f.Period, f.PredictedQty, f.LowerBound,
		f.UpperBound, f.Confidence, f.MAPE, f.RMSE, f.ModelVersion, f.TrainingDate, f.CreatedAt,
	).Scan(&f.ID)
	if err != nil {
		return fmt.Errorf("insert forecast: %w", err)
	}
	return nil
}

func (r *ForecastRepo) GetByID(ctx context.Context, id int64) (*entity.Forecast, error) {
	var f entity.Forecast
	err := r.q.QueryRow(ctx, `SELECT `+forecastColumns+` FROM forecasts WHERE id = $1`, id).
		Scan(&f.ID, &f.ProductID, &f.ModelType, &f.Period, &f.PredictedQty, &f.LowerBound,
			&f.UpperBound, &f.Confidence, &f.MAPE, &f.RMSE, &f.ModelVersion, &f.TrainingDate, &f.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan forecast: %w", err)
	}
	return &f, nil
}

func (r *ForecastRepo) DeleteByProductModelPeriod(ctx context.Context, productID int64, modelType string, period time.Time) error {
	_, err := r.q.Exec(ctx,
		`DELETE FROM forecasts WHERE product_id = $1 AND model_type = $2 AND period = $3`,
		productID, modelType, period)
	if err != nil {
		return fmt.Errorf("delete forecast: %w", err)
	}
	return nil
}

func (r *ForecastRepo) List(ctx context.Context, f repository.ForecastFilter) ([]*entity.Forecast, error) {
	where := []string{"1=1"}
	args := []any{}
	if f.ProductID != nil {
		args = append(args, *f.ProductID)
		where = append(where, "product_id = $"+strconv.Itoa(len(args)))
	}
	if f.ModelType != "" {
		args = append(args, f.ModelType)
		where = append(where, "model_type = $"+strconv.Itoa(len(args)))
	}
	if f.PeriodFrom != nil {
		args = append(args, *f.PeriodFrom)
		where = append(where, "period >= $"+strconv.Itoa(len(args)))
	}
	if f.PeriodTo != nil {
		args = append(args, *f.PeriodTo)
		where = append(where, "period <= $"+strconv.Itoa(len(args)))
	}

	query := `SELECT ` + forecastColumns + ` FROM forecasts WHERE ` + strings.Join(where, " AND ") +
		` ORDER BY period ASC, model_type`
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list forecasts: %w", err)
	}
	defer rows.Close()

	var list []*entity.Forecast
	for rows.Next() {
		var fc entity.Forecast
		if err := rows.Scan(&fc.ID, &fc.ProductID, &fc.ModelType, &fc.Period, &fc.PredictedQty,
			&fc.LowerBound, &fc.UpperBound, &fc.Confidence, &fc.MAPE, &fc.RMSE,
			&fc.ModelVersion, &fc.TrainingDate, &fc.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan forecast: %w", err)
		}
		list = append(list, &fc)
	}
	return list, rows.Err()
}
