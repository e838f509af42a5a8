package repository

import (
	"context"
	"time"

	"github.com/genxsop/genxsop/internal/domain/entity"
)

// ForecastFilter narrows forecast result listings.
type ForecastFilter struct {
	ProductID  *int64
	ModelType  string
	PeriodFrom *time.Time
	PeriodTo   *time.Time
}

// ForecastRepository is the persistence port for Forecast.
type ForecastRepository interface {
	Create(ctx context.Context, f *entity.Forecast) error
	GetByID(ctx context.Context, id int64) (*entity.Forecast, error)
	// DeleteByProductModelPeriod clears a previous run so generation is an upsert.
	DeleteByProductModelPeriod(ctx context.Context, productID int64, modelType string, period time.Time) error
	List(ctx context.Context, f ForecastFilter) ([]*entity.Forecast, error)
}
