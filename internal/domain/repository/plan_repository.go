package repository

import (
	"context"
	"time"

	"github.com/genxsop/genxsop/internal/domain/entity"
)

// PlanFilter narrows demand/supply plan listings. Zero values mean "no filter".
type PlanFilter struct {
	ProductID  *int64
	Status     string
	Region     string // demand only
	Channel    string // demand only
	Location   string // supply only
	PeriodFrom *time.Time
	PeriodTo   *time.Time
}

// DemandPlanRepository is the persistence port for DemandPlan.
type DemandPlanRepository interface {
	Create(ctx context.Context, plan *entity.DemandPlan) error
	GetByID(ctx context.Context, id int64) (*entity.DemandPlan, error)
	Update(ctx context.Context, plan *entity.DemandPlan) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, f PlanFilter, page, pageSize int) ([]*entity.DemandPlan, int, error)
	CountByStatus(ctx context.Context, status string) (int, error)
	// ListByPeriod returns every demand line for one planning month; feeds the
	// demand vs supply gap analysis.
	ListByPeriod(ctx context.Context, period time.Time) ([]*entity.DemandPlan, error)
	// ListWithActuals returns plans carrying an actual quantity, oldest first.
	// This is the training history for the forecasting engine.
	ListWithActuals(ctx context.Context, productID int64) ([]*entity.DemandPlan, error)
}

// SupplyPlanRepository is the persistence port for SupplyPlan.
type SupplyPlanRepository interface {
	Create(ctx context.Context, plan *entity.SupplyPlan) error
	GetByID(ctx context.Context, id int64) (*entity.SupplyPlan, error)
	Update(ctx context.Context, plan *entity.SupplyPlan) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, f PlanFilter, page, pageSize int) ([]*entity.SupplyPlan, int, error)
	CountByStatus(ctx context.Context, status string) (int, error)
	ListByPeriod(ctx context.Context, period time.Time) ([]*entity.SupplyPlan, error)
}
