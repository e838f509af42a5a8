package repository

import (
	"context"

	"github.com/genxsop/genxsop/internal/domain/entity"
)

// SOPCycleRepository is the persistence port for SOPCycle.
type SOPCycleRepository interface {
	Create(ctx context.Context, c *entity.SOPCycle) error
	GetByID(ctx context.Context, id int64) (*entity.SOPCycle, error)
	Update(ctx context.Context, c *entity.SOPCycle) error
	List(ctx context.Context, status string, page, pageSize int) ([]*entity.SOPCycle, int, error)
	// GetActive returns the most recent active cycle, or nil when none is running.
	GetActive(ctx context.Context) (*entity.SOPCycle, error)
}
